// Render a game description as a Graphviz DOT graph.
package main

import (
	"flag"
	"math/rand"
	"os"

	"github.com/golang/glog"
	"github.com/pkg/errors"

	"github.com/timpalpant/gamegraph"
	"github.com/timpalpant/gamegraph/dotgraph"
	"github.com/timpalpant/gamegraph/matrixgame"
)

func main() {
	input := flag.String("input", "", "Game description (.json or .gob, optionally .gz)")
	output := flag.String("output", "", "File to write DOT output to (default stdout)")
	render := flag.Bool("render", true, "Render the graph (false disables the graph provider)")
	solve := flag.Bool("solve", false, "Fill in missing strategies for two-player games")
	solver := flag.String("solver", "fp", "Solver to use with -solve: fp (fictitious play) or cfr")
	nIter := flag.Int("iter", 10000, "Number of solver iterations")
	mixing := flag.Float64("mixing", 0.0, "Fictitious play exploration probability")
	seed := flag.Int64("seed", 1234, "Random seed")
	save := flag.String("save", "", "File to save the (solved) description to")
	flag.Parse()

	if *input == "" {
		glog.Exit("-input is required")
	}

	glog.Infof("Loading game description from: %v", *input)
	game, err := gamegraph.LoadDescription(*input)
	if err != nil {
		glog.Fatal(err)
	}

	if err := game.Validate(); err != nil {
		glog.Exitf("invalid game description: %v", err)
	}

	if *solve {
		solveStrategies(&game, *solver, *nIter, *mixing, *seed)
	}

	if *save != "" {
		glog.Infof("Saving game description to: %v", *save)
		if err := gamegraph.SaveDescription(*save, game); err != nil {
			glog.Fatal(err)
		}
	}

	var provider gamegraph.Provider = gamegraph.Unavailable{}
	if *render {
		provider = dotgraph.Provider{}
	}

	g, err := gamegraph.BuildGraph(provider, game)
	if gamegraph.IsUnavailable(err) {
		glog.Warning("Graph rendering disabled, not writing output")
		return
	} else if err != nil {
		glog.Fatal(err)
	}

	if *output == "" {
		if _, err := g.WriteTo(os.Stdout); err != nil {
			glog.Fatal(err)
		}
	} else if err := writeGraph(*output, g); err != nil {
		glog.Fatal(err)
	}
	glog.Infof("Wrote graph with %d nodes", g.NumNodes())
}

func writeGraph(filename string, g gamegraph.Graph) error {
	f, err := os.Create(filename)
	if err != nil {
		return err
	}

	if _, err := g.WriteTo(f); err != nil {
		f.Close()
		return errors.Wrapf(err, "writing %v", filename)
	}

	return errors.Wrapf(f.Close(), "closing %v", filename)
}

func solveStrategies(game *gamegraph.Description, solver string, nIter int, mixing float64, seed int64) {
	if len(game.Strategies) > 0 {
		glog.Info("Game description already has strategies, not solving")
		return
	}

	if game.NumPlayers() != 2 || len(game.Payoffs) == 0 {
		glog.Warningf("Can only solve two-player games with payoffs, got %d players",
			game.NumPlayers())
		return
	}

	var p0, p1 []float32
	switch solver {
	case "fp":
		glog.Infof("Running %d iterations of fictitious play", nIter)
		rng := rand.New(rand.NewSource(seed))
		p0, p1 = matrixgame.FictitiousPlay(game.Payoffs, nIter, mixing, rng)
	case "cfr":
		glog.Infof("Running %d iterations of CFR", nIter)
		p0, p1 = matrixgame.CFR(game.Payoffs, nIter)
	default:
		glog.Exitf("unknown solver: %q", solver)
	}

	glog.Infof("%v strategy: %v", game.Players[0], p0)
	glog.Infof("%v strategy: %v", game.Players[1], p1)
	game.Strategies = [][]float32{p0, p1}
}
