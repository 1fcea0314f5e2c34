// Package gamegraph renders descriptions of games of incomplete information
// (players, their types, beliefs, strategies and payoffs) as Graphviz graphs.
package gamegraph

import (
	"fmt"

	"github.com/pkg/errors"
)

// Description is a normal-form game of incomplete information.
// The zero value is a valid (empty) description.
type Description struct {
	// Players are the names of the players, in seat order.
	Players []string `json:"players"`
	// Types are the possible private types of each player.
	Types [][]string `json:"types,omitempty"`
	// Beliefs are each player's prior over the types of the others.
	Beliefs [][]float64 `json:"beliefs,omitempty"`
	// Strategies are mixed strategies, one per player.
	Strategies [][]float32 `json:"strategies,omitempty"`
	// Payoffs is the row player's payoff matrix. Two-player
	// descriptions are treated as zero-sum.
	Payoffs [][]float64 `json:"payoffs,omitempty"`
}

// NumPlayers returns the number of players in the game.
func (d *Description) NumPlayers() int {
	return len(d.Players)
}

// Validate sanity checks a Description, typically one loaded from disk.
// Per-player fields may be omitted entirely, but if present they must
// have one entry for each player.
func (d *Description) Validate() error {
	n := d.NumPlayers()
	if len(d.Types) > 0 && len(d.Types) != n {
		return fmt.Errorf("%d players but types given for %d", n, len(d.Types))
	}

	if len(d.Beliefs) > 0 && len(d.Beliefs) != n {
		return fmt.Errorf("%d players but beliefs given for %d", n, len(d.Beliefs))
	}

	if len(d.Strategies) > 0 {
		if len(d.Strategies) != n {
			return fmt.Errorf("%d players but strategies given for %d", n, len(d.Strategies))
		}

		for i, s := range d.Strategies {
			if err := validateStrategy(s); err != nil {
				return errors.Wrapf(err, "player %v strategy invalid", d.Players[i])
			}
		}
	}

	for i, row := range d.Payoffs {
		if len(row) != len(d.Payoffs[0]) {
			return fmt.Errorf("payoff row %d has %d columns, expected %d",
				i, len(row), len(d.Payoffs[0]))
		}
	}

	return nil
}

func validateStrategy(s []float32) error {
	for action, p := range s {
		if p < 0 {
			return fmt.Errorf("action %d has negative probability %v", action, p)
		}
	}

	return nil
}
