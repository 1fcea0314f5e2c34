package gamegraph

import (
	"io"
	"strings"

	"github.com/golang/glog"
	"github.com/pkg/errors"
)

const (
	// GraphName is the name given to graphs created by BuildGraph.
	GraphName = "html_table"
	// TableNode is the id of the node that holds the game table.
	TableNode = "tab"
)

// Graph is a node-and-edge graph that can be rendered as DOT source.
type Graph interface {
	// AddNode adds a node with the given id, or relabels it if it
	// already exists. The label is used verbatim.
	AddNode(id, label string)
	// Label returns the label of the node with the given id.
	Label(id string) (string, bool)
	NumNodes() int
	WriteTo(w io.Writer) (int64, error)
	// String returns the DOT source of the graph.
	String() string
}

// Provider creates graphs. Implementations must return a new,
// independent Graph from each call to NewGraph, or an error.
type Provider interface {
	NewGraph(name string) (Graph, error)
}

// logWarning is where remediation hints are logged.
var logWarning = glog.Warning

var unavailableHints = []string{
	"Go dependency: go get github.com/emicklei/dot",
	"Graphviz also needs to be installed on the host to render images: brew install graphviz",
}

// UnavailableError is returned when no graphing capability is available.
type UnavailableError struct {
	// Hints are remediation instructions, one per line.
	Hints []string
}

func (e *UnavailableError) Error() string {
	return "graphing unavailable: " + strings.Join(e.Hints, "; ")
}

// IsUnavailable reports whether err (or its cause) is an *UnavailableError.
func IsUnavailable(err error) bool {
	_, ok := errors.Cause(err).(*UnavailableError)
	return ok
}

// Unavailable is a Provider for when rendering is disabled or no
// graphing library is configured. It never creates a graph.
type Unavailable struct{}

// NewGraph implements Provider.
func (Unavailable) NewGraph(name string) (Graph, error) {
	hints := make([]string, len(unavailableHints))
	copy(hints, unavailableHints)
	return nil, &UnavailableError{Hints: hints}
}

// BuildGraph creates a new graph with a single node whose label
// is the table for the given game.
//
// If p is nil or cannot create graphs, the remediation hints are logged
// and an *UnavailableError is returned.
func BuildGraph(p Provider, game Description) (Graph, error) {
	if p == nil {
		p = Unavailable{}
	}

	g, err := p.NewGraph(GraphName)
	if err != nil {
		if uerr, ok := errors.Cause(err).(*UnavailableError); ok {
			for _, hint := range uerr.Hints {
				logWarning(hint)
			}

			return nil, err
		}

		return nil, errors.Wrapf(err, "creating graph %v", GraphName)
	} else if g == nil {
		return nil, errors.Errorf("provider returned nil graph %v", GraphName)
	}

	table := FormatTable(game)
	g.AddNode(TableNode, table)
	return g, nil
}
