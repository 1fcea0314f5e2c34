// Package dotgraph implements gamegraph.Provider with github.com/emicklei/dot.
package dotgraph

import (
	"io"
	"regexp"
	"strconv"
	"strings"

	"github.com/emicklei/dot"

	"github.com/timpalpant/gamegraph"
)

// Provider creates undirected DOT graphs.
type Provider struct {
	// Directed creates digraphs instead.
	Directed bool
}

// Verify that we implement the interface.
var _ gamegraph.Provider = Provider{}

// NewGraph implements gamegraph.Provider.
func (p Provider) NewGraph(name string) (gamegraph.Graph, error) {
	graphType := dot.Undirected
	if p.Directed {
		graphType = dot.Directed
	}

	g := dot.NewGraph(graphType)
	g.ID(name)
	return &Graph{
		g:      g,
		labels: make(map[string]string),
	}, nil
}

// Graph implements gamegraph.Graph.
type Graph struct {
	g *dot.Graph
	// Node labels by id.
	labels map[string]string
	// Node ids in the order they were created. dot numbers nodes
	// from 1 in this order when writing them (n1, n2, ...).
	ids []string
}

var _ gamegraph.Graph = &Graph{}

// AddNode implements gamegraph.Graph. Labels that are wrapped in
// angle brackets are emitted unquoted so Graphviz treats them as HTML.
func (g *Graph) AddNode(id, label string) {
	if _, ok := g.labels[id]; !ok {
		g.ids = append(g.ids, id)
	}

	n := g.g.Node(id)
	if isHTMLLabel(label) {
		n.Attr("label", dot.Literal(label))
	} else {
		n.Attr("label", label)
	}

	g.labels[id] = label
}

// Label implements gamegraph.Graph.
func (g *Graph) Label(id string) (string, bool) {
	label, ok := g.labels[id]
	return label, ok
}

// NumNodes implements gamegraph.Graph.
func (g *Graph) NumNodes() int {
	return len(g.labels)
}

// WriteTo implements io.WriterTo.
func (g *Graph) WriteTo(w io.Writer) (int64, error) {
	n, err := io.WriteString(w, g.String())
	return int64(n), err
}

// String returns the DOT source of the graph, with each node
// statement using the id the node was added with.
func (g *Graph) String() string {
	src := g.g.String()
	renamed := make(map[int]bool, len(g.ids))
	return nodeStmt.ReplaceAllStringFunc(src, func(stmt string) string {
		m := nodeStmt.FindStringSubmatch(stmt)
		seq, err := strconv.Atoi(m[2])
		if err != nil || seq < 1 || seq > len(g.ids) || renamed[seq] {
			return stmt
		}

		renamed[seq] = true
		return m[1] + quoteID(g.ids[seq-1]) + "["
	})
}

var (
	// nodeStmt matches the start of a node statement as written by dot.
	nodeStmt = regexp.MustCompile(`(^|[\s{;])n(\d+)\[`)
	plainID  = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)
)

// Keywords are case-insensitive in DOT.
var keywords = map[string]bool{
	"node":     true,
	"edge":     true,
	"graph":    true,
	"digraph":  true,
	"subgraph": true,
	"strict":   true,
}

// quoteID returns id as a DOT identifier, quoting it if necessary.
func quoteID(id string) string {
	if plainID.MatchString(id) && !keywords[strings.ToLower(id)] {
		return id
	}

	return strconv.Quote(id)
}

func isHTMLLabel(label string) bool {
	return len(label) >= 2 && label[0] == '<' && label[len(label)-1] == '>'
}
