package gamegraph

import (
	"fmt"
	"io"
	"testing"

	"github.com/pkg/errors"
)

type fakeGraph struct {
	name   string
	labels map[string]string
}

func (g *fakeGraph) AddNode(id, label string) {
	g.labels[id] = label
}

func (g *fakeGraph) Label(id string) (string, bool) {
	label, ok := g.labels[id]
	return label, ok
}

func (g *fakeGraph) NumNodes() int {
	return len(g.labels)
}

func (g *fakeGraph) WriteTo(w io.Writer) (int64, error) {
	n, err := io.WriteString(w, g.String())
	return int64(n), err
}

func (g *fakeGraph) String() string {
	return fmt.Sprintf("%s%v", g.name, g.labels)
}

type fakeProvider struct {
	names []string
}

func (p *fakeProvider) NewGraph(name string) (Graph, error) {
	p.names = append(p.names, name)
	return &fakeGraph{name: name, labels: make(map[string]string)}, nil
}

type failingProvider struct {
	err error
}

func (p failingProvider) NewGraph(name string) (Graph, error) {
	return nil, p.err
}

func TestBuildGraph(t *testing.T) {
	p := &fakeProvider{}
	game := Description{Players: []string{"Alice", "Bob"}}
	g, err := BuildGraph(p, game)
	if err != nil {
		t.Fatal(err)
	}

	if len(p.names) != 1 || p.names[0] != GraphName {
		t.Errorf("provider created graphs %v, expected [%v]", p.names, GraphName)
	}

	if g.NumNodes() != 1 {
		t.Errorf("graph has %d nodes, expected 1", g.NumNodes())
	}

	label, ok := g.Label(TableNode)
	if !ok {
		t.Fatalf("graph has no %q node", TableNode)
	}
	if label != FormatTable(game) {
		t.Errorf("got label %q, expected %q", label, FormatTable(game))
	}
}

func TestBuildGraph_Independent(t *testing.T) {
	p := &fakeProvider{}
	game := Description{}
	g1, err := BuildGraph(p, game)
	if err != nil {
		t.Fatal(err)
	}
	g2, err := BuildGraph(p, game)
	if err != nil {
		t.Fatal(err)
	}

	if g1 == g2 {
		t.Fatal("BuildGraph returned the same graph twice")
	}

	g1.AddNode("extra", "extra")
	if g2.NumNodes() != 1 {
		t.Errorf("modifying first graph changed second: %d nodes", g2.NumNodes())
	}

	l1, _ := g1.Label(TableNode)
	l2, _ := g2.Label(TableNode)
	if l1 != l2 {
		t.Errorf("graphs have different labels: %q != %q", l1, l2)
	}
}

type nilGraphProvider struct{}

func (nilGraphProvider) NewGraph(name string) (Graph, error) {
	return nil, nil
}

func TestBuildGraph_Unavailable(t *testing.T) {
	var warnings []string
	defer func(orig func(...interface{})) { logWarning = orig }(logWarning)
	logWarning = func(args ...interface{}) {
		warnings = append(warnings, fmt.Sprint(args...))
	}

	for _, p := range []Provider{nil, Unavailable{}} {
		warnings = nil
		g, err := BuildGraph(p, Description{})
		if g != nil {
			t.Errorf("got graph %v from unavailable provider", g)
		}

		if !IsUnavailable(err) {
			t.Fatalf("got error %v, expected UnavailableError", err)
		}

		uerr := err.(*UnavailableError)
		if len(uerr.Hints) != 2 {
			t.Errorf("got %d hints, expected 2: %v", len(uerr.Hints), uerr.Hints)
		}

		if len(warnings) != 2 {
			t.Fatalf("logged %d warnings, expected 2: %v", len(warnings), warnings)
		}
		for i, hint := range uerr.Hints {
			if warnings[i] != hint {
				t.Errorf("logged warning %q, expected %q", warnings[i], hint)
			}
		}
	}
}

func TestBuildGraph_NoWarningsWhenAvailable(t *testing.T) {
	nWarnings := 0
	defer func(orig func(...interface{})) { logWarning = orig }(logWarning)
	logWarning = func(args ...interface{}) { nWarnings++ }

	if _, err := BuildGraph(&fakeProvider{}, Description{}); err != nil {
		t.Fatal(err)
	}
	if nWarnings != 0 {
		t.Errorf("logged %d warnings, expected none", nWarnings)
	}
}

func TestBuildGraph_NilGraph(t *testing.T) {
	g, err := BuildGraph(nilGraphProvider{}, Description{})
	if err == nil {
		t.Fatal("expected error when provider returns no graph")
	}
	if g != nil {
		t.Errorf("got graph %v, expected nil", g)
	}
	if IsUnavailable(err) {
		t.Errorf("nil graph error %v reported as unavailable", err)
	}
}

func TestBuildGraph_WrappedUnavailable(t *testing.T) {
	p := failingProvider{err: errors.Wrap(&UnavailableError{Hints: []string{"a", "b"}}, "no graphviz")}
	_, err := BuildGraph(p, Description{})
	if !IsUnavailable(err) {
		t.Errorf("got error %v, expected UnavailableError", err)
	}
}

func TestBuildGraph_ProviderError(t *testing.T) {
	cause := errors.New("out of graphs")
	_, err := BuildGraph(failingProvider{err: cause}, Description{})
	if err == nil {
		t.Fatal("expected error from failing provider")
	}

	if IsUnavailable(err) {
		t.Errorf("provider error %v reported as unavailable", err)
	}
	if errors.Cause(err) != cause {
		t.Errorf("got cause %v, expected %v", errors.Cause(err), cause)
	}
}

func TestUnavailable_HintsNotShared(t *testing.T) {
	_, err := Unavailable{}.NewGraph(GraphName)
	err.(*UnavailableError).Hints[0] = "modified"

	_, err = Unavailable{}.NewGraph(GraphName)
	if err.(*UnavailableError).Hints[0] == "modified" {
		t.Error("hints are shared between errors")
	}
}
