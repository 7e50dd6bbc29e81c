package layout

import (
	"bytes"
	"strings"
	"testing"

	"github.com/onnwee/forcelayout/internal/ident"
)

func ptr(v float64) *float64 { return &v }

func TestDecodeGraph(t *testing.T) {
	input := `{
		"nodes": [
			{"id": 1, "x": 10, "y": 20, "fixed": true},
			{"id": "b"},
			{"id": 3, "x": 5}
		],
		"edges": [{"source": 1, "target": "b"}]
	}`

	g, err := DecodeGraph(strings.NewReader(input))
	if err != nil {
		t.Fatalf("DecodeGraph failed: %v", err)
	}
	if len(g.Nodes) != 3 || len(g.Edges) != 1 {
		t.Fatalf("got %d nodes and %d edges, want 3 and 1", len(g.Nodes), len(g.Edges))
	}

	n := g.Nodes[0]
	if n.ID != ident.Int(1) || n.X == nil || *n.X != 10 || n.Y == nil || *n.Y != 20 || !n.Fixed {
		t.Errorf("unexpected first node: %+v", n)
	}
	if g.Nodes[1].ID != ident.String("b") || g.Nodes[1].X != nil || g.Nodes[1].Y != nil {
		t.Errorf("unexpected second node: %+v", g.Nodes[1])
	}
	if g.Nodes[2].X == nil || g.Nodes[2].Y != nil {
		t.Errorf("expected only x on third node: %+v", g.Nodes[2])
	}
	if g.Edges[0].Source != ident.Int(1) || g.Edges[0].Target != ident.String("b") {
		t.Errorf("unexpected edge: %+v", g.Edges[0])
	}
}

func TestDecodeGraph_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"not json", "nodes"},
		{"float id", `{"nodes":[{"id":1.5}]}`},
		{"bool id", `{"nodes":[{"id":true}]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := DecodeGraph(strings.NewReader(tt.input)); err == nil {
				t.Error("expected decode error")
			}
		})
	}
}

func TestFingerprint(t *testing.T) {
	base := func() *Graph {
		return &Graph{
			Nodes: []Node{{ID: ident.Int(1), X: ptr(0), Y: ptr(0)}, {ID: ident.Int(2)}},
			Edges: []Edge{{Source: ident.Int(1), Target: ident.Int(2)}},
		}
	}

	if base().Fingerprint() != base().Fingerprint() {
		t.Fatal("fingerprint is not stable")
	}

	tests := []struct {
		name   string
		mutate func(g *Graph)
	}{
		{"string id", func(g *Graph) { g.Nodes[1].ID = ident.String("2") }},
		{"moved node", func(g *Graph) { g.Nodes[0].X = ptr(1) }},
		{"seeded node", func(g *Graph) { g.Nodes[1].X = ptr(0) }},
		{"fixed node", func(g *Graph) { g.Nodes[0].Fixed = true }},
		{"reversed edge", func(g *Graph) { g.Edges[0] = Edge{Source: ident.Int(2), Target: ident.Int(1)} }},
		{"no edges", func(g *Graph) { g.Edges = nil }},
	}
	want := base().Fingerprint()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := base()
			tt.mutate(g)
			if g.Fingerprint() == want {
				t.Error("expected fingerprint to change")
			}
		})
	}
}

func TestResultEncode(t *testing.T) {
	res := &Result{
		Iterations: 3,
		Energy:     0.5,
		Positions: []Position{
			{ID: ident.Int(7), X: 1, Y: 2},
			{ID: ident.String("n"), X: -3, Y: 4},
		},
	}

	var buf bytes.Buffer
	if err := res.Encode(&buf); err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	if !strings.Contains(buf.String(), `"id": "n"`) || !strings.Contains(buf.String(), `"id": 7`) {
		t.Errorf("ids not encoded by variant: %s", buf.String())
	}

	got, err := DecodeResult(&buf)
	if err != nil {
		t.Fatalf("DecodeResult failed: %v", err)
	}
	if got.Positions[1].ID != ident.String("n") || got.Positions[1].X != -3 {
		t.Errorf("unexpected decoded position: %+v", got.Positions[1])
	}
}

func TestApply(t *testing.T) {
	g := &Graph{Nodes: []Node{{ID: ident.Int(1)}, {ID: ident.Int(2), X: ptr(9), Y: ptr(9)}}}
	g.Apply(&Result{Positions: []Position{{ID: ident.Int(1), X: 4, Y: 5}}})

	if g.Nodes[0].X == nil || *g.Nodes[0].X != 4 || *g.Nodes[0].Y != 5 {
		t.Errorf("position not applied: %+v", g.Nodes[0])
	}
	if *g.Nodes[1].X != 9 {
		t.Errorf("untouched node changed: %+v", g.Nodes[1])
	}
}
