// Package layout runs a force-directed simulation over a graph and produces
// node positions.
package layout

import (
	"encoding/binary"
	"encoding/json"
	"fmt"
	"io"
	"math"

	"github.com/cespare/xxhash/v2"

	"github.com/onnwee/forcelayout/internal/ident"
)

// Node is a graph vertex. X and Y are optional; nodes without both are
// seeded inside the simulation bounds.
type Node struct {
	ID    ident.ID `json:"id"`
	X     *float64 `json:"x,omitempty"`
	Y     *float64 `json:"y,omitempty"`
	Fixed bool     `json:"fixed,omitempty"`
}

// Edge links two nodes by id. Each edge becomes one spring.
type Edge struct {
	Source ident.ID `json:"source"`
	Target ident.ID `json:"target"`
}

// Graph is the input to a layout run.
type Graph struct {
	Nodes []Node `json:"nodes"`
	Edges []Edge `json:"edges"`
}

// DecodeGraph reads a JSON graph from r.
func DecodeGraph(r io.Reader) (*Graph, error) {
	var g Graph
	if err := json.NewDecoder(r).Decode(&g); err != nil {
		return nil, fmt.Errorf("decode graph: %w", err)
	}
	return &g, nil
}

// Fingerprint hashes the graph content. Graphs with the same nodes, seeds
// and edges in the same order share a fingerprint.
func (g *Graph) Fingerprint() uint64 {
	d := xxhash.New()
	g.hashInto(d)
	return d.Sum64()
}

func (g *Graph) hashInto(d *xxhash.Digest) {
	var buf []byte
	buf = binary.LittleEndian.AppendUint64(buf, uint64(len(g.Nodes)))
	for _, n := range g.Nodes {
		buf = appendID(buf, n.ID)
		buf = appendCoord(buf, n.X)
		buf = appendCoord(buf, n.Y)
		if n.Fixed {
			buf = append(buf, 1)
		} else {
			buf = append(buf, 0)
		}
	}
	buf = binary.LittleEndian.AppendUint64(buf, uint64(len(g.Edges)))
	for _, e := range g.Edges {
		buf = appendID(buf, e.Source)
		buf = appendID(buf, e.Target)
	}
	_, _ = d.Write(buf)
}

func appendID(buf []byte, id ident.ID) []byte {
	// The JSON form keeps Int(1) and String("1") apart
	b, _ := id.MarshalJSON()
	buf = binary.LittleEndian.AppendUint32(buf, uint32(len(b)))
	return append(buf, b...)
}

func appendCoord(buf []byte, v *float64) []byte {
	if v == nil {
		return append(buf, 0)
	}
	buf = append(buf, 1)
	return binary.LittleEndian.AppendUint64(buf, math.Float64bits(*v))
}

// Position is the final location of one node.
type Position struct {
	ID ident.ID `json:"id"`
	X  float64  `json:"x"`
	Y  float64  `json:"y"`
}

// Result is the output of a layout run. Positions follow the input node order.
type Result struct {
	Iterations int        `json:"iterations"`
	Energy     float64    `json:"energy"`
	Positions  []Position `json:"positions"`
}

// Encode writes r as JSON.
func (r *Result) Encode(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(r); err != nil {
		return fmt.Errorf("encode result: %w", err)
	}
	return nil
}

// DecodeResult reads a JSON result from r.
func DecodeResult(r io.Reader) (*Result, error) {
	var res Result
	if err := json.NewDecoder(r).Decode(&res); err != nil {
		return nil, fmt.Errorf("decode result: %w", err)
	}
	return &res, nil
}

// Apply copies result positions back onto the graph so a later run resumes
// from them. Nodes missing from the result are left alone.
func (g *Graph) Apply(res *Result) {
	byID := make(map[ident.ID]Position, len(res.Positions))
	for _, p := range res.Positions {
		byID[p.ID] = p
	}
	for i := range g.Nodes {
		p, ok := byID[g.Nodes[i].ID]
		if !ok {
			continue
		}
		x, y := p.X, p.Y
		g.Nodes[i].X = &x
		g.Nodes[i].Y = &y
	}
}
