package engine

import (
	"strconv"

	"github.com/katalvlaran/lvlath/graph"
)

// PrecedentGraph is the advisory, non-authoritative dependency graph
// named in §4.6: it records which cells a cell's last evaluation touched,
// purely for "show precedents/dependents" UI queries. It never gates
// evaluation order and never
// participates in cycle detection — that is entirely the job of
// CallStack/generation (§4.2). Backed by lvlath's adjacency-list Graph,
// grounded on `_examples/vogtb-go-spreadsheet/packages/spreadsheet/graph.go`'s
// DependencyNode/DependencyGraph shape, adapted to wrap a real graph
// library instead of a hand-rolled node map.
type PrecedentGraph struct {
	g *graph.Graph
}

// NewPrecedentGraph returns an empty, directed, unweighted precedent
// graph: an edge from -> to records "from's last evaluation read to".
func NewPrecedentGraph() *PrecedentGraph {
	return &PrecedentGraph{g: graph.NewGraph(true, false)}
}

func vertexID(col, row int64) string {
	return strconv.FormatInt(col, 10) + ":" + strconv.FormatInt(row, 10)
}

// RecordPrecedent notes that the cell at (fromCol,fromRow) read the cell
// at (toCol,toRow) during its most recent evaluation.
func (p *PrecedentGraph) RecordPrecedent(fromCol, fromRow, toCol, toRow int64) {
	p.g.AddEdge(vertexID(fromCol, fromRow), vertexID(toCol, toRow), 0)
}

// ClearPrecedentsOf drops every recorded precedent edge originating at
// (col,row), called before re-recording a cell's precedents on
// re-evaluation so stale edges from a previously-wider formula don't
// linger.
func (p *PrecedentGraph) ClearPrecedentsOf(col, row int64) {
	id := vertexID(col, row)
	if !p.g.HasVertex(id) {
		return
	}
	for _, nbr := range p.g.Neighbors(id) {
		p.g.RemoveEdge(id, nbr.ID)
	}
}

// Precedents returns the (col,row) pairs the given cell's last
// evaluation directly read.
func (p *PrecedentGraph) Precedents(col, row int64) [][2]int64 {
	id := vertexID(col, row)
	if !p.g.HasVertex(id) {
		return nil
	}
	var out [][2]int64
	for _, nbr := range p.g.Neighbors(id) {
		c, r, ok := parseVertexID(nbr.ID)
		if ok {
			out = append(out, [2]int64{c, r})
		}
	}
	return out
}

// Dependents returns the (col,row) pairs that directly read the given
// cell, by scanning recorded edges. Advisory only — used for the
// "show dependents" UI query, not recalc scheduling.
func (p *PrecedentGraph) Dependents(col, row int64) [][2]int64 {
	target := vertexID(col, row)
	var out [][2]int64
	for _, e := range p.g.Edges() {
		if e.To.ID == target {
			c, r, ok := parseVertexID(e.From.ID)
			if ok {
				out = append(out, [2]int64{c, r})
			}
		}
	}
	return out
}

// RemoveCell drops (col,row) and all its edges entirely, called when a
// structural edit clears a cell outright.
func (p *PrecedentGraph) RemoveCell(col, row int64) {
	p.g.RemoveVertex(vertexID(col, row))
}

// Clear discards every recorded edge, called at the start of each Recalc
// pass (§4.6): stale edges from a structural edit are cheaper to rebuild
// from scratch than to patch incrementally.
func (p *PrecedentGraph) Clear() {
	p.g = graph.NewGraph(true, false)
}

func parseVertexID(id string) (col, row int64, ok bool) {
	for i := 0; i < len(id); i++ {
		if id[i] == ':' {
			c, err1 := strconv.ParseInt(id[:i], 10, 64)
			r, err2 := strconv.ParseInt(id[i+1:], 10, 64)
			if err1 != nil || err2 != nil {
				return 0, 0, false
			}
			return c, r, true
		}
	}
	return 0, 0, false
}
