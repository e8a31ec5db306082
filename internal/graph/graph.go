// Package graph provides a directed weighted graph that is built once and then
// queried, and a shortest-path router over it.
package graph

import (
	"errors"
	"fmt"
	"slices"
)

var ErrVertexOutOfRange = errors.New("vertex out of range")

type VertexID int

type EdgeID int

type Edge[W any] struct {
	From   VertexID
	To     VertexID
	Weight W
}

// DirectedWeightedGraph stores edges in insertion order and an incidence list
// of outgoing edges per vertex. Edges are never removed or changed.
type DirectedWeightedGraph[W any] struct {
	edges     []Edge[W]
	incidence [][]EdgeID
}

func NewDirectedWeightedGraph[W any](vertexCount int) *DirectedWeightedGraph[W] {
	return &DirectedWeightedGraph[W]{
		incidence: make([][]EdgeID, vertexCount),
	}
}

// AddVertex appends a vertex and returns its id; ids start at zero.
func (g *DirectedWeightedGraph[W]) AddVertex() VertexID {
	g.incidence = append(g.incidence, nil)
	return VertexID(len(g.incidence) - 1)
}

func (g *DirectedWeightedGraph[W]) AddEdge(edge Edge[W]) (EdgeID, error) {
	if !g.hasVertex(edge.From) {
		return 0, fmt.Errorf("%w: from %d", ErrVertexOutOfRange, edge.From)
	}
	if !g.hasVertex(edge.To) {
		return 0, fmt.Errorf("%w: to %d", ErrVertexOutOfRange, edge.To)
	}

	g.edges = append(g.edges, edge)
	id := EdgeID(len(g.edges) - 1)
	g.incidence[edge.From] = append(g.incidence[edge.From], id)
	return id, nil
}

func (g *DirectedWeightedGraph[W]) Edge(id EdgeID) Edge[W] {
	return g.edges[id]
}

// IncidentEdges returns the outgoing edges of v in insertion order.
func (g *DirectedWeightedGraph[W]) IncidentEdges(v VertexID) []EdgeID {
	if !g.hasVertex(v) {
		return nil
	}
	return slices.Clone(g.incidence[v])
}

func (g *DirectedWeightedGraph[W]) VertexCount() int {
	return len(g.incidence)
}

func (g *DirectedWeightedGraph[W]) EdgeCount() int {
	return len(g.edges)
}

func (g *DirectedWeightedGraph[W]) hasVertex(v VertexID) bool {
	return v >= 0 && int(v) < len(g.incidence)
}
