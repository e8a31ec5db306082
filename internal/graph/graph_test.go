package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// cost is a plain numeric weight for exercising the generic graph.
type cost float64

func (c cost) Less(other cost) bool { return c < other }
func (c cost) Add(other cost) cost  { return c + other }

func mustAddEdge[W any](t *testing.T, g *DirectedWeightedGraph[W], from, to VertexID, w W) EdgeID {
	t.Helper()
	id, err := g.AddEdge(Edge[W]{From: from, To: to, Weight: w})
	require.NoError(t, err)
	return id
}

func TestDirectedWeightedGraph(t *testing.T) {
	t.Run("vertices are numbered from zero", func(t *testing.T) {
		g := NewDirectedWeightedGraph[cost](0)
		assert.Equal(t, VertexID(0), g.AddVertex())
		assert.Equal(t, VertexID(1), g.AddVertex())
		assert.Equal(t, 2, g.VertexCount())
	})

	t.Run("incident edges keep insertion order", func(t *testing.T) {
		g := NewDirectedWeightedGraph[cost](3)
		e0 := mustAddEdge(t, g, 0, 1, 1)
		e1 := mustAddEdge(t, g, 1, 2, 2)
		e2 := mustAddEdge(t, g, 0, 2, 5)

		assert.Equal(t, []EdgeID{e0, e2}, g.IncidentEdges(0))
		assert.Equal(t, []EdgeID{e1}, g.IncidentEdges(1))
		assert.Empty(t, g.IncidentEdges(2))
		assert.Nil(t, g.IncidentEdges(7))
		assert.Equal(t, 3, g.EdgeCount())

		edge := g.Edge(e2)
		assert.Equal(t, VertexID(0), edge.From)
		assert.Equal(t, VertexID(2), edge.To)
		assert.Equal(t, cost(5), edge.Weight)
	})

	t.Run("rejects edges to unknown vertices", func(t *testing.T) {
		g := NewDirectedWeightedGraph[cost](2)
		_, err := g.AddEdge(Edge[cost]{From: 0, To: 2})
		assert.ErrorIs(t, err, ErrVertexOutOfRange)
		_, err = g.AddEdge(Edge[cost]{From: -1, To: 1})
		assert.ErrorIs(t, err, ErrVertexOutOfRange)
		assert.Equal(t, 0, g.EdgeCount())
	})
}

func TestRouterBuildRoute(t *testing.T) {
	//   0 --1--> 1 --1--> 2 --1--> 3
	//   0 ---------5-------------> 3
	//   0 --2.5--> 2
	g := NewDirectedWeightedGraph[cost](5)
	e01 := mustAddEdge(t, g, 0, 1, 1)
	e12 := mustAddEdge(t, g, 1, 2, 1)
	e23 := mustAddEdge(t, g, 2, 3, 1)
	mustAddEdge(t, g, 0, 3, 5)
	mustAddEdge(t, g, 0, 2, 2.5)

	r := NewRouter(g)

	t.Run("picks the cheapest chain of edges", func(t *testing.T) {
		route, ok := r.BuildRoute(0, 3)
		require.True(t, ok)
		assert.Equal(t, cost(3), route.Weight)
		assert.Equal(t, []EdgeID{e01, e12, e23}, route.Edges)
	})

	t.Run("unreachable target", func(t *testing.T) {
		_, ok := r.BuildRoute(0, 4)
		assert.False(t, ok)

		_, ok = r.BuildRoute(3, 0)
		assert.False(t, ok)
	})

	t.Run("same source and target", func(t *testing.T) {
		route, ok := r.BuildRoute(1, 1)
		require.True(t, ok)
		assert.Equal(t, cost(0), route.Weight)
		assert.Empty(t, route.Edges)
	})

	t.Run("unknown vertices", func(t *testing.T) {
		_, ok := r.BuildRoute(9, 0)
		assert.False(t, ok)
		_, ok = r.BuildRoute(0, 9)
		assert.False(t, ok)
		assert.ErrorIs(t, r.BuildFrom(-1), ErrVertexOutOfRange)
	})
}

func TestRouterCachesPerSource(t *testing.T) {
	g := NewDirectedWeightedGraph[cost](3)
	mustAddEdge(t, g, 0, 1, 2)
	mustAddEdge(t, g, 1, 2, 2)

	r := NewRouter(g)
	assert.Equal(t, 0, r.cachedSources())

	_, ok := r.BuildRoute(0, 2)
	require.True(t, ok)
	_, ok = r.BuildRoute(0, 1)
	require.True(t, ok)
	assert.Equal(t, 1, r.cachedSources())

	require.NoError(t, r.BuildFrom(1))
	assert.Equal(t, 2, r.cachedSources())
}

func TestRouterIgnoresEqualCostAlternatives(t *testing.T) {
	g := NewDirectedWeightedGraph[cost](2)
	first := mustAddEdge(t, g, 0, 1, 4)
	mustAddEdge(t, g, 0, 1, 4)

	r := NewRouter(g)
	route, ok := r.BuildRoute(0, 1)
	require.True(t, ok)
	assert.Equal(t, []EdgeID{first}, route.Edges)
}

func TestRouterOptimality(t *testing.T) {
	// a small dense graph; every route must be no worse than any two-edge detour
	g := NewDirectedWeightedGraph[cost](4)
	weights := map[[2]VertexID]cost{
		{0, 1}: 4, {0, 2}: 1, {2, 1}: 2, {1, 3}: 1, {2, 3}: 5, {3, 0}: 1, {1, 2}: 1,
	}
	for pair, w := range weights {
		mustAddEdge(t, g, pair[0], pair[1], w)
	}

	r := NewRouter(g)
	for from := VertexID(0); from < 4; from++ {
		for to := VertexID(0); to < 4; to++ {
			route, ok := r.BuildRoute(from, to)
			require.True(t, ok)

			var sum cost
			for _, id := range route.Edges {
				sum += g.Edge(id).Weight
			}
			assert.Equal(t, route.Weight, sum)

			if direct, ok := weights[[2]VertexID{from, to}]; ok {
				assert.LessOrEqual(t, route.Weight, direct)
			}
			for mid := VertexID(0); mid < 4; mid++ {
				a, okA := weights[[2]VertexID{from, mid}]
				b, okB := weights[[2]VertexID{mid, to}]
				if okA && okB && from != to {
					assert.LessOrEqual(t, route.Weight, a+b)
				}
			}
		}
	}
}
