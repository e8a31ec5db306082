package graph

import (
	"container/heap"
	"fmt"
	"slices"
)

// Weight is implemented by edge weights the router can minimise. The zero
// value of W must be the identity of Add, and weights must be non-negative
// with respect to Less.
type Weight[W any] interface {
	Less(other W) bool
	Add(other W) W
}

// RouteInfo is a shortest path: its accumulated weight and its edges in order.
type RouteInfo[W any] struct {
	Weight W
	Edges  []EdgeID
}

type pathVertex[W any] struct {
	reached  bool
	weight   W
	prevEdge EdgeID
	hasPrev  bool
}

// shortestPathTree holds the result of one Dijkstra run from a source.
type shortestPathTree[W any] struct {
	vertices []pathVertex[W]
}

// Router answers shortest-path queries over a graph, building a shortest path
// tree per source on first use and keeping it for later queries. The graph
// must not change while the router is in use. A Router is not safe for
// concurrent use.
type Router[W Weight[W]] struct {
	graph *DirectedWeightedGraph[W]
	trees map[VertexID]*shortestPathTree[W]
}

func NewRouter[W Weight[W]](g *DirectedWeightedGraph[W]) *Router[W] {
	return &Router[W]{
		graph: g,
		trees: make(map[VertexID]*shortestPathTree[W]),
	}
}

// BuildFrom computes and caches the shortest path tree rooted at source.
func (r *Router[W]) BuildFrom(source VertexID) error {
	if !r.graph.hasVertex(source) {
		return fmt.Errorf("%w: %d", ErrVertexOutOfRange, source)
	}
	if _, ok := r.trees[source]; ok {
		return nil
	}

	r.trees[source] = r.dijkstra(source)
	return nil
}

// BuildRoute returns the shortest path from one vertex to another and false
// if to cannot be reached or either vertex is unknown.
func (r *Router[W]) BuildRoute(from, to VertexID) (RouteInfo[W], bool) {
	if err := r.BuildFrom(from); err != nil {
		return RouteInfo[W]{}, false
	}
	if !r.graph.hasVertex(to) {
		return RouteInfo[W]{}, false
	}

	tree := r.trees[from]
	target := tree.vertices[to]
	if !target.reached {
		return RouteInfo[W]{}, false
	}

	var edges []EdgeID
	for v := target; v.hasPrev; {
		edges = append(edges, v.prevEdge)
		v = tree.vertices[r.graph.Edge(v.prevEdge).From]
	}
	slices.Reverse(edges)

	return RouteInfo[W]{Weight: target.weight, Edges: edges}, true
}

// cachedSources reports how many shortest path trees have been built.
func (r *Router[W]) cachedSources() int {
	return len(r.trees)
}

func (r *Router[W]) dijkstra(source VertexID) *shortestPathTree[W] {
	tree := &shortestPathTree[W]{
		vertices: make([]pathVertex[W], r.graph.VertexCount()),
	}
	tree.vertices[source] = pathVertex[W]{reached: true}

	done := make([]bool, r.graph.VertexCount())
	pq := &priorityQueue[W]{}
	heap.Init(pq)
	heap.Push(pq, &pqItem[W]{vertex: source})

	for pq.Len() > 0 {
		item := heap.Pop(pq).(*pqItem[W])
		current := item.vertex
		if done[current] {
			continue
		}
		done[current] = true

		currentWeight := tree.vertices[current].weight
		for _, edgeID := range r.graph.incidence[current] {
			edge := r.graph.edges[edgeID]
			if done[edge.To] {
				continue
			}

			candidate := currentWeight.Add(edge.Weight)
			next := &tree.vertices[edge.To]
			if !next.reached || candidate.Less(next.weight) {
				*next = pathVertex[W]{
					reached:  true,
					weight:   candidate,
					prevEdge: edgeID,
					hasPrev:  true,
				}
				heap.Push(pq, &pqItem[W]{vertex: edge.To, weight: candidate})
			}
		}
	}

	return tree
}

type pqItem[W Weight[W]] struct {
	vertex VertexID
	weight W
}

type priorityQueue[W Weight[W]] []*pqItem[W]

func (pq priorityQueue[W]) Len() int           { return len(pq) }
func (pq priorityQueue[W]) Less(i, j int) bool { return pq[i].weight.Less(pq[j].weight) }
func (pq priorityQueue[W]) Swap(i, j int)      { pq[i], pq[j] = pq[j], pq[i] }

func (pq *priorityQueue[W]) Push(x interface{}) {
	*pq = append(*pq, x.(*pqItem[W]))
}

func (pq *priorityQueue[W]) Pop() interface{} {
	old := *pq
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	*pq = old[:n-1]
	return item
}
