package router

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/tcat/transit-catalogue/internal/catalogue"
	"github.com/tcat/transit-catalogue/internal/graph"
	"github.com/tcat/transit-catalogue/internal/logging"
)

var ErrStopNotFound = errors.New("stop not known to router")

type graphState int

const (
	graphEmpty graphState = iota
	graphBuilt
)

// Leg is one ride on a single bus from boarding stop to alighting stop.
// Time includes the wait at the boarding stop.
type Leg struct {
	Bus       string
	From      string
	To        string
	SpanCount int
	Time      float64
}

type Itinerary struct {
	Legs      []Leg
	TotalTime float64
}

// TransportRouter answers shortest-time itinerary queries over a catalogue.
//
// The routing graph is built from the catalogue on the first query or by an
// explicit InitGraph call and is never changed afterwards. The catalogue must
// not be modified once the router is in use. A TransportRouter is not safe for
// concurrent use.
type TransportRouter struct {
	catalogue *catalogue.Catalogue
	settings  Settings
	logger    *slog.Logger

	state        graphState
	graph        *graph.DirectedWeightedGraph[RouteWeight]
	router       *graph.Router[RouteWeight]
	stopByVertex []string
	vertexByStop map[string]graph.VertexID
}

func New(c *catalogue.Catalogue, settings Settings, logger *slog.Logger) *TransportRouter {
	return &TransportRouter{
		catalogue: c,
		settings:  settings,
		logger:    logger,
	}
}

func (r *TransportRouter) Settings() Settings {
	return r.settings
}

// InitGraph builds the routing graph. Calling it again after a successful
// build does nothing.
func (r *TransportRouter) InitGraph() error {
	if r.state == graphBuilt {
		return nil
	}
	if err := r.settings.Validate(); err != nil {
		return err
	}

	start := time.Now()

	stops := r.catalogue.Stops()
	g := graph.NewDirectedWeightedGraph[RouteWeight](len(stops))
	stopByVertex := make([]string, len(stops))
	vertexByStop := make(map[string]graph.VertexID, len(stops))
	for i, stop := range stops {
		stopByVertex[i] = stop.Name
		vertexByStop[stop.Name] = graph.VertexID(i)
	}

	for _, route := range r.catalogue.Routes() {
		names := make([]string, len(route.Stops))
		for i, idx := range route.Stops {
			names[i] = r.catalogue.StopName(idx)
		}

		if err := r.addTraversal(g, vertexByStop, route.Name, names); err != nil {
			return err
		}
		if route.Type == catalogue.Linear {
			if err := r.addTraversal(g, vertexByStop, route.Name, reversed(names)); err != nil {
				return err
			}
		}
	}

	r.graph = g
	r.router = graph.NewRouter(g)
	r.stopByVertex = stopByVertex
	r.vertexByStop = vertexByStop
	r.state = graphBuilt

	logging.LogOperation(r.logger, "routing_graph_built",
		slog.Int("vertices", g.VertexCount()),
		slog.Int("edges", g.EdgeCount()),
		slog.Duration("duration", time.Since(start)))
	return nil
}

// addTraversal adds one edge for every pair of stops i < j along the given
// direction of a route.
func (r *TransportRouter) addTraversal(g *graph.DirectedWeightedGraph[RouteWeight], vertexByStop map[string]graph.VertexID, bus string, stops []string) error {
	segmentTimes := make([]float64, len(stops))
	for k := 1; k < len(stops); k++ {
		d, err := r.catalogue.Distance(stops[k-1], stops[k])
		if err != nil {
			return fmt.Errorf("route %q: %w", bus, err)
		}
		segmentTimes[k] = float64(d) / r.settings.Velocity
	}

	for i := 0; i < len(stops); i++ {
		rideTime := 0.0
		for j := i + 1; j < len(stops); j++ {
			rideTime += segmentTimes[j]
			_, err := g.AddEdge(graph.Edge[RouteWeight]{
				From: vertexByStop[stops[i]],
				To:   vertexByStop[stops[j]],
				Weight: RouteWeight{
					Bus:       bus,
					TotalTime: r.settings.WaitTime + rideTime,
					SpanCount: j - i,
				},
			})
			if err != nil {
				return fmt.Errorf("route %q: %w", bus, err)
			}
		}
	}
	return nil
}

// FindRoute returns the fastest itinerary between two stops. It returns a nil
// itinerary and nil error when no path exists, and ErrStopNotFound when either
// stop is unknown.
func (r *TransportRouter) FindRoute(from, to string) (*Itinerary, error) {
	if err := r.InitGraph(); err != nil {
		return nil, err
	}

	fromVertex, ok := r.vertexByStop[from]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrStopNotFound, from)
	}
	toVertex, ok := r.vertexByStop[to]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrStopNotFound, to)
	}

	route, found := r.router.BuildRoute(fromVertex, toVertex)
	if !found {
		return nil, nil
	}

	itinerary := &Itinerary{Legs: make([]Leg, 0, len(route.Edges))}
	for _, id := range route.Edges {
		edge := r.graph.Edge(id)
		itinerary.Legs = append(itinerary.Legs, Leg{
			Bus:       edge.Weight.Bus,
			From:      r.stopByVertex[edge.From],
			To:        r.stopByVertex[edge.To],
			SpanCount: edge.Weight.SpanCount,
			Time:      edge.Weight.TotalTime,
		})
		itinerary.TotalTime += edge.Weight.TotalTime
	}
	return itinerary, nil
}

// GraphSize reports the vertex and edge counts of the built graph, or zeros
// before InitGraph.
func (r *TransportRouter) GraphSize() (vertices, edges int) {
	if r.state != graphBuilt {
		return 0, 0
	}
	return r.graph.VertexCount(), r.graph.EdgeCount()
}

func reversed(names []string) []string {
	out := make([]string, len(names))
	for i, name := range names {
		out[len(names)-1-i] = name
	}
	return out
}
