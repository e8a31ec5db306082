package catalogue

import (
	"fmt"
	"slices"
	"sort"

	"github.com/tcat/transit-catalogue/internal/geo"
)

type stopPair struct {
	from, to int
}

// Catalogue is the registry of stops, routes and measured distances.
//
// Stops and routes live in append-only slices and are referenced by index, so
// references stay valid as the catalogue grows. A catalogue is filled once and
// then only read; it is not safe for concurrent mutation.
type Catalogue struct {
	stops       []Stop
	stopsByName map[string]int

	routes       []Route
	routesByName map[string]int

	// routes passing through each stop, keyed by stop index
	busesByStop map[int]map[string]struct{}

	distances map[stopPair]int
}

func New() *Catalogue {
	return &Catalogue{
		stopsByName:  make(map[string]int),
		routesByName: make(map[string]int),
		busesByStop:  make(map[int]map[string]struct{}),
		distances:    make(map[stopPair]int),
	}
}

// AddStop registers a new stop. Stop names are unique within a catalogue.
func (c *Catalogue) AddStop(name string, coordinates geo.Coordinates) error {
	if _, exists := c.stopsByName[name]; exists {
		return fmt.Errorf("%w: %q", ErrDuplicateStop, name)
	}

	c.stops = append(c.stops, Stop{Name: name, Coordinates: coordinates})
	c.stopsByName[name] = len(c.stops) - 1
	return nil
}

// AddRoute registers a route over stops that are already in the catalogue.
func (c *Catalogue) AddRoute(name string, routeType RouteType, stopNames []string) error {
	if _, exists := c.routesByName[name]; exists {
		return fmt.Errorf("%w: %q", ErrDuplicateRoute, name)
	}
	if len(stopNames) == 0 {
		return fmt.Errorf("%w: %q", ErrEmptyRoute, name)
	}

	stops := make([]int, 0, len(stopNames))
	for _, stopName := range stopNames {
		idx, ok := c.stopsByName[stopName]
		if !ok {
			return fmt.Errorf("route %q: %w: %q", name, ErrUnknownStop, stopName)
		}
		stops = append(stops, idx)
	}

	c.routes = append(c.routes, Route{Name: name, Type: routeType, Stops: stops})
	c.routesByName[name] = len(c.routes) - 1

	for _, idx := range stops {
		buses, ok := c.busesByStop[idx]
		if !ok {
			buses = make(map[string]struct{})
			c.busesByStop[idx] = buses
		}
		buses[name] = struct{}{}
	}
	return nil
}

// SetDistance stores the measured distance in meters from one stop to another,
// replacing any earlier value for the same direction.
func (c *Catalogue) SetDistance(from, to string, meters int) error {
	fromIdx, ok := c.stopsByName[from]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownStop, from)
	}
	toIdx, ok := c.stopsByName[to]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownStop, to)
	}

	c.distances[stopPair{fromIdx, toIdx}] = meters
	return nil
}

// Distance returns the measured distance from one stop to another. When only
// the opposite direction was recorded, that value is used instead.
func (c *Catalogue) Distance(from, to string) (int, error) {
	fromIdx, fromOK := c.stopsByName[from]
	toIdx, toOK := c.stopsByName[to]
	if fromOK && toOK {
		if d, ok := c.distanceBetween(fromIdx, toIdx); ok {
			return d, nil
		}
	}
	return 0, fmt.Errorf("%w: between %q and %q", ErrDistanceNotFound, from, to)
}

func (c *Catalogue) forwardDistance(from, to int) (int, bool) {
	d, ok := c.distances[stopPair{from, to}]
	return d, ok
}

func (c *Catalogue) distanceBetween(from, to int) (int, bool) {
	if d, ok := c.forwardDistance(from, to); ok {
		return d, true
	}
	return c.forwardDistance(to, from)
}

// RouteInfo computes statistics for the named route.
func (c *Catalogue) RouteInfo(name string) (RouteInfo, error) {
	idx, ok := c.routesByName[name]
	if !ok {
		return RouteInfo{}, fmt.Errorf("%w: %q", ErrRouteNotFound, name)
	}
	route := c.routes[idx]

	length, err := c.roadLength(route)
	if err != nil {
		return RouteInfo{}, fmt.Errorf("route %q: %w", name, err)
	}

	return RouteInfo{
		Name:            route.Name,
		Type:            route.Type,
		StopCount:       stopCount(route),
		UniqueStopCount: uniqueStopCount(route),
		RouteLength:     length,
		Curvature:       float64(length) / c.geographicLength(route),
	}, nil
}

// BusesForStop returns the names of the routes serving a stop in lexicographic order.
func (c *Catalogue) BusesForStop(name string) ([]string, error) {
	idx, ok := c.stopsByName[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrStopNotFound, name)
	}

	buses := make([]string, 0, len(c.busesByStop[idx]))
	for bus := range c.busesByStop[idx] {
		buses = append(buses, bus)
	}
	sort.Strings(buses)
	return buses, nil
}

func (c *Catalogue) FindStop(name string) (Stop, error) {
	idx, ok := c.stopsByName[name]
	if !ok {
		return Stop{}, fmt.Errorf("%w: %q", ErrStopNotFound, name)
	}
	return c.stops[idx], nil
}

func (c *Catalogue) FindRoute(name string) (Route, error) {
	idx, ok := c.routesByName[name]
	if !ok {
		return Route{}, fmt.Errorf("%w: %q", ErrRouteNotFound, name)
	}
	route := c.routes[idx]
	route.Stops = slices.Clone(route.Stops)
	return route, nil
}

// RouteStops returns the stops of a route in listed order.
func (c *Catalogue) RouteStops(name string) ([]Stop, error) {
	idx, ok := c.routesByName[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrRouteNotFound, name)
	}

	route := c.routes[idx]
	stops := make([]Stop, len(route.Stops))
	for i, stopIdx := range route.Stops {
		stops[i] = c.stops[stopIdx]
	}
	return stops, nil
}

// Stops returns a copy of every stop, ordered by name.
func (c *Catalogue) Stops() []Stop {
	stops := slices.Clone(c.stops)
	sort.Slice(stops, func(i, j int) bool {
		return stops[i].Name < stops[j].Name
	})
	return stops
}

// Routes returns a copy of every route, ordered by name.
func (c *Catalogue) Routes() []Route {
	routes := make([]Route, len(c.routes))
	for i, route := range c.routes {
		route.Stops = slices.Clone(route.Stops)
		routes[i] = route
	}
	sort.Slice(routes, func(i, j int) bool {
		return routes[i].Name < routes[j].Name
	})
	return routes
}

// StopName resolves a stop index held by a Route.
func (c *Catalogue) StopName(idx int) string {
	return c.stops[idx].Name
}

func (c *Catalogue) StopCount() int {
	return len(c.stops)
}

func (c *Catalogue) RouteCount() int {
	return len(c.routes)
}

// roadLength sums measured distances along the traversal of a route,
// including the way back for linear routes.
func (c *Catalogue) roadLength(route Route) (int, error) {
	total := 0
	for i := 1; i < len(route.Stops); i++ {
		d, err := c.segmentDistance(route.Stops[i-1], route.Stops[i])
		if err != nil {
			return 0, err
		}
		total += d
	}

	if route.Type == Linear {
		for i := len(route.Stops) - 1; i > 0; i-- {
			d, err := c.segmentDistance(route.Stops[i], route.Stops[i-1])
			if err != nil {
				return 0, err
			}
			total += d
		}
	}
	return total, nil
}

func (c *Catalogue) segmentDistance(from, to int) (int, error) {
	d, ok := c.distanceBetween(from, to)
	if !ok {
		return 0, fmt.Errorf("%w: between %q and %q", ErrDistanceNotFound, c.stops[from].Name, c.stops[to].Name)
	}
	return d, nil
}

func (c *Catalogue) geographicLength(route Route) float64 {
	total := 0.0
	for i := 1; i < len(route.Stops); i++ {
		total += geo.Distance(c.stops[route.Stops[i-1]].Coordinates, c.stops[route.Stops[i]].Coordinates)
	}
	if route.Type == Linear {
		total *= 2
	}
	return total
}

func stopCount(route Route) int {
	if route.Type == Linear {
		return len(route.Stops)*2 - 1
	}
	return len(route.Stops)
}

func uniqueStopCount(route Route) int {
	unique := make(map[int]struct{}, len(route.Stops))
	for _, idx := range route.Stops {
		unique[idx] = struct{}{}
	}
	return len(unique)
}
