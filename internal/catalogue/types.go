package catalogue

import (
	"errors"

	"github.com/tcat/transit-catalogue/internal/geo"
)

var (
	ErrUnknownStop      = errors.New("unknown stop")
	ErrStopNotFound     = errors.New("stop not found")
	ErrRouteNotFound    = errors.New("route not found")
	ErrDistanceNotFound = errors.New("distance not found")
	ErrDuplicateStop    = errors.New("duplicate stop")
	ErrDuplicateRoute   = errors.New("duplicate route")
	ErrEmptyRoute       = errors.New("route has no stops")
)

// RouteType describes how a route is traversed.
type RouteType int

const (
	Unknown RouteType = iota
	// Linear routes run through the listed stops and then back again.
	Linear
	// Circle routes run through the listed stops once; the input lists the
	// first stop again at the end.
	Circle
)

func (t RouteType) String() string {
	switch t {
	case Linear:
		return "LINEAR"
	case Circle:
		return "CIRCLE"
	default:
		return "UNKNOWN"
	}
}

type Stop struct {
	Name        string
	Coordinates geo.Coordinates
}

// Route references its stops by index into the catalogue's stop storage.
type Route struct {
	Name  string
	Type  RouteType
	Stops []int
}

// RouteInfo holds statistics derived from a route on demand.
type RouteInfo struct {
	Name            string
	Type            RouteType
	StopCount       int
	UniqueStopCount int
	RouteLength     int
	// Curvature is RouteLength divided by the great-circle length; it is not
	// finite when every stop on the route shares one location.
	Curvature float64
}
