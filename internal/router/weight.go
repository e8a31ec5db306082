package router

// RouteWeight is the cost of riding one bus over a span of stops: the wait at
// the boarding stop plus the ride time, in minutes.
type RouteWeight struct {
	Bus       string
	TotalTime float64
	SpanCount int
}

// Less orders weights by total time only.
func (w RouteWeight) Less(other RouteWeight) bool {
	return w.TotalTime < other.TotalTime
}

// Add accumulates time and spans along a path. The result carries the bus of
// the later weight; accumulated weights are only ever compared, never shown.
func (w RouteWeight) Add(other RouteWeight) RouteWeight {
	return RouteWeight{
		Bus:       other.Bus,
		TotalTime: w.TotalTime + other.TotalTime,
		SpanCount: w.SpanCount + other.SpanCount,
	}
}
