package models

const (
	ItemTypeWait = "Wait"
	ItemTypeBus  = "Bus"
)

// WaitItem is the time spent at a stop before boarding.
type WaitItem struct {
	Type     string  `json:"type"`
	StopName string  `json:"stop_name"`
	Time     float64 `json:"time"`
}

func NewWaitItem(stopName string, waitTime float64) WaitItem {
	return WaitItem{
		Type:     ItemTypeWait,
		StopName: stopName,
		Time:     waitTime,
	}
}

// BusItem is the riding part of a leg.
type BusItem struct {
	Type      string  `json:"type"`
	Bus       string  `json:"bus"`
	SpanCount int     `json:"span_count"`
	Time      float64 `json:"time"`
}

func NewBusItem(bus string, spanCount int, rideTime float64) BusItem {
	return BusItem{
		Type:      ItemTypeBus,
		Bus:       bus,
		SpanCount: spanCount,
		Time:      rideTime,
	}
}

// RouteResponse items alternate WaitItem and BusItem, one pair per leg.
type RouteResponse struct {
	RequestID int           `json:"request_id"`
	TotalTime float64       `json:"total_time"`
	Items     []interface{} `json:"items"`
}

func NewRouteResponse(requestID int, totalTime float64, items []interface{}) RouteResponse {
	if items == nil {
		items = []interface{}{}
	}
	return RouteResponse{
		RequestID: requestID,
		TotalTime: totalTime,
		Items:     items,
	}
}
