package models

import "github.com/tcat/transit-catalogue/internal/mapview"

const NotFoundMessage = "not found"

// ErrorResponse is returned for any stat request whose subject is unknown.
type ErrorResponse struct {
	RequestID    int    `json:"request_id"`
	ErrorMessage string `json:"error_message"`
}

func NewNotFoundResponse(requestID int) ErrorResponse {
	return ErrorResponse{
		RequestID:    requestID,
		ErrorMessage: NotFoundMessage,
	}
}

type BusResponse struct {
	RequestID       int     `json:"request_id"`
	Curvature       float64 `json:"curvature"`
	RouteLength     int     `json:"route_length"`
	StopCount       int     `json:"stop_count"`
	UniqueStopCount int     `json:"unique_stop_count"`
}

func NewBusResponse(requestID int, curvature float64, routeLength, stopCount, uniqueStopCount int) BusResponse {
	return BusResponse{
		RequestID:       requestID,
		Curvature:       curvature,
		RouteLength:     routeLength,
		StopCount:       stopCount,
		UniqueStopCount: uniqueStopCount,
	}
}

type StopResponse struct {
	RequestID int      `json:"request_id"`
	Buses     []string `json:"buses"`
}

// NewStopResponse never encodes a null bus list: a stop without routes yields [].
func NewStopResponse(requestID int, buses []string) StopResponse {
	if buses == nil {
		buses = []string{}
	}
	return StopResponse{
		RequestID: requestID,
		Buses:     buses,
	}
}

type MapResponse struct {
	RequestID int         `json:"request_id"`
	Map       mapview.Map `json:"map"`
}

func NewMapResponse(requestID int, m mapview.Map) MapResponse {
	return MapResponse{
		RequestID: requestID,
		Map:       m,
	}
}
