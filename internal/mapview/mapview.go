// Package mapview turns a catalogue into map data: coloured route lines
// encoded as polylines, the stops served by buses and their bounding box.
package mapview

import (
	"github.com/twpayne/go-polyline"

	"github.com/tcat/transit-catalogue/internal/catalogue"
	"github.com/tcat/transit-catalogue/internal/geo"
)

type Settings struct {
	Palette []string
}

type Polyline struct {
	Length int    `json:"length"`
	Points string `json:"points"`
}

type RouteLine struct {
	Name     string   `json:"name"`
	Type     string   `json:"type"`
	Color    string   `json:"color,omitempty"`
	Heading  string   `json:"heading,omitempty"`
	Polyline Polyline `json:"polyline"`
}

type StopPoint struct {
	Name        string          `json:"name"`
	Coordinates geo.Coordinates `json:"coordinates"`
	Buses       []string        `json:"buses"`
}

type Map struct {
	Routes []RouteLine `json:"routes"`
	Stops  []StopPoint `json:"stops"`
	Bounds *geo.Bounds `json:"bounds,omitempty"`
}

// Build renders every route with at least one stop in name order, assigning
// palette colours cyclically. Stops without buses are left off the map.
func Build(c *catalogue.Catalogue, settings Settings) (Map, error) {
	m := Map{
		Routes: []RouteLine{},
		Stops:  []StopPoint{},
	}

	colorIdx := 0
	for _, route := range c.Routes() {
		if len(route.Stops) == 0 {
			continue
		}

		stops, err := c.RouteStops(route.Name)
		if err != nil {
			return Map{}, err
		}
		path := traversal(route.Type, stops)

		line := RouteLine{
			Name:     route.Name,
			Type:     route.Type.String(),
			Polyline: encode(path),
		}
		if len(settings.Palette) > 0 {
			line.Color = settings.Palette[colorIdx%len(settings.Palette)]
			colorIdx++
		}
		if len(path) > 1 {
			line.Heading = geo.CompassDirection(path[0], path[1])
		}
		m.Routes = append(m.Routes, line)
	}

	var points []geo.Coordinates
	for _, stop := range c.Stops() {
		buses, err := c.BusesForStop(stop.Name)
		if err != nil {
			return Map{}, err
		}
		if len(buses) == 0 {
			continue
		}
		m.Stops = append(m.Stops, StopPoint{
			Name:        stop.Name,
			Coordinates: stop.Coordinates,
			Buses:       buses,
		})
		points = append(points, stop.Coordinates)
	}

	if bounds, ok := geo.BoundsOf(points); ok {
		m.Bounds = &bounds
	}
	return m, nil
}

// traversal lists the coordinates a bus passes; linear routes come back the same way.
func traversal(routeType catalogue.RouteType, stops []catalogue.Stop) []geo.Coordinates {
	path := make([]geo.Coordinates, 0, 2*len(stops))
	for _, stop := range stops {
		path = append(path, stop.Coordinates)
	}
	if routeType == catalogue.Linear {
		for i := len(stops) - 2; i >= 0; i-- {
			path = append(path, stops[i].Coordinates)
		}
	}
	return path
}

func encode(path []geo.Coordinates) Polyline {
	coords := make([][]float64, 0, len(path))
	for _, p := range path {
		coords = append(coords, []float64{p.Lat, p.Lng})
	}
	return Polyline{
		Length: len(path),
		Points: string(polyline.EncodeCoords(coords)),
	}
}
