package gtfs

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"sort"

	"github.com/jamespfennell/gtfs"

	"github.com/tcat/transit-catalogue/internal/catalogue"
	"github.com/tcat/transit-catalogue/internal/geo"
)

// FromStatic converts parsed GTFS data into a catalogue.
//
// Stops are named by stop id and routes by route id. Each route follows the
// stop sequence of its longest trip and is a Circle when that trip ends where
// it started. Road distances are not part of GTFS, so consecutive stops get the
// rounded great-circle distance unless one is already recorded.
func FromStatic(staticData *gtfs.Static, logger *slog.Logger) (*catalogue.Catalogue, error) {
	c := catalogue.New()

	skipped := 0
	for _, stop := range staticData.Stops {
		if stop.Latitude == nil || stop.Longitude == nil {
			skipped++
			continue
		}
		coordinates := geo.Coordinates{Lat: *stop.Latitude, Lng: *stop.Longitude}
		if err := c.AddStop(stop.Id, coordinates); err != nil {
			return nil, fmt.Errorf("stop %q: %w", stop.Id, err)
		}
	}
	if skipped > 0 && logger != nil {
		logger.Warn("skipped GTFS stops without coordinates", slog.Int("count", skipped))
	}

	for _, routeID := range routeIDs(staticData) {
		stops := longestTrip(staticData, routeID, c)
		if len(stops) == 0 {
			continue
		}

		if err := setGreatCircleDistances(c, stops); err != nil {
			return nil, fmt.Errorf("route %q: %w", routeID, err)
		}

		routeType := catalogue.Linear
		if len(stops) > 1 && stops[0] == stops[len(stops)-1] {
			routeType = catalogue.Circle
		}
		if err := c.AddRoute(routeID, routeType, stops); err != nil {
			return nil, err
		}
	}
	return c, nil
}

func routeIDs(staticData *gtfs.Static) []string {
	ids := make([]string, 0, len(staticData.Routes))
	for _, route := range staticData.Routes {
		ids = append(ids, route.Id)
	}
	sort.Strings(ids)
	return ids
}

// longestTrip returns the stop ids of the route's trip with the most stops that
// the catalogue knows, ordered by stop sequence. Ties go to the lowest trip id.
func longestTrip(staticData *gtfs.Static, routeID string, c *catalogue.Catalogue) []string {
	var (
		best   []string
		bestID string
	)
	for i := range staticData.Trips {
		trip := &staticData.Trips[i]
		if trip.Route == nil || trip.Route.Id != routeID {
			continue
		}

		stopTimes := make([]gtfs.ScheduledStopTime, len(trip.StopTimes))
		copy(stopTimes, trip.StopTimes)
		sort.SliceStable(stopTimes, func(a, b int) bool {
			return stopTimes[a].StopSequence < stopTimes[b].StopSequence
		})

		stops := make([]string, 0, len(stopTimes))
		for _, stopTime := range stopTimes {
			if stopTime.Stop == nil {
				continue
			}
			if _, err := c.FindStop(stopTime.Stop.Id); err != nil {
				continue
			}
			stops = append(stops, stopTime.Stop.Id)
		}

		if len(stops) > len(best) || (len(stops) == len(best) && len(stops) > 0 && trip.ID < bestID) {
			best = stops
			bestID = trip.ID
		}
	}
	return best
}

func setGreatCircleDistances(c *catalogue.Catalogue, stops []string) error {
	for i := 1; i < len(stops); i++ {
		from, to := stops[i-1], stops[i]
		_, err := c.Distance(from, to)
		if err == nil {
			continue
		}
		if !errors.Is(err, catalogue.ErrDistanceNotFound) {
			return err
		}

		fromStop, err := c.FindStop(from)
		if err != nil {
			return err
		}
		toStop, err := c.FindStop(to)
		if err != nil {
			return err
		}
		meters := int(math.Round(geo.Distance(fromStop.Coordinates, toStop.Coordinates)))
		if err := c.SetDistance(from, to, meters); err != nil {
			return err
		}
	}
	return nil
}
