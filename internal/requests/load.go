package requests

import (
	"fmt"
	"sort"

	"github.com/tcat/transit-catalogue/internal/catalogue"
	"github.com/tcat/transit-catalogue/internal/geo"
	"github.com/tcat/transit-catalogue/internal/mapview"
	"github.com/tcat/transit-catalogue/internal/router"
)

// Load fills c with the base requests: every stop first, then road
// distances, then buses, so requests may reference stops declared later.
func (b *Batch) Load(c *catalogue.Catalogue) error {
	for _, stop := range b.stops {
		coordinates := geo.Coordinates{Lat: stop.Latitude, Lng: stop.Longitude}
		if err := c.AddStop(stop.Name, coordinates); err != nil {
			return err
		}
	}

	for _, stop := range b.stops {
		neighbours := make([]string, 0, len(stop.RoadDistances))
		for name := range stop.RoadDistances {
			neighbours = append(neighbours, name)
		}
		sort.Strings(neighbours)

		for _, name := range neighbours {
			if err := c.SetDistance(stop.Name, name, stop.RoadDistances[name]); err != nil {
				return fmt.Errorf("road distance from %q: %w", stop.Name, err)
			}
		}
	}

	for _, bus := range b.buses {
		routeType := catalogue.Linear
		if bus.IsRoundtrip {
			routeType = catalogue.Circle
		}
		if err := c.AddRoute(bus.Name, routeType, bus.Stops); err != nil {
			return err
		}
	}
	return nil
}

// RouterSettings returns the batch routing settings, or fallback when the
// batch has none.
func (b *Batch) RouterSettings(fallback router.Settings) router.Settings {
	if b.RoutingSettings == nil {
		return fallback
	}
	return router.NewSettings(b.RoutingSettings.BusWaitTime, b.RoutingSettings.BusVelocity)
}

func (b *Batch) MapSettings() (mapview.Settings, error) {
	if b.RenderSettings == nil {
		return mapview.Settings{}, nil
	}
	palette, err := mapview.ParsePalette(b.RenderSettings.ColorPalette)
	if err != nil {
		return mapview.Settings{}, fmt.Errorf("%w: render settings: %v", ErrInvalidRequest, err)
	}
	return mapview.Settings{Palette: palette}, nil
}
