package requests

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"

	"github.com/tcat/transit-catalogue/internal/catalogue"
	"github.com/tcat/transit-catalogue/internal/logging"
	"github.com/tcat/transit-catalogue/internal/mapview"
	"github.com/tcat/transit-catalogue/internal/models"
	"github.com/tcat/transit-catalogue/internal/router"
)

// Handler answers stat requests against a loaded catalogue.
type Handler struct {
	catalogue   *catalogue.Catalogue
	router      *router.TransportRouter
	mapSettings mapview.Settings
	logger      *slog.Logger
}

func NewHandler(c *catalogue.Catalogue, routing router.Settings, mapSettings mapview.Settings, logger *slog.Logger) *Handler {
	return &Handler{
		catalogue:   c,
		router:      router.New(c, routing, logger),
		mapSettings: mapSettings,
		logger:      logger,
	}
}

// HandleAll answers every request in order. Unknown buses, stops and request
// types, unreachable destinations and buses whose length cannot be measured
// produce a "not found" response; any other failure aborts the batch.
func (h *Handler) HandleAll(stats []StatRequest) ([]interface{}, error) {
	responses := make([]interface{}, 0, len(stats))
	for _, stat := range stats {
		response, err := h.Handle(stat)
		if err != nil {
			logging.LogError(h.logger, "stat request failed", err,
				slog.Int("request_id", stat.ID),
				slog.String("type", stat.Type))
			return nil, err
		}
		responses = append(responses, response)
	}
	return responses, nil
}

func (h *Handler) Handle(stat StatRequest) (interface{}, error) {
	switch stat.Type {
	case TypeBus:
		return h.bus(stat)
	case TypeStop:
		return h.stop(stat)
	case TypeRoute:
		return h.route(stat)
	case TypeMap:
		return h.drawMap(stat)
	default:
		if h.logger != nil {
			h.logger.Warn("unknown stat request type",
				slog.Int("request_id", stat.ID),
				slog.String("type", stat.Type))
		}
		return models.NewNotFoundResponse(stat.ID), nil
	}
}

func (h *Handler) bus(stat StatRequest) (interface{}, error) {
	info, err := h.catalogue.RouteInfo(stat.Name)
	if errors.Is(err, catalogue.ErrRouteNotFound) {
		return models.NewNotFoundResponse(stat.ID), nil
	}
	if errors.Is(err, catalogue.ErrDistanceNotFound) {
		logging.LogError(h.logger, "bus statistics unavailable", err,
			slog.Int("request_id", stat.ID),
			slog.String("bus", stat.Name))
		return models.NewNotFoundResponse(stat.ID), nil
	}
	if err != nil {
		return nil, fmt.Errorf("bus %q: %w", stat.Name, err)
	}
	curvature := info.Curvature
	// JSON has no encoding for a route without geographic extent.
	if math.IsNaN(curvature) || math.IsInf(curvature, 0) {
		curvature = 0
	}
	return models.NewBusResponse(stat.ID, curvature, info.RouteLength, info.StopCount, info.UniqueStopCount), nil
}

func (h *Handler) stop(stat StatRequest) (interface{}, error) {
	buses, err := h.catalogue.BusesForStop(stat.Name)
	if errors.Is(err, catalogue.ErrStopNotFound) {
		return models.NewNotFoundResponse(stat.ID), nil
	}
	if err != nil {
		return nil, fmt.Errorf("stop %q: %w", stat.Name, err)
	}
	return models.NewStopResponse(stat.ID, buses), nil
}

func (h *Handler) route(stat StatRequest) (interface{}, error) {
	itinerary, err := h.router.FindRoute(stat.From, stat.To)
	if errors.Is(err, router.ErrStopNotFound) {
		return models.NewNotFoundResponse(stat.ID), nil
	}
	if err != nil {
		return nil, fmt.Errorf("route %q to %q: %w", stat.From, stat.To, err)
	}
	if itinerary == nil {
		return models.NewNotFoundResponse(stat.ID), nil
	}

	wait := h.router.Settings().WaitTime
	items := make([]interface{}, 0, 2*len(itinerary.Legs))
	for _, leg := range itinerary.Legs {
		items = append(items,
			models.NewWaitItem(leg.From, wait),
			models.NewBusItem(leg.Bus, leg.SpanCount, leg.Time-wait),
		)
	}
	return models.NewRouteResponse(stat.ID, itinerary.TotalTime, items), nil
}

func (h *Handler) drawMap(stat StatRequest) (interface{}, error) {
	m, err := mapview.Build(h.catalogue, h.mapSettings)
	if err != nil {
		return nil, fmt.Errorf("map: %w", err)
	}
	return models.NewMapResponse(stat.ID, m), nil
}

// WriteResponses encodes responses as an indented JSON array.
func WriteResponses(w io.Writer, responses []interface{}) error {
	if responses == nil {
		responses = []interface{}{}
	}
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "    ")
	if err := encoder.Encode(responses); err != nil {
		return fmt.Errorf("writing responses: %w", err)
	}
	return nil
}

// Process runs a whole batch: decode, load into c, answer and write.
// Routing settings missing from the batch fall back to routing.
func Process(r io.Reader, w io.Writer, c *catalogue.Catalogue, routing router.Settings, logger *slog.Logger) error {
	batch, err := Decode(r)
	if err != nil {
		return err
	}
	if err := batch.Load(c); err != nil {
		return fmt.Errorf("loading base requests: %w", err)
	}
	logging.LogOperation(logger, "catalogue_loaded",
		slog.Int("stops", c.StopCount()),
		slog.Int("routes", c.RouteCount()))

	mapSettings, err := batch.MapSettings()
	if err != nil {
		return err
	}

	handler := NewHandler(c, batch.RouterSettings(routing), mapSettings, logger)
	responses, err := handler.HandleAll(batch.StatRequests)
	if err != nil {
		return err
	}
	logging.LogOperation(logger, "stat_requests_answered", slog.Int("count", len(responses)))

	return WriteResponses(w, responses)
}
