// Package requests reads a JSON request batch, loads its base requests into a
// catalogue and answers its stat requests.
package requests

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/go-playground/validator/v10"
)

const (
	TypeStop  = "Stop"
	TypeBus   = "Bus"
	TypeRoute = "Route"
	TypeMap   = "Map"
)

var ErrInvalidRequest = errors.New("invalid request")

// Batch is one input document. Base requests are kept raw until their type is
// known.
type Batch struct {
	BaseRequests    []json.RawMessage `json:"base_requests"`
	RoutingSettings *RoutingSettings  `json:"routing_settings"`
	RenderSettings  *RenderSettings   `json:"render_settings"`
	StatRequests    []StatRequest     `json:"stat_requests"`

	stops []StopRequest
	buses []BusRequest
}

type StopRequest struct {
	Type          string         `json:"type"`
	Name          string         `json:"name" validate:"required"`
	Latitude      float64        `json:"latitude" validate:"latitude"`
	Longitude     float64        `json:"longitude" validate:"longitude"`
	RoadDistances map[string]int `json:"road_distances" validate:"dive,keys,required,endkeys,gte=0"`
}

type BusRequest struct {
	Type        string   `json:"type"`
	Name        string   `json:"name" validate:"required"`
	Stops       []string `json:"stops" validate:"required,min=1,dive,required"`
	IsRoundtrip bool     `json:"is_roundtrip"`
}

// RoutingSettings takes the wait in minutes and the velocity in km/h.
type RoutingSettings struct {
	BusWaitTime float64 `json:"bus_wait_time" validate:"gte=0"`
	BusVelocity float64 `json:"bus_velocity" validate:"gt=0"`
}

// RenderSettings keeps only what map data needs; drawing geometry is ignored.
type RenderSettings struct {
	ColorPalette []json.RawMessage `json:"color_palette"`
}

type StatRequest struct {
	ID   int    `json:"id"`
	Type string `json:"type" validate:"required"`
	Name string `json:"name" validate:"required_if=Type Bus,required_if=Type Stop"`
	From string `json:"from" validate:"required_if=Type Route"`
	To   string `json:"to" validate:"required_if=Type Route"`
}

type baseHeader struct {
	Type string `json:"type" validate:"required,oneof=Stop Bus"`
}

// Decode reads and validates a batch.
func Decode(r io.Reader) (*Batch, error) {
	var batch Batch
	if err := json.NewDecoder(r).Decode(&batch); err != nil {
		return nil, fmt.Errorf("decoding request batch: %w", err)
	}
	if err := batch.validate(); err != nil {
		return nil, err
	}
	return &batch, nil
}

func (b *Batch) validate() error {
	validate := validator.New()

	for i, raw := range b.BaseRequests {
		var header baseHeader
		if err := json.Unmarshal(raw, &header); err != nil {
			return fmt.Errorf("%w: base request %d: %v", ErrInvalidRequest, i, err)
		}
		if err := validate.Struct(header); err != nil {
			return fmt.Errorf("%w: base request %d: %v", ErrInvalidRequest, i, err)
		}

		switch header.Type {
		case TypeStop:
			var stop StopRequest
			if err := decodeAndValidate(validate, raw, &stop); err != nil {
				return fmt.Errorf("%w: base request %d: %v", ErrInvalidRequest, i, err)
			}
			b.stops = append(b.stops, stop)
		case TypeBus:
			var bus BusRequest
			if err := decodeAndValidate(validate, raw, &bus); err != nil {
				return fmt.Errorf("%w: base request %d: %v", ErrInvalidRequest, i, err)
			}
			b.buses = append(b.buses, bus)
		}
	}

	if b.RoutingSettings != nil {
		if err := validate.Struct(b.RoutingSettings); err != nil {
			return fmt.Errorf("%w: routing settings: %v", ErrInvalidRequest, err)
		}
	}
	for i, stat := range b.StatRequests {
		if err := validate.Struct(stat); err != nil {
			return fmt.Errorf("%w: stat request %d: %v", ErrInvalidRequest, i, err)
		}
	}
	return nil
}

func decodeAndValidate(validate *validator.Validate, raw json.RawMessage, v interface{}) error {
	if err := json.Unmarshal(raw, v); err != nil {
		return err
	}
	return validate.Struct(v)
}

// Stops returns the validated stop requests in input order.
func (b *Batch) Stops() []StopRequest {
	return b.stops
}

// Buses returns the validated bus requests in input order.
func (b *Batch) Buses() []BusRequest {
	return b.buses
}
