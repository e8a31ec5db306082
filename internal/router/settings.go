package router

import (
	"errors"
	"fmt"
)

// KmhToMetersPerMinute converts a speed in km/h to m/min.
const KmhToMetersPerMinute = 1000.0 / 60.0

var ErrInvalidSettings = errors.New("invalid routing settings")

// Settings configures edge weights: minutes spent waiting at every boarding
// and bus speed in meters per minute.
type Settings struct {
	WaitTime float64
	Velocity float64
}

// NewSettings builds Settings from a wait time in minutes and a speed in km/h.
func NewSettings(waitMinutes, velocityKmh float64) Settings {
	return Settings{
		WaitTime: waitMinutes,
		Velocity: velocityKmh * KmhToMetersPerMinute,
	}
}

func (s Settings) Validate() error {
	if s.WaitTime < 0 {
		return fmt.Errorf("%w: negative wait time %v", ErrInvalidSettings, s.WaitTime)
	}
	if s.Velocity <= 0 {
		return fmt.Errorf("%w: velocity must be positive, got %v", ErrInvalidSettings, s.Velocity)
	}
	return nil
}
