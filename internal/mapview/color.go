package mapview

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
)

var ErrInvalidColor = errors.New("invalid color")

// ParseColor normalises a palette entry to a CSS colour. Accepted forms are a
// plain string ("green"), [r, g, b] and [r, g, b, opacity].
func ParseColor(raw json.RawMessage) (string, error) {
	var name string
	if err := json.Unmarshal(raw, &name); err == nil {
		if name == "" {
			return "", fmt.Errorf("%w: empty name", ErrInvalidColor)
		}
		return name, nil
	}

	var parts []float64
	if err := json.Unmarshal(raw, &parts); err != nil {
		return "", fmt.Errorf("%w: %s", ErrInvalidColor, string(raw))
	}

	switch len(parts) {
	case 3:
		r, g, b, err := channels(parts)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("rgb(%d,%d,%d)", r, g, b), nil
	case 4:
		r, g, b, err := channels(parts[:3])
		if err != nil {
			return "", err
		}
		opacity := parts[3]
		if opacity < 0 || opacity > 1 {
			return "", fmt.Errorf("%w: opacity %v out of range", ErrInvalidColor, opacity)
		}
		return fmt.Sprintf("rgba(%d,%d,%d,%s)", r, g, b, strconv.FormatFloat(opacity, 'g', -1, 64)), nil
	default:
		return "", fmt.Errorf("%w: expected 3 or 4 components, got %d", ErrInvalidColor, len(parts))
	}
}

// ParsePalette normalises every entry of a palette in order.
func ParsePalette(raw []json.RawMessage) ([]string, error) {
	palette := make([]string, 0, len(raw))
	for i, entry := range raw {
		color, err := ParseColor(entry)
		if err != nil {
			return nil, fmt.Errorf("palette entry %d: %w", i, err)
		}
		palette = append(palette, color)
	}
	return palette, nil
}

func channels(parts []float64) (int, int, int, error) {
	var out [3]int
	for i, v := range parts {
		if v < 0 || v > 255 || v != float64(int(v)) {
			return 0, 0, 0, fmt.Errorf("%w: channel %v", ErrInvalidColor, v)
		}
		out[i] = int(v)
	}
	return out[0], out[1], out[2], nil
}
