// Package layout computes filmstrip thumbnail sizes and container boxes for
// the tile, vertical and horizontal display modes.
//
// Every calculator is a pure function of its inputs: identical inputs always
// produce identical records, and degenerate inputs are clamped rather than
// rejected.
package layout

import (
	"fmt"
	"strings"
)

// Mode is the filmstrip display mode.
type Mode int

const (
	// ModeTile shows every participant in an equally sized grid.
	ModeTile Mode = iota

	// ModeVertical shows a single column of thumbnails next to the stage.
	ModeVertical

	// ModeHorizontal shows a single row of thumbnails under the stage.
	ModeHorizontal
)

// Modes lists every display mode in cycling order.
var Modes = []Mode{ModeTile, ModeVertical, ModeHorizontal}

// String returns the string representation of the layout mode.
func (m Mode) String() string {
	switch m {
	case ModeTile:
		return "tile"
	case ModeVertical:
		return "vertical"
	case ModeHorizontal:
		return "horizontal"
	default:
		return "unknown"
	}
}

// Next returns the mode that follows m in cycling order.
func (m Mode) Next() Mode {
	return Modes[(int(m)+1)%len(Modes)]
}

// ParseMode converts a mode name back into a Mode.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "tile", "tileview", "grid":
		return ModeTile, nil
	case "vertical":
		return ModeVertical, nil
	case "horizontal":
		return ModeHorizontal, nil
	default:
		return ModeTile, fmt.Errorf("unknown layout mode %q (must be tile, vertical or horizontal)", s)
	}
}
