package filmstrip

import (
	"callstrip/layout"
	"callstrip/log"
)

// Event is a typed notification emitted by the engine. Consumers switch on
// the concrete type.
type Event interface {
	// Name is the stable event name, e.g. "tile-dimensions-changed".
	Name() string
}

// TileDimensionsChanged carries a new tile-mode record.
type TileDimensionsChanged struct {
	Dimensions layout.TileDimensions
}

// VerticalDimensionsChanged carries a new vertical-strip record.
type VerticalDimensionsChanged struct {
	Dimensions layout.StripDimensions
}

// HorizontalDimensionsChanged carries a new horizontal-strip record.
type HorizontalDimensionsChanged struct {
	Dimensions layout.StripDimensions
}

// VisibleRangeChanged carries the new visible window.
type VisibleRangeChanged struct {
	Window Window
}

// PinChanged carries the new pin target. An empty ParticipantID means no
// participant is pinned.
type PinChanged struct {
	ParticipantID string
}

// Cleared reports whether the pin was removed.
func (e PinChanged) Cleared() bool {
	return e.ParticipantID == ""
}

// VolumeChanged carries a participant's new volume.
type VolumeChanged struct {
	ParticipantID string
	Volume        float64
}

// ModeChanged carries the new display mode.
type ModeChanged struct {
	Mode layout.Mode
}

func (TileDimensionsChanged) Name() string       { return "tile-dimensions-changed" }
func (VerticalDimensionsChanged) Name() string   { return "vertical-dimensions-changed" }
func (HorizontalDimensionsChanged) Name() string { return "horizontal-dimensions-changed" }
func (VisibleRangeChanged) Name() string         { return "visible-range-changed" }
func (PinChanged) Name() string                  { return "pin-changed" }
func (VolumeChanged) Name() string               { return "volume-changed" }
func (ModeChanged) Name() string                 { return "mode-changed" }

const defaultEventBuffer = 64

// emitter delivers events on a buffered channel without ever blocking the
// caller. When the consumer falls behind, new events are dropped and counted.
type emitter struct {
	ch      chan Event
	dropped int
}

func newEmitter(buffer int) *emitter {
	if buffer <= 0 {
		buffer = defaultEventBuffer
	}
	return &emitter{ch: make(chan Event, buffer)}
}

func (e *emitter) emit(ev Event) {
	select {
	case e.ch <- ev:
	default:
		e.dropped++
		log.WarningLog.Printf("event buffer full, dropped %s (%d dropped so far)", ev.Name(), e.dropped)
	}
}

// drain returns every queued event without blocking.
func (e *emitter) drain() []Event {
	var out []Event
	for {
		select {
		case ev := <-e.ch:
			out = append(out, ev)
		default:
			return out
		}
	}
}
