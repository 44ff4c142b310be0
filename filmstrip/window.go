package filmstrip

import (
	"fmt"

	"callstrip/log"
)

// Window is a half-open range [Start, End) of positions in the participant
// order. Positions are resolved to identities only at read time.
type Window struct {
	Start int `json:"start_index" yaml:"start_index"`
	End   int `json:"end_index" yaml:"end_index"`
}

// Len returns the number of positions in the window.
func (w Window) Len() int {
	return w.End - w.Start
}

// Contains reports whether position i is inside the window.
func (w Window) Contains(i int) bool {
	return i >= w.Start && i < w.End
}

func (w Window) String() string {
	return fmt.Sprintf("[%d,%d)", w.Start, w.End)
}

// WindowManager owns the visible window. Every mutation leaves it satisfying
// 0 <= Start <= End <= length and End-Start <= capacity.
type WindowManager struct {
	capacity   int
	window     Window
	violations int
}

// NewWindowManager returns a manager with an empty window. A negative
// capacity is a caller defect: it is logged, counted and treated as zero.
func NewWindowManager(capacity int) *WindowManager {
	m := &WindowManager{}
	m.SetCapacity(capacity)
	return m
}

// SetCapacity changes the maximum window size. The current window is not
// adjusted until the next mutation.
func (m *WindowManager) SetCapacity(capacity int) {
	if capacity < 0 {
		m.violation("negative window capacity %d", capacity)
		capacity = 0
	}
	m.capacity = capacity
}

// Capacity returns the maximum window size.
func (m *WindowManager) Capacity() int {
	return m.capacity
}

// Window returns the current window.
func (m *WindowManager) Window() Window {
	return m.window
}

// Violations counts invariant violations seen since construction.
func (m *WindowManager) Violations() int {
	return m.violations
}

// Set clamps [start, end) into the list of the given length and capacity and
// stores it. It reports whether the window changed.
func (m *WindowManager) Set(start, end, length int) bool {
	length = max(length, 0)
	start = clamp(start, 0, length)
	end = clamp(end, start, length)
	end = min(end, start+m.capacity)
	return m.store(Window{Start: start, End: end})
}

// Fit applies a participant-count change that carries no positional
// information. Start and window size are preserved while the list is long
// enough. When the list ends inside the window, size wins over Start: the
// window slides back so it stays full, and Start moves only as far as needed.
func (m *WindowManager) Fit(length int) bool {
	length = max(length, 0)
	w := m.window
	if w.End <= length {
		return m.Set(w.Start, w.End, length)
	}
	size := w.Len()
	start := w.Start
	if start > length-size {
		start = max(0, length-size)
	}
	return m.Set(start, start+size, length)
}

// Removed applies the departure of the participant formerly at index. A
// departure before the window shifts it down so the same participants stay
// visible; a departure inside the window shrinks it by one.
func (m *WindowManager) Removed(index, length int) bool {
	w := m.window
	switch {
	case index < 0:
		return m.Fit(length)
	case index < w.Start:
		return m.Set(w.Start-1, w.End-1, length)
	case index < w.End:
		return m.Set(w.Start, w.End-1, length)
	default:
		return m.Fit(length)
	}
}

// Inserted applies a join at index. A join before the window shifts it up so
// the same participants stay visible.
func (m *WindowManager) Inserted(index, length int) bool {
	w := m.window
	if index >= 0 && index < w.Start {
		return m.Set(w.Start+1, w.End+1, length)
	}
	return m.Set(w.Start, w.End, length)
}

// Grow extends End toward Start+count without moving Start.
func (m *WindowManager) Grow(count, length int) bool {
	w := m.window
	if w.Len() >= count {
		return false
	}
	return m.Set(w.Start, w.Start+count, length)
}

// Refill tops the window back up to count positions after a departure. It
// extends End first and moves Start back only when the list ends before the
// window is full.
func (m *WindowManager) Refill(count, length int) bool {
	length = max(length, 0)
	target := min(count, length, m.capacity)
	w := m.window
	if w.Len() >= target {
		return false
	}
	start := min(w.Start, length-target)
	return m.Set(start, start+target, length)
}

// Reset empties the window.
func (m *WindowManager) Reset() bool {
	return m.store(Window{})
}

func (m *WindowManager) store(w Window) bool {
	if w.Start < 0 || w.Start > w.End {
		m.violation("unresolvable window %s", w)
		w = Window{Start: max(w.Start, 0), End: max(w.Start, 0)}
	}
	if w == m.window {
		return false
	}
	m.window = w
	log.WindowTrace("window -> %s", w)
	return true
}

func (m *WindowManager) violation(format string, args ...any) {
	m.violations++
	log.ErrorLog.Printf("visible window invariant: "+format, args...)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
