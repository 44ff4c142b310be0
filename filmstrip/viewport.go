package filmstrip

import "callstrip/layout"

// ViewportTracker holds the current viewport size and side-panel state, the
// externally driven inputs of every layout calculation.
type ViewportTracker struct {
	size     layout.Size
	chatOpen bool
}

// SetSize records a new viewport size. Negative sizes are stored as zero.
// It reports whether anything changed.
func (v *ViewportTracker) SetSize(width, height int) bool {
	next := layout.Size{Width: max(width, 0), Height: max(height, 0)}
	if next == v.size {
		return false
	}
	v.size = next
	return true
}

// SetChatOpen records the chat panel state and reports whether it changed.
func (v *ViewportTracker) SetChatOpen(open bool) bool {
	if open == v.chatOpen {
		return false
	}
	v.chatOpen = open
	return true
}

// Size returns the current viewport size.
func (v *ViewportTracker) Size() layout.Size {
	return v.size
}

// ChatOpen reports whether the chat panel is open.
func (v *ViewportTracker) ChatOpen() bool {
	return v.chatOpen
}
