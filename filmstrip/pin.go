package filmstrip

// Order is the read side of the participants directory. The engine never
// mutates it and never caches positions across calls.
type Order interface {
	Len() int
	At(i int) (string, bool)
	IndexOf(id string) int
}

// PinDispatcher toggles the pin target in response to clicks.
type PinDispatcher struct {
	order  Order
	pinned string
}

// NewPinDispatcher returns a dispatcher reading positions from order.
func NewPinDispatcher(order Order) *PinDispatcher {
	return &PinDispatcher{order: order}
}

// Pinned returns the pinned participant id, or "" when none is pinned.
func (d *PinDispatcher) Pinned() string {
	return d.pinned
}

// ClickOnVideo resolves ordinal n against the current order and toggles the
// pin on that participant. A stale ordinal is a silent no-op. It reports
// whether the pin target changed.
func (d *PinDispatcher) ClickOnVideo(n int) bool {
	id, ok := d.order.At(n)
	if !ok {
		return false
	}
	return d.toggle(id)
}

// ClickOnParticipant toggles the pin on the participant bound to a thumbnail
// when it was rendered. A participant that has since left is a no-op.
func (d *PinDispatcher) ClickOnParticipant(id string) bool {
	if id == "" || d.order.IndexOf(id) < 0 {
		return false
	}
	return d.toggle(id)
}

// Prune clears the pin when its target is no longer in the order.
func (d *PinDispatcher) Prune() bool {
	if d.pinned == "" || d.order.IndexOf(d.pinned) >= 0 {
		return false
	}
	d.pinned = ""
	return true
}

func (d *PinDispatcher) toggle(id string) bool {
	if d.pinned == id {
		d.pinned = ""
	} else {
		d.pinned = id
	}
	return true
}
