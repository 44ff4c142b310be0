// Package participants keeps the ordered list of remote participants in a
// call. Order reflects join order unless a participant is promoted.
package participants

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
)

// ErrDuplicate is returned when a participant id is already present.
var ErrDuplicate = errors.New("participant already present")

// Participant is one remote party.
type Participant struct {
	ID       string    `json:"id"`
	Name     string    `json:"name"`
	JoinedAt time.Time `json:"joined_at,omitempty"`
}

// ChangeKind tells subscribers what happened to the order.
type ChangeKind int

const (
	// Joined means a participant was inserted at Index.
	Joined ChangeKind = iota
	// Left means the participant formerly at Index was removed.
	Left
	// Reordered means positions changed but the set of participants did not.
	Reordered
)

func (k ChangeKind) String() string {
	switch k {
	case Joined:
		return "joined"
	case Left:
		return "left"
	case Reordered:
		return "reordered"
	default:
		return "unknown"
	}
}

// Change describes one mutation of the directory.
type Change struct {
	Kind  ChangeKind
	ID    string
	Index int
	Len   int
}

// Directory is an ordered, de-duplicated participant list. It is safe for
// concurrent use; subscribers are called after the mutation is visible.
type Directory struct {
	mu    sync.RWMutex
	items []Participant

	listenerMu sync.Mutex
	listeners  map[int]func(Change)
	nextID     int
}

// New returns an empty directory.
func New() *Directory {
	return &Directory{listeners: make(map[int]func(Change))}
}

// Add appends a participant with a freshly generated id.
func (d *Directory) Add(name string) Participant {
	p := Participant{ID: uuid.NewString(), Name: name, JoinedAt: time.Now()}
	// A fresh uuid cannot collide.
	_ = d.AddWithID(p)
	return p
}

// AddWithID appends p, rejecting duplicate ids.
func (d *Directory) AddWithID(p Participant) error {
	d.mu.Lock()
	if d.indexOfLocked(p.ID) >= 0 {
		d.mu.Unlock()
		return fmt.Errorf("%w: %s", ErrDuplicate, p.ID)
	}
	d.items = append(d.items, p)
	change := Change{Kind: Joined, ID: p.ID, Index: len(d.items) - 1, Len: len(d.items)}
	d.mu.Unlock()

	d.notify(change)
	return nil
}

// Remove deletes the participant with id. It reports the index it had.
func (d *Directory) Remove(id string) (int, bool) {
	d.mu.Lock()
	idx := d.indexOfLocked(id)
	if idx < 0 {
		d.mu.Unlock()
		return -1, false
	}
	d.items = append(d.items[:idx], d.items[idx+1:]...)
	change := Change{Kind: Left, ID: id, Index: idx, Len: len(d.items)}
	d.mu.Unlock()

	d.notify(change)
	return idx, true
}

// RemoveAt deletes the participant at index i.
func (d *Directory) RemoveAt(i int) (Participant, bool) {
	d.mu.RLock()
	if i < 0 || i >= len(d.items) {
		d.mu.RUnlock()
		return Participant{}, false
	}
	p := d.items[i]
	d.mu.RUnlock()

	if _, ok := d.Remove(p.ID); !ok {
		return Participant{}, false
	}
	return p, true
}

// Promote moves the participant with id to the front of the order.
func (d *Directory) Promote(id string) bool {
	d.mu.Lock()
	idx := d.indexOfLocked(id)
	if idx <= 0 {
		d.mu.Unlock()
		return idx == 0
	}
	p := d.items[idx]
	copy(d.items[1:idx+1], d.items[:idx])
	d.items[0] = p
	change := Change{Kind: Reordered, ID: id, Index: 0, Len: len(d.items)}
	d.mu.Unlock()

	d.notify(change)
	return true
}

// Len returns the number of participants.
func (d *Directory) Len() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.items)
}

// At returns the id at position i.
func (d *Directory) At(i int) (string, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if i < 0 || i >= len(d.items) {
		return "", false
	}
	return d.items[i].ID, true
}

// IndexOf returns the position of id, or -1.
func (d *Directory) IndexOf(id string) int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.indexOfLocked(id)
}

// Get returns the participant with id.
func (d *Directory) Get(id string) (Participant, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if idx := d.indexOfLocked(id); idx >= 0 {
		return d.items[idx], true
	}
	return Participant{}, false
}

// Snapshot returns a copy of the current order.
func (d *Directory) Snapshot() []Participant {
	d.mu.RLock()
	defer d.mu.RUnlock()
	out := make([]Participant, len(d.items))
	copy(out, d.items)
	return out
}

func (d *Directory) indexOfLocked(id string) int {
	for i, p := range d.items {
		if p.ID == id {
			return i
		}
	}
	return -1
}

// Subscribe registers fn for every change and returns a function that removes it.
func (d *Directory) Subscribe(fn func(Change)) func() {
	if fn == nil {
		return func() {}
	}
	d.listenerMu.Lock()
	id := d.nextID
	d.nextID++
	d.listeners[id] = fn
	d.listenerMu.Unlock()
	return func() {
		d.listenerMu.Lock()
		delete(d.listeners, id)
		d.listenerMu.Unlock()
	}
}

func (d *Directory) notify(change Change) {
	d.listenerMu.Lock()
	snapshot := make([]func(Change), 0, len(d.listeners))
	for _, fn := range d.listeners {
		snapshot = append(snapshot, fn)
	}
	d.listenerMu.Unlock()
	for _, fn := range snapshot {
		fn(change)
	}
}
