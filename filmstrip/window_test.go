package filmstrip

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func managerAt(t *testing.T, capacity, start, end, length int) *WindowManager {
	t.Helper()
	m := NewWindowManager(capacity)
	m.Set(start, end, length)
	return m
}

func TestFitPreservesStartAndSize(t *testing.T) {
	tests := []struct {
		name       string
		start, end int
		length     int
		want       Window
	}{
		{name: "still fits", start: 2, end: 6, length: 8, want: Window{2, 6}},
		{name: "slides back", start: 6, end: 10, length: 8, want: Window{4, 8}},
		{name: "list shorter than window", start: 0, end: 5, length: 3, want: Window{0, 3}},
		{name: "empty list", start: 3, end: 7, length: 0, want: Window{0, 0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := managerAt(t, 10, tt.start, tt.end, 10)
			m.Fit(tt.length)
			assert.Equal(t, tt.want, m.Window())
		})
	}
}

func TestRemovedAndInserted(t *testing.T) {
	m := managerAt(t, 10, 2, 6, 10)

	assert.True(t, m.Removed(0, 9))
	assert.Equal(t, Window{1, 5}, m.Window())

	assert.True(t, m.Removed(3, 8))
	assert.Equal(t, Window{1, 4}, m.Window())

	assert.False(t, m.Removed(7, 7))
	assert.Equal(t, Window{1, 4}, m.Window())

	assert.True(t, m.Inserted(0, 8))
	assert.Equal(t, Window{2, 5}, m.Window())

	assert.False(t, m.Inserted(3, 9))
}

func TestGrowAndReset(t *testing.T) {
	m := managerAt(t, 4, 1, 2, 10)

	assert.True(t, m.Grow(6, 10))
	assert.Equal(t, Window{1, 5}, m.Window(), "capacity bounds growth")
	assert.False(t, m.Grow(2, 10))

	assert.True(t, m.Reset())
	assert.Equal(t, Window{}, m.Window())
	assert.False(t, m.Reset())
}

func TestRefill(t *testing.T) {
	tests := []struct {
		name          string
		start, end    int
		count, length int
		want          Window
		changed       bool
	}{
		{name: "extends end", start: 0, end: 4, count: 5, length: 9, want: Window{0, 5}, changed: true},
		{name: "slides back at the end", start: 5, end: 8, count: 4, length: 8, want: Window{4, 8}, changed: true},
		{name: "short list", start: 0, end: 2, count: 5, length: 3, want: Window{0, 3}, changed: true},
		{name: "already full", start: 1, end: 6, count: 5, length: 9, want: Window{1, 6}},
		{name: "capacity bounds", start: 0, end: 5, count: 8, length: 9, want: Window{0, 6}, changed: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := managerAt(t, 6, tt.start, tt.end, 10)
			assert.Equal(t, tt.changed, m.Refill(tt.count, tt.length))
			assert.Equal(t, tt.want, m.Window())
		})
	}
}

func TestWindowHelpers(t *testing.T) {
	w := Window{Start: 2, End: 5}
	assert.Equal(t, 3, w.Len())
	assert.True(t, w.Contains(2))
	assert.False(t, w.Contains(5))
	assert.Equal(t, "[2,5)", w.String())
}

func TestPinDispatcherPrune(t *testing.T) {
	order := newOrder(3)
	d := NewPinDispatcher(order)
	assert.False(t, d.Prune())

	assert.True(t, d.ClickOnVideo(2))
	assert.False(t, d.Prune())

	order.remove(2)
	assert.True(t, d.Prune())
	assert.Empty(t, d.Pinned())
	assert.False(t, d.ClickOnParticipant(""))
}

func TestVolumeMapIDs(t *testing.T) {
	m := NewVolumeMap()
	m.Set("b", 0.1)
	m.Set("a", 0.2)
	_, changed := m.Set("", 0.3)
	assert.False(t, changed)
	assert.Equal(t, []string{"a", "b"}, m.IDs())
	assert.False(t, m.Delete("zzz"))
}
