package filmstrip

import (
	"fmt"
	"math"
	"math/rand"
	"testing"

	"callstrip/config"
	"callstrip/layout"
	"callstrip/participants"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var _ Order = (*participants.Directory)(nil)

type sliceOrder struct {
	ids []string
}

func newOrder(n int) *sliceOrder {
	o := &sliceOrder{}
	for i := 0; i < n; i++ {
		o.ids = append(o.ids, fmt.Sprintf("p%d", i))
	}
	return o
}

func (o *sliceOrder) Len() int { return len(o.ids) }

func (o *sliceOrder) At(i int) (string, bool) {
	if i < 0 || i >= len(o.ids) {
		return "", false
	}
	return o.ids[i], true
}

func (o *sliceOrder) IndexOf(id string) int {
	for i, v := range o.ids {
		if v == id {
			return i
		}
	}
	return -1
}

func (o *sliceOrder) remove(i int) {
	o.ids = append(o.ids[:i], o.ids[i+1:]...)
}

func (o *sliceOrder) insert(i int, id string) {
	o.ids = append(o.ids, "")
	copy(o.ids[i+1:], o.ids[i:])
	o.ids[i] = id
}

func eventsOf[T Event](evs []Event) []T {
	var out []T
	for _, ev := range evs {
		if t, ok := ev.(T); ok {
			out = append(out, t)
		}
	}
	return out
}

func newEngine(t *testing.T, order Order, mutate func(*config.Config)) *Engine {
	t.Helper()
	cfg := config.DefaultConfig()
	if mutate != nil {
		mutate(cfg)
	}
	return New(cfg, order)
}

func TestTileChatOpenShrinksThumbnails(t *testing.T) {
	// 11 remote plus the local tile gives a 4 column grid.
	e := newEngine(t, newOrder(11), func(c *config.Config) { c.Layout.ChatWidth = 300 })

	e.SetViewportSize(1280, 720)
	tiles := eventsOf[TileDimensionsChanged](e.Drain())
	require.Len(t, tiles, 1)
	before := tiles[0].Dimensions
	assert.Equal(t, 4, before.GridDimensions.Columns)
	assert.Equal(t, layout.Size{Width: 298, Height: 168}, before.ThumbnailSize)
	assert.LessOrEqual(t, 4*(before.ThumbnailSize.Width+20), 1280)

	e.SetChatOpen(true)
	tiles = eventsOf[TileDimensionsChanged](e.Drain())
	require.Len(t, tiles, 1)
	after := tiles[0].Dimensions
	assert.Equal(t, layout.Size{Width: 224, Height: 126}, after.ThumbnailSize)
	assert.LessOrEqual(t, after.ThumbnailSize.Width, before.ThumbnailSize.Width)
	assert.LessOrEqual(t, after.ThumbnailSize.Height, before.ThumbnailSize.Height)
	assert.LessOrEqual(t, after.FilmstripWidth, 980)
}

func TestRepeatedInputsEmitNothing(t *testing.T) {
	e := newEngine(t, newOrder(3), nil)
	e.SetViewportSize(1280, 720)
	first, ok := e.TileDimensions()
	require.True(t, ok)
	e.Drain()

	e.SetViewportSize(1280, 720)
	e.SetChatOpen(false)
	e.ParticipantsChanged()
	assert.Empty(t, e.Drain())

	second, _ := e.TileDimensions()
	assert.Equal(t, first, second)
}

func TestDepartureInsideWindowShrinksIt(t *testing.T) {
	order := newOrder(10)
	e := newEngine(t, order, nil)
	e.SetViewportSize(1280, 720)
	e.SetVisibleRange(0, 5)
	require.Equal(t, Window{Start: 0, End: 5}, e.Window())
	e.Drain()

	order.remove(2)
	e.ParticipantLeft(2)

	assert.Equal(t, Window{Start: 0, End: 4}, e.Window())
	ranges := eventsOf[VisibleRangeChanged](e.Drain())
	require.Len(t, ranges, 1)
	assert.Equal(t, Window{Start: 0, End: 4}, ranges[0].Window)
	for _, id := range e.VisibleParticipants() {
		assert.GreaterOrEqual(t, order.IndexOf(id), 0)
	}
}

func TestRepeatedDeparturesKeepScrolledWindowFull(t *testing.T) {
	order := newOrder(10)
	e := newEngine(t, order, nil)
	e.SetMode(layout.ModeVertical)
	e.SetViewportSize(1280, 720)
	require.Equal(t, Window{0, 5}, e.Window())

	for i := 0; i < 5; i++ {
		order.remove(0)
		e.ParticipantLeft(0)
		assert.Equal(t, Window{0, 5}, e.Window(), "after departure %d", i+1)
		assert.Len(t, e.VisibleParticipants(), 5)
	}

	// Fewer participants than the strip shows: everyone stays visible.
	for order.Len() > 0 {
		order.remove(order.Len() - 1)
		e.ParticipantLeft(order.Len())
		assert.Equal(t, Window{0, order.Len()}, e.Window())
	}
}

func TestDepartureRefillsScrolledWindowNearEnd(t *testing.T) {
	order := newOrder(10)
	e := newEngine(t, order, nil)
	e.SetMode(layout.ModeVertical)
	e.SetViewportSize(1280, 720)
	e.ScrollBy(100000)
	w := e.Window()
	require.Equal(t, 10, w.End)

	order.remove(9)
	e.ParticipantLeft(9)
	assert.Equal(t, Window{w.Start - 1, 9}, e.Window())
}

func TestDepartureBeforeWindowKeepsParticipants(t *testing.T) {
	order := newOrder(10)
	e := newEngine(t, order, nil)
	e.SetVisibleRange(4, 8)
	before := e.VisibleParticipants()

	order.remove(1)
	e.ParticipantLeft(1)

	assert.Equal(t, Window{Start: 3, End: 7}, e.Window())
	assert.Equal(t, before, e.VisibleParticipants())
}

func TestWindowInvariantUnderRandomEvents(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	order := newOrder(12)
	e := newEngine(t, order, func(c *config.Config) { c.MaxVisibleCount = 6 })
	e.SetMode(layout.ModeVertical)
	e.SetViewportSize(1280, 720)

	next := 100
	for step := 0; step < 2000; step++ {
		switch rng.Intn(5) {
		case 0:
			a, b := rng.Intn(30)-10, rng.Intn(30)-10
			e.SetVisibleRange(a, b)
		case 1:
			if order.Len() > 0 {
				i := rng.Intn(order.Len())
				order.remove(i)
				e.ParticipantLeft(i)
			}
		case 2:
			i := rng.Intn(order.Len() + 1)
			order.insert(i, fmt.Sprintf("p%d", next))
			next++
			e.ParticipantJoined(i)
		case 3:
			e.Scroll(rng.Intn(4000) - 500)
		case 4:
			order.ids = order.ids[:rng.Intn(order.Len()+1)]
			e.ParticipantsChanged()
		}

		w := e.Window()
		require.GreaterOrEqual(t, w.Start, 0, "step %d", step)
		require.LessOrEqual(t, w.Start, w.End, "step %d", step)
		require.LessOrEqual(t, w.End, order.Len(), "step %d", step)
		require.LessOrEqual(t, w.Len(), 6, "step %d", step)
		e.Drain()
	}
	assert.Zero(t, e.Violations())
}

func TestSetVisibleRangeClamps(t *testing.T) {
	tests := []struct {
		name       string
		start, end int
		want       Window
	}{
		{name: "in range", start: 1, end: 4, want: Window{1, 4}},
		{name: "negative start", start: -3, end: 2, want: Window{0, 2}},
		{name: "end past length", start: 6, end: 20, want: Window{6, 8}},
		{name: "start past length", start: 12, end: 15, want: Window{8, 8}},
		{name: "inverted", start: 5, end: 2, want: Window{5, 5}},
		{name: "capacity", start: 0, end: 8, want: Window{0, 5}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newEngine(t, newOrder(8), func(c *config.Config) { c.MaxVisibleCount = 5 })
			e.SetVisibleRange(tt.start, tt.end)
			assert.Equal(t, tt.want, e.Window())
		})
	}
}

func TestNegativeCapacityIsCountedNotRaised(t *testing.T) {
	e := newEngine(t, newOrder(4), func(c *config.Config) { c.MaxVisibleCount = -1 })
	assert.Equal(t, 1, e.Violations())

	e.SetVisibleRange(0, 3)
	assert.Equal(t, 0, e.Window().Len())
}

func TestClickOnVideoToggles(t *testing.T) {
	e := newEngine(t, newOrder(5), nil)

	e.ClickOnVideo(3)
	assert.Equal(t, "p3", e.Pinned())
	pins := eventsOf[PinChanged](e.Drain())
	require.Len(t, pins, 1)
	assert.Equal(t, "p3", pins[0].ParticipantID)

	e.ClickOnVideo(3)
	assert.Empty(t, e.Pinned())
	pins = eventsOf[PinChanged](e.Drain())
	require.Len(t, pins, 1)
	assert.True(t, pins[0].Cleared())

	e.ClickOnVideo(1)
	e.ClickOnVideo(3)
	assert.Equal(t, "p3", e.Pinned(), "pin moves to the new target")
}

func TestClickOnStaleOrdinalIsNoop(t *testing.T) {
	e := newEngine(t, newOrder(2), nil)
	e.ClickOnVideo(5)
	e.ClickOnVideo(-1)
	assert.Empty(t, e.Pinned())
	assert.Empty(t, eventsOf[PinChanged](e.Drain()))
}

func TestClickOnParticipantUsesBoundIdentity(t *testing.T) {
	order := newOrder(4)
	e := newEngine(t, order, nil)
	e.SetViewportSize(1280, 720)
	thumbs := e.Thumbnails()
	require.NotEmpty(t, thumbs)
	bound := thumbs[2].ID

	// The order changes between render and click.
	order.remove(0)
	e.ParticipantLeft(0)

	e.ClickOnParticipant(bound)
	assert.Equal(t, bound, e.Pinned())

	idx := order.IndexOf(bound)
	order.remove(idx)
	e.ParticipantLeft(idx)
	e.Drain()

	e.ClickOnParticipant(bound)
	assert.Empty(t, eventsOf[PinChanged](e.Drain()))
}

func TestPinClearedWhenParticipantLeaves(t *testing.T) {
	order := newOrder(5)
	e := newEngine(t, order, nil)
	e.ClickOnVideo(3)
	e.Drain()

	order.remove(3)
	e.ParticipantLeft(3)

	assert.Empty(t, e.Pinned())
	pins := eventsOf[PinChanged](e.Drain())
	require.Len(t, pins, 1)
	assert.True(t, pins[0].Cleared())
}

func TestVolume(t *testing.T) {
	e := newEngine(t, newOrder(2), nil)

	e.SetVolume("p0", 1.5)
	v, ok := e.Volume("p0")
	require.True(t, ok)
	assert.Equal(t, 1.0, v)

	e.SetVolume("p0", -2)
	v, _ = e.Volume("p0")
	assert.Equal(t, 0.0, v)

	e.SetVolume("p0", math.NaN())
	e.SetVolume("p0", 0)
	vols := eventsOf[VolumeChanged](e.Drain())
	require.Len(t, vols, 2)
	assert.Equal(t, VolumeChanged{ParticipantID: "p0", Volume: 1}, vols[0])
	assert.Equal(t, VolumeChanged{ParticipantID: "p0", Volume: 0}, vols[1])

	assert.True(t, e.ClearVolume("p0"))
	_, ok = e.Volume("p0")
	assert.False(t, ok)
}

func TestVerticalScroll(t *testing.T) {
	e := newEngine(t, newOrder(10), nil)
	e.SetMode(layout.ModeVertical)
	e.SetViewportSize(1280, 720)

	d, ok := e.VerticalDimensions()
	require.True(t, ok)
	assert.Equal(t, layout.Size{Width: 180, Height: 180}, d.Remote)
	assert.Equal(t, 184, e.ScrollStep())

	// 559px of container holds three full thumbnails and part of a fourth.
	assert.Equal(t, Window{0, 5}, e.Window())

	e.Scroll(2 * 184)
	assert.Equal(t, Window{2, 7}, e.Window())

	e.Scroll(100000)
	assert.Equal(t, 7*184, e.ScrollOffset())
	assert.Equal(t, Window{7, 10}, e.Window())

	e.ScrollBy(-100000)
	assert.Equal(t, 0, e.ScrollOffset())
	assert.Equal(t, Window{0, 5}, e.Window())
}

func TestHorizontalScroll(t *testing.T) {
	e := newEngine(t, newOrder(20), nil)
	e.SetMode(layout.ModeHorizontal)
	e.SetViewportSize(1280, 720)

	d, ok := e.HorizontalDimensions()
	require.True(t, ok)
	assert.Equal(t, layout.Size{Width: 921, Height: 195}, d.RemoteVideosContainer)
	assert.Equal(t, Window{0, 7}, e.Window())

	e.Scroll(184)
	assert.Equal(t, Window{1, 8}, e.Window())
}

func TestTileScrollByRows(t *testing.T) {
	// 29 remote plus local: 5 columns, 6 rows, 5 visible.
	e := newEngine(t, newOrder(29), func(c *config.Config) { c.MaxVisibleCount = 40 })
	e.SetViewportSize(1280, 720)

	d, _ := e.TileDimensions()
	require.Equal(t, 5, d.GridDimensions.Columns)
	require.Equal(t, 5, d.GridDimensions.VisibleRows)
	assert.Equal(t, Window{0, 29}, e.Window())

	// Row 1 holds grid slots 5..9, which are remote indices 4..8.
	e.Scroll(e.ScrollStep())
	assert.Equal(t, Window{4, 29}, e.Window())
	assert.Zero(t, (e.Window().Start+1)%d.GridDimensions.Columns)

	e.Scroll(0)
	assert.Equal(t, Window{0, 29}, e.Window())
}

func TestTileScrollCoversEveryRow(t *testing.T) {
	e := newEngine(t, newOrder(60), func(c *config.Config) { c.MaxVisibleCount = 100 })
	e.SetViewportSize(1280, 720)
	d, _ := e.TileDimensions()
	cols := d.GridDimensions.Columns

	prevEnd := e.Window().End
	for step := 1; step < 20; step++ {
		e.Scroll(step * e.ScrollStep())
		w := e.Window()
		// Every window starts on a row boundary and leaves no gap behind
		// the rows exposed before it.
		assert.Zero(t, (w.Start+1)%cols, "window %v", w)
		assert.LessOrEqual(t, w.Start, prevEnd)
		prevEnd = w.End
	}
	assert.Equal(t, 60, e.Window().End)
}

func TestCapacityBoundsScrollWindow(t *testing.T) {
	e := newEngine(t, newOrder(10), func(c *config.Config) { c.MaxVisibleCount = 3 })
	e.SetMode(layout.ModeVertical)
	e.SetViewportSize(1280, 720)
	assert.Equal(t, Window{0, 3}, e.Window())
}

func TestJoinsGrowWindow(t *testing.T) {
	order := &sliceOrder{}
	e := newEngine(t, order, nil)
	e.SetMode(layout.ModeVertical)
	e.SetViewportSize(1280, 720)
	assert.Equal(t, Window{0, 0}, e.Window())

	for i := 0; i < 7; i++ {
		order.insert(i, fmt.Sprintf("p%d", i))
		e.ParticipantJoined(i)
	}
	assert.Equal(t, Window{0, 5}, e.Window())

	e.Scroll(2 * 184)
	require.Equal(t, Window{2, 7}, e.Window())
	before := e.VisibleParticipants()

	order.insert(0, "early")
	e.ParticipantJoined(0)
	assert.Equal(t, Window{3, 8}, e.Window())
	assert.Equal(t, before, e.VisibleParticipants())
}

func TestHiddenFilmstripHasEmptyWindow(t *testing.T) {
	order := newOrder(6)
	e := newEngine(t, order, nil)
	e.SetMode(layout.ModeVertical)
	e.SetViewportSize(1280, 720)
	require.Equal(t, Window{0, 5}, e.Window())

	e.SetFilmstripVisible(false)
	assert.Equal(t, Window{0, 0}, e.Window())
	assert.Empty(t, e.Thumbnails())

	order.insert(6, "late")
	e.ParticipantJoined(6)
	assert.Equal(t, Window{0, 0}, e.Window())

	e.SetFilmstripVisible(true)
	assert.Equal(t, Window{0, 5}, e.Window())
}

func TestModeSwitchEmitsModeAndRecord(t *testing.T) {
	e := newEngine(t, newOrder(3), nil)
	e.SetViewportSize(1280, 720)
	e.Drain()

	e.SetMode(layout.ModeHorizontal)
	evs := e.Drain()
	require.NotEmpty(t, evs)
	assert.Equal(t, ModeChanged{Mode: layout.ModeHorizontal}, evs[0])
	assert.Len(t, eventsOf[HorizontalDimensionsChanged](evs), 1)
	assert.IsType(t, layout.StripDimensions{}, e.Dimensions())

	e.SetMode(layout.ModeHorizontal)
	assert.Empty(t, e.Drain())
}

func TestSetConfigRecomputes(t *testing.T) {
	e := newEngine(t, newOrder(11), nil)
	e.SetViewportSize(1280, 720)
	e.SetChatOpen(true)
	e.Drain()

	cfg := config.DefaultConfig()
	cfg.Layout.ChatWidth = 300
	e.SetConfig(cfg)

	tiles := eventsOf[TileDimensionsChanged](e.Drain())
	require.Len(t, tiles, 1)
	assert.Equal(t, layout.Size{Width: 224, Height: 126}, tiles[0].Dimensions.ThumbnailSize)
}

func TestFullEventBufferDrops(t *testing.T) {
	e := newEngine(t, newOrder(3), func(c *config.Config) { c.EventBuffer = 1 })
	e.SetVolume("p0", 0.5)
	e.SetVolume("p1", 0.5)

	assert.Equal(t, 1, e.DroppedEvents())
	evs := e.Drain()
	require.Len(t, evs, 1)
	assert.Equal(t, "volume-changed", evs[0].Name())
}

func TestSnapshotAndThumbnails(t *testing.T) {
	e := newEngine(t, newOrder(3), nil)
	e.SetViewportSize(1280, 720)
	e.ClickOnVideo(1)
	e.SetVolume("p2", 0.25)

	thumbs := e.Thumbnails()
	require.Len(t, thumbs, 3)
	assert.True(t, thumbs[1].Pinned)
	assert.True(t, thumbs[2].HasVolume)
	assert.Equal(t, 0.25, thumbs[2].Volume)
	assert.Equal(t, e.ThumbnailSize(), thumbs[0].Size)

	snap := e.Snapshot()
	assert.Equal(t, "tile", snap.Mode)
	assert.Equal(t, "p1", snap.Pinned)
	assert.Equal(t, []string{"p0", "p1", "p2"}, snap.Visible)
	assert.Equal(t, layout.Size{Width: 1280, Height: 720}, snap.Viewport)
}

func TestDirectoryDrivesEngine(t *testing.T) {
	dir := participants.New()
	e := newEngine(t, dir, nil)
	e.SetViewportSize(1280, 720)
	dir.Subscribe(func(c participants.Change) {
		switch c.Kind {
		case participants.Joined:
			e.ParticipantJoined(c.Index)
		case participants.Left:
			e.ParticipantLeft(c.Index)
		default:
			e.ParticipantsChanged()
		}
	})

	a := dir.Add("alice")
	dir.Add("bob")
	assert.Equal(t, Window{0, 2}, e.Window())

	e.ClickOnParticipant(a.ID)
	dir.Remove(a.ID)
	assert.Empty(t, e.Pinned())
	assert.Equal(t, Window{0, 1}, e.Window())
}
