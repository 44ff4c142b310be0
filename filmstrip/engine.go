// Package filmstrip owns the filmstrip state of a call: the viewport, the
// per-mode dimension records, the visible window over the participant order,
// the pin target and per-participant volumes. All inputs arrive as method
// calls from a single event loop and all outputs leave as typed events.
package filmstrip

import (
	"callstrip/config"
	"callstrip/layout"
	"callstrip/log"
)

// Engine recomputes layouts and the visible window in response to viewport,
// panel, scroll and participant events. It is not safe for concurrent use;
// drive it from one goroutine.
type Engine struct {
	cfg   *config.Config
	order Order

	viewport ViewportTracker
	store    DimensionStore
	window   *WindowManager
	pins     *PinDispatcher
	volumes  *VolumeMap
	events   *emitter

	mode             layout.Mode
	filmstripVisible bool
	scrollOffset     int
	// explicitRange is set while the window comes from SetVisibleRange
	// rather than from the scroll offset.
	explicitRange bool
}

// Thumbnail is one visible thumbnail, resolved against the order at the time
// of the call. ID is what a click handler should bind to.
type Thumbnail struct {
	Index     int         `json:"index"`
	ID        string      `json:"id"`
	Size      layout.Size `json:"size"`
	Pinned    bool        `json:"pinned"`
	Volume    float64     `json:"volume"`
	HasVolume bool        `json:"has_volume"`
}

// Snapshot is a read-only copy of the engine state.
type Snapshot struct {
	Viewport         layout.Size        `json:"viewport" yaml:"viewport"`
	ChatOpen         bool               `json:"chat_open" yaml:"chat_open"`
	Mode             string             `json:"mode" yaml:"mode"`
	FilmstripVisible bool               `json:"filmstrip_visible" yaml:"filmstrip_visible"`
	Dimensions       any                `json:"dimensions" yaml:"dimensions"`
	Window           Window             `json:"window" yaml:"window"`
	ScrollOffset     int                `json:"scroll_offset" yaml:"scroll_offset"`
	Visible          []string           `json:"visible" yaml:"visible"`
	Pinned           string             `json:"pinned,omitempty" yaml:"pinned,omitempty"`
	Volumes          map[string]float64 `json:"volumes,omitempty" yaml:"volumes,omitempty"`
	Violations       int                `json:"violations,omitempty" yaml:"violations,omitempty"`
}

// New creates an engine over order. A nil cfg means the default
// configuration. The initial mode is the config's default mode.
func New(cfg *config.Config, order Order) *Engine {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	return &Engine{
		cfg:              cfg,
		order:            order,
		window:           NewWindowManager(cfg.MaxVisibleCount),
		pins:             NewPinDispatcher(order),
		volumes:          NewVolumeMap(),
		events:           newEmitter(cfg.EventBuffer),
		mode:             cfg.Mode(),
		filmstripVisible: true,
	}
}

// Events returns the channel events are delivered on. Sends never block;
// events are dropped when the channel is full.
func (e *Engine) Events() <-chan Event {
	return e.events.ch
}

// Drain returns every queued event without blocking.
func (e *Engine) Drain() []Event {
	return e.events.drain()
}

// DroppedEvents returns how many events were dropped on a full channel.
func (e *Engine) DroppedEvents() int {
	return e.events.dropped
}

// Config returns the active configuration.
func (e *Engine) Config() *config.Config {
	return e.cfg
}

// SetConfig swaps the configuration and recomputes everything derived from it.
func (e *Engine) SetConfig(cfg *config.Config) {
	if cfg == nil {
		return
	}
	e.cfg = cfg
	e.window.SetCapacity(cfg.MaxVisibleCount)
	e.recompute(true)
}

// SetViewportSize handles a resize of the client area.
func (e *Engine) SetViewportSize(width, height int) {
	if !e.viewport.SetSize(width, height) {
		return
	}
	log.LayoutTrace("viewport -> %dx%d", width, height)
	e.recompute(true)
}

// SetChatOpen handles the chat panel opening or closing.
func (e *Engine) SetChatOpen(open bool) {
	if !e.viewport.SetChatOpen(open) {
		return
	}
	e.recompute(true)
}

// SetMode switches the layout mode. The scroll position is reset.
func (e *Engine) SetMode(m layout.Mode) {
	if m == e.mode {
		return
	}
	e.mode = m
	e.scrollOffset = 0
	e.events.emit(ModeChanged{Mode: m})
	e.recompute(true)
}

// SetFilmstripVisible shows or hides the filmstrip. A hidden filmstrip has an
// empty window.
func (e *Engine) SetFilmstripVisible(visible bool) {
	if visible == e.filmstripVisible {
		return
	}
	e.filmstripVisible = visible
	e.applyScroll()
}

// Scroll moves the active strip to pixel offset along its scroll axis.
func (e *Engine) Scroll(offset int) {
	e.scrollOffset = offset
	e.applyScroll()
}

// ScrollBy moves the active strip by delta pixels.
func (e *Engine) ScrollBy(delta int) {
	e.Scroll(e.scrollOffset + delta)
}

// ScrollStep is the pixel distance of one thumbnail along the scroll axis.
func (e *Engine) ScrollStep() int {
	_, extent, _, _ := e.scrollAxis()
	return extent
}

// SetVisibleRange sets the window directly. Out-of-range values are clamped.
func (e *Engine) SetVisibleRange(start, end int) {
	e.explicitRange = true
	e.commitWindow(e.window.Set(start, end, e.order.Len()))
}

// ParticipantJoined handles an insertion at index. The order must already
// contain the new participant.
func (e *Engine) ParticipantJoined(index int) {
	e.recompute(false)
	length := e.order.Len()
	changed := e.window.Inserted(index, length)
	if e.filmstripVisible {
		_, count, _ := e.scrollRange(e.scrollOffset, length)
		changed = e.window.Grow(count, length) || changed
	}
	e.commitWindow(changed)
}

// ParticipantLeft handles the departure of the participant formerly at
// index. The order must already be updated.
func (e *Engine) ParticipantLeft(index int) {
	e.recompute(false)
	length := e.order.Len()
	changed := e.window.Removed(index, length)
	// A scroll-driven window refills from the participants after it, so
	// departures never leave it short while the list is long enough.
	if e.filmstripVisible && !e.explicitRange {
		start, count, offset := e.scrollRange(e.scrollOffset, length)
		e.scrollOffset = offset
		changed = e.window.Refill(min(count, length-start), length) || changed
	}
	e.commitWindow(changed)
	e.prunePin()
}

// ParticipantsChanged handles a reorder or any bulk change of the order.
func (e *Engine) ParticipantsChanged() {
	e.recompute(false)
	e.commitWindow(e.window.Fit(e.order.Len()))
	e.prunePin()
}

// ClickOnVideo toggles the pin on the participant at global ordinal n,
// resolved against the order at the time of the click.
func (e *Engine) ClickOnVideo(n int) {
	if e.pins.ClickOnVideo(n) {
		e.emitPin()
	}
}

// ClickOnParticipant toggles the pin on the participant whose id was bound to
// the clicked thumbnail when it was rendered.
func (e *Engine) ClickOnParticipant(id string) {
	if e.pins.ClickOnParticipant(id) {
		e.emitPin()
	}
}

// Pinned returns the pinned participant id, or "".
func (e *Engine) Pinned() string {
	return e.pins.Pinned()
}

// SetVolume sets a participant's volume, clamped into [0,1]. NaN is ignored.
func (e *Engine) SetVolume(id string, volume float64) {
	v, changed := e.volumes.Set(id, volume)
	if changed {
		e.events.emit(VolumeChanged{ParticipantID: id, Volume: v})
	}
}

// Volume returns a participant's volume and whether one was set.
func (e *Engine) Volume(id string) (float64, bool) {
	return e.volumes.Get(id)
}

// ClearVolume forgets a participant's volume.
func (e *Engine) ClearVolume(id string) bool {
	return e.volumes.Delete(id)
}

// Mode returns the active layout mode.
func (e *Engine) Mode() layout.Mode {
	return e.mode
}

// FilmstripVisible reports whether the filmstrip is shown.
func (e *Engine) FilmstripVisible() bool {
	return e.filmstripVisible
}

// Viewport returns the current viewport size.
func (e *Engine) Viewport() layout.Size {
	return e.viewport.Size()
}

// ChatOpen reports whether the chat panel is open.
func (e *Engine) ChatOpen() bool {
	return e.viewport.ChatOpen()
}

// Window returns the visible window.
func (e *Engine) Window() Window {
	return e.window.Window()
}

// ScrollOffset returns the scroll offset after clamping.
func (e *Engine) ScrollOffset() int {
	return e.scrollOffset
}

// Violations counts visible-window invariant violations.
func (e *Engine) Violations() int {
	return e.window.Violations()
}

// TileDimensions returns the last tile record.
func (e *Engine) TileDimensions() (layout.TileDimensions, bool) {
	return e.store.Tile()
}

// VerticalDimensions returns the last vertical record.
func (e *Engine) VerticalDimensions() (layout.StripDimensions, bool) {
	return e.store.Vertical()
}

// HorizontalDimensions returns the last horizontal record.
func (e *Engine) HorizontalDimensions() (layout.StripDimensions, bool) {
	return e.store.Horizontal()
}

// Dimensions returns the record of the active mode, or nil before the first
// computation.
func (e *Engine) Dimensions() any {
	switch e.mode {
	case layout.ModeVertical:
		if d, ok := e.store.Vertical(); ok {
			return d
		}
	case layout.ModeHorizontal:
		if d, ok := e.store.Horizontal(); ok {
			return d
		}
	default:
		if d, ok := e.store.Tile(); ok {
			return d
		}
	}
	return nil
}

// ThumbnailSize returns the size of one remote thumbnail in the active mode.
func (e *Engine) ThumbnailSize() layout.Size {
	switch e.mode {
	case layout.ModeVertical:
		d, _ := e.store.Vertical()
		return d.Remote
	case layout.ModeHorizontal:
		d, _ := e.store.Horizontal()
		return d.Remote
	default:
		d, _ := e.store.Tile()
		return d.ThumbnailSize
	}
}

// VisibleParticipants resolves the window against the current order.
func (e *Engine) VisibleParticipants() []string {
	w := e.window.Window()
	ids := make([]string, 0, w.Len())
	for i := w.Start; i < w.End; i++ {
		if id, ok := e.order.At(i); ok {
			ids = append(ids, id)
		}
	}
	return ids
}

// Thumbnails returns the visible thumbnails, resolved against the current order.
func (e *Engine) Thumbnails() []Thumbnail {
	w := e.window.Window()
	size := e.ThumbnailSize()
	pinned := e.pins.Pinned()
	thumbs := make([]Thumbnail, 0, w.Len())
	for i := w.Start; i < w.End; i++ {
		id, ok := e.order.At(i)
		if !ok {
			continue
		}
		v, hasVolume := e.volumes.Get(id)
		thumbs = append(thumbs, Thumbnail{
			Index:     i,
			ID:        id,
			Size:      size,
			Pinned:    id == pinned,
			Volume:    v,
			HasVolume: hasVolume,
		})
	}
	return thumbs
}

// Snapshot copies the engine state.
func (e *Engine) Snapshot() Snapshot {
	return Snapshot{
		Viewport:         e.viewport.Size(),
		ChatOpen:         e.viewport.ChatOpen(),
		Mode:             e.mode.String(),
		FilmstripVisible: e.filmstripVisible,
		Dimensions:       e.Dimensions(),
		Window:           e.window.Window(),
		ScrollOffset:     e.scrollOffset,
		Visible:          e.VisibleParticipants(),
		Pinned:           e.pins.Pinned(),
		Volumes:          e.volumes.Snapshot(),
		Violations:       e.window.Violations(),
	}
}

// recompute refreshes the record of the active mode and, when rescroll is
// set, re-applies the scroll offset to the new thumbnail size.
func (e *Engine) recompute(rescroll bool) {
	p := e.cfg.Layout
	size := e.viewport.Size()

	switch e.mode {
	case layout.ModeVertical:
		d := layout.CalculateVertical(size, p)
		if e.store.SetVertical(d) {
			log.LayoutTrace("vertical local=%v remote=%v container=%v", d.Local, d.Remote, d.RemoteVideosContainer)
			e.events.emit(VerticalDimensionsChanged{Dimensions: d})
		}
	case layout.ModeHorizontal:
		d := layout.CalculateHorizontal(size, p)
		if e.store.SetHorizontal(d) {
			log.LayoutTrace("horizontal local=%v remote=%v container=%v", d.Local, d.Remote, d.RemoteVideosContainer)
			e.events.emit(HorizontalDimensionsChanged{Dimensions: d})
		}
	default:
		// The local participant takes a tile too.
		grid := layout.TileGrid(e.order.Len()+1, p.TileMaxColumns)
		d := layout.CalculateTile(layout.TileInput{
			Grid:     grid,
			Viewport: size,
			ChatOpen: e.viewport.ChatOpen(),
		}, p)
		if e.store.SetTile(d) {
			log.LayoutTrace("tile grid=%v thumb=%v filmstrip=%d", d.GridDimensions, d.ThumbnailSize, d.FilmstripWidth)
			e.events.emit(TileDimensionsChanged{Dimensions: d})
		}
	}

	if rescroll {
		e.applyScroll()
	}
}

func (e *Engine) applyScroll() {
	if !e.filmstripVisible {
		e.commitWindow(e.window.Reset())
		return
	}
	length := e.order.Len()
	start, count, offset := e.scrollRange(e.scrollOffset, length)
	e.scrollOffset = offset
	e.explicitRange = false
	e.commitWindow(e.window.Set(start, start+count, length))
}

// scrollAxis returns, for the active mode, the visible span along the scroll
// axis, the extent of one item (a row in tile mode), the indices per item and
// the number of leading slots taken by the local tile.
func (e *Engine) scrollAxis() (span, extent, perItem, lead int) {
	p := e.cfg.Layout
	switch e.mode {
	case layout.ModeVertical:
		d, _ := e.store.Vertical()
		return d.RemoteVideosContainer.Height, max(d.Remote.Height+p.TileVerticalMargin, 1), 1, 0
	case layout.ModeHorizontal:
		d, _ := e.store.Horizontal()
		return d.RemoteVideosContainer.Width, max(d.Remote.Width+p.TileHorizontalMargin, 1), 1, 0
	default:
		d, _ := e.store.Tile()
		g := d.GridDimensions
		extent := max(d.ThumbnailSize.Height+p.TileVerticalMargin, 1)
		// The local tile occupies grid slot 0, so remote index i is slot i+1.
		return max(g.VisibleRows, 1) * extent, extent, max(g.Columns, 1), 1
	}
}

// scrollRange maps a pixel offset to the first index and the number of
// indices to expose, and returns the offset clamped to the scrollable range.
func (e *Engine) scrollRange(offset, length int) (start, count, clamped int) {
	span, extent, perItem, lead := e.scrollAxis()

	slots := length + lead
	items := (slots + perItem - 1) / perItem
	fullyVisible := max(span/extent, 1)
	maxFirst := max(items-fullyVisible, 0)

	clamped = clamp(offset, 0, maxFirst*extent)
	first := clamped / extent

	// One extra item for the partially visible one at the trailing edge.
	visible := (span+extent-1)/extent + 1
	start = max(first*perItem-lead, 0)
	end := (first+visible)*perItem - lead
	return start, end - start, clamped
}

func (e *Engine) commitWindow(changed bool) {
	if changed {
		e.events.emit(VisibleRangeChanged{Window: e.window.Window()})
	}
}

func (e *Engine) prunePin() {
	if e.pins.Prune() {
		e.emitPin()
	}
}

func (e *Engine) emitPin() {
	id := e.pins.Pinned()
	log.InputTrace("pin -> %q", id)
	e.events.emit(PinChanged{ParticipantID: id})
}
