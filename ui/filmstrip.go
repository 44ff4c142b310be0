package ui

import (
	"fmt"
	"strings"

	"callstrip/filmstrip"
	"callstrip/layout"
	"callstrip/log"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

const (
	minThumbWidth  = 4
	minThumbHeight = 3
	thumbGap       = 1
)

// CellSize is the pixel size of one terminal cell.
type CellSize struct {
	Width, Height int
}

// Rect is a clickable region in cells, relative to the filmstrip origin. ID is
// the participant bound when the region was drawn; "" marks the local view.
type Rect struct {
	X, Y, Width, Height int
	ID                  string
}

// Contains reports whether the cell (x, y) is inside r.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.Width && y >= r.Y && y < r.Y+r.Height
}

// Frame is everything one filmstrip render needs.
type Frame struct {
	Mode       layout.Mode
	Dimensions any
	Thumbnails []filmstrip.Thumbnail
	Names      map[string]string
	Visible    bool
}

// FilmstripView draws thumbnails as bordered boxes scaled from pixels to
// cells, and remembers where each one landed for mouse hit testing.
type FilmstripView struct {
	width, height int
	cell          CellSize
	hits          []Rect
	// labels holds the name drawn on each remote thumbnail in the last render.
	labels map[string]thumbLabel
}

// thumbLabel is a thumbnail name and the width it was cut to, if it was cut.
type thumbLabel struct {
	text      string
	width     int
	truncated bool
}

func NewFilmstripView(cell CellSize) *FilmstripView {
	return &FilmstripView{cell: cell}
}

// SetSize sets the area in cells the filmstrip may draw into.
func (f *FilmstripView) SetSize(width, height int) {
	f.width = width
	f.height = height
}

// SetCellSize changes the pixel size of a cell.
func (f *FilmstripView) SetCellSize(cell CellSize) {
	f.cell = cell
}

// ViewportPixels is the drawing area expressed in pixels.
func (f *FilmstripView) ViewportPixels() (int, int) {
	return f.width * max(f.cell.Width, 1), f.height * max(f.cell.Height, 1)
}

// ToCells converts a pixel size to a box size in cells.
func (f *FilmstripView) ToCells(s layout.Size) (int, int) {
	return max(s.Width/max(f.cell.Width, 1), minThumbWidth), max(s.Height/max(f.cell.Height, 1), minThumbHeight)
}

// Hits returns the clickable regions of the last render.
func (f *FilmstripView) Hits() []Rect {
	return f.hits
}

// HitTest returns the participant drawn at (x, y) in the last render.
func (f *FilmstripView) HitTest(x, y int) (string, bool) {
	for _, r := range f.hits {
		if r.Contains(x, y) && r.ID != "" {
			return r.ID, true
		}
	}
	return "", false
}

// Render draws the frame and records hit regions.
func (f *FilmstripView) Render(frame Frame) string {
	defer log.GetProfiler().StartRender("filmstrip")()
	f.hits = f.hits[:0]
	f.labels = make(map[string]thumbLabel)

	var body string
	switch {
	case !frame.Visible:
		body = TextStyles.Muted.Render("filmstrip hidden, press f to show it")
	case frame.Dimensions == nil:
		body = ""
	default:
		switch d := frame.Dimensions.(type) {
		case layout.TileDimensions:
			body = f.renderTile(d, frame)
		case layout.StripDimensions:
			body = f.renderStrip(d, frame)
		default:
			log.WarningLog.Printf("filmstrip view: unexpected dimensions %T", frame.Dimensions)
		}
	}

	f.clipHits()
	return lipgloss.NewStyle().MaxWidth(f.width).MaxHeight(f.height).Render(
		lipgloss.Place(f.width, f.height, lipgloss.Left, lipgloss.Top, body))
}

// renderTile places the local tile in grid slot 0 and remote index i in slot
// i+1, starting from the row that holds the first visible thumbnail. The local
// tile is drawn only while that row is the first one.
func (f *FilmstripView) renderTile(d layout.TileDimensions, frame Frame) string {
	w, h := f.ToCells(d.ThumbnailSize)
	cols := max(d.GridDimensions.Columns, 1)

	firstRow := 0
	if len(frame.Thumbnails) > 0 {
		firstRow = (frame.Thumbnails[0].Index + 1) / cols
	}

	var rows [][]string
	place := func(slot int, box string, id string) {
		row, col := slot/cols-firstRow, slot%cols
		for len(rows) <= row {
			rows = append(rows, nil)
		}
		// A window that starts mid-row leaves blank cells before it.
		for len(rows[row]) < col {
			rows[row] = append(rows[row], lipgloss.NewStyle().Width(w).Height(h).Render(""))
		}
		rows[row] = append(rows[row], box)
		f.hits = append(f.hits, Rect{X: col * (w + thumbGap), Y: row * h, Width: w, Height: h, ID: id})
	}

	if firstRow == 0 {
		place(0, f.box("you", "local", w, h, ThumbnailStyles.Local), "")
	}
	for _, t := range frame.Thumbnails {
		place(t.Index+1, f.thumb(t, frame, w, h), t.ID)
	}

	joined := make([]string, 0, len(rows))
	for _, r := range rows {
		joined = append(joined, joinWithGap(r))
	}
	return lipgloss.JoinVertical(lipgloss.Left, joined...)
}

func (f *FilmstripView) renderStrip(d layout.StripDimensions, frame Frame) string {
	lw, lh := f.ToCells(d.Local)
	rw, rh := f.ToCells(d.Remote)

	local := f.box("you", "local", lw, lh, ThumbnailStyles.Local)
	f.hits = append(f.hits, Rect{X: 0, Y: 0, Width: lw, Height: lh})

	boxes := make([]string, 0, len(frame.Thumbnails))
	for i, t := range frame.Thumbnails {
		boxes = append(boxes, f.thumb(t, frame, rw, rh))
		r := Rect{Width: rw, Height: rh, ID: t.ID}
		if frame.Mode == layout.ModeHorizontal {
			r.X = lw + thumbGap + i*(rw+thumbGap)
		} else {
			r.Y = lh + i*rh
		}
		f.hits = append(f.hits, r)
	}

	if frame.Mode == layout.ModeHorizontal {
		return joinWithGap(append([]string{local}, boxes...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, append([]string{local}, boxes...)...)
}

func (f *FilmstripView) thumb(t filmstrip.Thumbnail, frame Frame, w, h int) string {
	name := frame.Names[t.ID]
	if name == "" {
		name = shortID(t.ID)
	}
	style := ThumbnailStyles.Remote
	if t.Pinned {
		style = ThumbnailStyles.Pinned
		name = IconPinned + " " + name
	}
	inner := max(w-2, 1)
	f.labels[t.ID] = thumbLabel{text: name, width: inner, truncated: runewidth.StringWidth(name) > inner}

	sub := fmt.Sprintf("#%d", t.Index+1)
	if t.HasVolume {
		sub += " " + FormatVolume(t.Volume)
	}
	return f.box(name, sub, w, h, style)
}

// box renders a w x h cell box with a label and, when there is room, a
// second line.
func (f *FilmstripView) box(label, sub string, w, h int, style lipgloss.Style) string {
	inner := max(w-2, 1)
	lines := []string{runewidth.Truncate(label, inner, "…")}
	if h-2 >= 2 && sub != "" {
		lines = append(lines, TextStyles.Muted.Render(runewidth.Truncate(sub, inner, "…")))
	}
	return style.
		Width(inner).
		Height(max(h-2, 1)).
		MaxHeight(h).
		Render(strings.Join(lines, "\n"))
}

// clipHits drops or trims regions outside the drawing area.
func (f *FilmstripView) clipHits() {
	kept := f.hits[:0]
	for _, r := range f.hits {
		if r.X >= f.width || r.Y >= f.height {
			continue
		}
		r.Width = min(r.Width, f.width-r.X)
		r.Height = min(r.Height, f.height-r.Y)
		kept = append(kept, r)
	}
	f.hits = kept
}

func joinWithGap(boxes []string) string {
	parts := make([]string, 0, 2*len(boxes))
	for i, b := range boxes {
		if i > 0 {
			parts = append(parts, strings.Repeat(" ", thumbGap))
		}
		parts = append(parts, b)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
