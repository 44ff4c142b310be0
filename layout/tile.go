package layout

import (
	"math"
)

// GridDimensions is the shape of the tile grid.
type GridDimensions struct {
	Columns int `json:"columns" yaml:"columns"`
	Rows    int `json:"rows" yaml:"rows"`
	// VisibleRows is the number of rows sized to fit the viewport; the rest scroll.
	VisibleRows int `json:"visible_rows" yaml:"visible_rows"`
}

// TileGrid picks the grid shape for count thumbnails (remote plus local).
// The grid is as square as possible but never wider than maxColumns.
func TileGrid(count, maxColumns int) GridDimensions {
	if count <= 0 {
		return GridDimensions{Columns: 1, Rows: 1, VisibleRows: 1}
	}
	maxColumns = max(maxColumns, 1)

	columns := min(int(math.Ceil(math.Sqrt(float64(count)))), maxColumns)
	rows := (count + columns - 1) / columns
	return GridDimensions{
		Columns:     columns,
		Rows:        rows,
		VisibleRows: min(rows, maxColumns),
	}
}

// normalized returns g with every field at least 1.
func (g GridDimensions) normalized() GridDimensions {
	g.Columns = max(g.Columns, 1)
	g.Rows = max(g.Rows, 1)
	if g.VisibleRows <= 0 || g.VisibleRows > g.Rows {
		g.VisibleRows = g.Rows
	}
	return g
}

// TileInput is everything the tile calculator depends on.
type TileInput struct {
	Grid     GridDimensions
	Viewport Size
	ChatOpen bool
}

// TileDimensions is the tile-mode dimension record.
type TileDimensions struct {
	GridDimensions GridDimensions `json:"grid_dimensions" yaml:"grid_dimensions"`
	ThumbnailSize  Size           `json:"thumbnail_size" yaml:"thumbnail_size"`
	FilmstripWidth int            `json:"filmstrip_width" yaml:"filmstrip_width"`
}

// EffectiveWidth is the viewport width left over once the chat panel is
// subtracted. It may be zero or negative for tiny viewports.
func EffectiveWidth(viewportWidth int, chatOpen bool, p Params) int {
	if chatOpen {
		return viewportWidth - p.ChatWidth
	}
	return viewportWidth
}

// CalculateTile sizes tiles so that a row of Columns tiles, each with its
// side margins, fits the effective width, and VisibleRows tiles fit the
// height left after the vertical chrome. The tile aspect ratio is kept and
// the tighter of the two bounds wins.
func CalculateTile(in TileInput, p Params) TileDimensions {
	grid := in.Grid.normalized()

	widthToUse := EffectiveWidth(in.Viewport.Width, in.ChatOpen, p)
	heightToUse := in.Viewport.Height - p.TileVerticalChrome

	b := box{
		width:  floorDiv(widthToUse, grid.Columns) - p.TileSideMargins,
		height: floorDiv(heightToUse, grid.VisibleRows),
	}
	thumb := fitAspect(b, p.TileAspectRatio, p.MinThumbnailHeight)

	return TileDimensions{
		GridDimensions: grid,
		ThumbnailSize:  thumb,
		FilmstripWidth: grid.Columns * (p.TileSideMargins + thumb.Width),
	}
}

// floorDiv divides rounding toward negative infinity, so that a negative
// available space never rounds up into a usable one.
func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
