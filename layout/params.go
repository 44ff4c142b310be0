package layout

// Default tunables, in pixels unless noted.
const (
	// DefaultTileSideMargins is the horizontal margin of one tile, both sides together.
	DefaultTileSideMargins = 20

	// DefaultTileVerticalChrome is the height reserved above and below the tile grid.
	DefaultTileVerticalChrome = 20

	// DefaultTileHorizontalMargin is the margin around a strip thumbnail on the x axis.
	DefaultTileHorizontalMargin = 4

	// DefaultTileVerticalMargin is the margin around a strip thumbnail on the y axis.
	DefaultTileVerticalMargin = 4

	// DefaultThumbnailHorizontalBorder is the left plus right border of a strip thumbnail.
	DefaultThumbnailHorizontalBorder = 4

	// DefaultThumbnailVerticalBorder is the top plus bottom border of a strip thumbnail.
	DefaultThumbnailVerticalBorder = 4

	// DefaultScrollbarGutter is the width of the scrollbar next to a strip.
	DefaultScrollbarGutter = 7

	// DefaultHorizontalStripMargin is the x space taken around the horizontal strip.
	DefaultHorizontalStripMargin = 39

	// DefaultVerticalStripMargin is the y space taken around the vertical strip.
	DefaultVerticalStripMargin = 60

	// DefaultVerticalStripMinHorizontalMargin is subtracted from the strip's share of the viewport width.
	DefaultVerticalStripMinHorizontalMargin = 10

	// DefaultStripMinSize and DefaultStripMaxSize bound the strip's cross axis.
	DefaultStripMinSize = 80
	DefaultStripMaxSize = 180

	// DefaultChatWidth is the width reserved by the open chat panel.
	DefaultChatWidth = 375

	// DefaultMinThumbnailHeight is the smallest usable thumbnail height.
	DefaultMinThumbnailHeight = 36

	// DefaultTileMaxColumns caps the tile grid width (and its visible rows).
	DefaultTileMaxColumns = 5
)

// Default aspect ratios (width / height).
const (
	DefaultTileAspectRatio   = 16.0 / 9.0
	DefaultLocalAspectRatio  = 16.0 / 9.0
	DefaultRemoteAspectRatio = 1.0

	// DefaultVerticalStripViewportRatio is the share of the viewport width given to the vertical strip.
	DefaultVerticalStripViewportRatio = 0.2
)

// Params holds every tunable the calculators read. Nothing in this package
// reads ambient state; callers pass Params explicitly.
type Params struct {
	TileSideMargins    int     `json:"tile_side_margins" yaml:"tile_side_margins"`
	TileVerticalChrome int     `json:"tile_vertical_chrome" yaml:"tile_vertical_chrome"`
	TileMaxColumns     int     `json:"tile_max_columns" yaml:"tile_max_columns"`
	TileAspectRatio    float64 `json:"tile_aspect_ratio" yaml:"tile_aspect_ratio"`

	TileHorizontalMargin      int `json:"tile_horizontal_margin" yaml:"tile_horizontal_margin"`
	TileVerticalMargin        int `json:"tile_vertical_margin" yaml:"tile_vertical_margin"`
	ThumbnailHorizontalBorder int `json:"thumbnail_horizontal_border" yaml:"thumbnail_horizontal_border"`
	ThumbnailVerticalBorder   int `json:"thumbnail_vertical_border" yaml:"thumbnail_vertical_border"`
	ScrollbarGutter           int `json:"scrollbar_gutter" yaml:"scrollbar_gutter"`

	HorizontalStripMargin            int     `json:"horizontal_strip_margin" yaml:"horizontal_strip_margin"`
	VerticalStripMargin              int     `json:"vertical_strip_margin" yaml:"vertical_strip_margin"`
	VerticalStripMinHorizontalMargin int     `json:"vertical_strip_min_horizontal_margin" yaml:"vertical_strip_min_horizontal_margin"`
	VerticalStripViewportRatio       float64 `json:"vertical_strip_viewport_ratio" yaml:"vertical_strip_viewport_ratio"`
	StripMinSize                     int     `json:"strip_min_size" yaml:"strip_min_size"`
	StripMaxSize                     int     `json:"strip_max_size" yaml:"strip_max_size"`

	ChatWidth          int     `json:"chat_width" yaml:"chat_width"`
	MinThumbnailHeight int     `json:"min_thumbnail_height" yaml:"min_thumbnail_height"`
	LocalAspectRatio   float64 `json:"local_aspect_ratio" yaml:"local_aspect_ratio"`
	RemoteAspectRatio  float64 `json:"remote_aspect_ratio" yaml:"remote_aspect_ratio"`
}

// DefaultParams returns the stock tunables.
func DefaultParams() Params {
	return Params{
		TileSideMargins:    DefaultTileSideMargins,
		TileVerticalChrome: DefaultTileVerticalChrome,
		TileMaxColumns:     DefaultTileMaxColumns,
		TileAspectRatio:    DefaultTileAspectRatio,

		TileHorizontalMargin:      DefaultTileHorizontalMargin,
		TileVerticalMargin:        DefaultTileVerticalMargin,
		ThumbnailHorizontalBorder: DefaultThumbnailHorizontalBorder,
		ThumbnailVerticalBorder:   DefaultThumbnailVerticalBorder,
		ScrollbarGutter:           DefaultScrollbarGutter,

		HorizontalStripMargin:            DefaultHorizontalStripMargin,
		VerticalStripMargin:              DefaultVerticalStripMargin,
		VerticalStripMinHorizontalMargin: DefaultVerticalStripMinHorizontalMargin,
		VerticalStripViewportRatio:       DefaultVerticalStripViewportRatio,
		StripMinSize:                     DefaultStripMinSize,
		StripMaxSize:                     DefaultStripMaxSize,

		ChatWidth:          DefaultChatWidth,
		MinThumbnailHeight: DefaultMinThumbnailHeight,
		LocalAspectRatio:   DefaultLocalAspectRatio,
		RemoteAspectRatio:  DefaultRemoteAspectRatio,
	}
}
