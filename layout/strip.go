package layout

// StripDimensions is the dimension record shared by the vertical and
// horizontal modes. RemoteVideosContainer is the box holding the remote
// thumbnails only, not the whole viewport.
type StripDimensions struct {
	Local                 Size `json:"local" yaml:"local"`
	Remote                Size `json:"remote" yaml:"remote"`
	RemoteVideosContainer Size `json:"remote_videos_container" yaml:"remote_videos_container"`
}

// ThumbnailSize is the remote thumbnail size, the one repeated along the strip.
func (d StripDimensions) ThumbnailSize() Size {
	return d.Remote
}

// VerticalStripWidth is the width given to the vertical strip: a share of the
// viewport width minus a margin, clamped to the strip size bounds.
func VerticalStripWidth(viewportWidth int, p Params) int {
	share := int(float64(viewportWidth)*p.VerticalStripViewportRatio) - p.VerticalStripMinHorizontalMargin
	return clamp(share, p.StripMinSize, max(p.StripMaxSize, p.StripMinSize))
}

// HorizontalStripHeight is the height given to the horizontal strip.
func HorizontalStripHeight(viewportHeight int, p Params) int {
	return clamp(viewportHeight, 0, max(p.StripMaxSize, p.StripMinSize))
}

// CalculateVertical sizes the thumbnails of a vertical strip. Thumbnails are
// bound by the strip width and by the viewport height left after the strip's
// vertical margin. The remote container sits below the local thumbnail.
func CalculateVertical(viewport Size, p Params) StripDimensions {
	b := box{
		width:  VerticalStripWidth(viewport.Width, p),
		height: viewport.Height - p.VerticalStripMargin,
	}
	local := fitAspect(b, p.LocalAspectRatio, p.MinThumbnailHeight)
	remote := fitAspect(b, p.RemoteAspectRatio, p.MinThumbnailHeight)

	return StripDimensions{
		Local:  local,
		Remote: remote,
		RemoteVideosContainer: Size{
			Width:  local.Width + p.TileHorizontalMargin + p.ThumbnailHorizontalBorder + p.ScrollbarGutter,
			Height: nonNegative(viewport.Height - local.Height - p.VerticalStripMargin),
		},
	}
}

// CalculateHorizontal sizes the thumbnails of a horizontal strip. Thumbnails
// are bound by the strip height and by the viewport width left after the
// strip's horizontal margin. The remote container sits beside the local thumbnail.
func CalculateHorizontal(viewport Size, p Params) StripDimensions {
	b := box{
		width:  viewport.Width - p.HorizontalStripMargin,
		height: HorizontalStripHeight(viewport.Height, p),
	}
	local := fitAspect(b, p.LocalAspectRatio, p.MinThumbnailHeight)
	remote := fitAspect(b, p.RemoteAspectRatio, p.MinThumbnailHeight)

	return StripDimensions{
		Local:  local,
		Remote: remote,
		RemoteVideosContainer: Size{
			Width:  nonNegative(viewport.Width - local.Width - p.HorizontalStripMargin),
			Height: local.Height + p.TileVerticalMargin + p.ThumbnailVerticalBorder + p.ScrollbarGutter,
		},
	}
}
