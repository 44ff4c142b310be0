package filmstrip

import "callstrip/layout"

// DimensionStore keeps the most recent record per mode. Renderers read from
// here; nothing else holds dimensions.
type DimensionStore struct {
	tile       layout.TileDimensions
	vertical   layout.StripDimensions
	horizontal layout.StripDimensions

	hasTile, hasVertical, hasHorizontal bool
}

// SetTile stores d and reports whether it differs from the previous record.
func (s *DimensionStore) SetTile(d layout.TileDimensions) bool {
	if s.hasTile && s.tile == d {
		return false
	}
	s.tile, s.hasTile = d, true
	return true
}

// SetVertical stores d and reports whether it differs from the previous record.
func (s *DimensionStore) SetVertical(d layout.StripDimensions) bool {
	if s.hasVertical && s.vertical == d {
		return false
	}
	s.vertical, s.hasVertical = d, true
	return true
}

// SetHorizontal stores d and reports whether it differs from the previous record.
func (s *DimensionStore) SetHorizontal(d layout.StripDimensions) bool {
	if s.hasHorizontal && s.horizontal == d {
		return false
	}
	s.horizontal, s.hasHorizontal = d, true
	return true
}

// Tile returns the tile record and whether one was ever computed.
func (s *DimensionStore) Tile() (layout.TileDimensions, bool) {
	return s.tile, s.hasTile
}

// Vertical returns the vertical record and whether one was ever computed.
func (s *DimensionStore) Vertical() (layout.StripDimensions, bool) {
	return s.vertical, s.hasVertical
}

// Horizontal returns the horizontal record and whether one was ever computed.
func (s *DimensionStore) Horizontal() (layout.StripDimensions, bool) {
	return s.horizontal, s.hasHorizontal
}
