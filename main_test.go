package main

import (
	"bytes"
	"encoding/json"
	"testing"

	"callstrip/config"
	"callstrip/filmstrip"
	"callstrip/layout"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setLayoutFlags(t *testing.T, width, height int, chat bool) {
	t.Helper()
	oldW, oldH, oldChat := widthFlag, heightFlag, chatFlag
	widthFlag, heightFlag, chatFlag = width, height, chat
	t.Cleanup(func() {
		widthFlag, heightFlag, chatFlag = oldW, oldH, oldChat
	})
}

func TestComputeLayoutTile(t *testing.T) {
	setLayoutFlags(t, 1280, 720, false)

	result := computeLayout(config.DefaultConfig(), layout.ModeTile, 4)
	assert.Equal(t, "tile", result.Mode)
	assert.Equal(t, layout.Size{Width: 1280, Height: 720}, result.Viewport)
	assert.Equal(t, 4, result.Participants)
	assert.Equal(t, filmstrip.Window{Start: 0, End: 4}, result.Window)

	d, ok := result.Dimensions.(layout.TileDimensions)
	require.True(t, ok)
	assert.Positive(t, d.ThumbnailSize.Width)
	assert.Positive(t, d.ThumbnailSize.Height)
}

func TestComputeLayoutChatShrinksTiles(t *testing.T) {
	setLayoutFlags(t, 1280, 720, false)
	closed := computeLayout(config.DefaultConfig(), layout.ModeTile, 11).Dimensions.(layout.TileDimensions)

	setLayoutFlags(t, 1280, 720, true)
	open := computeLayout(config.DefaultConfig(), layout.ModeTile, 11).Dimensions.(layout.TileDimensions)

	assert.Less(t, open.ThumbnailSize.Width, closed.ThumbnailSize.Width)
}

func TestComputeLayoutStrip(t *testing.T) {
	setLayoutFlags(t, 1280, 720, false)

	result := computeLayout(config.DefaultConfig(), layout.ModeVertical, 2)
	_, ok := result.Dimensions.(layout.StripDimensions)
	assert.True(t, ok)
}

func TestWriteLayoutFormats(t *testing.T) {
	setLayoutFlags(t, 1280, 720, false)
	result := computeLayout(config.DefaultConfig(), layout.ModeTile, 3)

	var compact bytes.Buffer
	require.NoError(t, writeLayout(&compact, result, "json", false))
	assert.Equal(t, 1, bytes.Count(compact.Bytes(), []byte("\n")))

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(compact.Bytes(), &decoded))
	assert.Equal(t, "tile", decoded["mode"])
	assert.Contains(t, decoded["dimensions"], "grid_dimensions")

	var pretty bytes.Buffer
	require.NoError(t, writeLayout(&pretty, result, "json", true))
	assert.Contains(t, pretty.String(), "\n  \"mode\": \"tile\"")

	var y bytes.Buffer
	require.NoError(t, writeLayout(&y, result, "yaml", false))
	assert.Contains(t, y.String(), "mode: tile")
	assert.Contains(t, y.String(), "thumbnail_size:")
	assert.Contains(t, y.String(), "end_index: 3")

	assert.Error(t, writeLayout(&bytes.Buffer{}, result, "xml", false))
}
