package app

import (
	"context"
	"encoding/json"
	"os"
	"testing"

	"callstrip/config"
	"callstrip/filmstrip"
	"callstrip/layout"
	"callstrip/testing/harness"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	lipgloss.SetColorProfile(termenv.Ascii)
	os.Exit(m.Run())
}

// newTestHome builds a home whose state and clipboard stay inside the test.
func newTestHome(t *testing.T, seed ...string) (*home, *harness.Harness) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	cfg := config.DefaultConfig()
	h := newHome(context.Background(), cfg, config.DefaultState(cfg), seed)
	h.copyToClipboard = func(string) error { return nil }
	return h, harness.New(t, h, 120, 40)
}

func TestResizeReportsStageInPixels(t *testing.T) {
	h, _ := newTestHome(t, "alice", "bob")

	// 120 columns minus a 30 column roster, 40 rows minus header, menu and error rows.
	assert.Equal(t, 30, h.rosterWidth)
	assert.Equal(t, layout.Size{Width: 90 * 8, Height: 37 * 16}, h.engine.Viewport())
	assert.Equal(t, filmstrip.Window{Start: 0, End: 2}, h.engine.Window())
}

func TestNarrowTerminalHidesRoster(t *testing.T) {
	h, hs := newTestHome(t, "alice")
	hs.Resize(40, 20)
	assert.Equal(t, 0, h.rosterWidth)
	assert.Equal(t, 40*8, h.engine.Viewport().Width)
}

func TestAddAndRemoveParticipants(t *testing.T) {
	h, hs := newTestHome(t, "alice", "bob")

	hs.SendKey("a")
	require.Equal(t, 3, h.directory.Len())
	assert.Equal(t, "erin", h.directory.Snapshot()[2].Name)
	assert.Equal(t, filmstrip.Window{Start: 0, End: 3}, h.engine.Window())
	assert.Equal(t, 3, h.list.NumParticipants())

	// The selection starts on the first row.
	hs.SendKey("x")
	require.Equal(t, 2, h.directory.Len())
	assert.Equal(t, "bob", h.directory.Snapshot()[0].Name)
	assert.Equal(t, filmstrip.Window{Start: 0, End: 2}, h.engine.Window())
}

func TestAddNamesWrap(t *testing.T) {
	h, _ := newTestHome(t)
	h.nameSeq = len(demoNames)
	assert.Equal(t, "erin-2", h.nextName())
}

func TestPinSelectedParticipant(t *testing.T) {
	h, hs := newTestHome(t, "alice", "bob")
	alice := h.directory.Snapshot()[0]

	hs.SendKey("p")
	assert.Equal(t, alice.ID, h.engine.Pinned())
	assert.Contains(t, hs.PlainView(), "pinned alice")

	hs.SendKey("p")
	assert.Empty(t, h.engine.Pinned())
	assert.Contains(t, hs.PlainView(), "pin cleared")
}

func TestPinByOrdinal(t *testing.T) {
	h, hs := newTestHome(t, "alice", "bob")
	bob := h.directory.Snapshot()[1]

	hs.SendKey("2")
	assert.Equal(t, bob.ID, h.engine.Pinned())

	// Out of range ordinals are ignored.
	hs.SendKey("9")
	assert.Equal(t, bob.ID, h.engine.Pinned())
}

func TestRemovingPinnedParticipantClearsPin(t *testing.T) {
	h, hs := newTestHome(t, "alice", "bob")
	hs.SendKey("p")
	require.NotEmpty(t, h.engine.Pinned())

	hs.SendKey("x")
	assert.Empty(t, h.engine.Pinned())
}

func TestClickPinsThumbnail(t *testing.T) {
	h, hs := newTestHome(t, "alice", "bob", "carol")

	var target string
	var x, y int
	for _, r := range h.strip.Hits() {
		if r.ID != "" {
			target, x, y = r.ID, r.X, r.Y
			break
		}
	}
	require.NotEmpty(t, target, "no remote thumbnail was drawn")

	hs.Click(h.rosterWidth+x, y+1)
	assert.Equal(t, target, h.engine.Pinned())

	// Clicks on the roster do not pin anything.
	hs.Click(0, 1)
	assert.Equal(t, target, h.engine.Pinned())
}

func TestModeKeys(t *testing.T) {
	h, hs := newTestHome(t, "alice")
	require.Equal(t, layout.ModeTile, h.engine.Mode())

	hs.SendKey("m")
	assert.Equal(t, layout.ModeVertical, h.engine.Mode())

	hs.SendKey("M")
	require.Equal(t, stateMode, h.state)
	hs.SendSpecialKey(tea.KeyDown)
	hs.SendSpecialKey(tea.KeyEnter)
	assert.Equal(t, stateDefault, h.state)
	assert.Equal(t, layout.ModeHorizontal, h.engine.Mode())

	hs.SendKey("M")
	hs.SendSpecialKey(tea.KeyEsc)
	assert.Equal(t, stateDefault, h.state)
	assert.Equal(t, layout.ModeHorizontal, h.engine.Mode())
}

func TestChatToggleNarrowsStage(t *testing.T) {
	h, hs := newTestHome(t, "alice")
	hs.SendKey("c")
	assert.True(t, h.engine.ChatOpen())
	assert.Positive(t, h.chatCells)
	assert.Contains(t, hs.PlainView(), "chat")

	hs.SendKey("c")
	assert.False(t, h.engine.ChatOpen())
	assert.Zero(t, h.chatCells)
}

func TestFilmstripToggle(t *testing.T) {
	h, hs := newTestHome(t, "alice")
	hs.SendKey("f")
	assert.False(t, h.engine.FilmstripVisible())
	assert.Contains(t, hs.PlainView(), "filmstrip hidden")
}

func TestVolumeKeys(t *testing.T) {
	h, hs := newTestHome(t, "alice")
	id := h.directory.Snapshot()[0].ID

	hs.SendKey("+")
	v, ok := h.engine.Volume(id)
	require.True(t, ok)
	assert.Equal(t, 1.0, v)

	hs.SendKeys("-", "-")
	v, _ = h.engine.Volume(id)
	assert.InDelta(t, 0.8, v, 1e-9)
}

func TestCopyLayout(t *testing.T) {
	h, hs := newTestHome(t, "alice", "bob")
	var copied string
	h.copyToClipboard = func(s string) error {
		copied = s
		return nil
	}

	hs.SendKey("y")
	require.NotEmpty(t, copied)
	var d layout.TileDimensions
	require.NoError(t, json.Unmarshal([]byte(copied), &d))
	assert.Equal(t, h.engine.Dimensions(), d)
	assert.Contains(t, hs.PlainView(), "copied tile layout")
}

func TestHelpOverlay(t *testing.T) {
	h, hs := newTestHome(t, "alice")
	hs.SendKey("?")
	require.Equal(t, stateHelp, h.state)
	hs.AssertViewContains("Keys")

	hs.SendKey("a")
	assert.Equal(t, stateDefault, h.state)
	// The dismissing key is not treated as an action.
	assert.Equal(t, 1, h.directory.Len())
}

func TestConfigReload(t *testing.T) {
	h, hs := newTestHome(t, "alice")
	cfg := config.DefaultConfig()
	cfg.CellWidth = 10

	hs.SendMsg(configReloadedMsg{cfg: cfg})
	assert.Equal(t, 90*10, h.engine.Viewport().Width)
	assert.Contains(t, hs.PlainView(), "config reloaded")
}

func TestQuitSavesState(t *testing.T) {
	h, hs := newTestHome(t, "alice")
	hs.SendKeys("m", "c")

	cmd := hs.SendKey("q")
	require.NotNil(t, cmd)

	st := config.LoadState(h.appConfig)
	assert.Equal(t, layout.ModeVertical.String(), st.Mode)
	assert.True(t, st.ChatOpen)
}

func TestViewFitsCommonSizes(t *testing.T) {
	harness.RunWithCommonSizes(t, func(t *testing.T, size harness.TerminalSize) {
		t.Setenv("HOME", t.TempDir())
		cfg := config.DefaultConfig()
		h := newHome(context.Background(), cfg, config.DefaultState(cfg), seedNames)
		hs := harness.New(t, h, size.Width, size.Height)

		hs.AssertViewContains("callstrip")
		assert.LessOrEqual(t, harness.Lines(hs.View()), size.Height)
	})
}


func TestWheelScrollsStrip(t *testing.T) {
	names := make([]string, 0, 20)
	for i := 0; i < 20; i++ {
		names = append(names, demoNames[i%len(demoNames)])
	}
	h, hs := newTestHome(t, names...)
	hs.SendKey("m")
	require.Equal(t, layout.ModeVertical, h.engine.Mode())
	require.Zero(t, h.engine.ScrollOffset())

	hs.Wheel(true)
	assert.Equal(t, h.engine.ScrollStep(), h.engine.ScrollOffset())
	assert.Equal(t, 1, h.engine.Window().Start)

	hs.Wheel(false)
	assert.Zero(t, h.engine.ScrollOffset())
	assert.Zero(t, h.engine.Window().Start)
}

func TestSnapshotDescribesScreen(t *testing.T) {
	h, hs := newTestHome(t, "alice", "bob")
	hs.SendKey("p")

	snap := h.snapshot()
	assert.Equal(t, hs.Width(), snap.Terminal.Width)
	assert.Equal(t, hs.Height(), snap.Terminal.Height)
	assert.Equal(t, 2, snap.AppState.ParticipantCount)
	assert.Equal(t, "pinned alice", snap.AppState.ErrorMessage)
	assert.Equal(t, h.directory.Snapshot()[0].ID, snap.Engine.Pinned)

	bob := h.directory.Snapshot()[1]
	thumb := snap.Components.Find("Thumbnail", bob.ID)
	require.NotNil(t, thumb)
	require.NotNil(t, thumb.Pixels)
	assert.Positive(t, thumb.Pixels.Width)
	assert.GreaterOrEqual(t, thumb.Bounds.X, h.rosterWidth)
	assert.NotNil(t, snap.Components.Find("Participant", bob.ID))
}

func TestHarnessWrapsHome(t *testing.T) {
	h, hs := newTestHome(t)
	assert.Same(t, h, hs.Model())
	hs.AssertViewContains("nobody here yet")
}
