package inspect

import (
	"fmt"
	"strings"
	"time"

	"callstrip/filmstrip"
)

// Snapshot represents the demo state at a point in time.
type Snapshot struct {
	// Timestamp when the snapshot was taken.
	Timestamp time.Time `json:"timestamp"`

	// Version of the snapshot format.
	Version string `json:"version"`

	// Terminal contains terminal dimensions.
	Terminal TerminalInfo `json:"terminal"`

	// AppState contains application state information.
	AppState AppStateInfo `json:"app_state"`

	// Engine is the filmstrip engine state.
	Engine filmstrip.Snapshot `json:"engine"`

	// Components is the root of the component tree.
	Components *Node `json:"components"`
}

// TerminalInfo contains terminal dimensions.
type TerminalInfo struct {
	Width  int `json:"width"`
	Height int `json:"height"`
	// CellWidth and CellHeight are the pixels assumed per cell.
	CellWidth  int `json:"cell_width"`
	CellHeight int `json:"cell_height"`
}

// AppStateInfo contains application-level state.
type AppStateInfo struct {
	// State is the current app state (e.g., "default", "help", "mode").
	State string `json:"state"`

	// HasOverlay indicates if an overlay is currently displayed.
	HasOverlay bool `json:"has_overlay"`

	// ParticipantCount is the number of remote participants.
	ParticipantCount int `json:"participant_count"`

	// SelectedIndex is the roster selection.
	SelectedIndex int `json:"selected_index"`

	// DroppedEvents counts engine events lost to a full channel.
	DroppedEvents int `json:"dropped_events,omitempty"`

	// ErrorMessage is the current error message if any.
	ErrorMessage string `json:"error_message,omitempty"`
}

// NewSnapshot creates a new snapshot with current timestamp.
func NewSnapshot() *Snapshot {
	return &Snapshot{
		Timestamp: time.Now(),
		Version:   "1.0.0",
	}
}

// WithTerminal sets terminal info and returns the snapshot for chaining.
func (s *Snapshot) WithTerminal(width, height, cellWidth, cellHeight int) *Snapshot {
	s.Terminal = TerminalInfo{Width: width, Height: height, CellWidth: cellWidth, CellHeight: cellHeight}
	return s
}

// WithAppState sets app state and returns the snapshot for chaining.
func (s *Snapshot) WithAppState(state AppStateInfo) *Snapshot {
	s.AppState = state
	return s
}

// WithEngine sets the engine state and returns the snapshot for chaining.
func (s *Snapshot) WithEngine(e filmstrip.Snapshot) *Snapshot {
	s.Engine = e
	return s
}

// WithComponents sets the component tree root.
func (s *Snapshot) WithComponents(root *Node) *Snapshot {
	s.Components = root
	return s
}

// ToText returns a human-readable text representation.
func (s *Snapshot) ToText() string {
	var b strings.Builder

	b.WriteString("=== UI Snapshot ===\n")
	b.WriteString(fmt.Sprintf("Time: %s\n", s.Timestamp.Format(time.RFC3339)))
	b.WriteString(fmt.Sprintf("Terminal: %dx%d (cell %dx%dpx)\n",
		s.Terminal.Width, s.Terminal.Height, s.Terminal.CellWidth, s.Terminal.CellHeight))
	b.WriteString(fmt.Sprintf("State: %s\n", s.AppState.State))

	b.WriteString("\n--- Filmstrip ---\n")
	b.WriteString(fmt.Sprintf("Mode: %s\n", s.Engine.Mode))
	b.WriteString(fmt.Sprintf("Viewport: %dx%d chat=%v\n", s.Engine.Viewport.Width, s.Engine.Viewport.Height, s.Engine.ChatOpen))
	b.WriteString(fmt.Sprintf("Window: %s of %d\n", s.Engine.Window, s.AppState.ParticipantCount))
	if s.Engine.Pinned != "" {
		b.WriteString(fmt.Sprintf("Pinned: %s\n", s.Engine.Pinned))
	}

	if s.Components != nil {
		b.WriteString("\n--- Components ---\n")
		writeNodeText(&b, s.Components, 0)
	}

	return b.String()
}

func writeNodeText(b *strings.Builder, node *Node, indent int) {
	prefix := strings.Repeat("  ", indent)

	b.WriteString(fmt.Sprintf("%s%s", prefix, node.Type))
	if node.ID != "" {
		b.WriteString(fmt.Sprintf(" [%s]", node.ID))
	}
	b.WriteString(fmt.Sprintf(" (%dx%d at %d,%d)", node.Bounds.Width, node.Bounds.Height, node.Bounds.X, node.Bounds.Y))
	if node.Pixels != nil {
		b.WriteString(fmt.Sprintf(" px=%dx%d", node.Pixels.Width, node.Pixels.Height))
	}

	if node.Truncated != nil {
		b.WriteString(fmt.Sprintf(" TRUNCATED(%d->%d)",
			node.Truncated.OriginalLength,
			node.Truncated.DisplayLength))
	}

	b.WriteString("\n")

	for _, child := range node.Children {
		writeNodeText(b, child, indent+1)
	}
}
