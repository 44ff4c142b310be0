package overlay

import (
	"strings"

	"callstrip/layout"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// ModeOption is one selectable layout mode.
type ModeOption struct {
	Mode        layout.Mode
	Name        string
	Description string
}

// ModeSelectorOverlay lets the user pick a layout mode.
type ModeSelectorOverlay struct {
	Dismissed bool
	Selected  layout.Mode
	chosen    bool
	options   []ModeOption
	cursor    int
	width     int
}

// NewModeSelectorOverlay creates a selector with the cursor on current.
func NewModeSelectorOverlay(current layout.Mode) *ModeSelectorOverlay {
	options := []ModeOption{
		{
			Mode:        layout.ModeTile,
			Name:        "Tile view",
			Description: "Everyone in an equally sized grid.\nRows beyond the viewport scroll.",
		},
		{
			Mode:        layout.ModeVertical,
			Name:        "Vertical filmstrip",
			Description: "One column of thumbnails beside the stage.\nSized from the viewport height.",
		},
		{
			Mode:        layout.ModeHorizontal,
			Name:        "Horizontal filmstrip",
			Description: "One row of thumbnails below the stage.\nSized from the viewport width.",
		},
	}

	m := &ModeSelectorOverlay{
		options:  options,
		width:    56,
		Selected: current,
	}
	for i, opt := range options {
		if opt.Mode == current {
			m.cursor = i
		}
	}
	return m
}

// HandleKeyPress processes a key press and reports whether the overlay closed.
func (m *ModeSelectorOverlay) HandleKeyPress(msg tea.KeyMsg) bool {
	switch msg.String() {
	case "up", "k":
		m.moveCursor(-1)
		return false
	case "down", "j":
		m.moveCursor(1)
		return false
	case "enter":
		m.Selected = m.options[m.cursor].Mode
		m.chosen = true
		m.Dismissed = true
		return true
	case "esc", "q":
		m.Dismissed = true
		return true
	default:
		return false
	}
}

// Chosen reports whether the overlay was closed with a selection.
func (m *ModeSelectorOverlay) Chosen() bool {
	return m.chosen
}

// moveCursor moves the cursor, wrapping at both ends.
func (m *ModeSelectorOverlay) moveCursor(delta int) {
	n := len(m.options)
	m.cursor = ((m.cursor+delta)%n + n) % n
}

// Render renders the mode selector overlay
func (m *ModeSelectorOverlay) Render() string {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#FFFFFF"))

	selectedStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#7aa2f7")).
		Bold(true)

	normalStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#AAAAAA"))

	descStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#888888")).
		PaddingLeft(4)

	var content strings.Builder
	content.WriteString(titleStyle.Render("Select Layout Mode"))
	content.WriteString("\n\n")

	for i, opt := range m.options {
		prefix, nameStyle := "  ", normalStyle
		if i == m.cursor {
			prefix, nameStyle = "> ", selectedStyle
		}

		content.WriteString(prefix)
		content.WriteString(nameStyle.Render(opt.Name))
		content.WriteString("\n")

		for _, line := range strings.Split(opt.Description, "\n") {
			content.WriteString(descStyle.Render(line))
			content.WriteString("\n")
		}
		content.WriteString("\n")
	}

	content.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color("#666666")).Render(
		"[Enter] Select  [Esc] Cancel  [↑/↓] Navigate"))

	borderStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#7aa2f7")).
		Padding(1, 2).
		Width(m.width)

	return borderStyle.Render(content.String())
}

// SetWidth sets the width of the overlay
func (m *ModeSelectorOverlay) SetWidth(width int) {
	m.width = width
}
