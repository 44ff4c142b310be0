package overlay

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// TextOverlay shows a block of text until any key is pressed.
type TextOverlay struct {
	Dismissed bool
	title     string
	content   string
	width     int
}

// NewTextOverlay creates a text overlay.
func NewTextOverlay(title, content string) *TextOverlay {
	return &TextOverlay{title: title, content: content, width: 60}
}

// HandleKeyPress dismisses the overlay on any key.
func (t *TextOverlay) HandleKeyPress(tea.KeyMsg) bool {
	t.Dismissed = true
	return true
}

// SetWidth sets the width of the overlay
func (t *TextOverlay) SetWidth(width int) {
	t.width = width
}

// Render renders the overlay.
func (t *TextOverlay) Render() string {
	title := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("62")).Render(t.title)
	hint := lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Render("press any key to close")

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("62")).
		Padding(1, 2).
		Width(t.width).
		Render(title + "\n\n" + t.content + "\n\n" + hint)
}
