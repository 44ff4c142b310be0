package ui

import "github.com/charmbracelet/lipgloss"

// Colors shared by every component.
var (
	// Primary is the accent/focus color
	Primary = lipgloss.AdaptiveColor{Light: "#7D56F4", Dark: "#7D56F4"}

	// Border is the default border color
	Border = lipgloss.AdaptiveColor{Light: "#D1D5DB", Dark: "#3C3C3C"}

	// BorderPinned marks the pinned participant's thumbnail.
	BorderPinned = lipgloss.AdaptiveColor{Light: "#F59E0B", Dark: "#F59E0B"}

	// BorderLocal marks the local self-view thumbnail.
	BorderLocal = lipgloss.AdaptiveColor{Light: "#22C55E", Dark: "#22C55E"}

	// TextPrimary is the main text color
	TextPrimary = lipgloss.AdaptiveColor{Light: "#1a1a1a", Dark: "#dddddd"}

	// TextSecondary is for secondary text (descriptions, labels)
	TextSecondary = lipgloss.AdaptiveColor{Light: "#4B5563", Dark: "#9CA3AF"}

	// TextMuted is for hints and subtle text
	TextMuted = lipgloss.AdaptiveColor{Light: "#9CA3AF", Dark: "#6B7280"}

	// Error is used by the error box.
	Error = lipgloss.AdaptiveColor{Light: "#EF4444", Dark: "#EF4444"}

	// BackgroundSelected is for selected items
	BackgroundSelected = lipgloss.AdaptiveColor{Light: "#dde4f0", Dark: "#3C3C4C"}
)

// Icons drawn next to participant names.
const (
	IconPinned  = "*"
	IconVisible = "●"
	IconHidden  = "○"
)

// ThumbnailStyles are the bordered boxes drawn for each thumbnail.
var ThumbnailStyles = struct {
	Remote lipgloss.Style
	Pinned lipgloss.Style
	Local  lipgloss.Style
}{
	Remote: lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Border).
		Foreground(TextPrimary),
	Pinned: lipgloss.NewStyle().
		Border(lipgloss.ThickBorder()).
		BorderForeground(BorderPinned).
		Foreground(TextPrimary).
		Bold(true),
	Local: lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(BorderLocal).
		Foreground(TextSecondary),
}

// TextStyles contains pre-built styles for text elements
var TextStyles = struct {
	Primary   lipgloss.Style
	Secondary lipgloss.Style
	Muted     lipgloss.Style
}{
	Primary:   lipgloss.NewStyle().Foreground(TextPrimary),
	Secondary: lipgloss.NewStyle().Foreground(TextSecondary),
	Muted:     lipgloss.NewStyle().Foreground(TextMuted),
}

// HeaderStyle is the one-line title bar.
var HeaderStyle = lipgloss.NewStyle().
	Background(lipgloss.Color("62")).
	Foreground(lipgloss.Color("230")).
	Padding(0, 1)

// ChatPanelStyle frames the placeholder chat panel.
func ChatPanelStyle(width, height int) lipgloss.Style {
	return lipgloss.NewStyle().
		Border(lipgloss.NormalBorder(), false, false, false, true).
		BorderForeground(Border).
		Foreground(TextMuted).
		Padding(0, 1).
		Width(max(width-1, 0)).
		Height(max(height, 0))
}
