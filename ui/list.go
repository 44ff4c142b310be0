package ui

import (
	"fmt"
	"strings"
	"time"

	"callstrip/participants"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

var titleStyle = lipgloss.NewStyle().
	Padding(1, 1, 0, 1).
	Foreground(lipgloss.AdaptiveColor{Light: "#1a1a1a", Dark: "#dddddd"})

var listDescStyle = lipgloss.NewStyle().
	Padding(0, 1, 0, 1).
	Foreground(lipgloss.AdaptiveColor{Light: "#A49FA5", Dark: "#777777"})

var selectedTitleStyle = lipgloss.NewStyle().
	Padding(1, 1, 0, 1).
	Background(BackgroundSelected).
	Foreground(lipgloss.AdaptiveColor{Light: "#1a1a1a", Dark: "#dddddd"})

var selectedDescStyle = lipgloss.NewStyle().
	Padding(0, 1, 0, 1).
	Background(BackgroundSelected).
	Foreground(lipgloss.AdaptiveColor{Light: "#1a1a1a", Dark: "#dddddd"})

var mainTitle = lipgloss.NewStyle().
	Background(lipgloss.Color("62")).
	Foreground(lipgloss.Color("230"))

var pinnedStyle = lipgloss.NewStyle().Foreground(BorderPinned).Bold(true)

// RosterEntry is one participant row with its filmstrip state.
type RosterEntry struct {
	Participant participants.Participant
	Pinned      bool
	Visible     bool
	Volume      float64
	HasVolume   bool
}

// List is the participant roster shown beside the filmstrip.
type List struct {
	items         []RosterEntry
	selectedIdx   int
	height, width int
	now           func() time.Time
}

func NewList() *List {
	return &List{now: time.Now}
}

// SetSize sets the height and width of the list.
func (l *List) SetSize(width, height int) {
	l.width = width
	l.height = height
}

// SetItems replaces the rows. The selection follows the selected participant
// when it is still present.
func (l *List) SetItems(items []RosterEntry) {
	selectedID := ""
	if e, ok := l.Selected(); ok {
		selectedID = e.Participant.ID
	}
	l.items = items
	for i, e := range items {
		if e.Participant.ID == selectedID {
			l.selectedIdx = i
			return
		}
	}
	l.selectedIdx = max(0, min(l.selectedIdx, len(items)-1))
}

func (l *List) NumParticipants() int {
	return len(l.items)
}

// Down selects the next item in the list.
func (l *List) Down() {
	if l.selectedIdx < len(l.items)-1 {
		l.selectedIdx++
	}
}

// Up selects the prev item in the list.
func (l *List) Up() {
	if l.selectedIdx > 0 {
		l.selectedIdx--
	}
}

// Selected returns the selected row.
func (l *List) Selected() (RosterEntry, bool) {
	if len(l.items) == 0 {
		return RosterEntry{}, false
	}
	return l.items[l.selectedIdx], true
}

// SelectedIndex returns the selected position.
func (l *List) SelectedIndex() int {
	return l.selectedIdx
}

func (l *List) renderItem(e RosterEntry, idx int, selected bool) string {
	titleS, descS := titleStyle, listDescStyle
	if selected {
		titleS, descS = selectedTitleStyle, selectedDescStyle
	}
	inner := max(l.width-2, 1)

	prefix := fmt.Sprintf("%d. ", idx+1)
	icon := IconHidden
	if e.Visible {
		icon = IconVisible
	}
	marker := ""
	if e.Pinned {
		marker = " " + pinnedStyle.Render(IconPinned)
	}

	nameWidth := inner - runewidth.StringWidth(prefix) - 2 - lipgloss.Width(marker)
	name := runewidth.Truncate(e.Participant.Name, max(nameWidth, 1), "…")
	title := titleS.Width(l.width).Render(prefix + icon + " " + name + marker)

	var details []string
	if e.HasVolume {
		details = append(details, "vol "+FormatVolume(e.Volume))
	}
	if since := FormatSince(e.Participant.JoinedAt, l.now()); since != "" {
		details = append(details, "joined "+since)
	}
	desc := runewidth.Truncate(strings.Repeat(" ", runewidth.StringWidth(prefix))+strings.Join(details, " · "), inner, "…")

	return lipgloss.JoinVertical(lipgloss.Left, title, descS.Width(l.width).Render(desc))
}

func (l *List) String() string {
	const titleText = " Participants "

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(lipgloss.Place(l.width, 1, lipgloss.Left, lipgloss.Bottom,
		mainTitle.Render(titleText)+TextStyles.Muted.Render(fmt.Sprintf(" %d", len(l.items)))))
	b.WriteString("\n")

	if len(l.items) == 0 {
		b.WriteString("\n")
		b.WriteString(TextStyles.Muted.Render(" nobody here yet, press a"))
	}
	for i, item := range l.items {
		b.WriteString(l.renderItem(item, i, i == l.selectedIdx))
		if i != len(l.items)-1 {
			b.WriteString("\n")
		}
	}
	return lipgloss.NewStyle().MaxWidth(l.width).MaxHeight(l.height).Render(
		lipgloss.Place(l.width, l.height, lipgloss.Left, lipgloss.Top, b.String()))
}
