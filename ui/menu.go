package ui

import (
	"strings"

	"callstrip/keys"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"
)

var keyStyle = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{
	Light: "#655F5F",
	Dark:  "#7F7A7A",
})

var descStyle = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{
	Light: "#7A7474",
	Dark:  "#9C9494",
})

var sepStyle = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{
	Light: "#DDDADA",
	Dark:  "#3C3C3C",
})

var actionGroupStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("99"))

var separator = " • "
var verticalSeparator = " │ "

var menuStyle = lipgloss.NewStyle().
	Foreground(lipgloss.Color("205"))

// MenuState represents different states the menu can be in
type MenuState int

const (
	StateDefault MenuState = iota
	StateEmpty
	StateOverlay
)

type Menu struct {
	groups        [][]keys.KeyName
	height, width int
	state         MenuState

	// keyDown is the key which is pressed. The default is -1.
	keyDown keys.KeyName
}

var emptyMenuGroups = [][]keys.KeyName{
	{keys.KeyAdd},
	{keys.KeyModeNext, keys.KeyChat, keys.KeyHelp, keys.KeyQuit},
}

var defaultMenuGroups = [][]keys.KeyName{
	{keys.KeyAdd, keys.KeyRemove, keys.KeyPromote},
	{keys.KeyPin, keys.KeyVolumeUp, keys.KeyVolumeDown, keys.KeyScrollForward},
	{keys.KeyModeNext, keys.KeyChat, keys.KeyFilmstrip, keys.KeyCopy, keys.KeyHelp, keys.KeyQuit},
}

var overlayMenuGroups = [][]keys.KeyName{
	{keys.KeyUp, keys.KeyDown},
}

func NewMenu() *Menu {
	m := &Menu{keyDown: -1}
	m.SetState(StateEmpty)
	return m
}

func (m *Menu) Keydown(name keys.KeyName) {
	m.keyDown = name
}

func (m *Menu) ClearKeydown() {
	m.keyDown = -1
}

// SetState updates the menu state and options accordingly
func (m *Menu) SetState(state MenuState) {
	m.state = state
	switch state {
	case StateDefault:
		m.groups = defaultMenuGroups
	case StateOverlay:
		m.groups = overlayMenuGroups
	default:
		m.groups = emptyMenuGroups
	}
}

// State returns the current menu state.
func (m *Menu) State() MenuState {
	return m.state
}

// SetSize sets the width of the window. The menu will be centered horizontally within this width.
func (m *Menu) SetSize(width, height int) {
	m.width = width
	m.height = height
}

func (m *Menu) String() string {
	var s strings.Builder

	// The second group holds the actions on the selected participant.
	for g, group := range m.groups {
		for i, k := range group {
			binding := keys.GlobalkeyBindings[k]

			localKeyStyle, localDescStyle := keyStyle, descStyle
			if g == 1 && len(m.groups) > 2 {
				localKeyStyle, localDescStyle = actionGroupStyle, actionGroupStyle
			}
			if m.keyDown == k {
				localKeyStyle = localKeyStyle.Underline(true)
				localDescStyle = localDescStyle.Underline(true)
			}

			s.WriteString(localKeyStyle.Render(binding.Help().Key))
			s.WriteString(" ")
			s.WriteString(localDescStyle.Render(binding.Help().Desc))

			if i != len(group)-1 {
				s.WriteString(sepStyle.Render(separator))
			}
		}
		if g != len(m.groups)-1 {
			s.WriteString(sepStyle.Render(verticalSeparator))
		}
	}

	text := s.String()
	if m.width > 0 && lipgloss.Width(text) > m.width {
		text = truncate.StringWithTail(text, uint(m.width), "…")
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, menuStyle.Render(text))
}
