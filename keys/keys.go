package keys

import (
	"github.com/charmbracelet/bubbles/key"
)

type KeyName int

const (
	KeyUp KeyName = iota
	KeyDown
	KeyScrollBack
	KeyScrollForward

	KeyModeNext
	KeyModeSelect
	KeyChat
	KeyFilmstrip

	KeyAdd
	KeyRemove
	KeyPromote
	KeyPin
	KeyPinOrdinal

	KeyVolumeUp
	KeyVolumeDown

	KeyCopy
	KeyHelp
	KeyQuit
)

// GlobalKeyStringsMap is a global, immutable map string to keybinding.
var GlobalKeyStringsMap = map[string]KeyName{
	"up":     KeyUp,
	"k":      KeyUp,
	"down":   KeyDown,
	"j":      KeyDown,
	"left":   KeyScrollBack,
	"h":      KeyScrollBack,
	"pgup":   KeyScrollBack,
	"right":  KeyScrollForward,
	"l":      KeyScrollForward,
	"pgdown": KeyScrollForward,
	"m":      KeyModeNext,
	"M":      KeyModeSelect,
	"c":      KeyChat,
	"f":      KeyFilmstrip,
	"a":      KeyAdd,
	"x":      KeyRemove,
	"P":      KeyPromote,
	"enter":  KeyPin,
	"p":      KeyPin,
	"1":      KeyPinOrdinal,
	"2":      KeyPinOrdinal,
	"3":      KeyPinOrdinal,
	"4":      KeyPinOrdinal,
	"5":      KeyPinOrdinal,
	"6":      KeyPinOrdinal,
	"7":      KeyPinOrdinal,
	"8":      KeyPinOrdinal,
	"9":      KeyPinOrdinal,
	"+":      KeyVolumeUp,
	"=":      KeyVolumeUp,
	"-":      KeyVolumeDown,
	"y":      KeyCopy,
	"?":      KeyHelp,
	"q":      KeyQuit,
	"ctrl+c": KeyQuit,
}

// GlobalkeyBindings is a global, immutable map of KeyName to keybinding.
var GlobalkeyBindings = map[KeyName]key.Binding{
	KeyUp: key.NewBinding(
		key.WithKeys("up", "k"),
		key.WithHelp("↑/k", "up"),
	),
	KeyDown: key.NewBinding(
		key.WithKeys("down", "j"),
		key.WithHelp("↓/j", "down"),
	),
	KeyScrollBack: key.NewBinding(
		key.WithKeys("left", "h", "pgup"),
		key.WithHelp("←/h", "scroll back"),
	),
	KeyScrollForward: key.NewBinding(
		key.WithKeys("right", "l", "pgdown"),
		key.WithHelp("→/l", "scroll"),
	),
	KeyModeNext: key.NewBinding(
		key.WithKeys("m"),
		key.WithHelp("m", "mode"),
	),
	KeyModeSelect: key.NewBinding(
		key.WithKeys("M"),
		key.WithHelp("M", "pick mode"),
	),
	KeyChat: key.NewBinding(
		key.WithKeys("c"),
		key.WithHelp("c", "chat"),
	),
	KeyFilmstrip: key.NewBinding(
		key.WithKeys("f"),
		key.WithHelp("f", "filmstrip"),
	),
	KeyAdd: key.NewBinding(
		key.WithKeys("a"),
		key.WithHelp("a", "add"),
	),
	KeyRemove: key.NewBinding(
		key.WithKeys("x"),
		key.WithHelp("x", "remove"),
	),
	KeyPromote: key.NewBinding(
		key.WithKeys("P"),
		key.WithHelp("P", "promote"),
	),
	KeyPin: key.NewBinding(
		key.WithKeys("enter", "p"),
		key.WithHelp("↵/p", "pin"),
	),
	KeyPinOrdinal: key.NewBinding(
		key.WithKeys("1", "2", "3", "4", "5", "6", "7", "8", "9"),
		key.WithHelp("1-9", "pin nth"),
	),
	KeyVolumeUp: key.NewBinding(
		key.WithKeys("+", "="),
		key.WithHelp("+", "louder"),
	),
	KeyVolumeDown: key.NewBinding(
		key.WithKeys("-"),
		key.WithHelp("-", "quieter"),
	),
	KeyCopy: key.NewBinding(
		key.WithKeys("y"),
		key.WithHelp("y", "copy layout"),
	),
	KeyHelp: key.NewBinding(
		key.WithKeys("?"),
		key.WithHelp("?", "help"),
	),
	KeyQuit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

// KeyMap adapts the global bindings to the bubbles help component.
type KeyMap struct{}

func (KeyMap) ShortHelp() []key.Binding {
	return bindings(KeyModeNext, KeyChat, KeyAdd, KeyPin, KeyHelp, KeyQuit)
}

func (KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		bindings(KeyUp, KeyDown, KeyScrollBack, KeyScrollForward),
		bindings(KeyModeNext, KeyModeSelect, KeyChat, KeyFilmstrip),
		bindings(KeyAdd, KeyRemove, KeyPromote, KeyPin, KeyPinOrdinal),
		bindings(KeyVolumeUp, KeyVolumeDown, KeyCopy, KeyHelp, KeyQuit),
	}
}

func bindings(names ...KeyName) []key.Binding {
	out := make([]key.Binding, 0, len(names))
	for _, n := range names {
		out = append(out, GlobalkeyBindings[n])
	}
	return out
}
