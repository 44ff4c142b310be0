package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"
)

var errStyle = lipgloss.NewStyle().Foreground(Error)

var noticeStyle = lipgloss.NewStyle().Foreground(TextSecondary)

// ErrBox is the one-line message area under the menu.
type ErrBox struct {
	height, width int
	err           error
	notice        string
}

func NewErrBox() *ErrBox {
	return &ErrBox{}
}

func (e *ErrBox) SetError(err error) {
	e.err = err
	e.notice = ""
}

// SetNotice shows an informational message instead of an error.
func (e *ErrBox) SetNotice(msg string) {
	e.notice = msg
	e.err = nil
}

func (e *ErrBox) Clear() {
	e.err = nil
	e.notice = ""
}

// Message returns the text currently shown, if any.
func (e *ErrBox) Message() string {
	if e.err != nil {
		return e.err.Error()
	}
	return e.notice
}

func (e *ErrBox) SetSize(width, height int) {
	e.width = width
	e.height = height
}

func (e *ErrBox) String() string {
	var msg string
	style := noticeStyle
	switch {
	case e.err != nil:
		msg = strings.ReplaceAll(e.err.Error(), "\n", "//")
		style = errStyle
	case e.notice != "":
		msg = e.notice
	}
	if e.width > 0 && lipgloss.Width(msg) > e.width {
		msg = truncate.StringWithTail(msg, uint(e.width), "...")
	}
	return lipgloss.Place(e.width, e.height, lipgloss.Center, lipgloss.Top, style.Render(msg))
}
