package overlay

import (
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/muesli/ansi"
	"github.com/muesli/reflow/truncate"
)

// PlaceOverlay draws fg on top of bg with its top left corner at (x, y), or
// centered when center is set. Styling in both strings is preserved.
func PlaceOverlay(x, y int, fg, bg string, center bool) string {
	fgLines, fgWidth := getLines(fg)
	bgLines, bgWidth := getLines(bg)
	fgHeight, bgHeight := len(fgLines), len(bgLines)

	if fgWidth >= bgWidth && fgHeight >= bgHeight {
		return fg
	}

	if center {
		x = (bgWidth - fgWidth) / 2
		y = (bgHeight - fgHeight) / 2
	}
	x = max(0, min(x, bgWidth-fgWidth))
	y = max(0, min(y, bgHeight-fgHeight))

	var b strings.Builder
	for i, bgLine := range bgLines {
		if i > 0 {
			b.WriteByte('\n')
		}
		if i < y || i >= y+fgHeight {
			b.WriteString(bgLine)
			continue
		}

		pos := 0
		if x > 0 {
			left := truncate.String(bgLine, uint(x))
			pos = ansi.PrintableRuneWidth(left)
			b.WriteString(left)
			if pos < x {
				b.WriteString(strings.Repeat(" ", x-pos))
				pos = x
			}
		}

		fgLine := fgLines[i-y]
		b.WriteString(fgLine)
		pos += ansi.PrintableRuneWidth(fgLine)

		right := cutLeft(bgLine, pos)
		bgLineWidth := ansi.PrintableRuneWidth(bgLine)
		rightWidth := ansi.PrintableRuneWidth(right)
		if rightWidth <= bgLineWidth-pos {
			b.WriteString(strings.Repeat(" ", bgLineWidth-rightWidth-pos))
		}
		b.WriteString(right)
	}
	return b.String()
}

// cutLeft drops the first cutWidth printable cells of s. Escape sequences
// are kept so styles that started in the cut part still apply.
func cutLeft(s string, cutWidth int) string {
	var (
		b      strings.Builder
		inAnsi bool
		width  int
	)
	for _, r := range s {
		if r == ansi.Marker {
			inAnsi = true
		}
		if inAnsi {
			b.WriteRune(r)
			if ansi.IsTerminator(r) {
				inAnsi = false
			}
			continue
		}
		if width >= cutWidth {
			b.WriteRune(r)
			continue
		}
		width += runewidth.RuneWidth(r)
		if width > cutWidth {
			// A wide rune straddled the cut.
			b.WriteString(strings.Repeat(" ", width-cutWidth))
		}
	}
	return b.String()
}

func getLines(s string) (lines []string, widest int) {
	lines = strings.Split(s, "\n")
	for _, l := range lines {
		if w := ansi.PrintableRuneWidth(l); w > widest {
			widest = w
		}
	}
	return lines, widest
}
