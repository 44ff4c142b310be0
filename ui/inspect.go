package ui

import (
	"callstrip/inspect"
	"callstrip/layout"

	"github.com/mattn/go-runewidth"
)

var (
	_ inspect.Introspectable = (*FilmstripView)(nil)
	_ inspect.Introspectable = (*List)(nil)
)

// InspectNode reports every thumbnail drawn by the last render.
func (f *FilmstripView) InspectNode() *inspect.Node {
	n := inspect.NewNode("Filmstrip").WithBounds(0, 0, f.width, f.height)
	for _, r := range f.hits {
		child := inspect.NewNode("Thumbnail").
			WithID(r.ID).
			WithBounds(r.X, r.Y, r.Width, r.Height)
		if r.ID == "" {
			child.Type = "LocalThumbnail"
		}
		if l, ok := f.labels[r.ID]; ok {
			child.WithContent(l.text)
			if l.truncated {
				child.WithTruncation(runewidth.StringWidth(l.text), l.width, true)
			}
		}
		n.AddChild(child)
	}
	return n
}

// InspectNodeWithPixels is InspectNode annotated with the engine's pixel
// sizes for the remote and local thumbnails.
func (f *FilmstripView) InspectNodeWithPixels(remote, local layout.Size) *inspect.Node {
	n := f.InspectNode()
	for _, c := range n.Children {
		if c.Type == "LocalThumbnail" {
			c.WithPixels(local.Width, local.Height)
		} else {
			c.WithPixels(remote.Width, remote.Height)
		}
	}
	return n
}

// InspectNode reports the roster rows.
func (l *List) InspectNode() *inspect.Node {
	n := inspect.NewNode("Roster").
		WithBounds(0, 0, l.width, l.height).
		WithState("selected_index", l.selectedIdx)
	for i, e := range l.items {
		n.AddChild(inspect.NewNode("Participant").
			WithID(e.Participant.ID).
			WithContent(e.Participant.Name).
			WithState("index", i).
			WithState("pinned", e.Pinned).
			WithState("visible", e.Visible))
	}
	return n
}
