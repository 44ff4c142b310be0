package inspect

// Node represents a UI component in the inspection tree.
type Node struct {
	// Type is the component type (e.g., "Filmstrip", "Thumbnail", "Roster").
	Type string `json:"type"`

	// ID is an optional identifier for the component.
	ID string `json:"id,omitempty"`

	// Bounds contains the component position and size in cells.
	Bounds Bounds `json:"bounds"`

	// Pixels is the size the layout engine computed, before cell scaling.
	Pixels *Bounds `json:"pixels,omitempty"`

	// Visible indicates if the component is currently rendered.
	Visible bool `json:"visible"`

	// State contains component-specific state information.
	State map[string]interface{} `json:"state,omitempty"`

	// Children contains child components.
	Children []*Node `json:"children,omitempty"`

	// Content is the text content if applicable.
	Content string `json:"content,omitempty"`

	// Truncated contains truncation information if text was cut.
	Truncated *TruncationInfo `json:"truncated,omitempty"`
}

// Bounds represents component position and dimensions.
type Bounds struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

// TruncationInfo contains information about text truncation.
type TruncationInfo struct {
	// OriginalLength is the original text length before truncation.
	OriginalLength int `json:"original_length"`

	// DisplayLength is the displayed text length after truncation.
	DisplayLength int `json:"display_length"`

	// Ellipsis indicates if an ellipsis was added.
	Ellipsis bool `json:"ellipsis"`
}

// NewNode creates a new Node with the given type.
func NewNode(nodeType string) *Node {
	return &Node{
		Type:    nodeType,
		Visible: true,
		State:   make(map[string]interface{}),
	}
}

// WithID sets the node ID and returns the node for chaining.
func (n *Node) WithID(id string) *Node {
	n.ID = id
	return n
}

// WithBounds sets the node bounds and returns the node for chaining.
func (n *Node) WithBounds(x, y, width, height int) *Node {
	n.Bounds = Bounds{X: x, Y: y, Width: width, Height: height}
	return n
}

// WithPixels records the engine's pixel size for the node.
func (n *Node) WithPixels(width, height int) *Node {
	n.Pixels = &Bounds{Width: width, Height: height}
	return n
}

// WithState adds a state key-value pair and returns the node for chaining.
func (n *Node) WithState(key string, value interface{}) *Node {
	if n.State == nil {
		n.State = make(map[string]interface{})
	}
	n.State[key] = value
	return n
}

// Offset moves the node and all of its descendants by dx, dy cells.
func (n *Node) Offset(dx, dy int) *Node {
	n.Bounds.X += dx
	n.Bounds.Y += dy
	for _, c := range n.Children {
		c.Offset(dx, dy)
	}
	return n
}

// AddChild adds a child node and returns the parent for chaining.
func (n *Node) AddChild(child *Node) *Node {
	n.Children = append(n.Children, child)
	return n
}

// WithContent sets the node content and returns the node for chaining.
func (n *Node) WithContent(content string) *Node {
	n.Content = content
	return n
}

// WithTruncation sets truncation info and returns the node for chaining.
func (n *Node) WithTruncation(original, displayed int, hasEllipsis bool) *Node {
	n.Truncated = &TruncationInfo{
		OriginalLength: original,
		DisplayLength:  displayed,
		Ellipsis:       hasEllipsis,
	}
	return n
}

// Find returns the first node in the tree with the given type and id.
func (n *Node) Find(nodeType, id string) *Node {
	if n == nil {
		return nil
	}
	if n.Type == nodeType && n.ID == id {
		return n
	}
	for _, c := range n.Children {
		if found := c.Find(nodeType, id); found != nil {
			return found
		}
	}
	return nil
}
