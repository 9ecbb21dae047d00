package calendar

import (
	"slices"
	"strings"
)

// Container is the mount point a View renders into.
type Container interface {
	Clear()
	Append(children ...*Node)
}

// Attr is one ordered markup attribute.
type Attr struct {
	Name  string
	Value string
}

// StyleProp is one ordered inline style declaration.
type StyleProp struct {
	Property string
	Value    string
}

// Node is an element in the retained tree a View builds on every render.
type Node struct {
	Tag      string
	classes  []string
	attrs    []Attr
	styles   []StyleProp
	text     string
	children []*Node
	onClick  func()
}

// NewNode constructs an element with the given tag and classes.
func NewNode(tag string, classes ...string) *Node {
	n := &Node{Tag: tag}
	n.AddClass(classes...)
	return n
}

// AddClass appends classes that are not already present.
func (n *Node) AddClass(classes ...string) *Node {
	for _, class := range classes {
		class = strings.TrimSpace(class)
		if class == "" || slices.Contains(n.classes, class) {
			continue
		}
		n.classes = append(n.classes, class)
	}
	return n
}

// HasClass reports whether class is set on the node.
func (n *Node) HasClass(class string) bool {
	return slices.Contains(n.classes, class)
}

// Classes returns a copy of the class list.
func (n *Node) Classes() []string {
	return slices.Clone(n.classes)
}

// SetAttr sets an attribute verbatim, replacing an existing one with the same name.
func (n *Node) SetAttr(name, value string) *Node {
	for i := range n.attrs {
		if n.attrs[i].Name == name {
			n.attrs[i].Value = value
			return n
		}
	}
	n.attrs = append(n.attrs, Attr{Name: name, Value: value})
	return n
}

// Attr returns one attribute value.
func (n *Node) Attr(name string) (string, bool) {
	for _, attr := range n.attrs {
		if attr.Name == name {
			return attr.Value, true
		}
	}
	return "", false
}

// Attrs returns a copy of the ordered attribute list.
func (n *Node) Attrs() []Attr {
	return slices.Clone(n.attrs)
}

// SetStyle sets one inline style property.
func (n *Node) SetStyle(property, value string) *Node {
	for i := range n.styles {
		if n.styles[i].Property == property {
			n.styles[i].Value = value
			return n
		}
	}
	n.styles = append(n.styles, StyleProp{Property: property, Value: value})
	return n
}

// Style returns one inline style value.
func (n *Node) Style(property string) (string, bool) {
	for _, style := range n.styles {
		if style.Property == property {
			return style.Value, true
		}
	}
	return "", false
}

// Styles returns a copy of the ordered style declarations.
func (n *Node) Styles() []StyleProp {
	return slices.Clone(n.styles)
}

// SetText replaces the node's own text.
func (n *Node) SetText(text string) *Node {
	n.text = text
	return n
}

// Text returns the node's own text, excluding children.
func (n *Node) Text() string {
	return n.text
}

// TextContent concatenates the node's text with all descendant text.
func (n *Node) TextContent() string {
	var b strings.Builder
	n.Walk(func(node *Node) bool {
		b.WriteString(node.text)
		return true
	})
	return b.String()
}

// Append adds children in order; nil children are skipped.
func (n *Node) Append(children ...*Node) {
	for _, child := range children {
		if child != nil {
			n.children = append(n.children, child)
		}
	}
}

// Clear detaches all children.
func (n *Node) Clear() {
	n.children = nil
}

// Children returns a copy of the child list.
func (n *Node) Children() []*Node {
	return slices.Clone(n.children)
}

// OnClick registers the node's click handler.
func (n *Node) OnClick(fn func()) *Node {
	n.onClick = fn
	return n
}

// Clickable reports whether the node has a click handler.
func (n *Node) Clickable() bool {
	return n != nil && n.onClick != nil
}

// Click dispatches the click handler and reports whether one ran.
func (n *Node) Click() bool {
	if !n.Clickable() {
		return false
	}
	n.onClick()
	return true
}

// Walk visits the node and its descendants in document order.
// Returning false from visit skips that node's children.
func (n *Node) Walk(visit func(*Node) bool) {
	if n == nil {
		return
	}
	if !visit(n) {
		return
	}
	for _, child := range n.children {
		child.Walk(visit)
	}
}

// FindAll returns descendants (including n) carrying class, in document order.
func (n *Node) FindAll(class string) []*Node {
	out := make([]*Node, 0)
	n.Walk(func(node *Node) bool {
		if node.HasClass(class) {
			out = append(out, node)
		}
		return true
	})
	return out
}

// Find returns the first node carrying class.
func (n *Node) Find(class string) (*Node, bool) {
	found := n.FindAll(class)
	if len(found) == 0 {
		return nil, false
	}
	return found[0], true
}
