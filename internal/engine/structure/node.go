package structure

import "github.com/dshills/hexlist/internal/engine/addr"

// TitleDisplay controls whether a node gets a standalone title line and
// surrounding blank lines.
type TitleDisplay int

const (
	// TitleInline renders the title on the same line as the first content.
	TitleInline TitleDisplay = iota
	// TitleMajor renders a standalone title line with blank lines around
	// the node.
	TitleMajor
	// TitleMinor renders a standalone title line without blank lines.
	TitleMinor
)

// HasBlanks reports whether blank lines are emitted before and after the
// node.
func (t TitleDisplay) HasBlanks() bool {
	return t == TitleMajor
}

// IsInline reports whether the title shares a line with content.
func (t TitleDisplay) IsInline() bool {
	return t == TitleInline
}

func (t TitleDisplay) String() string {
	switch t {
	case TitleInline:
		return "inline"
	case TitleMajor:
		return "major"
	case TitleMinor:
		return "minor"
	default:
		return "unknown"
	}
}

// ChildrenDisplay controls how a node's children are rendered.
type ChildrenDisplay int

const (
	// ChildrenNone suppresses children entirely (fully collapsed).
	ChildrenNone ChildrenDisplay = iota
	// ChildrenSummary renders children as an inline bracketed summary.
	ChildrenSummary
	// ChildrenFull renders children nested under the node.
	ChildrenFull
)

func (c ChildrenDisplay) String() string {
	switch c {
	case ChildrenNone:
		return "none"
	case ChildrenSummary:
		return "summary"
	case ChildrenFull:
		return "full"
	default:
		return "unknown"
	}
}

// ContentMode selects how a node's own bytes are rendered.
type ContentMode int

const (
	// ContentNone suppresses the node's own bytes.
	ContentNone ContentMode = iota
	// ContentHexdump renders bytes as hexdump lines wrapped at Pitch.
	ContentHexdump
	// ContentHexstring renders bytes as one contiguous hex string.
	ContentHexstring
)

// ContentDisplay pairs a content mode with the preferred line pitch for
// hexdump rendering. Pitch is meaningful only when Mode is ContentHexdump.
type ContentDisplay struct {
	Mode  ContentMode
	Pitch addr.Size
}

// Hexdump returns a hexdump content display with the given line pitch.
func Hexdump(pitch addr.Size) ContentDisplay {
	return ContentDisplay{Mode: ContentHexdump, Pitch: pitch}
}

// Hexstring returns a hexstring content display.
func Hexstring() ContentDisplay {
	return ContentDisplay{Mode: ContentHexstring}
}

// NoContent returns a content display that suppresses the node's bytes.
func NoContent() ContentDisplay {
	return ContentDisplay{Mode: ContentNone}
}

// DefaultContent is a 16-byte-pitch hexdump.
func DefaultContent() ContentDisplay {
	return Hexdump(addr.Bytes(16))
}

// PreferredPitch returns the preferred line-wrap granularity, if any.
func (c ContentDisplay) PreferredPitch() (addr.Size, bool) {
	if c.Mode == ContentHexdump {
		return c.Pitch, true
	}
	return addr.Size{}, false
}

// Properties are the display attributes of a node. They are kept separate
// from the node's shape so that a property-only edit never rearranges
// children, which keeps cursor paths stable across such edits.
type Properties struct {
	Name     string
	Title    TitleDisplay
	Children ChildrenDisplay
	Content  ContentDisplay
	Locked   bool
}

// DefaultProperties returns the property set fixtures and builders start
// from: major title, full children, 16-byte hexdump.
func DefaultProperties(name string) Properties {
	return Properties{
		Name:     name,
		Title:    TitleMajor,
		Children: ChildrenFull,
		Content:  DefaultContent(),
		Locked:   true,
	}
}

// Childhood pairs a child node with its offset within the parent. The
// child's addressing is relative; its absolute address is the sum of the
// ancestor offsets above it.
type Childhood struct {
	Node   *Node
	Offset addr.Address
}

// End returns the address one past the child's last byte, relative to the
// parent.
func (c Childhood) End() addr.Address {
	return c.Offset.Add(c.Node.Size)
}

// Extent returns the child's range relative to the parent.
func (c Childhood) Extent() addr.Extent {
	return addr.Sized(c.Offset, c.Node.Size)
}

// Node is one labeled region in the structure tree.
//
// Nodes hold no parent reference; positions in the tree are identified by
// Path instead. A Node must not be modified after it becomes reachable
// from a Document.
type Node struct {
	Props    Properties
	Size     addr.Size
	Children []Childhood // non-decreasing by Offset, non-overlapping
}

// ShallowCopy returns a copy of the node whose children slice is freshly
// allocated but still shares the child nodes themselves. This is the unit
// step of persistent edits: rebuild the spine, share the rest.
func (n *Node) ShallowCopy() *Node {
	nn := &Node{
		Props: n.Props,
		Size:  n.Size,
	}
	if len(n.Children) > 0 {
		nn.Children = make([]Childhood, len(n.Children))
		copy(nn.Children, n.Children)
	}
	return nn
}
