package structure

import "github.com/dshills/hexlist/internal/engine/addr"

// Builder constructs structure trees fluently. It is mostly useful for
// tests and for inflating declarative structure descriptions.
type Builder struct {
	node Node
}

// NewBuilder returns a builder with default properties and zero size.
func NewBuilder() *Builder {
	return &Builder{node: Node{Props: DefaultProperties("default")}}
}

// Name sets the node name.
func (b *Builder) Name(name string) *Builder {
	b.node.Props.Name = name
	return b
}

// Props replaces the whole property set.
func (b *Builder) Props(props Properties) *Builder {
	b.node.Props = props
	return b
}

// Title sets the title display policy.
func (b *Builder) Title(t TitleDisplay) *Builder {
	b.node.Props.Title = t
	return b
}

// ChildrenDisplay sets the children display policy.
func (b *Builder) ChildrenDisplay(c ChildrenDisplay) *Builder {
	b.node.Props.Children = c
	return b
}

// Content sets the content display policy.
func (b *Builder) Content(c ContentDisplay) *Builder {
	b.node.Props.Content = c
	return b
}

// Size sets the node's own extent.
func (b *Builder) Size(s addr.Size) *Builder {
	b.node.Size = s
	return b
}

// SizeBytes sets the node's extent to a whole number of bytes.
func (b *Builder) SizeBytes(n uint64) *Builder {
	b.node.Size = addr.Bytes(n)
	return b
}

// Child appends a child built by fn at the given offset. Children must be
// appended in non-decreasing offset order.
func (b *Builder) Child(offset addr.Address, fn func(*Builder)) *Builder {
	cb := NewBuilder()
	fn(cb)
	b.node.Children = append(b.node.Children, Childhood{
		Node:   cb.Build(),
		Offset: offset,
	})
	return b
}

// ChildNode appends an already-built child node at the given offset.
func (b *Builder) ChildNode(offset addr.Address, n *Node) *Builder {
	b.node.Children = append(b.node.Children, Childhood{Node: n, Offset: offset})
	return b
}

// Build returns the finished node. The builder may be reused; Build copies.
func (b *Builder) Build() *Node {
	return b.node.ShallowCopy()
}
