package document

import (
	"fmt"

	"github.com/dshills/hexlist/internal/engine/addr"
	"github.com/dshills/hexlist/internal/engine/structure"
)

// ChangeKind identifies one of the structural edit shapes.
type ChangeKind int

const (
	// KindAlterNode replaces one node's properties only.
	KindAlterNode ChangeKind = iota
	// KindInsertNode inserts a child at an index under a parent.
	KindInsertNode
	// KindNest wraps a contiguous run of siblings into one new parent.
	KindNest
	// KindDestructure splices a node's children up into its parent,
	// removing the node. Inverse of KindNest.
	KindDestructure
	// KindDeleteRange removes a contiguous run of siblings.
	KindDeleteRange
)

func (k ChangeKind) String() string {
	switch k {
	case KindAlterNode:
		return "alter"
	case KindInsertNode:
		return "insert"
	case KindNest:
		return "nest"
	case KindDestructure:
		return "destructure"
	case KindDeleteRange:
		return "delete"
	default:
		return "unknown"
	}
}

// Change fully describes one structural edit. Which fields are meaningful
// depends on Kind; use the constructors.
type Change struct {
	Kind ChangeKind

	// Path is the altered node (AlterNode) or the parent of the affected
	// children (all other kinds).
	Path structure.Path

	// Index is the insertion index (InsertNode) or the destructured
	// child's index (Destructure).
	Index int

	// First and Last bound the affected sibling range, inclusive
	// (Nest, DeleteRange).
	First int
	Last  int

	// Offset is the new child's offset (InsertNode) or the destructured
	// child's offset (Destructure).
	Offset addr.Address

	// Extent is the new parent's range within the old parent (Nest).
	Extent addr.Extent

	// Node is the inserted child (InsertNode).
	Node *structure.Node

	// Props are the new properties (AlterNode, Nest).
	Props structure.Properties

	// GrandchildCount records how many children the destructured node had
	// (Destructure); kept so the change carries enough to be inverted.
	GrandchildCount int
}

// AlterNode returns a change replacing the properties of the node at path.
func AlterNode(path structure.Path, props structure.Properties) Change {
	return Change{Kind: KindAlterNode, Path: path.Clone(), Props: props}
}

// InsertNode returns a change inserting node at the given child index and
// offset under the parent at path.
func InsertNode(path structure.Path, index int, offset addr.Address, node *structure.Node) Change {
	return Change{Kind: KindInsertNode, Path: path.Clone(), Index: index, Offset: offset, Node: node}
}

// Nest returns a change wrapping children [first, last] of the parent at
// path into a new node covering extent, with the given properties.
func Nest(path structure.Path, first, last int, extent addr.Extent, props structure.Properties) Change {
	return Change{Kind: KindNest, Path: path.Clone(), First: first, Last: last, Extent: extent, Props: props}
}

// Destructure returns a change splicing the children of the node at
// path+[index] up into the parent at path, removing the node.
func Destructure(path structure.Path, index, grandchildCount int, offset addr.Address) Change {
	return Change{Kind: KindDestructure, Path: path.Clone(), Index: index, GrandchildCount: grandchildCount, Offset: offset}
}

// DeleteRange returns a change removing children [first, last] of the
// parent at path.
func DeleteRange(path structure.Path, first, last int) Change {
	return Change{Kind: KindDeleteRange, Path: path.Clone(), First: first, Last: last}
}

func (c Change) String() string {
	return fmt.Sprintf("Change(%v at %v)", c.Kind, c.Path)
}

// Apply produces a new root implementing the change against the given
// root. Unaffected subtrees are shared with the input by pointer.
func (c Change) Apply(root *structure.Node) (*structure.Node, error) {
	switch c.Kind {
	case KindAlterNode:
		return rebuildAt(root, c.Path, func(n *structure.Node) error {
			n.Props = c.Props
			return nil
		})
	case KindInsertNode:
		return rebuildAt(root, c.Path, c.applyInsert)
	case KindNest:
		return rebuildAt(root, c.Path, c.applyNest)
	case KindDestructure:
		return rebuildAt(root, c.Path, c.applyDestructure)
	case KindDeleteRange:
		return rebuildAt(root, c.Path, c.applyDelete)
	default:
		return nil, fmt.Errorf("unknown change kind %d", c.Kind)
	}
}

// rebuildAt clones the spine from root down to the node at path and hands
// the (freshly cloned, safely mutable) target to edit.
func rebuildAt(root *structure.Node, path structure.Path, edit func(*structure.Node) error) (*structure.Node, error) {
	newRoot := root.ShallowCopy()
	n := newRoot
	for _, i := range path {
		if i < 0 || i >= len(n.Children) {
			return nil, fmt.Errorf("%w: %v", ErrPathNotFound, path)
		}
		child := n.Children[i].Node.ShallowCopy()
		n.Children[i].Node = child
		n = child
	}
	if err := edit(n); err != nil {
		return nil, err
	}
	return newRoot, nil
}

func (c Change) applyInsert(parent *structure.Node) error {
	if c.Index < 0 || c.Index > len(parent.Children) {
		return fmt.Errorf("%w: insert at %d of %d", ErrIndexOutOfRange, c.Index, len(parent.Children))
	}
	ext := addr.Sized(c.Offset, c.Node.Size)
	if !addr.Sized(addr.Address{}, parent.Size).ContainsExtent(ext) {
		return fmt.Errorf("%w: %v in parent of size %v", ErrChildOutOfBounds, ext, parent.Size)
	}
	if c.Index > 0 {
		prev := parent.Children[c.Index-1]
		if c.Offset.Before(prev.Offset) {
			return fmt.Errorf("%w: offset %v before previous sibling", ErrChildOrder, c.Offset)
		}
		if c.Offset.Before(prev.End()) && !ext.IsEmpty() && !prev.Extent().IsEmpty() {
			return fmt.Errorf("%w: %v overlaps previous sibling", ErrChildOverlap, ext)
		}
	}
	if c.Index < len(parent.Children) {
		next := parent.Children[c.Index]
		if next.Offset.Before(c.Offset) {
			return fmt.Errorf("%w: offset %v after next sibling", ErrChildOrder, c.Offset)
		}
		if next.Offset.Before(ext.End) && !ext.IsEmpty() && !next.Extent().IsEmpty() {
			return fmt.Errorf("%w: %v overlaps next sibling", ErrChildOverlap, ext)
		}
	}

	parent.Children = append(parent.Children, structure.Childhood{})
	copy(parent.Children[c.Index+1:], parent.Children[c.Index:])
	parent.Children[c.Index] = structure.Childhood{Node: c.Node, Offset: c.Offset}
	return nil
}

func (c Change) applyNest(parent *structure.Node) error {
	if err := checkRange(parent, c.First, c.Last); err != nil {
		return err
	}
	if !addr.Sized(addr.Address{}, parent.Size).ContainsExtent(c.Extent) {
		return fmt.Errorf("%w: nest extent %v", ErrChildOutOfBounds, c.Extent)
	}
	for i := c.First; i <= c.Last; i++ {
		if !c.Extent.ContainsExtent(parent.Children[i].Extent()) {
			return fmt.Errorf("%w: child %d outside nest extent %v", ErrChildOutOfBounds, i, c.Extent)
		}
	}

	nested := make([]structure.Childhood, c.Last-c.First+1)
	for i := range nested {
		ch := parent.Children[c.First+i]
		nested[i] = structure.Childhood{
			Node:   ch.Node,
			Offset: ch.Offset.Sub(c.Extent.Begin.AsSize()),
		}
	}
	nest := &structure.Node{
		Props:    c.Props,
		Size:     c.Extent.Size(),
		Children: nested,
	}

	parent.Children[c.First] = structure.Childhood{Node: nest, Offset: c.Extent.Begin}
	parent.Children = append(parent.Children[:c.First+1], parent.Children[c.Last+1:]...)
	return nil
}

func (c Change) applyDestructure(parent *structure.Node) error {
	if c.Index < 0 || c.Index >= len(parent.Children) {
		return fmt.Errorf("%w: destructure index %d of %d", ErrIndexOutOfRange, c.Index, len(parent.Children))
	}
	victim := parent.Children[c.Index]
	if len(victim.Node.Children) != c.GrandchildCount {
		return fmt.Errorf("%w: recorded %d, node has %d", ErrGrandchildCount, c.GrandchildCount, len(victim.Node.Children))
	}

	spliced := make([]structure.Childhood, len(victim.Node.Children))
	for i, gc := range victim.Node.Children {
		spliced[i] = structure.Childhood{
			Node:   gc.Node,
			Offset: victim.Offset.Add(gc.Offset.AsSize()),
		}
	}

	out := make([]structure.Childhood, 0, len(parent.Children)-1+len(spliced))
	out = append(out, parent.Children[:c.Index]...)
	out = append(out, spliced...)
	out = append(out, parent.Children[c.Index+1:]...)
	parent.Children = out
	return nil
}

func (c Change) applyDelete(parent *structure.Node) error {
	if err := checkRange(parent, c.First, c.Last); err != nil {
		return err
	}
	parent.Children = append(parent.Children[:c.First], parent.Children[c.Last+1:]...)
	return nil
}

func checkRange(parent *structure.Node, first, last int) error {
	if first > last {
		return fmt.Errorf("%w: [%d, %d]", ErrInvalidRange, first, last)
	}
	if first < 0 || last >= len(parent.Children) {
		return fmt.Errorf("%w: [%d, %d] of %d", ErrIndexOutOfRange, first, last, len(parent.Children))
	}
	return nil
}
