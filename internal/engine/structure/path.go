package structure

import "fmt"

// Path identifies a node as the sequence of child indices from the root.
// It is valid across document versions that have not rearranged the nodes
// it traverses.
type Path []int

// Equal reports whether two paths identify the same position.
func (p Path) Equal(other Path) bool {
	if len(p) != len(other) {
		return false
	}
	for i := range p {
		if p[i] != other[i] {
			return false
		}
	}
	return true
}

// Clone returns an independent copy of the path.
func (p Path) Clone() Path {
	if len(p) == 0 {
		return nil
	}
	out := make(Path, len(p))
	copy(out, p)
	return out
}

// Append returns a new path extended by one index, never sharing backing
// storage with p.
func (p Path) Append(index int) Path {
	out := make(Path, len(p)+1)
	copy(out, p)
	out[len(p)] = index
	return out
}

func (p Path) String() string {
	return fmt.Sprintf("%v", []int(p))
}

// NodeAt resolves the path from root. It panics on an out-of-range index:
// a dangling path is a collaborator bug, not a runtime condition.
func NodeAt(root *Node, p Path) *Node {
	n := root
	for _, i := range p {
		if i < 0 || i >= len(n.Children) {
			panic(fmt.Sprintf("structure: path %v does not exist under %q", p, root.Props.Name))
		}
		n = n.Children[i].Node
	}
	return n
}
