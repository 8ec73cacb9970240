package structure

import (
	"testing"

	"github.com/dshills/hexlist/internal/engine/addr"
)

func testTree() *Node {
	return NewBuilder().Name("root").SizeBytes(0x100).
		Child(addr.FromBytes(0x00), func(b *Builder) {
			b.Name("a").SizeBytes(0x40).
				Child(addr.FromBytes(0x10), func(b *Builder) { b.Name("a0").SizeBytes(0x08) })
		}).
		Child(addr.FromBytes(0x40), func(b *Builder) { b.Name("b").SizeBytes(0x20) }).
		Build()
}

func TestNodeAt(t *testing.T) {
	root := testTree()

	cases := []struct {
		path Path
		name string
	}{
		{nil, "root"},
		{Path{0}, "a"},
		{Path{0, 0}, "a0"},
		{Path{1}, "b"},
	}
	for _, tc := range cases {
		if got := NodeAt(root, tc.path); got.Props.Name != tc.name {
			t.Errorf("NodeAt(%v) = %q, want %q", tc.path, got.Props.Name, tc.name)
		}
	}
}

func TestNodeAtDanglingPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic for dangling path")
		}
	}()
	NodeAt(testTree(), Path{5})
}

func TestPathEqualAndAppend(t *testing.T) {
	p := Path{0, 1}
	if !p.Equal(Path{0, 1}) {
		t.Error("equal paths should compare equal")
	}
	if p.Equal(Path{0}) || p.Equal(Path{0, 2}) {
		t.Error("unequal paths should not compare equal")
	}

	q := p.Append(3)
	if !q.Equal(Path{0, 1, 3}) {
		t.Errorf("expected [0 1 3], got %v", q)
	}
	if !p.Equal(Path{0, 1}) {
		t.Error("Append must not modify the receiver")
	}
}
