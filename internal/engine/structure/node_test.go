package structure

import (
	"testing"

	"github.com/dshills/hexlist/internal/engine/addr"
)

func TestChildhoodEndAndExtent(t *testing.T) {
	child := NewBuilder().Name("child").SizeBytes(0x18).Build()
	ch := Childhood{Node: child, Offset: addr.FromBytes(0x32)}

	if ch.End().Byte() != 0x4a {
		t.Errorf("expected end 0x4a, got 0x%x", ch.End().Byte())
	}
	want := addr.Between(addr.FromBytes(0x32), addr.FromBytes(0x4a))
	if !ch.Extent().Equal(want) {
		t.Errorf("expected extent %v, got %v", want, ch.Extent())
	}
}

func TestShallowCopySharesChildren(t *testing.T) {
	root := NewBuilder().Name("root").SizeBytes(0x40).
		Child(addr.FromBytes(0x10), func(b *Builder) { b.Name("a").SizeBytes(0x08) }).
		Build()

	cp := root.ShallowCopy()
	if cp == root {
		t.Fatal("copy should be a distinct node")
	}
	if cp.Children[0].Node != root.Children[0].Node {
		t.Error("child nodes should be shared by pointer")
	}

	// Mutating the copy's children slice must not touch the original.
	cp.Children[0].Offset = addr.FromBytes(0x20)
	if root.Children[0].Offset.Byte() != 0x10 {
		t.Error("original childhood was modified through the copy")
	}
}

func TestTitleDisplayPolicy(t *testing.T) {
	if !TitleMajor.HasBlanks() {
		t.Error("major titles should have blanks")
	}
	if TitleMinor.HasBlanks() || TitleInline.HasBlanks() {
		t.Error("only major titles have blanks")
	}
	if !TitleInline.IsInline() {
		t.Error("inline titles should be inline")
	}
}

func TestPreferredPitch(t *testing.T) {
	if _, ok := Hexstring().PreferredPitch(); ok {
		t.Error("hexstring should have no pitch")
	}
	if _, ok := NoContent().PreferredPitch(); ok {
		t.Error("none should have no pitch")
	}
	pitch, ok := Hexdump(addr.Bytes(8)).PreferredPitch()
	if !ok || pitch.Compare(addr.Bytes(8)) != 0 {
		t.Errorf("expected pitch 8, got %v (ok=%v)", pitch, ok)
	}
}
