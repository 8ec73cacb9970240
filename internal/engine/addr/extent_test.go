package addr

import "testing"

func TestExtentContains(t *testing.T) {
	e := Between(FromBytes(0x10), FromBytes(0x20))

	if !e.Contains(FromBytes(0x10)) {
		t.Error("begin should be contained")
	}
	if e.Contains(FromBytes(0x20)) {
		t.Error("end should not be contained (half-open)")
	}
	if !e.Contains(New(0x1f, 7)) {
		t.Error("last bit before end should be contained")
	}
	if e.Contains(FromBytes(0x0f)) {
		t.Error("address before begin should not be contained")
	}
}

func TestExtentSized(t *testing.T) {
	e := Sized(FromBytes(0x32), Bytes(0x18))
	if e.End.Byte() != 0x4a {
		t.Errorf("expected end 0x4a, got 0x%x", e.End.Byte())
	}
	if e.Size().Compare(Bytes(0x18)) != 0 {
		t.Errorf("expected size 0x18, got %v", e.Size())
	}
}

func TestExtentIntersect(t *testing.T) {
	a := Between(FromBytes(0x00), FromBytes(0x20))
	b := Between(FromBytes(0x10), FromBytes(0x30))

	got, ok := a.Intersect(b)
	if !ok {
		t.Fatal("extents should intersect")
	}
	want := Between(FromBytes(0x10), FromBytes(0x20))
	if !got.Equal(want) {
		t.Errorf("expected %v, got %v", want, got)
	}

	c := Between(FromBytes(0x20), FromBytes(0x30))
	if _, ok := a.Intersect(c); ok {
		t.Error("touching extents should not intersect")
	}
}

func TestExtentInvertedPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic for inverted extent")
		}
	}()
	Between(FromBytes(2), FromBytes(1))
}
