package addr

import "fmt"

// Extent is a half-open address range [Begin, End).
type Extent struct {
	Begin Address
	End   Address
}

// Between returns the extent spanning [begin, end). It panics when
// end < begin.
func Between(begin, end Address) Extent {
	if end.Before(begin) {
		panic(fmt.Sprintf("addr: inverted extent [%v, %v)", begin, end))
	}
	return Extent{Begin: begin, End: end}
}

// Sized returns the extent beginning at begin and spanning size.
func Sized(begin Address, size Size) Extent {
	return Extent{Begin: begin, End: begin.Add(size)}
}

// Size returns the length of the extent.
func (e Extent) Size() Size {
	return e.End.Diff(e.Begin)
}

// IsEmpty reports whether the extent covers no addresses.
func (e Extent) IsEmpty() bool {
	return e.Begin.Compare(e.End) == 0
}

// Contains reports whether a lies within the extent.
func (e Extent) Contains(a Address) bool {
	return !a.Before(e.Begin) && a.Before(e.End)
}

// ContainsExtent reports whether other lies entirely within e.
// Empty extents are contained at any position inside e.
func (e Extent) ContainsExtent(other Extent) bool {
	return !other.Begin.Before(e.Begin) && !e.End.Before(other.End)
}

// Intersect returns the overlap of the two extents. ok is false when they
// do not overlap.
func (e Extent) Intersect(other Extent) (Extent, bool) {
	begin := e.Begin
	if other.Begin.After(begin) {
		begin = other.Begin
	}
	end := e.End
	if other.End.Before(end) {
		end = other.End
	}
	if !begin.Before(end) {
		return Extent{}, false
	}
	return Extent{Begin: begin, End: end}, true
}

// Equal reports whether the two extents cover the same range.
func (e Extent) Equal(other Extent) bool {
	return e.Begin.Compare(other.Begin) == 0 && e.End.Compare(other.End) == 0
}

// String formats the extent as "[begin, end)".
func (e Extent) String() string {
	return fmt.Sprintf("[%v, %v)", e.Begin, e.End)
}
