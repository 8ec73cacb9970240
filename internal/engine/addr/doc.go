// Package addr provides bit-precise addressing over a byte-addressed space.
//
// An Address is a byte offset plus a sub-byte bit offset; a Size is a
// non-negative byte+bit magnitude; an Extent is a half-open address range.
// All three are small immutable value types, cheap to copy and safe to
// share. Internally everything is stored as a bit count, which keeps the
// carry/borrow arithmetic in one place.
package addr
