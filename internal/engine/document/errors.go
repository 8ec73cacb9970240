package document

import "errors"

// Errors returned by change application.
var (
	// ErrPathNotFound indicates a change path does not resolve in the tree.
	ErrPathNotFound = errors.New("path not found")

	// ErrIndexOutOfRange indicates a child index outside the valid range.
	ErrIndexOutOfRange = errors.New("child index out of range")

	// ErrInvalidRange indicates a sibling range with last < first.
	ErrInvalidRange = errors.New("invalid sibling range")

	// ErrChildOverlap indicates a child extent overlapping a sibling.
	ErrChildOverlap = errors.New("child extents overlap")

	// ErrChildOutOfBounds indicates a child extent outside its parent.
	ErrChildOutOfBounds = errors.New("child extent outside parent")

	// ErrChildOrder indicates an insertion that would break offset order.
	ErrChildOrder = errors.New("children must stay in offset order")

	// ErrGrandchildCount indicates a destructure whose recorded grandchild
	// count does not match the node being destructured.
	ErrGrandchildCount = errors.New("grandchild count mismatch")
)
