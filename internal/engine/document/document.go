package document

import (
	"fmt"
	"sync/atomic"

	"github.com/google/uuid"

	"github.com/dshills/hexlist/internal/engine/structure"
)

// generationCounter issues monotonically increasing snapshot generations.
var generationCounter uint64

// Document is one immutable snapshot of the structure tree, linked
// backward to the snapshot it was derived from.
type Document struct {
	// Root is the snapshot's structure tree.
	Root *structure.Node

	// Previous is the snapshot this one was derived from, or nil for an
	// initial document.
	Previous *Document

	// Change is the edit that produced this snapshot from Previous; nil
	// iff Previous is nil.
	Change *Change

	id         uuid.UUID
	generation uint64
}

// New returns an initial document for the given root.
func New(root *structure.Node) *Document {
	return &Document{
		Root:       root,
		id:         uuid.New(),
		generation: atomic.AddUint64(&generationCounter, 1),
	}
}

// ID returns the snapshot's identity, for logs and diagnostics.
func (d *Document) ID() uuid.UUID {
	return d.id
}

// Generation returns the snapshot's monotonic generation number.
func (d *Document) Generation() uint64 {
	return d.generation
}

// IsOutdated reports whether d is a strict ancestor of other: other was
// derived from d through one or more changes.
func (d *Document) IsOutdated(other *Document) bool {
	for p := other; p != nil; p = p.Previous {
		if p == d {
			return p != other
		}
	}
	return false
}

// Apply produces the successor snapshot implementing the change.
func (d *Document) Apply(c Change) (*Document, error) {
	newRoot, err := c.Apply(d.Root)
	if err != nil {
		return nil, fmt.Errorf("applying %v: %w", c, err)
	}
	return &Document{
		Root:       newRoot,
		Previous:   d,
		Change:     &c,
		id:         uuid.New(),
		generation: atomic.AddUint64(&generationCounter, 1),
	}, nil
}

// MustApply is Apply for edits known to be valid; it panics on error.
// Mostly useful in tests.
func (d *Document) MustApply(c Change) *Document {
	nd, err := d.Apply(c)
	if err != nil {
		panic(err)
	}
	return nd
}
