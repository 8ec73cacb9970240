// Package token defines the renderable units pulled from a tokenizer.
// Tokens are produced on demand and discarded once consumed; nothing
// stores them.
package token

import (
	"fmt"

	"github.com/dshills/hexlist/internal/engine/addr"
	"github.com/dshills/hexlist/internal/engine/structure"
)

// Class identifies what a token renders.
type Class int

const (
	// ClassPunctuation is structural punctuation; see Punctuation.
	ClassPunctuation Class = iota
	// ClassTitle is a node's title.
	ClassTitle
	// ClassSummaryLabel is a child's label inside a summary.
	ClassSummaryLabel
	// ClassHexdump is one hexdump line covering Extent of the node's bytes.
	ClassHexdump
	// ClassHexstring is a contiguous hex string covering Extent.
	ClassHexstring
)

func (c Class) String() string {
	switch c {
	case ClassPunctuation:
		return "punctuation"
	case ClassTitle:
		return "title"
	case ClassSummaryLabel:
		return "summlabel"
	case ClassHexdump:
		return "hexdump"
	case ClassHexstring:
		return "hexstring"
	default:
		return "unknown"
	}
}

// Punctuation distinguishes punctuation tokens.
type Punctuation int

const (
	// PunctEmpty renders nothing; with Newline set it is a blank line.
	PunctEmpty Punctuation = iota
	// PunctSpace is a single space.
	PunctSpace
	// PunctComma separates summary entries.
	PunctComma
	// PunctOpenBracket opens a summary.
	PunctOpenBracket
	// PunctCloseBracket closes a summary.
	PunctCloseBracket
)

func (p Punctuation) String() string {
	switch p {
	case PunctEmpty:
		return ""
	case PunctSpace:
		return " "
	case PunctComma:
		return ","
	case PunctOpenBracket:
		return "{"
	case PunctCloseBracket:
		return "}"
	default:
		return "?"
	}
}

// Token is one renderable unit of the listing stream.
type Token struct {
	Class Class
	// Punct is meaningful when Class is ClassPunctuation.
	Punct Punctuation
	// Extent is the covered byte range, relative to the owning node;
	// meaningful for ClassHexdump and ClassHexstring.
	Extent addr.Extent
	// Node owns the token. Shared reference, never nil.
	Node *structure.Node
	// NodeAddr is the absolute address of the owning node's start.
	NodeAddr addr.Address
	// Depth is the nesting level, for indentation.
	Depth int
	// Newline reports whether this token starts a new visual line.
	Newline bool
}

// Equal reports whether two tokens are the same token: same class and
// payload, same owning node (by identity), same placement.
func (t Token) Equal(other Token) bool {
	return t.Class == other.Class &&
		t.Punct == other.Punct &&
		t.Extent.Equal(other.Extent) &&
		t.Node == other.Node &&
		t.NodeAddr.Compare(other.NodeAddr) == 0 &&
		t.Depth == other.Depth &&
		t.Newline == other.Newline
}

func (t Token) String() string {
	name := "<nil>"
	if t.Node != nil {
		name = t.Node.Props.Name
	}
	switch t.Class {
	case ClassHexdump, ClassHexstring:
		return fmt.Sprintf("%v(%v, node=%s, addr=%v, depth=%d, nl=%v)",
			t.Class, t.Extent, name, t.NodeAddr, t.Depth, t.Newline)
	case ClassPunctuation:
		return fmt.Sprintf("punctuation(%q, node=%s, addr=%v, depth=%d, nl=%v)",
			t.Punct.String(), name, t.NodeAddr, t.Depth, t.Newline)
	default:
		return fmt.Sprintf("%v(node=%s, addr=%v, depth=%d, nl=%v)",
			t.Class, name, t.NodeAddr, t.Depth, t.Newline)
	}
}
