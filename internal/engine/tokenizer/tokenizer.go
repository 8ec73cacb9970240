package tokenizer

import (
	"fmt"
	"strings"

	"github.com/dshills/hexlist/internal/engine/addr"
	"github.com/dshills/hexlist/internal/engine/structure"
	"github.com/dshills/hexlist/internal/engine/token"
)

// Tokenizer is one position in the token stream derived by recursively
// expanding a structure tree.
//
// Invariant: stack always holds the full path of frames back to the root
// node, root first.
type Tokenizer struct {
	stack    []frame
	state    state
	depth    int
	node     *structure.Node
	nodeAddr addr.Address
}

// genResult classifies the outcome of generating a token at the current
// position.
type genResult int

const (
	// genOK carries a concrete token.
	genOK genResult = iota
	// genSkip marks a position with no visible token; keep stepping.
	genSkip
	// genBoundary is reserved for signaling a hard stream boundary (for
	// example a window limit imposed by a future consumer). Nothing
	// produces it today.
	genBoundary
)

type ascendDirection int

const (
	ascendPrev ascendDirection = iota
	ascendNext
)

// AtBeginning returns a tokenizer at the very start of the token stream
// for the given root.
func AtBeginning(root *structure.Node) *Tokenizer {
	return &Tokenizer{
		state: simpleState(statePreBlank),
		node:  root,
	}
}

// AtEnd returns a tokenizer at the very end of the token stream for the
// given root.
func AtEnd(root *structure.Node) *Tokenizer {
	return &Tokenizer{
		state: simpleState(stateEnd),
		node:  root,
	}
}

// Clone returns an independent cursor at the same position.
func (t *Tokenizer) Clone() *Tokenizer {
	nt := *t
	if len(t.stack) > 0 {
		nt.stack = make([]frame, len(t.stack))
		copy(nt.stack, t.stack)
	}
	return &nt
}

// Equal reports whether two tokenizers denote the same stream position.
func (t *Tokenizer) Equal(other *Tokenizer) bool {
	if !t.state.equal(other.state) || t.depth != other.depth ||
		t.node != other.node || t.nodeAddr.Compare(other.nodeAddr) != 0 ||
		len(t.stack) != len(other.stack) {
		return false
	}
	for i := range t.stack {
		if !t.stack[i].equal(other.stack[i]) {
			return false
		}
	}
	return true
}

// genToken generates the token at the current position, without moving.
// It is pure against (node, state).
func (t *Tokenizer) genToken() (token.Token, genResult) {
	switch t.state.kind {
	case statePreBlank, statePostBlank:
		if !t.node.Props.Title.HasBlanks() {
			return token.Token{}, genSkip
		}
		return token.Token{
			Class:    token.ClassPunctuation,
			Punct:    token.PunctEmpty,
			Node:     t.node,
			NodeAddr: t.nodeAddr,
			Depth:    t.depth,
			Newline:  true,
		}, genOK

	case stateTitle:
		return token.Token{
			Class:    token.ClassTitle,
			Node:     t.node,
			NodeAddr: t.nodeAddr,
			Depth:    t.depth,
			Newline:  !t.node.Props.Title.IsInline(),
		}, genOK

	case stateMetaContent:
		return token.Token{}, genSkip

	case stateHexdump:
		return token.Token{
			Class:    token.ClassHexdump,
			Extent:   t.state.extent,
			Node:     t.node,
			NodeAddr: t.nodeAddr,
			Depth:    t.depth + 1,
			Newline:  true,
		}, genOK

	case stateHexstring:
		return token.Token{
			Class:    token.ClassHexstring,
			Extent:   t.state.extent,
			Node:     t.node,
			NodeAddr: t.nodeAddr,
			Depth:    t.depth + 1,
			Newline:  true,
		}, genOK

	case stateSummaryOpener:
		return t.punct(token.PunctOpenBracket, false), genOK

	case stateSummaryLabel:
		ch := t.node.Children[t.state.index]
		return token.Token{
			Class:    token.ClassSummaryLabel,
			Node:     ch.Node,
			NodeAddr: t.nodeAddr.Add(ch.Offset.AsSize()),
			Depth:    t.depth,
			Newline:  false,
		}, genOK

	case stateSummarySeparator:
		// The separator after the last child is suppressed.
		if t.state.index+1 >= len(t.node.Children) {
			return token.Token{}, genSkip
		}
		return t.punct(token.PunctComma, false), genOK

	case stateSummaryCloser:
		return t.punct(token.PunctCloseBracket, false), genOK

	case stateSummaryNewline:
		return t.punct(token.PunctEmpty, true), genOK

	case stateSummaryValueBegin, stateSummaryValueEnd:
		return token.Token{}, genSkip

	case stateSummaryLeaf:
		limit := addr.Bytes(16).Min(t.node.Size)
		extent := addr.Sized(addr.Address{}, limit)
		tok := token.Token{
			Extent:   extent,
			Node:     t.node,
			NodeAddr: t.nodeAddr,
			Depth:    t.depth,
			Newline:  false,
		}
		switch t.node.Props.Content.Mode {
		case structure.ContentNone:
			tok.Class = token.ClassPunctuation
			tok.Punct = token.PunctEmpty
			tok.Extent = addr.Extent{}
		case structure.ContentHexdump:
			tok.Class = token.ClassHexdump
		case structure.ContentHexstring:
			tok.Class = token.ClassHexstring
		}
		return tok, genOK

	case stateEnd:
		return token.Token{}, genSkip

	default:
		panic(fmt.Sprintf("tokenizer: malformed state %v", t.state))
	}
}

func (t *Tokenizer) punct(p token.Punctuation, newline bool) token.Token {
	return token.Token{
		Class:    token.ClassPunctuation,
		Punct:    p,
		Node:     t.node,
		NodeAddr: t.nodeAddr,
		Depth:    t.depth,
		Newline:  newline,
	}
}

// movePrev moves one (potential) token backward in the stream. It returns
// false only at the true beginning of the whole stream.
func (t *Tokenizer) movePrev() bool {
	switch t.state.kind {
	case statePreBlank:
		return t.tryAscend(ascendPrev)

	case stateTitle:
		t.state = simpleState(statePreBlank)
		return true

	case stateMetaContent:
		offset, index := t.state.offset, t.state.index

		// Descend into the previous child, if it reaches our scan
		// position.
		if index > 0 {
			prev := t.node.Children[index-1]
			if !prev.End().Before(offset) {
				t.descend(descent{kind: descendChild, index: index - 1}, simpleState(stateEnd))
				return true
			}
		}

		// Emit one content line ending at the scan position.
		if offset.After(addr.Address{}) {
			// Cannot include data belonging to the previous child, or to
			// the parent if there is none.
			var limit addr.Address
			if index > 0 {
				limit = t.node.Children[index-1].End()
			}

			begin := limit
			if pitch, ok := t.node.Props.Content.PreferredPitch(); ok && !pitch.IsZero() {
				// The pitch boundary strictly before offset.
				pb := pitch.Mul(offset.Sub(addr.Bits(1)).AsSize().Div(pitch)).AsAddress()
				if pb.After(begin) {
					begin = pb
				}
			}

			extent := addr.Between(begin, offset)
			switch t.node.Props.Content.Mode {
			case structure.ContentNone:
				t.state = metaContentState(limit, index)
			case structure.ContentHexdump:
				t.state = hexdumpState(extent, index)
			case structure.ContentHexstring:
				t.state = hexstringState(extent, index)
			}
			return true
		}

		// Scan position is at the node's beginning.
		t.state = simpleState(stateTitle)
		return true

	case stateHexdump, stateHexstring:
		t.state = metaContentState(t.state.extent.Begin, t.state.index)
		return true

	case stateSummaryOpener:
		return t.tryAscend(ascendPrev)

	case stateSummaryLabel:
		if t.state.index == 0 {
			t.state = simpleState(stateSummaryOpener)
		} else {
			t.state = summarySeparatorState(t.state.index - 1)
		}
		return true

	case stateSummarySeparator:
		t.descend(descent{kind: descendChildSummary, index: t.state.index}, simpleState(stateSummaryValueEnd))
		return true

	case stateSummaryCloser:
		if len(t.node.Children) == 0 {
			t.state = simpleState(stateSummaryOpener)
		} else {
			t.state = summarySeparatorState(len(t.node.Children) - 1)
		}
		return true

	case stateSummaryNewline:
		t.descend(descent{kind: descendMySummary}, simpleState(stateSummaryCloser))
		return true

	case stateSummaryValueBegin:
		// Takes us back to the label for this child.
		return t.tryAscend(ascendPrev)

	case stateSummaryLeaf:
		t.state = simpleState(stateSummaryValueBegin)
		return true

	case stateSummaryValueEnd:
		if len(t.node.Children) == 0 {
			t.state = simpleState(stateSummaryLeaf)
		} else {
			t.state = simpleState(stateSummaryCloser)
		}
		return true

	case statePostBlank:
		switch t.node.Props.Children {
		case structure.ChildrenSummary:
			t.state = simpleState(stateSummaryNewline)
		case structure.ChildrenNone, structure.ChildrenFull:
			t.state = metaContentState(t.node.Size.AsAddress(), len(t.node.Children))
		}
		return true

	case stateEnd:
		t.state = simpleState(statePostBlank)
		return true

	default:
		panic(fmt.Sprintf("tokenizer: malformed state %v", t.state))
	}
}

// moveNext moves one (potential) token forward in the stream. It returns
// false only at the true end of the whole stream.
func (t *Tokenizer) moveNext() bool {
	switch t.state.kind {
	case statePreBlank:
		t.state = simpleState(stateTitle)
		return true

	case stateTitle:
		switch t.node.Props.Children {
		case structure.ChildrenSummary:
			t.descend(descent{kind: descendMySummary}, simpleState(stateSummaryOpener))
		case structure.ChildrenNone, structure.ChildrenFull:
			t.state = metaContentState(addr.Address{}, 0)
		}
		return true

	case stateMetaContent:
		offset, index := t.state.offset, t.state.index

		// Descend into the next child, if it begins at or before the
		// scan position.
		if index < len(t.node.Children) {
			next := t.node.Children[index]
			if !next.Offset.After(offset) {
				t.descend(descent{kind: descendChild, index: index}, simpleState(statePreBlank))
				return true
			}
		}

		// Emit one content line beginning at the scan position.
		if offset.Before(t.node.Size.AsAddress()) {
			// Cannot include data belonging to the next child, or to the
			// parent if there is none.
			limit := t.node.Size.AsAddress()
			if index < len(t.node.Children) {
				limit = t.node.Children[index].Offset
			}

			end := limit
			if pitch, ok := t.node.Props.Content.PreferredPitch(); ok && !pitch.IsZero() {
				// The pitch boundary strictly after offset.
				pe := pitch.Mul(offset.AsSize().Div(pitch) + 1).AsAddress()
				if pe.Before(end) {
					end = pe
				}
			}

			extent := addr.Between(offset, end)
			switch t.node.Props.Content.Mode {
			case structure.ContentNone:
				t.state = metaContentState(limit, index)
			case structure.ContentHexdump:
				t.state = hexdumpState(extent, index)
			case structure.ContentHexstring:
				t.state = hexstringState(extent, index)
			}
			return true
		}

		// Scan position reached (or passed) the node's end.
		t.state = simpleState(statePostBlank)
		return true

	case stateHexdump, stateHexstring:
		t.state = metaContentState(t.state.extent.End, t.state.index)
		return true

	case stateSummaryOpener:
		if len(t.node.Children) == 0 {
			t.state = simpleState(stateSummaryCloser)
		} else {
			t.state = summaryLabelState(0)
		}
		return true

	case stateSummaryLabel:
		t.descend(descent{kind: descendChildSummary, index: t.state.index}, simpleState(stateSummaryValueBegin))
		return true

	case stateSummarySeparator:
		if t.state.index+1 >= len(t.node.Children) {
			t.state = simpleState(stateSummaryCloser)
		} else {
			t.state = summaryLabelState(t.state.index + 1)
		}
		return true

	case stateSummaryCloser:
		return t.tryAscend(ascendNext)

	case stateSummaryNewline:
		t.state = simpleState(statePostBlank)
		return true

	case stateSummaryValueBegin:
		if len(t.node.Children) == 0 {
			t.state = simpleState(stateSummaryLeaf)
		} else {
			t.state = simpleState(stateSummaryOpener)
		}
		return true

	case stateSummaryLeaf:
		t.state = simpleState(stateSummaryValueEnd)
		return true

	case stateSummaryValueEnd:
		return t.tryAscend(ascendNext)

	case statePostBlank:
		t.state = simpleState(stateEnd)
		return true

	case stateEnd:
		return t.tryAscend(ascendNext)

	default:
		panic(fmt.Sprintf("tokenizer: malformed state %v", t.state))
	}
}

// descend pushes a frame for the current node and moves focus into the
// child the descent selects, entering it at stateWithin.
func (t *Tokenizer) descend(d descent, stateWithin state) {
	ch := d.childhood(t.node)
	t.stack = append(t.stack, frame{
		descent:  d,
		depth:    t.depth,
		node:     t.node,
		nodeAddr: t.nodeAddr,
	})
	t.depth += d.depthChange()
	t.node = ch.Node
	t.nodeAddr = t.nodeAddr.Add(ch.Offset.AsSize())
	t.state = stateWithin
}

// tryAscend pops a frame and resumes the parent either just before or
// just after the child, returning false if already at the root.
func (t *Tokenizer) tryAscend(dir ascendDirection) bool {
	if len(t.stack) == 0 {
		return false
	}
	fr := t.stack[len(t.stack)-1]
	t.stack = t.stack[:len(t.stack)-1]
	if dir == ascendPrev {
		t.state = fr.descent.beforeState(fr.node)
	} else {
		t.state = fr.descent.afterState(fr.node)
	}
	t.depth = fr.depth
	t.node = fr.node
	t.nodeAddr = fr.nodeAddr
	return true
}

// Prev steps backward until a token is produced. ok is false at the
// stream's beginning.
func (t *Tokenizer) Prev() (token.Token, bool) {
	for t.movePrev() {
		tok, res := t.genToken()
		switch res {
		case genOK:
			return tok, true
		case genSkip:
			continue
		case genBoundary:
			return token.Token{}, false
		}
	}
	return token.Token{}, false
}

// NextPreincrement steps forward first, then generates: the returned
// token is the one the cursor now sits on. Use this when the cursor's
// position represents an element.
func (t *Tokenizer) NextPreincrement() (token.Token, bool) {
	for t.moveNext() {
		tok, res := t.genToken()
		switch res {
		case genOK:
			return tok, true
		case genSkip:
			continue
		case genBoundary:
			return token.Token{}, false
		}
	}
	return token.Token{}, false
}

// NextPostincrement generates first, then steps forward: the returned
// token is the one the cursor was sitting before advancing past it. Use
// this when the cursor's position represents a border between elements.
func (t *Tokenizer) NextPostincrement() (token.Token, bool) {
	for {
		tok, res := t.genToken()
		if !t.moveNext() {
			return token.Token{}, false
		}
		switch res {
		case genOK:
			return tok, true
		case genSkip:
			continue
		case genBoundary:
			return token.Token{}, false
		}
	}
}

// HitTop reports whether the cursor is at the true beginning of the
// stream.
func (t *Tokenizer) HitTop() bool {
	return t.state.kind == statePreBlank && len(t.stack) == 0
}

// HitBottom reports whether the cursor is at the true end of the stream.
func (t *Tokenizer) HitBottom() bool {
	return t.state.kind == stateEnd && len(t.stack) == 0
}

// StructurePath reconstructs the focused node's path from the frame
// stack.
func (t *Tokenizer) StructurePath() structure.Path {
	path := structure.Path{}
	for _, fr := range t.stack {
		path = fr.descent.appendPath(path)
	}
	return path
}

// StructurePositionChild reports the cursor's position within the focused
// node's child list. States that carry no child position report 0.
func (t *Tokenizer) StructurePositionChild() int {
	switch t.state.kind {
	case stateMetaContent, stateHexdump, stateHexstring,
		stateSummaryLabel, stateSummarySeparator:
		return t.state.index
	case stateSummaryCloser, statePostBlank, stateEnd:
		return len(t.node.Children)
	default:
		return 0
	}
}

// StructurePositionOffset reports the cursor's content scan offset within
// the focused node. States that carry no offset report the null address.
func (t *Tokenizer) StructurePositionOffset() addr.Address {
	switch t.state.kind {
	case stateMetaContent:
		return t.state.offset
	case stateHexdump, stateHexstring:
		return t.state.extent.Begin
	default:
		return addr.Address{}
	}
}

// String summarizes the cursor for diagnostics.
func (t *Tokenizer) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Tokenizer(%v on %q, depth %d, stack [", t.state, t.node.Props.Name, t.depth)
	for i, fr := range t.stack {
		if i > 0 {
			sb.WriteString(" ")
		}
		fmt.Fprintf(&sb, "%v:%s", fr.descent, fr.node.Props.Name)
	}
	sb.WriteString("])")
	return sb.String()
}
