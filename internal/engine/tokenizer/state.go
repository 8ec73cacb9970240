package tokenizer

import (
	"fmt"

	"github.com/dshills/hexlist/internal/engine/addr"
	"github.com/dshills/hexlist/internal/engine/structure"
)

// stateKind is where within the focused node's token sub-sequence the
// cursor sits. Emission order for a node with full children display:
// preBlank, title, metaContent (interleaving content lines and child
// descents), postBlank, end. Summary display replaces the metaContent
// phase with the summary sub-machine.
type stateKind int

const (
	statePreBlank stateKind = iota
	stateTitle

	// stateMetaContent is the interleaving cursor: offset is the scan
	// position within the node's own bytes, index the next child to
	// consider.
	stateMetaContent
	// stateHexdump and stateHexstring sit on one emitted content line
	// covering extent; index as in stateMetaContent.
	stateHexdump
	stateHexstring

	stateSummaryOpener
	// stateSummaryLabel labels child index; never one-past-the-end.
	stateSummaryLabel
	// stateSummarySeparator follows child index. Visited even for the
	// last child; the token is suppressed there at generation time.
	stateSummarySeparator
	stateSummaryCloser
	stateSummaryNewline

	stateSummaryValueBegin
	stateSummaryLeaf
	stateSummaryValueEnd

	statePostBlank
	stateEnd
)

func (k stateKind) String() string {
	switch k {
	case statePreBlank:
		return "PreBlank"
	case stateTitle:
		return "Title"
	case stateMetaContent:
		return "MetaContent"
	case stateHexdump:
		return "Hexdump"
	case stateHexstring:
		return "Hexstring"
	case stateSummaryOpener:
		return "SummaryOpener"
	case stateSummaryLabel:
		return "SummaryLabel"
	case stateSummarySeparator:
		return "SummarySeparator"
	case stateSummaryCloser:
		return "SummaryCloser"
	case stateSummaryNewline:
		return "SummaryNewline"
	case stateSummaryValueBegin:
		return "SummaryValueBegin"
	case stateSummaryLeaf:
		return "SummaryLeaf"
	case stateSummaryValueEnd:
		return "SummaryValueEnd"
	case statePostBlank:
		return "PostBlank"
	case stateEnd:
		return "End"
	default:
		return "unknown"
	}
}

// state is a stateKind plus its payload. offset/extent/index are
// meaningful only for the kinds that carry them.
type state struct {
	kind   stateKind
	offset addr.Address
	extent addr.Extent
	index  int
}

func simpleState(k stateKind) state {
	return state{kind: k}
}

func metaContentState(offset addr.Address, index int) state {
	return state{kind: stateMetaContent, offset: offset, index: index}
}

func hexdumpState(extent addr.Extent, index int) state {
	return state{kind: stateHexdump, extent: extent, index: index}
}

func hexstringState(extent addr.Extent, index int) state {
	return state{kind: stateHexstring, extent: extent, index: index}
}

func summaryLabelState(index int) state {
	return state{kind: stateSummaryLabel, index: index}
}

func summarySeparatorState(index int) state {
	return state{kind: stateSummarySeparator, index: index}
}

func (s state) equal(other state) bool {
	return s.kind == other.kind &&
		s.offset.Compare(other.offset) == 0 &&
		s.extent.Equal(other.extent) &&
		s.index == other.index
}

func (s state) String() string {
	switch s.kind {
	case stateMetaContent:
		return fmt.Sprintf("MetaContent(%v, %d)", s.offset, s.index)
	case stateHexdump, stateHexstring:
		return fmt.Sprintf("%v(%v, %d)", s.kind, s.extent, s.index)
	case stateSummaryLabel, stateSummarySeparator:
		return fmt.Sprintf("%v(%d)", s.kind, s.index)
	default:
		return s.kind.String()
	}
}

// descentKind records how the cursor entered a child when a frame was
// pushed.
type descentKind int

const (
	// descendChild entered a child rendered in full.
	descendChild descentKind = iota
	// descendChildSummary entered a child rendered inside a summary.
	descendChildSummary
	// descendMySummary entered the node's own summary; the "child" is the
	// node itself and no path segment is contributed.
	descendMySummary
)

type descent struct {
	kind  descentKind
	index int // child index; unused for descendMySummary
}

// childhood returns the childhood the descent enters from node.
func (d descent) childhood(node *structure.Node) structure.Childhood {
	switch d.kind {
	case descendChild, descendChildSummary:
		return node.Children[d.index]
	default:
		return structure.Childhood{Node: node}
	}
}

// depthChange returns how much deeper the descent nests the cursor.
func (d descent) depthChange() int {
	if d.kind == descendMySummary {
		return 0
	}
	return 1
}

// beforeState is the parent state immediately before the descended-into
// child, used when ascending backward.
func (d descent) beforeState(parent *structure.Node) state {
	switch d.kind {
	case descendChild:
		return metaContentState(parent.Children[d.index].Offset, d.index)
	case descendChildSummary:
		return summaryLabelState(d.index)
	default:
		return simpleState(stateTitle)
	}
}

// afterState is the parent state immediately after the descended-into
// child, used when ascending forward.
func (d descent) afterState(parent *structure.Node) state {
	switch d.kind {
	case descendChild:
		return metaContentState(parent.Children[d.index].End(), d.index+1)
	case descendChildSummary:
		return summarySeparatorState(d.index)
	default:
		return simpleState(stateSummaryNewline)
	}
}

// appendPath extends path with the descent's contribution, if any.
func (d descent) appendPath(path structure.Path) structure.Path {
	if d.kind == descendMySummary {
		return path
	}
	return append(path, d.index)
}

func (d descent) String() string {
	switch d.kind {
	case descendChild:
		return fmt.Sprintf("Child(%d)", d.index)
	case descendChildSummary:
		return fmt.Sprintf("ChildSummary(%d)", d.index)
	default:
		return "MySummary"
	}
}

// frame is one ancestor entry on the cursor stack: the node the descent
// started from, that node's absolute address and depth, and how the child
// was entered.
type frame struct {
	descent  descent
	depth    int
	node     *structure.Node
	nodeAddr addr.Address
}

func (f frame) equal(other frame) bool {
	return f.descent == other.descent &&
		f.depth == other.depth &&
		f.node == other.node &&
		f.nodeAddr.Compare(other.nodeAddr) == 0
}
