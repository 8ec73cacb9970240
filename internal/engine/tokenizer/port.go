package tokenizer

import (
	"github.com/dshills/hexlist/internal/engine/addr"
	"github.com/dshills/hexlist/internal/engine/document"
	"github.com/dshills/hexlist/internal/engine/structure"
	"github.com/dshills/hexlist/internal/logging"
)

// PortDoc rewrites the cursor, positioned against oldDoc, so it denotes
// the equivalent position against newDoc. It walks the version chain from
// newDoc back to oldDoc and ports across each change in order, costing
// O(depth) per change. Panics if oldDoc is not an ancestor of newDoc.
func (t *Tokenizer) PortDoc(oldDoc, newDoc *document.Document) {
	if oldDoc == newDoc {
		return
	}
	if newDoc.Previous == nil {
		panic("tokenizer: porting between documents with no common ancestor")
	}
	t.PortDoc(oldDoc, newDoc.Previous)
	t.portChange(newDoc.Root, newDoc.Change)
}

// portStep is one child descent extracted from the old stack: which child
// index was entered, and the (old) parent it was entered from. MySummary
// frames contribute no step; they are re-derived from the new tree.
type portStep struct {
	index     int
	oldParent *structure.Node
}

// portChange rewrites the cursor across a single change, against the root
// the change produced.
func (t *Tokenizer) portChange(newRoot *structure.Node, c *document.Change) {
	logging.Default().Debug("porting tokenizer", "change", c)

	// Hexdump and Hexstring states reduce to the MetaContent position they
	// were derived from, which is the stable thing to carry across an edit.
	switch t.state.kind {
	case stateHexdump, stateHexstring:
		t.state = metaContentState(t.state.extent.Begin, t.state.index)
	}

	steps := make([]portStep, 0, len(t.stack))
	for _, fr := range t.stack {
		if fr.descent.kind == descendMySummary {
			continue
		}
		steps = append(steps, portStep{index: fr.descent.index, oldParent: fr.node})
	}

	p := &porter{
		tok:     t,
		change:  c,
		node:    newRoot,
		path:    structure.Path{},
		stack:   make([]frame, 0, len(t.stack)+2),
		summary: false,
	}
	p.rebuild(steps)
	p.finish()
}

// porter carries the in-progress rebuilt stack while walking the new tree
// root-first.
type porter struct {
	tok    *Tokenizer
	change *document.Change

	node     *structure.Node
	nodeAddr addr.Address
	depth    int
	path     structure.Path

	stack []frame

	// summary is true once the walk has entered summary rendering; every
	// descent below that point is summary-style regardless of the nodes'
	// own display properties.
	summary bool

	// matched is set after the frame-level adjustment for the change's
	// path has been applied, so the splice successor of an elided frame is
	// not adjusted a second time.
	matched bool

	// done is set when a rescue resolved the final position early.
	done bool
}

// rebuild replays the old stack's child descents against the new tree,
// adjusting indices across the change.
func (p *porter) rebuild(steps []portStep) {
	c := p.change
	shift := 0

	for si := 0; si < len(steps); si++ {
		idx := steps[si].index + shift
		shift = 0

		if !p.matched && c.Path.Equal(p.path) {
			p.matched = true
			switch c.Kind {
			case document.KindInsertNode:
				if idx >= c.Index {
					idx++
				}

			case document.KindDeleteRange:
				if idx >= c.First && idx <= c.Last {
					p.rescueDelete(c.First, steps[si].oldParent)
					return
				}
				if idx > c.Last {
					idx -= c.Last - c.First + 1
				}

			case document.KindNest:
				if idx >= c.First && idx <= c.Last {
					// The old child now sits inside the nest node; enter
					// the nest first.
					p.descend(c.First)
					idx -= c.First
				} else if idx > c.Last {
					idx -= c.Last - c.First
				}

			case document.KindDestructure:
				switch {
				case idx == c.Index:
					if c.GrandchildCount == 0 {
						p.rescueDelete(c.Index, steps[si].oldParent)
						return
					}
					if si == len(steps)-1 {
						p.rescueDestructuredLeaf(steps[si].oldParent.Children[steps[si].index].Node)
						return
					}
					// The destructured node vanished from the path; its
					// children were spliced into ours. Skip the frame and
					// renumber the next descent into splice coordinates.
					shift = c.Index
					continue
				case idx > c.Index:
					idx += c.GrandchildCount - 1
				}

			case document.KindAlterNode:
				// Property changes move no children. Display flips are
				// absorbed by deriving descent kinds from the new tree.
			}
		}

		p.descend(idx)
	}
}

// descend pushes the frame(s) entering child idx of the current node,
// deriving summary-ness from the new tree, and advances the walk into the
// child.
func (p *porter) descend(idx int) {
	if !p.summary && p.node.Props.Children == structure.ChildrenSummary {
		p.stack = append(p.stack, frame{
			descent:  descent{kind: descendMySummary},
			depth:    p.depth,
			node:     p.node,
			nodeAddr: p.nodeAddr,
		})
		p.summary = true
	}

	kind := descendChild
	if p.summary {
		kind = descendChildSummary
	}
	p.stack = append(p.stack, frame{
		descent:  descent{kind: kind, index: idx},
		depth:    p.depth,
		node:     p.node,
		nodeAddr: p.nodeAddr,
	})

	ch := p.node.Children[idx]
	p.depth++
	p.node = ch.Node
	p.nodeAddr = p.nodeAddr.Add(ch.Offset.AsSize())
	p.path = append(p.path, idx)
}

// rescueDelete resolves the cursor when the subtree it was inside was
// removed: the cursor lands in the parent, at the position the removed
// range used to occupy.
func (p *porter) rescueDelete(first int, oldParent *structure.Node) {
	if p.summary || p.node.Props.Children == structure.ChildrenSummary {
		if first < len(p.node.Children) {
			p.tok.state = summaryLabelState(first)
		} else {
			p.tok.state = simpleState(stateSummaryCloser)
		}
		if !p.summary {
			p.stack = append(p.stack, frame{
				descent:  descent{kind: descendMySummary},
				depth:    p.depth,
				node:     p.node,
				nodeAddr: p.nodeAddr,
			})
			p.summary = true
		}
	} else {
		// The removed children's bytes remain as raw content of the
		// parent; resume scanning where the range began.
		offset := addr.Address{}
		if first < len(oldParent.Children) {
			offset = oldParent.Children[first].Offset
		}
		p.tok.state = metaContentState(offset, first)
	}
	p.done = true
}

// rescueDestructuredLeaf resolves the cursor when the node it was focused
// on was destructured: its children were spliced into the parent, so
// positions within it map directly onto the parent's coordinates.
func (p *porter) rescueDestructuredLeaf(victim *structure.Node) {
	c := p.change
	st := p.tok.state

	if p.summary || p.node.Props.Children == structure.ChildrenSummary {
		switch st.kind {
		case stateSummaryLabel:
			p.tok.state = summaryLabelState(c.Index + st.index)
		case stateSummarySeparator:
			p.tok.state = summarySeparatorState(c.Index + st.index)
		case stateSummaryOpener, stateSummaryValueBegin:
			p.tok.state = summaryLabelState(c.Index)
		default:
			p.tok.state = summarySeparatorState(c.Index + c.GrandchildCount - 1)
		}
		if !p.summary {
			p.stack = append(p.stack, frame{
				descent:  descent{kind: descendMySummary},
				depth:    p.depth,
				node:     p.node,
				nodeAddr: p.nodeAddr,
			})
			p.summary = true
		}
	} else {
		switch st.kind {
		case stateMetaContent:
			p.tok.state = metaContentState(c.Offset.Add(st.offset.AsSize()), c.Index+st.index)
		case statePreBlank, stateTitle:
			p.tok.state = metaContentState(c.Offset, c.Index)
		default:
			p.tok.state = metaContentState(
				c.Offset.Add(victim.Size), c.Index+c.GrandchildCount)
		}
	}
	p.done = true
}

// finish applies the leaf-level fixups and installs the rebuilt position
// into the tokenizer.
func (p *porter) finish() {
	t := p.tok

	if !p.done {
		if !p.matched && p.change.Path.Equal(p.path) {
			p.fixupLeaf()
		}
		p.reconcileLeafContext()
	}

	t.stack = p.stack
	t.depth = p.depth
	t.node = p.node
	t.nodeAddr = p.nodeAddr

	logging.Default().Debug("ported tokenizer", "state", t.state)
}

// fixupLeaf adjusts the leaf state when the change happened at the node
// the cursor is focused on.
func (p *porter) fixupLeaf() {
	c := p.change
	st := &p.tok.state

	switch c.Kind {
	case document.KindInsertNode:
		switch st.kind {
		case stateMetaContent:
			switch {
			case addr.Sized(c.Offset, c.Node.Size).Contains(st.offset):
				// The scan position fell inside the new child; set up to
				// descend into it on the next forward step.
				st.offset = c.Offset
				st.index = c.Index
			case c.Offset.Add(c.Node.Size).Before(st.offset) && st.index >= c.Index:
				st.index++
			}
		case stateSummaryLabel, stateSummarySeparator:
			if st.index > c.Index {
				st.index++
			}
		}

	case document.KindDeleteRange:
		count := c.Last - c.First + 1
		switch st.kind {
		case stateMetaContent:
			if st.index > c.Last {
				st.index -= count
			} else if st.index >= c.First {
				st.index = c.First
			}
		case stateSummaryLabel:
			if st.index > c.Last {
				st.index -= count
			} else if st.index >= c.First {
				if c.First < len(p.node.Children) {
					st.index = c.First
				} else {
					*st = simpleState(stateSummaryCloser)
				}
			}
		case stateSummarySeparator:
			if st.index > c.Last {
				st.index -= count
			} else if st.index >= c.First {
				if c.First > 0 {
					*st = summarySeparatorState(c.First - 1)
				} else {
					*st = simpleState(stateSummaryOpener)
				}
			}
		}

	case document.KindNest:
		collapsed := c.Last - c.First
		switch st.kind {
		case stateMetaContent:
			if st.index > c.Last {
				st.index -= collapsed
			} else if st.index >= c.First {
				st.index = c.First
			}
		case stateSummaryLabel, stateSummarySeparator:
			if st.index > c.Last {
				st.index -= collapsed
			} else if st.index >= c.First {
				st.index = c.First
			}
		}

	case document.KindDestructure:
		switch st.kind {
		case stateMetaContent, stateSummaryLabel:
			if st.index > c.Index {
				st.index += c.GrandchildCount - 1
			}
		case stateSummarySeparator:
			if st.index > c.Index {
				st.index += c.GrandchildCount - 1
			} else if st.index == c.Index {
				// The separator after the destructured child now follows
				// its last spliced grandchild.
				st.index = c.Index + c.GrandchildCount - 1
			}
		}

	case document.KindAlterNode:
		// Handled by reconcileLeafContext against the node's new display.
	}
}

// reconcileLeafContext converts the leaf state between the full and
// summary token sub-machines when the rendering context of the focused
// node changed, and restores a trailing own-summary frame when the leaf
// state requires one.
func (p *porter) reconcileLeafContext() {
	st := &p.tok.state

	if p.summary {
		// Inside a summary only the summary sub-machine states are valid.
		switch st.kind {
		case statePreBlank, stateTitle:
			*st = simpleState(stateSummaryValueBegin)
		case stateMetaContent:
			if len(p.node.Children) == 0 {
				*st = simpleState(stateSummaryLeaf)
			} else {
				*st = simpleState(stateSummaryOpener)
			}
		case statePostBlank, stateEnd:
			*st = simpleState(stateSummaryValueEnd)
		case stateSummaryNewline:
			*st = simpleState(stateSummaryValueEnd)
		}
		return
	}

	switch st.kind {
	case stateSummaryOpener, stateSummaryLabel, stateSummarySeparator,
		stateSummaryCloser, stateSummaryNewline:
		if p.node.Props.Children == structure.ChildrenSummary {
			// The state machine requires the own-summary frame beneath
			// these states; the rebuild drops it, so restore it.
			p.stack = append(p.stack, frame{
				descent:  descent{kind: descendMySummary},
				depth:    p.depth,
				node:     p.node,
				nodeAddr: p.nodeAddr,
			})
			return
		}
		// The node no longer displays a summary; map onto the equivalent
		// full-machine position.
		switch st.kind {
		case stateSummaryOpener:
			*st = metaContentState(addr.Address{}, 0)
		case stateSummaryLabel:
			if st.index < len(p.node.Children) {
				*st = metaContentState(p.node.Children[st.index].Offset, st.index)
			} else {
				*st = metaContentState(p.node.Size.AsAddress(), len(p.node.Children))
			}
		case stateSummarySeparator:
			if st.index < len(p.node.Children) {
				*st = metaContentState(p.node.Children[st.index].End(), st.index+1)
			} else {
				*st = metaContentState(p.node.Size.AsAddress(), len(p.node.Children))
			}
		case stateSummaryCloser:
			*st = metaContentState(p.node.Size.AsAddress(), len(p.node.Children))
		case stateSummaryNewline:
			*st = simpleState(statePostBlank)
		}

	case stateSummaryValueBegin:
		*st = simpleState(statePreBlank)
	case stateSummaryLeaf:
		*st = simpleState(stateTitle)
	case stateSummaryValueEnd:
		*st = simpleState(stateEnd)
	}
}
