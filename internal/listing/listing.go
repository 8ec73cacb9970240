// Package listing renders a structure tree's token stream as indented
// text, one line per newline-terminated token group.
package listing

import (
	"fmt"
	"io"
	"strings"

	"github.com/dshills/hexlist/internal/engine/structure"
	"github.com/dshills/hexlist/internal/engine/token"
	"github.com/dshills/hexlist/internal/engine/tokenizer"
)

// Options controls rendering.
type Options struct {
	// Indent is prepended once per depth level. Defaults to two spaces.
	Indent string

	// Reverse walks the stream bottom-up instead of top-down. The output
	// is identical; the walk exercises the backward cursor direction.
	Reverse bool
}

func (o Options) indent() string {
	if o.Indent == "" {
		return "  "
	}
	return o.Indent
}

// Lines renders root's token stream as text lines.
func Lines(root *structure.Node, opts Options) []string {
	var lines []string
	var parts []string
	depth := 0

	flush := func() {
		line := strings.Join(parts, " ")
		if line != "" {
			line = strings.Repeat(opts.indent(), depth) + line
		}
		lines = append(lines, line)
		parts = parts[:0]
	}

	emit := func(tok token.Token) {
		if len(parts) == 0 {
			depth = tok.Depth
		}
		if text := Text(tok); text != "" {
			parts = append(parts, text)
		}
		if tok.Newline {
			flush()
		}
	}

	if opts.Reverse {
		// Walk bottom-up, then render the collected tokens in order so
		// line grouping stays intact.
		var toks []token.Token
		cur := tokenizer.AtEnd(root)
		for {
			tok, ok := cur.Prev()
			if !ok {
				break
			}
			toks = append(toks, tok)
		}
		for i := len(toks) - 1; i >= 0; i-- {
			emit(toks[i])
		}
	} else {
		cur := tokenizer.AtBeginning(root)
		for {
			tok, ok := cur.NextPostincrement()
			if !ok {
				break
			}
			emit(tok)
		}
	}
	if len(parts) > 0 {
		flush()
	}
	return lines
}

// Render writes the rendered listing to w.
func Render(w io.Writer, root *structure.Node, opts Options) error {
	for _, line := range Lines(root, opts) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

// Text returns the display text of a single token. Blank punctuation
// renders as an empty string.
func Text(tok token.Token) string {
	switch tok.Class {
	case token.ClassPunctuation:
		return tok.Punct.String()
	case token.ClassTitle:
		return tok.Node.Props.Name + ":"
	case token.ClassSummaryLabel:
		return tok.Node.Props.Name + ":"
	case token.ClassHexdump:
		return fmt.Sprintf("%v: %v", tok.NodeAddr.Add(tok.Extent.Begin.AsSize()), tok.Extent)
	case token.ClassHexstring:
		return fmt.Sprintf("%v: %v", tok.NodeAddr.Add(tok.Extent.Begin.AsSize()), tok.Extent)
	default:
		return ""
	}
}
