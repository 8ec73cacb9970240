// Package fixture loads structure trees and expected token streams from
// XML test case files.
//
// A test case file looks like:
//
//	<testcase>
//	  <node name="root" size="0x20">
//	    <node name="child" offset="0x4" size="0x8"/>
//	  </node>
//	  <tokens>
//	    <null node="root" nl="true"/>
//	    <title node="root" nl="true"/>
//	    <indent>
//	      <hexdump node="root" begin="0x0" end="0x4" nl="true"/>
//	    </indent>
//	    ...
//	  </tokens>
//	</testcase>
package fixture

import (
	"fmt"
	"io"
	"os"

	"github.com/antchfx/xmlquery"

	"github.com/dshills/hexlist/internal/engine/addr"
	"github.com/dshills/hexlist/internal/engine/structure"
	"github.com/dshills/hexlist/internal/engine/token"
)

// Testcase is a structure tree paired with the token stream it should
// produce.
type Testcase struct {
	Root     *structure.Node
	Expected []token.Token
}

type nodeInfo struct {
	addr addr.Address
	node *structure.Node
}

// Load reads and parses the test case file at path.
func Load(path string) (*Testcase, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	tc, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return tc, nil
}

// Parse parses a test case document from r.
func Parse(r io.Reader) (*Testcase, error) {
	doc, err := xmlquery.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parsing XML: %w", err)
	}

	root := firstElement(doc)
	if root == nil || root.Data != "testcase" {
		return nil, fmt.Errorf("expected <testcase> document root")
	}

	lookup := make(map[string]nodeInfo)
	tc := &Testcase{}
	var tokensElem *xmlquery.Node

	for child := root.FirstChild; child != nil; child = child.NextSibling {
		if child.Type != xmlquery.ElementNode {
			continue
		}
		switch child.Data {
		case "node":
			if tc.Root != nil {
				return nil, fmt.Errorf("multiple structure definitions")
			}
			tc.Root, err = inflateNode(child, addr.Address{}, lookup)
			if err != nil {
				return nil, err
			}
		case "tokens":
			if tokensElem != nil {
				return nil, fmt.Errorf("multiple token stream definitions")
			}
			tokensElem = child
		default:
			return nil, fmt.Errorf("unexpected element <%s>", child.Data)
		}
	}

	if tc.Root == nil {
		return nil, fmt.Errorf("missing structure definition")
	}
	if tokensElem == nil {
		return nil, fmt.Errorf("missing token stream definition")
	}

	tc.Expected, err = inflateTokens(tokensElem, 0, lookup)
	if err != nil {
		return nil, err
	}
	return tc, nil
}

func firstElement(n *xmlquery.Node) *xmlquery.Node {
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		if child.Type == xmlquery.ElementNode {
			return child
		}
	}
	return nil
}

func inflateNode(elem *xmlquery.Node, nodeAddr addr.Address, lookup map[string]nodeInfo) (*structure.Node, error) {
	name := elem.SelectAttr("name")
	if name == "" {
		return nil, fmt.Errorf("node without a name")
	}

	size, err := addr.ParseSize(elem.SelectAttr("size"))
	if err != nil {
		return nil, fmt.Errorf("node %q: bad size: %w", name, err)
	}

	props := structure.DefaultProperties(name)

	switch title := elem.SelectAttr("title"); title {
	case "", "major":
		props.Title = structure.TitleMajor
	case "minor":
		props.Title = structure.TitleMinor
	case "inline":
		props.Title = structure.TitleInline
	default:
		return nil, fmt.Errorf("node %q: bad title %q", name, title)
	}

	switch children := elem.SelectAttr("children"); children {
	case "", "full":
		props.Children = structure.ChildrenFull
	case "summary":
		props.Children = structure.ChildrenSummary
	case "none":
		props.Children = structure.ChildrenNone
	default:
		return nil, fmt.Errorf("node %q: bad children %q", name, children)
	}

	switch content := elem.SelectAttr("content"); content {
	case "", "hexdump":
		pitch := addr.Bytes(16)
		if p := elem.SelectAttr("pitch"); p != "" {
			pitch, err = addr.ParseSize(p)
			if err != nil {
				return nil, fmt.Errorf("node %q: bad pitch: %w", name, err)
			}
		}
		props.Content = structure.Hexdump(pitch)
	case "hexstring":
		props.Content = structure.Hexstring()
	case "none":
		props.Content = structure.NoContent()
	default:
		return nil, fmt.Errorf("node %q: bad content %q", name, content)
	}

	node := &structure.Node{Props: props, Size: size}

	for child := elem.FirstChild; child != nil; child = child.NextSibling {
		if child.Type != xmlquery.ElementNode {
			continue
		}
		offset := addr.Address{}
		if o := child.SelectAttr("offset"); o != "" {
			offset, err = addr.Parse(o)
			if err != nil {
				return nil, fmt.Errorf("node %q: bad child offset: %w", name, err)
			}
		}
		childNode, err := inflateNode(child, nodeAddr.Add(offset.AsSize()), lookup)
		if err != nil {
			return nil, err
		}
		node.Children = append(node.Children, structure.Childhood{Node: childNode, Offset: offset})
	}

	if _, dup := lookup[name]; dup {
		return nil, fmt.Errorf("duplicate node name %q", name)
	}
	lookup[name] = nodeInfo{addr: nodeAddr, node: node}
	return node, nil
}

func inflateTokens(elem *xmlquery.Node, depth int, lookup map[string]nodeInfo) ([]token.Token, error) {
	var out []token.Token
	for child := elem.FirstChild; child != nil; child = child.NextSibling {
		if child.Type != xmlquery.ElementNode {
			continue
		}

		if child.Data == "indent" {
			nested, err := inflateTokens(child, depth+1, lookup)
			if err != nil {
				return nil, err
			}
			out = append(out, nested...)
			continue
		}

		info, ok := lookup[child.SelectAttr("node")]
		if !ok {
			return nil, fmt.Errorf("<%s> references unknown node %q", child.Data, child.SelectAttr("node"))
		}

		tok := token.Token{
			Node:     info.node,
			NodeAddr: info.addr,
			Depth:    depth,
			Newline:  child.SelectAttr("nl") == "true",
		}

		switch child.Data {
		case "null":
			tok.Class = token.ClassPunctuation
			tok.Punct = token.PunctEmpty
		case "open":
			tok.Class = token.ClassPunctuation
			tok.Punct = token.PunctOpenBracket
		case "comma":
			tok.Class = token.ClassPunctuation
			tok.Punct = token.PunctComma
		case "close":
			tok.Class = token.ClassPunctuation
			tok.Punct = token.PunctCloseBracket
		case "title":
			tok.Class = token.ClassTitle
		case "summlabel":
			tok.Class = token.ClassSummaryLabel
		case "hexdump", "hexstring":
			tok.Class = token.ClassHexdump
			if child.Data == "hexstring" {
				tok.Class = token.ClassHexstring
			}
			begin, err := addr.Parse(child.SelectAttr("begin"))
			if err != nil {
				return nil, fmt.Errorf("<%s>: bad begin: %w", child.Data, err)
			}
			end, err := addr.Parse(child.SelectAttr("end"))
			if err != nil {
				return nil, fmt.Errorf("<%s>: bad end: %w", child.Data, err)
			}
			tok.Extent = addr.Between(begin, end)
		default:
			return nil, fmt.Errorf("unexpected token element <%s>", child.Data)
		}

		out = append(out, tok)
	}
	return out, nil
}
