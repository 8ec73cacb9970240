package tokenizer

import (
	"path/filepath"
	"testing"

	"github.com/dshills/hexlist/internal/engine/addr"
	"github.com/dshills/hexlist/internal/engine/structure"
	"github.com/dshills/hexlist/internal/engine/token"
	"github.com/dshills/hexlist/internal/fixture"
)

func loadTestcase(t *testing.T, name string) *fixture.Testcase {
	t.Helper()
	tc, err := fixture.Load(filepath.Join("testdata", name))
	if err != nil {
		t.Fatalf("loading %s: %v", name, err)
	}
	return tc
}

// downwardNext pulls one token forward while asserting that stepping
// backward and forward again reproduces the same tokens.
func downwardNext(t *testing.T, tok *Tokenizer) (token.Token, bool) {
	t.Helper()

	a, ok := tok.NextPostincrement()
	if !ok {
		return token.Token{}, false
	}
	b, ok := tok.NextPostincrement()
	if ok {
		rb, rok := tok.Prev()
		if !rok || !rb.Equal(b) {
			t.Fatalf("backtracking to %v produced %v", b, rb)
		}
	}
	ra, rok := tok.Prev()
	if !rok || !ra.Equal(a) {
		t.Fatalf("backtracking to %v produced %v", a, ra)
	}
	fa, fok := tok.NextPostincrement()
	if !fok || !fa.Equal(a) {
		t.Fatalf("replaying %v produced %v", a, fa)
	}
	return a, true
}

// upwardNext pulls one token backward while asserting that stepping
// forward and backward again reproduces the same tokens.
func upwardNext(t *testing.T, tok *Tokenizer) (token.Token, bool) {
	t.Helper()

	a, ok := tok.Prev()
	if !ok {
		return token.Token{}, false
	}
	b, ok := tok.Prev()
	if ok {
		rb, rok := tok.NextPostincrement()
		if !rok || !rb.Equal(b) {
			t.Fatalf("replaying to %v produced %v", b, rb)
		}
	}
	ra, rok := tok.NextPostincrement()
	if !rok || !ra.Equal(a) {
		t.Fatalf("replaying to %v produced %v", a, ra)
	}
	fa, fok := tok.Prev()
	if !fok || !fa.Equal(a) {
		t.Fatalf("backtracking to %v produced %v", a, fa)
	}
	return a, true
}

func testForward(t *testing.T, root *structure.Node, expected []token.Token) {
	t.Helper()
	tok := AtBeginning(root)
	for i, want := range expected {
		got, ok := downwardNext(t, tok)
		if !ok {
			t.Fatalf("stream ended early at token %d, wanted %v", i, want)
		}
		if !got.Equal(want) {
			t.Fatalf("token %d: got %v, want %v", i, got, want)
		}
	}
	if extra, ok := downwardNext(t, tok); ok {
		t.Fatalf("stream continued past expected end with %v", extra)
	}
	if !tok.HitBottom() {
		t.Error("exhausted stream should be at the bottom")
	}
}

func testBackward(t *testing.T, root *structure.Node, expected []token.Token) {
	t.Helper()
	tok := AtEnd(root)
	for i := len(expected) - 1; i >= 0; i-- {
		got, ok := upwardNext(t, tok)
		if !ok {
			t.Fatalf("stream ended early at token %d, wanted %v", i, expected[i])
		}
		if !got.Equal(expected[i]) {
			t.Fatalf("token %d: got %v, want %v", i, got, expected[i])
		}
	}
	if extra, ok := upwardNext(t, tok); ok {
		t.Fatalf("stream continued past expected beginning with %v", extra)
	}
	if !tok.HitTop() {
		t.Error("exhausted stream should be at the top")
	}
}

func runTestcase(t *testing.T, name string) {
	tc := loadTestcase(t, name)
	testForward(t, tc.Root, tc.Expected)
	testBackward(t, tc.Root, tc.Expected)
}

func TestSimple(t *testing.T)         { runTestcase(t, "simple.xml") }
func TestNesting(t *testing.T)        { runTestcase(t, "nesting.xml") }
func TestFormatting(t *testing.T)     { runTestcase(t, "formatting.xml") }
func TestContentDisplay(t *testing.T) { runTestcase(t, "content_display.xml") }
func TestSummary(t *testing.T)        { runTestcase(t, "summary.xml") }

func TestHardcoded(t *testing.T) {
	root := structure.NewBuilder().
		Name("root").
		SizeBytes(0x70).
		Child(addr.MustParse("0x32"), func(b *structure.Builder) {
			b.Name("child").SizeBytes(0x18)
		}).
		Build()
	child := root.Children[0].Node
	childAddr := addr.MustParse("0x32")

	hexdump := func(n *structure.Node, na addr.Address, depth int, begin, end string) token.Token {
		return token.Token{
			Class:    token.ClassHexdump,
			Extent:   addr.Between(addr.MustParse(begin), addr.MustParse(end)),
			Node:     n,
			NodeAddr: na,
			Depth:    depth,
			Newline:  true,
		}
	}
	blank := func(n *structure.Node, na addr.Address, depth int) token.Token {
		return token.Token{
			Class: token.ClassPunctuation, Punct: token.PunctEmpty,
			Node: n, NodeAddr: na, Depth: depth, Newline: true,
		}
	}
	title := func(n *structure.Node, na addr.Address, depth int) token.Token {
		return token.Token{
			Class: token.ClassTitle,
			Node:  n, NodeAddr: na, Depth: depth, Newline: true,
		}
	}

	expected := []token.Token{
		blank(root, addr.Address{}, 0),
		title(root, addr.Address{}, 0),
		hexdump(root, addr.Address{}, 1, "0x0", "0x10"),
		hexdump(root, addr.Address{}, 1, "0x10", "0x20"),
		hexdump(root, addr.Address{}, 1, "0x20", "0x30"),
		hexdump(root, addr.Address{}, 1, "0x30", "0x32"),
		blank(child, childAddr, 1),
		title(child, childAddr, 1),
		hexdump(child, childAddr, 2, "0x0", "0x10"),
		hexdump(child, childAddr, 2, "0x10", "0x18"),
		blank(child, childAddr, 1),
		hexdump(root, addr.Address{}, 1, "0x4a", "0x50"),
		hexdump(root, addr.Address{}, 1, "0x50", "0x60"),
		hexdump(root, addr.Address{}, 1, "0x60", "0x70"),
		blank(root, addr.Address{}, 0),
	}

	testForward(t, root, expected)
	testBackward(t, root, expected)
}

func TestStructurePath(t *testing.T) {
	tc := loadTestcase(t, "nesting.xml")
	tok := AtBeginning(tc.Root)

	grandchild := tc.Root.Children[0].Node.Children[0].Node
	for {
		got, ok := tok.NextPostincrement()
		if !ok {
			t.Fatal("never reached the grandchild's title")
		}
		if got.Class == token.ClassTitle && got.Node == grandchild {
			break
		}
	}

	if path := tok.StructurePath(); !path.Equal(structure.Path{0, 0}) {
		t.Errorf("expected path [0 0], got %v", path)
	}
}

func TestCloneIsIndependent(t *testing.T) {
	tc := loadTestcase(t, "simple.xml")
	tok := AtBeginning(tc.Root)
	for i := 0; i < 4; i++ {
		if _, ok := tok.NextPostincrement(); !ok {
			t.Fatal("stream ended early")
		}
	}

	clone := tok.Clone()
	if !clone.Equal(tok) {
		t.Fatal("clone should equal its source")
	}

	if _, ok := clone.NextPostincrement(); !ok {
		t.Fatal("stream ended early")
	}
	if clone.Equal(tok) {
		t.Error("advancing the clone should not affect the source")
	}
}

func TestPreincrementSkipsCurrentPosition(t *testing.T) {
	tc := loadTestcase(t, "nesting.xml")

	var post []token.Token
	cur := AtBeginning(tc.Root)
	for {
		tok, ok := cur.NextPostincrement()
		if !ok {
			break
		}
		post = append(post, tok)
	}

	var pre []token.Token
	cur = AtBeginning(tc.Root)
	for {
		tok, ok := cur.NextPreincrement()
		if !ok {
			break
		}
		pre = append(pre, tok)
	}

	// Preincrement generates after moving, so it never produces the token
	// at the starting position.
	if len(pre) != len(post)-1 {
		t.Fatalf("got %d preincrement tokens, want %d", len(pre), len(post)-1)
	}
	for i, tok := range pre {
		if !tok.Equal(post[i+1]) {
			t.Fatalf("token %d: got %v, want %v", i, tok, post[i+1])
		}
	}
}

func TestHitTopBottom(t *testing.T) {
	tc := loadTestcase(t, "simple.xml")

	tok := AtBeginning(tc.Root)
	if !tok.HitTop() || tok.HitBottom() {
		t.Error("cursor at beginning should be at the top only")
	}

	tok = AtEnd(tc.Root)
	if tok.HitTop() || !tok.HitBottom() {
		t.Error("cursor at end should be at the bottom only")
	}
}
