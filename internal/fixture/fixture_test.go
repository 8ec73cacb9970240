package fixture

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/hexlist/internal/engine/addr"
	"github.com/dshills/hexlist/internal/engine/structure"
	"github.com/dshills/hexlist/internal/engine/token"
)

func TestParse(t *testing.T) {
	tc, err := Parse(strings.NewReader(`<testcase>
  <node name="root" size="0x10" title="minor" content="hexstring">
    <node name="kid" offset="0x4" size="0x4" children="summary" content="hexdump" pitch="0x8"/>
  </node>
  <tokens>
    <title node="root" nl="true"/>
    <indent>
      <hexstring node="root" begin="0x0" end="0x4" nl="true"/>
      <summlabel node="kid" nl="false"/>
    </indent>
  </tokens>
</testcase>`))
	require.NoError(t, err)

	root := tc.Root
	assert.Equal(t, "root", root.Props.Name)
	assert.Equal(t, structure.TitleMinor, root.Props.Title)
	assert.Equal(t, structure.ContentHexstring, root.Props.Content.Mode)
	assert.Equal(t, 0, root.Size.Compare(addr.Bytes(0x10)), "root size")

	require.Len(t, root.Children, 1)
	kid := root.Children[0]
	assert.Equal(t, "kid", kid.Node.Props.Name)
	assert.Equal(t, 0, kid.Offset.Compare(addr.MustParse("0x4")))
	assert.Equal(t, structure.ChildrenSummary, kid.Node.Props.Children)
	pitch, ok := kid.Node.Props.Content.PreferredPitch()
	require.True(t, ok)
	assert.Equal(t, 0, pitch.Compare(addr.Bytes(8)), "pitch")

	require.Len(t, tc.Expected, 3)
	assert.Equal(t, token.ClassTitle, tc.Expected[0].Class)
	assert.Equal(t, 0, tc.Expected[0].Depth)
	assert.Equal(t, token.ClassHexstring, tc.Expected[1].Class)
	assert.Equal(t, 1, tc.Expected[1].Depth)
	assert.True(t, tc.Expected[1].Extent.Equal(addr.Between(addr.Address{}, addr.MustParse("0x4"))))
	assert.Equal(t, token.ClassSummaryLabel, tc.Expected[2].Class)
	assert.Same(t, kid.Node, tc.Expected[2].Node)
	assert.Equal(t, 0, tc.Expected[2].NodeAddr.Compare(addr.MustParse("0x4")))
}

func TestParseRejectsUnknownNodeReference(t *testing.T) {
	_, err := Parse(strings.NewReader(`<testcase>
  <node name="root" size="0x10"/>
  <tokens><title node="ghost" nl="true"/></tokens>
</testcase>`))
	assert.Error(t, err)
}

func TestParseRejectsDuplicateNames(t *testing.T) {
	_, err := Parse(strings.NewReader(`<testcase>
  <node name="root" size="0x10">
    <node name="root" offset="0x0" size="0x4"/>
  </node>
  <tokens></tokens>
</testcase>`))
	assert.Error(t, err)
}

func TestParseRequiresStructureAndTokens(t *testing.T) {
	_, err := Parse(strings.NewReader(`<testcase><node name="root" size="0x10"/></testcase>`))
	assert.Error(t, err)

	_, err = Parse(strings.NewReader(`<testcase><tokens></tokens></testcase>`))
	assert.Error(t, err)
}
