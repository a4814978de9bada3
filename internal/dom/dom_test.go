package dom

import (
	"bytes"
	"testing"

	"github.com/andybalholm/cascadia"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"
)

func render(t *testing.T, n *html.Node) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, html.Render(&buf, n))
	return buf.String()
}

func TestComments(t *testing.T) {
	doc, err := ParseString(`<html><body><!-- one --><div><p>x<!-- two --></p></div></body></html>`)
	require.NoError(t, err)

	comments, err := Comments(Root(doc))
	require.NoError(t, err)
	require.Len(t, comments, 2)
	assert.Equal(t, " one ", comments[0].Data)
	assert.Equal(t, " two ", comments[1].Data)
}

func TestReplaceWithText(t *testing.T) {
	doc, err := ParseString(`<body><p>a <b>bold <i>nested</i></b> z</p></body>`)
	require.NoError(t, err)

	b := doc.Find("b").Get(0)
	require.NoError(t, ReplaceWithText(b))

	p := doc.Find("p").Get(0)
	assert.Equal(t, "<p>a bold nested z</p>", render(t, p))
	assert.Len(t, Children(p), 3)
	assert.Nil(t, b.Parent)
}

func TestReplaceDetached(t *testing.T) {
	n := NewElement("div")
	assert.ErrorIs(t, Replace(n, NewText("x")), ErrDetached)
}

func TestClone(t *testing.T) {
	doc, err := ParseString(`<body><a href="x" class="c">see <b>this</b></a></body>`)
	require.NoError(t, err)

	orig := doc.Find("a").Get(0)
	c := Clone(orig)

	assert.Nil(t, c.Parent)
	assert.Equal(t, render(t, orig), render(t, c))

	SetAttr(c, "href", "y")
	href, _ := Attr(orig, "href")
	assert.Equal(t, "x", href, "clone must not share attributes with the original")
}

func TestCloneIntoRecordsCopies(t *testing.T) {
	doc, err := ParseString(`<body><a href="x"><span>s</span> tail</a></body>`)
	require.NoError(t, err)

	orig := doc.Find("a").Get(0)
	span := doc.Find("span").Get(0)
	copies := map[*html.Node]*html.Node{}
	c := CloneInto(orig, copies)

	assert.Len(t, copies, 4)
	assert.Same(t, c, copies[orig])
	require.Contains(t, copies, span)
	assert.Same(t, c.FirstChild, copies[span])
	assert.NotSame(t, span, copies[span])
}

func TestMoveChildrenAndCopyAttrs(t *testing.T) {
	doc, err := ParseString(`<body><div id="d" class="k">one<span>two</span>three</div></body>`)
	require.NoError(t, err)

	div := doc.Find("div").Get(0)
	p := NewElement("p")
	MoveChildren(div, p)
	CopyAttrs(div, p)

	assert.Nil(t, div.FirstChild)
	assert.Equal(t, `<p id="d" class="k">one<span>two</span>three</p>`, render(t, p))
}

func TestIsAttached(t *testing.T) {
	doc, err := ParseString(`<body><div><a><span>x</span></a></div></body>`)
	require.NoError(t, err)
	root := Root(doc)

	a := doc.Find("a").Get(0)
	span := doc.Find("span").Get(0)
	assert.True(t, IsAttached(span, root))

	Remove(a)
	assert.False(t, IsAttached(a, root))
	assert.False(t, IsAttached(span, root), "a node inside a removed subtree is not attached")
}

func TestHasDescendant(t *testing.T) {
	doc, err := ParseString(`<body><div id="a"><span>x</span></div><div id="b"><span><img src="i"></span></div></body>`)
	require.NoError(t, err)

	sel := cascadia.MustCompile("div, img")
	assert.False(t, HasDescendant(doc.Find("#a").Get(0), sel), "the node itself does not count")
	assert.True(t, HasDescendant(doc.Find("#b").Get(0), sel))
}

func TestPredicates(t *testing.T) {
	tests := []struct {
		name         string
		node         *html.Node
		wantText     bool
		wantAnchorOr bool
		wantTag      string
	}{
		{name: "text", node: NewText("x"), wantText: true, wantAnchorOr: true},
		{name: "anchor", node: NewElement("a"), wantAnchorOr: true, wantTag: "a"},
		{name: "paragraph", node: NewElement("p"), wantTag: "p"},
		{name: "comment", node: &html.Node{Type: html.CommentNode, Data: "c"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantText, IsText(tt.node))
			assert.Equal(t, tt.wantAnchorOr, IsAnchorOrText(tt.node))
			assert.Equal(t, tt.wantTag, TagName(tt.node))
		})
	}
}
