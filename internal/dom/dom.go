// Package dom wraps the golang.org/x/net/html node model with the handful of
// query and mutation primitives the cleaning pipeline needs. Queries go through
// goquery/cascadia (CSS) and htmlquery (XPath); mutations operate directly on
// *html.Node so callers control exactly when the tree changes.
package dom

import (
	"errors"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/cascadia"
	"github.com/antchfx/htmlquery"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// ErrDetached is returned when a mutation targets a node that is no longer
// part of a tree.
var ErrDetached = errors.New("node is detached from the document")

// commentsXPath selects every comment node below the context node.
const commentsXPath = "//comment()"

// Parse reads an HTML document.
func Parse(r io.Reader) (*goquery.Document, error) {
	return goquery.NewDocumentFromReader(r)
}

// ParseString reads an HTML document from a string.
func ParseString(s string) (*goquery.Document, error) {
	return Parse(strings.NewReader(s))
}

// Root returns the document node of doc, or nil.
func Root(doc *goquery.Document) *html.Node {
	if doc == nil || len(doc.Nodes) == 0 {
		return nil
	}
	return doc.Nodes[0]
}

// Comments returns all comment nodes below root in document order.
func Comments(root *html.Node) ([]*html.Node, error) {
	if root == nil {
		return nil, nil
	}
	return htmlquery.QueryAll(root, commentsXPath)
}

// NewElement creates a detached element node.
func NewElement(tag string) *html.Node {
	return &html.Node{
		Type:     html.ElementNode,
		Data:     tag,
		DataAtom: atom.Lookup([]byte(tag)),
	}
}

// NewText creates a detached text node.
func NewText(s string) *html.Node {
	return &html.Node{Type: html.TextNode, Data: s}
}

// Remove detaches n from its parent. Removing a detached node is a no-op.
func Remove(n *html.Node) {
	if n != nil && n.Parent != nil {
		n.Parent.RemoveChild(n)
	}
}

// Replace puts replacement at the position old occupies and detaches old.
// A replacement that still has a parent is detached from it first.
func Replace(old, replacement *html.Node) error {
	if old == nil || old.Parent == nil {
		return ErrDetached
	}
	if replacement.Parent != nil {
		Remove(replacement)
	}
	old.Parent.InsertBefore(replacement, old)
	old.Parent.RemoveChild(old)
	return nil
}

// ReplaceWithText substitutes a text node holding the flattened text of n
// for n itself.
func ReplaceWithText(n *html.Node) error {
	return Replace(n, NewText(TextContent(n)))
}

// Clone returns a deep, detached copy of n.
func Clone(n *html.Node) *html.Node {
	return CloneInto(n, nil)
}

// CloneInto is Clone that also records every copied node in copies, keyed by
// its original. A nil map records nothing.
func CloneInto(n *html.Node, copies map[*html.Node]*html.Node) *html.Node {
	c := &html.Node{
		Type:      n.Type,
		DataAtom:  n.DataAtom,
		Data:      n.Data,
		Namespace: n.Namespace,
		Attr:      make([]html.Attribute, len(n.Attr)),
	}
	copy(c.Attr, n.Attr)
	if copies != nil {
		copies[n] = c
	}
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		c.AppendChild(CloneInto(child, copies))
	}
	return c
}

// MoveChildren moves every child of from to the end of to, keeping order.
func MoveChildren(from, to *html.Node) {
	for child := from.FirstChild; child != nil; {
		next := child.NextSibling
		from.RemoveChild(child)
		to.AppendChild(child)
		child = next
	}
}

// CopyAttrs copies every attribute of from onto to, overwriting same-named
// attributes.
func CopyAttrs(from, to *html.Node) {
	for _, a := range from.Attr {
		SetAttr(to, a.Key, a.Val)
	}
}

// SetAttr sets or adds an attribute on n.
func SetAttr(n *html.Node, key, val string) {
	for i := range n.Attr {
		if n.Attr[i].Namespace == "" && n.Attr[i].Key == key {
			n.Attr[i].Val = val
			return
		}
	}
	n.Attr = append(n.Attr, html.Attribute{Key: key, Val: val})
}

// Attr returns the value of the named attribute and whether it is present.
func Attr(n *html.Node, key string) (string, bool) {
	if n == nil {
		return "", false
	}
	for _, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

// TagName returns the lowercase tag name of an element, or "" for other nodes.
func TagName(n *html.Node) string {
	if n == nil || n.Type != html.ElementNode {
		return ""
	}
	return strings.ToLower(n.Data)
}

// IsElement reports whether n is an element with the given tag.
func IsElement(n *html.Node, tag string) bool {
	return TagName(n) == tag
}

// IsText reports whether n is a text node.
func IsText(n *html.Node) bool {
	return n != nil && n.Type == html.TextNode
}

// IsAnchorOrText reports whether n is a text node or an <a> element.
func IsAnchorOrText(n *html.Node) bool {
	return IsText(n) || IsElement(n, "a")
}

// TextContent concatenates the data of every text node below n.
func TextContent(n *html.Node) string {
	if n == nil {
		return ""
	}
	if n.Type == html.TextNode {
		return n.Data
	}
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(cur *html.Node) {
		if cur.Type == html.TextNode {
			b.WriteString(cur.Data)
			return
		}
		for c := cur.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return b.String()
}

// IsAttached reports whether root is an ancestor of n. A node inside a
// subtree that was detached earlier still has a parent, so walking up to the
// root is the only reliable liveness test.
func IsAttached(n, root *html.Node) bool {
	if n == nil || root == nil {
		return false
	}
	for cur := n.Parent; cur != nil; cur = cur.Parent {
		if cur == root {
			return true
		}
	}
	return false
}

// Children returns the direct children of n as a slice.
func Children(n *html.Node) []*html.Node {
	var out []*html.Node
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		out = append(out, c)
	}
	return out
}

// HasDescendant reports whether any node strictly below n satisfies sel.
func HasDescendant(n *html.Node, sel cascadia.Selector) bool {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if sel.MatchFirst(c) != nil {
			return true
		}
	}
	return false
}
