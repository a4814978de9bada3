package cleaner

import (
	"github.com/rs/zerolog"
	"golang.org/x/net/html"

	"github.com/mrjoshuak/docclean/internal/dom"
	"github.com/mrjoshuak/docclean/internal/simplifiers"
	"github.com/mrjoshuak/docclean/types"
)

// Normalizer rewrites div, span and article containers so that loose text
// ends up inside <p> elements.
type Normalizer struct {
	logger  zerolog.Logger
	install func(c *html.Node, result []*html.Node) error
}

// NewNormalizer returns a Normalizer that reports container failures to logger.
func NewNormalizer(logger zerolog.Logger) *Normalizer {
	return &Normalizer{logger: logger, install: installChildren}
}

// Apply normalizes every container under root. The candidate list is taken
// once up front. A candidate that was swept into a paragraph of an earlier
// container is followed to its copy; one that is gone entirely is skipped.
// A container that fails is left as it was.
func (nz *Normalizer) Apply(root *html.Node, report *types.Report) {
	candidates := selContainers.MatchAll(root)
	copies := map[*html.Node]*html.Node{}
	for i, c := range candidates {
		c = liveCandidate(c, root, copies)
		if c == nil {
			report.ContainersSkipped++
			continue
		}
		if err := nz.normalize(c, copies, report); err != nil {
			report.ContainerFailures++
			nz.logger.Warn().
				Err(err).
				Int("container", i).
				Str("tag", dom.TagName(c)).
				Msg("container left unmodified")
		}
	}
}

// liveCandidate returns c if it is still in the tree, otherwise the attached
// copy that replaced it, or nil.
func liveCandidate(c, root *html.Node, copies map[*html.Node]*html.Node) *html.Node {
	for !dom.IsAttached(c, root) {
		next, ok := copies[c]
		if !ok {
			return nil
		}
		c = next
	}
	return c
}

func (nz *Normalizer) normalize(c *html.Node, copies map[*html.Node]*html.Node, report *types.Report) (err error) {
	defer recoverAsError(&err)

	if !dom.HasDescendant(c, selStructural) {
		if err := replaceWithParagraph(c); err != nil {
			return WrapNormalizeError(err, "normalize", "replace container")
		}
		report.ContainersReplaced++
		report.ParagraphsCreated++
		return nil
	}

	b := newParagraphBuilder(copies)
	result := b.build(dom.Children(c))
	if err := nz.install(c, result); err != nil {
		return WrapNormalizeError(err, "normalize", "install children")
	}
	report.ContainersSplit++
	report.ParagraphsCreated += b.created
	return nil
}

// replaceWithParagraph moves the children and attributes of c into a new
// <p> and puts that <p> where c was.
func replaceWithParagraph(c *html.Node) error {
	if c.Parent == nil {
		return dom.ErrDetached
	}
	p := dom.NewElement("p")
	dom.MoveChildren(c, p)
	dom.CopyAttrs(c, p)
	return dom.Replace(c, p)
}

// installChildren swaps the child list of c for result. Every node in result
// must be fresh or a current child of c; this is checked before anything is
// touched.
func installChildren(c *html.Node, result []*html.Node) error {
	for _, n := range result {
		if n.Parent != nil && n.Parent != c {
			return dom.ErrDetached
		}
	}
	for _, child := range dom.Children(c) {
		c.RemoveChild(child)
	}
	for _, n := range result {
		c.AppendChild(n)
	}
	return nil
}

type nodeSet map[*html.Node]struct{}

func (s nodeSet) add(n *html.Node) { s[n] = struct{}{} }

func (s nodeSet) has(n *html.Node) bool {
	_, ok := s[n]
	return ok
}

// paragraphBuilder computes the replacement child list of one container
// without modifying the tree. Swept siblings are cloned into the buffer and
// their originals recorded in consumed. Every cloned node is also recorded in
// copies.
type paragraphBuilder struct {
	result   []*html.Node
	buffer   []*html.Node
	consumed nodeSet
	absorbed nodeSet
	copies   map[*html.Node]*html.Node
	created  int
}

func newParagraphBuilder(copies map[*html.Node]*html.Node) *paragraphBuilder {
	return &paragraphBuilder{
		consumed: nodeSet{},
		absorbed: nodeSet{},
		copies:   copies,
	}
}

func (b *paragraphBuilder) build(children []*html.Node) []*html.Node {
	for _, child := range children {
		if b.absorbed.has(child) {
			continue
		}
		if dom.IsText(child) && !simplifiers.IsBlank(child.Data) {
			b.absorbRun(child)
			continue
		}
		// <p>, whitespace, and every block element close the open paragraph
		// and are kept as they are.
		b.flush()
		b.result = append(b.result, child)
	}
	b.flush()

	out := b.result[:0]
	for _, n := range b.result {
		if !b.consumed.has(n) {
			out = append(out, n)
		}
	}
	return out
}

// absorbRun adds the text node and its neighbouring anchors and text nodes
// to the buffer, so links stay in the same paragraph as the prose around them.
func (b *paragraphBuilder) absorbRun(text *html.Node) {
	start := text
	for prev := text.PrevSibling; prev != nil && dom.IsAnchorOrText(prev); prev = prev.PrevSibling {
		start = prev
	}
	for n := start; n != nil && (n == text || dom.IsAnchorOrText(n)); n = n.NextSibling {
		if n == text {
			b.buffer = append(b.buffer, dom.NewText(text.Data))
			b.absorbed.add(text)
			b.consumed.add(text)
			continue
		}
		if b.absorbed.has(n) {
			continue
		}
		b.absorbed.add(n)
		b.buffer = append(b.buffer, dom.CloneInto(n, b.copies))
		b.consumed.add(n)
	}
}

// flush wraps the buffer in a new <p> and appends it to the result.
func (b *paragraphBuilder) flush() {
	if len(b.buffer) == 0 {
		return
	}
	p := dom.NewElement("p")
	for _, n := range b.buffer {
		p.AppendChild(n)
	}
	b.result = append(b.result, p)
	b.buffer = nil
	b.created++
}
