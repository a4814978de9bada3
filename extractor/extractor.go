// Package extractor renders a cleaned document into the output forms callers
// consume: body HTML, plain text blocks and Markdown.
// It never changes the structure produced by the cleaner; it only adds the
// optional data-node-index and data-content-digest attributes.
package extractor

import (
	"errors"
	"fmt"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/strikethrough"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/table"
	"github.com/PuerkitoBio/goquery"
	"github.com/microcosm-cc/bluemonday"

	"github.com/mrjoshuak/docclean/internal/dom"
	"github.com/mrjoshuak/docclean/types"
)

// ErrNoDocument is returned when there is nothing to render.
var ErrNoDocument = errors.New("no document to render")

// Renderer turns normalized documents into results. The zero value is not
// usable; create one with NewRenderer. A Renderer is safe for concurrent use.
type Renderer struct {
	markdown *converter.Converter
	policy   *bluemonday.Policy
}

// NewRenderer builds a Renderer with the Markdown converter and the
// sanitization policy set up.
func NewRenderer() *Renderer {
	return &Renderer{
		markdown: converter.NewConverter(
			converter.WithEscapeMode(converter.EscapeModeSmart),
			converter.WithPlugins(
				base.NewBasePlugin(),
				commonmark.NewCommonmarkPlugin(
					commonmark.WithEmDelimiter("_"),
					commonmark.WithHorizontalRule("---"),
					commonmark.WithLinkEmptyContentBehavior(commonmark.LinkBehaviorSkip),
					commonmark.WithLinkEmptyHrefBehavior(commonmark.LinkBehaviorSkip),
				),
				strikethrough.NewStrikethroughPlugin(),
				table.NewTablePlugin(),
			),
		),
		policy: sanitizer(),
	}
}

// sanitizer is [bluemonday.UGCPolicy] that also keeps the annotation
// attributes added by the renderer.
func sanitizer() *bluemonday.Policy {
	policy := bluemonday.UGCPolicy()
	policy.AllowAttrs(nodeIndexAttr, contentDigestAttr).Globally()
	return policy
}

// Render produces the result for doc. Annotations requested in opts are
// written into doc before the body is serialized. Report is left zero for
// the caller to fill in.
func (r *Renderer) Render(doc *goquery.Document, opts *types.Options) (*types.Result, error) {
	root := dom.Root(doc)
	if root == nil {
		return nil, ErrNoDocument
	}
	if opts == nil {
		defaults := types.DefaultOptions()
		opts = &defaults
	}

	body := doc.Find("body")
	if body.Length() == 0 {
		body = doc.Selection
	}

	if opts.NodeIndexes {
		AddNodeIndexes(body, "0")
	}
	if opts.ContentDigests {
		AddContentDigests(body)
	}

	content, err := body.Html()
	if err != nil {
		return nil, fmt.Errorf("rendering body: %w", err)
	}
	if opts.Sanitize {
		content = r.policy.Sanitize(content)
	}

	result := &types.Result{
		Title:     Title(root),
		Content:   content,
		PlainText: TextBlocks(body),
	}

	if opts.Markdown {
		md, err := r.markdown.ConvertString(content)
		if err != nil {
			return nil, fmt.Errorf("converting to markdown: %w", err)
		}
		result.Markdown = md
	}

	return result, nil
}
