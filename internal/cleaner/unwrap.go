package cleaner

import (
	"github.com/andybalholm/cascadia"
	"golang.org/x/net/html"

	"github.com/mrjoshuak/docclean/internal/dom"
	"github.com/mrjoshuak/docclean/types"
)

// unwrapEmphasis flattens inline formatting elements that hold no image.
func unwrapEmphasis(root *html.Node, report *types.Report) error {
	return flattenMatches(root, selEmphasis, report, func(n *html.Node) bool {
		return !dom.HasDescendant(n, selImage)
	})
}

// unwrapDropCaps flattens decorative drop-cap wrappers.
func unwrapDropCaps(root *html.Node, report *types.Report) error {
	return flattenMatches(root, selDropCaps, report, nil)
}

// unwrapParagraphSpans flattens spans sitting directly inside a paragraph.
func unwrapParagraphSpans(root *html.Node, report *types.Report) error {
	return flattenMatches(root, selParaSpans, report, nil)
}

// flattenMatches replaces every attached match of sel that passes keep with
// a single text node holding its text content. Matches nested inside an
// element flattened earlier in the same call are already gone and skipped.
func flattenMatches(root *html.Node, sel cascadia.Selector, report *types.Report, keep func(*html.Node) bool) error {
	for _, n := range sel.MatchAll(root) {
		if !dom.IsAttached(n, root) {
			continue
		}
		if keep != nil && !keep(n) {
			continue
		}
		if err := dom.ReplaceWithText(n); err != nil {
			return WrapFilterError(err, "flattenMatches", dom.TagName(n))
		}
		report.ElementsReplaced++
	}
	return nil
}
