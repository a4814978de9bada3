package extractor

import (
	"github.com/antchfx/htmlquery"
	"golang.org/x/net/html"

	"github.com/mrjoshuak/docclean/internal/simplifiers"
)

// titleSource is an XPath expression that may yield the document title. When
// attr is set the title is read from that attribute of the matched element.
type titleSource struct {
	xpath string
	attr  string
}

// titleSources are tried in order; the first non-empty value wins.
var titleSources = []titleSource{
	{xpath: "//head/title"},
	{xpath: `//meta[@property="og:title"]`, attr: "content"},
	{xpath: `//meta[@name="twitter:title"]`, attr: "content"},
	{xpath: "//h1"},
}

// Title returns the title of the document rooted at root, or "".
func Title(root *html.Node) string {
	if root == nil {
		return ""
	}
	for _, src := range titleSources {
		n := htmlquery.FindOne(root, src.xpath)
		if n == nil {
			continue
		}
		var value string
		if src.attr != "" {
			value = htmlquery.SelectAttr(n, src.attr)
		} else {
			value = htmlquery.InnerText(n)
		}
		if value = simplifiers.NormalizeText(value); value != "" {
			return value
		}
	}
	return ""
}
