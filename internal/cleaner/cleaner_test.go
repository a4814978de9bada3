package cleaner

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrjoshuak/docclean/internal/dom"
)

const samplePage = `<html><head><title>T</title><style>.x{}</style></head>
<body class="home">
<header><nav>menu</nav></header>
<!-- tracking -->
<div id="content">
  <h1>Headline</h1>
  <div class="article-body">
    Lead text with <a href="/a">a link</a> inside.
    <p>First <b>bold</b> paragraph.</p>
    <div>Inner block text</div>
    <table><tbody><tr><td>cell</td></tr></tbody></table>
    Trailing text.
  </div>
  <div class="ad">buy</div>
  <div class="social-share">x</div>
</div>
<footer>f</footer>
</body></html>`

func newTestCleaner(t *testing.T) *Cleaner {
	t.Helper()
	c, err := New(zerolog.Nop())
	require.NoError(t, err)
	return c
}

func squash(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func TestCleanerNormalize(t *testing.T) {
	doc, err := dom.ParseString(samplePage)
	require.NoError(t, err)

	report, err := newTestCleaner(t).Normalize(doc)
	require.NoError(t, err)

	assert.Zero(t, doc.Find("header, footer, style, .ad, .social-share").Length())
	assert.Equal(t, 1, doc.Find("body.home").Length())
	assert.Equal(t, "T", doc.Find("title").Text())

	var tags, texts []string
	doc.Find(".article-body").Children().Each(func(_ int, s *goquery.Selection) {
		tags = append(tags, goquery.NodeName(s))
		texts = append(texts, squash(s.Text()))
	})
	assert.Equal(t, []string{"p", "p", "p", "table", "p"}, tags)
	assert.Equal(t, []string{
		"Lead text with a link inside.",
		"First bold paragraph.",
		"Inner block text",
		"cell",
		"Trailing text.",
	}, texts)
	assert.Equal(t, 1, doc.Find(".article-body > p > a[href='/a']").Length())

	assert.Equal(t, 1, report.CommentsRemoved)
	assert.Equal(t, 1, report.ElementsReplaced)
	assert.Equal(t, 5, report.ElementsRemoved)
	assert.Equal(t, 2, report.ContainersSplit)
	assert.Equal(t, 1, report.ContainersReplaced)
	assert.Equal(t, 3, report.ParagraphsCreated)
	assert.Zero(t, report.ContainerFailures)
}

func TestCleanerIdempotent(t *testing.T) {
	c := newTestCleaner(t)
	doc, err := dom.ParseString(samplePage)
	require.NoError(t, err)

	_, err = c.Normalize(doc)
	require.NoError(t, err)
	first, err := doc.Html()
	require.NoError(t, err)

	report, err := c.Normalize(doc)
	require.NoError(t, err)
	second, err := doc.Html()
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Zero(t, report.ElementsRemoved)
	assert.Zero(t, report.ElementsReplaced)
	assert.Zero(t, report.ParagraphsCreated)
}

func TestCleanerNoDocument(t *testing.T) {
	_, err := newTestCleaner(t).Normalize(nil)
	assert.ErrorIs(t, err, ErrNoDocument)
}

func TestCleanerFilterRunsBeforeNormalizer(t *testing.T) {
	// Once the emphasis is flattened the div has no block descendant left and
	// is replaced as a whole.
	doc, err := dom.ParseString(`<html><body><div class="story">a <b>b</b> c</div></body></html>`)
	require.NoError(t, err)

	_, err = newTestCleaner(t).Normalize(doc)
	require.NoError(t, err)

	assert.Equal(t, `<p class="story">a b c</p>`, bodyHTML(t, doc))
}
