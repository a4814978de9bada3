package docclean_test

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrjoshuak/docclean"
)

func TestCleanHTML(t *testing.T) {
	result, err := docclean.New().CleanHTML(examplePage, nil)
	require.NoError(t, err)

	assert.Equal(t, "Article Title", result.Title)
	assert.NotContains(t, result.Content, "Buy now")
	assert.NotContains(t, result.Content, "Copyright")
	assert.Len(t, result.PlainText, 2)
	assert.Empty(t, result.Markdown)

	assert.Equal(t, 3, result.Report.ElementsRemoved)
	assert.Equal(t, 1, result.Report.ContainersSplit)
	assert.Equal(t, 1, result.Report.ParagraphsCreated)
}

func TestOptions(t *testing.T) {
	c := docclean.New(
		docclean.WithContentDigests(true),
		docclean.WithNodeIndexes(true),
		docclean.WithSanitize(true),
		docclean.WithMarkdown(true),
		docclean.WithTimeout(time.Second*5),
	)

	result, err := c.CleanHTML(examplePage, nil)
	require.NoError(t, err)

	assert.Contains(t, result.Content, "data-content-digest")
	assert.Contains(t, result.Content, "data-node-index")
	assert.Contains(t, result.Markdown, "Second paragraph.")
	for _, block := range result.PlainText {
		assert.NotEmpty(t, block.NodeIndex)
	}
}

func TestExplicitOptionsOverrideDefaults(t *testing.T) {
	c := docclean.New(docclean.WithMarkdown(true))

	opts := docclean.DefaultOptions()
	result, err := c.CleanHTML(examplePage, &opts)
	require.NoError(t, err)
	assert.Empty(t, result.Markdown)
}

func TestDocumentTooLarge(t *testing.T) {
	c := docclean.New(docclean.WithMaxBufferSize(16))

	_, err := c.CleanHTML(examplePage, nil)
	assert.ErrorIs(t, err, docclean.ErrDocumentLarge)

	_, err = c.CleanReader(strings.NewReader(examplePage), nil)
	assert.ErrorIs(t, err, docclean.ErrDocumentLarge)

	result, err := c.CleanReader(strings.NewReader("<p>tiny</p>"), nil)
	require.NoError(t, err)
	assert.Equal(t, "<p>tiny</p>", result.Content)
}

func TestTimeout(t *testing.T) {
	large := "<html><body>" +
		strings.Repeat(`<div>text <a href="/x">link</a> more<p>para</p><span>s</span></div>`, 20000) +
		"</body></html>"
	c := docclean.New(
		docclean.WithTimeout(time.Nanosecond),
		docclean.WithMaxBufferSize(0),
	)

	_, err := c.CleanHTML(large, nil)
	assert.ErrorIs(t, err, docclean.ErrTimeout)

	// Zero disables the timeout.
	result, err := c.CleanHTML(large, &docclean.Options{})
	require.NoError(t, err)
	assert.NotEmpty(t, result.Content)
}

func TestCleanReaderCharset(t *testing.T) {
	latin1 := []byte("<html><body><div>caf\xe9</div></body></html>")

	c := docclean.New(docclean.WithContentType("text/html; charset=iso-8859-1"))
	result, err := c.CleanReader(bytes.NewReader(latin1), nil)
	require.NoError(t, err)
	assert.Equal(t, "<p>café</p>", result.Content)
}

func TestCleanReaderMetaCharset(t *testing.T) {
	latin1 := []byte(`<html><head><meta charset="iso-8859-1"></head><body><p>na\xefve</p></body></html>`)

	result, err := docclean.New(docclean.WithContentType("text/html")).CleanReader(bytes.NewReader(latin1), nil)
	require.NoError(t, err)
	require.Len(t, result.PlainText, 1)
	assert.Equal(t, "naïve", result.PlainText[0].Text)
}

func TestLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf).Level(zerolog.DebugLevel)

	_, err := docclean.New(docclean.WithLogger(logger)).CleanHTML(examplePage, nil)
	require.NoError(t, err)

	assert.Contains(t, buf.String(), `"message":"document normalized"`)
	assert.Contains(t, buf.String(), `"message":"document cleaned"`)
}

func TestNormalizeNilDocument(t *testing.T) {
	_, err := docclean.New().Normalize(nil)
	assert.Error(t, err)
}

func TestBuildInfo(t *testing.T) {
	info := docclean.GetBuildInfo()
	assert.Equal(t, docclean.Version, info.Version)
	assert.Equal(t, "docclean", info.Name)
	assert.NotEmpty(t, info.GoVersion)
}
