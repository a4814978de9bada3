package docclean

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/rs/zerolog"
	"golang.org/x/net/html/charset"

	"github.com/mrjoshuak/docclean/extractor"
	"github.com/mrjoshuak/docclean/internal/cleaner"
	"github.com/mrjoshuak/docclean/internal/dom"
)

var (
	// ErrDocumentLarge is returned when the input exceeds Options.MaxBufferSize.
	ErrDocumentLarge = errors.New("document exceeds the maximum buffer size")

	// ErrTimeout is returned when cleaning takes longer than Options.Timeout.
	ErrTimeout = errors.New("cleaning timed out")
)

// Cleaner defines the interface for document cleaning.
type Cleaner interface {
	// CleanHTML cleans an HTML string and renders the result
	CleanHTML(html string, options *Options) (*Result, error)

	// CleanReader cleans an HTML document read from r
	CleanReader(r io.Reader, options *Options) (*Result, error)

	// Normalize cleans an already parsed document in place
	Normalize(doc *goquery.Document) (Report, error)
}

// settings is what the functional options modify.
type settings struct {
	options Options
	logger  zerolog.Logger
}

// Option represents a function that modifies the cleaner settings.
// This follows the functional options pattern for configuring the cleaner.
type Option func(*settings)

// WithLogger sets the logger used for stage summaries and container failures.
// The default logger discards everything.
func WithLogger(logger zerolog.Logger) Option {
	return func(s *settings) {
		s.logger = logger
	}
}

// WithSanitize enables or disables sanitization of the rendered HTML.
func WithSanitize(enable bool) Option {
	return func(s *settings) {
		s.options.Sanitize = enable
	}
}

// WithMarkdown enables or disables the Markdown rendering of the content.
func WithMarkdown(enable bool) Option {
	return func(s *settings) {
		s.options.Markdown = enable
	}
}

// WithContentDigests enables or disables content digest attributes.
// Content digests are SHA256 hashes of the normalized text of each p and li,
// which can be used to track content across versions of the same document.
func WithContentDigests(enable bool) Option {
	return func(s *settings) {
		s.options.ContentDigests = enable
	}
}

// WithNodeIndexes enables or disables node index attributes.
// Node indexes record the hierarchical position of every element in the
// cleaned document and are copied onto the plain text blocks.
func WithNodeIndexes(enable bool) Option {
	return func(s *settings) {
		s.options.NodeIndexes = enable
	}
}

// WithContentType sets the Content-Type used to pick the input charset in
// CleanReader, for example "text/html; charset=iso-8859-1".
func WithContentType(contentType string) Option {
	return func(s *settings) {
		s.options.ContentType = contentType
	}
}

// WithMaxBufferSize sets the maximum input size in bytes. Zero disables the limit.
func WithMaxBufferSize(size int) Option {
	return func(s *settings) {
		s.options.MaxBufferSize = size
	}
}

// WithTimeout sets the timeout for cleaning one document. Zero disables it.
func WithTimeout(timeout time.Duration) Option {
	return func(s *settings) {
		s.options.Timeout = timeout
	}
}

// documentCleaner is the concrete implementation of the Cleaner interface.
type documentCleaner struct {
	settings settings
	core     *cleaner.Cleaner
	renderer *extractor.Renderer
}

// New creates a new Cleaner with the provided options.
//
// Example:
//
//	c := docclean.New(
//	    docclean.WithMarkdown(true),
//	    docclean.WithTimeout(time.Second*10),
//	)
func New(opts ...Option) Cleaner {
	s := settings{
		options: DefaultOptions(),
		logger:  zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(&s)
	}

	core, err := cleaner.New(s.logger)
	if err != nil {
		// The built-in rule tables are constant; failing to compile them is a bug.
		panic(err)
	}

	return &documentCleaner{
		settings: s,
		core:     core,
		renderer: extractor.NewRenderer(),
	}
}

// CleanHTML parses html, cleans it and renders the result. The work runs in
// its own goroutine so that options.Timeout can be enforced.
func (c *documentCleaner) CleanHTML(html string, options *Options) (*Result, error) {
	if options == nil {
		options = &c.settings.options
	}
	if options.MaxBufferSize > 0 && len(html) > options.MaxBufferSize {
		return nil, fmt.Errorf("%w: %d bytes, limit %d", ErrDocumentLarge, len(html), options.MaxBufferSize)
	}

	// Buffered so the goroutine can always finish after a timeout.
	resultCh := make(chan struct {
		result *Result
		err    error
	}, 1)

	go func() {
		result, err := c.clean(html, options)
		resultCh <- struct {
			result *Result
			err    error
		}{result, err}
	}()

	if options.Timeout <= 0 {
		r := <-resultCh
		return r.result, r.err
	}

	select {
	case r := <-resultCh:
		return r.result, r.err
	case <-time.After(options.Timeout):
		c.settings.logger.Warn().Dur("timeout", options.Timeout).Msg("cleaning timed out")
		return nil, fmt.Errorf("%w after %v", ErrTimeout, options.Timeout)
	}
}

// CleanReader decodes r to UTF-8 using options.ContentType and any charset
// declared in the document, then cleans it like CleanHTML.
func (c *documentCleaner) CleanReader(r io.Reader, options *Options) (*Result, error) {
	if options == nil {
		options = &c.settings.options
	}

	decoded, err := charset.NewReader(r, options.ContentType)
	if err != nil {
		return nil, fmt.Errorf("detecting charset: %w", err)
	}

	if options.MaxBufferSize > 0 {
		decoded = io.LimitReader(decoded, int64(options.MaxBufferSize)+1)
	}
	data, err := io.ReadAll(decoded)
	if err != nil {
		return nil, fmt.Errorf("reading document: %w", err)
	}
	if options.MaxBufferSize > 0 && len(data) > options.MaxBufferSize {
		return nil, fmt.Errorf("%w: limit %d bytes", ErrDocumentLarge, options.MaxBufferSize)
	}

	return c.CleanHTML(string(data), options)
}

// Normalize runs the filter and the paragraph normalizer over doc in place.
func (c *documentCleaner) Normalize(doc *goquery.Document) (Report, error) {
	return c.core.Normalize(doc)
}

func (c *documentCleaner) clean(html string, options *Options) (*Result, error) {
	start := time.Now()

	doc, err := dom.ParseString(html)
	if err != nil {
		return nil, fmt.Errorf("parsing document: %w", err)
	}

	report, err := c.core.Normalize(doc)
	if err != nil {
		return nil, err
	}

	result, err := c.renderer.Render(doc, options)
	if err != nil {
		return nil, err
	}
	result.Report = report

	c.settings.logger.Debug().
		Str("title", result.Title).
		Int("blocks", len(result.PlainText)).
		Dur("elapsed", time.Since(start)).
		Msg("document cleaned")

	return result, nil
}
