// Package types provides the core data structures for the docclean library.
package types

import "time"

// Block represents a block of text with optional metadata.
// It is used to store the paragraphs of a cleaned document as plain text,
// with optional node index information for tracking the source HTML elements.
type Block struct {
	Text      string `json:"text"`
	NodeIndex string `json:"node_index,omitempty"`
}

// Report counts what one normalization run did to a document.
type Report struct {
	CommentsRemoved    int `json:"comments_removed"`
	ElementsRemoved    int `json:"elements_removed"`
	ElementsReplaced   int `json:"elements_replaced"`
	ContainersReplaced int `json:"containers_replaced"`
	ContainersSplit    int `json:"containers_split"`
	ContainersSkipped  int `json:"containers_skipped"`
	ContainerFailures  int `json:"container_failures"`
	ParagraphsCreated  int `json:"paragraphs_created"`
}

// Result is the output of cleaning one document.
type Result struct {
	Title     string  `json:"title"`
	Content   string  `json:"content"`
	PlainText []Block `json:"plain_text"`
	Markdown  string  `json:"markdown,omitempty"`
	Report    Report  `json:"report"`
}

// Options configures cleaning and rendering.
type Options struct {
	Sanitize       bool          // Run the rendered HTML through an HTML sanitizer
	Markdown       bool          // Also render the cleaned content as Markdown
	NodeIndexes    bool          // Add data-node-index attributes
	ContentDigests bool          // Add data-content-digest attributes to leaf blocks
	ContentType    string        // Content-Type used to detect the input charset
	MaxBufferSize  int           // Maximum input size in bytes
	Timeout        time.Duration // Timeout for one document
}

// DefaultOptions returns the default options.
// Sanitization, Markdown, node indexes and content digests are disabled,
// input is limited to 5MB and one document may take 30 seconds.
func DefaultOptions() Options {
	return Options{
		ContentType:   "text/html; charset=utf-8",
		MaxBufferSize: 5 * 1024 * 1024,
		Timeout:       time.Second * 30,
	}
}
