package docclean

import (
	"github.com/mrjoshuak/docclean/types"
)

// Block represents a block of text with optional metadata.
// It is used to store the paragraphs of a cleaned document as plain text,
// with optional node index information for tracking the source HTML elements.
type Block = types.Block

// Result is the output of cleaning one document: its title, the cleaned body
// HTML, the plain text blocks, optional Markdown and the cleaning report.
type Result = types.Result

// Report counts what the cleaner removed, flattened and rewrote.
type Report = types.Report

// Options configures cleaning and rendering.
type Options = types.Options

// DefaultOptions returns the default options.
func DefaultOptions() Options {
	return types.DefaultOptions()
}

// BuildInfo contains version and build information for the docclean library.
type BuildInfo = types.BuildInfo

// GetBuildInfo returns the current version information for the docclean library.
func GetBuildInfo() BuildInfo {
	return types.GetBuildInfo()
}

// Version is the current version of the docclean library.
var Version = types.Version

// Name is the name of the docclean library.
var Name = types.Name
