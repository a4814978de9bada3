package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	yaml "gopkg.in/yaml.v3"

	"github.com/mrjoshuak/docclean"
)

// OutputFormat represents the supported output formats for the cleaned content.
type OutputFormat string

const (
	FormatJSON     OutputFormat = "json"
	FormatHTML     OutputFormat = "html"
	FormatText     OutputFormat = "text"
	FormatMarkdown OutputFormat = "markdown"
)

// extension returns the file extension used for outputs in this format.
func (f OutputFormat) extension() string {
	switch f {
	case FormatHTML:
		return ".html"
	case FormatText:
		return ".txt"
	case FormatMarkdown:
		return ".md"
	default:
		return ".json"
	}
}

// fileConfig is the YAML configuration file schema. Every field is optional;
// pointers distinguish "unset" from an explicit false.
type fileConfig struct {
	Format        string        `yaml:"format"`
	Output        string        `yaml:"output"`
	OutputDir     string        `yaml:"outputDir"`
	Sanitize      *bool         `yaml:"sanitize"`
	Indexes       *bool         `yaml:"indexes"`
	Digests       *bool         `yaml:"digests"`
	Compact       *bool         `yaml:"compact"`
	Verbose       *bool         `yaml:"verbose"`
	Timeout       time.Duration `yaml:"timeout"`
	MaxBufferSize int           `yaml:"maxBufferSize"`
	ContentType   string        `yaml:"contentType"`
}

// loadConfigFile reads a YAML configuration file.
func loadConfigFile(path string) (fileConfig, error) {
	var fc fileConfig
	b, err := os.ReadFile(path)
	if err != nil {
		return fc, err
	}
	if err := yaml.Unmarshal(b, &fc); err != nil {
		return fc, fmt.Errorf("parse yaml: %w", err)
	}
	return fc, nil
}

// cliConfig holds the effective settings after flags and the config file
// have been merged.
type cliConfig struct {
	configPath    string
	format        string
	output        string
	outputDir     string
	sanitize      bool
	indexes       bool
	digests       bool
	compact       bool
	verbose       bool
	timeout       time.Duration
	maxBufferSize int
	contentType   string
}

func defaultCLIConfig() *cliConfig {
	defaults := docclean.DefaultOptions()
	return &cliConfig{
		format:        string(FormatJSON),
		timeout:       defaults.Timeout,
		maxBufferSize: defaults.MaxBufferSize,
		contentType:   defaults.ContentType,
	}
}

// apply overlays values from the config file for every setting whose flag
// was not given explicitly on the command line.
func (c *cliConfig) apply(fc fileConfig, changed func(flag string) bool) {
	if !changed("format") && fc.Format != "" {
		c.format = fc.Format
	}
	if !changed("output") && fc.Output != "" {
		c.output = fc.Output
	}
	if !changed("output-dir") && fc.OutputDir != "" {
		c.outputDir = fc.OutputDir
	}
	if !changed("sanitize") && fc.Sanitize != nil {
		c.sanitize = *fc.Sanitize
	}
	if !changed("indexes") && fc.Indexes != nil {
		c.indexes = *fc.Indexes
	}
	if !changed("digests") && fc.Digests != nil {
		c.digests = *fc.Digests
	}
	if !changed("compact") && fc.Compact != nil {
		c.compact = *fc.Compact
	}
	if !changed("verbose") && fc.Verbose != nil {
		c.verbose = *fc.Verbose
	}
	if !changed("timeout") && fc.Timeout > 0 {
		c.timeout = fc.Timeout
	}
	if !changed("max-buffer-size") && fc.MaxBufferSize > 0 {
		c.maxBufferSize = fc.MaxBufferSize
	}
	if !changed("content-type") && fc.ContentType != "" {
		c.contentType = fc.ContentType
	}
}

// outputFormat validates and returns the configured format.
func (c *cliConfig) outputFormat() (OutputFormat, error) {
	format := OutputFormat(strings.ToLower(c.format))
	switch format {
	case FormatJSON, FormatHTML, FormatText, FormatMarkdown:
		return format, nil
	default:
		return "", fmt.Errorf("invalid output format %q: must be one of json, html, text, markdown", c.format)
	}
}

// options translates the settings into cleaner options.
func (c *cliConfig) options(logger zerolog.Logger) []docclean.Option {
	format, _ := c.outputFormat()
	return []docclean.Option{
		docclean.WithLogger(logger),
		docclean.WithSanitize(c.sanitize),
		docclean.WithNodeIndexes(c.indexes),
		docclean.WithContentDigests(c.digests),
		docclean.WithMarkdown(format == FormatMarkdown),
		docclean.WithTimeout(c.timeout),
		docclean.WithMaxBufferSize(c.maxBufferSize),
		docclean.WithContentType(c.contentType),
	}
}
