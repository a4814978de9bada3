package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/mrjoshuak/docclean"
)

// rootCommand builds the docclean command with all flags and sub-commands bound.
func rootCommand() *cobra.Command {
	cfg := defaultCLIConfig()
	logger := zerolog.Nop()

	cmd := &cobra.Command{
		Use:   "docclean [files...]",
		Short: "Strip boilerplate from HTML and normalize paragraphs",
		Long: "docclean removes comments, scripts, page chrome and ad or social widgets from\n" +
			"HTML documents and rewrites the remaining containers so that running text sits\n" +
			"inside <p> elements. Files are read from the arguments, or from stdin when no\n" +
			"file or \"-\" is given.",
		Example: "  docclean article.html -o article.json\n" +
			"  docclean --format html article.html\n" +
			"  docclean --format markdown a.html b.html --output-dir ./cleaned\n" +
			"  cat article.html | docclean --format text",
		Version:      docclean.Version,
		Args:         cobra.ArbitraryArgs,
		SilenceUsage: true,
		CompletionOptions: cobra.CompletionOptions{
			HiddenDefaultCmd: true,
		},
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if cfg.configPath != "" {
				fc, err := loadConfigFile(cfg.configPath)
				if err != nil {
					return fmt.Errorf("failed to load configuration file: %w", err)
				}
				cfg.apply(fc, cmd.Flags().Changed)
			}
			if _, err := cfg.outputFormat(); err != nil {
				return err
			}
			logger = newLogger(cmd.ErrOrStderr(), cfg.verbose)
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return processAll(cmd, cfg, logger, args)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&cfg.format, "format", "f", cfg.format, "output format: json, html, text or markdown")
	flags.StringVarP(&cfg.output, "output", "o", "", "output file path (default: stdout)")
	flags.StringVar(&cfg.outputDir, "output-dir", "", "output directory for batch processing")
	flags.BoolVar(&cfg.sanitize, "sanitize", false, "sanitize the cleaned HTML")
	flags.BoolVar(&cfg.indexes, "indexes", false, "add data-node-index attributes")
	flags.BoolVar(&cfg.digests, "digests", false, "add data-content-digest attributes")
	flags.BoolVar(&cfg.compact, "compact", false, "output compact JSON without indentation")
	flags.DurationVar(&cfg.timeout, "timeout", cfg.timeout, "timeout for one document")
	flags.IntVar(&cfg.maxBufferSize, "max-buffer-size", cfg.maxBufferSize, "maximum input size in bytes")
	flags.StringVar(&cfg.contentType, "content-type", cfg.contentType, "content type used to detect the input charset")
	cmd.PersistentFlags().StringVarP(&cfg.configPath, "config", "c", "", "path to a YAML configuration file")
	cmd.PersistentFlags().BoolVarP(&cfg.verbose, "verbose", "v", false, "enable debug logging")

	cmd.AddCommand(versionCommand())

	return cmd
}

func versionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			info := docclean.GetBuildInfo()
			fmt.Fprintf(cmd.OutOrStdout(), "%s version %s (%s)\n", info.Name, info.Version, info.GoVersion)
		},
	}
}

func newLogger(w io.Writer, verbose bool) zerolog.Logger {
	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}).
		Level(level).
		With().
		Timestamp().
		Logger()
}

// processAll cleans every input. A failing input is logged and skipped; the
// returned error reports how many failed. An interrupt stops the run before
// the next input.
func processAll(cmd *cobra.Command, cfg *cliConfig, logger zerolog.Logger, inputs []string) error {
	if len(inputs) == 0 {
		inputs = []string{"-"}
	}
	format, err := cfg.outputFormat()
	if err != nil {
		return err
	}
	if cfg.output != "" && cfg.outputDir == "" && len(inputs) > 1 {
		logger.Warn().Msg("multiple inputs with a single output file, writing to stdout")
	}

	c := docclean.New(cfg.options(logger)...)

	ctx := cmd.Context()
	failed := 0
	for i, input := range inputs {
		if err := ctx.Err(); err != nil {
			logger.Warn().Int("remaining", len(inputs)-i).Msg("interrupted")
			return fmt.Errorf("stopped after %d of %d documents: %w", i, len(inputs), err)
		}
		if err := processOne(cmd, c, cfg, format, input, len(inputs)); err != nil {
			logger.Error().Err(err).Str("input", input).Msg("failed to clean document")
			failed++
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d documents failed", failed, len(inputs))
	}
	return nil
}

func processOne(cmd *cobra.Command, c docclean.Cleaner, cfg *cliConfig, format OutputFormat, input string, total int) error {
	var in io.Reader
	if input == "-" {
		in = cmd.InOrStdin()
	} else {
		file, err := os.Open(input)
		if err != nil {
			return fmt.Errorf("opening input: %w", err)
		}
		defer file.Close()
		in = file
	}

	result, err := c.CleanReader(in, nil)
	if err != nil {
		return err
	}

	data, err := renderOutput(result, format, cfg.compact)
	if err != nil {
		return err
	}

	outputPath := resolveOutputPath(cfg, format, input, total)
	if outputPath == "" {
		_, err = fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return err
	}
	if dir := filepath.Dir(outputPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating output directory: %w", err)
		}
	}
	if err := os.WriteFile(outputPath, data, 0o644); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}
	return nil
}

// resolveOutputPath returns where the output for input goes, or "" for stdout.
func resolveOutputPath(cfg *cliConfig, format OutputFormat, input string, total int) string {
	if cfg.outputDir != "" && input != "-" {
		base := filepath.Base(input)
		name := strings.TrimSuffix(base, filepath.Ext(base))
		return filepath.Join(cfg.outputDir, name+format.extension())
	}
	if cfg.output != "" && total == 1 {
		return cfg.output
	}
	return ""
}

// renderOutput serializes result in the requested format.
func renderOutput(result *docclean.Result, format OutputFormat, compact bool) ([]byte, error) {
	switch format {
	case FormatHTML:
		return []byte(result.Content), nil
	case FormatMarkdown:
		return []byte(result.Markdown), nil
	case FormatText:
		texts := make([]string, len(result.PlainText))
		for i, block := range result.PlainText {
			texts[i] = block.Text
		}
		return []byte(strings.Join(texts, "\n\n")), nil
	default:
		var (
			data []byte
			err  error
		)
		if compact {
			data, err = json.Marshal(result)
		} else {
			data, err = json.MarshalIndent(result, "", "  ")
		}
		if err != nil {
			return nil, fmt.Errorf("converting result to JSON: %w", err)
		}
		return data, nil
	}
}
