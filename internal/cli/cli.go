package cli

import (
	"fmt"
	"io"
	"log/slog"

	"ccwc/internal/config"
	"ccwc/internal/input"
	"ccwc/internal/measure"
	"ccwc/internal/types"

	"github.com/spf13/pflag"
)

const (
	Name    = "ccwc"
	Version = "1.0"
	About   = "WC in Go"
)

// Options is the parsed command line.
type Options struct {
	Requested  types.Set
	Path       string
	Format     string // empty means the configured format
	ConfigPath string
	Decompress bool
	Verbose    bool
	Help       bool
	Version    bool
}

func newFlagSet(opts *Options) (*pflag.FlagSet, map[types.Kind]*bool) {
	flags := pflag.NewFlagSet(Name, pflag.ContinueOnError)
	flags.SetOutput(io.Discard)
	flags.Usage = func() {}
	flags.SortFlags = false

	kinds := map[types.Kind]*bool{
		types.Bytes: flags.BoolP("bytes", "c", false, "print the byte counts"),
		types.Chars: flags.BoolP("chars", "m", false, "print the character counts"),
		types.Lines: flags.BoolP("lines", "l", false, "print the newline counts"),
		types.Words: flags.BoolP("words", "w", false, "print the word counts"),
	}

	flags.StringVar(&opts.Format, "format", "", "output format: text, json or csv (default from config, text)")
	flags.StringVar(&opts.ConfigPath, "config", "", "read settings from this TOML `file`")
	flags.BoolVarP(&opts.Decompress, "decompress", "z", false, "decode gzip or zstd compressed input")
	flags.BoolVarP(&opts.Verbose, "verbose", "v", false, "log progress to standard error")
	flags.BoolVarP(&opts.Help, "help", "h", false, "print help")
	flags.BoolVarP(&opts.Version, "version", "V", false, "print version")

	return flags, kinds
}

// ParseArgs parses command-line arguments (without the program name).
func ParseArgs(args []string) (Options, error) {
	var opts Options

	flags, kinds := newFlagSet(&opts)

	err := flags.Parse(args)
	if err != nil {
		return Options{}, &UsageError{Err: err}
	}

	for k, set := range kinds {
		if *set {
			opts.Requested = opts.Requested.With(k)
		}
	}

	if opts.Format != "" && !measure.ValidFormat(opts.Format) {
		return Options{}, usageErrorf("unknown format: %s", opts.Format)
	}

	switch rest := flags.Args(); len(rest) {
	case 0:
	case 1:
		opts.Path = rest[0]
	default:
		return Options{}, usageErrorf("expected at most one file, got %d", len(rest))
	}

	return opts, nil
}

// Usage returns the help text.
func Usage() string {
	var opts Options

	flags, _ := newFlagSet(&opts)

	return fmt.Sprintf("%s %s - %s\n\nUsage: %s [OPTIONS] [FILE]\n\nWith no FILE, read standard input.\n\nOptions:\n%s",
		Name, Version, About, Name, flags.FlagUsages())
}

// NewLogger builds the stderr logger used for the run.
func NewLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}

	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// Run executes ccwc and returns the process exit code.
func Run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	opts, err := ParseArgs(args)
	if err != nil {
		return WriteErrorReport(stderr, err).ExitCode()
	}

	switch {
	case opts.Help:
		_, _ = io.WriteString(stdout, Usage())

		return ExitOK

	case opts.Version:
		_, _ = fmt.Fprintf(stdout, "%s %s\n", Name, Version)

		return ExitOK
	}

	log := NewLogger(stderr, opts.Verbose)

	line, err := Execute(opts, stdin, log)
	if err != nil {
		log.Debug("Run failed", "error", err)

		return WriteErrorReport(stderr, err).ExitCode()
	}

	_, err = fmt.Fprintln(stdout, line)
	if err != nil {
		return WriteErrorReport(stderr, fmt.Errorf("failed to write output: %w", err)).ExitCode()
	}

	return ExitOK
}

// Execute runs acquire, measure and render, returning the output line.
func Execute(opts Options, stdin io.Reader, log *slog.Logger) (string, error) {
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	cfg, err := config.Load(opts.ConfigPath, log.With("component", "config"))
	if err != nil {
		return "", &ConfigError{Err: err}
	}

	format := cfg.Format
	if opts.Format != "" {
		format = opts.Format
	}

	src, err := input.Acquire(opts.Path, stdin, input.Options{
		Decompress: opts.Decompress,
		Logger:     log,
	})
	if err != nil {
		return "", err
	}

	result := measure.MeasureWith(src.Content, opts.Requested, cfg.Default)

	log.Debug("Measured input", "requested", opts.Requested.String(), "effective", result.Set().String())

	return measure.Format(result, src.Name, format)
}
