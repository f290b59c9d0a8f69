package main

import (
	stderrors "errors" // Standard errors package
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/chzyer/readline"
	"github.com/mcncl/jsoncsv/converter"
	"github.com/mcncl/jsoncsv/internal/config"
	"github.com/mcncl/jsoncsv/internal/errors" // Custom errors package
	"github.com/mcncl/jsoncsv/internal/logging"
	"github.com/mcncl/jsoncsv/internal/models"
	"github.com/mcncl/jsoncsv/internal/parser"
)

// CLI defines the command-line interface
var CLI struct {
	Input       string `help:"Path to input JSON file. If not specified, reads from stdin." short:"i" type:"path"`
	Output      string `help:"Path to output CSV file. If not specified, writes to stdout." short:"o" type:"path"`
	Config      string `help:"Path to a YAML config file. Defaults to .jsoncsv.yml found in the current or a parent directory." short:"c" type:"path"`
	HeaderCase  string `help:"Header label style: keep, snake, screaming_snake, kebab, camel, lower_camel." name:"header-case"`
	Lenient     bool   `help:"Write empty output instead of failing when the input is not valid JSON." short:"l"`
	Debug       bool   `help:"Enable debug logging." short:"d"`
	LogFormat   string `help:"Log format: text or json." name:"log-format"`
	Version     bool   `help:"Show version information." short:"v"`
	Interactive bool   `help:"Run in interactive mode, allowing direct JSON input with Ctrl+D to process." short:"I"`
}

// Context holds the runtime context
type Context struct {
	Config *config.Config
	Logger *logging.Logger
}

// Version information
const (
	Version = "0.1.0"
)

func main() {
	parser := kong.Must(&CLI,
		kong.Name("jsoncsv"),
		kong.Description("A tool to convert JSON API responses to flat CSV"),
		kong.UsageOnError(),
	)

	// Check if no arguments provided and set interactive mode by default
	if len(os.Args) == 1 {
		CLI.Interactive = true
	}

	if _, err := parser.Parse(os.Args[1:]); err != nil {
		// Usage has already been shown by kong.UsageOnError()
		os.Exit(1)
	}

	if CLI.Version {
		fmt.Printf("jsoncsv version %s\n", Version)
		return
	}

	ctx, err := newContext()
	if err == nil {
		err = run(ctx)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", errors.UserFriendlyError(err))
		fmt.Fprintf(os.Stderr, "\nFor help, run: jsoncsv --help\n")
		os.Exit(1)
	}
}

// newContext resolves configuration from the config file and CLI flags
func newContext() (*Context, error) {
	configPath := CLI.Config
	if configPath == "" {
		configPath = config.FindConfigFile()
	}

	cfg, err := config.LoadConfigWithCLI(configPath, config.CLIOverrides{
		Input:      CLI.Input,
		Output:     CLI.Output,
		HeaderCase: CLI.HeaderCase,
		LogFormat:  CLI.LogFormat,
		Debug:      CLI.Debug,
		Lenient:    CLI.Lenient,
	})
	if err != nil {
		return nil, errors.NewConfigError("failed to load configuration", err)
	}

	logger := logging.New(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Output: os.Stderr,
	})
	if configPath != "" {
		logger.Debug("loaded config", "path", configPath)
	}

	return &Context{
		Config: cfg,
		Logger: logger,
	}, nil
}

// run executes the main program logic
func run(ctx *Context) error {
	if ctx.Config == nil {
		ctx.Config = config.NewConfig()
	}
	if ctx.Logger == nil {
		ctx.Logger = logging.Discard()
	}
	log := ctx.Logger

	// 1. Parse JSON input
	value, err := parseInput(ctx.Config)
	if err != nil {
		if ctx.Config.Lenient && isParseFailure(err) {
			log.Warn("input is not valid JSON, writing empty output", "error", err)
			return writeOutput(ctx.Config, "")
		}
		return err
	}
	log.Debug("parsed input", "kind", value.Kind().String())

	// 2. Convert
	conv := converter.New(converter.WithHeaderCase(string(ctx.Config.HeaderCase())))
	if err := conv.Err(); err != nil {
		return errors.NewConfigError("invalid header case", err)
	}
	result := conv.Run(value)
	log.Debug("extracted records", "shape", result.Shape, "records", result.Records)
	log.Debug("generated CSV", "columns", result.Columns, "rows", result.Records, "bytes", len(result.CSV))

	// 3. Output the result
	return writeOutput(ctx.Config, result.CSV)
}

// isParseFailure reports errors caused by the content of the input rather than
// by failing to read it
func isParseFailure(err error) bool {
	return stderrors.Is(err, errors.ErrInvalidJSON) ||
		stderrors.Is(err, errors.ErrEmptyInput) ||
		stderrors.Is(err, errors.ErrFileEmpty)
}

// parseInput reads JSON from file or stdin
func parseInput(cfg *config.Config) (models.Value, error) {
	if cfg.Input != "" {
		return parser.ParseFile(cfg.Input)
	}

	stdinInfo, err := os.Stdin.Stat()
	if err != nil {
		return nil, errors.NewInputError("failed to access stdin", err)
	}

	if (stdinInfo.Mode() & os.ModeCharDevice) != 0 {
		// Terminal is interactive (not piped)
		if CLI.Interactive {
			return readInteractiveInput()
		}
		return nil, errors.NewInputError("no input provided", errors.ErrNoInput)
	}

	jsonData, err := io.ReadAll(os.Stdin)
	if err != nil {
		return nil, errors.NewInputError("failed to read from stdin", err)
	}

	if len(jsonData) == 0 {
		return nil, errors.NewInputError("empty input received from stdin", errors.ErrEmptyInput)
	}

	return parser.ParseBytes(jsonData)
}

// writeOutput writes the CSV document to file or stdout, byte for byte
func writeOutput(cfg *config.Config, csvText string) error {
	if cfg.Output != "" {
		err := os.WriteFile(cfg.Output, []byte(csvText), 0644)
		if err != nil {
			return errors.NewOutputError(fmt.Sprintf("failed to write to file '%s'", cfg.Output), err)
		}
		fmt.Fprintf(os.Stderr, "CSV written to %s\n", cfg.Output)
		return nil
	}

	if _, err := io.WriteString(os.Stdout, csvText); err != nil {
		return errors.NewOutputError("failed to write to stdout", err)
	}
	return nil
}

// readInteractiveInput provides an interactive mode for users to paste JSON
// and signal completion with Ctrl+D (EOF)
func readInteractiveInput() (models.Value, error) {
	fmt.Fprintln(os.Stderr, "jsoncsv Interactive Mode")
	fmt.Fprintln(os.Stderr, "Paste your JSON below and press Ctrl+D (or Ctrl+Z on Windows) when done:")

	// Prompts go to stderr; stdout carries the CSV document.
	rl, err := readline.NewEx(&readline.Config{
		Prompt:       "> ",
		HistoryLimit: -1,
		Stdout:       os.Stderr,
		Stderr:       os.Stderr,
	})
	if err != nil {
		return nil, errors.NewInputError("failed to start interactive input", err)
	}
	defer func() { _ = rl.Close() }()

	jsonData, err := readLines(rl)
	if err != nil {
		return nil, err
	}

	if strings.TrimSpace(jsonData) == "" {
		return nil, errors.NewInputError("empty input received", errors.ErrEmptyInput)
	}

	fmt.Fprintln(os.Stderr, "\nProcessing JSON...")
	return parser.ParseString(jsonData)
}

// lineReader is the part of readline.Instance used by readLines
type lineReader interface {
	Readline() (string, error)
}

// readLines collects lines until EOF. Ctrl+C aborts the input.
func readLines(r lineReader) (string, error) {
	var sb strings.Builder
	for {
		line, err := r.Readline()
		switch {
		case err == nil:
			sb.WriteString(line)
			sb.WriteByte('\n')
		case stderrors.Is(err, io.EOF):
			return sb.String(), nil
		case stderrors.Is(err, readline.ErrInterrupt):
			return "", errors.NewInputError("interactive input cancelled", err)
		default:
			return "", errors.NewInputError("error reading input", err)
		}
	}
}
