package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/davecgh/go-spew/spew"
	"go.uber.org/zap"

	"github.com/recasehq/recase/internal/cache"
	"github.com/recasehq/recase/internal/config"
	"github.com/recasehq/recase/internal/cuid"
	"github.com/recasehq/recase/internal/errors"
	"github.com/recasehq/recase/internal/formatter"
	"github.com/recasehq/recase/internal/mapping"
	"github.com/recasehq/recase/internal/models"
	"github.com/recasehq/recase/internal/parser"
	"github.com/recasehq/recase/recase"
)

// CLI defines the command-line interface
var CLI struct {
	Input       string `help:"Path to input JSON file. If not specified, reads from stdin." short:"i" type:"path"`
	Output      string `help:"Path to output JSON file. If not specified, writes to stdout." short:"o" type:"path"`
	Direction   string `help:"Conversion direction: 'camel' (snake_case keys to camelCase) or 'snake' (camelCase keys to snake_case)." short:"d" default:"camel" enum:"camel,snake"`
	Projection  string `help:"Comma-separated camelCase field names; prints a snake_case field-selection map instead of converting input." short:"p"`
	Config      string `help:"Path to a .recase.yml config file. Searched for in parent directories when omitted." short:"c" type:"path"`
	MaxDepth    int    `help:"Maximum nesting depth before conversion fails." default:"1000"`
	Lenient     bool   `help:"On key collisions, overwrite deterministically instead of failing."`
	Indent      int    `help:"Pretty-print output with this many spaces per level. 0 means compact." default:"0"`
	GenID       bool   `help:"Print a fresh cuid and exit." name:"gen-id"`
	Slug        string `help:"Print a URL slug for the given title and exit."`
	Debug       bool   `help:"Enable debug logging and dump the parsed tree to stderr."`
	Version     bool   `help:"Show version information." short:"v"`
	Interactive bool   `help:"Run in interactive mode, allowing direct JSON input with Ctrl+D to process." short:"I"`
}

// Context holds the runtime context
type Context struct {
	Debug  bool
	Logger *zap.Logger
}

// Version information
const (
	Version = "0.1.0"
)

func main() {
	// Parse CLI arguments with Kong
	kparser := kong.Must(&CLI,
		kong.Name("recase"),
		kong.Description("Convert JSON object keys between snake_case and camelCase"),
		kong.UsageOnError(),
	)

	// Check if no arguments provided and set interactive mode by default
	if len(os.Args) == 1 {
		CLI.Interactive = true
	}

	_, err := kparser.Parse(os.Args[1:])
	if err != nil {
		// Usage is already shown by kong.UsageOnError()
		os.Exit(1)
	}

	// Show version and exit if requested
	if CLI.Version {
		fmt.Printf("recase version %s\n", Version)
		return
	}

	// One-shot id helpers, no input pipeline needed
	if CLI.GenID {
		fmt.Println(cuid.New())
		return
	}
	if CLI.Slug != "" {
		fmt.Println(cuid.Slugify(CLI.Slug))
		return
	}

	logger := zap.NewNop()
	if CLI.Debug {
		if dev, lerr := zap.NewDevelopment(); lerr == nil {
			logger = dev
		}
	}
	defer func() { _ = logger.Sync() }()

	if err := run(&Context{Debug: CLI.Debug, Logger: logger}); err != nil {
		// Use our custom error handling to provide user-friendly error messages
		fmt.Fprintf(os.Stderr, "%s\n", errors.UserFriendlyError(err))

		// Show help on error
		fmt.Fprintf(os.Stderr, "\nFor help, run: recase --help\n")

		os.Exit(1)
	}
}

// run executes the main program logic
func run(ctx *Context) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	// CLI flags override file configuration
	if CLI.MaxDepth != 1000 {
		cfg.Transform.MaxDepth = CLI.MaxDepth
	}
	if CLI.Lenient {
		cfg.Transform.Lenient = true
	}

	table, err := mapping.New(cfg.TablePairs())
	if err != nil {
		return err
	}
	mapper := recase.NewFromTable(table, cfg.Transform.MaxDepth, cfg.Transform.Lenient)

	out := formatter.NewIndented(CLI.Indent)

	// Projection mode: flat field list in, selection map out
	if CLI.Projection != "" {
		fields := splitFields(CLI.Projection)
		text, ferr := out.FormatProjection(mapper.Projection(fields))
		if ferr != nil {
			return ferr
		}
		return writeOutput(text)
	}

	direction, _ := models.ParseDirection(CLI.Direction)

	raw, err := readInput()
	if err != nil {
		return err
	}

	// Optional conversion-result cache, keyed by direction + input hash
	var resultCache cache.Cache
	var cacheKey string
	if cfg.Cache.Type != "" {
		resultCache, err = cache.New(cfg.Cache, ctx.Logger)
		if err != nil {
			return errors.NewCacheError("failed to initialize cache", err)
		}
		defer func() { _ = resultCache.Close() }()

		cacheKey = cache.KeyHash(direction.String() + ":" + raw)
		if data, cerr := resultCache.Get(context.Background(), cacheKey); cerr == nil {
			ctx.Logger.Debug("conversion served from cache", zap.String("key", cacheKey))
			return writeOutput(string(data))
		}
	}

	tree, err := parser.ParseString(raw)
	if err != nil {
		return err
	}

	if ctx.Debug {
		fmt.Fprintln(os.Stderr, "Parsed input tree:")
		spew.Fdump(os.Stderr, tree)
	}

	var converted models.JSONValue
	switch direction {
	case models.SnakeToCamel:
		converted, err = mapper.APIResponse(tree)
	default:
		converted, err = mapper.DBQuery(tree)
	}
	if err != nil {
		return err
	}

	text, err := out.Format(converted)
	if err != nil {
		return err
	}

	if resultCache != nil {
		if cerr := resultCache.Set(context.Background(), cacheKey, []byte(text), cfg.Cache.TTL()); cerr != nil {
			ctx.Logger.Warn("failed to cache conversion result", zap.Error(cerr))
		}
	}

	return writeOutput(text)
}

// loadConfig reads the config file given on the command line, or the
// nearest discovered one, falling back to defaults.
func loadConfig() (*config.Config, error) {
	path := CLI.Config
	if path == "" {
		path = config.FindConfigFile()
	}
	if path == "" {
		return config.NewConfig(), nil
	}
	return config.LoadConfig(path)
}

func splitFields(list string) []string {
	parts := strings.Split(list, ",")
	fields := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			fields = append(fields, trimmed)
		}
	}
	return fields
}

// readInput reads JSON text from file or stdin
func readInput() (string, error) {
	if CLI.Input != "" {
		data, err := os.ReadFile(CLI.Input)
		if err != nil {
			if os.IsNotExist(err) {
				return "", errors.NewInputError(fmt.Sprintf("file '%s' not found", CLI.Input), errors.ErrFileNotFound)
			}
			return "", errors.NewInputError(fmt.Sprintf("failed to read file '%s'", CLI.Input), err)
		}
		if len(data) == 0 {
			return "", errors.NewInputError(fmt.Sprintf("input file '%s' is empty", CLI.Input), errors.ErrFileEmpty)
		}
		return string(data), nil
	}

	// Check if stdin has data
	stdinInfo, err := os.Stdin.Stat()
	if err != nil {
		return "", errors.NewInputError("failed to access stdin", err)
	}

	// Interactive mode or piped input
	if (stdinInfo.Mode() & os.ModeCharDevice) != 0 {
		// Terminal is interactive (not piped)
		if CLI.Interactive {
			return readInteractiveInput()
		}
		// No data provided on stdin and not in interactive mode
		return "", errors.NewInputError("no input provided", errors.ErrNoInput)
	}

	// Read from stdin (piped input)
	jsonData, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", errors.NewInputError("failed to read from stdin", err)
	}

	if len(jsonData) == 0 {
		return "", errors.NewInputError("empty input received from stdin", errors.ErrEmptyInput)
	}

	return string(jsonData), nil
}

// writeOutput writes converted JSON to file or stdout
func writeOutput(text string) error {
	if CLI.Output != "" {
		// Write to file
		err := os.WriteFile(CLI.Output, []byte(text), 0644)
		if err != nil {
			return errors.NewOutputError(fmt.Sprintf("failed to write to file '%s'", CLI.Output), err)
		}
		fmt.Fprintf(os.Stderr, "Converted JSON written to %s\n", CLI.Output)
		return nil
	}

	// Write to stdout
	_, err := fmt.Print(text)
	if err != nil {
		return errors.NewOutputError("failed to write to stdout", err)
	}
	return nil
}

// readInteractiveInput provides an interactive mode for users to paste JSON
// and signal completion with Ctrl+D (EOF)
func readInteractiveInput() (string, error) {
	fmt.Fprintln(os.Stderr, "recase Interactive Mode")
	fmt.Fprintln(os.Stderr, "Paste your JSON below and press Ctrl+D (or Ctrl+Z on Windows) when done:")

	// Read all input until EOF (Ctrl+D)
	reader := bufio.NewReader(os.Stdin)
	var jsonBuilder strings.Builder

	for {
		line, err := reader.ReadString('\n')
		if err == io.EOF {
			// End of input
			break
		}
		if err != nil {
			return "", errors.NewInputError("error reading input", err)
		}
		jsonBuilder.WriteString(line)
	}

	jsonData := jsonBuilder.String()
	if len(jsonData) == 0 {
		return "", errors.NewInputError("empty input received", errors.ErrEmptyInput)
	}

	fmt.Fprintln(os.Stderr, "\nProcessing JSON...")
	return jsonData, nil
}
