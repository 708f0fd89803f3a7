package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/dimchansky/utfbom"
	"github.com/lmittmann/tint"
	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"

	"github.com/moriyoshi/delimscan/extract"
	"github.com/moriyoshi/delimscan/sink"
	"github.com/moriyoshi/delimscan/types"
)

type CLI struct {
	Inputs           []string   `arg:"" name:"input" help:"Files to scan; \"-\" or nothing reads standard input." optional:""`
	Profile          string     `name:"profile" help:"Path to a YAML scanner profile." env:"DELIMSCAN_PROFILE" optional:"" type:"path"`
	Mode             string     `name:"mode" help:"What to extract: tokens, lines, ints or floats." env:"DELIMSCAN_MODE" optional:""`
	Delimiter        string     `name:"delimiter" short:"d" help:"Delimiter pattern (regular expression)." env:"DELIMSCAN_DELIMITER" optional:""`
	Literal          bool       `name:"literal" help:"Treat the delimiter as a literal string." env:"DELIMSCAN_LITERAL" default:"false"`
	Radix            int        `name:"radix" short:"r" help:"Radix for numeric modes (2-36)." env:"DELIMSCAN_RADIX" optional:""`
	GroupSeparator   string     `name:"group-separator" help:"Grouping separator stripped from numbers." env:"DELIMSCAN_GROUP_SEPARATOR" optional:""`
	NoGroupSeparator bool       `name:"no-group-separator" help:"Do not strip grouping separators." env:"DELIMSCAN_NO_GROUP_SEPARATOR" default:"false"`
	BufferSize       string     `name:"buffer-size" help:"Initial buffer size, e.g. 4096 or 64KiB." env:"DELIMSCAN_BUFFER_SIZE" optional:""`
	MaxBufferSize    string     `name:"max-buffer-size" help:"Upper bound for buffer growth; unbounded if unset." env:"DELIMSCAN_MAX_BUFFER_SIZE" optional:""`
	Format           string     `name:"format" short:"f" help:"Output format." env:"DELIMSCAN_FORMAT" default:"text" enum:"text,json,yaml"`
	WithSource       bool       `name:"with-source" help:"Prefix text output with source and index." env:"DELIMSCAN_WITH_SOURCE" default:"false"`
	Concurrency      int        `name:"concurrency" help:"Number of inputs scanned at once." env:"DELIMSCAN_CONCURRENCY" default:"4"`
	LogLevel         slog.Level `name:"log-level" help:"Log level." env:"DELIMSCAN_LOG_LEVEL" default:"WARN" enum:"DEBUG,INFO,WARN,ERROR"`
}

func (CLI *CLI) initLogger(*kong.Context) *slog.Logger {
	var handler slog.Handler
	if isatty.IsTerminal(os.Stderr.Fd()) {
		handler = tint.NewHandler(colorable.NewColorable(os.Stderr), &tint.Options{Level: CLI.LogLevel})
	} else {
		handler = slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: CLI.LogLevel})
	}
	return slog.New(handler)
}

func (CLI *CLI) loadProfile(logger *slog.Logger) (extract.Profile, error) {
	p := extract.DefaultProfile()
	if CLI.Profile != "" {
		logger.Info("loading profile", slog.String("path", CLI.Profile))
		var err error
		p, err = extract.LoadProfileYAMLFile(CLI.Profile)
		if err != nil {
			return p, fmt.Errorf("%s: %w", CLI.Profile, err)
		}
	}
	if CLI.Mode != "" {
		m, err := types.ParseMode(CLI.Mode)
		if err != nil {
			return p, err
		}
		p.Mode = m
	}
	if CLI.Delimiter != "" {
		p.Delimiter = CLI.Delimiter
		p.Literal = CLI.Literal
	} else if CLI.Literal {
		p.Literal = true
	}
	if CLI.Radix != 0 {
		p.Radix = CLI.Radix
	}
	if CLI.NoGroupSeparator {
		p.GroupSeparator = 0
	} else if CLI.GroupSeparator != "" {
		sep, err := extract.ParseGroupSeparator(CLI.GroupSeparator)
		if err != nil {
			return p, err
		}
		p.GroupSeparator = sep
	}
	if CLI.BufferSize != "" {
		n, err := extract.ParseSize(CLI.BufferSize)
		if err != nil {
			return p, fmt.Errorf("--buffer-size: %w", err)
		}
		p.BufferSize = n
	}
	if CLI.MaxBufferSize != "" {
		n, err := extract.ParseSize(CLI.MaxBufferSize)
		if err != nil {
			return p, fmt.Errorf("--max-buffer-size: %w", err)
		}
		p.MaxBufferSize = n
	}
	return p, p.Validate()
}

func (CLI *CLI) initExtractor(kongCtx *kong.Context, logger *slog.Logger) *extract.Extractor {
	p, err := CLI.loadProfile(logger)
	if err != nil {
		kongCtx.FatalIfErrorf(err)
	}
	e, err := extract.NewExtractor(
		p,
		extract.WithLogger(logger),
		extract.WithConcurrency(CLI.Concurrency),
	)
	if err != nil {
		kongCtx.FatalIfErrorf(err)
	}
	return e
}

func (CLI *CLI) openInputs(kongCtx *kong.Context) ([]extract.Input, []io.Closer) {
	names := CLI.Inputs
	if len(names) == 0 {
		names = []string{"-"}
	}
	inputs := make([]extract.Input, 0, len(names))
	closers := make([]io.Closer, 0, len(names))
	for _, name := range names {
		if name == "-" {
			inputs = append(inputs, extract.Input{Name: "<stdin>", Reader: utfbom.SkipOnly(os.Stdin)})
			continue
		}
		f, err := os.Open(name)
		if err != nil {
			for _, c := range closers {
				c.Close()
			}
			kongCtx.FatalIfErrorf(err)
		}
		closers = append(closers, f)
		inputs = append(inputs, extract.Input{Name: name, Reader: utfbom.SkipOnly(f)})
	}
	return inputs, closers
}

func (CLI *CLI) run(ctx context.Context, kongCtx *kong.Context, logger *slog.Logger) error {
	e := CLI.initExtractor(kongCtx, logger)
	inputs, closers := CLI.openInputs(kongCtx)
	defer func() {
		for _, c := range closers {
			c.Close()
		}
	}()

	w := bufio.NewWriter(os.Stdout)
	out, err := sink.New(CLI.Format, w, CLI.WithSource)
	if err != nil {
		return err
	}
	err = e.ExtractAll(ctx, inputs, out)
	if cerr := sink.Close(out); cerr != nil && err == nil {
		err = cerr
	}
	if ferr := w.Flush(); ferr != nil && err == nil {
		err = ferr
	}
	return err
}

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer cancel()
	var CLI CLI
	kongCtx := kong.Parse(
		&CLI,
		kong.Name("delimscan"),
		kong.Description("Split inputs into tokens, lines or numbers."),
	)
	logger := CLI.initLogger(kongCtx)
	err := CLI.run(ctx, kongCtx, logger)
	if err != nil {
		kongCtx.FatalIfErrorf(err)
	}
}
