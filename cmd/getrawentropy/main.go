// getrawentropy records raw jitterentropy noise samples from the kernel
// test interface (or a serial/USB noise source) and prints the difference
// between consecutive samples, one decimal per line.
package main

import (
	"io"
	"log/slog"
	"os"
	"strconv"

	"github.com/Thiagojm/rawentropy/rawnoise"
	"github.com/Thiagojm/rawentropy/source"
	"github.com/alecthomas/kong"
)

// version is set via ldflags at build time
var version = "dev"

// CLI is the command line of getrawentropy.
type CLI struct {
	Verbose bool             `short:"v" help:"Log per-chunk progress to stderr"`
	Version kong.VersionFlag `help:"Show version information"`

	Record RecordCmd `cmd:"" default:"withargs" help:"Record sample deltas (default command)"`
	Ports  PortsCmd  `cmd:"" help:"List serial ports usable as serial: sources"`
}

// App carries what commands share.
type App struct {
	Stdout io.Writer
	Log    *slog.Logger
}

func newParser(cli *CLI, options ...kong.Option) (*kong.Kong, error) {
	options = append([]kong.Option{
		kong.Name("getrawentropy"),
		kong.Description("Print deltas of raw jitterentropy noise samples."),
		kong.Vars{
			"version":        version,
			"default_source": source.DefaultPath,
			"default_width":  strconv.Itoa(rawnoise.DefaultWidth.Bits()),
			"chunk_words":    strconv.Itoa(rawnoise.DefaultChunkWords),
		},
		kong.UsageOnError(),
	}, options...)
	return kong.New(cli, options...)
}

func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

func main() {
	var cli CLI
	parser, err := newParser(&cli)
	if err != nil {
		panic(err)
	}
	ctx, err := parser.Parse(os.Args[1:])
	parser.FatalIfErrorf(err)

	app := &App{
		Stdout: os.Stdout,
		Log:    newLogger(os.Stderr, cli.Verbose),
	}
	if err := ctx.Run(app); err != nil {
		app.Log.Error("getrawentropy failed", "err", err)
		os.Exit(exitStatus(err))
	}
}
