package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/Thiagojm/rawentropy/output"
	"github.com/Thiagojm/rawentropy/rawnoise"
	"github.com/Thiagojm/rawentropy/source"
)

var errInvalidConfig = errors.New("invalid configuration")

// RecordCmd reads Samples+1 raw records and prints Samples deltas.
type RecordCmd struct {
	Samples     uint64 `short:"s" default:"1000" env:"GETRAWENTROPY_SAMPLES" help:"Number of deltas to record"`
	DebugfsFile string `short:"f" name:"debugfs-file" default:"${default_source}" env:"GETRAWENTROPY_FILE" placeholder:"TARGET" help:"Source: a path, serial:<port>[@baud] or usb:<vid>:<pid>"`
	Width       string `short:"w" default:"${default_width}" enum:"32,64,u32,u64" env:"GETRAWENTROPY_WIDTH" help:"Record width in bits, must match the kernel (u64 from Linux 6.13)"`
	ChunkWords  int    `default:"${chunk_words}" help:"Records read per chunk"`
	Output      string `short:"o" default:"-" placeholder:"PATH" help:"Output file, - for stdout"`
	Format      string `default:"text" enum:"text,binary,xlsx" help:"Output format: text, binary or xlsx"`
}

// Run opens the source and output, then drives the differencer.
func (c *RecordCmd) Run(app *App) error {
	width, err := rawnoise.ParseWordWidth(c.Width)
	if err != nil {
		return fmt.Errorf("%w: %w", errInvalidConfig, err)
	}
	format, err := output.ParseFormat(c.Format)
	if err != nil {
		return fmt.Errorf("%w: %w", errInvalidConfig, err)
	}
	if c.ChunkWords <= 0 {
		return fmt.Errorf("%w: chunk words must be positive, got %d", errInvalidConfig, c.ChunkWords)
	}
	target, err := source.ParseTarget(c.DebugfsFile)
	if err != nil {
		return fmt.Errorf("%w: %w", errInvalidConfig, err)
	}

	src, err := source.OpenTarget(target)
	if err != nil {
		return err
	}
	defer func() { _ = src.Close() }()

	out, err := openOutput(c.Output, app.Stdout)
	if err != nil {
		return err
	}

	sink, err := output.New(format, out)
	if err != nil {
		_ = out.Close()
		return err
	}

	app.Log.Debug("recording",
		"source", target.String(),
		"kind", target.Kind,
		"width", width,
		"samples", c.Samples,
		"format", format)

	d := rawnoise.NewDifferencer(width,
		rawnoise.WithChunkWords(c.ChunkWords),
		rawnoise.WithLogger(app.Log))
	runErr := d.Run(src, c.Samples, sink)

	// Deltas emitted before a failure are still flushed.
	err = errors.Join(runErr, sink.Close(), out.Close())
	if err != nil {
		return err
	}
	app.Log.Debug("recording complete", "emitted", d.Emitted())
	return nil
}

type nopWriteCloser struct{ io.Writer }

func (nopWriteCloser) Close() error { return nil }

func openOutput(path string, stdout io.Writer) (io.WriteCloser, error) {
	if path == "" || path == "-" {
		return nopWriteCloser{stdout}, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create output: %w", err)
	}
	return f, nil
}
