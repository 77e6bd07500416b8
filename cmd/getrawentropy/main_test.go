package main

import (
	"bytes"
	"encoding/binary"
	"errors"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/Thiagojm/rawentropy/rawnoise"
	"github.com/Thiagojm/rawentropy/source"
	"github.com/alecthomas/kong"
)

func testApp(out io.Writer) *App {
	return &App{
		Stdout: out,
		Log:    slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

func writeSource(t *testing.T, width rawnoise.WordWidth, values ...uint64) string {
	t.Helper()
	var buf []byte
	for _, v := range values {
		if width == rawnoise.Width32 {
			buf = binary.NativeEndian.AppendUint32(buf, uint32(v))
		} else {
			buf = binary.NativeEndian.AppendUint64(buf, v)
		}
	}
	path := filepath.Join(t.TempDir(), "jent_raw_hires")
	if err := os.WriteFile(path, buf, 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func recordCmd(path string, samples uint64, width string) *RecordCmd {
	return &RecordCmd{
		Samples:     samples,
		DebugfsFile: path,
		Width:       width,
		ChunkWords:  2,
		Output:      "-",
		Format:      "text",
	}
}

func TestParserDefaults(t *testing.T) {
	var cli CLI
	parser, err := newParser(&cli, kong.Exit(func(int) { t.Fatal("unexpected exit") }))
	if err != nil {
		t.Fatalf("newParser: %v", err)
	}
	ctx, err := parser.Parse(nil)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if ctx.Command() != "record" {
		t.Errorf("default command = %q, want record", ctx.Command())
	}
	if cli.Record.Samples != 1000 {
		t.Errorf("Samples = %d, want 1000", cli.Record.Samples)
	}
	if cli.Record.DebugfsFile != source.DefaultPath {
		t.Errorf("DebugfsFile = %q, want %q", cli.Record.DebugfsFile, source.DefaultPath)
	}
	if cli.Record.ChunkWords != rawnoise.DefaultChunkWords {
		t.Errorf("ChunkWords = %d, want %d", cli.Record.ChunkWords, rawnoise.DefaultChunkWords)
	}
	width, err := rawnoise.ParseWordWidth(cli.Record.Width)
	if err != nil || width != rawnoise.DefaultWidth {
		t.Errorf("Width = %q, want default %v", cli.Record.Width, rawnoise.DefaultWidth)
	}
}

func TestParserFlags(t *testing.T) {
	var cli CLI
	parser, err := newParser(&cli, kong.Exit(func(int) { t.Fatal("unexpected exit") }))
	if err != nil {
		t.Fatalf("newParser: %v", err)
	}
	_, err = parser.Parse([]string{"-v", "record", "-s", "5", "-f", "serial:/dev/ttyACM0", "-w", "64", "--format", "xlsx", "-o", "out.xlsx"})
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	r := cli.Record
	if !cli.Verbose || r.Samples != 5 || r.DebugfsFile != "serial:/dev/ttyACM0" || r.Width != "64" || r.Format != "xlsx" || r.Output != "out.xlsx" {
		t.Errorf("unexpected parse result: verbose=%v %+v", cli.Verbose, r)
	}
}

func TestParserRejectsUnknownWidth(t *testing.T) {
	var cli CLI
	parser, err := newParser(&cli, kong.Exit(func(int) {}), kong.Writers(io.Discard, io.Discard))
	if err != nil {
		t.Fatalf("newParser: %v", err)
	}
	if _, err := parser.Parse([]string{"-w", "16"}); err == nil {
		t.Error("Parse accepted width 16")
	}
}

func TestParserPortsCommand(t *testing.T) {
	var cli CLI
	parser, err := newParser(&cli, kong.Exit(func(int) { t.Fatal("unexpected exit") }))
	if err != nil {
		t.Fatalf("newParser: %v", err)
	}
	ctx, err := parser.Parse([]string{"ports"})
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if ctx.Command() != "ports" {
		t.Errorf("command = %q, want ports", ctx.Command())
	}
}

func TestRecordText(t *testing.T) {
	path := writeSource(t, rawnoise.Width32, 5, 2, 10, 11, 99)
	var out bytes.Buffer
	if err := recordCmd(path, 3, "32").Run(testApp(&out)); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if want := "4294967293\n8\n1\n"; out.String() != want {
		t.Errorf("output = %q, want %q", out.String(), want)
	}
}

func TestRecordU64(t *testing.T) {
	path := writeSource(t, rawnoise.Width64, 1<<33, 1<<34, 3)
	var out bytes.Buffer
	if err := recordCmd(path, 2, "u64").Run(testApp(&out)); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if want := "8589934592\n18446744056529682435\n"; out.String() != want {
		t.Errorf("output = %q, want %q", out.String(), want)
	}
}

func TestRecordZeroSamples(t *testing.T) {
	path := writeSource(t, rawnoise.Width32)
	var out bytes.Buffer
	if err := recordCmd(path, 0, "32").Run(testApp(&out)); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if out.Len() != 0 {
		t.Errorf("output = %q, want none", out.String())
	}
}

func TestRecordPrematureEndKeepsOutput(t *testing.T) {
	path := writeSource(t, rawnoise.Width32, 1, 2, 4)
	var out bytes.Buffer
	err := recordCmd(path, 10, "32").Run(testApp(&out))
	if !errors.Is(err, rawnoise.ErrPrematureEnd) {
		t.Fatalf("err = %v, want ErrPrematureEnd", err)
	}
	if want := "1\n2\n"; out.String() != want {
		t.Errorf("output = %q, want %q", out.String(), want)
	}
}

func TestRecordMissingSource(t *testing.T) {
	var out bytes.Buffer
	err := recordCmd(filepath.Join(t.TempDir(), "missing"), 1, "32").Run(testApp(&out))
	if !errors.Is(err, source.ErrUnavailable) || !errors.Is(err, fs.ErrNotExist) {
		t.Fatalf("err = %v, want ErrUnavailable wrapping fs.ErrNotExist", err)
	}
}

func TestRecordBinaryFile(t *testing.T) {
	path := writeSource(t, rawnoise.Width32, 10, 15, 35)
	outPath := filepath.Join(t.TempDir(), "deltas.bin")
	cmd := recordCmd(path, 2, "32")
	cmd.Format = "binary"
	cmd.Output = outPath
	if err := cmd.Run(testApp(io.Discard)); err != nil {
		t.Fatalf("Run: %v", err)
	}
	data, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatal(err)
	}
	if len(data) != 16 {
		t.Fatalf("wrote %d bytes, want 16", len(data))
	}
	if a, b := binary.NativeEndian.Uint64(data), binary.NativeEndian.Uint64(data[8:]); a != 5 || b != 20 {
		t.Errorf("records = %d, %d; want 5, 20", a, b)
	}
}

func TestRecordInvalidConfig(t *testing.T) {
	path := writeSource(t, rawnoise.Width32, 1, 2)
	testCases := []struct {
		name   string
		mutate func(*RecordCmd)
	}{
		{name: "width", mutate: func(c *RecordCmd) { c.Width = "16" }},
		{name: "format", mutate: func(c *RecordCmd) { c.Format = "csv" }},
		{name: "chunk words", mutate: func(c *RecordCmd) { c.ChunkWords = 0 }},
		{name: "target", mutate: func(c *RecordCmd) { c.DebugfsFile = "usb:bad" }},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cmd := recordCmd(path, 1, "32")
			tc.mutate(cmd)
			if err := cmd.Run(testApp(io.Discard)); !errors.Is(err, errInvalidConfig) {
				t.Errorf("err = %v, want errInvalidConfig", err)
			}
		})
	}
}
