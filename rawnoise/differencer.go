package rawnoise

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
)

// DefaultChunkWords is the chunk buffer capacity in words.
const DefaultChunkWords = 1000

// Consecutive (0, nil) reads tolerated before the source is considered dead.
const maxEmptyReads = 100

var (
	// ErrRead is returned when a read from the source fails.
	ErrRead = errors.New("read failed")
	// ErrPrematureEnd is returned when the source ends before the requested
	// number of deltas was produced.
	ErrPrematureEnd = errors.New("premature end of source")
	// ErrSink is returned when the sink rejects a delta.
	ErrSink = errors.New("sink rejected delta")
)

// Sink receives deltas in sample order.
type Sink interface {
	Put(delta uint64) error
}

// SinkFunc adapts a function to the Sink interface.
type SinkFunc func(delta uint64) error

// Put calls f(delta).
func (f SinkFunc) Put(delta uint64) error { return f(delta) }

// register holds the previous sample. It starts empty and is populated by
// the seed sample, which produces no delta.
type register struct {
	value     uint64
	populated bool
}

// observe feeds one sample and returns its delta to the previous one.
// ok is false for the seed sample.
func (r *register) observe(w WordWidth, sample uint64) (delta uint64, ok bool) {
	if !r.populated {
		r.value = sample
		r.populated = true
		return 0, false
	}
	delta = w.Sub(sample, r.value)
	r.value = sample
	return delta, true
}

// Differencer reads raw samples from a source and emits their deltas.
// A Differencer is not safe for concurrent use.
type Differencer struct {
	width      WordWidth
	chunkWords int
	log        *slog.Logger
	emitted    uint64
}

// Option configures a Differencer.
type Option func(*Differencer)

// WithChunkWords sets the chunk buffer capacity in words. Values below 1
// are ignored.
func WithChunkWords(n int) Option {
	return func(d *Differencer) {
		if n > 0 {
			d.chunkWords = n
		}
	}
}

// WithLogger sets the logger for per-chunk debug records.
func WithLogger(l *slog.Logger) Option {
	return func(d *Differencer) {
		if l != nil {
			d.log = l
		}
	}
}

// NewDifferencer returns a Differencer for records of the given width.
func NewDifferencer(width WordWidth, opts ...Option) *Differencer {
	d := &Differencer{
		width:      width,
		chunkWords: DefaultChunkWords,
		log:        slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Width returns the configured record width.
func (d *Differencer) Width() WordWidth { return d.width }

// Emitted returns the number of deltas delivered by the last Run.
func (d *Differencer) Emitted() uint64 { return d.emitted }

// Run reads from r until samples deltas have been delivered to sink. The
// source must provide samples+1 records; the first one only seeds the
// register. Deltas already delivered are not retracted when Run fails.
func (d *Differencer) Run(r io.Reader, samples uint64, sink Sink) error {
	d.emitted = 0
	if !d.width.valid() {
		return fmt.Errorf("invalid word width %d", int(d.width))
	}
	if samples == 0 {
		return nil
	}
	if r == nil {
		return errors.New("source must not be nil")
	}
	if sink == nil {
		return errors.New("sink must not be nil")
	}

	size := d.width.Size()
	capWords := uint64(d.chunkWords)
	buf := make([]byte, d.chunkWords*size)

	var reg register
	remaining := samples
	pending := 0 // bytes of an incomplete word kept at buf[:pending]
	emptyReads := 0

	for chunk := 0; remaining > 0; chunk++ {
		// The seed needs one extra word. Once it is in, read no more than
		// the deltas still owed.
		want := remaining
		if !reg.populated && want < capWords {
			want++
		}
		if want > capWords {
			want = capWords
		}

		n, err := r.Read(buf[pending : int(want)*size])
		avail := pending + n
		whole := avail - avail%size

		for off := 0; off < whole && remaining > 0; off += size {
			delta, ok := reg.observe(d.width, d.width.Decode(buf[off:off+size]))
			if !ok {
				continue
			}
			if perr := sink.Put(delta); perr != nil {
				return fmt.Errorf("%w: %w", ErrSink, perr)
			}
			remaining--
			d.emitted++
		}

		d.log.Debug("chunk processed",
			"chunk", chunk,
			"bytes", n,
			"emitted", d.emitted,
			"remaining", remaining)

		if remaining == 0 {
			return nil
		}

		pending = copy(buf, buf[whole:avail])

		if err != nil {
			if errors.Is(err, io.EOF) {
				return fmt.Errorf("%w: got %d of %d deltas", ErrPrematureEnd, d.emitted, samples)
			}
			return fmt.Errorf("%w: %w", ErrRead, err)
		}
		if n == 0 {
			emptyReads++
			if emptyReads >= maxEmptyReads {
				return fmt.Errorf("%w: %w", ErrPrematureEnd, io.ErrNoProgress)
			}
			continue
		}
		emptyReads = 0
	}
	return nil
}
