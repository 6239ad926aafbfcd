package formatter

import (
	"errors"
	"fmt"
	"io"
	"os"

	tt "github.com/gnolang/depwarn/internal/types"
	"go.uber.org/zap"
)

const logFileMode = 0o644

// ErrNoDestination is returned when a deprecation is written to a zero
// Destination or to a stream destination without a writer.
var ErrNoDestination = errors.New("no deprecation destination")

// DeprecationFormatter writes one line per deprecation event and, when the
// lines went to a file, a closing summary with the number of events.
//
// It is not safe for concurrent use. Callers feed it from a single
// reporting goroutine and call DeprecationSummary once at the end of the run.
type DeprecationFormatter struct {
	deprecations Destination
	summary      io.Writer
	logger       *zap.Logger

	file  *os.File
	count int
}

// Option configures a DeprecationFormatter.
type Option func(*DeprecationFormatter)

// WithLogger sets the logger used for file lifecycle events.
func WithLogger(logger *zap.Logger) Option {
	return func(f *DeprecationFormatter) {
		if logger != nil {
			f.logger = logger
		}
	}
}

// New creates a formatter. No I/O happens here; a path-backed destination
// is opened on the first call to Deprecation.
func New(deprecations Destination, summary io.Writer, opts ...Option) *DeprecationFormatter {
	f := &DeprecationFormatter{
		deprecations: deprecations,
		summary:      summary,
		logger:       zap.NewNop(),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Deprecation records an event and writes its rendered line.
// The event is counted even if the write fails.
func (f *DeprecationFormatter) Deprecation(ev tt.DeprecationEvent) error {
	f.count++

	w, err := f.writer()
	if err != nil {
		return err
	}
	if _, err := fmt.Fprintln(w, FormatDeprecation(ev)); err != nil {
		return fmt.Errorf("writing deprecation to %s: %w", f.deprecations, err)
	}
	return nil
}

// DeprecationSummary writes "<n> deprecation(s) logged to <path>" to the
// summary stream when at least one event was recorded and the destination
// is a file path. It writes nothing otherwise.
//
// Each call re-evaluates the condition, so calling it twice writes twice.
func (f *DeprecationFormatter) DeprecationSummary() error {
	if f.count == 0 || f.deprecations.Kind() != KindFilePath {
		return nil
	}
	line := summaryLine(f.count, f.deprecations.ResolvedPath())
	if _, err := fmt.Fprintln(f.summary, line); err != nil {
		return fmt.Errorf("writing deprecation summary: %w", err)
	}
	return nil
}

// Count returns the number of Deprecation calls made so far.
func (f *DeprecationFormatter) Count() int {
	return f.count
}

// Destination returns the configured deprecation destination.
func (f *DeprecationFormatter) Destination() Destination {
	return f.deprecations
}

// Close releases the file opened for a path-backed destination.
// Stream destinations are left open. Close may be called more than once.
func (f *DeprecationFormatter) Close() error {
	if f.file == nil {
		return nil
	}
	file := f.file
	f.file = nil

	if err := file.Close(); err != nil {
		return fmt.Errorf("closing deprecation log %s: %w", file.Name(), err)
	}
	f.logger.Debug("closed deprecation log", zap.String("path", file.Name()))
	return nil
}

func (f *DeprecationFormatter) writer() (io.Writer, error) {
	switch f.deprecations.Kind() {
	case KindStream:
		if f.deprecations.stream == nil {
			return nil, fmt.Errorf("%w: nil stream", ErrNoDestination)
		}
		return f.deprecations.stream, nil
	case KindFilePath:
	default:
		return nil, ErrNoDestination
	}
	if f.file != nil {
		return f.file, nil
	}

	path := f.deprecations.Path()
	file, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, logFileMode)
	if err != nil {
		return nil, fmt.Errorf("opening deprecation log %s: %w", path, err)
	}
	f.logger.Debug("opened deprecation log", zap.String("path", path))
	f.file = file
	return file, nil
}

// Run creates a formatter, passes it to fn and always closes it afterwards.
// The summary is only emitted when fn returns without error.
func Run(
	deprecations Destination,
	summary io.Writer,
	fn func(*DeprecationFormatter) error,
	opts ...Option,
) (err error) {
	f := New(deprecations, summary, opts...)
	defer func() {
		if cerr := f.Close(); cerr != nil {
			err = errors.Join(err, cerr)
		}
	}()

	if err := fn(f); err != nil {
		return err
	}
	return f.DeprecationSummary()
}
