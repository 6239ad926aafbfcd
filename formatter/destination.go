package formatter

import (
	"fmt"
	"io"
	"path/filepath"
)

// DestinationKind tags the variant held by a Destination.
type DestinationKind int

const (
	// KindInvalid is the zero Destination; writing to it fails.
	KindInvalid DestinationKind = iota
	// KindStream is an already-open writer owned by the caller.
	KindStream
	// KindFilePath is a file path opened lazily by the formatter.
	KindFilePath
)

func (k DestinationKind) String() string {
	switch k {
	case KindInvalid:
		return "invalid"
	case KindStream:
		return "stream"
	case KindFilePath:
		return "file"
	default:
		return fmt.Sprintf("DestinationKind(%d)", int(k))
	}
}

// Destination is where deprecation lines are written.
// Build one with FilePath or OpenStream.
type Destination struct {
	kind   DestinationKind
	path   string
	stream io.Writer
}

// FilePath returns a path-backed destination. The file is not touched
// until the first deprecation is written.
func FilePath(path string) Destination {
	return Destination{kind: KindFilePath, path: path}
}

// OpenStream returns a destination backed by an open writer.
// The formatter never closes it.
func OpenStream(w io.Writer) Destination {
	return Destination{kind: KindStream, stream: w}
}

func (d Destination) Kind() DestinationKind { return d.kind }

// Path returns the configured path, or "" for a stream destination.
func (d Destination) Path() string { return d.path }

// ResolvedPath returns the absolute form of the path, falling back to the
// path as configured when it cannot be resolved.
func (d Destination) ResolvedPath() string {
	if d.kind != KindFilePath {
		return ""
	}
	abs, err := filepath.Abs(d.path)
	if err != nil {
		return d.path
	}
	return abs
}

func (d Destination) String() string {
	if d.kind == KindFilePath {
		return d.path
	}
	return d.kind.String()
}
