package document

import (
	"fmt"
	"io"
	"math"
	"os"
)

// StdinName is the file name that makes Open read standard input.
const StdinName = "-"

// DefaultMmapThreshold is the file size from which LoadAuto maps the file
// instead of reading it.
const DefaultMmapThreshold = 16 << 20

// Layout describes how a line is split into sections and chunks.
type Layout struct {
	// Bytes per section.
	SectionLength int
	// Sections on each line.
	SectionsPerLine int
	// Bytes rendered without a separator. Need not divide SectionLength.
	ChunkSize int
}

// DefaultLayout renders 16 bytes per line in two sections of single-byte chunks.
func DefaultLayout() Layout {
	return Layout{SectionLength: 8, SectionsPerLine: 2, ChunkSize: 1}
}

// Validate checks that every field is positive and that a full line's
// length fits in an int.
func (l Layout) Validate() error {
	if l.SectionLength <= 0 || l.SectionsPerLine <= 0 || l.ChunkSize <= 0 {
		return ErrInvalidLayout
	}
	if l.SectionLength > math.MaxInt/l.SectionsPerLine {
		return fmt.Errorf("%w: line length overflows", ErrInvalidLayout)
	}
	return nil
}

// Config is everything Open needs to build a Document.
type Config struct {
	File string
	Layout
}

// LoadMode selects the byte source Open uses.
type LoadMode int

const (
	// LoadAuto maps files of at least the mmap threshold and reads the rest.
	LoadAuto LoadMode = iota
	LoadRead
	LoadMmap
)

func (m LoadMode) String() string {
	switch m {
	case LoadRead:
		return "read"
	case LoadMmap:
		return "mmap"
	default:
		return "auto"
	}
}

// OpenOption configures Open.
type OpenOption func(*openOptions)

type openOptions struct {
	mode          LoadMode
	mmapThreshold int64
	stdin         io.Reader
}

func defaultOpenOptions() *openOptions {
	return &openOptions{
		mode:          LoadAuto,
		mmapThreshold: DefaultMmapThreshold,
		stdin:         os.Stdin,
	}
}

// WithLoadMode picks how the file content is loaded.
func WithLoadMode(mode LoadMode) OpenOption {
	return func(o *openOptions) {
		o.mode = mode
	}
}

// WithMmapThreshold sets the size in bytes from which LoadAuto maps a file.
// Non-positive values are ignored.
func WithMmapThreshold(size int64) OpenOption {
	return func(o *openOptions) {
		if size > 0 {
			o.mmapThreshold = size
		}
	}
}

// WithStdin replaces the reader used for StdinName.
func WithStdin(r io.Reader) OpenOption {
	return func(o *openOptions) {
		o.stdin = r
	}
}
