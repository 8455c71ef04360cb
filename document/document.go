// Package document loads a file and lays its bytes out as hex dump lines.
//
// A line covers SectionLength*SectionsPerLine bytes. It is split into
// sections, which are split into chunks. A chunk is rendered as the
// uppercase hex codes of its bytes with no separator, chunks are joined by
// one space and sections by three.
package document

import (
	"fmt"
	"strings"
)

const hexDigits = "0123456789ABCDEF"

const (
	chunkSeparator   = " "
	sectionSeparator = "   "
)

// Document is an immutable view of a file's bytes with a fixed layout.
type Document struct {
	name   string
	layout Layout
	source byteSource

	// Cached from source.Bytes() and layout.
	data       []byte
	lineLength int
}

// Open loads cfg.File and returns a Document laid out with cfg.Layout.
func Open(cfg Config, opts ...OpenOption) (*Document, error) {
	if err := cfg.Layout.Validate(); err != nil {
		return nil, err
	}
	if err := checkFileName(cfg.File); err != nil {
		return nil, err
	}

	o := defaultOpenOptions()
	for _, opt := range opts {
		opt(o)
	}

	source, err := loadFile(cfg.File, o)
	if err != nil {
		return nil, err
	}

	return newDocument(cfg.File, source, cfg.Layout), nil
}

// New returns a Document over data, which must not be modified afterwards.
func New(name string, data []byte, layout Layout) (*Document, error) {
	if err := layout.Validate(); err != nil {
		return nil, err
	}
	return newDocument(name, &memSource{data: data}, layout), nil
}

func newDocument(name string, source byteSource, layout Layout) *Document {
	return &Document{
		name:       name,
		layout:     layout,
		source:     source,
		data:       source.Bytes(),
		lineLength: layout.SectionLength * layout.SectionsPerLine,
	}
}

// Close releases the backing store. Lines obtained from LineBytes must not
// be used afterwards.
func (d *Document) Close() error {
	d.data = nil
	return d.source.Close()
}

// Name returns the file name the document was opened from.
func (d *Document) Name() string {
	return d.name
}

// Layout returns the layout lines are formatted with.
func (d *Document) Layout() Layout {
	return d.layout
}

// Mapped reports whether the content is memory mapped rather than read.
func (d *Document) Mapped() bool {
	return d.source.Mapped()
}

// Len returns the number of bytes in the document.
func (d *Document) Len() int {
	return len(d.data)
}

// LineLength returns the number of bytes on a full line.
func (d *Document) LineLength() int {
	return d.lineLength
}

// LineCount returns the number of lines, the last of which may be short.
func (d *Document) LineCount() int {
	if len(d.data) == 0 {
		return 0
	}
	n := len(d.data) / d.lineLength
	if len(d.data)%d.lineLength != 0 {
		n++
	}
	return n
}

// Offset returns the position of the first byte of line index.
func (d *Document) Offset(index int) int {
	return index * d.lineLength
}

// LineBytes returns the bytes shown on line index. The slice aliases the
// document's buffer.
func (d *Document) LineBytes(index int) ([]byte, error) {
	if index < 0 || index >= d.LineCount() {
		return nil, fmt.Errorf("%w: %d not in [0, %d)", ErrLineOutOfRange, index, d.LineCount())
	}

	start := index * d.lineLength
	end := start + min(d.lineLength, len(d.data)-start)
	return d.data[start:end:end], nil
}

// FormatLine renders line index without its offset prefix.
func (d *Document) FormatLine(index int) (string, error) {
	line, err := d.LineBytes(index)
	if err != nil {
		return "", err
	}
	return d.layout.Format(line), nil
}

// Format renders bytes as one line of sections and chunks. A short input
// yields a short line, there is no padding.
func (l Layout) Format(line []byte) string {
	var sb strings.Builder
	// Two digits per byte plus at most one separator per chunk.
	sb.Grow(len(line)*3 + (len(line)/l.SectionLength+1)*len(sectionSeparator))

	for rest := line; len(rest) > 0; {
		if len(rest) < len(line) {
			sb.WriteString(sectionSeparator)
		}
		section := rest[:min(l.SectionLength, len(rest))]
		rest = rest[len(section):]

		for chunks := section; len(chunks) > 0; {
			if len(chunks) < len(section) {
				sb.WriteString(chunkSeparator)
			}
			chunk := chunks[:min(l.ChunkSize, len(chunks))]
			chunks = chunks[len(chunk):]

			for _, b := range chunk {
				sb.WriteByte(hexDigits[b>>4])
				sb.WriteByte(hexDigits[b&0x0f])
			}
		}
	}

	return strings.TrimRight(sb.String(), " ")
}
