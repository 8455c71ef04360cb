// Package dump turns a document into its sequence of hex dump lines.
//
// Lines are produced on demand so output can start before the rest of a
// large file has been formatted.
package dump

import (
	"fmt"
	"iter"

	"github.com/YLivay/hexi/document"
)

// FormatLine prefixes hex with its byte offset. Offsets of 0x10000 and up
// are wider than four digits.
func FormatLine(offset int, hex string) string {
	return fmt.Sprintf("%04X| %s", offset, hex)
}

// Scanner yields the lines of a document in order, formatting one line per
// call to Scan. It follows the bufio.Scanner pattern.
type Scanner struct {
	doc  *document.Document
	next int

	line int
	hex  string
	err  error
}

// NewScanner returns a scanner positioned before the first line of doc.
func NewScanner(doc *document.Document) *Scanner {
	return &Scanner{
		doc:  doc,
		line: -1,
	}
}

// Scan advances to the next line. It returns false once every line has been
// produced.
func (s *Scanner) Scan() bool {
	if s.next >= s.doc.LineCount() {
		s.hex = ""
		return false
	}

	bytes, err := s.doc.LineBytes(s.next)
	if err != nil {
		s.err = err
		s.hex = ""
		return false
	}

	s.line = s.next
	s.hex = s.doc.Layout().Format(bytes)
	s.next++
	return true
}

// Line returns the index of the current line.
func (s *Scanner) Line() int {
	return s.line
}

// Offset returns the byte offset of the current line.
func (s *Scanner) Offset() int {
	return s.doc.Offset(s.line)
}

// Hex returns the current line without its offset prefix.
func (s *Scanner) Hex() string {
	return s.hex
}

// Text returns the current line as printed.
func (s *Scanner) Text() string {
	return FormatLine(s.Offset(), s.hex)
}

// Err returns the error that stopped the scan, if any. Formatting does no
// I/O, so this is nil unless the document was misused.
func (s *Scanner) Err() error {
	return s.err
}

// Lines returns the dump of doc as a lazy sequence. Each range over it starts
// again from the first line.
func Lines(doc *document.Document) iter.Seq[string] {
	return func(yield func(string) bool) {
		s := NewScanner(doc)
		for s.Scan() {
			if !yield(s.Text()) {
				return
			}
		}
	}
}
