package main

import (
	"bufio"
	"context"
	"errors"
	"io"
	"syscall"

	"github.com/fatih/color"

	"github.com/YLivay/hexi/log"
)

// lineScanner is implemented by dump.Scanner and dump.ParallelScanner.
type lineScanner interface {
	Scan() bool
	Offset() int
	Hex() string
	Text() string
	Err() error
}

// writeDump prints every line s produces, one per row. A reader that closes
// the pipe early ends the dump without an error.
func writeDump(ctx context.Context, w io.Writer, s lineScanner, offsetColor *color.Color) error {
	bw := bufio.NewWriterSize(w, 64*1024)

	for s.Scan() {
		if err := ctx.Err(); err != nil {
			return err
		}

		var err error
		if offsetColor != nil {
			_, err = offsetColor.Fprintf(bw, "%04X|", s.Offset())
			if err == nil {
				_, err = bw.WriteString(" " + s.Hex() + "\n")
			}
		} else {
			_, err = bw.WriteString(s.Text() + "\n")
		}
		if err != nil {
			return outputError(err)
		}
	}
	if err := s.Err(); err != nil {
		return err
	}

	return outputError(bw.Flush())
}

func outputError(err error) error {
	if errors.Is(err, syscall.EPIPE) {
		log.Println("Output closed, stopping dump")
		return nil
	}
	return err
}
