package document

import (
	"bytes"
	"fmt"
	"io"
	"io/fs"
	"os"
	"syscall"

	"github.com/YLivay/hexi/log"
)

// byteSource is the backing store of a Document. Bytes must return the same
// read-only slice until Close is called.
type byteSource interface {
	Bytes() []byte
	Mapped() bool
	Close() error
}

// memSource holds content read fully into memory.
type memSource struct {
	data []byte
}

func (s *memSource) Bytes() []byte { return s.data }
func (s *memSource) Mapped() bool  { return false }

func (s *memSource) Close() error {
	s.data = nil
	return nil
}

func readAll(r io.Reader, sizeHint int64) (*memSource, error) {
	buf := bytes.NewBuffer(make([]byte, 0, sizeHint+bytes.MinRead))
	if _, err := buf.ReadFrom(r); err != nil {
		return nil, err
	}
	return &memSource{data: buf.Bytes()}, nil
}

// loadFile opens path and loads it through the source the options ask for.
func loadFile(path string, opts *openOptions) (byteSource, error) {
	if path == StdinName {
		log.Println("Reading standard input")
		src, err := readAll(opts.stdin, 0)
		if err != nil {
			return nil, classify(path, err)
		}
		return src, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, classify(path, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, classify(path, err)
	}
	if info.IsDir() {
		return nil, &Error{Kind: KindOther, Path: path, Err: &fs.PathError{Op: "read", Path: path, Err: syscall.EISDIR}}
	}

	size := info.Size()
	wantsMmap := opts.mode == LoadMmap || (opts.mode == LoadAuto && size >= opts.mmapThreshold)
	if wantsMmap && size > 0 {
		src, err := mapFile(f, size)
		if err == nil {
			log.Printf("Mapped %s (%d bytes)", path, size)
			return src, nil
		}
		if opts.mode == LoadMmap {
			return nil, classify(path, err)
		}
		log.Println("Failed to map file, falling back to reading it:", err)
	}

	log.Printf("Reading %s (%d bytes)", path, size)
	src, err := readAll(f, size)
	if err != nil {
		return nil, classify(path, fmt.Errorf("failed to read file: %w", err))
	}
	return src, nil
}
