//go:build unix

package document

import (
	"errors"
	"math"
	"os"

	"golang.org/x/sys/unix"
)

// mmapSource is a read-only shared mapping of a whole file.
type mmapSource struct {
	data []byte
}

func mapFile(f *os.File, size int64) (byteSource, error) {
	if size > math.MaxInt {
		return nil, &os.PathError{Op: "mmap", Path: f.Name(), Err: errors.New("file too large to map")}
	}

	data, err := unix.Mmap(int(f.Fd()), 0, int(size), unix.PROT_READ, unix.MAP_SHARED)
	if err != nil {
		return nil, &os.PathError{Op: "mmap", Path: f.Name(), Err: err}
	}

	return &mmapSource{data: data}, nil
}

func (s *mmapSource) Bytes() []byte { return s.data }
func (s *mmapSource) Mapped() bool  { return true }

func (s *mmapSource) Close() error {
	if s.data == nil {
		return nil
	}
	data := s.data
	s.data = nil
	return unix.Munmap(data)
}
