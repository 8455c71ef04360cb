//go:build !unix

package document

import (
	"errors"
	"os"
)

var errMmapUnsupported = errors.New("memory mapping is not supported on this platform")

func mapFile(f *os.File, _ int64) (byteSource, error) {
	return nil, &os.PathError{Op: "mmap", Path: f.Name(), Err: errMmapUnsupported}
}
