package assembler

import (
	"io"
	"os"
	"path/filepath"
)

// CreateFS is a file system that output files are created in.
type CreateFS interface {
	// Create creates a new file for writing.
	Create(name string) (file io.WriteCloser, err error)
}

// DirFS creates files in a host directory.
type DirFS string

func (dir DirFS) Create(name string) (file io.WriteCloser, err error) {
	fd, err := os.Create(filepath.Join(string(dir), name))
	if err != nil {
		return
	}
	file = fd
	return
}
