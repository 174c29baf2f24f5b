package state

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
)

// FilePointer is a Pointer backed by a single "<version> <dir>" record file.
type FilePointer struct {
	path string
}

// NewFilePointer returns a pointer stored at path. The file need not exist yet.
func NewFilePointer(path string) *FilePointer {
	return &FilePointer{path: path}
}

// Get parses the record. An absent or blank file means nothing is active.
func (p *FilePointer) Get() (Record, bool, error) {
	data, err := os.ReadFile(p.path)
	if errors.Is(err, fs.ErrNotExist) {
		return Record{}, false, nil
	}
	if err != nil {
		return Record{}, false, err
	}

	fields := strings.Fields(string(data))
	switch {
	case len(fields) == 0:
		return Record{}, false, nil
	case len(fields) < 2:
		return Record{}, false, fmt.Errorf("%w: %s holds %q, want \"<version> <dir>\"", ErrCorruptState, p.path, strings.TrimSpace(string(data)))
	}
	return Record{Version: fields[0], Dir: fields[1]}, true, nil
}

// Set overwrites the record. No trailing newline is written.
func (p *FilePointer) Set(version, dir string) error {
	return writeFile(p.path, []byte(version+" "+dir))
}

// Clear truncates the record file so Get reports nothing active.
func (p *FilePointer) Clear() error {
	return writeFile(p.path, nil)
}
