package emit

import (
	"os"
	"path/filepath"
)

// MemorySink collects every written file in memory, keyed by filename —
// useful for tests and for single-buffer callers that don't want real
// file I/O.
type MemorySink struct {
	Files map[string][]byte
}

// NewMemorySink returns an empty MemorySink.
func NewMemorySink() *MemorySink {
	return &MemorySink{Files: map[string][]byte{}}
}

func (m *MemorySink) Write(filename string, contents []byte) error {
	m.Files[filename] = contents
	return nil
}

// DirSink writes every file under a base directory, creating parent
// directories as needed. This is the Sink cmd/bricgen uses against the
// real filesystem.
type DirSink struct {
	Dir string
}

func (d *DirSink) Write(filename string, contents []byte) error {
	path := filepath.Join(d.Dir, filename)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, contents, 0o644)
}
