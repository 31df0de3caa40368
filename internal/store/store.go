package store

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/amirbrooks/lebron/internal/task"
)

var (
	ErrLoad            = errors.New("load failed")
	ErrSave            = errors.New("save failed")
	ErrMalformedRecord = errors.New("malformed record")
	timeNow            = func() time.Time { return time.Now().UTC() }
)

// Lines reads and overwrites a whole line-oriented text resource.
type Lines interface {
	ReadLines() ([]string, error)
	WriteLines(lines []string) error
}

// FileLines stores lines in a UTF-8 file. Reading a missing file creates
// it, and its parent directory, and returns no lines.
type FileLines struct {
	Path string
}

func (f *FileLines) ReadLines() ([]string, error) {
	b, err := os.ReadFile(f.Path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return nil, err
		}
		if err := os.MkdirAll(filepath.Dir(f.Path), 0o755); err != nil {
			return nil, err
		}
		if err := os.WriteFile(f.Path, nil, 0o644); err != nil {
			return nil, err
		}
		return nil, nil
	}
	return splitLines(string(b)), nil
}

func (f *FileLines) WriteLines(lines []string) error {
	var b strings.Builder
	for _, l := range lines {
		b.WriteString(l)
		b.WriteByte('\n')
	}
	return atomicWriteFile(f.Path, []byte(b.String()), 0o644)
}

// MemoryLines keeps lines in memory. A non-nil WriteErr fails every write.
type MemoryLines struct {
	Lines    []string
	WriteErr error
	Writes   int
}

func (m *MemoryLines) ReadLines() ([]string, error) {
	out := make([]string, len(m.Lines))
	copy(out, m.Lines)
	return out, nil
}

func (m *MemoryLines) WriteLines(lines []string) error {
	if m.WriteErr != nil {
		return m.WriteErr
	}
	m.Lines = append(m.Lines[:0:0], lines...)
	m.Writes++
	return nil
}

// Store loads and saves the task list through a Lines resource.
type Store struct {
	lines Lines
}

func New(lines Lines) *Store {
	return &Store{lines: lines}
}

// Open returns a Store backed by the file at path; "~" is expanded.
func Open(path string) *Store {
	return New(&FileLines{Path: ExpandHome(path)})
}

// Load decodes every record. Blank and short lines are skipped; a dated
// record without its date field aborts the load.
func (s *Store) Load() ([]*task.Task, error) {
	lines, err := s.lines.ReadLines()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoad, err)
	}
	var out []*task.Task
	for i, line := range lines {
		t, err := DecodeRecord(line)
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %w", ErrLoad, i+1, err)
		}
		if t != nil {
			out = append(out, t)
		}
	}
	return out, nil
}

// Save overwrites the resource with one record per task, in order.
func (s *Store) Save(tasks []*task.Task) error {
	lines := make([]string, 0, len(tasks))
	for _, t := range tasks {
		lines = append(lines, EncodeRecord(t))
	}
	if err := s.lines.WriteLines(lines); err != nil {
		return fmt.Errorf("%w: %w", ErrSave, err)
	}
	return nil
}

// Backup moves the file at path to path+".bak" and returns the new path.
func Backup(path string) (string, error) {
	path = ExpandHome(path)
	bak := path + ".bak"
	if err := os.Rename(path, bak); err != nil {
		return "", err
	}
	return bak, nil
}

func splitLines(s string) []string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.TrimSuffix(s, "\n")
	if s == "" {
		return nil
	}
	return strings.Split(s, "\n")
}

func ExpandHome(path string) string {
	if strings.HasPrefix(path, "~"+string(os.PathSeparator)) || path == "~" {
		home, _ := os.UserHomeDir()
		if home != "" {
			return filepath.Join(home, strings.TrimPrefix(path, "~"))
		}
	}
	return path
}

func atomicWriteFile(path string, data []byte, perm fs.FileMode) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	tmp := filepath.Join(dir, fmt.Sprintf(".tmp-%d", timeNow().UnixNano()))
	if err := os.WriteFile(tmp, data, perm); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	// Rename is atomic on same filesystem.
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	return nil
}
