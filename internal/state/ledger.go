package state

import (
	"bufio"
	"errors"
	"fmt"
	"io/fs"
	"iter"
	"os"
	"strings"

	"haxeget/internal/logger"
)

// FileLedger is a Ledger backed by a text file of "<version> <dir>" lines.
type FileLedger struct {
	path string
}

// NewFileLedger returns a ledger stored at path. The file need not exist yet.
func NewFileLedger(path string) *FileLedger {
	return &FileLedger{path: path}
}

// Path returns the backing file.
func (l *FileLedger) Path() string {
	return l.path
}

// parseLine splits a ledger line. ok is false for lines without exactly two fields.
func parseLine(line string) (Entry, bool) {
	fields := strings.Fields(line)
	if len(fields) != 2 {
		return Entry{}, false
	}
	return Entry{Version: fields[0], Dir: fields[1]}, true
}

// All yields every well formed entry. Malformed lines are logged and skipped so a
// single bad line never hides the entries after it.
func (l *FileLedger) All() iter.Seq2[Entry, error] {
	return func(yield func(Entry, error) bool) {
		f, err := os.Open(l.path)
		if errors.Is(err, fs.ErrNotExist) {
			return
		}
		if err != nil {
			yield(Entry{}, err)
			return
		}
		defer f.Close()

		scanner := bufio.NewScanner(f)
		lineNo := 0
		for scanner.Scan() {
			lineNo++
			line := scanner.Text()
			if strings.TrimSpace(line) == "" {
				continue
			}
			entry, ok := parseLine(line)
			if !ok {
				logger.Warn("[WARN] Skipping malformed line %d in %s: %q\n", lineNo, l.path, line)
				continue
			}
			if !yield(entry, nil) {
				return
			}
		}
		if err := scanner.Err(); err != nil {
			yield(Entry{}, fmt.Errorf("read %s: %w", l.path, err))
		}
	}
}

// Find returns the first entry for version.
func (l *FileLedger) Find(version string) (string, bool, error) {
	for entry, err := range l.All() {
		if err != nil {
			return "", false, err
		}
		if entry.Version == version {
			return entry.Dir, true, nil
		}
	}
	return "", false, nil
}

// Upsert drops every line for version and appends the new entry.
func (l *FileLedger) Upsert(version, dir string) error {
	lines, err := l.linesWithout(version)
	if err != nil {
		return err
	}
	lines = append(lines, version+" "+dir)
	logger.Debug("[DEBUG] Recording %s -> %s in %s\n", version, dir, l.path)
	return l.write(lines)
}

// Remove drops every line for version.
func (l *FileLedger) Remove(version string) error {
	lines, err := l.linesWithout(version)
	if err != nil {
		return err
	}
	logger.Debug("[DEBUG] Removing %s from %s\n", version, l.path)
	return l.write(lines)
}

// linesWithout reads the raw file and keeps every line whose first field is not
// version. Malformed lines are kept verbatim; rewriting must not lose data.
func (l *FileLedger) linesWithout(version string) ([]string, error) {
	data, err := os.ReadFile(l.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var kept []string
	for _, line := range strings.Split(string(data), "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		if fields := strings.Fields(line); fields[0] == version {
			continue
		}
		kept = append(kept, strings.TrimRight(line, "\r"))
	}
	return kept, nil
}

func (l *FileLedger) write(lines []string) error {
	var b strings.Builder
	for _, line := range lines {
		b.WriteString(line)
		b.WriteByte('\n')
	}
	return writeFile(l.path, []byte(b.String()))
}
