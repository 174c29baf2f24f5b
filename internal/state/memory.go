package state

import (
	"iter"
	"slices"
)

// MemoryLedger is an in-process Ledger with the same replace-then-append semantics
// as FileLedger. It is meant for tests.
type MemoryLedger struct {
	entries []Entry
}

func (m *MemoryLedger) Find(version string) (string, bool, error) {
	for _, e := range m.entries {
		if e.Version == version {
			return e.Dir, true, nil
		}
	}
	return "", false, nil
}

func (m *MemoryLedger) Upsert(version, dir string) error {
	_ = m.Remove(version)
	m.entries = append(m.entries, Entry{Version: version, Dir: dir})
	return nil
}

func (m *MemoryLedger) Remove(version string) error {
	m.entries = slices.DeleteFunc(m.entries, func(e Entry) bool { return e.Version == version })
	return nil
}

func (m *MemoryLedger) All() iter.Seq2[Entry, error] {
	snapshot := slices.Clone(m.entries)
	return func(yield func(Entry, error) bool) {
		for _, e := range snapshot {
			if !yield(e, nil) {
				return
			}
		}
	}
}

// MemoryPointer is an in-process Pointer meant for tests.
type MemoryPointer struct {
	record Record
	set    bool
}

func (m *MemoryPointer) Get() (Record, bool, error) {
	if !m.set || m.record.Version == "" {
		return Record{}, false, nil
	}
	return m.record, true, nil
}

func (m *MemoryPointer) Set(version, dir string) error {
	m.record = Record{Version: version, Dir: dir}
	m.set = true
	return nil
}

func (m *MemoryPointer) Clear() error {
	m.record = Record{}
	m.set = false
	return nil
}
