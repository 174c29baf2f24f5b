package state

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func newLedger(t *testing.T) *FileLedger {
	t.Helper()
	return NewFileLedger(filepath.Join(t.TempDir(), "installed"))
}

func collect(t *testing.T, l Ledger) []Entry {
	t.Helper()
	var out []Entry
	for e, err := range l.All() {
		require.NoError(t, err)
		out = append(out, e)
	}
	return out
}

func TestFileLedger_MissingFile(t *testing.T) {
	l := newLedger(t)
	dir, ok, err := l.Find("4.3.1")
	require.NoError(t, err)
	require.False(t, ok)
	require.Empty(t, dir)
	require.Empty(t, collect(t, l))
	require.NoError(t, l.Remove("4.3.1"))
}

func TestFileLedger_UpsertReplaces(t *testing.T) {
	l := newLedger(t)
	require.NoError(t, l.Upsert("4.3.1", "haxe_a"))
	require.NoError(t, l.Upsert("nightly", "haxe_nightly"))
	require.NoError(t, l.Upsert("4.3.1", "haxe_b"))
	require.NoError(t, l.Upsert("4.3.1", "haxe_c"))

	dir, ok, err := l.Find("4.3.1")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "haxe_c", dir)

	data, err := os.ReadFile(l.Path())
	require.NoError(t, err)
	require.Equal(t, 1, strings.Count(string(data), "4.3.1 "))
	require.Equal(t, "nightly haxe_nightly\n4.3.1 haxe_c\n", string(data))
}

func TestFileLedger_InsertionOrder(t *testing.T) {
	l := newLedger(t)
	for _, v := range []string{"4.3.1", "3.4.7", "4.0.0"} {
		require.NoError(t, l.Upsert(v, "haxe-"+v))
	}
	got := collect(t, l)
	require.Equal(t, []Entry{
		{"4.3.1", "haxe-4.3.1"},
		{"3.4.7", "haxe-3.4.7"},
		{"4.0.0", "haxe-4.0.0"},
	}, got)

	// A second pass starts over.
	require.Len(t, collect(t, l), 3)
}

func TestFileLedger_RemoveMatchesWholeField(t *testing.T) {
	l := newLedger(t)
	require.NoError(t, l.Upsert("4.3.1", "haxe_4.3.1"))
	require.NoError(t, l.Upsert("4.3", "haxe_4.3"))
	require.NoError(t, l.Remove("4.3"))

	require.Equal(t, []Entry{{"4.3.1", "haxe_4.3.1"}}, collect(t, l))
	require.NoError(t, l.Remove("9.9.9"))
	require.Len(t, collect(t, l), 1)
}

func TestFileLedger_MalformedLinesSkippedNotTruncated(t *testing.T) {
	l := newLedger(t)
	content := "4.3.1 haxe_4.3.1\ngarbage\n\n3.4.7 haxe_3.4.7\nthree fields here\n4.0.0 haxe_4.0.0\n"
	require.NoError(t, os.WriteFile(l.Path(), []byte(content), 0o644))

	require.Equal(t, []Entry{
		{"4.3.1", "haxe_4.3.1"},
		{"3.4.7", "haxe_3.4.7"},
		{"4.0.0", "haxe_4.0.0"},
	}, collect(t, l))

	dir, ok, err := l.Find("4.0.0")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "haxe_4.0.0", dir)

	require.NoError(t, l.Remove("3.4.7"))
	data, err := os.ReadFile(l.Path())
	require.NoError(t, err)
	require.Equal(t, "4.3.1 haxe_4.3.1\ngarbage\nthree fields here\n4.0.0 haxe_4.0.0\n", string(data))
}

func TestFileLedger_AllStopsEarly(t *testing.T) {
	l := newLedger(t)
	require.NoError(t, l.Upsert("a", "da"))
	require.NoError(t, l.Upsert("b", "db"))

	seen := 0
	for range l.All() {
		seen++
		break
	}
	require.Equal(t, 1, seen)
}

func TestMemoryLedger_MatchesFileSemantics(t *testing.T) {
	m := &MemoryLedger{}
	require.NoError(t, m.Upsert("a", "1"))
	require.NoError(t, m.Upsert("b", "2"))
	require.NoError(t, m.Upsert("a", "3"))
	require.Equal(t, []Entry{{"b", "2"}, {"a", "3"}}, collect(t, m))

	require.NoError(t, m.Remove("b"))
	_, ok, err := m.Find("b")
	require.NoError(t, err)
	require.False(t, ok)
}
