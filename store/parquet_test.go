package store

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteBatchAtomicRoundTrip(t *testing.T) {
	dir := t.TempDir()
	rows := []TurnRow{
		{GameID: "g1", Turn: 0, Player: "A", MoveR: 0, MoveC: 1, BlockR: 5, BlockC: 5, Winner: "A", Source: "test"},
		{GameID: "g1", Turn: 1, Player: "B", MoveR: 5, MoveC: 6, BlockR: 1, BlockC: 1, Winner: "A", Source: "test"},
		{GameID: "g2", Turn: 0, Player: "A", MoveR: 1, MoveC: 1, BlockR: 6, BlockC: 5, Draw: true, Source: "test"},
	}

	path, err := WriteBatchAtomic(dir, rows)
	require.NoError(t, err)
	require.NotEmpty(t, path)
	assert.Equal(t, dir, filepath.Dir(path), "batch must land in outDir, not tmp/")

	got, err := ReadBatch(path)
	require.NoError(t, err)
	assert.Equal(t, rows, got)
}

func TestWriteBatchAtomicEmptyRowsWritesNothing(t *testing.T) {
	dir := t.TempDir()
	path, err := WriteBatchAtomic(dir, nil)
	require.NoError(t, err)
	assert.Empty(t, path)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestWriteBatchAtomicLeavesNoTmpFile(t *testing.T) {
	dir := t.TempDir()
	_, err := WriteBatchAtomic(dir, []TurnRow{{GameID: "g", Player: "A"}})
	require.NoError(t, err)

	tmpEntries, err := os.ReadDir(filepath.Join(dir, "tmp"))
	require.NoError(t, err)
	assert.Empty(t, tmpEntries)
}
