// Package store persists selfplay match archives as parquet batches.
//
// Rows are write-only telemetry about finished games; nothing in the
// game itself is ever loaded back from disk.
package store

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/parquet-go/parquet-go"
	"github.com/parquet-go/parquet-go/compress/zstd"
)

// TurnRow is a single (game, turn) record.
//
// One row per turn: who moved, where the pawn went, where the block
// landed. Outcome columns are stamped onto every row of a game once that
// game completes, so each batch file is self-contained for analysis.
type TurnRow struct {
	GameID string `parquet:"game_id,dict"`
	Turn   int32  `parquet:"turn"`
	Player string `parquet:"player,dict"`

	MoveR  int32 `parquet:"move_r"`
	MoveC  int32 `parquet:"move_c"`
	BlockR int32 `parquet:"block_r"`
	BlockC int32 `parquet:"block_c"`

	// Winner is "A" or "B", empty for a technical draw.
	Winner string `parquet:"winner,dict,optional"`
	Draw   bool   `parquet:"draw"`

	// Source identifies the run that produced the row (e.g. the agent
	// pairing of a selfplay batch).
	Source string `parquet:"source,dict,optional"`
}

// WriteBatchAtomic writes rows as one parquet file under outDir. The
// file is written into a tmp/ subdirectory first and renamed into place,
// so readers never observe a partial batch.
func WriteBatchAtomic(outDir string, rows []TurnRow) (string, error) {
	if len(rows) == 0 {
		return "", nil
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return "", fmt.Errorf("create output dir: %w", err)
	}

	tmpDir := filepath.Join(outDir, "tmp")
	if err := os.MkdirAll(tmpDir, 0o755); err != nil {
		return "", fmt.Errorf("create tmp dir: %w", err)
	}

	name := fmt.Sprintf("batch_%d.parquet", time.Now().UnixNano())
	finalPath := filepath.Join(outDir, name)
	tmpPath := filepath.Join(tmpDir, name+".tmp")
	_ = os.Remove(tmpPath)

	if err := parquet.WriteFile(tmpPath, rows,
		parquet.Compression(&zstd.Codec{Level: zstd.SpeedBetterCompression}),
		parquet.KeyValueMetadata("schema", "turn_row_v1"),
	); err != nil {
		_ = os.Remove(tmpPath)
		return "", fmt.Errorf("write parquet: %w", err)
	}

	if err := os.Rename(tmpPath, finalPath); err != nil {
		_ = os.Remove(tmpPath)
		return "", fmt.Errorf("rename parquet: %w", err)
	}
	return finalPath, nil
}

// ReadBatch loads every row of one batch file. Used by tests and ad-hoc
// inspection, not by the runner.
func ReadBatch(path string) ([]TurnRow, error) {
	rows, err := parquet.ReadFile[TurnRow](path)
	if err != nil {
		return nil, fmt.Errorf("read parquet: %w", err)
	}
	return rows, nil
}
