package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"
)

func TestHandlerEmitsOneJSONObjectPerLine(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(NewJSONLineHandler(&buf, slog.LevelInfo))

	logger.Info("game finished", "winner", "A", "turns", 21)
	logger.Info("batch flushed", "rows", 512)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2\n%s", len(lines), buf.String())
	}

	var first map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &first); err != nil {
		t.Fatalf("line is not valid JSON: %v", err)
	}
	if first["msg"] != "game finished" || first["winner"] != "A" {
		t.Errorf("unexpected payload: %v", first)
	}
	if first["turns"] != float64(21) {
		t.Errorf("turns = %v, want 21", first["turns"])
	}
}

func TestHandlerLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(NewJSONLineHandler(&buf, slog.LevelWarn))

	logger.Info("dropped")
	logger.Warn("kept")

	if strings.Contains(buf.String(), "dropped") {
		t.Error("info record leaked through a warn-level handler")
	}
	if !strings.Contains(buf.String(), "kept") {
		t.Error("warn record missing")
	}
}

func TestHandlerWithAttrsAndGroup(t *testing.T) {
	var buf bytes.Buffer
	base := NewJSONLineHandler(&buf, slog.LevelInfo)
	logger := slog.New(base).With("run", "r1").WithGroup("game").With("id", "g1")

	logger.Info("turn", "n", 3)

	var payload map[string]any
	if err := json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &payload); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if payload["run"] != "r1" {
		t.Errorf("run attr lost: %v", payload)
	}
	if payload["game.id"] != "g1" || payload["game.n"] != float64(3) {
		t.Errorf("group prefixing wrong: %v", payload)
	}
}
