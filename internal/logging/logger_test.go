package logging

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestConsoleFormat(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(Options{Format: "console", Level: "debug", Output: &buf})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	logger = NewComponentLogger(logger, "ingest")
	logger.Info("game stored", String(FieldGameID, "SDN199605170"), Int("plays", 78))

	line := buf.String()
	for _, want := range []string{"INFO", "[ingest]", "game stored", "game_id=SDN199605170", "plays=78"} {
		if !strings.Contains(line, want) {
			t.Errorf("line %q missing %q", line, want)
		}
	}
}

func TestConsoleQuotesValuesWithSpaces(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(Options{Output: &buf})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	logger.Info("anomaly", String("detail", "no runner on second"))
	if !strings.Contains(buf.String(), `detail="no runner on second"`) {
		t.Errorf("line %q not quoted", buf.String())
	}
}

func TestConsoleGroupPrefixesKeys(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(Options{Output: &buf})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	logger.WithGroup("game").Info("assembled", String("id", "X"))
	if !strings.Contains(buf.String(), "game.id=X") {
		t.Errorf("line %q missing group prefix", buf.String())
	}
}

func TestJSONFormat(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(Options{Format: "json", Level: "warn", Output: &buf})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	logger.Info("dropped")
	logger.Warn("baserunner anomaly", String(FieldGameID, "BAL199604010"))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("expected 1 line at warn level, got %d: %q", len(lines), buf.String())
	}
	var payload map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &payload); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if payload["level"] != "warn" || payload["msg"] != "baserunner anomaly" {
		t.Errorf("payload = %v", payload)
	}
	if payload[FieldGameID] != "BAL199604010" {
		t.Errorf("game id = %v", payload[FieldGameID])
	}
	if _, ok := payload["ts"]; !ok {
		t.Error("missing ts key")
	}
}

func TestNewRejectsUnknownValues(t *testing.T) {
	if _, err := New(Options{Format: "xml"}); err == nil {
		t.Error("expected error for unknown format")
	}
	if _, err := New(Options{Level: "loud"}); err == nil {
		t.Error("expected error for unknown level")
	}
}

func TestFileMirror(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "logs", "scorebook.log")
	var buf bytes.Buffer
	logger, err := New(Options{Output: &buf, FilePath: path})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	logger.Info("hello")
	body, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read mirrored log: %v", err)
	}
	if !strings.Contains(string(body), "hello") {
		t.Errorf("mirrored log = %q", body)
	}
}

func TestNopLoggerDiscards(t *testing.T) {
	logger := NewNop()
	logger.Error("nothing should happen", Error(os.ErrClosed))
}

func TestCleanupOldLogs(t *testing.T) {
	dir := t.TempDir()
	old := filepath.Join(dir, "scorebook-2020.log")
	fresh := filepath.Join(dir, "scorebook.log")
	for _, path := range []string{old, fresh} {
		if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
			t.Fatalf("write: %v", err)
		}
	}
	stale := time.Now().AddDate(0, 0, -90)
	if err := os.Chtimes(old, stale, stale); err != nil {
		t.Fatalf("chtimes: %v", err)
	}

	CleanupOldLogs(NewNop(), dir, "scorebook*.log", 30)

	if _, err := os.Stat(old); !os.IsNotExist(err) {
		t.Error("stale log not pruned")
	}
	if _, err := os.Stat(fresh); err != nil {
		t.Error("fresh log pruned")
	}
}
