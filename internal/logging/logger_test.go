package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"retitle/internal/config"
)

func TestNewRejectsUnknownFormat(t *testing.T) {
	if _, err := New(Options{Format: "xml"}); err == nil {
		t.Fatal("expected error for unsupported format")
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input string
		want  slog.Level
	}{
		{"debug", slog.LevelDebug},
		{" WARN ", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"", slog.LevelInfo},
		{"bogus", slog.LevelInfo},
	}
	for _, tt := range tests {
		if got := parseLevel(tt.input); got != tt.want {
			t.Errorf("parseLevel(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestPrettyHandlerFormatsComponentAndFields(t *testing.T) {
	var buf bytes.Buffer
	lvl := new(slog.LevelVar)
	logger := NewComponentLogger(slog.New(newPrettyHandler(&buf, lvl, false)), "renamer")

	logger.Info("renamed file", String(FieldPath, "/music/a b.mp3"), Int("count", 2))
	logger.Debug("hidden")

	out := buf.String()
	if !strings.Contains(out, "INFO renamer: renamed file") {
		t.Errorf("output missing component prefix: %q", out)
	}
	if !strings.Contains(out, `path="/music/a b.mp3"`) {
		t.Errorf("output missing quoted path: %q", out)
	}
	if !strings.Contains(out, "count=2") {
		t.Errorf("output missing count: %q", out)
	}
	if strings.Contains(out, "hidden") {
		t.Errorf("debug record written at info level: %q", out)
	}
}

func TestPrettyHandlerGroups(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(newPrettyHandler(&buf, new(slog.LevelVar), false))
	logger.WithGroup("engine").Info("step", String("name", "scan"))
	if !strings.Contains(buf.String(), "engine.name=scan") {
		t.Errorf("grouped key missing: %q", buf.String())
	}
}

func TestJSONHandlerFields(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(newJSONHandler(&buf, new(slog.LevelVar), false))
	logger.Warn("fallback used", String(FieldTitle, "raw"))

	var record map[string]any
	if err := json.Unmarshal(buf.Bytes(), &record); err != nil {
		t.Fatalf("decode json: %v", err)
	}
	if record["level"] != "warn" {
		t.Errorf("level = %v, want warn", record["level"])
	}
	if _, ok := record["ts"]; !ok {
		t.Errorf("missing ts field: %v", record)
	}
	if record[FieldTitle] != "raw" {
		t.Errorf("title = %v", record[FieldTitle])
	}
}

func TestNewFromConfigWritesLogFile(t *testing.T) {
	dir := t.TempDir()
	cfg := config.Default()
	cfg.Logging.Level = "info"
	cfg.Paths.LogDir = filepath.Join(dir, "logs")

	logger, err := NewFromConfig(&cfg)
	if err != nil {
		t.Fatalf("NewFromConfig: %v", err)
	}
	logger.Info("batch finished", String(FieldBatchID, "abc"))

	data, err := os.ReadFile(filepath.Join(cfg.Paths.LogDir, LogFileName))
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	if !strings.Contains(string(data), `"batch_id":"abc"`) {
		t.Errorf("log file missing record: %s", data)
	}
}

type failingHandler struct{ NoopHandler }

func (failingHandler) Enabled(context.Context, slog.Level) bool { return true }

func (failingHandler) Handle(context.Context, slog.Record) error { return errors.New("boom") }

func TestFanoutHandlerDeliversToAll(t *testing.T) {
	var a, b bytes.Buffer
	lvl := new(slog.LevelVar)
	handler := newFanoutHandler(
		newPrettyHandler(&a, lvl, false),
		nil,
		failingHandler{},
		newJSONHandler(&b, lvl, false),
	)
	logger := slog.New(handler).With(String("k", "v"))
	logger.Info("hello")

	if !strings.Contains(a.String(), "hello k=v") {
		t.Errorf("pretty output = %q", a.String())
	}
	if !strings.Contains(b.String(), `"k":"v"`) {
		t.Errorf("json output = %q", b.String())
	}
	if err := handler.Handle(context.Background(), slog.NewRecord(time.Now(), slog.LevelInfo, "x", 0)); err == nil {
		t.Error("expected first handler error to surface")
	}
}

func TestFanoutHandlerCollapses(t *testing.T) {
	if _, ok := newFanoutHandler().(NoopHandler); !ok {
		t.Error("empty fanout should be a no-op handler")
	}
	h := NoopHandler{}
	if got := newFanoutHandler(nil, h); got != slog.Handler(h) {
		t.Errorf("single handler fanout = %T", got)
	}
}

func TestWithContextAddsBatchID(t *testing.T) {
	var buf bytes.Buffer
	base := slog.New(newPrettyHandler(&buf, new(slog.LevelVar), false))
	ctx := ContextWithBatchID(context.Background(), "b-1")
	WithContext(ctx, base).Info("start")
	if !strings.Contains(buf.String(), "batch_id=b-1") {
		t.Errorf("missing batch id: %q", buf.String())
	}
	if _, ok := BatchIDFromContext(context.Background()); ok {
		t.Error("empty context reported a batch id")
	}
}

func TestWarnWithContextAddsHints(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(newPrettyHandler(&buf, new(slog.LevelVar), false))
	WarnWithContext(logger, "skip", "rename_skipped")
	out := buf.String()
	if !strings.Contains(out, "event_type=rename_skipped") || !strings.Contains(out, "error_hint=") {
		t.Errorf("WarnWithContext output = %q", out)
	}
}
