package logging

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestLoggerFields(t *testing.T) {
	core, logs := observer.New(LevelDebug)
	logger := FromZap(zap.New(core)).Named("ingest").With("club_id", "c1")

	logger.Info("match stored", "match_id", "m1", "events", 42)
	logger.Error("rollup failed", "error", errors.New("boom"), "dangling")

	entries := logs.All()
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}

	first := entries[0].ContextMap()
	if first["club_id"] != "c1" || first["match_id"] != "m1" || first["events"] != int64(42) {
		t.Fatalf("unexpected fields: %+v", first)
	}
	if entries[0].LoggerName != "ingest" {
		t.Fatalf("unexpected logger name %q", entries[0].LoggerName)
	}

	second := entries[1].ContextMap()
	if second["error"] != "boom" {
		t.Fatalf("expected error field, got %+v", second)
	}
	if _, ok := second["dangling"]; !ok {
		t.Fatalf("expected odd trailing key to be kept")
	}
}

func TestNilLoggerFallsBackToDefault(t *testing.T) {
	var logger *Logger
	logger.Info("no panic")
	if logger.With("k", "v") == nil {
		t.Fatalf("expected nop logger")
	}
}

func TestMirrorReceivesWrittenEntries(t *testing.T) {
	core, _ := observer.New(LevelInfo)
	logger := FromZap(zap.New(core))

	var got []string
	SetMirror(func(_ context.Context, level Level, msg string, args ...any) {
		got = append(got, level.String()+":"+msg)
	})
	t.Cleanup(func() { SetMirror(nil) })

	logger.Debug("below level")
	logger.InfoContext(t.Context(), "match stored", "match_id", "m1")
	logger.Warn("slow rollup")

	if len(got) != 2 || got[0] != "info:match stored" || got[1] != "warn:slow rollup" {
		t.Fatalf("unexpected mirrored entries: %v", got)
	}
}
