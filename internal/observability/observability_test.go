package observability

import (
	"context"
	"errors"
	"testing"

	otellog "go.opentelemetry.io/otel/log"

	"github.com/riskibarqy/match-ingest/internal/config"
	"github.com/riskibarqy/match-ingest/internal/platform/logging"
)

func TestInitUptraceDisabled(t *testing.T) {
	cfg := config.Config{
		UptraceEnabled: false,
		ServiceName:    "match-ingest",
		ServiceVersion: "dev",
		AppEnv:         config.EnvDev,
	}

	shutdown, err := InitUptrace(cfg, logging.NewNop())
	if err != nil {
		t.Fatalf("init uptrace: %v", err)
	}
	if err := shutdown(context.Background()); err != nil {
		t.Fatalf("shutdown uptrace: %v", err)
	}
}

func TestInitPyroscopeDisabled(t *testing.T) {
	stop, err := InitPyroscope(config.Config{}, logging.NewNop())
	if err != nil {
		t.Fatalf("init pyroscope: %v", err)
	}
	if err := stop(); err != nil {
		t.Fatalf("stop pyroscope: %v", err)
	}
}

func TestPprofDisabledReturnsNil(t *testing.T) {
	if srv := StartPprofServer(config.Config{PprofEnabled: false}, logging.NewNop()); srv != nil {
		t.Fatalf("expected no pprof server when disabled")
	}
	if err := StopPprofServer(context.Background(), nil); err != nil {
		t.Fatalf("stop nil server: %v", err)
	}
}

func TestSkipMirroredLog(t *testing.T) {
	cases := []struct {
		name  string
		level logging.Level
		msg   string
		args  []any
		want  bool
	}{
		{name: "health check", level: logging.LevelInfo, msg: "http_request", args: []any{"http_path", "/healthz"}, want: true},
		{name: "upload request", level: logging.LevelInfo, msg: "http_request", args: []any{"http_path", "/v1/admin/clubs/c1/matches"}, want: false},
		{name: "debug entry", level: logging.LevelDebug, msg: "event batch stored", want: true},
		{name: "other entry with health path", level: logging.LevelWarn, msg: "match ingested", args: []any{"http_path", "/healthz"}, want: false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := skipMirroredLog(tc.level, tc.msg, tc.args); got != tc.want {
				t.Fatalf("expected %v, got %v", tc.want, got)
			}
		})
	}
}

func TestLogAttributes(t *testing.T) {
	attrs := logAttributes([]any{"club_id", "club-harbour", "events", 42, "error", errors.New("boom"), "dangling"})
	if len(attrs) != 4 {
		t.Fatalf("expected 4 attributes, got %d", len(attrs))
	}
	if attrs[0].Key != "club_id" || attrs[0].Value.AsString() != "club-harbour" {
		t.Fatalf("unexpected club_id attribute")
	}
	if attrs[1].Key != "events" || attrs[1].Value.AsInt64() != 42 {
		t.Fatalf("unexpected events attribute")
	}
	if attrs[2].Value.AsString() != "boom" {
		t.Fatalf("unexpected error attribute")
	}
	if attrs[3].Key != "dangling" || attrs[3].Value.Kind() != otellog.KindEmpty {
		t.Fatalf("unexpected dangling attribute")
	}
}
