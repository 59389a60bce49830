package telemetry

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
)

func TestLogWritesSortedFields(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, "exchange", LevelDebug)

	log.Info(context.Background(), "spec_created", map[string]any{
		"zeta":  "last",
		"alpha": "first",
		"count": 3,
	})

	var ev Event
	if err := json.Unmarshal(buf.Bytes(), &ev); err != nil {
		t.Fatalf("output is not a JSON line: %v\n%s", err, buf.String())
	}
	if ev.Level != LevelInfo || ev.Service != "exchange" || ev.Msg != "spec_created" {
		t.Errorf("event = %+v", ev)
	}
	keys := make([]string, 0, len(ev.Fields))
	for _, f := range ev.Fields {
		keys = append(keys, f.K)
	}
	if strings.Join(keys, ",") != "alpha,count,zeta" {
		t.Errorf("field order = %v", keys)
	}
}

func TestLogLevelFilter(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, "exchange", LevelWarn)

	log.Debug(context.Background(), "hidden", nil)
	log.Info(context.Background(), "hidden", nil)
	if buf.Len() != 0 {
		t.Fatalf("below-threshold levels wrote output: %s", buf.String())
	}

	log.Error(context.Background(), "shown", nil)
	if buf.Len() == 0 {
		t.Fatal("error level suppressed")
	}
}

func TestRequestIDEnrichment(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, "exchange", LevelInfo)

	ctx := WithRequestID(context.Background(), "req-123")
	log.Info(ctx, "http_request", map[string]any{"request_id": "spoofed"})

	var ev Event
	if err := json.Unmarshal(buf.Bytes(), &ev); err != nil {
		t.Fatal(err)
	}
	for _, f := range ev.Fields {
		if f.K == "request_id" && f.V != "req-123" {
			t.Errorf("request_id = %q, want context value", f.V)
		}
	}
}

func TestSanitizeStripsControlChars(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, "exchange", LevelInfo)
	log.Info(context.Background(), "line\none\ttwo", nil)

	var ev Event
	if err := json.Unmarshal(buf.Bytes(), &ev); err != nil {
		t.Fatal(err)
	}
	if strings.ContainsAny(ev.Msg, "\n\t") {
		t.Errorf("control chars survived: %q", ev.Msg)
	}
}

func TestNopLoggerIsSafe(t *testing.T) {
	Nop.Info(context.Background(), "ignored", nil)
	var l *Logger
	l.Info(context.Background(), "nil receiver ignored", nil)
}
