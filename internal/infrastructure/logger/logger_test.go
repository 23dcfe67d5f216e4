package logger

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/postkeeper/core/internal/infrastructure/config"
)

func observed() (*Logger, *observer.ObservedLogs) {
	core, logs := observer.New(zapcore.DebugLevel)
	return FromZap(zap.New(core)), logs
}

func TestNew(t *testing.T) {
	for _, format := range []string{"json", "console"} {
		l, err := New(config.LoggerConfig{Level: "info", Format: format})
		if err != nil {
			t.Fatalf("New(%s): %v", format, err)
		}
		if l == nil {
			t.Fatalf("New(%s) returned nil", format)
		}
	}
}

func TestNewInvalidLevel(t *testing.T) {
	if _, err := New(config.LoggerConfig{Level: "loud", Format: "json"}); err == nil {
		t.Fatal("New accepted an unknown level")
	}
}

func TestNewFileOutput(t *testing.T) {
	file := filepath.Join(t.TempDir(), "app.log")
	l, err := New(config.LoggerConfig{Level: "debug", Format: "json", Output: "file", Filename: file})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	l.Infow("hello")
	_ = l.Close()
}

func TestLogHTTPRequestLevels(t *testing.T) {
	l, logs := observed()

	l.LogHTTPRequest("GET", "/api/v1/blogs", "req-1", 200, 1.5, nil)
	l.LogHTTPRequest("GET", "/api/v1/blogs/x", "req-2", 404, 0.3, errors.New("not found"))
	l.LogHTTPRequest("POST", "/api/v1/blogs", "", 500, 2, errors.New("disk full"))

	all := logs.All()
	if len(all) != 3 {
		t.Fatalf("entries = %d, want 3", len(all))
	}
	if all[0].Level != zapcore.InfoLevel || all[0].ContextMap()["request_id"] != "req-1" {
		t.Errorf("entry 0 = %+v", all[0])
	}
	if all[1].Level != zapcore.InfoLevel || all[1].ContextMap()["error"] != "not found" {
		t.Errorf("client error should log at info with the error: %+v", all[1])
	}
	if all[2].Level != zapcore.ErrorLevel || all[2].Message != "HTTP request failed" {
		t.Errorf("server error entry = %+v", all[2])
	}
	if _, ok := all[2].ContextMap()["request_id"]; ok {
		t.Error("empty request id was logged")
	}
}

func TestLogStoreOperation(t *testing.T) {
	l, logs := observed()

	l.LogStoreOperation("load", "posts.json", 3, time.Millisecond, nil)
	l.LogStoreOperation("save", "posts.json", 3, time.Millisecond, errors.New("read-only"))

	if n := logs.FilterMessage("Record store operation").FilterField(zap.Int("records", 3)).Len(); n != 1 {
		t.Errorf("success entries = %d", n)
	}
	failed := logs.FilterMessage("Record store operation failed").All()
	if len(failed) != 1 || failed[0].Level != zapcore.ErrorLevel {
		t.Fatalf("failure entries = %+v", failed)
	}
	if failed[0].ContextMap()["op"] != "save" {
		t.Errorf("op = %v", failed[0].ContextMap()["op"])
	}
}

func TestWithHelpers(t *testing.T) {
	l, logs := observed()

	l.WithComponent("http").WithRequestID("abc").WithError(errors.New("boom")).Infow("done")

	fields := logs.All()[0].ContextMap()
	for k, want := range map[string]string{"component": "http", "request_id": "abc", "error": "boom"} {
		if fields[k] != want {
			t.Errorf("%s = %v, want %q", k, fields[k], want)
		}
	}
}

func TestNewNop(t *testing.T) {
	NewNop().Infow("discarded", "k", "v")
}
