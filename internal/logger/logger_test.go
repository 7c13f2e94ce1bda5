package logger

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"strings"
	"testing"

	"github.com/Adda-Baaj/salestax-lookup/internal/config"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestZapLoggerWritesObjectField(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	log := New(zap.New(core))

	log.ErrorObj("lookup failed", "ziptax_error", map[string]any{"status_code": 401})

	entries := logs.FilterMessage("lookup failed").All()
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	if entries[0].Level != zapcore.ErrorLevel {
		t.Fatalf("level = %s", entries[0].Level)
	}
	field, ok := entries[0].ContextMap()["ziptax_error"].(map[string]any)
	if !ok || field["status_code"] != 401 {
		t.Fatalf("unexpected field: %#v", entries[0].ContextMap())
	}
}

func TestInitWritesJSONAtConfiguredLevel(t *testing.T) {
	var buf bytes.Buffer
	log, err := initWithWriter(&config.Config{AppName: "salestax-test", LogLevel: "warn"}, &buf)
	if err != nil {
		t.Fatalf("init: %v", err)
	}
	defer func() { S = nil }()

	log.InfoObj("hidden", "k", 1)
	log.WarnObj("shown", "k", 2)

	out := strings.TrimSpace(buf.String())
	if strings.Contains(out, "hidden") {
		t.Fatalf("info entry should be filtered at warn level: %s", out)
	}
	var entry map[string]any
	if err := json.Unmarshal([]byte(out), &entry); err != nil {
		t.Fatalf("expected single JSON line, got %q: %v", out, err)
	}
	if entry["msg"] != "shown" || entry["app"] != "salestax-test" {
		t.Fatalf("unexpected entry: %#v", entry)
	}
	if _, ok := entry["ts"]; !ok {
		t.Fatalf("missing ts key: %#v", entry)
	}
}

func TestParseLevel(t *testing.T) {
	cases := map[string]zapcore.Level{
		"debug":   zapcore.DebugLevel,
		"warning": zapcore.WarnLevel,
		"error":   zapcore.ErrorLevel,
		"bogus":   zapcore.InfoLevel,
	}
	for in, want := range cases {
		if got := ParseLevel(in); got != want {
			t.Errorf("ParseLevel(%q) = %s, want %s", in, got, want)
		}
	}
}

func TestPackageHelpersAreNoopsBeforeInit(t *testing.T) {
	S = nil
	InfoObj("x", "k", 1)
	ErrorObj("x", "k", 1)
	if err := Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
}

func TestInitLogsFailuresToStdout(t *testing.T) {
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("pipe: %v", err)
	}
	orig := os.Stdout
	os.Stdout = w
	defer func() {
		os.Stdout = orig
		S = nil
	}()

	log, err := Init(&config.Config{LogLevel: "info"})
	if err != nil {
		t.Fatalf("init: %v", err)
	}
	log.ErrorObj("Error fetching sales tax: unexpected status 401", "lookup_error", map[string]any{"status_code": 401})
	_ = Close()
	w.Close()

	out, err := io.ReadAll(r)
	if err != nil {
		t.Fatalf("read stdout: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(out)), "\n")
	if len(lines) != 1 {
		t.Fatalf("expected one stdout line, got %q", out)
	}
	var entry map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &entry); err != nil {
		t.Fatalf("stdout line is not JSON: %q", lines[0])
	}
	if entry["msg"] != "Error fetching sales tax: unexpected status 401" || entry["level"] != "error" {
		t.Fatalf("unexpected entry: %#v", entry)
	}
}
