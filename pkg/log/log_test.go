package log_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"

	"github.com/ezoic/panelkit/pkg/log"
)

func TestToLogLevel(t *testing.T) {
	cases := map[string]log.Level{
		"debug":    log.DebugLevel,
		"info":     log.InfoLevel,
		"warn":     log.WarnLevel,
		"warning":  log.WarnLevel,
		"error":    log.ErrorLevel,
		"disabled": log.Disabled,
		"off":      log.Disabled,
		"bogus":    log.InfoLevel,
	}
	for name, want := range cases {
		if got := log.ToLogLevel(name); got != want {
			t.Errorf("ToLogLevel(%q) = %v, want %v", name, got, want)
		}
	}
}

func TestZerologLogger_Fields(t *testing.T) {
	var buf bytes.Buffer
	zl := zerolog.New(&buf)

	logger := log.WrapZerolog(zl).With(log.ModelNameKey, "Tabularizer")
	logger.Info("transform finished",
		log.OperationKey, log.OperationTransform,
		log.RowsKey, 42,
	)

	var event map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &event); err != nil {
		t.Fatalf("event is not JSON: %v", err)
	}
	if event["model"] != "Tabularizer" {
		t.Errorf("expected model field, got %v", event)
	}
	if event["operation"] != "transform" {
		t.Errorf("expected operation field, got %v", event)
	}
	if event["rows"] != float64(42) {
		t.Errorf("expected rows field, got %v", event)
	}
	if event["message"] != "transform finished" {
		t.Errorf("expected message, got %v", event)
	}
}

func TestZerologLogger_UnpairedValues(t *testing.T) {
	var buf bytes.Buffer
	logger := log.WrapZerolog(zerolog.New(&buf))

	// a trailing unpaired value and a non-string key are dropped, not
	// panicked on
	logger.Info("odd", "key", 1, "dangling")
	logger.Info("bad key", 7, "value")

	var event map[string]interface{}
	if err := json.Unmarshal([]byte(firstLine(buf.String())), &event); err != nil {
		t.Fatalf("event is not JSON: %v", err)
	}
	if event["key"] != float64(1) {
		t.Errorf("expected paired field, got %v", event)
	}
	if _, ok := event["dangling"]; ok {
		t.Error("dangling value must not become a field")
	}
}

func TestGetLoggerWithName_Default(t *testing.T) {
	// first use installs a default provider
	logger := log.GetLoggerWithName("test")
	if logger == nil {
		t.Fatal("expected a logger from the default provider")
	}
}

func firstLine(s string) string {
	for i := 0; i < len(s); i++ {
		if s[i] == '\n' {
			return s[:i]
		}
	}
	return s
}
