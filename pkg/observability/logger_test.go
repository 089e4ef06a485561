package observability

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/mwapio/console/pkg/contextkeys"
)

func TestLoggerLevels(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(WarnLevel, &buf)

	logger.Debug("debug message")
	logger.Info("info message")
	logger.Warn("warn message")
	logger.Error("error message")

	output := buf.String()
	if strings.Contains(output, "debug message") {
		t.Error("debug message should be filtered at warn level")
	}
	if strings.Contains(output, "info message") {
		t.Error("info message should be filtered at warn level")
	}
	if !strings.Contains(output, "warn message") {
		t.Error("warn message should be logged")
	}
	if !strings.Contains(output, "error message") {
		t.Error("error message should be logged")
	}
}

func TestLoggerWithFields(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(InfoLevel, &buf)

	logger.WithField("tenant_id", "t1").WithError(errors.New("boom")).Info("something happened")

	var entry map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("expected JSON log output: %v", err)
	}
	if entry["tenant_id"] != "t1" {
		t.Errorf("expected tenant_id field, got %v", entry["tenant_id"])
	}
	if entry["error"] != "boom" {
		t.Errorf("expected error field, got %v", entry["error"])
	}
}

func TestLoggerWithNilError(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(InfoLevel, &buf)

	logger.WithError(nil).Info("no error")

	if strings.Contains(buf.String(), `"error"`) {
		t.Error("nil error should not add an error field")
	}
}

func TestFromContext(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(InfoLevel, &buf)

	ctx := WithLogger(context.Background(), logger)
	ctx = contextkeys.WithRequestID(ctx, "req-123")
	ctx = contextkeys.WithUserID(ctx, "auth0|abc")

	FromContext(ctx).Info("contextual")

	output := buf.String()
	if !strings.Contains(output, "req-123") {
		t.Error("expected request_id in log output")
	}
	if !strings.Contains(output, "auth0|abc") {
		t.Error("expected user_id in log output")
	}
}

func TestGetLoggerFallback(t *testing.T) {
	if GetLogger(context.Background()) == nil {
		t.Fatal("GetLogger must fall back to a default logger")
	}
}
