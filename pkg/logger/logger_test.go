package logger

import (
	"bytes"
	"context"
	"errors"
	"testing"

	pkgerrors "github.com/doorsanddrawers/quote-backend/pkg/errors"
	"github.com/rs/zerolog"
)

func TestLoggerErrorIncludesContextFields(t *testing.T) {
	buf := &bytes.Buffer{}
	log := New(Options{ServiceName: "test", Level: ParseLevel("debug"), Output: buf})

	ctx := context.Background()
	ctx = log.WithSessionID(ctx, "sess-123")
	ctx = log.WithOrderID(ctx, 42)

	log.Error(ctx, "boom", errors.New("boom"))

	if !bytes.Contains(buf.Bytes(), []byte("\"session_id\"")) {
		t.Fatalf("expected session_id to be preserved; entry=%s", buf.String())
	}
	if !bytes.Contains(buf.Bytes(), []byte("\"order_id\":42")) {
		t.Fatalf("expected order_id to be preserved; entry=%s", buf.String())
	}
	if !bytes.Contains(buf.Bytes(), []byte("\"stack\"")) {
		t.Fatalf("expected stack trace on error; entry=%s", buf.String())
	}
}

func TestLoggerErrorSkipsStackForCallerErrors(t *testing.T) {
	buf := &bytes.Buffer{}
	log := New(Options{ServiceName: "test", Output: buf})
	err := pkgerrors.New(pkgerrors.CodeValidation, "2 cart item(s) invalid").
		WithDetails(map[string]any{"items[0]": "quantity must be at least 1"})

	log.Error(context.Background(), "cart finalize rejected", err)

	entry := buf.String()
	if !bytes.Contains(buf.Bytes(), []byte(`"error_code":"VALIDATION_ERROR"`)) {
		t.Fatalf("expected error code; entry=%s", entry)
	}
	if !bytes.Contains(buf.Bytes(), []byte(`"items[0]"`)) {
		t.Fatalf("expected details; entry=%s", entry)
	}
	if bytes.Contains(buf.Bytes(), []byte(`"stack"`)) {
		t.Fatalf("validation failures should not carry a stack; entry=%s", entry)
	}
}

func TestLoggerWithFieldsDoesNotLeakToParent(t *testing.T) {
	buf := &bytes.Buffer{}
	log := New(Options{ServiceName: "test", Output: buf})
	parent := log.WithCustomerID(context.Background(), "c-1")
	_ = log.WithFields(parent, map[string]any{"item_type": "door"})

	log.Info(parent, "priced")
	if bytes.Contains(buf.Bytes(), []byte("item_type")) {
		t.Fatalf("child fields leaked into parent context; entry=%s", buf.String())
	}
	if !bytes.Contains(buf.Bytes(), []byte(`"customer_id":"c-1"`)) {
		t.Fatalf("expected customer id; entry=%s", buf.String())
	}
}

func TestLoggerWarnStackToggle(t *testing.T) {
	buf := &bytes.Buffer{}
	log := New(Options{ServiceName: "test", Level: ParseLevel("debug"), Output: buf, WarnStack: true})
	log.Warn(context.Background(), "warny")
	if !bytes.Contains(buf.Bytes(), []byte("\"stack\"")) {
		t.Fatalf("expected stack when warn stack enabled")
	}
}

func TestLoggerDebugSuppressedAtInfo(t *testing.T) {
	buf := &bytes.Buffer{}
	log := New(Options{ServiceName: "test", Level: zerolog.InfoLevel, Output: buf})
	log.Debug(context.Background(), "hidden")
	if buf.Len() != 0 {
		t.Fatalf("expected debug to be filtered at info level, got %s", buf.String())
	}
}

func TestParseLevelDefaults(t *testing.T) {
	if lvl := ParseLevel(""); lvl != zerolog.InfoLevel {
		t.Fatalf("expected default info level, got %v", lvl)
	}
	if lvl := ParseLevel("invalid"); lvl != zerolog.InfoLevel {
		t.Fatalf("invalid level should fallback to info, got %v", lvl)
	}
	if lvl := ParseLevel(" WARN "); lvl != zerolog.WarnLevel {
		t.Fatalf("expected warn level, got %v", lvl)
	}
}
