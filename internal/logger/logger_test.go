package logger

import (
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestRedactsSensitiveKeys(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	log := &Logger{SugaredLogger: zap.New(core).Sugar()}

	log.Info("login",
		"email", "a@b.c",
		"password", "hunter22",
		"verification_code", "123456",
		"user_id", "u-1",
		"header", "eyJhbGciOiJIUzI1NiJ9.eyJ1aWQiOiJ1LTEifQ.sig",
	)

	entries := logs.All()
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	fields := entries[0].ContextMap()
	for _, key := range []string{"email", "password", "verification_code", "header"} {
		if fields[key] != redacted {
			t.Errorf("%s = %v, want redacted", key, fields[key])
		}
	}
	if fields["user_id"] != "u-1" {
		t.Errorf("user_id = %v, want u-1", fields["user_id"])
	}
}

func TestOddKeyValues(t *testing.T) {
	got := sanitizeKVs([]interface{}{"a", 1, "dangling"})
	if len(got) != 3 || got[2] != "dangling" {
		t.Fatalf("unexpected output: %#v", got)
	}
}
