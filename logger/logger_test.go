package logger

import (
	"testing"
)

func TestConfigDefaults(t *testing.T) {
	cfg := Config{}
	cfg.ApplyDefaults()

	if cfg.Level != "info" {
		t.Fatalf("expected default level info, got %s", cfg.Level)
	}
	if cfg.Format != "console" {
		t.Fatalf("expected default format console, got %s", cfg.Format)
	}
	if cfg.Output != "stdout" {
		t.Fatalf("expected default output stdout, got %s", cfg.Output)
	}
}

func TestConfigValidate(t *testing.T) {
	cfg := Config{Level: "verbose", Format: "json", Output: "stdout"}
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for invalid level")
	}

	cfg = Config{Level: "debug", Format: "xml", Output: "stdout"}
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for invalid format")
	}

	cfg = Config{Level: "debug", Format: "json", Output: "stderr"}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestFields(t *testing.T) {
	m := Fields("subject_id", "u-1", "attempts", 3)
	if m["subject_id"] != "u-1" {
		t.Fatalf("expected subject_id=u-1, got %v", m["subject_id"])
	}
	if m["attempts"] != 3 {
		t.Fatalf("expected attempts=3, got %v", m["attempts"])
	}

	// Odd trailing value is dropped, non-string keys are skipped.
	m = Fields("a", 1, "dangling")
	if len(m) != 1 {
		t.Fatalf("expected 1 field, got %d", len(m))
	}
}

func TestWithComponent(t *testing.T) {
	log := Nop().WithComponent("issuer")
	// Must not panic and must return a distinct instance.
	if log == nil {
		t.Fatal("expected non-nil logger")
	}
	log.Info("noop")
}
