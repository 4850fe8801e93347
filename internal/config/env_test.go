package config

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestGetEnv(t *testing.T) {
	t.Setenv("SPACEDODGE_TEST_STR", "value")

	if got := GetEnv("SPACEDODGE_TEST_STR", "fallback"); got != "value" {
		t.Errorf("GetEnv = %q, want %q", got, "value")
	}
	if got := GetEnv("SPACEDODGE_TEST_UNSET", "fallback"); got != "fallback" {
		t.Errorf("GetEnv = %q, want %q", got, "fallback")
	}
}

func TestGetEnvTyped(t *testing.T) {
	t.Setenv("SPACEDODGE_TEST_INT", " 42 ")
	t.Setenv("SPACEDODGE_TEST_BAD_INT", "forty")
	t.Setenv("SPACEDODGE_TEST_DUR", "2s")
	t.Setenv("SPACEDODGE_TEST_BAD_DUR", "2")
	t.Setenv("SPACEDODGE_TEST_BOOL", "true")
	t.Setenv("SPACEDODGE_TEST_FLOAT", "0.75")

	if got := GetEnvInt("SPACEDODGE_TEST_INT", 1); got != 42 {
		t.Errorf("GetEnvInt = %d, want 42", got)
	}
	if got := GetEnvInt("SPACEDODGE_TEST_BAD_INT", 1); got != 1 {
		t.Errorf("GetEnvInt malformed = %d, want fallback 1", got)
	}
	if got := GetEnvDuration("SPACEDODGE_TEST_DUR", time.Second); got != 2*time.Second {
		t.Errorf("GetEnvDuration = %v, want 2s", got)
	}
	if got := GetEnvDuration("SPACEDODGE_TEST_BAD_DUR", time.Second); got != time.Second {
		t.Errorf("GetEnvDuration malformed = %v, want fallback 1s", got)
	}
	if got := GetEnvBool("SPACEDODGE_TEST_BOOL", false); !got {
		t.Error("GetEnvBool = false, want true")
	}
	if got := GetEnvBool("SPACEDODGE_TEST_UNSET", true); !got {
		t.Error("GetEnvBool unset = false, want fallback true")
	}
	if got := GetEnvFloat("SPACEDODGE_TEST_FLOAT", 0.5); got != 0.75 {
		t.Errorf("GetEnvFloat = %v, want 0.75", got)
	}
	if got := GetEnvFloat("SPACEDODGE_TEST_BAD_INT", 0.5); got != 0.5 {
		t.Errorf("GetEnvFloat malformed = %v, want fallback 0.5", got)
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	if err := os.WriteFile(path, []byte("SPACEDODGE_TEST_FROM_FILE=loaded\nSPACEDODGE_TEST_PRESET=file\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("SPACEDODGE_TEST_PRESET", "env")
	t.Cleanup(func() { os.Unsetenv("SPACEDODGE_TEST_FROM_FILE") })

	if err := Load(path, filepath.Join(dir, "missing.env")); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got := os.Getenv("SPACEDODGE_TEST_FROM_FILE"); got != "loaded" {
		t.Errorf("file variable = %q, want %q", got, "loaded")
	}
	if got := os.Getenv("SPACEDODGE_TEST_PRESET"); got != "env" {
		t.Errorf("preset variable = %q, want the environment to win", got)
	}
}

func TestNewLoggerLevel(t *testing.T) {
	t.Setenv("LOG_LEVEL", "warn")
	var buf bytes.Buffer
	logger := NewLogger(&buf, "test")

	logger.Info("hidden")
	logger.Warn("shown", "key", "value")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("info message logged at warn level: %q", out)
	}
	if !strings.Contains(out, "shown") || !strings.Contains(out, "key=value") {
		t.Errorf("warn message missing: %q", out)
	}
}
