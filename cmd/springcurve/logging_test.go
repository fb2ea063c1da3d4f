package main

import (
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func restoreLogger(t *testing.T) {
	t.Helper()
	flags := log.Flags()
	t.Cleanup(func() {
		log.SetOutput(os.Stderr)
		log.SetFlags(flags)
	})
}

func TestSetupLogging_DisabledByDefault(t *testing.T) {
	restoreLogger(t)
	dir := filepath.Join(t.TempDir(), logDir)

	if f := setupLogging(dir, false); f != nil {
		f.Close()
		t.Fatal("expected no log file without debug")
	}
	if log.Writer() != io.Discard {
		t.Error("logger should discard without debug")
	}
	if _, err := os.Stat(dir); !os.IsNotExist(err) {
		t.Error("log dir should not be created without debug")
	}
}

func TestSetupLogging_EnabledWithDebug(t *testing.T) {
	restoreLogger(t)
	dir := filepath.Join(t.TempDir(), logDir)

	f := setupLogging(dir, true)
	if f == nil {
		t.Fatal("expected a log file with debug")
	}
	log.Printf("hello from the test")
	f.Close()

	data, err := os.ReadFile(filepath.Join(dir, logFileName))
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if !strings.Contains(string(data), "hello from the test") {
		t.Errorf("log missing message: %q", data)
	}
}

func TestSetupLogging_Rotation(t *testing.T) {
	restoreLogger(t)
	dir := t.TempDir()
	path := filepath.Join(dir, logFileName)

	big := make([]byte, maxLogSize+1)
	if err := os.WriteFile(path, big, 0644); err != nil {
		t.Fatal(err)
	}

	f := setupLogging(dir, true)
	if f == nil {
		t.Fatal("expected a log file after rotation")
	}
	f.Close()

	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if info.Size() > maxLogSize {
		t.Errorf("log was not rotated, size %d", info.Size())
	}

	rotated, _ := filepath.Glob(filepath.Join(dir, "springcurve-*.log"))
	if len(rotated) != 1 {
		t.Errorf("expected 1 rotated log, got %d", len(rotated))
	}
}

func TestSetupLogging_NoStdoutStderr(t *testing.T) {
	restoreLogger(t)
	dir := t.TempDir()

	f := setupLogging(dir, true)
	if f == nil {
		t.Fatal("expected a log file")
	}
	defer f.Close()

	if w := log.Writer(); w == os.Stdout || w == os.Stderr {
		t.Error("logger must not write to the terminal")
	}
}

func TestResolveConfig_FlagsOverridePreset(t *testing.T) {
	restoreLogger(t)
	log.SetOutput(io.Discard)

	cmd := newRootCmd()
	if err := cmd.ParseFlags([]string{"--preset", "snappy", "--damping", "0.5"}); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { preset, damping = "", 0 })

	cfg, err := resolveConfig(cmd)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if cfg.Physics.Damping != 0.5 {
		t.Errorf("flag damping not applied: %f", cfg.Physics.Damping)
	}
	if cfg.Physics.Stiffness != 0.15 {
		t.Errorf("preset stiffness not applied: %f", cfg.Physics.Stiffness)
	}
}

func TestResolveConfig_RejectsUnstable(t *testing.T) {
	restoreLogger(t)
	log.SetOutput(io.Discard)

	cmd := newRootCmd()
	if err := cmd.ParseFlags([]string{"--stiffness", "1.5"}); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { stiffness = 0 })

	if _, err := resolveConfig(cmd); err == nil {
		t.Error("expected stiffness out of range to fail validation")
	}
}
