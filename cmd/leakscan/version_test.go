package main

import (
	"bytes"
	"strings"
	"testing"
)

// TestGetVersion tests version resolution.
func TestGetVersion(t *testing.T) {
	t.Run("uses ldflags value when set", func(t *testing.T) {
		original := version
		t.Cleanup(func() { version = original })

		version = "v1.2.3"
		if got := getVersion(); got != "v1.2.3" {
			t.Errorf("expected v1.2.3, got %q", got)
		}
	})

	t.Run("falls back without ldflags", func(t *testing.T) {
		original := version
		t.Cleanup(func() { version = original })

		version = ""
		if got := getVersion(); got == "" {
			t.Error("expected non-empty fallback version")
		}
	})
}

// TestGetCommit tests commit resolution.
func TestGetCommit(t *testing.T) {
	t.Run("uses ldflags value when set", func(t *testing.T) {
		original := commit
		t.Cleanup(func() { commit = original })

		commit = "abc1234"
		if got := getCommit(); got != "abc1234" {
			t.Errorf("expected abc1234, got %q", got)
		}
	})

	t.Run("falls back without ldflags", func(t *testing.T) {
		original := commit
		t.Cleanup(func() { commit = original })

		commit = ""
		if got := getCommit(); got == "" {
			t.Error("expected non-empty fallback commit")
		}
	})
}

// TestGetDate tests build date resolution.
func TestGetDate(t *testing.T) {
	t.Run("uses ldflags value when set", func(t *testing.T) {
		original := date
		t.Cleanup(func() { date = original })

		date = "2024-03-01"
		if got := getDate(); got != "2024-03-01" {
			t.Errorf("expected 2024-03-01, got %q", got)
		}
	})
}

// TestNewVersionCmd tests the version command output.
func TestNewVersionCmd(t *testing.T) {
	cmd := NewVersionCmd()

	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.Run(cmd, nil)

	out := buf.String()
	if !strings.Contains(out, "leakscan version") {
		t.Errorf("expected version line, got %q", out)
	}
	if !strings.Contains(out, "commit:") {
		t.Errorf("expected commit line, got %q", out)
	}
	if !strings.Contains(out, "built:") {
		t.Errorf("expected build date line, got %q", out)
	}
}
