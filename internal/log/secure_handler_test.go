package log

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
)

// captureLog runs fn against a secure text logger and returns the output.
func captureLog(t *testing.T, verbose bool, fn func(*slog.Logger)) string {
	t.Helper()
	var buf bytes.Buffer
	logger := NewSecureLogger(&buf, verbose)
	fn(logger)
	return buf.String()
}

// TestSecureHandlerMasksSensitiveKeys tests key-based masking.
func TestSecureHandlerMasksSensitiveKeys(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		key   string
		value string
	}{
		{name: "leaked value", key: "leaked_value", value: "leaktest@example.com"},
		{name: "search string", key: "search_string", value: "Ann Lee"},
		{name: "zip code", key: "zip_code", value: "1234AB"},
		{name: "card number", key: "credit_card_number", value: "4111 1111 1111 1111"},
		{name: "cookie", key: "cookie", value: "uid=abc"},
		{name: "mixed case key", key: "Leaked_Value", value: "leaktest@example.com"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			out := captureLog(t, false, func(l *slog.Logger) {
				l.Warn("test", tt.key, tt.value)
			})

			if strings.Contains(out, tt.value) {
				t.Errorf("expected value to be masked, got %q", out)
			}
			if !strings.Contains(out, MaskValue) {
				t.Errorf("expected mask marker, got %q", out)
			}
		})
	}
}

// TestSecureHandlerMasksSensitiveValues tests pattern-based masking.
func TestSecureHandlerMasksSensitiveValues(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		value string
	}{
		{name: "email address", value: "someone@example.com"},
		{name: "card number", value: "4111111111111111"},
		{name: "spaced card number", value: "4111 1111 1111 1111"},
		{name: "international phone", value: "+31612345678"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			out := captureLog(t, false, func(l *slog.Logger) {
				l.Warn("test", "detail", tt.value)
			})

			if strings.Contains(out, tt.value) {
				t.Errorf("expected value to be masked, got %q", out)
			}
		})
	}
}

// TestSecureHandlerKeepsStructuralAttrs tests that ordinary attributes
// pass through unmasked.
func TestSecureHandlerKeepsStructuralAttrs(t *testing.T) {
	t.Parallel()

	out := captureLog(t, false, func(l *slog.Logger) {
		l.Warn("step failed", "step", "detect_leaks", "site", "shop.example.nl")
	})

	if !strings.Contains(out, "detect_leaks") {
		t.Errorf("expected step name to pass through, got %q", out)
	}
	if !strings.Contains(out, "shop.example.nl") {
		t.Errorf("expected site to pass through, got %q", out)
	}
}

// TestSecureLoggerLevels tests the verbose level switch.
func TestSecureLoggerLevels(t *testing.T) {
	t.Parallel()

	t.Run("default suppresses info", func(t *testing.T) {
		t.Parallel()

		out := captureLog(t, false, func(l *slog.Logger) {
			l.Info("hidden")
			l.Warn("visible")
		})

		if strings.Contains(out, "hidden") {
			t.Error("expected info to be suppressed")
		}
		if !strings.Contains(out, "visible") {
			t.Error("expected warning to be logged")
		}
	})

	t.Run("verbose enables debug", func(t *testing.T) {
		t.Parallel()

		out := captureLog(t, true, func(l *slog.Logger) {
			l.Debug("detail")
		})

		if !strings.Contains(out, "detail") {
			t.Error("expected debug to be logged in verbose mode")
		}
	})
}

// TestSecureHandlerWithAttrs tests that pre-bound attributes are
// sanitized too.
func TestSecureHandlerWithAttrs(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := NewSecureLogger(&buf, false).With("email", "someone@example.com")
	logger.Warn("test")

	if strings.Contains(buf.String(), "someone@example.com") {
		t.Errorf("expected bound attribute to be masked, got %q", buf.String())
	}
}

// TestSecureHandlerGroups tests masking inside attribute groups.
func TestSecureHandlerGroups(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := NewSecureLogger(&buf, false)
	logger.Warn("test", slog.Group("user",
		slog.String("leaked_value", "leaktest@example.com"),
		slog.String("site", "shop.example.nl"),
	))

	out := buf.String()
	if strings.Contains(out, "leaktest@example.com") {
		t.Errorf("expected grouped value to be masked, got %q", out)
	}
	if !strings.Contains(out, "shop.example.nl") {
		t.Errorf("expected structural group member to pass through, got %q", out)
	}
}

// TestSecureHandlerEnabled tests level delegation.
func TestSecureHandlerEnabled(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	h := NewSecureHandler(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelWarn}))

	if h.Enabled(context.Background(), slog.LevelDebug) {
		t.Error("expected debug to be disabled")
	}
	if !h.Enabled(context.Background(), slog.LevelError) {
		t.Error("expected error to be enabled")
	}
}

// TestNewSecureJSONLogger tests the JSON variant.
func TestNewSecureJSONLogger(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := NewSecureJSONLogger(&buf, false)
	logger.Warn("test", "leaked_value", "leaktest@example.com")

	out := buf.String()
	if !strings.Contains(out, `"msg":"test"`) {
		t.Errorf("expected JSON output, got %q", out)
	}
	if strings.Contains(out, "leaktest@example.com") {
		t.Errorf("expected masked value, got %q", out)
	}
}
