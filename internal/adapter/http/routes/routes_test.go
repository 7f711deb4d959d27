package routes

import (
	"testing"
	"time"

	"sigorta_portal/internal/usecase"

	"go.uber.org/zap"
)

func TestRetentionWindowFromEnv(t *testing.T) {
	log := zap.NewNop()

	t.Run("unset falls back to the default", func(t *testing.T) {
		t.Setenv("RETENTION_WINDOW", "")
		if got := retentionWindowFromEnv(log); got != usecase.DefaultRetentionWindow {
			t.Fatalf("expected default window, got %v", got)
		}
	})

	t.Run("valid duration is honoured", func(t *testing.T) {
		t.Setenv("RETENTION_WINDOW", "30m")
		if got := retentionWindowFromEnv(log); got != 30*time.Minute {
			t.Fatalf("expected 30m, got %v", got)
		}
	})

	t.Run("unparseable value falls back to the default", func(t *testing.T) {
		t.Setenv("RETENTION_WINDOW", "soon")
		if got := retentionWindowFromEnv(log); got != usecase.DefaultRetentionWindow {
			t.Fatalf("expected default window, got %v", got)
		}
	})

	t.Run("non-positive value falls back to the default", func(t *testing.T) {
		t.Setenv("RETENTION_WINDOW", "-1h")
		if got := retentionWindowFromEnv(log); got != usecase.DefaultRetentionWindow {
			t.Fatalf("expected default window, got %v", got)
		}
	})
}
