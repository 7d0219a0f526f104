package logger

import (
	"context"
	"log/slog"
	"testing"
)

func TestLoggerInit(t *testing.T) {
	if err := Init(); err != nil {
		t.Fatalf("failed to initialize logger: %v", err)
	}

	logger := Get()
	if logger == nil {
		t.Fatal("logger is nil after initialization")
	}
}

// Basic logging test (slog-backed).
func TestLoggerBasic(t *testing.T) {
	if err := Init(); err != nil {
		t.Fatalf("failed to initialize logger: %v", err)
	}

	logger := Get()
	ctx := context.Background()
	logger.Info(ctx, "test message", String("k", "v"))
	logger.Warn(ctx, "warn message", Int("n", 1))
	logger.Debug(ctx, "debug message", Float64("f", 0.5))
	logger.Error(ctx, "error message", Bool("b", true))

	named := logger.Named("sub")
	if named == nil {
		t.Fatal("named logger is nil")
	}
	named.Info(ctx, "named message", Any("v", []int{1, 2}))
}

func TestSetLevelString(t *testing.T) {
	if err := Init(); err != nil {
		t.Fatalf("failed to initialize logger: %v", err)
	}

	cases := []struct {
		in      string
		wantErr bool
	}{
		{"debug", false},
		{"info", false},
		{"", false},
		{" WARN ", false},
		{"warning", false},
		{"error", false},
		{"verbose", true},
	}
	for _, c := range cases {
		err := SetLevelString(c.in)
		if c.wantErr && err == nil {
			t.Errorf("SetLevelString(%q): expected error, got nil", c.in)
		}
		if !c.wantErr && err != nil {
			t.Errorf("SetLevelString(%q): unexpected error: %v", c.in, err)
		}
	}

	// Restore default.
	SetLevel(slog.LevelInfo)
}
