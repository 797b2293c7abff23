package logging

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"strings"
	"testing"
)

func resetState() {
	mutex.Lock()
	moduleLoggers = make(map[string]*slog.Logger)
	moduleLevelVars = make(map[string]*slog.LevelVar)
	globalConfig = Config{}
	isInitialized = false
	mutex.Unlock()
}

func TestModuleLevelOverride(t *testing.T) {
	resetState()

	Initialize(Config{
		Level:  "info",
		Format: "text",
		Modules: map[string]string{
			"device": "debug",
			"cli":    "warn",
		},
	})

	tests := []struct {
		module    string
		wantDebug bool
		wantInfo  bool
		wantWarn  bool
	}{
		{"device", true, true, true},
		{"cli", false, false, true},
		{"other", false, true, true},
	}

	for _, tt := range tests {
		t.Run(tt.module, func(t *testing.T) {
			handler := GetLogger(tt.module).Handler()
			ctx := context.Background()

			if got := handler.Enabled(ctx, slog.LevelDebug); got != tt.wantDebug {
				t.Errorf("module %q: Debug enabled = %v, want %v", tt.module, got, tt.wantDebug)
			}
			if got := handler.Enabled(ctx, slog.LevelInfo); got != tt.wantInfo {
				t.Errorf("module %q: Info enabled = %v, want %v", tt.module, got, tt.wantInfo)
			}
			if got := handler.Enabled(ctx, slog.LevelWarn); got != tt.wantWarn {
				t.Errorf("module %q: Warn enabled = %v, want %v", tt.module, got, tt.wantWarn)
			}
		})
	}
}

func TestLoggerCreatedBeforeInitialize(t *testing.T) {
	resetState()

	early := GetLogger("device")
	if early.Handler().Enabled(context.Background(), slog.LevelDebug) {
		t.Fatal("Debug should be disabled before Initialize")
	}

	Initialize(Config{Level: "debug"})

	if !GetLogger("device").Handler().Enabled(context.Background(), slog.LevelDebug) {
		t.Error("Debug should be enabled after Initialize with level debug")
	}
}

func TestOutputCarriesModule(t *testing.T) {
	resetState()

	var buf bytes.Buffer
	SetOutput(&buf)
	defer SetOutput(os.Stderr)

	Initialize(Config{Level: "info", Format: "json"})
	GetLogger("device").Info("connected", "port", "/dev/ttyACM0")

	out := buf.String()
	if !strings.Contains(out, `"module":"device"`) {
		t.Errorf("Expected module attribute in output, got %s", out)
	}
	if !strings.Contains(out, `"port":"/dev/ttyACM0"`) {
		t.Errorf("Expected port attribute in output, got %s", out)
	}
}

func TestParseLevel(t *testing.T) {
	if parseLevel("bogus") != nil {
		t.Error("Expected nil for unknown level")
	}
	if l := parseLevel("WARNING"); l == nil || *l != slog.LevelWarn {
		t.Errorf("Expected warn level, got %v", l)
	}
}
