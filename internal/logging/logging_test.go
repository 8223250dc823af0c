package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/saltyorg/fitcenter/internal/config"
)

func TestLevelFromVerbosity(t *testing.T) {
	tests := []struct {
		verbosity int
		want      string
	}{
		{0, "warn"},
		{1, "debug"},
		{2, "trace"},
		{5, "trace"},
	}

	for _, tt := range tests {
		if got := LevelFromVerbosity(tt.verbosity, "warn"); got != tt.want {
			t.Errorf("LevelFromVerbosity(%d) = %q, want %q", tt.verbosity, got, tt.want)
		}
	}
}

func TestWriter_WritesToRotatingFile(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "logs", "fitcenter.log")
	var console bytes.Buffer

	loader := config.NewLoader(config.MapGetter{"LOG_COMPRESS": "false"})
	logger := zerolog.New(writer(&console, logPath, loader))
	logger.Info().Msg("hello file")

	if !strings.Contains(console.String(), "hello file") {
		t.Fatalf("expected console output, got %q", console.String())
	}

	data, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("failed to read log file: %v", err)
	}
	if !strings.Contains(string(data), "hello file") {
		t.Fatalf("expected log file to contain message, got %q", string(data))
	}
}

func TestWriter_ConsoleOnly(t *testing.T) {
	var console bytes.Buffer
	logger := zerolog.New(writer(&console, "", nil))
	logger.Warn().Msg("console only")

	if !strings.Contains(console.String(), "console only") {
		t.Fatalf("expected console output, got %q", console.String())
	}
}
