package cli

import (
	"bytes"
	"context"
	"io"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
)

func TestNewLoggerLevels(t *testing.T) {
	tests := []struct {
		name    string
		level   log.Level
		logFunc func(*log.Logger)
		wantLog bool
	}{
		{"info at info level", log.InfoLevel, func(l *log.Logger) { l.Info("enumerated", "n", 5) }, true},
		{"debug at info level", log.InfoLevel, func(l *log.Logger) { l.Debug("counted", "n", 5) }, false},
		{"debug at debug level", log.DebugLevel, func(l *log.Logger) { l.Debug("counted", "n", 5) }, true},
		{"warn at error level", log.ErrorLevel, func(l *log.Logger) { l.Warn("cache write failed") }, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			tt.logFunc(newLogger(&buf, tt.level))
			if got := buf.Len() > 0; got != tt.wantLog {
				t.Errorf("got log output = %v, want %v", got, tt.wantLog)
			}
		})
	}
}

func TestProgress(t *testing.T) {
	var buf bytes.Buffer
	prog := newProgress(newLogger(&buf, log.InfoLevel))
	time.Sleep(10 * time.Millisecond)
	prog.done("Counted 4766 trees")

	out := buf.String()
	if !strings.Contains(out, "Counted 4766 trees (") || !strings.Contains(out, "ms)") {
		t.Errorf("progress output = %q, want message with elapsed time", out)
	}
}

func TestLoggerContext(t *testing.T) {
	if loggerFromContext(context.Background()) != log.Default() {
		t.Error("loggerFromContext should fall back to log.Default()")
	}

	var buf bytes.Buffer
	custom := newLogger(&buf, log.InfoLevel)
	ctx := withLogger(context.Background(), custom)
	if loggerFromContext(ctx) != custom {
		t.Fatal("loggerFromContext should return the attached logger")
	}
}

func TestLoadConfigLogLevel(t *testing.T) {
	dir := isolate(t)
	path := dir + "/levels.toml"
	if err := os.WriteFile(path, []byte("[log]\nlevel = \"error\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	c := New(io.Discard, log.InfoLevel)
	c.configPath = path
	if err := c.loadConfig(); err != nil {
		t.Fatalf("loadConfig: %v", err)
	}
	if got := c.Logger.GetLevel(); got != log.ErrorLevel {
		t.Errorf("level = %v, want error from the config file", got)
	}

	c = New(io.Discard, log.InfoLevel)
	c.configPath = path
	c.verbose = true
	if err := c.loadConfig(); err != nil {
		t.Fatalf("loadConfig: %v", err)
	}
	if got := c.Logger.GetLevel(); got != log.DebugLevel {
		t.Errorf("level = %v, want debug from --verbose", got)
	}
}
