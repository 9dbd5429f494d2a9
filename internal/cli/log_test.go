package cli

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
)

func TestNewLoggerWritesToWriter(t *testing.T) {
	var buf bytes.Buffer
	newLogger(&buf, log.InfoLevel).Info("ingested dataset")

	if !strings.Contains(buf.String(), "ingested dataset") {
		t.Errorf("output %q missing message", buf.String())
	}
}

func TestNewLoggerFiltersByLevel(t *testing.T) {
	tests := []struct {
		name    string
		level   log.Level
		emit    func(*log.Logger)
		wantLog bool
	}{
		{"info passes at info", log.InfoLevel, func(l *log.Logger) { l.Info("m") }, true},
		{"debug dropped at info", log.InfoLevel, func(l *log.Logger) { l.Debug("m") }, false},
		{"debug passes at debug", log.DebugLevel, func(l *log.Logger) { l.Debug("m") }, true},
		{"info dropped at warn", log.WarnLevel, func(l *log.Logger) { l.Info("m") }, false},
		{"warn passes at warn", log.WarnLevel, func(l *log.Logger) { l.Warn("m") }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			tt.emit(newLogger(&buf, tt.level))
			if got := buf.Len() > 0; got != tt.wantLog {
				t.Errorf("logged = %v, want %v", got, tt.wantLog)
			}
		})
	}
}

func TestProgressReportsElapsed(t *testing.T) {
	var buf bytes.Buffer
	prog := newProgress(newLogger(&buf, log.InfoLevel))

	time.Sleep(5 * time.Millisecond)
	prog.done("Laid out 4 coaches")

	out := buf.String()
	if !strings.Contains(out, "Laid out 4 coaches") {
		t.Errorf("output %q missing message", out)
	}
	if !strings.Contains(out, "ms)") && !strings.Contains(out, "s)") {
		t.Errorf("output %q missing elapsed duration", out)
	}
}
