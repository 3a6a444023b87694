package logger

import (
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		level string
		want  zapcore.Level
	}{
		{level: "debug", want: zapcore.DebugLevel},
		{level: "INFO", want: zapcore.InfoLevel},
		{level: "warn", want: zapcore.WarnLevel},
		{level: "warning", want: zapcore.WarnLevel},
		{level: " error ", want: zapcore.ErrorLevel},
		{level: "verbose", want: zapcore.WarnLevel},
		{level: "", want: zapcore.WarnLevel},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			if got := parseLevel(tt.level); got != tt.want {
				t.Errorf("parseLevel(%q) = %s, want %s", tt.level, got, tt.want)
			}
		})
	}
}

func TestWithAddsFields(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	log := wrap(zap.New(core)).With(String("component", "history"))

	log.Info("visit recorded", String("url", "https://kodi.tv"), Int("count", 2))
	log.Warnf("retention is %d days", 30)

	entries := logs.All()
	if len(entries) != 2 {
		t.Fatalf("entries = %d, want 2", len(entries))
	}
	fields := entries[0].ContextMap()
	if fields["component"] != "history" || fields["url"] != "https://kodi.tv" {
		t.Errorf("fields = %v", fields)
	}
	if entries[1].Message != "retention is 30 days" || entries[1].Level != zapcore.WarnLevel {
		t.Errorf("second entry = %+v", entries[1].Entry)
	}
}

func TestNewNopDoesNotPanic(t *testing.T) {
	log := NewNop()
	log.Info("hello", String("k", "v"), Int("n", 1), Bool("b", true))
	log.With(Error(nil)).Debug("nothing")
	_ = log.Sync()
}
