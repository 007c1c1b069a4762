package logger

import (
	"testing"

	"go.uber.org/zap"

	"github.com/aliskhannn/times-tables-bot/internal/config"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		cfg     config.Config
		wantErr bool
	}{
		{name: "development default", cfg: config.Config{Env: "local"}},
		{name: "production default", cfg: config.Config{Env: "production"}},
		{name: "explicit level", cfg: config.Config{Env: "local", LogLevel: "warn"}},
		{name: "bad level", cfg: config.Config{Env: "local", LogLevel: "loud"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l, err := New(&tt.cfg)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			if l == nil {
				t.Fatal("nil logger")
			}
		})
	}
}

func TestNewExplicitLevelFiltersDebug(t *testing.T) {
	l, err := New(&config.Config{Env: "local", LogLevel: "warn"})
	if err != nil {
		t.Fatal(err)
	}
	if l.Core().Enabled(zap.DebugLevel) {
		t.Fatal("debug should be disabled at warn level")
	}
	if !l.Core().Enabled(zap.WarnLevel) {
		t.Fatal("warn should be enabled")
	}
}

func TestNewTestEnvIsNop(t *testing.T) {
	l, err := New(&config.Config{Env: "test"})
	if err != nil {
		t.Fatal(err)
	}
	if l.Core().Enabled(zap.ErrorLevel) {
		t.Fatal("test logger should discard everything")
	}
}
