package logger

import (
	"hiphop_roadmap_backend/internal/config"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestSetLevel(t *testing.T) {
	tests := []struct {
		name string
		cfg  config.Config
		want zap.AtomicLevel
	}{
		{"default info", config.Config{}, zap.NewAtomicLevelAt(zap.InfoLevel)},
		{"explicit warn", config.Config{Log: config.LogConfig{Level: "warn"}}, zap.NewAtomicLevelAt(zap.WarnLevel)},
		{"debug mode", config.Config{Server: config.ServerConfig{Mode: "debug"}, Log: config.LogConfig{Level: "error"}}, zap.NewAtomicLevelAt(zap.DebugLevel)},
		{"invalid level", config.Config{Log: config.LogConfig{Level: "loud"}}, zap.NewAtomicLevelAt(zap.InfoLevel)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			SetLevel(&tt.cfg)
			assert.Equal(t, tt.want.Level(), Level())
		})
	}
}
