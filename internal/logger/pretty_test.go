package logger

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestFormatMessage(t *testing.T) {
	msg := FormatMessage("Presets loaded", zap.Int("count", 3), zap.String("file", "presets.yaml"))
	assert.Contains(t, msg, "Loaded 3 presets from presets.yaml")

	msg = FormatMessage("Preset evaluated",
		zap.String("preset", "weekend"),
		zap.Float64("stake", 30),
		zap.Float64("gain", 90),
		zap.Float64("benefit", 45))
	assert.Contains(t, msg, "weekend: stake 30.00, gain 90.00, net 45.00")

	msg = FormatMessage("Snapshots exported", zap.Int("count", 1), zap.String("file", "out.csv"))
	assert.Contains(t, msg, "Exported 1 rows to out.csv")

	assert.Equal(t, "Export failed: disk full", FormatMessage("Export failed", zap.Error(errors.New("disk full"))))
	assert.Equal(t, "plain", FormatMessage("plain"))
}

func TestFriendlyCoreRewritesMessage(t *testing.T) {
	inner, logs := observer.New(zapcore.InfoLevel)
	log := zap.New(&FriendlyCore{core: inner}).With(zap.String("file", "p.yaml"))

	log.Debug("dropped")
	log.Info("Presets loaded", zap.Int("count", 2))

	entries := logs.All()
	if assert.Len(t, entries, 1) {
		assert.True(t, strings.Contains(entries[0].Message, "Loaded 2 presets from p.yaml"), entries[0].Message)
		assert.Empty(t, entries[0].Context)
	}
}
