// internal/logger/pretty.go
package logger

import (
	"fmt"
	"math"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Colors for terminal output
const (
	ColorReset  = "\033[0m"
	ColorRed    = "\033[31m"
	ColorGreen  = "\033[32m"
	ColorYellow = "\033[33m"
	ColorBlue   = "\033[34m"
	ColorCyan   = "\033[36m"
	ColorBold   = "\033[1m"
)

func prettyEncoderConfig() zapcore.EncoderConfig {
	return zapcore.EncoderConfig{
		MessageKey:     "msg",
		LevelKey:       "level",
		TimeKey:        "time",
		CallerKey:      "",
		StacktraceKey:  "",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    customLevelEncoder,
		EncodeTime:     customTimeEncoder,
		EncodeDuration: zapcore.StringDurationEncoder,
	}
}

// customLevelEncoder formats log levels with colors
func customLevelEncoder(level zapcore.Level, enc zapcore.PrimitiveArrayEncoder) {
	switch level {
	case zapcore.DebugLevel:
		enc.AppendString(fmt.Sprintf("%s[DEBUG]%s", ColorCyan, ColorReset))
	case zapcore.InfoLevel:
		enc.AppendString(fmt.Sprintf("%s[INFO]%s", ColorGreen, ColorReset))
	case zapcore.WarnLevel:
		enc.AppendString(fmt.Sprintf("%s[WARN]%s", ColorYellow, ColorReset))
	case zapcore.ErrorLevel:
		enc.AppendString(fmt.Sprintf("%s[ERROR]%s", ColorRed, ColorReset))
	case zapcore.FatalLevel:
		enc.AppendString(fmt.Sprintf("%s[FATAL]%s", ColorRed+ColorBold, ColorReset))
	default:
		enc.AppendString(fmt.Sprintf("[%s]", level.CapitalString()))
	}
}

func customTimeEncoder(t time.Time, enc zapcore.PrimitiveArrayEncoder) {
	enc.AppendString(t.Format("15:04:05"))
}

func levelFor(debug bool) zapcore.Level {
	if debug {
		return zap.DebugLevel
	}
	return zap.InfoLevel
}

// CreatePrettyLogger creates a console logger with friendly one-line messages
func CreatePrettyLogger(debug bool) (*zap.Logger, error) {
	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(prettyEncoderConfig()),
		zapcore.AddSync(zapcore.Lock(os.Stderr)),
		levelFor(debug),
	)
	return zap.New(&FriendlyCore{core: core}), nil
}

// CreateTUILogger creates a logger that only writes to buffer. Anything
// written to the terminal while bubbletea owns it would corrupt the screen.
func CreateTUILogger(debug bool, buffer *LogBuffer) (*zap.Logger, error) {
	if buffer == nil {
		return nil, fmt.Errorf("buffer is required for TUI logger")
	}

	encoderConfig := zapcore.EncoderConfig{
		MessageKey:     "msg",
		LevelKey:       "level",
		TimeKey:        "time",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.LowercaseLevelEncoder,
		EncodeTime:     zapcore.ISO8601TimeEncoder,
		EncodeDuration: zapcore.StringDurationEncoder,
	}

	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(encoderConfig),
		buffer,
		levelFor(debug),
	)
	return zap.New(core), nil
}

// FormatMessage rewrites well-known messages into short human sentences
func FormatMessage(msg string, fields ...zapcore.Field) string {
	switch {
	case strings.Contains(msg, "Presets loaded"):
		return fmt.Sprintf("%s📋 Loaded %s presets from %s%s", ColorBlue, extractField(fields, "count"), extractField(fields, "file"), ColorReset)

	case strings.Contains(msg, "Preset evaluated"):
		return fmt.Sprintf("%s🎯 %s: stake %s, gain %s, net %s%s", ColorCyan,
			extractField(fields, "preset"), extractField(fields, "stake"),
			extractField(fields, "gain"), extractField(fields, "benefit"), ColorReset)

	case strings.Contains(msg, "Snapshots exported"):
		return fmt.Sprintf("%s✅ Exported %s rows to %s%s", ColorGreen, extractField(fields, "count"), extractField(fields, "file"), ColorReset)

	default:
		if err := extractField(fields, "error"); err != "" {
			return msg + ": " + err
		}
		return msg
	}
}

func extractField(fields []zapcore.Field, key string) string {
	for _, field := range fields {
		if field.Key != key {
			continue
		}
		switch field.Type {
		case zapcore.StringType:
			return field.String
		case zapcore.Int64Type, zapcore.Int32Type, zapcore.Int16Type, zapcore.Int8Type,
			zapcore.Uint64Type, zapcore.Uint32Type, zapcore.Uint16Type, zapcore.Uint8Type:
			return fmt.Sprintf("%d", field.Integer)
		case zapcore.Float64Type:
			return fmt.Sprintf("%.2f", math.Float64frombits(uint64(field.Integer)))
		case zapcore.ErrorType:
			if err, ok := field.Interface.(error); ok {
				return err.Error()
			}
		}
		if field.Interface != nil {
			return fmt.Sprintf("%v", field.Interface)
		}
		return field.String
	}
	return ""
}

// FriendlyCore wraps a zapcore.Core, replacing structured fields with the
// sentence produced by FormatMessage
type FriendlyCore struct {
	core   zapcore.Core
	fields []zapcore.Field
}

func (c *FriendlyCore) Enabled(level zapcore.Level) bool {
	return c.core.Enabled(level)
}

func (c *FriendlyCore) With(fields []zapcore.Field) zapcore.Core {
	merged := append(append([]zapcore.Field{}, c.fields...), fields...)
	return &FriendlyCore{core: c.core, fields: merged}
}

func (c *FriendlyCore) Check(entry zapcore.Entry, checked *zapcore.CheckedEntry) *zapcore.CheckedEntry {
	if c.Enabled(entry.Level) {
		return checked.AddCore(entry, c)
	}
	return checked
}

func (c *FriendlyCore) Write(entry zapcore.Entry, fields []zapcore.Field) error {
	all := append(append([]zapcore.Field{}, c.fields...), fields...)
	entry.Message = FormatMessage(entry.Message, all...)
	return c.core.Write(entry, nil)
}

func (c *FriendlyCore) Sync() error {
	return c.core.Sync()
}
