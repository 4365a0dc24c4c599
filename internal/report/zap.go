// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package report

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// NewLogger builds a zap logger writing to stderr. level is a zap level
// name (invalid names fall back to info); format is "json" or "console".
func NewLogger(level, format string) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	lvl, err := zap.ParseAtomicLevel(level)
	if err != nil {
		lvl = zap.NewAtomicLevelAt(zap.InfoLevel)
	}
	cfg.Level = lvl

	if format == "json" {
		cfg.Encoding = "json"
	} else {
		cfg.Encoding = "console"
		cfg.EncoderConfig = zap.NewDevelopmentEncoderConfig()
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	}
	cfg.DisableStacktrace = true
	cfg.Sampling = nil

	return cfg.Build()
}

// Zap returns a Reporter that logs each event with structured fields:
// failures at error level, completed conversions at debug level.
func Zap(log *zap.Logger) Reporter {
	return Func(func(e Event) {
		fields := []zap.Field{
			zap.String("kind", string(e.Kind)),
			zap.String("input", e.Input),
			zap.String("output", e.Output),
		}
		if e.Err != nil {
			log.Error("conversion failed", append(fields, zap.Error(e.Err))...)
			return
		}
		fields = append(fields,
			zap.Int("records", e.Records),
			zap.Int("kept", e.Kept),
			zap.Int("dropped", e.Dropped),
			zap.Int("zeroed", e.Zeroed),
			zap.Bool("written", e.Written),
		)
		if e.Elapsed > 0 {
			fields = append(fields, zap.Duration("elapsed", e.Elapsed))
		}
		log.Debug("conversion finished", fields...)
	})
}
