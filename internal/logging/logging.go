// Package logging builds the structured logger used across the application.
package logging

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Options holds logger configuration
type Options struct {
	Level      string // debug, info, warn, error
	Format     string // json or console
	OutputPath string // stderr, stdout, or file path; empty means stderr
}

// New creates a logger and a function that flushes it and releases its output.
func New(opts Options) (*zap.Logger, func(), error) {
	level, err := zapcore.ParseLevel(opts.Level)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid log level %q: %w", opts.Level, err)
	}

	var encoderConfig zapcore.EncoderConfig
	if opts.Format == "json" {
		encoderConfig = zap.NewProductionEncoderConfig()
	} else {
		encoderConfig = zap.NewDevelopmentEncoderConfig()
		if opts.OutputPath == "" || opts.OutputPath == "stderr" || opts.OutputPath == "stdout" {
			encoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		}
	}

	encoderConfig.TimeKey = "timestamp"
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	writeSyncer, release, err := openOutput(opts.OutputPath)
	if err != nil {
		return nil, nil, err
	}

	var encoder zapcore.Encoder
	if opts.Format == "json" {
		encoder = zapcore.NewJSONEncoder(encoderConfig)
	} else {
		encoder = zapcore.NewConsoleEncoder(encoderConfig)
	}

	logger := zap.New(zapcore.NewCore(encoder, writeSyncer, level),
		zap.AddCaller(), zap.AddStacktrace(zapcore.ErrorLevel))

	closer := func() {
		_ = logger.Sync()
		release()
	}

	return logger, closer, nil
}

func openOutput(outputPath string) (zapcore.WriteSyncer, func(), error) {
	switch outputPath {
	case "", "stderr":
		return zapcore.AddSync(os.Stderr), func() {}, nil
	case "stdout":
		return zapcore.AddSync(os.Stdout), func() {}, nil
	}

	if dir := filepath.Dir(outputPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, nil, fmt.Errorf("failed to create log directory %s: %w", dir, err)
		}
	}

	file, err := os.OpenFile(outputPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open log file %s: %w", outputPath, err)
	}

	return zapcore.AddSync(file), func() { _ = file.Close() }, nil
}
