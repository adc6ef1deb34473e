package logger

import (
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Options describe how the application logger is built.
type Options struct {
	JSON  bool
	Debug bool
	// Output is a zap sink such as "stderr", "stdout" or a file path. Defaults to stderr,
	// keeping stdout for command output.
	Output string
}

// New builds the application logger.
func New(json bool, debug bool) (*zap.Logger, error) {
	return Build(Options{JSON: json, Debug: debug})
}

// Build creates a logger from opts.
func Build(opts Options) (*zap.Logger, error) {
	cfg := config(opts)

	logger, err := cfg.Build()
	if err != nil {
		return nil, err
	}
	defer logger.Sync()

	return logger, nil
}

func config(opts Options) zap.Config {
	level := zapcore.InfoLevel
	encoding := "console"

	if opts.JSON {
		encoding = "json"
	}

	if opts.Debug {
		level = zapcore.DebugLevel
	}

	output := strings.TrimSpace(opts.Output)
	if output == "" {
		output = "stderr"
	}

	return zap.Config{
		Encoding:         encoding,
		Level:            zap.NewAtomicLevelAt(level),
		OutputPaths:      []string{output},
		ErrorOutputPaths: []string{"stderr"},
		EncoderConfig: zapcore.EncoderConfig{
			MessageKey: "step",

			LevelKey:    "level",
			EncodeLevel: zapcore.LowercaseLevelEncoder,

			TimeKey:    "time",
			EncodeTime: zapcore.RFC3339TimeEncoder,

			CallerKey:    "caller",
			EncodeCaller: zapcore.ShortCallerEncoder,
		},
	}
}
