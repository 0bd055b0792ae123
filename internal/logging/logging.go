package logging

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type Options struct {
	Debug   bool
	Verbose bool
	Silent  bool
	Color   bool
}

// New builds the console logger used by the command line. Verbose and debug
// both enable debug output, debug additionally reports callers.
func New(opts Options) (*zap.SugaredLogger, error) {
	if opts.Silent {
		return zap.NewNop().Sugar(), nil
	}

	cfg := zap.NewDevelopmentConfig()
	cfg.DisableStacktrace = !opts.Debug
	cfg.DisableCaller = !opts.Debug
	cfg.EncoderConfig.TimeKey = ""
	cfg.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	if opts.Color {
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}

	switch {
	case opts.Debug, opts.Verbose:
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	default:
		cfg.Level = zap.NewAtomicLevelAt(zapcore.InfoLevel)
	}

	logger, err := cfg.Build()
	if err != nil {
		return nil, err
	}
	return logger.Sugar(), nil
}
