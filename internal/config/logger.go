package config

import (
	"fmt"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// AppName names the root logger.
const AppName = "casegallery"

// Build returns the program logger: warnings and errors go to stderr,
// lower levels to stdout, and everything at the configured level to the
// destination file when one is set. The returned close func flushes the
// logger and releases the destination file; call it once logging is done.
func (conf LogConfig) Build() (*zap.Logger, func() error, error) {
	var min zapcore.Level
	switch conf.Level {
	case LogNone:
		return zap.NewNop(), func() error { return nil }, nil
	case LogDebug:
		min = zapcore.DebugLevel
	case LogNormal, "":
		min = zapcore.InfoLevel
	default:
		return nil, nil, fmt.Errorf("unknown log level %q", conf.Level)
	}

	ec := zap.NewDevelopmentEncoderConfig()
	ec.EncodeCaller = nil
	ec.TimeKey = zapcore.OmitKey
	ec.EncodeLevel = zapcore.CapitalLevelEncoder
	console := zapcore.NewConsoleEncoder(ec)

	lowPriority := zap.LevelEnablerFunc(func(lvl zapcore.Level) bool {
		return min <= lvl && lvl < zapcore.WarnLevel
	})
	highPriority := zap.LevelEnablerFunc(func(lvl zapcore.Level) bool {
		return min <= lvl && lvl >= zapcore.WarnLevel
	})

	cores := []zapcore.Core{
		zapcore.NewCore(console, zapcore.Lock(os.Stdout), lowPriority),
		zapcore.NewCore(console, zapcore.Lock(os.Stderr), highPriority),
	}

	var dest *os.File
	if conf.Destination != "" {
		f, err := os.OpenFile(conf.Destination, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return nil, nil, fmt.Errorf("opening log destination %s: %w", conf.Destination, err)
		}
		dest = f
		fileEncoder := zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig())
		cores = append(cores, zapcore.NewCore(fileEncoder, zapcore.Lock(f), zap.NewAtomicLevelAt(min)))
	}

	log := zap.New(zapcore.NewTee(cores...)).Named(AppName)
	closeFn := func() error {
		// Syncing a terminal stdout fails on some platforms; only the
		// destination file matters here.
		_ = log.Sync()
		if dest == nil {
			return nil
		}
		return dest.Close()
	}
	return log, closeFn, nil
}
