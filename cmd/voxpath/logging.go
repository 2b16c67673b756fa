package main

import (
	"io"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/katalvlaran/voxpath/config"
)

// newLogger writes JSON logs to the rotated log_file when one is configured
// and to stderr otherwise.
func newLogger(cfg *config.Config, stderr io.Writer) *zap.Logger {
	var sink zapcore.WriteSyncer
	if path := cfg.GetLogFile(); path != "" {
		sink = zapcore.AddSync(&lumberjack.Logger{
			Filename:   path,
			MaxSize:    10, // megabytes
			MaxBackups: 3,
			MaxAge:     28, // days
		})
	} else {
		sink = zapcore.AddSync(stderr)
	}

	encCfg := zap.NewProductionEncoderConfig()
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	core := zapcore.NewCore(zapcore.NewJSONEncoder(encCfg), sink, zap.NewAtomicLevelAt(cfg.GetLogLevel()))
	return zap.New(core)
}
