// Package logging sets up the zap logger shared by the commands in this module.
// For larger projects we'd want something fancier, but a colored console logger on stderr is all a build tool needs.
package logging

import (
	"os"

	"gitlab.com/efronlicht/enve"
	"gitlab.com/efronlicht/sitetools/observability/meta"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New builds the logger for the process described by m, makes it zap's global logger, and redirects the
// standard library's log package into it. The level comes from LOG_LEVEL (debug, info, warn, error); default info.
// Every line carries the instance id; the rest of m is logged once, at debug level, as the 'metadata dump'.
func New(m meta.Meta) *zap.Logger {
	return newLogger(m, zapcore.Lock(os.Stderr))
}

func newLogger(m meta.Meta, ws zapcore.WriteSyncer) *zap.Logger {
	cfg := zap.NewProductionEncoderConfig()
	cfg.EncodeTime = zapcore.RFC3339TimeEncoder
	cfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
	cfg.EncodeDuration = zapcore.StringDurationEncoder
	level := enve.FromTextOr[zapcore.Level]("LOG_LEVEL", zapcore.InfoLevel)

	logger := zap.New(zapcore.NewCore(zapcore.NewConsoleEncoder(cfg), ws, level)).
		Named(m.AppName).
		With(zap.String("instance_id", m.InstanceID))
	zap.ReplaceGlobals(logger)
	zap.RedirectStdLog(logger)
	logger.Debug("metadata dump", zap.Reflect("meta", m))
	return logger
}
