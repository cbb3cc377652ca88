// Package logging builds the diagnostic logger. The CLI's stdout is
// reserved for user-facing output, so the default logger writes JSON to
// a file under the state directory; verbose mode adds a readable
// development logger on stderr.
package logging

import (
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New returns a logger writing to logFile. With verbose set it logs to
// stderr at debug level instead. Failures to open the file degrade to a
// no-op logger; diagnostics never break the client.
func New(logFile string, verbose bool) *zap.Logger {
	if verbose {
		cfg := zap.NewDevelopmentConfig()
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		log, err := cfg.Build()
		if err != nil {
			return zap.NewNop()
		}
		return log
	}

	if err := os.MkdirAll(filepath.Dir(logFile), 0o755); err != nil {
		return zap.NewNop()
	}
	f, err := os.OpenFile(logFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600)
	if err != nil {
		return zap.NewNop()
	}
	encoder := zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig())
	core := zapcore.NewCore(encoder, zapcore.AddSync(f), zapcore.InfoLevel)
	return zap.New(core)
}
