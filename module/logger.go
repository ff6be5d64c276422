package module

import (
	"os"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	logger     *zap.Logger
	loggerOnce sync.Once
)

// Logger returns the module package's logger instance.
//
// Unlike the other packages in this library, it is NOT a no-op by default:
// lifecycle entry points have no error return on the C side, so a failed
// setup or boot would otherwise vanish. The default logger writes
// Error-level console output to stderr, which is where the shell's own
// module diagnostics go.
func Logger() *zap.Logger {
	loggerOnce.Do(func() {
		if logger == nil {
			enc := zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig())
			core := zapcore.NewCore(enc, zapcore.Lock(os.Stderr), zapcore.ErrorLevel)
			logger = zap.New(core)
		}
	})
	return logger
}

// SetLogger configures the module package's logger.
// This must be called before the module is loaded.
func SetLogger(l *zap.Logger) {
	logger = l
}
