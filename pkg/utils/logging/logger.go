package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// LogsDir is the directory log files are written to, relative to the working directory
const LogsDir = "logs"

const logFileTimeLayout = "2006-01-02_15-04-05"

// InitLogger builds the application logger: readable console lines on stderr and a JSON
// file under LogsDir named after env. verbose lowers the console level to Debug; the file
// always records Debug.
func InitLogger(env string, verbose bool) (*zap.Logger, error) {
	if err := os.MkdirAll(LogsDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create logs directory: %w", err)
	}

	path := logFilePath(env, time.Now())
	logFile, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file %s: %w", path, err)
	}

	core := zapcore.NewTee(
		consoleCore(os.Stderr, verbose),
		fileCore(logFile),
	)

	return zap.New(core, zap.AddCaller(), zap.AddStacktrace(zapcore.ErrorLevel)).
		With(zap.String("env", env)), nil
}

// logFilePath returns logs/<env>_<timestamp>.log
func logFilePath(env string, at time.Time) string {
	return filepath.Join(LogsDir, fmt.Sprintf("%s_%s.log", env, at.Format(logFileTimeLayout)))
}

// consoleCore writes coloured, human-readable lines at Info (Debug when verbose)
func consoleCore(w io.Writer, verbose bool) zapcore.Core {
	encoderConfig := zap.NewDevelopmentEncoderConfig()
	encoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05")
	encoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder

	level := zapcore.InfoLevel
	if verbose {
		level = zapcore.DebugLevel
	}

	return zapcore.NewCore(zapcore.NewConsoleEncoder(encoderConfig), zapcore.AddSync(w), level)
}

// fileCore writes every entry as JSON with ISO8601 timestamps
func fileCore(w io.Writer) zapcore.Core {
	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.TimeKey = "timestamp"
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	return zapcore.NewCore(zapcore.NewJSONEncoder(encoderConfig), zapcore.AddSync(w), zapcore.DebugLevel)
}
