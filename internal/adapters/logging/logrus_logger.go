package logging

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/andrescamacho/bikesim-go/internal/infrastructure/config"
)

// LogrusLogger adapts logrus to the application ContainerLogger
type LogrusLogger struct {
	entry *logrus.Entry
}

// NewLogrusLogger builds a logger from the logging configuration.
// The returned closer releases the log file when output is "file".
func NewLogrusLogger(cfg *config.LoggingConfig) (*LogrusLogger, io.Closer, error) {
	logger := logrus.New()

	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid log level %q: %w", cfg.Level, err)
	}
	logger.SetLevel(level)
	logger.SetReportCaller(cfg.IncludeCaller)

	if cfg.Format == "json" {
		logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	var closer io.Closer = nopCloser{}
	switch cfg.Output {
	case "stdout":
		logger.SetOutput(os.Stdout)
	case "file":
		file, err := os.OpenFile(cfg.FilePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open log file: %w", err)
		}
		logger.SetOutput(file)
		closer = file
	default:
		logger.SetOutput(os.Stderr)
	}

	return &LogrusLogger{entry: logrus.NewEntry(logger)}, closer, nil
}

// NewLogrusLoggerWithWriter logs text lines at debug level to w
func NewLogrusLoggerWithWriter(w io.Writer) *LogrusLogger {
	logger := logrus.New()
	logger.SetOutput(w)
	logger.SetLevel(logrus.DebugLevel)
	logger.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	return &LogrusLogger{entry: logrus.NewEntry(logger)}
}

// With returns a logger that adds fields to every entry
func (l *LogrusLogger) With(fields map[string]interface{}) *LogrusLogger {
	return &LogrusLogger{entry: l.entry.WithFields(fields)}
}

// Log implements logging.ContainerLogger
func (l *LogrusLogger) Log(level, message string, metadata map[string]interface{}) {
	entry := l.entry
	if len(metadata) > 0 {
		entry = entry.WithFields(logrus.Fields(metadata))
	}

	switch strings.ToUpper(level) {
	case "DEBUG":
		entry.Debug(message)
	case "WARNING", "WARN":
		entry.Warn(message)
	case "ERROR":
		entry.Error(message)
	default:
		entry.Info(message)
	}
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
