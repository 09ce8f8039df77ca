package telemetry

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

// LoggerConfig configures NewLogger.
type LoggerConfig struct {
	// Level is a logrus level name. Unknown names fall back to warn.
	Level string
	// JSON selects the JSON formatter instead of text.
	JSON bool
	// Output defaults to stderr.
	Output io.Writer
}

// NewLogger creates a logger for the client.
func NewLogger(cfg LoggerConfig) *logrus.Logger {
	logger := logrus.New()

	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		level = logrus.WarnLevel
	}
	logger.SetLevel(level)

	if cfg.Output != nil {
		logger.SetOutput(cfg.Output)
	} else {
		logger.SetOutput(os.Stderr)
	}

	if cfg.JSON {
		logger.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat: "2006-01-02T15:04:05.000Z07:00",
			FieldMap: logrus.FieldMap{
				logrus.FieldKeyTime:  "@timestamp",
				logrus.FieldKeyLevel: "level",
				logrus.FieldKeyMsg:   "message",
			},
		})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	return logger
}
