// Package logger configures the process-wide logrus instance.
package logger

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

// Log is the shared logger. It is usable with default settings before Init
// is called, so library packages can log during tests without setup.
var Log = logrus.New()

// Init applies the configured level and optional log file. Unknown levels
// fall back to info.
func Init(levelStr string, filePath string) error {
	Log.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})

	level, err := logrus.ParseLevel(levelStr)
	if err != nil {
		level = logrus.InfoLevel
	}
	Log.SetLevel(level)

	writers := []io.Writer{os.Stdout}
	if filePath != "" {
		file, err := os.OpenFile(filePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
		if err != nil {
			return err
		}
		writers = append(writers, file)
	}
	Log.SetOutput(io.MultiWriter(writers...))

	return nil
}
