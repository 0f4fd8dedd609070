// Package logging builds the logrus loggers used by the example programs.
// Library packages accept a logrus.FieldLogger and never build their own
package logging

import (
	"fmt"
	"io"
	"os"
	"path"
	"runtime"
	"strings"

	formatter "github.com/antonfisher/nested-logrus-formatter"
	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Options configure a logger
type Options struct {
	// Level is a logrus level name, eg: "debug", "info".  Empty means info
	Level string
	// File if set also writes log lines to a rotated log file at this path
	File string
	// MaxSizeMB is the size a log file grows to before rotation
	MaxSizeMB int
	// MaxBackups is the number of rotated files to keep
	MaxBackups int
	// Caller adds the calling file, line and function to each entry
	Caller  bool
	NoColor bool
	// Output overrides stderr as the console writer
	Output io.Writer
}

// New returns a logger writing to stderr and optionally a rotated file
func New(opts Options) (*logrus.Logger, error) {

	level := logrus.InfoLevel

	if opts.Level != "" {
		var err error
		level, err = logrus.ParseLevel(opts.Level)

		if err != nil {
			return nil, fmt.Errorf("invalid log level: %w", err)
		}
	}

	log := logrus.New()
	log.SetLevel(level)

	log.SetFormatter(&formatter.Formatter{
		NoColors:        opts.NoColor,
		TimestampFormat: "02 Jan 06 - 15:04:05",
		CallerFirst:     true,
		CustomCallerFormatter: func(f *runtime.Frame) string {
			s := strings.Split(f.Function, ".")
			return fmt.Sprintf(" [%s:%d][%s()]", path.Base(f.File), f.Line, s[len(s)-1])
		},
	})

	console := opts.Output

	if console == nil {
		console = os.Stderr
	}

	writers := []io.Writer{console}

	if opts.File != "" {
		maxSize := opts.MaxSizeMB

		if maxSize <= 0 {
			maxSize = 100
		}

		writers = append(writers, &lumberjack.Logger{
			Filename:   opts.File,
			LocalTime:  true,
			Compress:   true,
			MaxSize:    maxSize,
			MaxBackups: opts.MaxBackups,
		})
	}

	log.SetOutput(io.MultiWriter(writers...))
	log.SetReportCaller(opts.Caller)

	return log, nil
}

// Discard returns a logger that drops everything
func Discard() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	log.SetLevel(logrus.PanicLevel)

	return log
}
