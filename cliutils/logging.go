package cliutils

import (
	"io"
	"os"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// Level converts a verbosity level into a logrus.Level:
//
//	0 - nothing (only panics)
//	1 - errors
//	2 - info
//	3 - debug
//	4 - trace
//
// Values outside of that range are treated as 2.
func Level(verbosity int) logrus.Level {
	switch verbosity {
	case 0:
		return logrus.PanicLevel
	case 1:
		return logrus.ErrorLevel
	case 2:
		return logrus.InfoLevel
	case 3:
		return logrus.DebugLevel
	case 4:
		return logrus.TraceLevel
	default:
		return logrus.InfoLevel
	}
}

// NewLogger returns a logger writing to w at the given verbosity
func NewLogger(verbosity int, w io.Writer) *logrus.Logger {
	log := logrus.New()
	log.SetOutput(w)
	log.SetLevel(Level(verbosity))
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	return log
}

// Logger builds the logger given by the -v and -log flags. The returned function closes the log
// file, if there is one, and should be called before exiting.
func (f *LogFlags) Logger() (*logrus.Logger, func() error, error) {
	if f.LogPath == "" {
		return NewLogger(f.Verbosity, os.Stderr), func() error { return nil }, nil
	}

	file, err := os.Create(f.LogPath)
	if err != nil {
		return nil, nil, errors.Wrapf(err, "Failed to create log file")
	}

	log := NewLogger(f.Verbosity, file)
	log.WithField("verbosity", f.Verbosity).Debug("Logging initialized")
	return log, file.Close, nil
}
