package main

import (
	"io"
	"log"
	"os"

	"github.com/natefinch/lumberjack"
)

// stdLogger adapts a *log.Logger to emitter.Logger.
type stdLogger struct {
	*log.Logger
	debug bool
}

func (l stdLogger) Debugf(format string, args ...any) {
	if l.debug {
		l.Printf("DEBUG "+format, args...)
	}
}

func (l stdLogger) Infof(format string, args ...any) {
	l.Printf("INFO "+format, args...)
}

// newLogger writes to a rotating file when c.Logfile is set, stderr otherwise.
// The returned closer releases the file.
func newLogger(c LogConfig) (stdLogger, io.Closer) {
	var out io.WriteCloser = nopCloser{os.Stderr}
	if c.Logfile != "" {
		out = &lumberjack.Logger{
			Filename: c.Logfile,
			MaxSize:  c.MaxSize, // megabytes
			MaxAge:   c.MaxAge,  // days
		}
	}

	return stdLogger{Logger: log.New(out, "voxemit ", log.LstdFlags|log.Lmicroseconds), debug: c.Debug}, out
}

type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }
