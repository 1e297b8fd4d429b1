package logging

import (
	"io"
	"strings"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

const (
	FormatText = "text"
	FormatJSON = "json"
)

// Stacktrace is the field name WithStacktrace attaches traces under.
const Stacktrace = "stacktrace"

// Unexported but part of the stable interface of pkg/errors.
type stackTracer interface {
	StackTrace() errors.StackTrace
}

type causer interface {
	Cause() error
}

// Configure points the global logrus logger at out with the given level and
// format. Diagnostics go to stderr so stdout stays reserved for the run report.
func Configure(out io.Writer, level, format string) error {
	lvl, err := ParseLevel(level)
	if err != nil {
		return err
	}
	f, err := Formatter(format)
	if err != nil {
		return err
	}
	log.SetOutput(out)
	log.SetLevel(lvl)
	log.SetFormatter(f)
	return nil
}

func ParseLevel(level string) (log.Level, error) {
	lvl, err := log.ParseLevel(strings.TrimSpace(level))
	if err != nil {
		return log.InfoLevel, errors.Errorf("unknown log level %q", level)
	}
	return lvl, nil
}

func Formatter(format string) (log.Formatter, error) {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case FormatText, "":
		return &log.TextFormatter{FullTimestamp: true}, nil
	case FormatJSON:
		return &log.JSONFormatter{}, nil
	default:
		return nil, errors.Errorf("unknown log format %q (want %s or %s)", format, FormatText, FormatJSON)
	}
}

// WithStacktrace adds err and, when one is recorded, its stack trace to entry.
func WithStacktrace(entry *log.Entry, err error) *log.Entry {
	entry = entry.WithError(err)
	if stack := ExtractStack(err); stack != nil {
		entry = entry.WithField(Stacktrace, stack)
	}
	return entry
}

// ExtractStack returns the first errors.StackTrace found walking the cause
// chain, or nil.
func ExtractStack(err error) errors.StackTrace {
	if st, ok := err.(stackTracer); ok {
		return st.StackTrace()
	} else if c, ok := err.(causer); ok {
		return ExtractStack(c.Cause())
	}
	return nil
}
