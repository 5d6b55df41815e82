package observability

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// NewLogger returns a zerolog Logger writing to stdout.
// APP_ENV=dev (or development) uses a human-friendly console writer.
func NewLogger(env string) zerolog.Logger {
	return NewLoggerTo(os.Stdout, env)
}

func NewLoggerTo(w io.Writer, env string) zerolog.Logger {
	if env == "dev" || env == "development" {
		return zerolog.New(zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}).
			With().Timestamp().Logger()
	}
	return zerolog.New(w).With().Timestamp().Logger()
}

// Notifier reports the outcome of a console action: a short message for the
// operator plus the underlying error, which only goes to the log.
type Notifier struct{ l zerolog.Logger }

func NewNotifier(l zerolog.Logger) *Notifier { return &Notifier{l: l} }

func (n *Notifier) Success(msg string) {
	n.l.Info().Str("kind", "success").Msg(msg)
}

func (n *Notifier) Error(msg string, err error) {
	n.l.Error().Str("kind", "error").Err(err).Msg(msg)
}
