package logging

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// logger fields
const (
	PACKAGE = "pkg"
	FUNC    = "func"
	ORDER   = "order"
	HUB     = "hub"
	USER    = "uid"
	MANAGER = "manager"
	STATUS  = "status"
	REQUEST = "request_id"
)

func init() {
	zerolog.TimeFieldFormat = time.RFC3339Nano
}

// Configure sets the global level and output. Unknown levels fall back to info.
func Configure(level string, pretty bool) {
	Setup(os.Stderr, level, pretty)
}

func Setup(w io.Writer, level string, pretty bool) {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		lvl = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(lvl)
	if pretty {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.Kitchen}
	}
	log.Logger = zerolog.New(w).With().Timestamp().Logger()
}

// NewPackageLogger returns a logger tagged with pkg={name}
func NewPackageLogger(name string) zerolog.Logger {
	return log.With().Str(PACKAGE, name).Logger()
}
