package logger

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const defaultLevel = zerolog.InfoLevel

// Config parámetros de arranque del logger. Level acepta los niveles de
// zerolog (trace, debug, info, warn, error); vacío o inválido cae a info.
type Config struct {
	Env   string
	Level string
}

// Logger envuelve zerolog para inyectarlo como dependencia explícita
// en los casos de uso en lugar de usar el logger global.
type Logger struct {
	zl zerolog.Logger
}

// New construye el logger según el entorno: en development escribe en
// consola legible con color; en cualquier otro entorno emite JSON a stdout.
// También reapunta el logger global de zerolog, para las librerías que lo usan.
func New(cfg Config) *Logger {
	var out io.Writer = os.Stdout
	if cfg.Env == "development" {
		out = zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.Kitchen}
	}

	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil || cfg.Level == "" {
		level = defaultLevel
	}

	zl := zerolog.New(out).Level(level).With().Timestamp().Logger()
	log.Logger = zl

	return &Logger{zl: zl}
}

// Trace a Fatal delegan directamente en el zerolog interno.
func (l *Logger) Trace() *zerolog.Event { return l.zl.Trace() }
func (l *Logger) Debug() *zerolog.Event { return l.zl.Debug() }
func (l *Logger) Info() *zerolog.Event  { return l.zl.Info() }
func (l *Logger) Warn() *zerolog.Event  { return l.zl.Warn() }
func (l *Logger) Error() *zerolog.Event { return l.zl.Error() }
func (l *Logger) Fatal() *zerolog.Event { return l.zl.Fatal() }

// With abre un contexto para derivar un sublogger con campos fijos.
func (l *Logger) With() zerolog.Context { return l.zl.With() }

// Zerolog expone el logger subyacente para quien necesite la API completa.
func (l *Logger) Zerolog() zerolog.Logger { return l.zl }
