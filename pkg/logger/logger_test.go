package logger_test

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"github.com/issaqr/inventory-qr-api/pkg/logger"
)

func TestNew_NivelConfigurado(t *testing.T) {
	l := logger.New(logger.Config{Env: "production", Level: "debug"})
	assert.Equal(t, zerolog.DebugLevel, l.Zerolog().GetLevel())
}

func TestNew_NivelVacioUsaInfo(t *testing.T) {
	l := logger.New(logger.Config{Env: "production"})
	assert.Equal(t, zerolog.InfoLevel, l.Zerolog().GetLevel())
}

func TestNew_NivelInvalidoUsaInfo(t *testing.T) {
	l := logger.New(logger.Config{Env: "production", Level: "gritando"})
	assert.Equal(t, zerolog.InfoLevel, l.Zerolog().GetLevel())
}
