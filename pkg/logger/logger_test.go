package logger_test

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/erp-api/pkg/logger"
)

func TestNew_RespetaNivel(t *testing.T) {
	l := logger.New("production", "warn")
	assert.Equal(t, zerolog.WarnLevel, l.GetLevel())
}

// Un nivel mal escrito en la configuración no debe tumbar el arranque.
func TestNew_NivelDesconocidoCaeEnInfo(t *testing.T) {
	l := logger.New("production", "verboso")
	assert.Equal(t, zerolog.InfoLevel, l.GetLevel())
}

func TestComponent_EtiquetaLasLineas(t *testing.T) {
	var buf bytes.Buffer
	parent := zerolog.New(&buf)

	l := logger.Component(parent, "api")
	l.Info().Msg("hola")
	assert.Contains(t, buf.String(), `"component":"api"`)
}
