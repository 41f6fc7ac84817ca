// Package logger arma el logger raíz de la aplicación sobre zerolog:
// JSON en producción, consola legible en desarrollo.
package logger

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// New construye el logger raíz con el nivel indicado y lo instala como
// logger global de zerolog para las librerías que escriben ahí. Un nivel
// desconocido no tumba el arranque, cae en info.
func New(env, level string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}

	var out io.Writer = os.Stdout
	if env == "development" {
		out = zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.Kitchen}
	}

	root := zerolog.New(out).Level(lvl).With().Timestamp().Logger()
	log.Logger = root
	return root
}

// Component deriva un sublogger etiquetado con el nombre del componente,
// para poder filtrar las líneas de cada binario o subsistema.
func Component(parent zerolog.Logger, name string) zerolog.Logger {
	return parent.With().Str("component", name).Logger()
}
