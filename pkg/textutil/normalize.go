// Package textutil normaliza texto para búsquedas insensibles a acentos.
package textutil

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var stripAccents = transform.Chain(
	norm.NFD,
	runes.Remove(runes.In(unicode.Mn)),
	norm.NFC,
)

// Normalize devuelve s en minúsculas y sin marcas diacríticas ("Química" ->
// "quimica"). Se aplica al término de búsqueda antes de compararlo con las
// columnas normalizadas.
func Normalize(s string) string {
	out, _, err := transform.String(stripAccents, s)
	if err != nil {
		return strings.ToLower(s)
	}
	return strings.ToLower(out)
}
