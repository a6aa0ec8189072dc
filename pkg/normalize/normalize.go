// Package normalize normaliza texto para búsquedas insensibles a tildes,
// necesarias con nombres comerciales en español (ej: "Acetaminofén" vs "acetaminofen").
package normalize

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

// Search devuelve el término en minúsculas, sin tildes y sin espacios sobrantes.
func Search(s string) string {
	out, _, err := transform.String(stripAccents, s)
	if err != nil {
		out = s
	}
	return strings.ToLower(strings.TrimSpace(out))
}
