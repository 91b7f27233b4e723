package inventory

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var upper = cases.Upper(language.Und)

// NormalizeText recorta espacios y pasa a mayúsculas. Se aplica a todo texto de
// producto al guardar y a todo filtro o búsqueda antes de comparar.
func NormalizeText(s string) string {
	return upper.String(strings.TrimSpace(s))
}

// NormalizeNote solo recorta: las notas de movimiento se guardan tal cual las escribe el operador.
func NormalizeNote(s string) string {
	return strings.TrimSpace(s)
}
