package ledgerview

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/clinicayacucho/inventario-stock/internal/domain/entity"
)

// Los nombres de producto y principios activos vienen con tildes y mayúsculas
// irregulares; la búsqueda debe encontrar "acetaminofen" en "Acetaminofén".
var diacriticsRemover = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// foldSearch normaliza un texto para comparación: quita tildes y pasa a
// minúsculas.
func foldSearch(s string) string {
	out, _, err := transform.String(diacriticsRemover, s)
	if err != nil {
		out = s
	}
	return strings.ToLower(strings.TrimSpace(out))
}

// matchesSearch compara contra nombre y principio activo; needle ya viene
// pasado por foldSearch.
func matchesSearch(e entity.LedgerEntry, needle string) bool {
	return strings.Contains(foldSearch(e.Name), needle) ||
		strings.Contains(foldSearch(e.ActiveIngredient), needle)
}
