package ledger

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// NormalizeName recorta, pasa a minúsculas y elimina diacríticos para la
// comparación de nombres de material ("Azúcar" == "azucar  ").
func NormalizeName(name string) string {
	trimmed := strings.TrimSpace(name)
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, trimmed)
	if err != nil {
		folded = trimmed
	}
	return strings.ToLower(folded)
}
