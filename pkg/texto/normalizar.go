// Package texto reúne utilitários de normalização de texto usados nas buscas.
package texto

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Normalizar remove acentos, converte para minúsculas e colapsa espaços.
// "  Feijão   Carioca " -> "feijao carioca".
func Normalizar(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		out = s
	}
	return strings.Join(strings.Fields(strings.ToLower(out)), " ")
}

// Contem informa se termo aparece em s ignorando acentos e caixa.
// Termo vazio casa com qualquer texto.
func Contem(s, termo string) bool {
	termo = Normalizar(termo)
	if termo == "" {
		return true
	}
	return strings.Contains(Normalizar(s), termo)
}
