// Package slug genera identificadores URL-safe para empresas y perfiles públicos.
package slug

import (
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// MaxLength longitud máxima de un slug (incluido el sufijo numérico).
const MaxLength = 60

// Make convierte un texto libre en slug: "Compañía Óptima S.A.S." -> "compania-optima-s-a-s".
// Devuelve "" si el texto no contiene ningún carácter alfanumérico.
func Make(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, s)
	if err != nil {
		folded = s
	}
	folded = strings.ToLower(folded)

	var b strings.Builder
	dash := false
	for _, r := range folded {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			dash = false
		default:
			if b.Len() > 0 && !dash {
				b.WriteByte('-')
				dash = true
			}
		}
	}
	out := strings.TrimSuffix(b.String(), "-")
	if len(out) > MaxLength {
		out = strings.TrimRight(out[:MaxLength], "-")
	}
	return out
}

// WithSuffix añade "-n" respetando MaxLength.
func WithSuffix(base string, n int) string {
	return WithToken(base, strconv.Itoa(n))
}

// WithToken añade "-token" recortando base si hace falta para no pasar de MaxLength.
// Con base vacía devuelve el token solo.
func WithToken(base, token string) string {
	if base == "" {
		return token
	}
	suffix := "-" + token
	if len(base)+len(suffix) > MaxLength {
		base = strings.TrimRight(base[:MaxLength-len(suffix)], "-")
	}
	return base + suffix
}

// Valid informa si s ya tiene forma de slug.
func Valid(s string) bool {
	if s == "" || len(s) > MaxLength {
		return false
	}
	return Make(s) == s
}
