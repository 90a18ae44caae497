// Package slug turns free text into canonical, URL-safe page identifiers.
package slug

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Make lower-cases s, folds accented letters to their base letter and
// collapses every run of characters outside [a-z0-9] into one hyphen.
func Make(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)))
	folded, _, err := transform.String(t, strings.ToLower(s))
	if err != nil {
		folded = strings.ToLower(s)
	}

	var b strings.Builder
	b.Grow(len(folded))
	pendingHyphen := false
	for _, r := range folded {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			if pendingHyphen && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingHyphen = false
			b.WriteRune(r)
			continue
		}
		pendingHyphen = true
	}
	return b.String()
}

// Join slugifies every part independently and joins the non-empty results with hyphens.
func Join(parts ...string) string {
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := Make(p); s != "" {
			out = append(out, s)
		}
	}
	return strings.Join(out, "-")
}

// ModelCity returns reparation-<model>-<city>.
func ModelCity(model, city string) string {
	return Join("reparation", model, city)
}

// BrandCity returns reparation-<brand>-<city>.
func BrandCity(brand, city string) string {
	return Join("reparation", brand, city)
}

// HubCity returns reparateurs-<city>.
func HubCity(city string) string {
	return Join("reparateurs", city)
}

// Symptom returns <symptom> or <symptom>-<city> when city is set.
func Symptom(symptom, city string) string {
	return Join(symptom, city)
}
