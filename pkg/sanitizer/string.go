package sanitizer

import (
	"strings"
	"unicode"
)

func TrimAndNormalize(s string) string {
	s = strings.TrimSpace(s)

	if s == "" {
		return ""
	}

	var result strings.Builder
	var lastWasSpace bool

	for _, r := range s {
		if unicode.IsSpace(r) {
			if !lastWasSpace {
				result.WriteRune(' ')
				lastWasSpace = true
			}
		} else {
			result.WriteRune(r)
			lastWasSpace = false
		}
	}

	return result.String()
}

func NormalizeName(name string) string {
	return TrimAndNormalize(name)
}

func NormalizeAddress(address string) string {
	return TrimAndNormalize(address)
}

func NormalizeCity(city string) string {
	return TrimAndNormalize(city)
}

// NormalizeSpecialty lowercases and strips special characters so
// variants like "Brake-Repair" and "brake repair" compare equal.
func NormalizeSpecialty(specialty string) string {
	return SanitizeServiceLabel(specialty)
}

func NormalizePlate(plate string) string {
	plate = strings.ToUpper(TrimAndNormalize(plate))
	return strings.ReplaceAll(plate, " ", "")
}
