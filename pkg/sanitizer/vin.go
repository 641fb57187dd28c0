package sanitizer

import (
	"strings"
)

const vinLength = 17

// ISO 3779 transliteration table. I, O and Q are not legal VIN
// characters and are absent on purpose.
var vinValues = map[byte]int{
	'A': 1, 'B': 2, 'C': 3, 'D': 4, 'E': 5, 'F': 6, 'G': 7, 'H': 8,
	'J': 1, 'K': 2, 'L': 3, 'M': 4, 'N': 5, 'P': 7, 'R': 9,
	'S': 2, 'T': 3, 'U': 4, 'V': 5, 'W': 6, 'X': 7, 'Y': 8, 'Z': 9,
	'0': 0, '1': 1, '2': 2, '3': 3, '4': 4, '5': 5, '6': 6, '7': 7, '8': 8, '9': 9,
}

var vinWeights = [vinLength]int{8, 7, 6, 5, 4, 3, 2, 10, 0, 9, 8, 7, 6, 5, 4, 3, 2}

// NormalizeVIN uppercases the input and strips whitespace and common
// separators. It does not validate; pair with ValidVIN.
func NormalizeVIN(vin string) string {
	vin = strings.ToUpper(strings.TrimSpace(vin))
	var b strings.Builder
	for i := 0; i < len(vin); i++ {
		c := vin[i]
		if c == ' ' || c == '-' || c == '.' {
			continue
		}
		b.WriteByte(c)
	}
	return b.String()
}

// ValidVIN reports whether the (already normalized) VIN is 17 legal
// characters with a correct ISO 3779 check digit in position 9.
func ValidVIN(vin string) bool {
	if len(vin) != vinLength {
		return false
	}

	sum := 0
	for i := 0; i < vinLength; i++ {
		value, ok := vinValues[vin[i]]
		if !ok {
			return false
		}
		sum += value * vinWeights[i]
	}

	check := byte('0' + sum%11)
	if sum%11 == 10 {
		check = 'X'
	}
	return vin[8] == check
}
