package locale

import "strings"

// regionPriority fixes iteration order; US and CA share the +1 prefix,
// so lookups must be deterministic.
var regionPriority = []string{"US", "CA"}

func InferTimezoneFromPhone(phone string) string {
	if country := InferCountryFromPhone(phone); country != nil {
		return country.DefaultTimezone
	}
	return DefaultTimezone
}

func InferCountryFromPhone(phone string) *Country {
	normalized := strings.TrimSpace(phone)

	for _, code := range regionPriority {
		country := Countries[code]
		for _, prefix := range country.PhonePrefixes {
			if strings.HasPrefix(normalized, prefix) {
				return &country
			}
		}
	}

	return nil
}
