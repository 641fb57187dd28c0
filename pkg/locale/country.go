package locale

const (
	DefaultTimezone = "UTC"
)

type Country struct {
	Code            string   // ISO 3166-1 alpha-2 country code (e.g., "US", "CA")
	Name            string   // Human-readable country name
	PhonePrefixes   []string // Valid phone number prefixes (e.g., ["+1", "1"])
	DefaultTimezone string   // IANA timezone identifier (e.g., "America/New_York")
}

var (
	Countries = map[string]Country{
		"US": {
			Code:            "US",
			Name:            "United States",
			PhonePrefixes:   []string{"+1", "1"},
			DefaultTimezone: "America/New_York",
		},
		"CA": {
			Code:            "CA",
			Name:            "Canada",
			PhonePrefixes:   []string{"+1", "1"},
			DefaultTimezone: "America/Toronto",
		},
	}

)
