package sanitizer

const (
	MinDailyHours = 0.0

	MaxDailyHours = 24.0
)

func ClampDailyHours(hours float64) float64 {
	if hours < MinDailyHours {
		return MinDailyHours
	}
	if hours > MaxDailyHours {
		return MaxDailyHours
	}
	return hours
}
