package scheduling

// Policy controls conflict validation. AllowOverlap lets a shop
// double-book a resource on purpose (e.g. a shared bay).
type Policy struct {
	AllowOverlap bool
}

// CheckConflict decides whether a candidate range may be booked against
// the existing ranges for one resource. Callers pre-filter existing to
// the relevant resource and day.
//
// Returns nil when the candidate is acceptable, ErrInvalidRange when the
// candidate is malformed, ErrConflict when it overlaps an existing range
// and the policy forbids overlap. This is a pre-check only; race-free
// booking relies on the data layer's transactional guarantees.
func CheckConflict(candidate TimeRange, existing []TimeRange, policy Policy) error {
	if !candidate.Valid() {
		return ErrInvalidRange
	}

	if policy.AllowOverlap {
		return nil
	}

	for _, r := range existing {
		if candidate.Overlaps(r) {
			return ErrConflict
		}
	}

	return nil
}
