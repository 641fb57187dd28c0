package model

// Work order lifecycle. Orders are never physically deleted; terminal
// cancellation is a status transition.
const (
	StatusScheduled  = "scheduled"
	StatusInProgress = "in_progress"
	StatusCompleted  = "completed"
	StatusCancelled  = "cancelled"
)

const (
	PriorityLow    = "low"
	PriorityNormal = "normal"
	PriorityHigh   = "high"
)

const (
	SkillBeginner     = "beginner"
	SkillIntermediate = "intermediate"
	SkillExpert       = "expert"
)

const (
	TechnicianActive   = "active"
	TechnicianInactive = "inactive"
)

var skillRanks = map[string]int{
	SkillBeginner:     1,
	SkillIntermediate: 2,
	SkillExpert:       3,
}

// SkillRank returns the ordering rank of a skill level, or 0 for an
// unknown level so unknown always compares below beginner.
func SkillRank(level string) int {
	return skillRanks[level]
}

// ValidStatusTransition reports whether a work order may move from one
// status to another. scheduled -> in_progress -> completed, with
// cancellation allowed from any non-terminal state.
func ValidStatusTransition(from, to string) bool {
	switch from {
	case StatusScheduled:
		return to == StatusInProgress || to == StatusCancelled
	case StatusInProgress:
		return to == StatusCompleted || to == StatusCancelled
	default:
		return false
	}
}
