package scheduling

import (
	"sort"

	"shoptrack/pkg/model"
)

// AssignmentRequest describes the job a technician is needed for.
type AssignmentRequest struct {
	WorkOrderID         string
	RequiredSpecialties []string
	MinimumSkillLevel   string
	EstimatedJobHours   float64
	IsEmergency         bool
}

// SelectTechnician picks the technician for a job, or reports ErrNoMatch.
//
// Eligibility: active, specialty set covers the required specialties, and
// skill rank at or above the requested minimum. Non-emergency jobs also
// exclude anyone whose committed hours plus the job estimate would exceed
// their daily cap; emergencies skip the capacity filter. Among eligible
// candidates the least-loaded wins: ascending TotalHours, then ascending
// BookingCount, then technician id so the ordering is deterministic.
//
// ErrNoMatch means manual dispatch, ErrInvalidInput means the caller sent
// an empty roster, negative estimate, or unknown minimum skill level.
func SelectTechnician(req AssignmentRequest, technicians []*model.Technician, workload map[string]Snapshot) (string, error) {
	if len(technicians) == 0 {
		return "", ErrInvalidInput
	}
	if req.EstimatedJobHours < 0 {
		return "", ErrInvalidInput
	}
	minRank := 0
	if req.MinimumSkillLevel != "" {
		minRank = model.SkillRank(req.MinimumSkillLevel)
		if minRank == 0 {
			return "", ErrInvalidInput
		}
	}

	var candidates []*model.Technician
	for _, tech := range technicians {
		if tech.Status != model.TechnicianActive {
			continue
		}
		if !tech.HasSpecialties(req.RequiredSpecialties) {
			continue
		}
		if model.SkillRank(tech.SkillLevel) < minRank {
			continue
		}
		if !req.IsEmergency {
			if workload[tech.ID].TotalHours+req.EstimatedJobHours > tech.MaxDailyHours {
				continue
			}
		}
		candidates = append(candidates, tech)
	}

	if len(candidates) == 0 {
		return "", ErrNoMatch
	}

	sort.Slice(candidates, func(i, j int) bool {
		wi, wj := workload[candidates[i].ID], workload[candidates[j].ID]
		if wi.TotalHours != wj.TotalHours {
			return wi.TotalHours < wj.TotalHours
		}
		if wi.BookingCount != wj.BookingCount {
			return wi.BookingCount < wj.BookingCount
		}
		return candidates[i].ID < candidates[j].ID
	})

	return candidates[0].ID, nil
}
