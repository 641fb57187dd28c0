package scheduling

import (
	"fmt"
	"math/rand"
	"testing"

	"shoptrack/pkg/model"
)

func technician(id string, specialties []string, skill string, maxHours float64) *model.Technician {
	return &model.Technician{
		ID:            id,
		Specialties:   specialties,
		SkillLevel:    skill,
		MaxDailyHours: maxHours,
		Status:        model.TechnicianActive,
	}
}

func TestSelectTechnician(t *testing.T) {
	brakes := []string{"brakes"}

	tests := []struct {
		name     string
		req      AssignmentRequest
		techs    []*model.Technician
		workload map[string]Snapshot
		want     string
		wantErr  error
	}{
		{
			name: "capacity excludes loaded technician",
			req:  AssignmentRequest{RequiredSpecialties: brakes, EstimatedJobHours: 3},
			techs: []*model.Technician{
				technician("t1", brakes, model.SkillExpert, 8),
				technician("t2", brakes, model.SkillExpert, 8),
			},
			workload: map[string]Snapshot{
				"t1": {TechnicianID: "t1", TotalHours: 6, BookingCount: 2},
				"t2": {TechnicianID: "t2", TotalHours: 2, BookingCount: 1},
			},
			want: "t2",
		},
		{
			name: "emergency skips capacity filter",
			req:  AssignmentRequest{RequiredSpecialties: brakes, EstimatedJobHours: 3, IsEmergency: true},
			techs: []*model.Technician{
				technician("t1", brakes, model.SkillExpert, 8),
				technician("t2", brakes, model.SkillExpert, 8),
			},
			workload: map[string]Snapshot{
				"t1": {TechnicianID: "t1", TotalHours: 9, BookingCount: 4},
				"t2": {TechnicianID: "t2", TotalHours: 7, BookingCount: 3},
			},
			want: "t2",
		},
		{
			name: "missing specialty excluded",
			req:  AssignmentRequest{RequiredSpecialties: []string{"transmission"}},
			techs: []*model.Technician{
				technician("t1", brakes, model.SkillExpert, 8),
			},
			wantErr: ErrNoMatch,
		},
		{
			name: "below minimum skill excluded",
			req:  AssignmentRequest{MinimumSkillLevel: model.SkillExpert},
			techs: []*model.Technician{
				technician("t1", brakes, model.SkillBeginner, 8),
				technician("t2", brakes, model.SkillIntermediate, 8),
			},
			wantErr: ErrNoMatch,
		},
		{
			name: "inactive technician excluded",
			req:  AssignmentRequest{RequiredSpecialties: brakes},
			techs: []*model.Technician{
				func() *model.Technician {
					tech := technician("t1", brakes, model.SkillExpert, 8)
					tech.Status = model.TechnicianInactive
					return tech
				}(),
			},
			wantErr: ErrNoMatch,
		},
		{
			name: "tie broken by booking count then id",
			req:  AssignmentRequest{},
			techs: []*model.Technician{
				technician("t3", brakes, model.SkillIntermediate, 8),
				technician("t2", brakes, model.SkillIntermediate, 8),
				technician("t1", brakes, model.SkillIntermediate, 8),
			},
			workload: map[string]Snapshot{
				"t1": {TechnicianID: "t1", TotalHours: 2, BookingCount: 2},
				"t2": {TechnicianID: "t2", TotalHours: 2, BookingCount: 1},
				"t3": {TechnicianID: "t3", TotalHours: 2, BookingCount: 1},
			},
			want: "t2",
		},
		{
			name:    "empty roster is invalid input",
			req:     AssignmentRequest{},
			techs:   nil,
			wantErr: ErrInvalidInput,
		},
		{
			name: "unknown minimum skill is invalid input",
			req:  AssignmentRequest{MinimumSkillLevel: "wizard"},
			techs: []*model.Technician{
				technician("t1", brakes, model.SkillExpert, 8),
			},
			wantErr: ErrInvalidInput,
		},
		{
			name: "negative estimate is invalid input",
			req:  AssignmentRequest{EstimatedJobHours: -1},
			techs: []*model.Technician{
				technician("t1", brakes, model.SkillExpert, 8),
			},
			wantErr: ErrInvalidInput,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := SelectTechnician(tt.req, tt.techs, tt.workload)
			if err != tt.wantErr {
				t.Fatalf("SelectTechnician() error = %v, want %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("SelectTechnician() = %q, want %q", got, tt.want)
			}
		})
	}
}

// The selection never violates the specialty or skill constraints, no
// matter what roster shape comes in.
func TestSelectTechnicianEligibilityProperty(t *testing.T) {
	r := rand.New(rand.NewSource(99))
	allSpecialties := []string{"brakes", "engine", "electrical", "transmission"}
	skills := []string{model.SkillBeginner, model.SkillIntermediate, model.SkillExpert}

	randomSpecialties := func() []string {
		var out []string
		for _, s := range allSpecialties {
			if r.Intn(2) == 0 {
				out = append(out, s)
			}
		}
		return out
	}

	for trial := 0; trial < 200; trial++ {
		var techs []*model.Technician
		workload := make(map[string]Snapshot)
		for i := 0; i < 1+r.Intn(8); i++ {
			id := fmt.Sprintf("t%d", i)
			tech := technician(id, randomSpecialties(), skills[r.Intn(len(skills))], float64(4+r.Intn(8)))
			techs = append(techs, tech)
			workload[id] = Snapshot{
				TechnicianID: id,
				TotalHours:   float64(r.Intn(10)),
				BookingCount: r.Intn(5),
			}
		}

		req := AssignmentRequest{
			RequiredSpecialties: randomSpecialties(),
			MinimumSkillLevel:   skills[r.Intn(len(skills))],
			EstimatedJobHours:   float64(r.Intn(6)),
			IsEmergency:         r.Intn(4) == 0,
		}

		got, err := SelectTechnician(req, techs, workload)
		if err == ErrNoMatch {
			continue
		}
		if err != nil {
			t.Fatalf("trial %d: unexpected error %v", trial, err)
		}

		var selected *model.Technician
		for _, tech := range techs {
			if tech.ID == got {
				selected = tech
				break
			}
		}
		if selected == nil {
			t.Fatalf("trial %d: selected unknown technician %q", trial, got)
		}
		if !selected.HasSpecialties(req.RequiredSpecialties) {
			t.Fatalf("trial %d: %q lacks required specialties %v", trial, got, req.RequiredSpecialties)
		}
		if model.SkillRank(selected.SkillLevel) < model.SkillRank(req.MinimumSkillLevel) {
			t.Fatalf("trial %d: %q skill %s below minimum %s", trial, got, selected.SkillLevel, req.MinimumSkillLevel)
		}
		if !req.IsEmergency {
			if workload[got].TotalHours+req.EstimatedJobHours > selected.MaxDailyHours {
				t.Fatalf("trial %d: %q over capacity", trial, got)
			}
		}
	}
}
