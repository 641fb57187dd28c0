package model

import "time"

type Technician struct {
	ID            string    `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,mongodb"`
	ShopID        string    `json:"shop_id" bson:"shop_id" validate:"required,mongodb"`
	Name          string    `json:"name" bson:"name" validate:"required,min=2,max=100"`
	Phone         string    `json:"phone" bson:"phone" validate:"required,e164"`
	Specialties   []string  `json:"specialties" bson:"specialties" validate:"required,min=1,max=20,dive,min=2,max=50"`
	SkillLevel    string    `json:"skill_level" bson:"skill_level" validate:"required,oneof=beginner intermediate expert"`
	MaxDailyHours float64   `json:"max_daily_hours" bson:"max_daily_hours" validate:"required,gt=0,max=24"`
	Status        string    `json:"status" bson:"status" validate:"required,oneof=active inactive"`
	TimeZone      string    `json:"time_zone,omitempty" bson:"time_zone,omitempty" validate:"omitempty,timezone"`
	CreatedAt     time.Time `json:"created_at" bson:"created_at" validate:"omitempty"`
}

type TechnicianUpdate struct {
	Name          string    `json:"name,omitempty" validate:"omitempty,min=2,max=100"`
	Phone         string    `json:"phone,omitempty" validate:"omitempty,e164"`
	Specialties   *[]string `json:"specialties,omitempty" validate:"omitempty,min=1,max=20,dive,min=2,max=50"`
	SkillLevel    string    `json:"skill_level,omitempty" validate:"omitempty,oneof=beginner intermediate expert"`
	MaxDailyHours *float64  `json:"max_daily_hours,omitempty" validate:"omitempty,gt=0,max=24"`
	Status        string    `json:"status,omitempty" validate:"omitempty,oneof=active inactive"`
	TimeZone      string    `json:"time_zone,omitempty" validate:"omitempty,timezone"`
}

// HasSpecialties reports whether the technician's specialty set covers
// every required specialty.
func (t *Technician) HasSpecialties(required []string) bool {
	if len(required) == 0 {
		return true
	}
	have := make(map[string]struct{}, len(t.Specialties))
	for _, s := range t.Specialties {
		have[s] = struct{}{}
	}
	for _, r := range required {
		if _, ok := have[r]; !ok {
			return false
		}
	}
	return true
}
