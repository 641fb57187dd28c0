package model

import "time"

type Vehicle struct {
	ID         string    `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,mongodb"`
	CustomerID string    `json:"customer_id" bson:"customer_id" validate:"required,mongodb"`
	VIN        string    `json:"vin" bson:"vin" validate:"required,len=17"`
	Make       string    `json:"make" bson:"make" validate:"required,min=2,max=50"`
	Model      string    `json:"model" bson:"model" validate:"required,min=1,max=50"`
	Year       int       `json:"year" bson:"year" validate:"required,min=1900,max=2100"`
	Plate      string    `json:"plate,omitempty" bson:"plate,omitempty" validate:"omitempty,min=2,max=16"`
	CreatedAt  time.Time `json:"created_at" bson:"created_at" validate:"omitempty"`
}

type VehicleUpdate struct {
	Make  string `json:"make,omitempty" validate:"omitempty,min=2,max=50"`
	Model string `json:"model,omitempty" validate:"omitempty,min=1,max=50"`
	Year  *int   `json:"year,omitempty" validate:"omitempty,min=1900,max=2100"`
	Plate string `json:"plate,omitempty" validate:"omitempty,min=2,max=16"`
}
