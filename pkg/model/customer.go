package model

import "time"

type Customer struct {
	ID        string    `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,mongodb"`
	ShopID    string    `json:"shop_id" bson:"shop_id" validate:"required,mongodb"`
	Name      string    `json:"name" bson:"name" validate:"required,min=2,max=100"`
	Phone     string    `json:"phone" bson:"phone" validate:"required,e164"`
	Email     string    `json:"email,omitempty" bson:"email,omitempty" validate:"omitempty,email"`
	Address   string    `json:"address,omitempty" bson:"address,omitempty" validate:"omitempty,min=2,max=200"`
	City      string    `json:"city,omitempty" bson:"city,omitempty" validate:"omitempty,min=2,max=50"`
	CreatedAt time.Time `json:"created_at" bson:"created_at" validate:"omitempty"`
}

type CustomerUpdate struct {
	Name    string `json:"name,omitempty" validate:"omitempty,min=2,max=100"`
	Phone   string `json:"phone,omitempty" validate:"omitempty,e164"`
	Email   string `json:"email,omitempty" validate:"omitempty,email"`
	Address string `json:"address,omitempty" validate:"omitempty,min=2,max=200"`
	City    string `json:"city,omitempty" validate:"omitempty,min=2,max=50"`
}
