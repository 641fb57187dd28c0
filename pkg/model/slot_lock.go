package model

import "time"

// SlotLock is an advisory lock preventing two concurrent requests from
// booking the same resource slot while the overlap check runs. The
// conflict pre-check is not a substitute for this lock: without it two
// requests could both pass the check and insert overlapping orders.
type SlotLock struct {
	ID        string    `bson:"_id" json:"id"`
	ExpiresAt time.Time `bson:"expires_at" json:"expires_at"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}
