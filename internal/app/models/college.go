package models

import "time"

// College defines the college model based on the 'colleges' table
type College struct {
	ID        int64     `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	Code      string    `json:"code" db:"code"` // Short unique code, e.g. "NITK"
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}
