package models

import (
	"time"
)

// User defines the user model based on the 'users' table
type User struct {
	ID        int64     `json:"id" db:"id" example:"1"`                                   // Unique identifier for the user
	Email     string    `json:"email" db:"email" example:"user@college.edu"`              // User's email address
	Password  string    `json:"-" db:"password"`                                          // User's hashed password (excluded from JSON)
	Name      string    `json:"name" db:"name" example:"John Doe"`                        // Display name
	RoleType  RoleType  `json:"role" db:"role_type" example:"student"`                    // User's role (student, teacher or admin)
	CollegeID int64     `json:"collegeId" db:"college_id" example:"1"`                    // College the user belongs to
	CreatedAt time.Time `json:"createdAt" db:"created_at" example:"2024-01-01T10:00:00Z"` // Timestamp when the user was created
}
