package dto

import "github.com/mertc/notebook/internal/app/models"

// RegisterRequest is the payload for user registration.
// Role is fixed at registration; there is no role-change endpoint.
type RegisterRequest struct {
	Name      string `json:"name" binding:"required,min=2,max=100"`
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,min=8"`
	Role      string `json:"role" binding:"required,oneof=student teacher"`
	CollegeID int64  `json:"collegeId" binding:"required,min=1"`
}

// LoginRequest is the payload for user login.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// AuthResponse is returned after a successful register or login.
type AuthResponse struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}
