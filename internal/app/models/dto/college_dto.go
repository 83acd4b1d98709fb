package dto

// CreateCollegeRequest is the payload for registering a new college.
type CreateCollegeRequest struct {
	Name string `json:"name" binding:"required,min=2,max=200"`
	Code string `json:"code" binding:"required,min=2,max=20"`
}
