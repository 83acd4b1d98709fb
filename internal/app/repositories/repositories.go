package repositories

import (
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repositories holds all the repository instances
type Repositories struct {
	UserRepository    *UserRepository
	CollegeRepository *CollegeRepository
	NoteRepository    *NoteRepository
	RequestRepository *RequestRepository
}

// NewRepositories initializes all repositories
func NewRepositories(db *pgxpool.Pool) *Repositories {
	return &Repositories{
		UserRepository:    NewUserRepository(db),
		CollegeRepository: NewCollegeRepository(db),
		NoteRepository:    NewNoteRepository(db),
		RequestRepository: NewRequestRepository(db),
	}
}
