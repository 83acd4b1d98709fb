package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/mertc/notebook/internal/app/models"
	"github.com/mertc/notebook/internal/app/models/dto"
	"github.com/mertc/notebook/internal/pkg/apperrors"
	"github.com/mertc/notebook/internal/pkg/auth"
)

type fakeUserStore struct {
	users  map[int64]*models.User
	nextID int64
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: make(map[int64]*models.User)}
}

func (f *fakeUserStore) Create(ctx context.Context, user *models.User) (int64, error) {
	for _, u := range f.users {
		if u.Email == user.Email {
			return 0, apperrors.ErrEmailAlreadyExists
		}
	}
	f.nextID++
	stored := *user
	stored.ID = f.nextID
	f.users[stored.ID] = &stored
	return stored.ID, nil
}

func (f *fakeUserStore) GetByID(ctx context.Context, id int64) (*models.User, error) {
	user, ok := f.users[id]
	if !ok {
		return nil, apperrors.ErrUserNotFound
	}
	return user, nil
}

func (f *fakeUserStore) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, apperrors.ErrUserNotFound
}

type fakeCollegeStore struct {
	colleges map[int64]*models.College
}

func newFakeCollegeStore() *fakeCollegeStore {
	return &fakeCollegeStore{colleges: map[int64]*models.College{
		1: {ID: 1, Name: "Default College", Code: "DEFAULT"},
	}}
}

func (f *fakeCollegeStore) Create(ctx context.Context, college *models.College) (int64, error) {
	for _, c := range f.colleges {
		if c.Code == college.Code || c.Name == college.Name {
			return 0, apperrors.ErrCollegeAlreadyExists
		}
	}
	id := int64(len(f.colleges) + 1)
	stored := *college
	stored.ID = id
	f.colleges[id] = &stored
	return id, nil
}

func (f *fakeCollegeStore) GetByID(ctx context.Context, id int64) (*models.College, error) {
	college, ok := f.colleges[id]
	if !ok {
		return nil, apperrors.ErrCollegeNotFound
	}
	return college, nil
}

func (f *fakeCollegeStore) GetAll(ctx context.Context) ([]*models.College, error) {
	out := make([]*models.College, 0, len(f.colleges))
	for _, c := range f.colleges {
		out = append(out, c)
	}
	return out, nil
}

func newTestAuthService() (AuthService, *fakeUserStore, *auth.JWTService) {
	users := newFakeUserStore()
	jwtService := auth.NewJWTService(auth.JWTConfig{
		SecretKey:   "test-secret",
		TokenExp:    time.Hour,
		TokenIssuer: "notebook-test",
	})
	return NewAuthService(users, newFakeCollegeStore(), jwtService), users, jwtService
}

func validRegistration() *dto.RegisterRequest {
	return &dto.RegisterRequest{
		Name:      "Ada Lovelace",
		Email:     "Ada@Example.COM",
		Password:  "correct-horse",
		Role:      "student",
		CollegeID: 1,
	}
}

func TestRegisterCreatesUserWithValidToken(t *testing.T) {
	svc, _, jwtService := newTestAuthService()

	resp, err := svc.Register(context.Background(), validRegistration())
	require.NoError(t, err)
	require.NotZero(t, resp.User.ID)
	require.Equal(t, "ada@example.com", resp.User.Email, "email should be normalized")
	require.Equal(t, models.RoleStudent, resp.User.RoleType)
	require.NotEqual(t, "correct-horse", resp.User.Password, "password must be stored hashed")

	claims, err := jwtService.ValidateToken(resp.Token)
	require.NoError(t, err)
	require.Equal(t, resp.User.ID, claims.UserID)
	require.Equal(t, "student", claims.RoleType)
	require.Equal(t, int64(1), claims.CollegeID)
}

func TestRegisterUnknownCollege(t *testing.T) {
	svc, _, _ := newTestAuthService()

	req := validRegistration()
	req.CollegeID = 42

	_, err := svc.Register(context.Background(), req)
	require.ErrorIs(t, err, apperrors.ErrValidationFailed)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc, _, _ := newTestAuthService()

	_, err := svc.Register(context.Background(), validRegistration())
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), validRegistration())
	require.ErrorIs(t, err, apperrors.ErrEmailAlreadyExists)
}

func TestLogin(t *testing.T) {
	svc, _, _ := newTestAuthService()

	registered, err := svc.Register(context.Background(), validRegistration())
	require.NoError(t, err)

	resp, err := svc.Login(context.Background(), &dto.LoginRequest{
		Email:    "ada@example.com",
		Password: "correct-horse",
	})
	require.NoError(t, err)
	require.Equal(t, registered.User.ID, resp.User.ID)
	require.NotEmpty(t, resp.Token)
}

func TestLoginInvalidCredentials(t *testing.T) {
	svc, _, _ := newTestAuthService()

	_, err := svc.Register(context.Background(), validRegistration())
	require.NoError(t, err)

	// Wrong password and unknown email look the same to the caller
	_, err = svc.Login(context.Background(), &dto.LoginRequest{Email: "ada@example.com", Password: "wrong"})
	require.ErrorIs(t, err, apperrors.ErrInvalidCredentials)

	_, err = svc.Login(context.Background(), &dto.LoginRequest{Email: "nobody@example.com", Password: "correct-horse"})
	require.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
}
