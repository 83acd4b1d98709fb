package services

import (
	"context"
	"strings"

	appauth "github.com/mertc/notebook/internal/app/auth"
	"github.com/mertc/notebook/internal/app/models"
	"github.com/mertc/notebook/internal/app/models/dto"
	"github.com/mertc/notebook/internal/pkg/logger"
)

// CollegeService defines college listing and registration operations.
type CollegeService interface {
	List(ctx context.Context) ([]*models.College, error)
	Create(ctx context.Context, actor Actor, req *dto.CreateCollegeRequest) (*models.College, error)
}

type collegeService struct {
	colleges CollegeStore
}

// NewCollegeService creates a new instance of CollegeService.
func NewCollegeService(colleges CollegeStore) CollegeService {
	return &collegeService{colleges: colleges}
}

// List returns all registered colleges.
func (s *collegeService) List(ctx context.Context) ([]*models.College, error) {
	return s.colleges.GetAll(ctx)
}

// Create registers a new college. Codes are normalized to upper case.
func (s *collegeService) Create(ctx context.Context, actor Actor, req *dto.CreateCollegeRequest) (*models.College, error) {
	if err := appauth.Require(actor.Role, appauth.ActionCollegeCreate); err != nil {
		return nil, err
	}

	college := &models.College{
		Name: strings.TrimSpace(req.Name),
		Code: strings.ToUpper(strings.TrimSpace(req.Code)),
	}

	id, err := s.colleges.Create(ctx, college)
	if err != nil {
		return nil, err
	}
	college.ID = id

	logger.Info().Int64("collegeID", id).Str("code", college.Code).Msg("College registered")

	return college, nil
}
