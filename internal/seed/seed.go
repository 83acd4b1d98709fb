package seed

import (
	"context"
	"errors"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"
	appModels "github.com/mertc/notebook/internal/app/models"
	appRepos "github.com/mertc/notebook/internal/app/repositories"
	"github.com/mertc/notebook/internal/pkg/apperrors"
	"github.com/mertc/notebook/internal/pkg/auth"
	"github.com/mertc/notebook/internal/pkg/logger"
)

const (
	defaultCollegeName = "Default College"
	defaultCollegeCode = "DEFAULT"
	defaultAdminEmail  = "admin@notebook.local"
	defaultAdminName   = "Administrator"
)

// CreateDefaultData makes sure a default college and an admin account exist.
// The admin role has no registration path, so seeding is the only way to
// create one.
func CreateDefaultData(ctx context.Context, dbPool *pgxpool.Pool) error {
	collegeRepo := appRepos.NewCollegeRepository(dbPool)
	userRepo := appRepos.NewUserRepository(dbPool)

	logger.Info().Msg("Checking/Creating default data (college, admin account)...")
	var finalErr error

	college := &appModels.College{Name: defaultCollegeName, Code: defaultCollegeCode}
	collegeID, err := collegeRepo.Create(ctx, college)
	if err != nil && !errors.Is(err, apperrors.ErrCollegeAlreadyExists) {
		logger.Error().Err(err).Msg("Error creating default college")
		finalErr = errors.Join(finalErr, err)
	} else if errors.Is(err, apperrors.ErrCollegeAlreadyExists) {
		colleges, errGet := collegeRepo.GetAll(ctx)
		if errGet != nil {
			logger.Error().Err(errGet).Msg("Error getting colleges to find default college ID")
			finalErr = errors.Join(finalErr, errGet)
		} else {
			for _, c := range colleges {
				if c.Code == defaultCollegeCode {
					collegeID = c.ID
					break
				}
			}
		}
	}

	if collegeID > 0 {
		if err := createAdminUser(ctx, userRepo, collegeID); err != nil {
			finalErr = errors.Join(finalErr, err)
		}
	}

	return finalErr
}

func createAdminUser(ctx context.Context, userRepo *appRepos.UserRepository, collegeID int64) error {
	if _, err := userRepo.GetByEmail(ctx, defaultAdminEmail); err == nil {
		return nil
	} else if !errors.Is(err, apperrors.ErrUserNotFound) {
		logger.Error().Err(err).Msg("Error checking for existing admin account")
		return err
	}

	password := os.Getenv("ADMIN_PASSWORD")
	if password == "" {
		logger.Warn().Msg("ADMIN_PASSWORD not set, skipping admin account creation")
		return nil
	}

	hashed, err := auth.HashPassword(password)
	if err != nil {
		logger.Error().Err(err).Msg("Error hashing admin password")
		return err
	}

	admin := &appModels.User{
		Email:     defaultAdminEmail,
		Password:  hashed,
		Name:      defaultAdminName,
		RoleType:  appModels.RoleAdmin,
		CollegeID: collegeID,
	}

	id, err := userRepo.Create(ctx, admin)
	if err != nil {
		logger.Error().Err(err).Msg("Error creating admin account")
		return err
	}

	logger.Info().Int64("userID", id).Str("email", defaultAdminEmail).Msg("Admin account created")
	return nil
}
