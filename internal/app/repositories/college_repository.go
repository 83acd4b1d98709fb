package repositories

import (
	"context"
	"errors"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/mertc/notebook/internal/app/models"
	"github.com/mertc/notebook/internal/pkg/apperrors"
	"github.com/mertc/notebook/internal/pkg/dberrors"
	"github.com/mertc/notebook/internal/pkg/logger"
)

// CollegeRepository handles database operations for College.
type CollegeRepository struct {
	DB *pgxpool.Pool
}

// NewCollegeRepository creates a new instance of CollegeRepository.
func NewCollegeRepository(db *pgxpool.Pool) *CollegeRepository {
	return &CollegeRepository{DB: db}
}

// Create inserts a new college and returns its id.
func (r *CollegeRepository) Create(ctx context.Context, college *models.College) (int64, error) {
	sql, args, err := squirrel.Insert("colleges").
		Columns("name", "code").
		Values(college.Name, college.Code).
		Suffix("RETURNING id").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building create college SQL")
		return 0, err
	}

	var id int64
	err = r.DB.QueryRow(ctx, sql, args...).Scan(&id)
	if err != nil {
		if dberrors.IsUniqueViolation(err) {
			return 0, apperrors.ErrCollegeAlreadyExists
		}
		logger.Error().Err(err).Msg("Error executing create college query")
		return 0, err
	}

	return id, nil
}

// GetByID retrieves a college by id.
func (r *CollegeRepository) GetByID(ctx context.Context, id int64) (*models.College, error) {
	sqlStr, args, err := squirrel.Select("id", "name", "code", "created_at").
		From("colleges").
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building get college by ID SQL")
		return nil, err
	}

	var college models.College
	err = r.DB.QueryRow(ctx, sqlStr, args...).Scan(&college.ID, &college.Name, &college.Code, &college.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrCollegeNotFound
		}
		logger.Error().Err(err).Msg("Error scanning college")
		return nil, err
	}

	return &college, nil
}

// GetAll retrieves all colleges ordered by name.
func (r *CollegeRepository) GetAll(ctx context.Context) ([]*models.College, error) {
	sqlStr, args, err := squirrel.Select("id", "name", "code", "created_at").
		From("colleges").
		OrderBy("name ASC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building get all colleges SQL")
		return nil, err
	}

	rows, err := r.DB.Query(ctx, sqlStr, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing get all colleges query")
		return nil, err
	}
	defer rows.Close()

	colleges := make([]*models.College, 0)
	for rows.Next() {
		var college models.College
		if err := rows.Scan(&college.ID, &college.Name, &college.Code, &college.CreatedAt); err != nil {
			logger.Error().Err(err).Msg("Error scanning one college during get all")
			continue
		}
		colleges = append(colleges, &college)
	}

	if err = rows.Err(); err != nil {
		logger.Error().Err(err).Msg("Error after iterating through college rows")
		return nil, err
	}

	return colleges, nil
}
