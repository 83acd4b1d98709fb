package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/mertc/notebook/internal/app/models"
	"github.com/mertc/notebook/internal/db"
	"github.com/mertc/notebook/internal/pkg/apperrors"
	"github.com/mertc/notebook/internal/pkg/logger"
)

var requestColumns = []string{
	"r.id", "r.title", "r.description", "r.subject", "r.department",
	"r.semester", "r.type", "r.year", "r.exam_type", "r.file_url",
	"r.status", "r.requested_by", "r.college_id", "r.teacher_message",
	"r.reviewed_by", "r.reviewed_at", "r.note_id", "r.created_at",
}

// RequestRepository handles database operations for NoteRequest. Status
// transitions are guarded in SQL: the review updates only match rows still
// pending, so concurrent reviewers cannot both win.
type RequestRepository struct {
	DB *pgxpool.Pool
}

// NewRequestRepository creates a new instance of RequestRepository.
func NewRequestRepository(db *pgxpool.Pool) *RequestRepository {
	return &RequestRepository{DB: db}
}

func (r *RequestRepository) selectRequestQuery() squirrel.SelectBuilder {
	cols := append([]string{}, requestColumns...)
	cols = append(cols, "u.name AS requester_name")
	return squirrel.Select(cols...).
		From("note_requests r").
		Join("users u ON u.id = r.requested_by").
		PlaceholderFormat(squirrel.Dollar)
}

func scanRequest(row pgx.Row, withRequester bool) (*models.NoteRequest, error) {
	var req models.NoteRequest
	dest := []any{
		&req.ID, &req.Title, &req.Description, &req.Subject, &req.Department,
		&req.Semester, &req.Type, &req.Year, &req.ExamType, &req.FileURL,
		&req.Status, &req.RequestedBy, &req.CollegeID, &req.TeacherMessage,
		&req.ReviewedBy, &req.ReviewedAt, &req.NoteID, &req.CreatedAt,
	}
	if withRequester {
		dest = append(dest, &req.RequesterName)
	}
	if err := row.Scan(dest...); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrRequestNotFound
		}
		logger.Error().Err(err).Msg("Error scanning note request")
		return nil, err
	}
	return &req, nil
}

// Create inserts a new pending request and returns its id.
func (r *RequestRepository) Create(ctx context.Context, req *models.NoteRequest) (int64, error) {
	sqlStr, args, err := squirrel.Insert("note_requests").
		Columns(
			"title", "description", "subject", "department", "semester",
			"type", "year", "exam_type", "file_url", "status", "requested_by", "college_id",
		).
		Values(
			req.Title, req.Description, req.Subject, req.Department, req.Semester,
			req.Type, req.Year, req.ExamType, req.FileURL, models.RequestStatusPending,
			req.RequestedBy, req.CollegeID,
		).
		Suffix("RETURNING id").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building create request SQL")
		return 0, err
	}

	var id int64
	if err := r.DB.QueryRow(ctx, sqlStr, args...).Scan(&id); err != nil {
		logger.Error().Err(err).Msg("Error executing create request query")
		return 0, err
	}

	return id, nil
}

// GetByID retrieves a request by id with the requester name joined in.
func (r *RequestRepository) GetByID(ctx context.Context, id int64) (*models.NoteRequest, error) {
	sqlStr, args, err := r.selectRequestQuery().Where(squirrel.Eq{"r.id": id}).ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building get request by ID SQL")
		return nil, err
	}

	return scanRequest(r.DB.QueryRow(ctx, sqlStr, args...), true)
}

// ListByStatus retrieves requests in any of the given statuses for a college,
// newest first.
func (r *RequestRepository) ListByStatus(ctx context.Context, collegeID int64, statuses ...models.RequestStatus) ([]*models.NoteRequest, error) {
	query := r.selectRequestQuery().
		Where(squirrel.Eq{"r.college_id": collegeID, "r.status": statuses}).
		OrderBy("r.created_at DESC")

	return r.list(ctx, query)
}

// ListByRequester retrieves all requests submitted by the given user,
// newest first.
func (r *RequestRepository) ListByRequester(ctx context.Context, userID int64) ([]*models.NoteRequest, error) {
	query := r.selectRequestQuery().
		Where(squirrel.Eq{"r.requested_by": userID}).
		OrderBy("r.created_at DESC")

	return r.list(ctx, query)
}

func (r *RequestRepository) list(ctx context.Context, query squirrel.SelectBuilder) ([]*models.NoteRequest, error) {
	sqlStr, args, err := query.ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building list requests SQL")
		return nil, err
	}

	rows, err := r.DB.Query(ctx, sqlStr, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing list requests query")
		return nil, err
	}
	defer rows.Close()

	requests := make([]*models.NoteRequest, 0)
	for rows.Next() {
		req, err := scanRequest(rows, true)
		if err != nil {
			logger.Error().Err(err).Msg("Error scanning one request during list")
			continue
		}
		requests = append(requests, req)
	}

	if err = rows.Err(); err != nil {
		logger.Error().Err(err).Msg("Error after iterating through request rows")
		return nil, err
	}

	return requests, nil
}

// claimPending marks a still-pending request as reviewed with the given
// outcome. It returns ErrRequestNotFound when no such request exists and
// ErrInvalidState when the request was already decided.
func claimPending(ctx context.Context, tx pgx.Tx, id int64, reviewerID int64, status models.RequestStatus, message *string) (*models.NoteRequest, error) {
	update := squirrel.Update("note_requests").
		Set("status", status).
		Set("reviewed_by", reviewerID).
		Set("reviewed_at", time.Now()).
		Where(squirrel.Eq{"id": id, "status": models.RequestStatusPending}).
		Suffix("RETURNING id, title, description, subject, department, semester, type, year, exam_type, file_url, status, requested_by, college_id, teacher_message, reviewed_by, reviewed_at, note_id, created_at").
		PlaceholderFormat(squirrel.Dollar)
	if message != nil {
		update = update.Set("teacher_message", *message)
	}

	sqlStr, args, err := update.ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building claim pending request SQL")
		return nil, err
	}

	req, err := scanRequest(tx.QueryRow(ctx, sqlStr, args...), false)
	if err == nil {
		return req, nil
	}
	if !errors.Is(err, apperrors.ErrRequestNotFound) {
		return nil, err
	}

	// No pending row matched: distinguish a missing request from one
	// already decided by another reviewer.
	var status2 models.RequestStatus
	checkSQL, checkArgs, err := squirrel.Select("status").
		From("note_requests").
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}
	if err := tx.QueryRow(ctx, checkSQL, checkArgs...).Scan(&status2); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrRequestNotFound
		}
		logger.Error().Err(err).Msg("Error checking request status")
		return nil, err
	}
	return nil, apperrors.ErrInvalidState
}

// Approve atomically transitions a pending request to approved and publishes
// the corresponding note in the same transaction. Exactly one of two
// concurrent reviewers can succeed; the loser gets ErrInvalidState.
func (r *RequestRepository) Approve(ctx context.Context, id int64, reviewerID int64) (*models.NoteRequest, error) {
	var approved *models.NoteRequest

	err := db.WithTransaction(ctx, r.DB, func(ctx context.Context, tx pgx.Tx) error {
		req, err := claimPending(ctx, tx, id, reviewerID, models.RequestStatusApproved, nil)
		if err != nil {
			return err
		}

		note := &models.Note{
			Title:       req.Title,
			Description: req.Description,
			Subject:     req.Subject,
			Department:  req.Department,
			Semester:    req.Semester,
			Type:        req.Type,
			Year:        req.Year,
			ExamType:    req.ExamType,
			FileURL:     req.FileURL,
			UploadedBy:  req.RequestedBy,
			CollegeID:   req.CollegeID,
		}

		noteSQL, noteArgs, err := insertNoteQuery(note).ToSql()
		if err != nil {
			logger.Error().Err(err).Msg("Error building publish note SQL")
			return err
		}

		var noteID int64
		if err := tx.QueryRow(ctx, noteSQL, noteArgs...).Scan(&noteID); err != nil {
			logger.Error().Err(err).Msg("Error publishing note from approved request")
			return err
		}

		linkSQL, linkArgs, err := squirrel.Update("note_requests").
			Set("note_id", noteID).
			Where(squirrel.Eq{"id": id}).
			PlaceholderFormat(squirrel.Dollar).
			ToSql()
		if err != nil {
			return err
		}
		if _, err := tx.Exec(ctx, linkSQL, linkArgs...); err != nil {
			logger.Error().Err(err).Msg("Error linking note to approved request")
			return err
		}

		req.NoteID = &noteID
		approved = req
		return nil
	})
	if err != nil {
		return nil, err
	}

	return approved, nil
}

// Reject atomically transitions a pending request to rejected, recording the
// reviewer's feedback message.
func (r *RequestRepository) Reject(ctx context.Context, id int64, reviewerID int64, message string) (*models.NoteRequest, error) {
	var rejected *models.NoteRequest

	err := db.WithTransaction(ctx, r.DB, func(ctx context.Context, tx pgx.Tx) error {
		req, err := claimPending(ctx, tx, id, reviewerID, models.RequestStatusRejected, &message)
		if err != nil {
			return err
		}
		rejected = req
		return nil
	})
	if err != nil {
		return nil, err
	}

	return rejected, nil
}
