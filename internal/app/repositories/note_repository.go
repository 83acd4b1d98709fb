package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/mertc/notebook/internal/app/models"
	"github.com/mertc/notebook/internal/pkg/apperrors"
	"github.com/mertc/notebook/internal/pkg/logger"
)

// NoteFilter narrows a note listing. Zero values mean "no constraint";
// all present filters are combined conjunctively.
type NoteFilter struct {
	CollegeID  int64
	Department string
	Semester   int
	Subject    string
	Type       string
	Year       int
	ExamType   string
	Search     string
}

// NoteRepository handles database operations for Note.
type NoteRepository struct {
	DB *pgxpool.Pool
}

// NewNoteRepository creates a new instance of NoteRepository.
func NewNoteRepository(db *pgxpool.Pool) *NoteRepository {
	return &NoteRepository{DB: db}
}

func (r *NoteRepository) selectNoteQuery() squirrel.SelectBuilder {
	return squirrel.Select(
		"n.id", "n.title", "n.description", "n.subject", "n.department",
		"n.semester", "n.type", "n.year", "n.exam_type", "n.file_url",
		"n.uploaded_by", "n.college_id", "n.created_at",
		"u.name AS uploader_name", "u.role_type AS uploader_role",
	).
		From("notes n").
		Join("users u ON u.id = n.uploaded_by").
		PlaceholderFormat(squirrel.Dollar)
}

func scanNote(row pgx.Row) (*models.Note, error) {
	var note models.Note
	err := row.Scan(
		&note.ID, &note.Title, &note.Description, &note.Subject, &note.Department,
		&note.Semester, &note.Type, &note.Year, &note.ExamType, &note.FileURL,
		&note.UploadedBy, &note.CollegeID, &note.CreatedAt,
		&note.UploaderName, &note.UploaderRole,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNoteNotFound
		}
		logger.Error().Err(err).Msg("Error scanning note")
		return nil, err
	}
	return &note, nil
}

// buildListQuery applies the filter to the base select. Kept separate from
// List so the generated predicates can be exercised without a database.
func (r *NoteRepository) buildListQuery(filter NoteFilter) squirrel.SelectBuilder {
	query := r.selectNoteQuery()

	if filter.CollegeID > 0 {
		query = query.Where(squirrel.Eq{"n.college_id": filter.CollegeID})
	}
	if filter.Department != "" {
		query = query.Where(squirrel.Eq{"n.department": filter.Department})
	}
	if filter.Semester > 0 {
		query = query.Where(squirrel.Eq{"n.semester": filter.Semester})
	}
	if filter.Subject != "" {
		query = query.Where(squirrel.Eq{"n.subject": filter.Subject})
	}
	if filter.Type != "" {
		query = query.Where(squirrel.Eq{"n.type": filter.Type})
	}
	if filter.Year > 0 {
		query = query.Where(squirrel.Eq{"n.year": filter.Year})
	}
	if filter.ExamType != "" {
		query = query.Where(squirrel.Eq{"n.exam_type": filter.ExamType})
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where(squirrel.Or{
			squirrel.ILike{"n.title": pattern},
			squirrel.ILike{"n.subject": pattern},
			squirrel.ILike{"n.description": pattern},
		})
	}

	return query.OrderBy("n.created_at DESC")
}

// List retrieves notes matching the filter, newest first.
func (r *NoteRepository) List(ctx context.Context, filter NoteFilter) ([]*models.Note, error) {
	sqlStr, args, err := r.buildListQuery(filter).ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building list notes SQL")
		return nil, err
	}

	rows, err := r.DB.Query(ctx, sqlStr, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing list notes query")
		return nil, err
	}
	defer rows.Close()

	notes := make([]*models.Note, 0)
	for rows.Next() {
		note, err := scanNote(rows)
		if err != nil {
			logger.Error().Err(err).Msg("Error scanning one note during list")
			continue
		}
		notes = append(notes, note)
	}

	if err = rows.Err(); err != nil {
		logger.Error().Err(err).Msg("Error after iterating through note rows")
		return nil, err
	}

	return notes, nil
}

// GetByID retrieves a note by id with uploader information joined in.
func (r *NoteRepository) GetByID(ctx context.Context, id int64) (*models.Note, error) {
	sqlStr, args, err := r.selectNoteQuery().Where(squirrel.Eq{"n.id": id}).ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building get note by ID SQL")
		return nil, err
	}

	return scanNote(r.DB.QueryRow(ctx, sqlStr, args...))
}

// FindByFileSuffix retrieves the note whose stored file URL ends with the
// given filename. Used to resolve download links back to their note.
func (r *NoteRepository) FindByFileSuffix(ctx context.Context, filename string) (*models.Note, error) {
	sqlStr, args, err := r.selectNoteQuery().
		Where(squirrel.Like{"n.file_url": "%/" + filename}).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building find note by file suffix SQL")
		return nil, err
	}

	return scanNote(r.DB.QueryRow(ctx, sqlStr, args...))
}

// Create inserts a new note and returns its id.
func (r *NoteRepository) Create(ctx context.Context, note *models.Note) (int64, error) {
	sqlStr, args, err := insertNoteQuery(note).ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building create note SQL")
		return 0, err
	}

	var id int64
	if err := r.DB.QueryRow(ctx, sqlStr, args...).Scan(&id); err != nil {
		logger.Error().Err(err).Msg("Error executing create note query")
		return 0, err
	}

	return id, nil
}

func insertNoteQuery(note *models.Note) squirrel.InsertBuilder {
	return squirrel.Insert("notes").
		Columns(
			"title", "description", "subject", "department", "semester",
			"type", "year", "exam_type", "file_url", "uploaded_by", "college_id",
		).
		Values(
			note.Title, note.Description, note.Subject, note.Department, note.Semester,
			note.Type, note.Year, note.ExamType, note.FileURL, note.UploadedBy, note.CollegeID,
		).
		Suffix("RETURNING id").
		PlaceholderFormat(squirrel.Dollar)
}

// Delete removes a note by id.
func (r *NoteRepository) Delete(ctx context.Context, id int64) error {
	sqlStr, args, err := squirrel.Delete("notes").
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building delete note SQL")
		return err
	}

	result, err := r.DB.Exec(ctx, sqlStr, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing delete note query")
		return fmt.Errorf("failed to delete note: %w", err)
	}

	if result.RowsAffected() == 0 {
		return apperrors.ErrNoteNotFound
	}

	return nil
}
