package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/samber/oops"

	"github.com/vncsmyrnk/assessment/internal/core/domain"
	"github.com/vncsmyrnk/assessment/internal/core/ports"
)

const sessionColumns = `id, assessment_id, user_id, status, started_at, completed_at, metadata`

type sessionRepository struct {
	db *sql.DB
}

func NewSessionRepository(db *sql.DB) ports.SessionRepository {
	return &sessionRepository{
		db: db,
	}
}

func (r *sessionRepository) Create(ctx context.Context, session *domain.Session) error {
	query := `
		INSERT INTO assessment_sessions (assessment_id, user_id, metadata)
		VALUES ($1, $2, $3)
		RETURNING ` + sessionColumns

	row := r.db.QueryRowContext(ctx, query, session.AssessmentID, session.UserID, jsonParam(session.Metadata))
	if err := scanSession(row, session); err != nil {
		return oops.Code("SESSION_CREATE_FAILED").
			With("assessment_id", session.AssessmentID).
			With("user_id", session.UserID).
			Wrap(err)
	}
	return nil
}

func (r *sessionRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Session, error) {
	query := `SELECT ` + sessionColumns + ` FROM assessment_sessions WHERE id = $1`

	var session domain.Session
	err := scanSession(r.db.QueryRowContext(ctx, query, id), &session)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, oops.Code("SESSION_GET_FAILED").
			With("id", id.String()).
			Wrap(err)
	}
	return &session, nil
}

// Complete filters on owner and active status in the update itself, so a
// missing, foreign or already completed session all come back as (nil, nil).
func (r *sessionRepository) Complete(ctx context.Context, id uuid.UUID, userID string) (*domain.Session, error) {
	query := `
		UPDATE assessment_sessions
		SET status = 'completed', completed_at = NOW()
		WHERE id = $1 AND user_id = $2 AND status = 'active'
		RETURNING ` + sessionColumns

	var session domain.Session
	err := scanSession(r.db.QueryRowContext(ctx, query, id, userID), &session)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, oops.Code("SESSION_COMPLETE_FAILED").
			With("id", id.String()).
			With("user_id", userID).
			Wrap(err)
	}
	return &session, nil
}

func scanSession(row *sql.Row, s *domain.Session) error {
	var metadata []byte
	err := row.Scan(&s.ID, &s.AssessmentID, &s.UserID, &s.Status, &s.StartedAt, &s.CompletedAt, &metadata)
	if err != nil {
		return err
	}
	s.Metadata = rawJSON(metadata)
	return nil
}
