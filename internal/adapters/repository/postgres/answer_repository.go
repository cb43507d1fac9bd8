package postgres

import (
	"context"
	"database/sql"

	"github.com/samber/oops"

	"github.com/vncsmyrnk/assessment/internal/core/domain"
	"github.com/vncsmyrnk/assessment/internal/core/ports"
)

type answerRepository struct {
	db *sql.DB
}

func NewAnswerRepository(db *sql.DB) ports.AnswerRepository {
	return &answerRepository{
		db: db,
	}
}

// Create appends an answer. answer_order carries no uniqueness constraint.
func (r *answerRepository) Create(ctx context.Context, answer *domain.Answer) error {
	query := `
		INSERT INTO assessment_answers (session_id, question_id, answer_order, answer_payload, metadata)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, session_id, question_id, answer_order, answer_payload, answered_at, metadata
	`
	var payload, metadata []byte
	err := r.db.QueryRowContext(ctx, query,
		answer.SessionID,
		answer.QuestionID,
		answer.AnswerOrder,
		jsonParam(answer.Payload),
		jsonParam(answer.Metadata),
	).Scan(
		&answer.ID,
		&answer.SessionID,
		&answer.QuestionID,
		&answer.AnswerOrder,
		&payload,
		&answer.AnsweredAt,
		&metadata,
	)
	if err != nil {
		return oops.Code("ANSWER_CREATE_FAILED").
			With("session_id", answer.SessionID.String()).
			With("answer_order", answer.AnswerOrder).
			Wrap(err)
	}

	answer.Payload = rawJSON(payload)
	answer.Metadata = rawJSON(metadata)
	return nil
}
