package postgres

import (
	"context"
	"database/sql"

	"github.com/samber/oops"

	"github.com/vncsmyrnk/assessment/internal/core/domain"
	"github.com/vncsmyrnk/assessment/internal/core/ports"
)

type assessmentRepository struct {
	db *sql.DB
}

func NewAssessmentRepository(db *sql.DB) ports.AssessmentRepository {
	return &assessmentRepository{
		db: db,
	}
}

func (r *assessmentRepository) ListActive(ctx context.Context) ([]*domain.Assessment, error) {
	query := `
		SELECT id, name, version, definition
		FROM assessments
		WHERE is_active = true
		ORDER BY name, version DESC
	`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, oops.Code("ASSESSMENT_LIST_FAILED").Wrap(err)
	}
	defer rows.Close()

	assessments := []*domain.Assessment{}
	for rows.Next() {
		var (
			a          domain.Assessment
			definition []byte
		)
		if err := rows.Scan(&a.ID, &a.Name, &a.Version, &definition); err != nil {
			return nil, oops.Code("ASSESSMENT_SCAN_FAILED").Wrap(err)
		}
		a.Definition = rawJSON(definition)
		assessments = append(assessments, &a)
	}
	if err := rows.Err(); err != nil {
		return nil, oops.Code("ASSESSMENT_LIST_FAILED").
			With("operation", "iterate assessments").
			Wrap(err)
	}
	return assessments, nil
}
