package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAssessmentRepository_ListActive(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewAssessmentRepository(db)

	rows := sqlmock.NewRows([]string{"id", "name", "version", "definition"}).
		AddRow("A2", "Aptitude", 2, []byte(`{"questions":[1,2]}`)).
		AddRow("A1", "Aptitude", 1, []byte(`{"questions":[1]}`)).
		AddRow("B1", "Behaviour", 1, nil)
	mock.ExpectQuery(`(?s)SELECT id, name, version, definition\s+FROM assessments\s+WHERE is_active = true\s+ORDER BY name, version DESC`).
		WillReturnRows(rows)

	assessments, err := repo.ListActive(context.Background())
	require.NoError(t, err)
	require.Len(t, assessments, 3)

	assert.Equal(t, "A2", assessments[0].ID)
	assert.Equal(t, 2, assessments[0].Version)
	assert.JSONEq(t, `{"questions":[1,2]}`, string(assessments[0].Definition))
	assert.Equal(t, json.RawMessage("null"), assessments[2].Definition)
}

func TestAssessmentRepository_ListActive_Empty(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewAssessmentRepository(db)

	mock.ExpectQuery(`FROM assessments`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "version", "definition"}))

	assessments, err := repo.ListActive(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, assessments)
	assert.Empty(t, assessments)
}

func TestAssessmentRepository_ListActive_DBError(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewAssessmentRepository(db)

	dbErr := errors.New("db down")
	mock.ExpectQuery(`FROM assessments`).WillReturnError(dbErr)

	_, err := repo.ListActive(context.Background())
	assert.ErrorIs(t, err, dbErr)
}

func TestAssessmentRepository_ListActive_RowError(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewAssessmentRepository(db)

	rowErr := errors.New("broken row")
	rows := sqlmock.NewRows([]string{"id", "name", "version", "definition"}).
		AddRow("A1", "Aptitude", 1, []byte(`{}`)).
		RowError(0, rowErr)
	mock.ExpectQuery(`FROM assessments`).WillReturnRows(rows)

	_, err := repo.ListActive(context.Background())
	assert.ErrorIs(t, err, rowErr)
}
