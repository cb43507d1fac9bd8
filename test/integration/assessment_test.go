package integration

import (
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListActiveAssessments(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	app := setupTestApp(t)
	defer app.Teardown(t)

	app.seedAssessment(t, "B1", "Beta", 1, true)
	app.seedAssessment(t, "A1", "Alpha", 1, true)
	app.seedAssessment(t, "A2", "Alpha", 2, true)
	app.seedAssessment(t, "Z1", "Retired", 1, false)

	access, _ := app.register(t, "list@x.com")

	status, body := app.call(t, http.MethodGet, app.AssessmentServer.URL+"/assessments/active", access, nil)
	require.Equal(t, http.StatusOK, status)

	assessments := body["assessments"].([]any)
	require.Len(t, assessments, 3)

	var ids []string
	for _, a := range assessments {
		ids = append(ids, a.(map[string]any)["id"].(string))
	}
	assert.Equal(t, []string{"A2", "A1", "B1"}, ids)

	definition := assessments[0].(map[string]any)["definition"].(map[string]any)
	assert.Contains(t, definition, "questions")
}

func TestAssessmentSessionLifecycle(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	app := setupTestApp(t)
	defer app.Teardown(t)

	app.seedAssessment(t, "A1", "Aptitude", 1, true)
	access, _ := app.register(t, "taker@x.com")
	base := app.AssessmentServer.URL + "/assessments"

	status, body := app.call(t, http.MethodPost, base+"/start", access, map[string]any{"assessment_id": "A1"})
	require.Equal(t, http.StatusCreated, status, "%v", body)
	session := body["session"].(map[string]any)
	assert.Equal(t, "active", session["status"])
	assert.Equal(t, map[string]any{}, session["metadata"])
	assert.Nil(t, session["completed_at"])
	sessionID := session["id"].(string)

	status, body = app.call(t, http.MethodPost, base+"/answer", access, map[string]any{
		"session_id":   sessionID,
		"question_id":  "q1",
		"answer_order": 1,
		"answer":       "B",
	})
	require.Equal(t, http.StatusCreated, status, "%v", body)
	answer := body["answer"].(map[string]any)
	assert.Equal(t, "B", answer["answer_payload"])
	assert.Equal(t, sessionID, answer["session_id"])

	status, body = app.call(t, http.MethodPost, base+"/answer", access, map[string]any{
		"session_id":   sessionID,
		"answer_order": 1,
		"answer":       map[string]any{"choice": []int{1, 2}},
	})
	require.Equal(t, http.StatusCreated, status, "%v", body)
	assert.Nil(t, body["answer"].(map[string]any)["question_id"])

	status, body = app.call(t, http.MethodPost, base+"/complete", access, map[string]any{"session_id": sessionID})
	require.Equal(t, http.StatusOK, status, "%v", body)
	assert.Equal(t, "completed", body["session"].(map[string]any)["status"])
	assert.NotNil(t, body["session"].(map[string]any)["completed_at"])

	status, body = app.call(t, http.MethodPost, base+"/answer", access, map[string]any{
		"session_id":   sessionID,
		"answer_order": 2,
		"answer":       "C",
	})
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "Session already completed", body["error"])

	status, body = app.call(t, http.MethodPost, base+"/complete", access, map[string]any{"session_id": sessionID})
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "Session not found", body["error"])

	var answers int
	require.NoError(t, app.DB.QueryRow(`SELECT COUNT(*) FROM assessment_answers WHERE session_id = $1`, sessionID).Scan(&answers))
	assert.Equal(t, 2, answers)
}

func TestAssessmentSessionOwnership(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	app := setupTestApp(t)
	defer app.Teardown(t)

	app.seedAssessment(t, "A1", "Aptitude", 1, true)
	owner, _ := app.register(t, "owner@x.com")
	intruder, _ := app.register(t, "intruder@x.com")
	base := app.AssessmentServer.URL + "/assessments"

	status, body := app.call(t, http.MethodPost, base+"/start", owner, map[string]any{
		"assessment_id": "A1",
		"metadata":      map[string]any{"device": "ios"},
	})
	require.Equal(t, http.StatusCreated, status)
	session := body["session"].(map[string]any)
	assert.Equal(t, map[string]any{"device": "ios"}, session["metadata"])
	sessionID := session["id"].(string)

	status, body = app.call(t, http.MethodPost, base+"/answer", intruder, map[string]any{
		"session_id":   sessionID,
		"answer_order": 1,
		"answer":       "A",
	})
	assert.Equal(t, http.StatusForbidden, status)
	assert.Equal(t, "Session does not belong to user", body["error"])

	status, _ = app.call(t, http.MethodPost, base+"/complete", intruder, map[string]any{"session_id": sessionID})
	assert.Equal(t, http.StatusNotFound, status)

	status, _ = app.call(t, http.MethodPost, base+"/answer", owner, map[string]any{
		"session_id":   uuid.NewString(),
		"answer_order": 1,
		"answer":       "A",
	})
	assert.Equal(t, http.StatusNotFound, status)

	status, body = app.call(t, http.MethodPost, base+"/complete", owner, map[string]any{"session_id": "not-a-uuid"})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "session_id must be a valid UUID", body["error"])

	status, _ = app.call(t, http.MethodPost, base+"/complete", owner, map[string]any{"session_id": sessionID})
	assert.Equal(t, http.StatusOK, status)
}

func TestAssessmentRequiresBearer(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	app := setupTestApp(t)
	defer app.Teardown(t)

	status, body := app.call(t, http.MethodGet, app.AssessmentServer.URL+"/assessments/active", "", nil)
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "Missing bearer token", body["error"])

	_, refresh := app.register(t, "bearer@x.com")
	status, body = app.call(t, http.MethodGet, app.AssessmentServer.URL+"/assessments/active", refresh, nil)
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "Invalid token", body["error"])
}
