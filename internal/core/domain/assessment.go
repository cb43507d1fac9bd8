package domain

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

type SessionStatus string

const (
	SessionStatusActive    SessionStatus = "active"
	SessionStatusCompleted SessionStatus = "completed"
)

// Assessment is managed outside this system and only read here.
// Definition is opaque content returned as stored.
type Assessment struct {
	ID         string          `json:"id"`
	Name       string          `json:"name"`
	Version    int             `json:"version"`
	Definition json.RawMessage `json:"definition"`
}

type Session struct {
	ID           uuid.UUID       `json:"id"`
	AssessmentID string          `json:"assessment_id"`
	UserID       string          `json:"user_id"`
	Status       SessionStatus   `json:"status"`
	StartedAt    time.Time       `json:"started_at"`
	CompletedAt  *time.Time      `json:"completed_at"`
	Metadata     json.RawMessage `json:"metadata"`
}

func (s *Session) IsCompleted() bool {
	return s.Status == SessionStatusCompleted
}

type Answer struct {
	ID          uuid.UUID       `json:"id"`
	SessionID   uuid.UUID       `json:"session_id"`
	QuestionID  *string         `json:"question_id"`
	AnswerOrder int             `json:"answer_order"`
	Payload     json.RawMessage `json:"answer_payload"`
	AnsweredAt  time.Time       `json:"answered_at"`
	Metadata    json.RawMessage `json:"metadata"`
}

// EmptyMetadata is stored when a caller omits metadata.
var EmptyMetadata = json.RawMessage(`{}`)
