package domain

import "errors"

// Validation (400).
var (
	ErrMissingCredentials  = errors.New("email and password are required")
	ErrMissingRefreshToken = errors.New("refresh token is required")
	ErrMissingAssessmentID = errors.New("assessment_id is required")
	ErrMissingAnswerFields = errors.New("session_id, answer_order, and answer are required")
	ErrMissingSessionID    = errors.New("session_id is required")
	ErrInvalidSessionID    = errors.New("invalid session id")
)

// Authentication (401).
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid token")
	ErrMissingIdentity    = errors.New("token missing user identity")
)

// Forbidden (403).
var ErrSessionForbidden = errors.New("session does not belong to user")

// Not found (404).
var (
	ErrUserNotFound    = errors.New("user not found")
	ErrSessionNotFound = errors.New("session not found")
)

// Conflict (409).
var (
	ErrEmailTaken       = errors.New("email already registered")
	ErrSessionCompleted = errors.New("session already completed")
)
