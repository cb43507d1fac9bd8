package http

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/vncsmyrnk/assessment/internal/core/domain"
	"github.com/vncsmyrnk/assessment/internal/logging"
)

// MaxBodyBytes caps every request body.
const MaxBodyBytes = 1 << 20

const internalErrorMessage = "Internal server error"

var (
	errInvalidBody  = errors.New("invalid request body")
	errBodyTooLarge = errors.New("request body too large")
)

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

// decodeJSON reads a single JSON value from the request body into v. An
// empty body leaves v untouched so that required-field checks report what is
// missing; anything after the first value is rejected.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, MaxBodyBytes)
	dec := json.NewDecoder(r.Body)

	if err := dec.Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return bodyError(err)
	}

	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		if err == nil {
			return errInvalidBody
		}
		return bodyError(err)
	}
	return nil
}

func bodyError(err error) error {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		return errBodyTooLarge
	}
	return errInvalidBody
}

func writeDecodeError(w http.ResponseWriter, err error) {
	if errors.Is(err, errBodyTooLarge) {
		writeError(w, http.StatusRequestEntityTooLarge, "Request body too large")
		return
	}
	writeError(w, http.StatusBadRequest, "Invalid JSON body")
}

// statusFor maps domain errors onto a status code and client message.
// Anything unrecognised is internal.
func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, domain.ErrMissingCredentials):
		return http.StatusBadRequest, "Email and password are required"
	case errors.Is(err, domain.ErrMissingRefreshToken):
		return http.StatusBadRequest, "Refresh token is required"
	case errors.Is(err, domain.ErrMissingAssessmentID):
		return http.StatusBadRequest, "assessment_id is required"
	case errors.Is(err, domain.ErrMissingAnswerFields):
		return http.StatusBadRequest, "session_id, answer_order, and answer are required"
	case errors.Is(err, domain.ErrMissingSessionID):
		return http.StatusBadRequest, "session_id is required"
	case errors.Is(err, domain.ErrInvalidSessionID):
		return http.StatusBadRequest, "session_id must be a valid UUID"
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized, "Invalid credentials"
	case errors.Is(err, domain.ErrInvalidToken):
		return http.StatusUnauthorized, "Invalid token"
	case errors.Is(err, domain.ErrMissingIdentity):
		return http.StatusUnauthorized, "Token missing user identity"
	case errors.Is(err, domain.ErrSessionForbidden):
		return http.StatusForbidden, "Session does not belong to user"
	case errors.Is(err, domain.ErrUserNotFound):
		return http.StatusNotFound, "User not found"
	case errors.Is(err, domain.ErrSessionNotFound):
		return http.StatusNotFound, "Session not found"
	case errors.Is(err, domain.ErrEmailTaken):
		return http.StatusConflict, "Email already registered"
	case errors.Is(err, domain.ErrSessionCompleted):
		return http.StatusConflict, "Session already completed"
	default:
		return http.StatusInternalServerError, internalErrorMessage
	}
}

// writeServiceError answers with the mapped status. Internal failures are
// logged and reported with internalMsg, never with the underlying error.
func writeServiceError(ctx context.Context, logger *slog.Logger, w http.ResponseWriter, err error, internalMsg string) {
	status, msg := statusFor(err)
	if status == http.StatusInternalServerError {
		logging.LogError(ctx, logger, internalMsg, err)
		msg = internalMsg
	}
	writeError(w, status, msg)
}
