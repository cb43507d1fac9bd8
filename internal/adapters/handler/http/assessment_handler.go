package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/vncsmyrnk/assessment/internal/core/domain"
	"github.com/vncsmyrnk/assessment/internal/core/ports"
)

type AssessmentHandler struct {
	service ports.AssessmentService
	logger  *slog.Logger
}

func NewAssessmentHandler(service ports.AssessmentService, logger *slog.Logger) *AssessmentHandler {
	return &AssessmentHandler{
		service: service,
		logger:  logger,
	}
}

type startRequest struct {
	AssessmentID string          `json:"assessment_id"`
	Metadata     json.RawMessage `json:"metadata"`
}

// answer is kept raw so that an explicit JSON null is distinguishable from an
// absent field.
type answerRequest struct {
	SessionID   string          `json:"session_id"`
	QuestionID  *string         `json:"question_id"`
	Answer      json.RawMessage `json:"answer"`
	AnswerOrder *int            `json:"answer_order"`
	Metadata    json.RawMessage `json:"metadata"`
}

type completeRequest struct {
	SessionID string `json:"session_id"`
}

type assessmentsResponse struct {
	Assessments []*domain.Assessment `json:"assessments"`
}

type sessionResponse struct {
	Session *domain.Session `json:"session"`
}

type answerResponse struct {
	Answer *domain.Answer `json:"answer"`
}

func (h *AssessmentHandler) ListActive(w http.ResponseWriter, r *http.Request) {
	assessments, err := h.service.ListActive(r.Context())
	if err != nil {
		writeServiceError(r.Context(), h.logger, w, err, "Failed to load assessments")
		return
	}
	if assessments == nil {
		assessments = []*domain.Assessment{}
	}

	writeJSON(w, http.StatusOK, assessmentsResponse{Assessments: assessments})
}

func (h *AssessmentHandler) Start(w http.ResponseWriter, r *http.Request) {
	userID, ok := UserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Token missing user identity")
		return
	}

	var req startRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeDecodeError(w, err)
		return
	}

	session, err := h.service.Start(r.Context(), ports.StartSessionInput{
		AssessmentID: req.AssessmentID,
		UserID:       userID,
		Metadata:     req.Metadata,
	})
	if err != nil {
		writeServiceError(r.Context(), h.logger, w, err, "Failed to start assessment session")
		return
	}

	writeJSON(w, http.StatusCreated, sessionResponse{Session: session})
}

func (h *AssessmentHandler) Answer(w http.ResponseWriter, r *http.Request) {
	userID, ok := UserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Token missing user identity")
		return
	}

	var req answerRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeDecodeError(w, err)
		return
	}

	answer, err := h.service.SubmitAnswer(r.Context(), ports.SubmitAnswerInput{
		SessionID:   req.SessionID,
		UserID:      userID,
		QuestionID:  req.QuestionID,
		AnswerOrder: req.AnswerOrder,
		Answer:      req.Answer,
		Metadata:    req.Metadata,
	})
	if err != nil {
		writeServiceError(r.Context(), h.logger, w, err, "Failed to record answer")
		return
	}

	writeJSON(w, http.StatusCreated, answerResponse{Answer: answer})
}

func (h *AssessmentHandler) Complete(w http.ResponseWriter, r *http.Request) {
	userID, ok := UserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Token missing user identity")
		return
	}

	var req completeRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeDecodeError(w, err)
		return
	}

	session, err := h.service.Complete(r.Context(), req.SessionID, userID)
	if err != nil {
		writeServiceError(r.Context(), h.logger, w, err, "Failed to complete assessment session")
		return
	}

	writeJSON(w, http.StatusOK, sessionResponse{Session: session})
}
