package http

import (
	"log/slog"
	"net/http"

	"github.com/vncsmyrnk/assessment/internal/core/domain"
	"github.com/vncsmyrnk/assessment/internal/core/ports"
)

type UserHandler struct {
	service ports.UserService
	logger  *slog.Logger
}

func NewUserHandler(service ports.UserService, logger *slog.Logger) *UserHandler {
	return &UserHandler{
		service: service,
		logger:  logger,
	}
}

type userResponse struct {
	User *domain.User `json:"user"`
}

// GetMe godoc
// @Summary      Returns the authenticated user
// @Tags         auth
// @Produce      json
// @Success      200
// @Failure      401
// @Failure      404
// @Router       /auth/me [get]
func (h *UserHandler) GetMe(w http.ResponseWriter, r *http.Request) {
	userID, ok := UserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	user, err := h.service.GetByID(r.Context(), userID)
	if err != nil {
		writeServiceError(r.Context(), h.logger, w, err, internalErrorMessage)
		return
	}

	writeJSON(w, http.StatusOK, userResponse{User: user})
}
