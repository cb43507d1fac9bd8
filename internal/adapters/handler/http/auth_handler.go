package http

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/vncsmyrnk/assessment/internal/core/domain"
	"github.com/vncsmyrnk/assessment/internal/core/ports"
)

type AuthHandler struct {
	authService ports.AuthService
	logger      *slog.Logger
}

func NewAuthHandler(authService ports.AuthService, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		logger:      logger,
	}
}

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type refreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

type authResponse struct {
	User *domain.User `json:"user"`
	domain.TokenPair
}

// Register godoc
// @Summary      Registers a new user
// @Description  Creates the account and returns it with a fresh access and refresh token pair.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Success      201
// @Failure      400
// @Failure      409
// @Router       /auth/register [post]
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeDecodeError(w, err)
		return
	}

	result, err := h.authService.Register(r.Context(), req.Email, req.Password)
	if err != nil {
		writeServiceError(r.Context(), h.logger, w, err, internalErrorMessage)
		return
	}

	writeJSON(w, http.StatusCreated, authResponse{User: result.User, TokenPair: result.Tokens})
}

// Login godoc
// @Summary      Logs a user in
// @Description  Unknown emails and wrong passwords get the same 401.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Success      200
// @Failure      400
// @Failure      401
// @Router       /auth/login [post]
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeDecodeError(w, err)
		return
	}

	result, err := h.authService.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		writeServiceError(r.Context(), h.logger, w, err, internalErrorMessage)
		return
	}

	writeJSON(w, http.StatusOK, authResponse{User: result.User, TokenPair: result.Tokens})
}

// Refresh godoc
// @Summary      Rotates the token pair
// @Description  Exchanges a valid refresh token for a new access and refresh token.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Success      200
// @Failure      400
// @Failure      401
// @Router       /auth/refresh [post]
func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	var req refreshRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeDecodeError(w, err)
		return
	}

	pair, err := h.authService.Refresh(r.Context(), req.RefreshToken)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidToken) {
			writeError(w, http.StatusUnauthorized, "Invalid or expired refresh token")
			return
		}
		writeServiceError(r.Context(), h.logger, w, err, internalErrorMessage)
		return
	}

	writeJSON(w, http.StatusOK, pair)
}
