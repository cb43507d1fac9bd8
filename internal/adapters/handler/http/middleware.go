package http

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"runtime/debug"
	"strings"
	"time"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/vncsmyrnk/assessment/internal/core/domain"
	"github.com/vncsmyrnk/assessment/internal/core/ports"
)

type contextKey string

const UserIDKey contextKey = "userID"

// UserIDFromContext returns the authenticated caller set by Authenticate or
// RequireBearer.
func UserIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(UserIDKey).(string)
	return id, ok && id != ""
}

// Authenticate guards auth-service routes with an access token issued by tokens.
func Authenticate(tokens ports.TokenIssuer) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" {
				writeError(w, http.StatusUnauthorized, "Missing Authorization header")
				return
			}

			scheme, token, _ := strings.Cut(header, " ")
			if scheme != "Bearer" || token == "" {
				writeError(w, http.StatusUnauthorized, "Invalid Authorization header")
				return
			}

			claims, err := tokens.VerifyAccess(token)
			if err != nil {
				writeError(w, http.StatusUnauthorized, "Invalid or expired token")
				return
			}

			ctx := context.WithValue(r.Context(), UserIDKey, claims.SubjectID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireBearer guards assessment routes with a token minted by the auth service.
func RequireBearer(verifier ports.BearerVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
			if !ok {
				writeError(w, http.StatusUnauthorized, "Missing bearer token")
				return
			}

			userID, err := verifier.Verify(token)
			if err != nil {
				if errors.Is(err, domain.ErrMissingIdentity) {
					writeError(w, http.StatusUnauthorized, "Token missing user identity")
					return
				}
				writeError(w, http.StatusUnauthorized, "Invalid token")
				return
			}

			ctx := context.WithValue(r.Context(), UserIDKey, userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequestLogger writes one line per request once the handler returns.
func RequestLogger(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()

			next.ServeHTTP(ww, r)

			logger.InfoContext(r.Context(), "request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration", time.Since(start),
				"request_id", middleware.GetReqID(r.Context()),
				"remote_addr", r.RemoteAddr,
			)
		})
	}
}

// Recoverer turns a handler panic into a JSON 500.
func Recoverer(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				if rec == http.ErrAbortHandler {
					panic(rec)
				}
				logger.ErrorContext(r.Context(), "panic recovered",
					"panic", rec,
					"request_id", middleware.GetReqID(r.Context()),
					"stack", string(debug.Stack()),
				)
				writeError(w, http.StatusInternalServerError, internalErrorMessage)
			}()

			next.ServeHTTP(w, r)
		})
	}
}
