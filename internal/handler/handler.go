// Package handler exposes the REST surface and maps usecase errors onto
// HTTP status codes.
package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/form"
	"github.com/rs/zerolog"

	"github.com/napat-t/task-tracker-api/internal/auth"
	"github.com/napat-t/task-tracker-api/internal/config"
	"github.com/napat-t/task-tracker-api/internal/middleware"
	"github.com/napat-t/task-tracker-api/internal/payload"
	"github.com/napat-t/task-tracker-api/internal/usecase"
	"github.com/napat-t/task-tracker-api/internal/validation"
)

// requestTimeout bounds every store and transport call made on behalf of a
// single request.
const requestTimeout = 10 * time.Second

// Handler holds the HTTP handlers for the task tracker API.
type Handler struct {
	authUsecase          usecase.AuthUsecase
	userUsecase          usecase.UserUsecase
	todoUsecase          usecase.TodoUsecase
	passwordResetUsecase usecase.PasswordResetUsecase

	jwtAuth   auth.JWTAuthenticator
	cfg       *config.Config
	validator *validation.Validator
	decoder   *form.Decoder
	logger    *zerolog.Logger
}

// New creates a Handler wired to the given usecases.
func New(
	authUsecase usecase.AuthUsecase,
	userUsecase usecase.UserUsecase,
	todoUsecase usecase.TodoUsecase,
	passwordResetUsecase usecase.PasswordResetUsecase,
	jwtAuth auth.JWTAuthenticator,
	cfg *config.Config,
	logger *zerolog.Logger,
) *Handler {
	return &Handler{
		authUsecase:          authUsecase,
		userUsecase:          userUsecase,
		todoUsecase:          todoUsecase,
		passwordResetUsecase: passwordResetUsecase,
		jwtAuth:              jwtAuth,
		cfg:                  cfg,
		validator:            validation.New(),
		decoder:              form.NewDecoder(),
		logger:               logger,
	}
}

// Router builds the chi router with the full route table.
func (h *Handler) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestLogger(h.logger))
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.CORS)

	r.Get("/healthz", h.Health)

	r.Post("/users", h.Register)
	r.Get("/users", h.ListUsers)
	r.Post("/user/login", h.Login)

	r.Post("/password-reset/request", h.RequestPasswordReset)
	r.Post("/password-reset/validate", h.ValidatePasswordReset)
	r.Post("/password-reset/complete", h.CompletePasswordReset)

	r.Group(func(r chi.Router) {
		r.Use(middleware.Authenticator(h.jwtAuth, h.cfg.JWTSecret))

		r.Get("/todos", h.ListTodos)
		r.Post("/todos", h.CreateTodo)
		r.Get("/todos/{todoID}", h.GetTodo)
		r.Put("/todos/{todoID}", h.UpdateTodo)
		r.Delete("/todos/{todoID}", h.DeleteTodo)

		r.Get("/users/{userID}/todos", h.ListUserTodos)
	})

	return r
}

// Health reports liveness.
func (h *Handler) Health(w http.ResponseWriter, _ *http.Request) {
	h.respondJSON(w, http.StatusOK, payload.MessageResponse{Message: "ok"})
}

func (h *Handler) requestContext(r *http.Request) (context.Context, context.CancelFunc) {
	return context.WithTimeout(r.Context(), requestTimeout)
}

func (h *Handler) decodeAndValidate(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid request body")
		return false
	}

	if err := h.validator.Struct(dst); err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error())
		return false
	}

	return true
}

func (h *Handler) respondJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		h.logger.Error().Err(err).Msg("failed to encode response body")
	}
}

func (h *Handler) respondError(w http.ResponseWriter, status int, message string) {
	h.respondJSON(w, status, payload.ErrorResponse{Error: message})
}

// respondUsecaseError maps the error taxonomy onto status codes. Faults from
// the store or the mail transport are logged with their cause but reported
// generically.
func (h *Handler) respondUsecaseError(w http.ResponseWriter, err error) {
	var storageErr *usecase.StorageError
	var notifErr *usecase.NotificationError

	switch {
	case errors.Is(err, usecase.ErrInvalidCredentials):
		h.respondError(w, http.StatusUnauthorized, "invalid email or password")
	case errors.Is(err, usecase.ErrInvalidToken):
		h.respondError(w, http.StatusUnauthorized, "invalid password reset token")
	case errors.Is(err, usecase.ErrTokenExpired):
		h.respondError(w, http.StatusUnauthorized, "password reset token has expired")
	case errors.Is(err, usecase.ErrUserAlreadyExists):
		h.respondError(w, http.StatusConflict, "user already exists")
	case errors.Is(err, usecase.ErrUserNotFound):
		h.respondError(w, http.StatusNotFound, "user not found")
	case errors.Is(err, usecase.ErrTodoNotFound):
		h.respondError(w, http.StatusNotFound, "todo not found")
	case errors.As(err, &notifErr):
		h.logger.Error().Err(err).Msg("notification transport failed")
		h.respondError(w, http.StatusBadGateway, "failed to send notification")
	case errors.As(err, &storageErr):
		h.logger.Error().Err(err).Msg("storage operation failed")
		h.respondError(w, http.StatusInternalServerError, "internal server error")
	default:
		h.logger.Error().Err(err).Msg("unexpected error")
		h.respondError(w, http.StatusInternalServerError, "internal server error")
	}
}
