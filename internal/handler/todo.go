package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/napat-t/task-tracker-api/internal/middleware"
	"github.com/napat-t/task-tracker-api/internal/payload"
	"github.com/napat-t/task-tracker-api/internal/usecase"
)

// ListTodos returns the authenticated user's todos.
func (h *Handler) ListTodos(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.SessionFromContext(r.Context())
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	ctx, cancel := h.requestContext(r)
	defer cancel()

	todos, err := h.todoUsecase.ListTodos(ctx, claims.UserID)
	if err != nil {
		h.respondUsecaseError(w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, todosToPayload(todos))
}

// CreateTodo adds a todo owned by the authenticated user.
func (h *Handler) CreateTodo(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.SessionFromContext(r.Context())
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req payload.CreateTodoRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	ctx, cancel := h.requestContext(r)
	defer cancel()

	todo, err := h.todoUsecase.CreateTodo(ctx, claims.UserID, usecase.CreateTodoParams{
		Title: req.Title,
		Date:  req.Date,
	})
	if err != nil {
		h.respondUsecaseError(w, err)
		return
	}

	h.respondJSON(w, http.StatusCreated, payload.Todo{
		ID:     todo.ID.Hex(),
		UserID: todo.UserID.Hex(),
		Title:  todo.Title,
		Date:   todo.Date,
	})
}

// GetTodo returns one of the authenticated user's todos.
func (h *Handler) GetTodo(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.SessionFromContext(r.Context())
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	ctx, cancel := h.requestContext(r)
	defer cancel()

	todo, err := h.todoUsecase.GetTodo(ctx, claims.UserID, chi.URLParam(r, "todoID"))
	if err != nil {
		h.respondUsecaseError(w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, payload.Todo{
		ID:     todo.ID.Hex(),
		UserID: todo.UserID.Hex(),
		Title:  todo.Title,
		Date:   todo.Date,
	})
}

// UpdateTodo changes the title or date of one of the authenticated user's
// todos.
func (h *Handler) UpdateTodo(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.SessionFromContext(r.Context())
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req payload.UpdateTodoRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	ctx, cancel := h.requestContext(r)
	defer cancel()

	_, err := h.todoUsecase.UpdateTodo(ctx, claims.UserID, chi.URLParam(r, "todoID"), usecase.UpdateTodoParams{
		Title: req.Title,
		Date:  req.Date,
	})
	if err != nil {
		h.respondUsecaseError(w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, payload.MessageResponse{Message: "Todo updated successfully"})
}

// DeleteTodo removes one of the authenticated user's todos.
func (h *Handler) DeleteTodo(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.SessionFromContext(r.Context())
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	ctx, cancel := h.requestContext(r)
	defer cancel()

	if err := h.todoUsecase.DeleteTodo(ctx, claims.UserID, chi.URLParam(r, "todoID")); err != nil {
		h.respondUsecaseError(w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, payload.MessageResponse{Message: "Todo deleted successfully"})
}
