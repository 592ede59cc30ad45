package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/napat-t/task-tracker-api/internal/payload"
	"github.com/napat-t/task-tracker-api/internal/repository"
)

// ListUsers returns users with their todos attached, optionally filtered by
// email.
func (h *Handler) ListUsers(w http.ResponseWriter, r *http.Request) {
	var query payload.ListUsersQuery
	if err := h.decoder.Decode(&query, r.URL.Query()); err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid query parameters")
		return
	}

	ctx, cancel := h.requestContext(r)
	defer cancel()

	result, err := h.userUsecase.ListUsersWithTodos(ctx, repository.FilterUsersParams{
		Email:  query.Email,
		Limit:  query.Limit,
		Offset: query.Offset,
	})
	if err != nil {
		h.respondUsecaseError(w, err)
		return
	}

	users := make([]payload.User, 0, len(result))
	for _, entry := range result {
		users = append(users, payload.User{
			ID:    entry.User.ID.Hex(),
			Name:  entry.User.Name,
			Email: entry.User.Email,
			Tasks: todosToPayload(entry.Todos),
		})
	}

	h.respondJSON(w, http.StatusOK, users)
}

// ListUserTodos returns the todos of the user named in the path.
func (h *Handler) ListUserTodos(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := h.requestContext(r)
	defer cancel()

	todos, err := h.userUsecase.ListTodosForUser(ctx, chi.URLParam(r, "userID"))
	if err != nil {
		h.respondUsecaseError(w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, todosToPayload(todos))
}
