package handler

import (
	"net/http"

	"github.com/napat-t/task-tracker-api/internal/model"
	"github.com/napat-t/task-tracker-api/internal/payload"
	"github.com/napat-t/task-tracker-api/internal/usecase"
)

// Register creates a new account.
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req payload.RegisterRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	ctx, cancel := h.requestContext(r)
	defer cancel()

	user, err := h.authUsecase.Register(ctx, usecase.RegisterParams{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		h.respondUsecaseError(w, err)
		return
	}

	h.respondJSON(w, http.StatusCreated, payload.RegisterResponse{
		Message: "User registered successfully",
		UserID:  user.ID.Hex(),
	})
}

// Login verifies credentials and returns a session credential together with
// the profile and its todos.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req payload.LoginRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	ctx, cancel := h.requestContext(r)
	defer cancel()

	result, err := h.authUsecase.Login(ctx, usecase.LoginParams{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		h.respondUsecaseError(w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, payload.LoginResponse{
		Message: "Login Successful",
		ID:      result.User.ID.Hex(),
		Name:    result.User.Name,
		Email:   result.User.Email,
		Tasks:   todosToPayload(result.Todos),
		Token:   result.Token,
	})
}

func todosToPayload(todos []*model.Todo) []payload.Todo {
	result := make([]payload.Todo, 0, len(todos))
	for _, todo := range todos {
		result = append(result, payload.Todo{
			ID:     todo.ID.Hex(),
			UserID: todo.UserID.Hex(),
			Title:  todo.Title,
			Date:   todo.Date,
		})
	}
	return result
}
