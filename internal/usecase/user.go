package usecase

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/napat-t/task-tracker-api/internal/model"
	"github.com/napat-t/task-tracker-api/internal/repository"
)

// UserUsecase defines read operations over user accounts.
type UserUsecase interface {
	// ListUsersWithTodos returns users matching the filter, each with their
	// todos attached.
	ListUsersWithTodos(ctx context.Context, params repository.FilterUsersParams) ([]*UserWithTodos, error)

	// ListTodosForUser returns the todos of one user, failing with
	// ErrUserNotFound when the user does not exist.
	ListTodosForUser(ctx context.Context, userID string) ([]*model.Todo, error)
}

// UserWithTodos pairs a user with their todos for the listing endpoint.
type UserWithTodos struct {
	User  *model.User
	Todos []*model.Todo
}

type userUsecase struct {
	userRepo repository.UserRepository
	todoRepo repository.TodoRepository
}

func NewUserUsecase(userRepo repository.UserRepository, todoRepo repository.TodoRepository) UserUsecase {
	return &userUsecase{
		userRepo: userRepo,
		todoRepo: todoRepo,
	}
}

func (u *userUsecase) ListUsersWithTodos(
	ctx context.Context,
	params repository.FilterUsersParams,
) ([]*UserWithTodos, error) {
	users, err := u.userRepo.ListUsers(ctx, params)
	if err != nil {
		return nil, &StorageError{Op: "list users", Err: err}
	}

	result := make([]*UserWithTodos, 0, len(users))
	for _, user := range users {
		todos, err := u.todoRepo.ListTodosByUser(ctx, user.ID.Hex())
		if err != nil {
			return nil, &StorageError{Op: "list todos by user", Err: err}
		}

		result = append(result, &UserWithTodos{User: user, Todos: todos})
	}

	return result, nil
}

func (u *userUsecase) ListTodosForUser(ctx context.Context, userID string) ([]*model.Todo, error) {
	if _, err := bson.ObjectIDFromHex(userID); err != nil {
		return nil, ErrUserNotFound
	}

	if _, err := u.userRepo.GetUser(ctx, userID); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrUserNotFound
		}
		return nil, &StorageError{Op: "get user", Err: err}
	}

	todos, err := u.todoRepo.ListTodosByUser(ctx, userID)
	if err != nil {
		return nil, &StorageError{Op: "list todos by user", Err: err}
	}

	return todos, nil
}
