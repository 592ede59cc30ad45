package usecase

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/napat-t/task-tracker-api/internal/model"
	"github.com/napat-t/task-tracker-api/internal/repository"
)

// TodoUsecase defines the business logic for todo operations. Every operation
// is scoped to the authenticated owner; a todo belonging to someone else is
// reported as not found.
type TodoUsecase interface {
	CreateTodo(ctx context.Context, ownerID string, params CreateTodoParams) (*model.Todo, error)
	GetTodo(ctx context.Context, ownerID, todoID string) (*model.Todo, error)
	ListTodos(ctx context.Context, ownerID string) ([]*model.Todo, error)
	UpdateTodo(ctx context.Context, ownerID, todoID string, params UpdateTodoParams) (*model.Todo, error)
	DeleteTodo(ctx context.Context, ownerID, todoID string) error
}

// CreateTodoParams defines the parameters for creating a todo.
type CreateTodoParams struct {
	Title string
	Date  string
}

// UpdateTodoParams defines the optional parameters for updating a todo.
type UpdateTodoParams struct {
	Title *string
	Date  *string
}

type todoUsecase struct {
	todoRepo repository.TodoRepository
}

func NewTodoUsecase(todoRepo repository.TodoRepository) TodoUsecase {
	return &todoUsecase{todoRepo: todoRepo}
}

func (u *todoUsecase) CreateTodo(ctx context.Context, ownerID string, params CreateTodoParams) (*model.Todo, error) {
	ownerObjectID, err := bson.ObjectIDFromHex(ownerID)
	if err != nil {
		return nil, ErrUserNotFound
	}

	todo, err := u.todoRepo.CreateTodo(ctx, &model.Todo{
		UserID: ownerObjectID,
		Title:  params.Title,
		Date:   params.Date,
	})
	if err != nil {
		return nil, &StorageError{Op: "create todo", Err: err}
	}

	return todo, nil
}

func (u *todoUsecase) GetTodo(ctx context.Context, ownerID, todoID string) (*model.Todo, error) {
	return u.getOwned(ctx, ownerID, todoID)
}

func (u *todoUsecase) ListTodos(ctx context.Context, ownerID string) ([]*model.Todo, error) {
	todos, err := u.todoRepo.ListTodosByUser(ctx, ownerID)
	if err != nil {
		return nil, &StorageError{Op: "list todos by user", Err: err}
	}

	return todos, nil
}

func (u *todoUsecase) UpdateTodo(
	ctx context.Context,
	ownerID, todoID string,
	params UpdateTodoParams,
) (*model.Todo, error) {
	if _, err := u.getOwned(ctx, ownerID, todoID); err != nil {
		return nil, err
	}

	todo, err := u.todoRepo.UpdateTodo(ctx, todoID, repository.UpdateTodoParams{
		Title: params.Title,
		Date:  params.Date,
	})
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrTodoNotFound
		}
		return nil, &StorageError{Op: "update todo", Err: err}
	}

	return todo, nil
}

func (u *todoUsecase) DeleteTodo(ctx context.Context, ownerID, todoID string) error {
	if _, err := u.getOwned(ctx, ownerID, todoID); err != nil {
		return err
	}

	if _, err := u.todoRepo.DeleteTodo(ctx, todoID); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return ErrTodoNotFound
		}
		return &StorageError{Op: "delete todo", Err: err}
	}

	return nil
}

func (u *todoUsecase) getOwned(ctx context.Context, ownerID, todoID string) (*model.Todo, error) {
	if _, err := bson.ObjectIDFromHex(todoID); err != nil {
		return nil, ErrTodoNotFound
	}

	todo, err := u.todoRepo.GetTodo(ctx, todoID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrTodoNotFound
		}
		return nil, &StorageError{Op: "get todo", Err: err}
	}

	if todo.UserID.Hex() != ownerID {
		return nil, ErrTodoNotFound
	}

	return todo, nil
}
