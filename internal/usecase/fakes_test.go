package usecase

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/napat-t/task-tracker-api/internal/model"
	"github.com/napat-t/task-tracker-api/internal/repository"
)

// ---- fakes ----

// fakeUserRepo is an in-memory UserRepository with per-method error
// injection.
type fakeUserRepo struct {
	users map[string]*model.User // keyed by id hex

	createErr         error
	getByEmailErr     error
	getByTokenErr     error
	setResetTokenErr  error
	clearResetErr     error
	updatePasswordErr error

	setResetTokenCalls int
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*model.User)}
}

func (f *fakeUserRepo) CreateUser(_ context.Context, user *model.User) (*model.User, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}

	for _, existing := range f.users {
		if existing.Email == user.Email {
			return nil, mongo.WriteException{
				WriteErrors: mongo.WriteErrors{{Code: 11000, Message: "duplicate key error"}},
			}
		}
	}

	user.ID = bson.NewObjectID()
	f.users[user.ID.Hex()] = user
	return user, nil
}

func (f *fakeUserRepo) GetUser(_ context.Context, id string) (*model.User, error) {
	user, ok := f.users[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	return user, nil
}

func (f *fakeUserRepo) GetUserByEmail(_ context.Context, email string) (*model.User, error) {
	if f.getByEmailErr != nil {
		return nil, f.getByEmailErr
	}

	for _, user := range f.users {
		if user.Email == email {
			return user, nil
		}
	}
	return nil, mongo.ErrNoDocuments
}

func (f *fakeUserRepo) GetUserByResetToken(_ context.Context, token string) (*model.User, error) {
	if f.getByTokenErr != nil {
		return nil, f.getByTokenErr
	}

	for _, user := range f.users {
		if user.ResetToken != nil && *user.ResetToken == token {
			return user, nil
		}
	}
	return nil, mongo.ErrNoDocuments
}

func (f *fakeUserRepo) ListUsers(_ context.Context, params repository.FilterUsersParams) ([]*model.User, error) {
	var users []*model.User
	for _, user := range f.users {
		if params.Email != nil && user.Email != *params.Email {
			continue
		}
		users = append(users, user)
	}
	return users, nil
}

func (f *fakeUserRepo) UpdatePassword(_ context.Context, id string, passwordHash string) (*model.User, error) {
	if f.updatePasswordErr != nil {
		return nil, f.updatePasswordErr
	}

	user, ok := f.users[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	user.PasswordHash = passwordHash
	return user, nil
}

func (f *fakeUserRepo) SetResetToken(
	_ context.Context,
	id string,
	token string,
	expiresAt time.Time,
) (*model.User, error) {
	if f.setResetTokenErr != nil {
		return nil, f.setResetTokenErr
	}

	user, ok := f.users[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}

	f.setResetTokenCalls++
	user.ResetToken = &token
	user.ResetTokenExpiresAt = &expiresAt
	return user, nil
}

func (f *fakeUserRepo) ClearResetToken(_ context.Context, id string) (*model.User, error) {
	if f.clearResetErr != nil {
		return nil, f.clearResetErr
	}

	user, ok := f.users[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}

	user.ResetToken = nil
	user.ResetTokenExpiresAt = nil
	return user, nil
}

// fakeTodoRepo is an in-memory TodoRepository.
type fakeTodoRepo struct {
	todos map[string]*model.Todo // keyed by id hex

	createErr error
	listErr   error
}

func newFakeTodoRepo() *fakeTodoRepo {
	return &fakeTodoRepo{todos: make(map[string]*model.Todo)}
}

func (f *fakeTodoRepo) CreateTodo(_ context.Context, todo *model.Todo) (*model.Todo, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}

	todo.ID = bson.NewObjectID()
	f.todos[todo.ID.Hex()] = todo
	return todo, nil
}

func (f *fakeTodoRepo) GetTodo(_ context.Context, id string) (*model.Todo, error) {
	todo, ok := f.todos[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	return todo, nil
}

func (f *fakeTodoRepo) ListTodos(_ context.Context) ([]*model.Todo, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}

	var todos []*model.Todo
	for _, todo := range f.todos {
		todos = append(todos, todo)
	}
	return todos, nil
}

func (f *fakeTodoRepo) ListTodosByUser(_ context.Context, userID string) ([]*model.Todo, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}

	var todos []*model.Todo
	for _, todo := range f.todos {
		if todo.UserID.Hex() == userID {
			todos = append(todos, todo)
		}
	}
	return todos, nil
}

func (f *fakeTodoRepo) UpdateTodo(
	_ context.Context,
	id string,
	params repository.UpdateTodoParams,
) (*model.Todo, error) {
	todo, ok := f.todos[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}

	if params.Title != nil {
		todo.Title = *params.Title
	}
	if params.Date != nil {
		todo.Date = *params.Date
	}
	return todo, nil
}

func (f *fakeTodoRepo) DeleteTodo(_ context.Context, id string) (*model.Todo, error) {
	todo, ok := f.todos[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}

	delete(f.todos, id)
	return todo, nil
}

// fakeMailer records outbound email and optionally fails.
type fakeMailer struct {
	sendErr error

	to      []string
	subject string
	html    string
	sent    int
}

func (f *fakeMailer) SendHTML(to []string, subject, htmlBody string) error {
	if f.sendErr != nil {
		return f.sendErr
	}

	f.to = to
	f.subject = subject
	f.html = htmlBody
	f.sent++
	return nil
}
