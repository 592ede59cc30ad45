package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/napat-t/task-tracker-api/internal/auth"
	"github.com/napat-t/task-tracker-api/internal/config"
	"github.com/napat-t/task-tracker-api/internal/model"
	"github.com/napat-t/task-tracker-api/internal/repository"
	"github.com/napat-t/task-tracker-api/internal/security"
)

// AuthUsecase defines the interface for authentication-related use cases.
type AuthUsecase interface {
	Login(ctx context.Context, params LoginParams) (*LoginResult, error)
	Register(ctx context.Context, params RegisterParams) (*model.User, error)
}

// LoginParams defines the parameters for user login.
type LoginParams struct {
	Email    string
	Password string
}

// RegisterParams defines the parameters for user registration.
type RegisterParams struct {
	Name     string
	Email    string
	Password string
}

// LoginResult carries the session credential plus the profile and todos
// returned alongside it.
type LoginResult struct {
	Token string
	User  *model.User
	Todos []*model.Todo
}

type authUsecase struct {
	userRepo repository.UserRepository
	todoRepo repository.TodoRepository
	jwtAuth  auth.JWTAuthenticator
	cfg      *config.Config
}

func NewAuthUsecase(
	userRepo repository.UserRepository,
	todoRepo repository.TodoRepository,
	jwtAuth auth.JWTAuthenticator,
	cfg *config.Config,
) AuthUsecase {
	return &authUsecase{
		userRepo: userRepo,
		todoRepo: todoRepo,
		jwtAuth:  jwtAuth,
		cfg:      cfg,
	}
}

func (u *authUsecase) Login(ctx context.Context, params LoginParams) (*LoginResult, error) {
	user, err := u.userRepo.GetUserByEmail(ctx, params.Email)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			// Indistinguishable from a wrong password so the endpoint cannot
			// be used to enumerate accounts.
			return nil, ErrInvalidCredentials
		}

		return nil, &StorageError{Op: "get user by email", Err: err}
	}

	if ok, err := security.VerifyPassword(params.Password, user.PasswordHash); err != nil {
		return nil, err
	} else if !ok {
		return nil, ErrInvalidCredentials
	}

	todos, err := u.todoRepo.ListTodosByUser(ctx, user.ID.Hex())
	if err != nil {
		return nil, &StorageError{Op: "list todos by user", Err: err}
	}

	tokenStr, err := u.generateSessionToken(user)
	if err != nil {
		return nil, err
	}

	return &LoginResult{
		Token: tokenStr,
		User:  user,
		Todos: todos,
	}, nil
}

func (u *authUsecase) Register(ctx context.Context, params RegisterParams) (*model.User, error) {
	passwordHash, err := security.HashPassword(params.Password)
	if err != nil {
		return nil, err
	}

	user, err := u.userRepo.CreateUser(ctx, &model.User{
		Name:         params.Name,
		Email:        params.Email,
		PasswordHash: passwordHash,
	})
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, ErrUserAlreadyExists
		}

		return nil, &StorageError{Op: "create user", Err: err}
	}

	return user, nil
}

func (u *authUsecase) generateSessionToken(user *model.User) (string, error) {
	now := time.Now()
	claims := auth.SessionClaims{
		UserID:    user.ID.Hex(),
		UserEmail: user.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    u.cfg.TokenIssuer,
			Audience:  jwt.ClaimStrings{u.cfg.TokenIssuer},
			Subject:   user.ID.Hex(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(u.cfg.SessionTokenTTL)),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	return u.jwtAuth.GenerateToken(claims, u.cfg.JWTSecret)
}
