// Package payload defines the JSON request and response bodies of the HTTP
// surface. Password hashes and reset tokens are never serialized.
package payload

type RegisterRequest struct {
	Name     string `json:"name"     validate:"required"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

type RegisterResponse struct {
	Message string `json:"message"`
	UserID  string `json:"userId"`
}

type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type LoginResponse struct {
	Message string `json:"message"`
	ID      string `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Tasks   []Todo `json:"tasks"`
	Token   string `json:"token"`
}

type Todo struct {
	ID     string `json:"id"`
	UserID string `json:"user_id"`
	Title  string `json:"title"`
	Date   string `json:"date"`
}

type User struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Tasks []Todo `json:"tasks"`
}

type ListUsersQuery struct {
	Email  *string `form:"email"`
	Limit  uint64  `form:"limit"`
	Offset uint64  `form:"offset"`
}

type CreateTodoRequest struct {
	Title string `json:"title" validate:"required"`
	Date  string `json:"date"  validate:"required"`
}

type UpdateTodoRequest struct {
	Title *string `json:"title"`
	Date  *string `json:"date"`
}

type RequestPasswordResetRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type ValidatePasswordResetRequest struct {
	Token string `json:"token" validate:"required"`
}

type CompletePasswordResetRequest struct {
	Token       string `json:"token"        validate:"required"`
	NewPassword string `json:"new_password" validate:"required,min=8"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
