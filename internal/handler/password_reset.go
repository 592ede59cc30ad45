package handler

import (
	"net/http"

	"github.com/napat-t/task-tracker-api/internal/payload"
)

// RequestPasswordReset starts the reset flow. The response does not reveal
// whether the email is registered.
func (h *Handler) RequestPasswordReset(w http.ResponseWriter, r *http.Request) {
	var req payload.RequestPasswordResetRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	ctx, cancel := h.requestContext(r)
	defer cancel()

	if err := h.passwordResetUsecase.RequestReset(ctx, req.Email); err != nil {
		h.respondUsecaseError(w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, payload.MessageResponse{
		Message: "If that email is registered, a reset link has been sent",
	})
}

// ValidatePasswordReset lets the reset form check a token before the user
// types a new password.
func (h *Handler) ValidatePasswordReset(w http.ResponseWriter, r *http.Request) {
	var req payload.ValidatePasswordResetRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	ctx, cancel := h.requestContext(r)
	defer cancel()

	if err := h.passwordResetUsecase.ValidateResetToken(ctx, req.Token); err != nil {
		h.respondUsecaseError(w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, payload.MessageResponse{Message: "Token is valid"})
}

// CompletePasswordReset sets the new password and consumes the token.
func (h *Handler) CompletePasswordReset(w http.ResponseWriter, r *http.Request) {
	var req payload.CompletePasswordResetRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	ctx, cancel := h.requestContext(r)
	defer cancel()

	if err := h.passwordResetUsecase.CompleteReset(ctx, req.Token, req.NewPassword); err != nil {
		h.respondUsecaseError(w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, payload.MessageResponse{Message: "Password updated successfully"})
}
