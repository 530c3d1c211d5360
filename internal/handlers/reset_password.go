package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/vbazhenov/user-accounts/internal/logger"
	"github.com/vbazhenov/user-accounts/internal/services"
)

// PasswordResetter defines the interface for applying a password reset.
type PasswordResetter interface {
	ResetPassword(ctx context.Context, token, newPassword, confirmPassword string) error
}

// ResetPasswordResponse represents a successful reset response
// swagger:model ResetPasswordResponse
type ResetPasswordResponse struct {
	// example: Password successfully reset
	Message string `json:"message"`
}

// NewResetPasswordHandler applies a password reset using the token from the
// URL path.
// @Summary Reset password
// @Tags auth
// @Accept x-www-form-urlencoded
// @Produce json
// @Param token path string true "Reset token"
// @Param new_password formData string true "New password"
// @Param confirm_password formData string true "Confirm password"
// @Success 200 {object} handlers.ResetPasswordResponse "Password reset"
// @Failure 400 {object} handlers.ErrorResponse "Mismatch or invalid token"
// @Failure 404 {object} handlers.ErrorResponse "User not found"
// @Router /reset-password/{token} [post]
func NewResetPasswordHandler(svc PasswordResetter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		resetToken := chi.URLParam(r, "token")
		newPassword := r.FormValue("new_password")
		confirmPassword := r.FormValue("confirm_password")

		if newPassword == "" || confirmPassword == "" {
			writeError(w, http.StatusBadRequest, "New password and confirmation are required")
			return
		}

		err := svc.ResetPassword(r.Context(), resetToken, newPassword, confirmPassword)
		if err != nil {
			switch {
			case errors.Is(err, services.ErrPasswordMismatch):
				writeError(w, http.StatusBadRequest, "Passwords do not match")
			case errors.Is(err, services.ErrResetTokenInvalid):
				writeError(w, http.StatusBadRequest, "Invalid or expired reset token")
			case errors.Is(err, services.ErrUserNotFound):
				writeError(w, http.StatusNotFound, "User not found")
			default:
				logger.Log.Errorw("internal server error", "err", err)
				writeError(w, http.StatusInternalServerError, "Internal server error")
			}
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(ResetPasswordResponse{
			Message: "Password successfully reset",
		})
	}
}
