package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/vbazhenov/user-accounts/internal/web"
)

// NewRegisterPageHandler serves the registration form.
func NewRegisterPageHandler(rnd *web.Renderer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rnd.Render(w, "register.html", nil)
	}
}

// NewLoginPageHandler serves the login form.
func NewLoginPageHandler(rnd *web.Renderer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rnd.Render(w, "login.html", nil)
	}
}

// NewForgotPasswordPageHandler serves the forgot-password form.
func NewForgotPasswordPageHandler(rnd *web.Renderer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rnd.Render(w, "forgot_password.html", nil)
	}
}

// NewResetPasswordPageHandler serves the reset-password form with the token
// from the URL embedded in the form action.
func NewResetPasswordPageHandler(rnd *web.Renderer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rnd.Render(w, "reset_password.html", web.ResetPasswordData{
			Token: chi.URLParam(r, "token"),
		})
	}
}
