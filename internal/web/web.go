// Package web renders the server-side HTML pages.
package web

import (
	"embed"
	"html/template"
	"net/http"

	"github.com/vbazhenov/user-accounts/internal/logger"
	"github.com/vbazhenov/user-accounts/internal/models"
)

//go:embed templates/*.html
var templateFS embed.FS

// IndexData is the payload for the home page.
type IndexData struct {
	Users    []models.UserPublic
	Username string // identity cookie value, empty when not logged in
}

// ResetPasswordData is the payload for the reset-password form page.
type ResetPasswordData struct {
	Token string
}

// ForgotPasswordSuccessData is the payload for the reset-link page.
type ForgotPasswordSuccessData struct {
	ResetLink string
}

// Renderer executes the embedded template set.
type Renderer struct {
	templates *template.Template
}

// NewRenderer parses the embedded templates.
func NewRenderer() (*Renderer, error) {
	templates, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, err
	}
	return &Renderer{templates: templates}, nil
}

// Render writes the named template with the given data as an HTML response.
func (rnd *Renderer) Render(w http.ResponseWriter, name string, data any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := rnd.templates.ExecuteTemplate(w, name, data); err != nil {
		logger.Log.Errorw("template render failed", "template", name, "err", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}
