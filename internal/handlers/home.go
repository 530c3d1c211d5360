package handlers

import (
	"context"
	"net/http"

	"github.com/vbazhenov/user-accounts/internal/logger"
	"github.com/vbazhenov/user-accounts/internal/models"
	"github.com/vbazhenov/user-accounts/internal/web"
)

// UserLister defines the interface for reading the public user listing.
type UserLister interface {
	ListUsers(ctx context.Context) ([]models.UserPublic, error)
}

// NewHomeHandler returns the HTML home page listing all users.
func NewHomeHandler(svc UserLister, rnd *web.Renderer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		users, err := svc.ListUsers(r.Context())
		if err != nil {
			logger.Log.Errorw("internal server error", "err", err)
			http.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}

		var username string
		if c, err := r.Cookie(identityCookie); err == nil {
			username = c.Value
		}

		rnd.Render(w, "index.html", web.IndexData{
			Users:    users,
			Username: username,
		})
	}
}
