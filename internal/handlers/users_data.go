package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/vbazhenov/user-accounts/internal/logger"
	"github.com/vbazhenov/user-accounts/internal/metrics"
	"github.com/vbazhenov/user-accounts/internal/models"
)

// NewUsersDataHandler returns the machine-readable user listing.
// @Summary List users
// @Description Returns id and username for every user. No pagination or access control.
// @Tags users
// @Produce json
// @Success 200 {array} models.UserListItem
// @Router /users-data [get]
func NewUsersDataHandler(svc UserLister, m *metrics.Metrics) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		users, err := svc.ListUsers(r.Context())
		if err != nil {
			logger.Log.Errorw("internal server error", "err", err)
			writeError(w, http.StatusInternalServerError, "Internal server error")
			return
		}

		m.UserDataReads.Inc()

		items := make([]models.UserListItem, 0, len(users))
		for _, u := range users {
			items = append(items, models.UserListItem{ID: u.ID, Username: u.Username})
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(items)
	}
}
