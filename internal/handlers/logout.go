package handlers

import "net/http"

// NewLogoutHandler returns an HTTP handler that clears the identity cookie
// and redirects to the home page. There is no server-side session to
// invalidate; identity is purely the client-held cookie marker.
// @Summary Logout
// @Description Clears the identity cookie and redirects to /
// @Tags auth
// @Success 302 "Redirect to home"
// @Router /logout [get]
func NewLogoutHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		http.SetCookie(w, &http.Cookie{
			Name:   identityCookie,
			Value:  "",
			Path:   "/",
			MaxAge: -1,
		})
		http.Redirect(w, r, "/", http.StatusFound)
	}
}
