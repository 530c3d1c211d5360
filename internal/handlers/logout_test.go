package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLogoutHandler(t *testing.T) {
	handler := NewLogoutHandler()

	req := httptest.NewRequest(http.MethodGet, "/logout", nil)
	req.AddCookie(&http.Cookie{Name: identityCookie, Value: "alice"})

	rr := httptest.NewRecorder()
	handler(rr, req)

	assert.Equal(t, http.StatusFound, rr.Code)
	assert.Equal(t, "/", rr.Header().Get("Location"))

	var cleared bool
	for _, c := range rr.Result().Cookies() {
		if c.Name == identityCookie {
			cleared = true
			assert.Empty(t, c.Value)
			assert.Negative(t, c.MaxAge)
		}
	}
	assert.True(t, cleared, "identity cookie should be expired")
}
