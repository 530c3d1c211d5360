package handlers

import (
	"encoding/json"
	"net/http"
	"net/url"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/vbazhenov/user-accounts/internal/services"
	"github.com/vbazhenov/user-accounts/internal/web"
)

func TestForgotPasswordHandler(t *testing.T) {
	rnd, err := web.NewRenderer()
	assert.NoError(t, err)

	t.Run("returns reset link page", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockSvc := NewMockPasswordForgetter(ctrl)
		mockSvc.EXPECT().
			ForgotPassword(gomock.Any(), "alice").
			Return("/reset-password/signed-token", nil)

		handler := NewForgotPasswordHandler(mockSvc, rnd)
		rr := postForm(t, handler, "/forgot-password", url.Values{"username": {"alice"}})

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Header().Get("Content-Type"), "text/html")
		assert.Contains(t, rr.Body.String(), "/reset-password/signed-token")
	})

	t.Run("user not found", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockSvc := NewMockPasswordForgetter(ctrl)
		mockSvc.EXPECT().
			ForgotPassword(gomock.Any(), "nobody").
			Return("", services.ErrUserNotFound)

		handler := NewForgotPasswordHandler(mockSvc, rnd)
		rr := postForm(t, handler, "/forgot-password", url.Values{"username": {"nobody"}})

		assert.Equal(t, http.StatusNotFound, rr.Code)

		var resp map[string]string
		assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
		assert.Equal(t, "User not found", resp["error"])
	})

	t.Run("missing username", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		handler := NewForgotPasswordHandler(NewMockPasswordForgetter(ctrl), rnd)
		rr := postForm(t, handler, "/forgot-password", url.Values{})

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}
