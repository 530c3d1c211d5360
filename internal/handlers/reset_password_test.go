package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/vbazhenov/user-accounts/internal/services"
)

// postResetForm routes through chi so the token URL param is populated.
func postResetForm(t *testing.T, handler http.HandlerFunc, token string, form url.Values) *httptest.ResponseRecorder {
	t.Helper()

	r := chi.NewRouter()
	r.Post("/reset-password/{token}", handler)

	req := httptest.NewRequest(http.MethodPost, "/reset-password/"+token, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	return rr
}

func TestResetPasswordHandler(t *testing.T) {
	tests := []struct {
		name         string
		token        string
		form         url.Values
		mockSetup    func(m *MockPasswordResetter)
		expectedCode int
		expectedBody string
	}{
		{
			name:  "success",
			token: "tok123",
			form:  url.Values{"new_password": {"brand-new"}, "confirm_password": {"brand-new"}},
			mockSetup: func(m *MockPasswordResetter) {
				m.EXPECT().
					ResetPassword(gomock.Any(), "tok123", "brand-new", "brand-new").
					Return(nil)
			},
			expectedCode: http.StatusOK,
			expectedBody: "Password successfully reset",
		},
		{
			name:  "mismatch",
			token: "tok123",
			form:  url.Values{"new_password": {"one"}, "confirm_password": {"two"}},
			mockSetup: func(m *MockPasswordResetter) {
				m.EXPECT().
					ResetPassword(gomock.Any(), "tok123", "one", "two").
					Return(services.ErrPasswordMismatch)
			},
			expectedCode: http.StatusBadRequest,
			expectedBody: "Passwords do not match",
		},
		{
			name:  "invalid token",
			token: "garbage",
			form:  url.Values{"new_password": {"one"}, "confirm_password": {"one"}},
			mockSetup: func(m *MockPasswordResetter) {
				m.EXPECT().
					ResetPassword(gomock.Any(), "garbage", "one", "one").
					Return(services.ErrResetTokenInvalid)
			},
			expectedCode: http.StatusBadRequest,
			expectedBody: "Invalid or expired reset token",
		},
		{
			name:  "user not found",
			token: "tok123",
			form:  url.Values{"new_password": {"one"}, "confirm_password": {"one"}},
			mockSetup: func(m *MockPasswordResetter) {
				m.EXPECT().
					ResetPassword(gomock.Any(), "tok123", "one", "one").
					Return(services.ErrUserNotFound)
			},
			expectedCode: http.StatusNotFound,
			expectedBody: "User not found",
		},
		{
			name:         "missing fields",
			token:        "tok123",
			form:         url.Values{"new_password": {"one"}},
			expectedCode: http.StatusBadRequest,
			expectedBody: "New password and confirmation are required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockSvc := NewMockPasswordResetter(ctrl)
			if tt.mockSetup != nil {
				tt.mockSetup(mockSvc)
			}

			rr := postResetForm(t, NewResetPasswordHandler(mockSvc), tt.token, tt.form)

			assert.Equal(t, tt.expectedCode, rr.Code)

			var resp map[string]string
			assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
			if tt.expectedCode == http.StatusOK {
				assert.Equal(t, tt.expectedBody, resp["message"])
			} else {
				assert.Equal(t, tt.expectedBody, resp["error"])
			}
		})
	}
}
