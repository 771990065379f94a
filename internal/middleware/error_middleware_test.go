package middleware

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/gradebook/internal/app/models/dto"
	"github.com/yigit/gradebook/internal/pkg/apperrors"
)

func serveError(err error) *httptest.ResponseRecorder {
	r := gin.New()
	r.GET("/", func(c *gin.Context) { HandleAPIError(c, err) })
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	return w
}

func TestHandleAPIError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantMsg    string
	}{
		{"token missing", apperrors.ErrTokenMissing, http.StatusUnauthorized, "Could not validate credentials"},
		{"token expired wrapped", fmt.Errorf("%w: detail", apperrors.ErrTokenExpired), http.StatusUnauthorized, "Could not validate credentials"},
		{"bad login", apperrors.ErrInvalidCredentials, http.StatusUnauthorized, "Incorrect username or password"},
		{"username taken", apperrors.ErrUsernameTaken, http.StatusBadRequest, "Username already registered"},
		{"email taken", apperrors.ErrEmailTaken, http.StatusBadRequest, "Email already registered"},
		{"student missing", apperrors.ErrStudentNotFound, http.StatusNotFound, "Student not found"},
		{"validation", apperrors.NewValidationError("invalid id"), http.StatusBadRequest, "invalid id"},
		{"student id taken", apperrors.ErrStudentIDTaken, http.StatusConflict, "Student ID already registered"},
		{"unavailable", apperrors.Unavailable(errors.New("dial tcp: refused")), http.StatusInternalServerError, "Internal server error"},
		{"unknown", errors.New("boom"), http.StatusInternalServerError, "Internal server error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := serveError(tt.err)
			require.Equal(t, tt.wantStatus, w.Code)

			var body dto.ErrorResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			require.NotNil(t, body.Error)
			assert.Equal(t, tt.wantMsg, body.Error.Message)
			assert.NotContains(t, w.Body.String(), "refused")
		})
	}
}

func TestHandleValidationError_FieldErrors(t *testing.T) {
	type payload struct {
		Email string `json:"email" binding:"required,email"`
	}

	r := gin.New()
	r.POST("/", func(c *gin.Context) {
		var p payload
		if err := c.ShouldBindJSON(&p); err != nil {
			HandleValidationError(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/", jsonBody(`{"email":"nope"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusBadRequest, w.Code)
	var body dto.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, dto.ErrorCodeValidationFailed, body.Error.Code)
	assert.Equal(t, "email", body.Error.Field)
	assert.Equal(t, "email must be a valid email address", body.Error.Message)
}
