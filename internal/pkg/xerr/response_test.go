package xerr

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookupKeepsKindsDistinct(t *testing.T) {
	tests := []struct {
		err    error
		status int
		code   int
	}{
		{fmt.Errorf("upload service: size: %w", ErrValidation), http.StatusBadRequest, ValidationFailedCode},
		{fmt.Errorf("file service: %w", ErrNotFound), http.StatusNotFound, NotFoundCode},
		{fmt.Errorf("quota: %w", ErrQuotaExceeded), http.StatusRequestEntityTooLarge, QuotaExceededCode},
		{fmt.Errorf("state: %w", ErrInvalidTransition), http.StatusConflict, InvalidTransitionCode},
		{fmt.Errorf("confirm: %w", ErrUploadNotFound), http.StatusPreconditionFailed, UploadNotFoundCode},
		{fmt.Errorf("restore: %w", ErrRestoreWindowExpired), http.StatusGone, RestoreWindowExpiredCode},
		{fmt.Errorf("cas: %w", ErrStatusConflict), http.StatusConflict, StatusConflictCode},
		{errors.New("boom"), http.StatusInternalServerError, InternalServerErrorCode},
	}

	seen := map[int]bool{}
	for _, tt := range tests {
		status, code := Lookup(tt.err)
		assert.Equal(t, tt.status, status, tt.err.Error())
		assert.Equal(t, tt.code, code, tt.err.Error())
		assert.False(t, seen[code], "code %d reused", code)
		seen[code] = true
	}
}

func TestLookupCodeErrorOverridesCode(t *testing.T) {
	status, code := Lookup(NewCodeError(40099, fmt.Errorf("x: %w", ErrValidation)))
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, 40099, code)
}

func TestFailHidesInternalDetails(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	Fail(c, fmt.Errorf("dsn user:secret@tcp: %w", ErrDatabase))

	require.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "secret")
	assert.Contains(t, w.Body.String(), `"code":50001`)
}
