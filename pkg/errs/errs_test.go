package errs

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHTTPStatusMapping(t *testing.T) {
	tests := []struct {
		err    *Error
		status int
	}{
		{Validation("bad input"), http.StatusBadRequest},
		{Conflict("taken"), http.StatusConflict},
		{Auth("nope"), http.StatusUnauthorized},
		{NotFound("missing"), http.StatusNotFound},
		{Internal(errors.New("boom")), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.status, tt.err.HTTPStatus(), tt.err.Message)
	}
}

func TestInternalHidesDetail(t *testing.T) {
	cause := errors.New("sql: connection refused")
	err := Internal(cause)

	// 内部原因可以 Unwrap 出来记日志，但用户可见文案不含细节
	assert.ErrorIs(t, err, cause)
	assert.NotContains(t, err.Error(), "sql")
}
