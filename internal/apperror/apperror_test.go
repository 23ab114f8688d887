package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindHTTPStatus(t *testing.T) {
	cases := map[Kind]int{
		KindValidation:      http.StatusUnprocessableEntity,
		KindUnauthenticated: http.StatusUnauthorized,
		KindForbidden:       http.StatusForbidden,
		KindNotFound:        http.StatusNotFound,
		KindInvalidState:    http.StatusBadRequest,
		KindInternal:        http.StatusInternalServerError,
	}
	for kind, status := range cases {
		assert.Equal(t, status, kind.HTTPStatus(), kind.String())
	}
}

func TestKindOfWrapped(t *testing.T) {
	err := fmt.Errorf("approve: %w", InvalidState("Permintaan sudah diproses"))
	assert.Equal(t, KindInvalidState, KindOf(err))
	assert.True(t, Is(err, KindInvalidState))

	assert.Equal(t, KindInternal, KindOf(errors.New("boom")))
	assert.False(t, Is(nil, KindInternal))
}

func TestInternalKeepsCause(t *testing.T) {
	cause := errors.New("connection reset")
	err := Internal("Gagal menyimpan data", cause)

	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "Gagal menyimpan data", err.Message)
	assert.Contains(t, err.Error(), "connection reset")
}
