package util

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToDomainErrorPassthrough(t *testing.T) {
	err := NewForbidden("insufficient role")
	mapped := ToDomainError(err)
	assert.Equal(t, "FORBIDDEN", mapped.Code)
	assert.Equal(t, http.StatusForbidden, mapped.HTTPStatus)
}

func TestToDomainErrorUnwrapsWrapped(t *testing.T) {
	wrapped := fmt.Errorf("loading ticket: %w", NewNotFound("ticket", nil))
	mapped := ToDomainError(wrapped)
	assert.Equal(t, "NOT_FOUND", mapped.Code)
	assert.Equal(t, "ticket not found", mapped.Message)
}

func TestToDomainErrorMapsNoRows(t *testing.T) {
	mapped := ToDomainError(pgx.ErrNoRows)
	assert.Equal(t, "NOT_FOUND", mapped.Code)
	assert.Equal(t, http.StatusNotFound, mapped.HTTPStatus)
}

func TestToDomainErrorMapsFiberErrors(t *testing.T) {
	mapped := ToDomainError(fiber.ErrMethodNotAllowed)
	assert.Equal(t, http.StatusMethodNotAllowed, mapped.HTTPStatus)
}

func TestToDomainErrorHidesInternalDetail(t *testing.T) {
	mapped := ToDomainError(errors.New("pq: connection refused"))
	require.NotNil(t, mapped)
	assert.Equal(t, "INTERNAL_ERROR", mapped.Code)
	assert.Equal(t, "internal server error", mapped.Message)
	// The cause stays available for logging.
	assert.ErrorContains(t, mapped, "connection refused")
}

func TestToDomainErrorNil(t *testing.T) {
	assert.Nil(t, ToDomainError(nil))
}
