package util

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToDomainErrorPassthrough(t *testing.T) {
	original := NewForbidden("Access denied")

	mapped := ToDomainError(original)
	assert.Equal(t, CodeForbidden, mapped.Code)
	assert.Equal(t, http.StatusForbidden, mapped.HTTPStatus)
	assert.Equal(t, "Access denied", mapped.Message)
}

func TestToDomainErrorWrappedPassthrough(t *testing.T) {
	wrapped := fmt.Errorf("handler: %w", NewConflict("Email already exists"))

	mapped := ToDomainError(wrapped)
	assert.Equal(t, CodeConflict, mapped.Code)
	assert.Equal(t, http.StatusConflict, mapped.HTTPStatus)
}

func TestToDomainErrorJWT(t *testing.T) {
	expired := ToDomainError(fmt.Errorf("parse: %w", jwt.ErrTokenExpired))
	assert.Equal(t, CodeAuth, expired.Code)
	assert.Equal(t, http.StatusUnauthorized, expired.HTTPStatus)
	assert.Equal(t, "Token expired", expired.Message)

	malformed := ToDomainError(fmt.Errorf("parse: %w", jwt.ErrTokenMalformed))
	assert.Equal(t, CodeAuth, malformed.Code)
	assert.Equal(t, "Invalid token", malformed.Message)

	badSig := ToDomainError(fmt.Errorf("parse: %w", jwt.ErrTokenSignatureInvalid))
	assert.Equal(t, CodeAuth, badSig.Code)
	assert.Equal(t, "Invalid token", badSig.Message)
}

func TestToDomainErrorUniqueViolation(t *testing.T) {
	pgErr := &pgconn.PgError{Code: "23505", ConstraintName: "users_email_key"}

	mapped := ToDomainError(pgErr)
	assert.Equal(t, CodeConflict, mapped.Code)
	assert.Equal(t, http.StatusConflict, mapped.HTTPStatus)
	assert.Equal(t, "Resource already exists", mapped.Message)
}

func TestToDomainErrorOtherPgErrorIsInternal(t *testing.T) {
	pgErr := &pgconn.PgError{Code: "23503"}

	mapped := ToDomainError(pgErr)
	assert.Equal(t, CodeInternal, mapped.Code)
}

func TestToDomainErrorNoRows(t *testing.T) {
	mapped := ToDomainError(pgx.ErrNoRows)
	assert.Equal(t, CodeNotFound, mapped.Code)
	assert.Equal(t, http.StatusNotFound, mapped.HTTPStatus)
}

func TestToDomainErrorFiberError(t *testing.T) {
	mapped := ToDomainError(fiber.NewError(http.StatusNotFound, "missing"))
	assert.Equal(t, CodeNotFound, mapped.Code)
	assert.Equal(t, http.StatusNotFound, mapped.HTTPStatus)
	assert.Equal(t, "missing", mapped.Message)
}

func TestToDomainErrorUnknownDegradesToInternal(t *testing.T) {
	mapped := ToDomainError(errors.New("connection reset by peer"))

	require.Equal(t, CodeInternal, mapped.Code)
	assert.Equal(t, http.StatusInternalServerError, mapped.HTTPStatus)
	// The client-facing message must not carry internal detail.
	assert.Equal(t, "Internal server error", mapped.Message)
	assert.ErrorContains(t, mapped, "connection reset by peer")
}

func TestToDomainErrorNil(t *testing.T) {
	assert.Nil(t, ToDomainError(nil))
}

func TestValidationErrorDetailsOrder(t *testing.T) {
	err := NewValidationError("Validation failed", []string{"first", "second"})

	mapped := ToDomainError(err)
	assert.Equal(t, CodeValidation, mapped.Code)
	assert.Equal(t, []string{"first", "second"}, mapped.Details)
}
