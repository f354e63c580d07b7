package errors

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidationError(t *testing.T) {
	err := NewValidationError("invalid request", ValidationDetail{Field: "email", Message: "email is required"})

	assert.Equal(t, "invalid request", err.Error())
	assert.Len(t, err.Details, 1)

	ve, ok := IsValidationError(err)
	assert.True(t, ok)
	assert.Equal(t, "email", ve.Details[0].Field)

	_, ok = IsValidationError(errors.New("plain"))
	assert.False(t, ok)
}

func TestNotFoundError(t *testing.T) {
	err := NewNotFoundError("order not found")

	_, ok := IsNotFoundError(err)
	assert.True(t, ok)
	assert.Equal(t, "order not found", err.Error())

	_, ok = IsNotFoundError(NewConflictError("x"))
	assert.False(t, ok)
}

func TestConflictError(t *testing.T) {
	err := NewConflictError("order number PO260901-001 already exists")

	_, ok := IsConflictError(err)
	assert.True(t, ok)
	assert.Contains(t, err.Error(), "PO260901-001")
}

func TestUnauthorizedError(t *testing.T) {
	err := NewUnauthorizedError("invalid token")

	_, ok := IsUnauthorizedError(err)
	assert.True(t, ok)
}

func TestForbiddenError(t *testing.T) {
	err := NewForbiddenError("no access to this order")

	_, ok := IsForbiddenError(err)
	assert.True(t, ok)
}

func TestInternalError_Unwrap(t *testing.T) {
	cause := errors.New("connection refused")
	err := NewInternalError("querying orders", cause)

	_, ok := IsInternalError(err)
	assert.True(t, ok)
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "querying orders")
}
