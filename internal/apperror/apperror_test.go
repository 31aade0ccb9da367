package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestStatus(t *testing.T) {
	cases := map[Kind]int{
		Unauthorized: http.StatusUnauthorized,
		NotFound:     http.StatusNotFound,
		Validation:   http.StatusBadRequest,
		Duplicate:    http.StatusConflict,
		Database:     http.StatusInternalServerError,
		Unknown:      http.StatusInternalServerError,
	}
	for kind, want := range cases {
		assert.Equal(t, want, Status(kind), kind)
	}
}

func TestFrom_Classifies(t *testing.T) {
	assert.Nil(t, From(nil))

	assert.Equal(t, NotFound, From(gorm.ErrRecordNotFound).Kind)
	assert.Equal(t, NotFound, From(fmt.Errorf("lookup: %w", gorm.ErrRecordNotFound)).Kind)
	assert.Equal(t, Duplicate, From(gorm.ErrDuplicatedKey).Kind)
	assert.Equal(t, Duplicate, From(errors.New("UNIQUE constraint failed: products.slug")).Kind)
	assert.Equal(t, Duplicate, From(errors.New("Error 1062: Duplicate entry 'x' for key 'slug'")).Kind)
	assert.Equal(t, Database, From(gorm.ErrInvalidTransaction).Kind)
	assert.Equal(t, Unknown, From(errors.New("boom")).Kind)
}

func TestFrom_KeepsExistingAppError(t *testing.T) {
	orig := New(Unauthorized, "Invalid email or password")
	got := From(fmt.Errorf("login: %w", orig))
	assert.Same(t, orig, got)
}

func TestFrom_ValidationMessage(t *testing.T) {
	type input struct {
		Name  string `validate:"required"`
		Price int    `validate:"gte=0"`
	}
	err := validator.New().Struct(input{Price: -1})
	require.Error(t, err)

	got := From(err)
	assert.Equal(t, Validation, got.Kind)
	assert.Contains(t, got.Message, "Name is required")
	assert.Contains(t, got.Message, "Price must be at least 0")
}

func TestFrom_GenericMessagesDoNotLeak(t *testing.T) {
	got := From(errors.New("sql: connection refused at 10.0.0.5"))
	assert.Equal(t, Database, got.Kind)
	assert.Equal(t, "Database error", got.Message)
}
