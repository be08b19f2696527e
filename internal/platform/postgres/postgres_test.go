package postgres

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestSQLStateClassification(t *testing.T) {
	unique := fmt.Errorf("insert request: %w", &pgconn.PgError{Code: "23505"})
	serial := &pgconn.PgError{Code: "40001"}

	assert.True(t, IsUniqueViolation(unique))
	assert.False(t, IsSerializationFailure(unique))
	assert.True(t, IsSerializationFailure(serial))
	assert.False(t, IsUniqueViolation(errors.New("connection reset")))
}
