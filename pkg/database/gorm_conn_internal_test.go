package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCompletePostgresDefaultsSslmode(t *testing.T) {
	urlObj, err := completePostgres("postgres://localhost:5432/opsight", "")
	assert.Nil(t, err)
	assert.Equal(t, "disable", urlObj.Query().Get("sslmode"))
}

func TestCompletePostgresKeepsVerifyCa(t *testing.T) {
	urlObj, err := completePostgres("postgres://localhost:5432/opsight?sslmode=verify-ca", "/does/not/exist")
	assert.Nil(t, err)
	assert.Equal(t, "verify-ca", urlObj.Query().Get("sslmode"))
	assert.Empty(t, urlObj.Query().Get("sslrootcert"), "missing ca file must not be wired in")
}

func TestNewGormConnRejectsUnknownDialect(t *testing.T) {
	_, _, err := NewGormConn(&DatabaseConfig{URL: "whatever", Dialect: "mysql"})
	assert.NotNil(t, err)
	assert.Contains(t, err.Error(), "unsupported database dialect")
}
