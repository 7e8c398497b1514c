package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGormDBFromDSNDoesNotDialAtStartup(t *testing.T) {
	// Nothing listens on port 1; opening must still succeed because the
	// pool is lazy and automatic ping is off.
	db, err := NewGormDBFromDSN("host=127.0.0.1 port=1 user=nobody dbname=nothing sslmode=disable")
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	assert.Error(t, sqlDB.Ping(), "ping against a dead backend must fail, open must not")
}
