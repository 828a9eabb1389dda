package database

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPoolOptions_Defaults(t *testing.T) {
	o := PoolOptions{}.withDefaults()
	assert.Equal(t, 10, o.MaxOpen)
	assert.Equal(t, 10, o.MaxIdle)
	assert.Equal(t, 30*time.Minute, o.MaxLifetime)
	assert.Equal(t, 5*time.Second, o.PingTimeout)

	o = PoolOptions{MaxOpen: 4, MaxIdle: 8}.withDefaults()
	assert.Equal(t, 4, o.MaxIdle)
}

func TestOpen_EmptyDSN(t *testing.T) {
	_, err := Open(context.Background(), "  ", PoolOptions{}, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DATABASE_URL")
}

func TestDB_NilSafe(t *testing.T) {
	var d *DB
	assert.Error(t, d.Ping(context.Background()))
	assert.NoError(t, d.Close())
}
