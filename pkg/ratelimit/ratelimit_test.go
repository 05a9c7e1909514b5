package ratelimit

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAllow_FirstRequestSetsWindow(t *testing.T) {
	db, mock := redismock.NewClientMock()
	limiter := New(db, 3, time.Minute)

	mock.ExpectIncr("ratelimit:user:42").SetVal(1)
	mock.ExpectExpire("ratelimit:user:42", time.Minute).SetVal(true)

	allowed, remaining, err := limiter.Allow(context.Background(), "user:42")

	require.NoError(t, err)
	assert.True(t, allowed)
	assert.Equal(t, int64(2), remaining)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAllow_WithinLimit(t *testing.T) {
	db, mock := redismock.NewClientMock()
	limiter := New(db, 3, time.Minute)

	mock.ExpectIncr("ratelimit:user:42").SetVal(3)

	allowed, remaining, err := limiter.Allow(context.Background(), "user:42")

	require.NoError(t, err)
	assert.True(t, allowed)
	assert.Equal(t, int64(0), remaining)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAllow_OverLimit(t *testing.T) {
	db, mock := redismock.NewClientMock()
	limiter := New(db, 3, time.Minute)

	mock.ExpectIncr("ratelimit:user:42").SetVal(4)

	allowed, remaining, err := limiter.Allow(context.Background(), "user:42")

	require.NoError(t, err)
	assert.False(t, allowed)
	assert.Equal(t, int64(0), remaining)
}

func TestAllow_FailsOpenOnRedisError(t *testing.T) {
	db, mock := redismock.NewClientMock()
	limiter := New(db, 3, time.Minute)

	mock.ExpectIncr("ratelimit:user:42").SetErr(errors.New("connection refused"))

	allowed, _, err := limiter.Allow(context.Background(), "user:42")

	assert.Error(t, err)
	assert.True(t, allowed)
}
