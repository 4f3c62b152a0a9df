package errx

import (
	"errors"
	"net/http"
	"testing"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrapRedis(t *testing.T) {
	assert.Nil(t, WrapRedis(nil))

	e := WrapRedis(redis.Nil)
	require.NotNil(t, e)
	assert.Equal(t, http.StatusNotFound, e.Status)
	assert.True(t, errors.Is(e, redis.Nil))

	e = WrapRedis(errors.New("connection refused"))
	assert.Equal(t, http.StatusBadGateway, e.Status)
	assert.Equal(t, RedisErrorMessage, e.Message)
}

func TestErrorChain(t *testing.T) {
	inner := errors.New("boom")
	e := New(inner, http.StatusInternalServerError, SystemErrorMessage)

	assert.Contains(t, e.Error(), "boom")
	assert.Contains(t, e.Error(), SystemErrorMessage)
	assert.True(t, errors.Is(e, inner))

	var target *Error
	require.True(t, errors.As(e, &target))
	assert.Equal(t, http.StatusInternalServerError, target.Status)
}
