package redis_test

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	ccredis "github.com/fwojciec/citycopy/redis"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewClient(t *testing.T) {
	t.Parallel()

	t.Run("connects to server", func(t *testing.T) {
		t.Parallel()

		mr := miniredis.RunT(t)

		client, err := ccredis.NewClient(ccredis.Config{Address: mr.Addr()})
		require.NoError(t, err)
		t.Cleanup(func() { client.Close() })

		assert.NoError(t, client.Ping(context.Background()).Err())
	})

	t.Run("requires address", func(t *testing.T) {
		t.Parallel()

		_, err := ccredis.NewClient(ccredis.Config{})

		assert.ErrorIs(t, err, ccredis.ErrEmptyAddress)
	})

	t.Run("fails when server is unreachable", func(t *testing.T) {
		t.Parallel()

		mr := miniredis.RunT(t)
		addr := mr.Addr()
		mr.Close()

		_, err := ccredis.NewClient(ccredis.Config{Address: addr})

		assert.Error(t, err)
	})
}
