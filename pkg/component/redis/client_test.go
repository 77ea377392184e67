package redis

import (
	"context"
	"strconv"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	options "github.com/kart-io/medreq/pkg/options/redis"
)

func newOptions(t *testing.T, mr *miniredis.Miniredis) *options.Options {
	t.Helper()
	port, err := strconv.Atoi(mr.Port())
	require.NoError(t, err)

	opts := options.NewOptions()
	opts.Host = mr.Host()
	opts.Port = port
	opts.DialTimeout = time.Second
	return opts
}

func TestNew_PingsServer(t *testing.T) {
	mr := miniredis.RunT(t)

	client, err := New(context.Background(), newOptions(t, mr))
	require.NoError(t, err)
	defer func() { _ = client.Close() }()

	assert.Equal(t, "redis", client.Name())
	assert.NoError(t, client.Ping(context.Background()))

	require.NoError(t, client.Client().Set(context.Background(), "k", "v", 0).Err())
	got, err := mr.Get("k")
	require.NoError(t, err)
	assert.Equal(t, "v", got)
}

func TestNew_Errors(t *testing.T) {
	_, err := New(context.Background(), nil)
	assert.Error(t, err)

	mr := miniredis.RunT(t)
	opts := newOptions(t, mr)
	mr.Close()

	_, err = New(context.Background(), opts)
	assert.Error(t, err)
}
