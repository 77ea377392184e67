package session

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kart-io/medreq/internal/model"
	errno "github.com/kart-io/medreq/pkg/errors"
)

// backends 返回所有待测的存储后端
func backends(t *testing.T) map[string]Backend {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	return map[string]Backend{
		"memory": NewMemoryBackend(),
		"file":   NewFileBackend(filepath.Join(t.TempDir(), "nested", "session.json")),
		"redis":  NewRedisBackend(rdb, "test:"),
	}
}

func TestStore_SetGetClear(t *testing.T) {
	ctx := context.Background()

	for name, backend := range backends(t) {
		t.Run(name, func(t *testing.T) {
			store := NewStore(backend)

			_, ok, err := store.Get(ctx)
			require.NoError(t, err)
			assert.False(t, ok)

			want := model.Session{Token: "t1", User: model.User{ID: 5, Name: "A"}}
			require.NoError(t, store.Set(ctx, want))

			got, ok, err := store.Get(ctx)
			require.NoError(t, err)
			assert.True(t, ok)
			assert.Equal(t, want, got)

			token, err := store.Token(ctx)
			require.NoError(t, err)
			assert.Equal(t, "t1", token)

			require.NoError(t, store.Clear(ctx))

			// 登出后两个键都必须不存在
			_, err = backend.GetItem(ctx, KeyToken)
			assert.ErrorIs(t, err, ErrNotFound)
			_, err = backend.GetItem(ctx, KeyUser)
			assert.ErrorIs(t, err, ErrNotFound)

			_, ok, err = store.Get(ctx)
			require.NoError(t, err)
			assert.False(t, ok)

			// 重复清除是安全的
			assert.NoError(t, store.Clear(ctx))
		})
	}
}

func TestStore_TokenWithoutUser(t *testing.T) {
	ctx := context.Background()
	backend := NewMemoryBackend()
	require.NoError(t, backend.SetItem(ctx, KeyToken, "only-token"))

	sess, ok, err := NewStore(backend).Get(ctx)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "only-token", sess.Token)
	assert.Zero(t, sess.User)
}

func TestStore_CorruptUserKeepsToken(t *testing.T) {
	ctx := context.Background()
	backend := NewMemoryBackend()
	require.NoError(t, backend.SetItem(ctx, KeyToken, "t"))
	require.NoError(t, backend.SetItem(ctx, KeyUser, "{not json"))

	sess, ok, err := NewStore(backend).Get(ctx)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "t", sess.Token)
}

func TestStore_SetRejectsEmptyToken(t *testing.T) {
	err := NewStore(NewMemoryBackend()).Set(context.Background(), model.Session{Token: " "})
	assert.ErrorIs(t, err, errno.ErrSessionStore)
}

func TestFileBackend_Permissions(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "session.json")
	store := NewStore(NewFileBackend(path))

	require.NoError(t, store.Set(ctx, model.Session{Token: "t1"}))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	require.NoError(t, store.Clear(ctx))
	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}

func TestRedisBackend_UsesPrefix(t *testing.T) {
	ctx := context.Background()
	mr := miniredis.RunT(t)
	rdb := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	defer func() { _ = rdb.Close() }()

	store := NewStore(NewRedisBackend(rdb, "medreq:session:"))
	require.NoError(t, store.Set(ctx, model.Session{Token: "abc", User: model.User{ID: 1, Name: "Ana"}}))

	v, err := mr.Get("medreq:session:token")
	require.NoError(t, err)
	assert.Equal(t, "abc", v)
	assert.True(t, mr.Exists("medreq:session:user"))

	require.NoError(t, store.Clear(ctx))
	assert.False(t, mr.Exists("medreq:session:token"))
	assert.False(t, mr.Exists("medreq:session:user"))
}

func TestStore_BackendFailure(t *testing.T) {
	ctx := context.Background()
	mr := miniredis.RunT(t)
	rdb := goredis.NewClient(&goredis.Options{Addr: mr.Addr(), MaxRetries: -1})
	defer func() { _ = rdb.Close() }()
	mr.Close()

	_, err := NewStore(NewRedisBackend(rdb, "")).Token(ctx)
	assert.ErrorIs(t, err, errno.ErrSessionStore)
}

func TestFileBackend_CorruptFileIsReplaceable(t *testing.T) {
	ctx := context.Background()

	t.Run("clear removes it", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "session.json")
		require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))
		store := NewStore(NewFileBackend(path))

		_, ok, err := store.Get(ctx)
		require.NoError(t, err)
		assert.False(t, ok)

		require.NoError(t, store.Clear(ctx))
		_, err = os.Stat(path)
		assert.True(t, os.IsNotExist(err))
	})

	t.Run("set overwrites it", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "session.json")
		require.NoError(t, os.WriteFile(path, []byte("[1,2"), 0o600))
		store := NewStore(NewFileBackend(path))

		require.NoError(t, store.Set(ctx, model.Session{Token: "t2", User: model.User{ID: 2}}))
		token, err := store.Token(ctx)
		require.NoError(t, err)
		assert.Equal(t, "t2", token)
	})
}
