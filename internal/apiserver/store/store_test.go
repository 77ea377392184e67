package store_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/kart-io/medreq/internal/apiserver/model"
	"github.com/kart-io/medreq/internal/apiserver/store"
	errno "github.com/kart-io/medreq/pkg/errors"
)

func newStore(t *testing.T) store.Factory {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: gormlogger.Discard})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	f := store.New(db)
	require.NoError(t, f.AutoMigrate())
	return f
}

func TestSeed_Idempotent(t *testing.T) {
	ctx := context.Background()
	f := newStore(t)

	require.NoError(t, store.Seed(ctx, f))
	n, err := f.Medicines().Count(ctx)
	require.NoError(t, err)
	assert.Positive(t, n)

	require.NoError(t, store.Seed(ctx, f))
	again, err := f.Medicines().Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, n, again)

	list, err := f.Medicines().List(ctx)
	require.NoError(t, err)
	var noPos int
	for _, m := range list {
		if m.IsNoPos {
			noPos++
		}
	}
	assert.Positive(t, noPos)
	assert.Less(t, noPos, len(list))
}

func TestUsers_GetByEmailIgnoresCase(t *testing.T) {
	ctx := context.Background()
	f := newStore(t)

	require.NoError(t, f.Users().Create(ctx, &model.User{Name: "A", Email: "a@b.com", Password: "h"}))

	u, err := f.Users().GetByEmail(ctx, " A@B.com ")
	require.NoError(t, err)
	assert.Equal(t, "A", u.Name)

	_, err = f.Users().Get(ctx, 99)
	assert.ErrorIs(t, err, errno.ErrNotFound)

	err = f.Users().Create(ctx, &model.User{Name: "B", Email: "a@b.com", Password: "h"})
	assert.ErrorIs(t, err, errno.ErrDatabase)
}

func TestRequests_ListByUserNewestFirst(t *testing.T) {
	ctx := context.Background()
	f := newStore(t)
	require.NoError(t, store.Seed(ctx, f))

	base := time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC)
	for i := 0; i < 12; i++ {
		r := &model.Request{UserID: 1, MedicineID: 1, CreatedAt: base.Add(time.Duration(i) * time.Hour)}
		require.NoError(t, f.Requests().Create(ctx, r))
		assert.NotEmpty(t, r.Medicine.Name)
	}
	require.NoError(t, f.Requests().Create(ctx, &model.Request{UserID: 2, MedicineID: 1}))

	total, page, err := f.Requests().ListByUser(ctx, 1, 0, 10)
	require.NoError(t, err)
	assert.EqualValues(t, 12, total)
	require.Len(t, page, 10)
	assert.True(t, page[0].CreatedAt.After(page[1].CreatedAt))
	assert.NotEmpty(t, page[0].Medicine.Name)

	_, rest, err := f.Requests().ListByUser(ctx, 1, 10, 10)
	require.NoError(t, err)
	assert.Len(t, rest, 2)
}
