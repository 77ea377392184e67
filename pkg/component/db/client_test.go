package db

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	options "github.com/kart-io/medreq/pkg/options/db"
)

func TestNew_SQLiteMemory(t *testing.T) {
	opts := options.NewOptions()
	opts.Path = options.MemoryPath
	require.NoError(t, opts.Complete())

	c, err := New(context.Background(), opts)
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })

	assert.Equal(t, "sqlite", c.Name())

	type item struct {
		ID   uint
		Name string
	}
	require.NoError(t, c.DB().AutoMigrate(&item{}))
	require.NoError(t, c.DB().Create(&item{Name: "a"}).Error)

	var n int64
	require.NoError(t, c.DB().Model(&item{}).Count(&n).Error)
	assert.EqualValues(t, 1, n)
}

func TestNew_InvalidOptions(t *testing.T) {
	_, err := New(context.Background(), nil)
	assert.Error(t, err)

	opts := options.NewOptions()
	opts.Driver = "oracle"
	_, err = New(context.Background(), opts)
	assert.Error(t, err)
}

func TestDSN(t *testing.T) {
	opts := options.NewOptions()
	opts.Driver = options.DriverMySQL
	opts.Password = "p@ss/word"
	require.NoError(t, opts.Complete())
	assert.Equal(t, "root:p%40ss%2Fword@tcp(127.0.0.1:3306)/medreq?charset=utf8mb4&parseTime=True&loc=Local", MySQLDSN(opts))

	opts = options.NewOptions()
	opts.Driver = options.DriverPostgres
	opts.Password = "it's secret"
	require.NoError(t, opts.Complete())
	assert.Equal(t, "host=127.0.0.1 port=5432 user=postgres password='it''s secret' dbname=medreq sslmode=disable", PostgresDSN(opts))
}

func TestDialector(t *testing.T) {
	for _, driver := range []string{options.DriverSQLite, options.DriverMySQL, options.DriverPostgres} {
		opts := options.NewOptions()
		opts.Driver = driver
		d, err := Dialector(opts)
		require.NoError(t, err, driver)
		assert.NotNil(t, d)
	}
}
