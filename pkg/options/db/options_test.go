package db

import (
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComplete_DriverDefaults(t *testing.T) {
	t.Setenv(PasswordEnv, "s3cret")

	o := NewOptions()
	o.Driver = "Postgres"
	require.NoError(t, o.Complete())
	assert.Equal(t, DriverPostgres, o.Driver)
	assert.Equal(t, 5432, o.Port)
	assert.Equal(t, "postgres", o.Username)
	assert.Equal(t, "s3cret", o.Password)
	assert.NoError(t, o.Validate())

	o = NewOptions()
	o.Driver = DriverMySQL
	require.NoError(t, o.Complete())
	assert.Equal(t, 3306, o.Port)
	assert.Equal(t, "root", o.Username)
}

func TestValidate(t *testing.T) {
	o := NewOptions()
	require.NoError(t, o.Complete())
	assert.NoError(t, o.Validate())

	o.Driver = "oracle"
	assert.ErrorContains(t, o.Validate(), "oracle")

	o = NewOptions()
	o.Path = ""
	assert.Error(t, o.Validate())

	o = NewOptions()
	o.LogLevel = 9
	assert.Error(t, o.Validate())
}

func TestInMemory(t *testing.T) {
	o := NewOptions()
	assert.False(t, o.InMemory())
	o.Path = MemoryPath
	assert.True(t, o.InMemory())
	o.Path = "file:t1?mode=memory&cache=shared"
	assert.True(t, o.InMemory())
}

func TestAddFlags(t *testing.T) {
	o := NewOptions()
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	o.AddFlags(fs)
	require.NoError(t, fs.Parse([]string{"--db.driver=mysql", "--db.database=x", "--db.seed=false"}))
	assert.Equal(t, "mysql", o.Driver)
	assert.False(t, o.Seed)
}
