package component_test

import (
	"context"
	"strconv"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kart-io/medreq/pkg/component"
	"github.com/kart-io/medreq/pkg/component/db"
	"github.com/kart-io/medreq/pkg/component/redis"
	clientopts "github.com/kart-io/medreq/pkg/options/client"
	dbopts "github.com/kart-io/medreq/pkg/options/db"
	httpopts "github.com/kart-io/medreq/pkg/options/http"
	jwtopts "github.com/kart-io/medreq/pkg/options/jwt"
	logopts "github.com/kart-io/medreq/pkg/options/logger"
	redisopts "github.com/kart-io/medreq/pkg/options/redis"
	sessionopts "github.com/kart-io/medreq/pkg/options/session"
	tracingopts "github.com/kart-io/medreq/pkg/options/tracing"
)

var (
	_ component.Component = (*db.Client)(nil)
	_ component.Component = (*redis.Client)(nil)
)

func TestOptionGroupsAreConfigOptions(t *testing.T) {
	groups := map[string]component.ConfigOptions{
		"client":  clientopts.NewOptions(),
		"db":      dbopts.NewOptions(),
		"http":    httpopts.NewOptions(),
		"jwt":     jwtopts.NewOptions(),
		"log":     logopts.NewOptions(),
		"redis":   redisopts.NewOptions(),
		"session": sessionopts.NewOptions(),
		"tracing": tracingopts.NewOptions(),
	}
	for name, o := range groups {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, o.Complete())
			assert.NoError(t, o.Validate())
		})
	}
}

func TestComponents_NameAndClose(t *testing.T) {
	ctx := context.Background()

	dopts := dbopts.NewOptions()
	dopts.Path = dbopts.MemoryPath
	require.NoError(t, dopts.Complete())
	d, err := db.New(ctx, dopts)
	require.NoError(t, err)

	mr := miniredis.RunT(t)
	port, err := strconv.Atoi(mr.Port())
	require.NoError(t, err)
	ropts := redisopts.NewOptions()
	ropts.Host = mr.Host()
	ropts.Port = port
	r, err := redis.New(ctx, ropts)
	require.NoError(t, err)

	for _, c := range []component.Component{d, r} {
		assert.NotEmpty(t, c.Name())
		assert.NoError(t, c.Close())
	}
}
