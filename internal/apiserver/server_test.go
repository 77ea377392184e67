package apiserver_test

import (
	"bytes"
	"context"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kart-io/medreq/internal/apiserver"
	"github.com/kart-io/medreq/internal/medreq"
	api "github.com/kart-io/medreq/internal/model"
	"github.com/kart-io/medreq/pkg/client"
	dbopts "github.com/kart-io/medreq/pkg/options/db"
	"github.com/kart-io/medreq/pkg/session"
)

func newOptions(t *testing.T) *apiserver.Options {
	t.Helper()
	opts := apiserver.NewOptions()
	opts.HTTP.Mode = "test"
	opts.DB.Path = dbopts.MemoryPath
	opts.JWT.Key = strings.Repeat("e", 32)
	require.NoError(t, opts.Complete())
	require.NoError(t, opts.Validate())
	return opts
}

func startServer(t *testing.T) string {
	t.Helper()
	srv, err := apiserver.NewServer(context.Background(), newOptions(t))
	require.NoError(t, err)
	t.Cleanup(func() { _ = srv.Close(context.Background()) })

	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return ts.URL + "/api"
}

func TestOptions_ValidateAggregates(t *testing.T) {
	opts := apiserver.NewOptions()
	opts.HTTP.Mode = "loud"
	opts.DB.Driver = "oracle"
	opts.JWT.Key = "short"

	err := opts.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "loud")
	assert.Contains(t, err.Error(), "oracle")
	assert.Contains(t, err.Error(), "jwt.key")
}

func TestClient_AgainstServer(t *testing.T) {
	base := startServer(t)
	ctx := context.Background()

	var token string
	c := client.New(base, client.WithTokenSource(client.TokenFunc(func(context.Context) (string, error) {
		return token, nil
	})))

	reg, err := c.Register(ctx, api.RegisterRequest{Name: "A", Email: "a@b.com", Password: "x", PasswordConfirmation: "x"})
	require.NoError(t, err)
	assert.Empty(t, reg.Token)

	_, err = c.Register(ctx, api.RegisterRequest{Name: "A", Email: "a@b.com", Password: "x", PasswordConfirmation: "x"})
	require.Error(t, err)
	assert.Equal(t, http.StatusUnprocessableEntity, client.StatusCode(err))

	_, err = c.ListMedicines(ctx)
	assert.Equal(t, http.StatusUnauthorized, client.StatusCode(err))

	login, err := c.Login(ctx, api.LoginRequest{Email: "a@b.com", Password: "x"})
	require.NoError(t, err)
	token = login.Token

	meds, err := c.ListMedicines(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, meds)

	created, err := c.CreateRequest(ctx, api.CreateRequestPayload{MedicineID: meds[0].ID})
	if meds[0].IsNoPos {
		require.Error(t, err)
	} else {
		require.NoError(t, err)
		assert.Equal(t, meds[0].Name, created.Medicine.Name)
	}

	me, err := c.GetUser(ctx, login.User.ID)
	require.NoError(t, err)
	assert.Equal(t, "a@b.com", me.Email)
}

func TestCLI_AgainstServer(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	base := startServer(t)
	mem := session.NewMemoryBackend()

	exec := func(stdin string, args ...string) (string, string, error) {
		a := medreq.NewApp(medreq.WithSessionBackend(mem))
		a.Command().SetIn(strings.NewReader(stdin))
		var out, errOut bytes.Buffer
		full := append([]string{"--client.base-url", base, "--client.language", "en"}, args...)
		err := a.Execute(full, &out, &errOut)
		return out.String(), errOut.String(), err
	}

	_, _, err := exec("", "register", "--name", "A", "--email", "a@b.com", "--password", "x", "--password-confirmation", "x")
	require.NoError(t, err)
	assert.Equal(t, 0, mem.Len())

	out, _, err := exec("x\n", "login", "--email", "a@b.com")
	require.NoError(t, err)
	assert.Contains(t, out, "Requests of A")
	assert.Contains(t, out, "(no requests)")
	assert.Equal(t, 2, mem.Len())

	out, _, err = exec("", "medicines")
	require.NoError(t, err)
	assert.Contains(t, out, "Acetaminofén 500 mg")

	out, _, err = exec("", "requests", "create", "--medicine", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "Acetaminofén 500 mg")
	assert.Contains(t, out, "page 1/1, 1 total")

	// NO POS 药品缺少配送信息时不会发出请求
	_, _, err = exec("", "requests", "create", "--medicine", "6")
	require.Error(t, err)

	out, _, err = exec("", "requests", "create", "--medicine", "6",
		"--order-number", "ORD-1", "--address", "Calle 1", "--phone", "300", "--email", "a@b.com")
	require.NoError(t, err)
	assert.Contains(t, out, "ORD-1")
	assert.Contains(t, out, "2 total")

	out, _, err = exec("", "whoami")
	require.NoError(t, err)
	assert.Contains(t, out, "a@b.com")

	_, _, err = exec("", "logout")
	require.NoError(t, err)
	_, errOut, err := exec("", "requests", "list")
	require.Error(t, err)
	assert.Contains(t, errOut, "medreq login")
}

func TestServer_ServeShutsDownOnCancel(t *testing.T) {
	srv, err := apiserver.NewServer(context.Background(), newOptions(t))
	require.NoError(t, err)
	t.Cleanup(func() { _ = srv.Close(context.Background()) })

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Serve(ctx, ln) }()

	require.Eventually(t, func() bool {
		resp, err := http.Get("http://" + ln.Addr().String() + "/healthz")
		if err != nil {
			return false
		}
		_ = resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 2*time.Second, 20*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}
