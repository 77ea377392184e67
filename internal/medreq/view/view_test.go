package view

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kart-io/medreq/internal/medreq/form"
	"github.com/kart-io/medreq/internal/model"
	"github.com/kart-io/medreq/pkg/client"
	"github.com/kart-io/medreq/pkg/guard"
	"github.com/kart-io/medreq/pkg/session"
)

// fakeBackend 模拟 API: 25 条请求，每页 10 条
type fakeBackend struct {
	mu      sync.Mutex
	pages   []int
	posts   []string
	created int
}

func (b *fakeBackend) handler(t *testing.T) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/auth/login", func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		if !strings.Contains(string(body), `"password":"x"`) {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"message":"Credenciales inválidas"}`))
			return
		}
		_, _ = w.Write([]byte(`{"token":"t1","user":{"id":5,"name":"A"}}`))
	})
	mux.HandleFunc("/medicines", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[{"id":1,"name":"Ibuprofeno","is_no_pos":false},{"id":2,"name":"Insulina","is_no_pos":true}]`))
	})
	mux.HandleFunc("/requests", func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		defer b.mu.Unlock()

		if r.Header.Get("Authorization") != "Bearer t1" {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"message":"Unauthenticated."}`))
			return
		}
		if r.Method == http.MethodPost {
			body, _ := io.ReadAll(r.Body)
			b.posts = append(b.posts, string(body))
			b.created++
			w.WriteHeader(http.StatusCreated)
			_, _ = w.Write([]byte(`{"id":100,"medicine":{"id":1,"name":"Ibuprofeno","is_no_pos":false}}`))
			return
		}

		assert.Equal(t, "5", r.URL.Query().Get("user_id"))
		page, _ := strconv.Atoi(r.URL.Query().Get("page"))
		b.pages = append(b.pages, page)

		total := 25 + b.created
		last := (total + 9) / 10
		var rows []string
		for i := (page - 1) * 10; i < total && i < page*10; i++ {
			rows = append(rows, fmt.Sprintf(`{"id":%d,"medicine":{"id":2,"name":"Insulina","is_no_pos":true},"order_number":"ORD-%d"}`, i+1, i+1))
		}
		_, _ = fmt.Fprintf(w, `{"data":[%s],"current_page":%d,"last_page":%d,"total":%d}`, strings.Join(rows, ","), page, last, total)
	})
	return mux
}

func (b *fakeBackend) fetchedPages() []int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]int(nil), b.pages...)
}

type fixture struct {
	backend *fakeBackend
	store   *session.Store
	mem     *session.MemoryBackend
	api     *client.Client
	out     *bytes.Buffer
	notify  *Notifier
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	fb := &fakeBackend{}
	server := httptest.NewServer(fb.handler(t))
	t.Cleanup(server.Close)

	mem := session.NewMemoryBackend()
	store := session.NewStore(mem)
	out := &bytes.Buffer{}
	return &fixture{
		backend: fb,
		store:   store,
		mem:     mem,
		api:     client.New(server.URL, client.WithTokenSource(store)),
		out:     out,
		notify:  NewNotifier(out, "es"),
	}
}

func TestLoginThenProtectedNavigation(t *testing.T) {
	ctx := context.Background()
	fx := newFixture(t)
	login := NewLoginView(fx.api, fx.store, fx.notify)

	route, err := login.Submit(ctx, "a@b.com", "x")
	require.NoError(t, err)
	assert.Equal(t, guard.RouteRequests, route)
	assert.Contains(t, fx.out.String(), "✔ Inicio de sesión exitoso")

	token, err := fx.store.Token(ctx)
	require.NoError(t, err)
	assert.Equal(t, "t1", token)

	// 受保护的页面无需再次登录
	list := NewRequestsView(fx.api, fx.store, fx.notify, fx.out)
	require.NoError(t, guard.New(fx.store).Protect(ctx, list.Mount))
	assert.Equal(t, "A", list.User().Name)
	assert.Equal(t, 3, list.Pager().Last())

	// 已登录时访问登录页直接跳转
	route, err = login.Submit(ctx, "", "")
	require.NoError(t, err)
	assert.Equal(t, guard.RouteRequests, route)
}

func TestLogin_SubmitWithSkipsCredentialsWhenSignedIn(t *testing.T) {
	ctx := context.Background()
	fx := newFixture(t)
	login := NewLoginView(fx.api, fx.store, fx.notify)

	asked := 0
	creds := func() (string, string, error) {
		asked++
		return "a@b.com", "x", nil
	}

	route, err := login.SubmitWith(ctx, creds)
	require.NoError(t, err)
	assert.Equal(t, guard.RouteRequests, route)
	assert.Equal(t, 1, asked)
	_, ok := login.SignedInAs()
	assert.False(t, ok)

	route, err = login.SubmitWith(ctx, creds)
	require.NoError(t, err)
	assert.Equal(t, guard.RouteRequests, route)
	assert.Equal(t, 1, asked)
	user, ok := login.SignedInAs()
	require.True(t, ok)
	assert.Equal(t, "A", user.Name)
}

func TestLogin_Failures(t *testing.T) {
	ctx := context.Background()
	fx := newFixture(t)
	login := NewLoginView(fx.api, fx.store, fx.notify)

	route, err := login.Submit(ctx, "a@b.com", " ")
	require.Error(t, err)
	assert.Equal(t, guard.RouteLogin, route)
	assert.Contains(t, fx.out.String(), "✖ Correo y contraseña son obligatorios")
	assert.Contains(t, fx.out.String(), "password: password no puede estar en blanco")

	_, err = login.Submit(ctx, "a@b.com", "wrong")
	require.Error(t, err)
	assert.Contains(t, fx.out.String(), "✖ Credenciales inválidas")

	_, ok, err := fx.store.Get(ctx)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestLogoutClearsBothKeys(t *testing.T) {
	ctx := context.Background()
	fx := newFixture(t)
	login := NewLoginView(fx.api, fx.store, fx.notify)
	_, err := login.Submit(ctx, "a@b.com", "x")
	require.NoError(t, err)
	require.Equal(t, 2, fx.mem.Len())

	route, err := login.Logout(ctx)
	require.NoError(t, err)
	assert.Equal(t, guard.RouteLogin, route)
	assert.Equal(t, 0, fx.mem.Len())

	_, err = fx.mem.GetItem(ctx, session.KeyToken)
	assert.ErrorIs(t, err, session.ErrNotFound)
	_, err = fx.mem.GetItem(ctx, session.KeyUser)
	assert.ErrorIs(t, err, session.ErrNotFound)

	err = guard.New(fx.store).Protect(ctx, func(context.Context) error { return nil })
	var re *guard.RedirectError
	require.ErrorAs(t, err, &re)
	assert.Equal(t, guard.RouteLogin, re.Route)
}

func mounted(t *testing.T, fx *fixture) *RequestsView {
	t.Helper()
	ctx := context.Background()
	require.NoError(t, fx.store.Set(ctx, model.Session{Token: "t1", User: model.User{ID: 5, Name: "A"}}))
	v := NewRequestsView(fx.api, fx.store, fx.notify, fx.out)
	require.NoError(t, v.Mount(ctx))
	return v
}

func TestRequestsView_Browse(t *testing.T) {
	fx := newFixture(t)
	v := mounted(t, fx)

	in := strings.NewReader("p\nn\nn\nn\nv 21\nv 99\nv x\nhelp\nq\n")
	require.NoError(t, v.Browse(context.Background(), in))

	// 首页的上一页与末页的下一页都不发请求
	assert.Equal(t, []int{1, 2, 3}, fx.backend.fetchedPages())

	out := fx.out.String()
	assert.Contains(t, out, "page 3/3, 25 total")
	assert.Contains(t, out, "ORD-21")
	assert.Contains(t, out, "(next)")
	assert.Contains(t, out, "usage: v <row>")
	assert.Contains(t, out, browseHelp)
}

func TestRequestsView_CreateRefetchesCurrentPage(t *testing.T) {
	ctx := context.Background()
	fx := newFixture(t)
	v := mounted(t, fx)
	_, err := v.Goto(ctx, 2)
	require.NoError(t, err)

	created, err := v.Create(ctx, 1, form.RequestFields{OrderNumber: "ignored"})
	require.NoError(t, err)
	assert.Equal(t, uint64(100), created.ID)

	assert.Equal(t, []int{1, 2, 2}, fx.backend.fetchedPages())
	assert.Equal(t, 26, v.Pager().Total())
	require.Len(t, fx.backend.posts, 1)
	assert.JSONEq(t, `{"medicine_id":1,"order_number":null,"address":null,"phone":null,"email":null}`, fx.backend.posts[0])
	assert.Contains(t, fx.out.String(), "✔ Solicitud registrada")
}

func TestRequestsView_CreateValidationNoNetwork(t *testing.T) {
	ctx := context.Background()
	fx := newFixture(t)
	v := mounted(t, fx)

	_, err := v.Create(ctx, 0, form.RequestFields{})
	require.Error(t, err)
	_, err = v.Create(ctx, 2, form.RequestFields{OrderNumber: "ORD-1", Address: "Calle 1", Phone: " "})
	require.Error(t, err)

	assert.Empty(t, fx.backend.posts)
	out := fx.out.String()
	assert.Contains(t, out, "✖ Seleccione un medicamento")
	assert.Contains(t, out, "✖ Complete todos los campos obligatorios")
}

func TestRequestsView_MountWithoutSession(t *testing.T) {
	fx := newFixture(t)
	v := NewRequestsView(fx.api, fx.store, fx.notify, fx.out)
	require.Error(t, v.Mount(context.Background()))
	assert.Contains(t, fx.out.String(), "✖ Sesión no iniciada")
	assert.Empty(t, fx.backend.fetchedPages())
}

func TestDescribe(t *testing.T) {
	fallback := form.MsgRequestSaveFailed
	assert.Equal(t, "Error al guardar", Describe(fmt.Errorf("dial: refused"), fallback, "es"))
	assert.Equal(t, "Could not save the request", Describe(fmt.Errorf("dial: refused"), fallback, "en"))
	assert.Equal(t, "boom", Describe(&client.ResponseError{StatusCode: 500, Message: "boom"}, fallback, "es"))
}
