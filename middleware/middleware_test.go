package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"go-tania/api"
	"go-tania/client"
	"go-tania/fakebackend"
	"go-tania/intro"
	"go-tania/models"
	"go-tania/session"
	"go-tania/store"
)

const testCookie = "tania_session"

type stubAuth struct {
	token string
	sess  *session.Session
}

func (s stubAuth) Authenticate(_ context.Context, token string) (*session.Session, error) {
	if token != s.token {
		return nil, errors.New("bad token")
	}
	return s.sess, nil
}

func newTestSession(t *testing.T) (*session.Session, *fakebackend.Backend) {
	t.Helper()
	backend := fakebackend.New()
	srv := backend.Start()
	t.Cleanup(srv.Close)
	c, err := client.New(srv.URL + client.DefaultAPIPrefix)
	require.NoError(t, err)
	a := api.New(c.WithToken(backend.Token))
	st := store.New(a)
	st.User.SignIn(models.User{UID: "demo", Username: "demo", Intro: true})
	return &session.Session{ID: "s1", Username: "demo", API: a, Store: st, Intro: intro.NewFlow(a, st)}, backend
}

func newRouter(sess *session.Session, extra ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	g := r.Group("/", Auth(stubAuth{token: "jwt-1", sess: sess}, testCookie))
	g.Use(extra...)
	ok := func(c *gin.Context) { c.String(http.StatusOK, CurrentSession(c).Username) }
	g.GET("/", ok)
	g.GET("/farms", ok)
	g.POST("/farms", ok)
	for _, step := range intro.Steps() {
		r.GET(step.Path(), Auth(stubAuth{token: "jwt-1", sess: sess}, testCookie), IntroGuard(step), ok)
		r.POST(step.Path(), Auth(stubAuth{token: "jwt-1", sess: sess}, testCookie), IntroGuard(step), ok)
	}
	return r
}

func do(r http.Handler, method, target string, auth bool) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, nil)
	if auth {
		req.AddCookie(&http.Cookie{Name: testCookie, Value: "jwt-1"})
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthRedirectsAnonymousGet(t *testing.T) {
	r := newRouter(nil)
	w := do(r, http.MethodGet, "/farms?page=2", false)
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/auth/login?redirect=%2Ffarms%3Fpage%3D2", w.Header().Get("Location"))
}

func TestAuthRejectsAnonymousPost(t *testing.T) {
	r := newRouter(nil)
	w := do(r, http.MethodPost, "/farms", false)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	req := httptest.NewRequest(http.MethodPost, "/farms", nil)
	req.Header.Set("Authorization", "Bearer wrong")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthAcceptsCookieAndBearer(t *testing.T) {
	sess, _ := newTestSession(t)
	r := newRouter(sess)

	w := do(r, http.MethodGet, "/farms", true)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "demo", w.Body.String())

	req := httptest.NewRequest(http.MethodGet, "/farms", nil)
	req.Header.Set("Authorization", "Bearer jwt-1")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestIntroRequiredRedirectsNewUser(t *testing.T) {
	sess, backend := newTestSession(t)
	r := newRouter(sess, IntroRequired())

	w := do(r, http.MethodGet, "/", true)
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/intro/farm", w.Header().Get("Location"))

	w = do(r, http.MethodPost, "/farms", true)
	assert.Equal(t, http.StatusForbidden, w.Code)

	backend.SeedFarm("Seeded")
	_, err := sess.Store.Farm.FetchFarms(context.Background())
	require.NoError(t, err)
	w = do(r, http.MethodGet, "/", true)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestIntroGuard(t *testing.T) {
	sess, backend := newTestSession(t)
	r := newRouter(sess)

	w := do(r, http.MethodGet, "/intro/reservoir", true)
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/intro/farm", w.Header().Get("Location"))
	assert.Equal(t, intro.IntroFarmCreate, sess.LastStep())

	w = do(r, http.MethodGet, "/intro/farm", true)
	assert.Equal(t, http.StatusOK, w.Code)

	farm := models.StubFarm()
	farm.Name = "My Farm"
	sess.Intro.SetFarm(farm)
	w = do(r, http.MethodGet, "/intro/reservoir", true)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, intro.IntroReservoirCreate, sess.LastStep())

	// 不能跳过水源直接进入区域
	w = do(r, http.MethodGet, "/intro/area", true)
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/intro/reservoir", w.Header().Get("Location"))

	backend.SeedFarm("Seeded")
	_, err := sess.Store.Farm.FetchFarms(context.Background())
	require.NoError(t, err)
	w = do(r, http.MethodGet, "/intro/farm", true)
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/", w.Header().Get("Location"))
	w = do(r, http.MethodPost, "/intro/farm", true)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestRequestID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestID())
	r.GET("/", func(c *gin.Context) { c.String(http.StatusOK, GetRequestID(c)) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	id := w.Header().Get(RequestIDHeader)
	_, err := uuid.Parse(id)
	require.NoError(t, err)
	assert.Equal(t, id, w.Body.String())

	given := uuid.NewString()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, given)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, given, w.Header().Get(RequestIDHeader))

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "not-a-uuid")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.NotEqual(t, "not-a-uuid", w.Header().Get(RequestIDHeader))
}

func TestLoggerWritesAccessLog(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestID(), Logger(zap.New(core)), Recovery(zap.New(core)))
	r.GET("/ok", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/boom", func(c *gin.Context) { panic("boom") })

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/ok", nil))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/boom", nil))
	assert.Equal(t, http.StatusInternalServerError, w.Code)

	entries := logs.FilterMessage("request").All()
	require.Len(t, entries, 2)
	assert.Equal(t, int64(http.StatusOK), entries[0].ContextMap()["status"])
	assert.Equal(t, zap.ErrorLevel, entries[1].Level)
	assert.Equal(t, 1, logs.FilterMessage("panic recovered").Len())
}
