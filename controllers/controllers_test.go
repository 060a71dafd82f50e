package controllers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap"

	"go-tania/api"
	"go-tania/client"
	"go-tania/fakebackend"
	"go-tania/intro"
	"go-tania/models"
	"go-tania/session"
	"go-tania/store"
	"go-tania/utils"
)

func newTestSession(t *testing.T, backend *fakebackend.Backend) *session.Session {
	t.Helper()
	srv := backend.Start()
	t.Cleanup(srv.Close)
	hc := &http.Client{Transport: &http.Transport{DisableKeepAlives: true}}
	c, err := client.New(srv.URL+client.DefaultAPIPrefix, client.WithHTTPClient(hc))
	require.NoError(t, err)
	a := api.New(c.WithToken(backend.Token))
	st := store.New(a)
	st.User.SignIn(models.User{UID: "demo", Username: "demo", Intro: true})
	return &session.Session{ID: "s1", Username: "demo", API: a, Store: st, Intro: intro.NewFlow(a, st)}
}

func TestRespondError(t *testing.T) {
	gin.SetMode(gin.TestMode)
	cases := []struct {
		name   string
		err    error
		status int
	}{
		{"backend field error", &client.APIError{StatusCode: http.StatusBadRequest, FieldName: "name", Body: []byte(`{"field_name":"name"}`)}, http.StatusBadRequest},
		{"backend unauthorized", &client.APIError{StatusCode: http.StatusUnauthorized}, http.StatusUnauthorized},
		{"no current farm", store.ErrNoCurrentFarm, http.StatusNotFound},
		{"intro ordering", intro.ErrReservoirNotCreated, http.StatusBadRequest},
		{"photo too large", errPhotoTooLarge, http.StatusBadRequest},
		{"transport", errors.New("dial tcp: refused"), http.StatusBadGateway},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			ctx, _ := gin.CreateTestContext(w)
			ctx.Request = httptest.NewRequest(http.MethodGet, "/", nil)
			respondError(ctx, zap.NewNop(), tc.err)
			assert.Equal(t, tc.status, w.Code)
			assert.True(t, ctx.IsAborted())
		})
	}
}

func TestRespondErrorKeepsBackendPayload(t *testing.T) {
	w := httptest.NewRecorder()
	ctx, _ := gin.CreateTestContext(w)
	ctx.Request = httptest.NewRequest(http.MethodPost, "/", nil)
	respondError(ctx, zap.NewNop(), &client.APIError{
		StatusCode: http.StatusBadRequest,
		Body:       []byte(`{"field_name":"capacity","error_code":"1","error_message":"capacity is required"}`),
	})

	var resp struct {
		Data map[string]string `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "capacity", resp.Data["field_name"])
	assert.Equal(t, "capacity is required", resp.Data["error_message"])
}

func TestRedirectTarget(t *testing.T) {
	backend := fakebackend.New()
	sess := newTestSession(t, backend)

	assert.Equal(t, "/crops?page=2", redirectTarget("/crops?page=2", sess))
	assert.Equal(t, "/intro/farm", redirectTarget("//evil.example", sess))
	assert.Equal(t, "/intro/farm", redirectTarget("https://evil.example", sess))
	assert.Equal(t, "/intro/farm", redirectTarget("", sess))

	backend.SeedFarm("Farm")
	_, err := sess.Store.Farm.FetchFarms(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "/", redirectTarget("", sess))
}

func TestLoadDashboardDoesNotLeak(t *testing.T) {
	backend := fakebackend.New()
	farm := backend.SeedFarm("Farm")
	backend.SeedTasks(12)
	sess := newTestSession(t, backend)
	_, err := sess.Store.Farm.FetchFarms(context.Background())
	require.NoError(t, err)

	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	d, err := loadDashboard(context.Background(), sess, farm.UID)
	require.NoError(t, err)
	assert.Equal(t, farm.UID, d.Farm.UID)
	assert.Len(t, d.Tasks, utils.PageLength)
	assert.Equal(t, 12, d.TaskTotal)
	assert.Empty(t, d.Areas)
	assert.NotNil(t, d.Reservoirs)
}

func TestLoadDashboardStopsOnError(t *testing.T) {
	backend := fakebackend.New()
	sess := newTestSession(t, backend)

	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	// 没有当前农场时汇总接口直接失败
	_, err := loadDashboard(context.Background(), sess, "farm-x")
	assert.ErrorIs(t, err, store.ErrNoCurrentFarm)
}
