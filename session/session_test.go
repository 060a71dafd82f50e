package session

import (
	"context"
	"database/sql"
	"encoding/base64"
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"go-tania/client"
	"go-tania/config"
	"go-tania/fakebackend"
	"go-tania/intro"
)

const testSecret = "0123456789abcdef0123"

func TestBoxRoundTrip(t *testing.T) {
	box, err := NewBox(testSecret)
	require.NoError(t, err)

	sealed, err := box.Seal("token-demo")
	require.NoError(t, err)
	assert.NotContains(t, sealed, "token-demo")

	other, err := box.Seal("token-demo")
	require.NoError(t, err)
	assert.NotEqual(t, sealed, other, "nonce must differ")

	plain, err := box.Open(sealed)
	require.NoError(t, err)
	assert.Equal(t, "token-demo", plain)
}

func TestBoxRejectsTamperedAndForeign(t *testing.T) {
	box, err := NewBox(testSecret)
	require.NoError(t, err)
	sealed, err := box.Seal("token-demo")
	require.NoError(t, err)

	raw, err := base64.RawURLEncoding.DecodeString(sealed)
	require.NoError(t, err)
	raw[len(raw)-1] ^= 0xff
	_, err = box.Open(base64.RawURLEncoding.EncodeToString(raw))
	assert.ErrorIs(t, err, ErrDecrypt)

	foreign, err := NewBox("another-secret-value")
	require.NoError(t, err)
	_, err = foreign.Open(sealed)
	assert.ErrorIs(t, err, ErrDecrypt)

	_, err = box.Open("short")
	assert.ErrorIs(t, err, ErrDecrypt)

	_, err = NewBox("")
	assert.Error(t, err)
}

func TestSigner(t *testing.T) {
	s := NewSigner(testSecret, time.Hour)
	token, err := s.Sign("sid-1", "demo")
	require.NoError(t, err)

	claims, err := s.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, "sid-1", claims.SessionID)
	assert.Equal(t, "demo", claims.Username)

	_, err = NewSigner("a-different-secret", time.Hour).Parse(token)
	assert.ErrorIs(t, err, ErrInvalidToken)

	expired := NewSigner(testSecret, time.Minute)
	expired.now = func() time.Time { return time.Now().Add(-time.Hour) }
	old, err := expired.Sign("sid-1", "demo")
	require.NoError(t, err)
	_, err = s.Parse(old)
	assert.ErrorIs(t, err, ErrInvalidToken)

	none := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{SessionID: "sid-1"})
	unsigned, err := none.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)
	_, err = s.Parse(unsigned)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	ctx := context.Background()
	db, err := config.OpenDB(ctx, config.DatabaseConfig{
		Driver: config.DriverSQLite,
		DSN:    filepath.Join(t.TempDir(), "sessions.db"),
	})
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	_, err = config.Migrate(ctx, db, zaptest.NewLogger(t))
	require.NoError(t, err)
	return db
}

func testRepository(t *testing.T, repo Repository) {
	ctx := context.Background()
	created := time.Unix(1700000000, 0)

	_, err := repo.Find(ctx, "missing")
	assert.ErrorIs(t, err, ErrSessionNotFound)

	rec := Record{ID: "s1", Username: "demo", Token: "sealed", ExpiresIn: 60, CreatedAt: created}
	require.NoError(t, repo.Save(ctx, rec))
	got, err := repo.Find(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, rec.Username, got.Username)
	assert.Equal(t, rec.Token, got.Token)
	assert.Equal(t, 60, got.ExpiresIn)
	assert.True(t, created.Equal(got.CreatedAt))

	rec.Token = "resealed"
	require.NoError(t, repo.Save(ctx, rec))
	got, err = repo.Find(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, "resealed", got.Token)

	require.NoError(t, repo.Save(ctx, Record{ID: "s2", Username: "new", Token: "t", CreatedAt: created.Add(2 * time.Hour)}))
	n, err := repo.DeleteBefore(ctx, created.Add(time.Hour))
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)

	require.NoError(t, repo.Delete(ctx, "s2"))
	require.NoError(t, repo.Delete(ctx, "s2"))
	_, err = repo.Find(ctx, "s2")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestSQLRepositorySQLite(t *testing.T) {
	testRepository(t, NewSQLRepository(openTestDB(t)))
}

type fixture struct {
	backend *fakebackend.Backend
	base    *client.Client
	repo    *SQLRepository
	box     *Box
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	backend := fakebackend.New()
	srv := backend.Start()
	t.Cleanup(srv.Close)

	base, err := client.New(srv.URL + client.DefaultAPIPrefix)
	require.NoError(t, err)
	box, err := NewBox(testSecret)
	require.NoError(t, err)
	return &fixture{backend: backend, base: base, repo: NewSQLRepository(openTestDB(t)), box: box}
}

func (f *fixture) manager(t *testing.T, ttl time.Duration) *Manager {
	return NewManager(f.base, f.repo, f.box, NewSigner(testSecret, ttl), Options{
		ClientID:    "client",
		RedirectURI: "http://front.example/auth/callback",
		TTL:         ttl,
	}, zaptest.NewLogger(t))
}

func TestManagerLoginAndAuthenticate(t *testing.T) {
	f := newFixture(t)
	f.backend.SeedFarm("Farm")
	m := f.manager(t, time.Hour)
	ctx := context.Background()

	sess, token, err := m.Login(ctx, "demo", "password")
	require.NoError(t, err)
	assert.True(t, sess.Store.User.IsAuthenticated())
	assert.Equal(t, f.backend.Token, sess.API.Client().Token())
	assert.True(t, sess.Store.Farm.HaveFarms())

	got, err := m.Authenticate(ctx, token)
	require.NoError(t, err)
	assert.Same(t, sess, got)

	rec, err := f.repo.Find(ctx, sess.ID)
	require.NoError(t, err)
	assert.False(t, strings.Contains(rec.Token, f.backend.Token), "token must be encrypted at rest")
}

func TestManagerLoginRejected(t *testing.T) {
	f := newFixture(t)
	m := f.manager(t, time.Hour)

	_, _, err := m.Login(context.Background(), "demo", "nope")
	var apiErr *client.APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, "username", apiErr.FieldName)
}

func TestManagerRestoresAfterRestart(t *testing.T) {
	f := newFixture(t)
	farm := f.backend.SeedFarm("Farm")
	ctx := context.Background()

	sess, token, err := f.manager(t, time.Hour).Login(ctx, "demo", "password")
	require.NoError(t, err)
	sess.SetLastStep(intro.IntroReservoirCreate)

	restarted := f.manager(t, time.Hour)
	restored, err := restarted.Authenticate(ctx, token)
	require.NoError(t, err)
	assert.NotSame(t, sess, restored)
	assert.Equal(t, sess.ID, restored.ID)
	assert.Equal(t, "demo", restored.Store.User.Current().Username)
	assert.Equal(t, farm.UID, restored.Store.Farm.Current().UID)
	assert.Empty(t, restored.LastStep())
}

func TestManagerDestroy(t *testing.T) {
	f := newFixture(t)
	m := f.manager(t, time.Hour)
	ctx := context.Background()

	sess, token, err := m.Login(ctx, "demo", "password")
	require.NoError(t, err)
	require.NoError(t, m.Destroy(ctx, sess.ID))
	assert.False(t, sess.Store.User.IsAuthenticated())

	_, err = m.Authenticate(ctx, token)
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestManagerExpiredSession(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	sess, _, err := f.manager(t, time.Hour).Login(ctx, "demo", "password")
	require.NoError(t, err)

	later := f.manager(t, time.Hour)
	later.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
	_, err = later.Get(ctx, sess.ID)
	assert.ErrorIs(t, err, ErrSessionNotFound)
	_, err = f.repo.Find(ctx, sess.ID)
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestManagerPurge(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	m := f.manager(t, time.Hour)
	_, _, err := m.Login(ctx, "demo", "password")
	require.NoError(t, err)

	m.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
	n, err := m.Purge(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)
}

func TestManagerRejectsMalformedID(t *testing.T) {
	f := newFixture(t)
	_, err := f.manager(t, time.Hour).Get(context.Background(), "../etc")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestManagerExpiresWithBackendToken(t *testing.T) {
	f := newFixture(t)
	f.backend.ExpiresIn = 60
	ctx := context.Background()
	m := f.manager(t, time.Hour)

	sess, token, err := m.Login(ctx, "demo", "password")
	require.NoError(t, err)
	assert.Equal(t, 60, sess.ExpiresIn)
	_, err = m.Authenticate(ctx, token)
	require.NoError(t, err)

	m.now = func() time.Time { return time.Now().Add(2 * time.Minute) }
	_, err = m.Get(ctx, sess.ID)
	assert.ErrorIs(t, err, ErrSessionNotFound)
	_, err = f.repo.Find(ctx, sess.ID)
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestRecordTokenExpired(t *testing.T) {
	created := time.Unix(1700000000, 0)
	rec := Record{ExpiresIn: 60, CreatedAt: created}
	assert.False(t, rec.TokenExpired(created.Add(time.Minute)))
	assert.True(t, rec.TokenExpired(created.Add(61*time.Second)))

	rec.ExpiresIn = 0
	assert.False(t, rec.TokenExpired(created.Add(24*time.Hour)))
}
