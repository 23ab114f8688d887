package server

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"gudang-backend/internal/auth"
	"gudang-backend/internal/config"
	"gudang-backend/internal/httpx"
	"gudang-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

const testSecret = "0123456789abcdef0123456789abcdef"

// userRepo hanya mengimplementasikan method yang dipakai jalur autentikasi.
type userRepo struct {
	auth.Repository
	users map[uint]*models.User
}

func (r *userRepo) FindUserByID(_ context.Context, id uint) (*models.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return u, nil
}

func (r *userRepo) IsTokenRevoked(context.Context, string) (bool, error) {
	return false, nil
}

type fixture struct {
	app    *fiber.App
	tokens *auth.TokenIssuer
	users  map[models.Role]*models.User
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	cfg := &config.Config{
		JWTSecret:     testSecret,
		JWTTTLMinutes: 60,
		AppEnv:        "test",
		CORSOrigins:   "http://localhost:5173, https://gudang.example.com",
		CookieName:    "access_token",
		ServiceName:   "gudang-backend",
	}
	users := map[models.Role]*models.User{
		models.RoleAdminGudang:        {ID: 1, Username: "admin", NamaLengkap: "Admin", Role: models.RoleAdminGudang, IsAktif: true},
		models.RolePetugasOperasional: {ID: 2, Username: "petugas", NamaLengkap: "Petugas", Role: models.RolePetugasOperasional, IsAktif: true},
	}
	repo := &userRepo{users: map[uint]*models.User{}}
	for _, u := range users {
		repo.users[u.ID] = u
	}
	tokens := auth.NewTokenIssuer(testSecret, cfg.TokenTTL())
	app := New(cfg, Services{Auth: auth.NewService(repo, tokens, nil)})
	return &fixture{app: app, tokens: tokens, users: users}
}

func (f *fixture) token(t *testing.T, role models.Role) string {
	t.Helper()
	tok, _, err := f.tokens.Issue(f.users[role])
	require.NoError(t, err)
	return tok
}

func decode(t *testing.T, resp *http.Response) httpx.Envelope {
	t.Helper()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var env httpx.Envelope
	require.NoError(t, json.Unmarshal(body, &env), string(body))
	return env
}

func TestHealth(t *testing.T) {
	f := newFixture(t)
	resp, err := f.app.Test(httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	env := decode(t, resp)
	assert.True(t, env.Success)
	assert.Equal(t, "Gudang API is running", env.Message)
}

func TestProtectedRoutesNeedToken(t *testing.T) {
	f := newFixture(t)
	routes := []struct{ method, path string }{
		{http.MethodGet, "/api/auth/me"},
		{http.MethodGet, "/api/kategori"},
		{http.MethodPost, "/api/barang"},
		{http.MethodPatch, "/api/permintaan/1/approve"},
		{http.MethodPost, "/api/transaksi-keluar"},
		{http.MethodGet, "/api/laporan/1/pdf"},
		{http.MethodGet, "/api/logs"},
		{http.MethodDelete, "/api/notifikasi/1"},
	}
	for _, r := range routes {
		t.Run(r.method+" "+r.path, func(t *testing.T) {
			resp, err := f.app.Test(httptest.NewRequest(r.method, r.path, nil))
			require.NoError(t, err)
			assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
			assert.Equal(t, "Token tidak ditemukan", decode(t, resp).Message)
		})
	}
}

func TestCookieTokenReachesProtectedRoutes(t *testing.T) {
	f := newFixture(t)
	req := httptest.NewRequest(http.MethodGet, "/api/auth/profile", nil)
	req.AddCookie(&http.Cookie{Name: "access_token", Value: f.token(t, models.RolePetugasOperasional)})

	resp, err := f.app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestAdminOnlyWrites(t *testing.T) {
	f := newFixture(t)
	cases := []struct{ method, path string }{
		{http.MethodPost, "/api/kategori"},
		{http.MethodPut, "/api/kategori/1"},
		{http.MethodDelete, "/api/barang/1"},
		{http.MethodPatch, "/api/barang/1/stok"},
		{http.MethodPatch, "/api/barang/1/cek-minimum"},
	}
	for _, c := range cases {
		t.Run(c.method+" "+c.path, func(t *testing.T) {
			req := httptest.NewRequest(c.method, c.path, nil)
			req.Header.Set(fiber.HeaderAuthorization, "Bearer "+f.token(t, models.RolePetugasOperasional))
			resp, err := f.app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, http.StatusForbidden, resp.StatusCode)
			assert.Equal(t, msgAdminOnly, decode(t, resp).Message)
		})
	}

	// Admin lolos gerbang role dan berhenti di validasi parameter.
	req := httptest.NewRequest(http.MethodPatch, "/api/barang/abc/stok", nil)
	req.Header.Set(fiber.HeaderAuthorization, "Bearer "+f.token(t, models.RoleAdminGudang))
	resp, err := f.app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
}

func TestExpiredTokenRejected(t *testing.T) {
	f := newFixture(t)
	old := auth.NewTokenIssuer(testSecret, -time.Minute)
	tok, _, err := old.Issue(f.users[models.RoleAdminGudang])
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	req.Header.Set(fiber.HeaderAuthorization, "Bearer "+tok)
	resp, err := f.app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestCORSPreflightAllowsCredentials(t *testing.T) {
	f := newFixture(t)
	req := httptest.NewRequest(http.MethodOptions, "/api/barang", nil)
	req.Header.Set(fiber.HeaderOrigin, "https://gudang.example.com")
	req.Header.Set(fiber.HeaderAccessControlRequestMethod, http.MethodPatch)

	resp, err := f.app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	assert.Equal(t, "https://gudang.example.com", resp.Header.Get(fiber.HeaderAccessControlAllowOrigin))
	assert.Equal(t, "true", resp.Header.Get(fiber.HeaderAccessControlAllowCredentials))
}

func TestNormalizeOrigins(t *testing.T) {
	assert.Equal(t, "http://a.test,http://b.test", normalizeOrigins(" http://a.test ,, http://b.test "))
}
