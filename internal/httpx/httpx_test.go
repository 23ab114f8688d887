package httpx

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"gudang-backend/internal/apperror"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sampleRequest struct {
	Username             string `json:"username" validate:"required,max=50"`
	Password             string `json:"password" validate:"required,min=6"`
	PasswordConfirmation string `json:"password_confirmation" validate:"required,eqfield=Password"`
	Role                 string `json:"role" validate:"required,oneof=AdminGudang PetugasOperasional"`
	Jumlah               int    `json:"jumlah" validate:"min=1"`
	Tanggal              string `json:"tanggal" validate:"omitempty,datetime=2006-01-02"`
}

func newTestApp() *fiber.App {
	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler})
	app.Post("/bind", func(c *fiber.Ctx) error {
		var req sampleRequest
		if err := Bind(c, &req); err != nil {
			return err
		}
		return Created(c, "ok", req)
	})
	app.Get("/internal", func(c *fiber.Ctx) error {
		return apperror.Internal("Gagal mengambil data", errors.New("pq: relation does not exist"))
	})
	app.Get("/raw", func(c *fiber.Ctx) error {
		return errors.New("dial tcp 10.0.0.5:5432: connect: connection refused")
	})
	app.Get("/fiber", func(c *fiber.Ctx) error {
		return fiber.NewError(fiber.StatusTeapot, "teko")
	})
	app.Get("/items/:id", func(c *fiber.Ctx) error {
		id, err := ParamID(c, "id")
		if err != nil {
			return err
		}
		return OK(c, "", id)
	})
	return app
}

func decode(t *testing.T, resp *http.Response) Envelope {
	t.Helper()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var env Envelope
	require.NoError(t, json.Unmarshal(body, &env), string(body))
	return env
}

func TestBindReportsFieldErrors(t *testing.T) {
	app := newTestApp()
	payload := `{"username":"","password":"123","password_confirmation":"321","role":"Tamu","jumlah":0,"tanggal":"17-10-2026"}`
	req := httptest.NewRequest(http.MethodPost, "/bind", strings.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)

	env := decode(t, resp)
	assert.False(t, env.Success)
	assert.Equal(t, "Validasi gagal", env.Message)
	assert.Equal(t, "wajib diisi", env.Errors["username"])
	assert.Equal(t, "minimal 6 karakter", env.Errors["password"])
	assert.Equal(t, "konfirmasi tidak cocok", env.Errors["password_confirmation"])
	assert.Equal(t, "harus salah satu dari: AdminGudang, PetugasOperasional", env.Errors["role"])
	assert.Equal(t, "minimal 1", env.Errors["jumlah"])
	assert.Equal(t, "format tanggal harus YYYY-MM-DD", env.Errors["tanggal"])
}

func TestBindRejectsMalformedBody(t *testing.T) {
	app := newTestApp()
	req := httptest.NewRequest(http.MethodPost, "/bind", strings.NewReader(`{"jumlah":"banyak"}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	assert.Contains(t, decode(t, resp).Errors, "body")
}

func TestBindAcceptsValidBody(t *testing.T) {
	app := newTestApp()
	payload := `{"username":"budi","password":"rahasia","password_confirmation":"rahasia","role":"AdminGudang","jumlah":3,"tanggal":"2026-10-17"}`
	req := httptest.NewRequest(http.MethodPost, "/bind", strings.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.True(t, decode(t, resp).Success)
}

func TestErrorHandlerDoesNotLeakInternalErrors(t *testing.T) {
	app := newTestApp()

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/internal", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	env := decode(t, resp)
	assert.Equal(t, "Gagal mengambil data", env.Message)

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/raw", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	env = decode(t, resp)
	assert.Equal(t, internalMessage, env.Message)
	assert.NotContains(t, env.Message, "10.0.0.5")
}

func TestErrorHandlerKeepsFiberErrors(t *testing.T) {
	app := newTestApp()
	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/fiber", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusTeapot, resp.StatusCode)
	assert.Equal(t, "teko", decode(t, resp).Message)
}

func TestParamID(t *testing.T) {
	app := newTestApp()

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/items/12", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/items/abc", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	assert.Equal(t, "harus berupa angka positif", decode(t, resp).Errors["id"])
}
