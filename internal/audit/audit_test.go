package audit

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"gudang-backend/internal/apperror"
	"gudang-backend/internal/httpx"
	"gudang-backend/internal/identity"
	"gudang-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockRepo struct {
	mock.Mock
}

func (m *mockRepo) ListAll(ctx context.Context) ([]models.LogAktivitas, error) {
	args := m.Called(ctx)
	return args.Get(0).([]models.LogAktivitas), args.Error(1)
}

func (m *mockRepo) ListByUser(ctx context.Context, userID uint) ([]models.LogAktivitas, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]models.LogAktivitas), args.Error(1)
}

var (
	admin   = identity.Principal{UserID: 1, Username: "admin", Role: models.RoleAdminGudang}
	petugas = identity.Principal{UserID: 7, Username: "petugas", Role: models.RolePetugasOperasional}
)

func TestListScopesByRole(t *testing.T) {
	ctx := context.Background()
	repo := new(mockRepo)
	repo.On("ListAll", ctx).Return([]models.LogAktivitas{{ID: 1}, {ID: 2}}, nil).Once()
	repo.On("ListByUser", ctx, uint(7)).Return([]models.LogAktivitas{{ID: 2, UserID: 7}}, nil).Once()
	svc := NewService(repo)

	all, err := svc.List(ctx, admin)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	own, err := svc.List(ctx, petugas)
	require.NoError(t, err)
	require.Len(t, own, 1)
	assert.Equal(t, uint(7), own[0].UserID)

	repo.AssertExpectations(t)
}

func TestListForUserForbidsOtherUsers(t *testing.T) {
	ctx := context.Background()
	repo := new(mockRepo)
	repo.On("ListByUser", ctx, uint(7)).Return([]models.LogAktivitas{}, nil)
	svc := NewService(repo)

	_, err := svc.ListForUser(ctx, petugas, 1)
	assert.True(t, apperror.Is(err, apperror.KindForbidden))
	assert.Equal(t, "Anda tidak memiliki akses untuk melihat log ini", err.Error())

	_, err = svc.ListForUser(ctx, petugas, 7)
	assert.NoError(t, err)
	_, err = svc.ListForUser(ctx, admin, 7)
	assert.NoError(t, err)
	repo.AssertNumberOfCalls(t, "ListByUser", 2)
}

func TestListUserLogsHandler(t *testing.T) {
	repo := new(mockRepo)
	repo.On("ListByUser", mock.Anything, uint(7)).Return([]models.LogAktivitas{
		{ID: 3, UserID: 7, Aksi: models.AksiLogin, Timestamp: time.Now()},
	}, nil)
	svc := NewService(repo)

	app := fiber.New(fiber.Config{ErrorHandler: httpx.ErrorHandler})
	app.Use(func(c *fiber.Ctx) error {
		identity.Store(c, petugas)
		return c.Next()
	})
	app.Get("/logs/user/:id", ListUserLogsHandler(svc))

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/logs/user/7", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var env struct {
		Data []models.LogAktivitas `json:"data"`
	}
	require.NoError(t, json.Unmarshal(raw, &env))
	require.Len(t, env.Data, 1)
	assert.Equal(t, models.AksiLogin, env.Data[0].Aksi)

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/logs/user/1", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "abc", truncate("abc", 5))
	assert.Equal(t, "ab", truncate("abc", 2))
	assert.Equal(t, "é", truncate("éé", 1))
}
