package notifikasi

import (
	"context"
	"errors"
	"sync"
	"testing"

	"gudang-backend/internal/apperror"
	"gudang-backend/internal/identity"
	"gudang-backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeRepo struct {
	mu        sync.Mutex
	rows      map[uint]*models.Notifikasi
	nextID    uint
	users     map[uint]models.Role
	createErr error
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		rows: map[uint]*models.Notifikasi{},
		users: map[uint]models.Role{
			1: models.RoleAdminGudang,
			2: models.RoleAdminGudang,
			7: models.RolePetugasOperasional,
		},
	}
}

func (r *fakeRepo) Create(_ context.Context, rows ...*models.Notifikasi) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.createErr != nil {
		return r.createErr
	}
	for _, n := range rows {
		r.nextID++
		n.ID = r.nextID
		cp := *n
		r.rows[n.ID] = &cp
	}
	return nil
}

func (r *fakeRepo) ListByUser(_ context.Context, userID uint) ([]models.Notifikasi, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Notifikasi
	for _, n := range r.rows {
		if n.UserID == userID {
			out = append(out, *n)
		}
	}
	return out, nil
}

func (r *fakeRepo) FindByID(_ context.Context, id uint) (*models.Notifikasi, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	n, ok := r.rows[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *n
	return &cp, nil
}

func (r *fakeRepo) MarkRead(_ context.Context, id uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rows[id].Dibaca = true
	return nil
}

func (r *fakeRepo) Delete(_ context.Context, id uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.rows, id)
	return nil
}

func (r *fakeRepo) UserExists(_ context.Context, userID uint) (bool, error) {
	_, ok := r.users[userID]
	return ok, nil
}

func (r *fakeRepo) ActiveUserIDsByRole(_ context.Context, role models.Role) ([]uint, error) {
	var ids []uint
	for id, rl := range r.users {
		if rl == role {
			ids = append(ids, id)
		}
	}
	return ids, nil
}

var (
	admin   = identity.Principal{UserID: 1, Role: models.RoleAdminGudang}
	petugas = identity.Principal{UserID: 7, Role: models.RolePetugasOperasional}
)

func TestNotifyRoleReachesEveryAdmin(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo)
	ctx := context.Background()

	svc.NotifyRole(ctx, models.RoleAdminGudang, "Stok menipis", "Kertas A4 di bawah minimum")

	for _, id := range []uint{1, 2} {
		list, err := repo.ListByUser(ctx, id)
		require.NoError(t, err)
		assert.Len(t, list, 1)
	}
	list, _ := repo.ListByUser(ctx, 7)
	assert.Empty(t, list)
}

func TestNotifySwallowsStoreErrors(t *testing.T) {
	repo := newFakeRepo()
	repo.createErr = errors.New("db down")
	svc := NewService(repo)

	assert.NotPanics(t, func() {
		svc.Notify(context.Background(), 7, "judul", "pesan")
	})
}

func TestCreateTargets(t *testing.T) {
	ctx := context.Background()
	svc := NewService(newFakeRepo())
	other := uint(2)
	missing := uint(99)

	n, err := svc.Create(ctx, petugas, CreateInput{Judul: "catatan", Pesan: "isi"})
	require.NoError(t, err)
	assert.Equal(t, uint(7), n.UserID)

	_, err = svc.Create(ctx, petugas, CreateInput{UserID: &other, Judul: "x", Pesan: "y"})
	assert.True(t, apperror.Is(err, apperror.KindForbidden))

	n, err = svc.Create(ctx, admin, CreateInput{UserID: &other, Judul: "x", Pesan: "y"})
	require.NoError(t, err)
	assert.Equal(t, other, n.UserID)

	_, err = svc.Create(ctx, admin, CreateInput{UserID: &missing, Judul: "x", Pesan: "y"})
	assert.True(t, apperror.Is(err, apperror.KindValidation))
}

func TestMarkReadAndDeleteOwnership(t *testing.T) {
	ctx := context.Background()
	repo := newFakeRepo()
	svc := NewService(repo)
	svc.Notify(ctx, 7, "Permintaan disetujui", "Permintaan #1 disetujui")

	_, err := svc.MarkRead(ctx, admin, 1)
	assert.True(t, apperror.Is(err, apperror.KindForbidden))

	n, err := svc.MarkRead(ctx, petugas, 1)
	require.NoError(t, err)
	assert.True(t, n.Dibaca)

	_, err = svc.MarkRead(ctx, petugas, 42)
	assert.True(t, apperror.Is(err, apperror.KindNotFound))

	require.NoError(t, svc.Delete(ctx, admin, 1))
	_, err = repo.FindByID(ctx, 1)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
