package kategori

import (
	"context"
	"strings"
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
	mu     sync.Mutex
	rows   map[uint]*models.Kategori
	barang map[uint]int64
	nextID uint
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{rows: map[uint]*models.Kategori{}, barang: map[uint]int64{}}
}

func (r *fakeRepo) List(context.Context) ([]models.Kategori, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]models.Kategori, 0, len(r.rows))
	for _, k := range r.rows {
		out = append(out, *k)
	}
	return out, nil
}

func (r *fakeRepo) FindByID(_ context.Context, id uint) (*models.Kategori, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	k, ok := r.rows[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *k
	return &cp, nil
}

func (r *fakeRepo) NameExists(_ context.Context, name string, excludeID uint) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, k := range r.rows {
		if id != excludeID && strings.EqualFold(k.NamaKategori, name) {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeRepo) Create(_ context.Context, k *models.Kategori) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	k.ID = r.nextID
	cp := *k
	r.rows[k.ID] = &cp
	return nil
}

func (r *fakeRepo) Save(_ context.Context, k *models.Kategori) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *k
	r.rows[k.ID] = &cp
	return nil
}

func (r *fakeRepo) CountBarang(_ context.Context, id uint) (int64, error) {
	return r.barang[id], nil
}

func (r *fakeRepo) Delete(_ context.Context, id uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.rows, id)
	return nil
}

var admin = identity.Principal{UserID: 1, Role: models.RoleAdminGudang}

func TestCreateRejectsDuplicateName(t *testing.T) {
	ctx := context.Background()
	svc := NewService(newFakeRepo(), nil)

	k, err := svc.Create(ctx, admin, CreateInput{NamaKategori: "  ATK  "})
	require.NoError(t, err)
	assert.Equal(t, "ATK", k.NamaKategori)

	_, err = svc.Create(ctx, admin, CreateInput{NamaKategori: "atk"})
	require.Error(t, err)
	assert.True(t, apperror.Is(err, apperror.KindValidation))
}

func TestUpdate(t *testing.T) {
	ctx := context.Background()
	svc := NewService(newFakeRepo(), nil)
	atk, _ := svc.Create(ctx, admin, CreateInput{NamaKategori: "ATK"})
	_, _ = svc.Create(ctx, admin, CreateInput{NamaKategori: "Elektronik"})

	nama := "Elektronik"
	_, err := svc.Update(ctx, admin, atk.ID, UpdateInput{NamaKategori: &nama})
	assert.True(t, apperror.Is(err, apperror.KindValidation))

	desk := "Alat tulis kantor"
	same := "ATK"
	k, err := svc.Update(ctx, admin, atk.ID, UpdateInput{NamaKategori: &same, Deskripsi: &desk})
	require.NoError(t, err)
	require.NotNil(t, k.Deskripsi)
	assert.Equal(t, desk, *k.Deskripsi)

	_, err = svc.Update(ctx, admin, 99, UpdateInput{})
	assert.True(t, apperror.Is(err, apperror.KindNotFound))
}

func TestDeleteRefusedWhileBarangExists(t *testing.T) {
	ctx := context.Background()
	repo := newFakeRepo()
	svc := NewService(repo, nil)
	k, _ := svc.Create(ctx, admin, CreateInput{NamaKategori: "ATK"})
	repo.barang[k.ID] = 2

	err := svc.Delete(ctx, admin, k.ID)
	assert.True(t, apperror.Is(err, apperror.KindInvalidState))
	assert.Equal(t, msgMasihDipakai, err.Error())

	repo.barang[k.ID] = 0
	require.NoError(t, svc.Delete(ctx, admin, k.ID))
	_, err = svc.Get(ctx, k.ID)
	assert.True(t, apperror.Is(err, apperror.KindNotFound))
}
