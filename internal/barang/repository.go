package barang

import (
	"context"
	"errors"
	"strings"

	"gudang-backend/internal/database"
	"gudang-backend/internal/models"

	"gorm.io/gorm"
)

var ErrKodeDipakai = errors.New("kode barang sudah digunakan")

type Filter struct {
	Q          string
	KategoriID *uint
}

type Repository interface {
	List(ctx context.Context, f Filter) ([]models.Barang, error)
	FindByID(ctx context.Context, id uint) (*models.Barang, error)
	KodeExists(ctx context.Context, kode string, excludeID uint) (bool, error)
	KategoriExists(ctx context.Context, id uint) (bool, error)
	Create(ctx context.Context, b *models.Barang) error
	Save(ctx context.Context, b *models.Barang) error
	CountReferences(ctx context.Context, id uint) (int64, error)
	Delete(ctx context.Context, id uint) error
	// SetStok mengunci baris barang lalu menulis stok baru. Mengembalikan
	// barang sebelum perubahan.
	SetStok(ctx context.Context, id uint, stok int) (*models.Barang, error)
}

type gormRepository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

func (r *gormRepository) List(ctx context.Context, f Filter) ([]models.Barang, error) {
	q := r.db.WithContext(ctx).Preload("Kategori")
	if s := strings.TrimSpace(f.Q); s != "" {
		like := "%" + strings.ToLower(s) + "%"
		q = q.Where("LOWER(nama_barang) LIKE ? OR LOWER(kode_barang) LIKE ?", like, like)
	}
	if f.KategoriID != nil {
		q = q.Where("id_kategori = ?", *f.KategoriID)
	}

	var list []models.Barang
	err := q.Order("nama_barang asc").Find(&list).Error
	return list, err
}

func (r *gormRepository) FindByID(ctx context.Context, id uint) (*models.Barang, error) {
	var b models.Barang
	if err := r.db.WithContext(ctx).Preload("Kategori").First(&b, id).Error; err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *gormRepository) KodeExists(ctx context.Context, kode string, excludeID uint) (bool, error) {
	var count int64
	q := r.db.WithContext(ctx).Model(&models.Barang{}).Where("kode_barang = ?", kode)
	if excludeID != 0 {
		q = q.Where("id_barang <> ?", excludeID)
	}
	err := q.Count(&count).Error
	return count > 0, err
}

func (r *gormRepository) KategoriExists(ctx context.Context, id uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Kategori{}).Where("id_kategori = ?", id).Count(&count).Error
	return count > 0, err
}

func (r *gormRepository) Create(ctx context.Context, b *models.Barang) error {
	err := r.db.WithContext(ctx).Omit("Kategori").Create(b).Error
	if database.IsUniqueViolation(err) {
		return ErrKodeDipakai
	}
	return err
}

func (r *gormRepository) Save(ctx context.Context, b *models.Barang) error {
	// stok tidak ikut disimpan di sini, perubahan stok lewat SetStok/transaksi
	err := r.db.WithContext(ctx).Model(b).Omit("Kategori", "stok").Select("*").Updates(b).Error
	if database.IsUniqueViolation(err) {
		return ErrKodeDipakai
	}
	return err
}

func (r *gormRepository) CountReferences(ctx context.Context, id uint) (int64, error) {
	var trx, req int64
	if err := r.db.WithContext(ctx).Model(&models.Transaksi{}).Where("id_barang = ?", id).Count(&trx).Error; err != nil {
		return 0, err
	}
	if err := r.db.WithContext(ctx).Model(&models.PermintaanBarang{}).Where("id_barang = ?", id).Count(&req).Error; err != nil {
		return 0, err
	}
	return trx + req, nil
}

func (r *gormRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Barang{}, id).Error
}

func (r *gormRepository) SetStok(ctx context.Context, id uint, stok int) (*models.Barang, error) {
	var before *models.Barang
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		b, err := LockForUpdate(tx, id)
		if err != nil {
			return err
		}
		before = b
		return SetStok(tx, id, stok)
	})
	return before, err
}
