package kategori

import (
	"context"
	"errors"

	"gudang-backend/internal/database"
	"gudang-backend/internal/models"

	"gorm.io/gorm"
)

var (
	ErrNamaDipakai  = errors.New("nama kategori sudah digunakan")
	ErrMasihDipakai = errors.New("kategori masih dipakai barang")
)

type Repository interface {
	List(ctx context.Context) ([]models.Kategori, error)
	FindByID(ctx context.Context, id uint) (*models.Kategori, error)
	NameExists(ctx context.Context, name string, excludeID uint) (bool, error)
	Create(ctx context.Context, k *models.Kategori) error
	Save(ctx context.Context, k *models.Kategori) error
	CountBarang(ctx context.Context, id uint) (int64, error)
	Delete(ctx context.Context, id uint) error
}

type gormRepository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

func (r *gormRepository) List(ctx context.Context) ([]models.Kategori, error) {
	var list []models.Kategori
	err := r.db.WithContext(ctx).Order("nama_kategori asc").Find(&list).Error
	return list, err
}

func (r *gormRepository) FindByID(ctx context.Context, id uint) (*models.Kategori, error) {
	var k models.Kategori
	if err := r.db.WithContext(ctx).First(&k, id).Error; err != nil {
		return nil, err
	}
	return &k, nil
}

func (r *gormRepository) NameExists(ctx context.Context, name string, excludeID uint) (bool, error) {
	var count int64
	q := r.db.WithContext(ctx).Model(&models.Kategori{}).Where("LOWER(nama_kategori) = LOWER(?)", name)
	if excludeID != 0 {
		q = q.Where("id_kategori <> ?", excludeID)
	}
	err := q.Count(&count).Error
	return count > 0, err
}

func (r *gormRepository) Create(ctx context.Context, k *models.Kategori) error {
	err := r.db.WithContext(ctx).Create(k).Error
	if database.IsUniqueViolation(err) {
		return ErrNamaDipakai
	}
	return err
}

func (r *gormRepository) Save(ctx context.Context, k *models.Kategori) error {
	err := r.db.WithContext(ctx).Save(k).Error
	if database.IsUniqueViolation(err) {
		return ErrNamaDipakai
	}
	return err
}

func (r *gormRepository) CountBarang(ctx context.Context, id uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Barang{}).Where("id_kategori = ?", id).Count(&count).Error
	return count, err
}

func (r *gormRepository) Delete(ctx context.Context, id uint) error {
	err := r.db.WithContext(ctx).Delete(&models.Kategori{}, id).Error
	if database.IsForeignKeyViolation(err) {
		return ErrMasihDipakai
	}
	return err
}
