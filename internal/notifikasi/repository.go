package notifikasi

import (
	"context"

	"gudang-backend/internal/models"

	"gorm.io/gorm"
)

type Repository interface {
	Create(ctx context.Context, rows ...*models.Notifikasi) error
	ListByUser(ctx context.Context, userID uint) ([]models.Notifikasi, error)
	FindByID(ctx context.Context, id uint) (*models.Notifikasi, error)
	MarkRead(ctx context.Context, id uint) error
	Delete(ctx context.Context, id uint) error
	UserExists(ctx context.Context, userID uint) (bool, error)
	ActiveUserIDsByRole(ctx context.Context, role models.Role) ([]uint, error)
}

type gormRepository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

func (r *gormRepository) Create(ctx context.Context, rows ...*models.Notifikasi) error {
	if len(rows) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(rows).Error
}

func (r *gormRepository) ListByUser(ctx context.Context, userID uint) ([]models.Notifikasi, error) {
	var list []models.Notifikasi
	err := r.db.WithContext(ctx).
		Where("id_user = ?", userID).
		Order("created_at DESC, id_notifikasi DESC").
		Find(&list).Error
	return list, err
}

func (r *gormRepository) FindByID(ctx context.Context, id uint) (*models.Notifikasi, error) {
	var n models.Notifikasi
	if err := r.db.WithContext(ctx).First(&n, id).Error; err != nil {
		return nil, err
	}
	return &n, nil
}

func (r *gormRepository) MarkRead(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Model(&models.Notifikasi{}).
		Where("id_notifikasi = ?", id).
		Update("dibaca", true).Error
}

func (r *gormRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Notifikasi{}, id).Error
}

func (r *gormRepository) UserExists(ctx context.Context, userID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.User{}).Where("id_user = ?", userID).Count(&count).Error
	return count > 0, err
}

func (r *gormRepository) ActiveUserIDsByRole(ctx context.Context, role models.Role) ([]uint, error) {
	var ids []uint
	err := r.db.WithContext(ctx).Model(&models.User{}).
		Where("role = ? AND is_aktif = ?", role, true).
		Pluck("id_user", &ids).Error
	return ids, err
}
