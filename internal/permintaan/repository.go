package permintaan

import (
	"context"
	"time"

	"gudang-backend/internal/barang"
	"gudang-backend/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Repository interface {
	// List mengembalikan semua permintaan bila userID nil.
	List(ctx context.Context, userID *uint) ([]models.PermintaanBarang, error)
	FindByID(ctx context.Context, id uint) (*models.PermintaanBarang, error)
	BarangExists(ctx context.Context, id uint) (bool, error)
	Create(ctx context.Context, p *models.PermintaanBarang) error
	Transaction(ctx context.Context, fn func(tx TxRepository) error) error
}

// TxRepository hanya valid di dalam Repository.Transaction.
type TxRepository interface {
	LockPermintaan(id uint) (*models.PermintaanBarang, error)
	LockBarang(id uint) (*models.Barang, error)
	// UpdateStatus mengembalikan models.ErrSudahDiproses bila status di
	// database sudah bukan from.
	UpdateStatus(id uint, from, to models.StatusPermintaan, adminID uint, at time.Time) error
	DecrementStok(barangID uint, qty int) error
}

type gormRepository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

func withRelations(db *gorm.DB) *gorm.DB {
	return db.Preload("User").Preload("Barang.Kategori")
}

func (r *gormRepository) List(ctx context.Context, userID *uint) ([]models.PermintaanBarang, error) {
	q := withRelations(r.db.WithContext(ctx))
	if userID != nil {
		q = q.Where("id_user = ?", *userID)
	}
	var list []models.PermintaanBarang
	err := q.Order("id_permintaan DESC").Find(&list).Error
	return list, err
}

func (r *gormRepository) FindByID(ctx context.Context, id uint) (*models.PermintaanBarang, error) {
	var p models.PermintaanBarang
	if err := withRelations(r.db.WithContext(ctx)).First(&p, id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *gormRepository) BarangExists(ctx context.Context, id uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Barang{}).Where("id_barang = ?", id).Count(&count).Error
	return count > 0, err
}

func (r *gormRepository) Create(ctx context.Context, p *models.PermintaanBarang) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(p).Error
}

func (r *gormRepository) Transaction(ctx context.Context, fn func(tx TxRepository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormTx{tx: tx})
	})
}

type gormTx struct {
	tx *gorm.DB
}

func (t *gormTx) LockPermintaan(id uint) (*models.PermintaanBarang, error) {
	var p models.PermintaanBarang
	err := t.tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id_permintaan = ?", id).
		First(&p).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (t *gormTx) LockBarang(id uint) (*models.Barang, error) {
	return barang.LockForUpdate(t.tx, id)
}

func (t *gormTx) UpdateStatus(id uint, from, to models.StatusPermintaan, adminID uint, at time.Time) error {
	res := t.tx.Model(&models.PermintaanBarang{}).
		Where("id_permintaan = ? AND status = ?", id, from).
		Updates(map[string]any{
			"status":        to,
			"diproses_oleh": adminID,
			"diproses_pada": at,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return models.ErrSudahDiproses
	}
	return nil
}

func (t *gormTx) DecrementStok(barangID uint, qty int) error {
	return barang.DecrementStok(t.tx, barangID, qty)
}
