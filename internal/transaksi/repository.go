package transaksi

import (
	"context"

	"gudang-backend/internal/barang"
	"gudang-backend/internal/models"

	"gorm.io/gorm"
)

type Repository interface {
	List(ctx context.Context, jenis models.JenisTransaksi) ([]models.Transaksi, error)
	FindByID(ctx context.Context, id uint) (*models.Transaksi, error)
	BarangExists(ctx context.Context, id uint) (bool, error)
	Transaction(ctx context.Context, fn func(tx TxRepository) error) error
}

// TxRepository hanya valid di dalam Repository.Transaction.
type TxRepository interface {
	LockBarang(id uint) (*models.Barang, error)
	// Create menyimpan header beserta baris detail masuk/keluar.
	Create(t *models.Transaksi) error
	DecrementStok(barangID uint, qty int) error
	IncrementStok(barangID uint, qty int) error
}

type gormRepository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

func withRelations(db *gorm.DB) *gorm.DB {
	return db.Preload("User").
		Preload("Barang.Kategori").
		Preload("TransaksiMasuk").
		Preload("TransaksiKeluar")
}

func (r *gormRepository) List(ctx context.Context, jenis models.JenisTransaksi) ([]models.Transaksi, error) {
	var list []models.Transaksi
	err := withRelations(r.db.WithContext(ctx)).
		Where("jenis_transaksi = ?", jenis).
		Order("tanggal DESC, id_transaksi DESC").
		Find(&list).Error
	return list, err
}

func (r *gormRepository) FindByID(ctx context.Context, id uint) (*models.Transaksi, error) {
	var t models.Transaksi
	if err := withRelations(r.db.WithContext(ctx)).First(&t, id).Error; err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *gormRepository) BarangExists(ctx context.Context, id uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Barang{}).Where("id_barang = ?", id).Count(&count).Error
	return count > 0, err
}

func (r *gormRepository) Transaction(ctx context.Context, fn func(tx TxRepository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormTx{tx: tx})
	})
}

type gormTx struct {
	tx *gorm.DB
}

func (t *gormTx) LockBarang(id uint) (*models.Barang, error) {
	return barang.LockForUpdate(t.tx, id)
}

func (t *gormTx) Create(trx *models.Transaksi) error {
	// User dan Barang sudah ada, hanya detail masuk/keluar yang ikut dibuat
	return t.tx.Omit("User", "Barang").Create(trx).Error
}

func (t *gormTx) DecrementStok(barangID uint, qty int) error {
	return barang.DecrementStok(t.tx, barangID, qty)
}

func (t *gormTx) IncrementStok(barangID uint, qty int) error {
	return barang.IncrementStok(t.tx, barangID, qty)
}
