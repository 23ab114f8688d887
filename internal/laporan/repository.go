package laporan

import (
	"context"
	"time"

	"gudang-backend/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Repository interface {
	List(ctx context.Context) ([]models.Laporan, error)
	FindByID(ctx context.Context, id uint) (*models.Laporan, error)
	Create(ctx context.Context, l *models.Laporan) error

	StokBarang(ctx context.Context) ([]models.Barang, error)
	// Transaksi mengembalikan transaksi dengan tanggal di [from, to].
	Transaksi(ctx context.Context, from, to time.Time) ([]models.Transaksi, error)
	// Permintaan mengembalikan permintaan yang dibuat di [from, to+1 hari).
	Permintaan(ctx context.Context, from, to time.Time) ([]models.PermintaanBarang, error)
}

type gormRepository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

func (r *gormRepository) List(ctx context.Context) ([]models.Laporan, error) {
	var list []models.Laporan
	err := r.db.WithContext(ctx).Preload("User").Order("created_at DESC, id_laporan DESC").Find(&list).Error
	return list, err
}

func (r *gormRepository) FindByID(ctx context.Context, id uint) (*models.Laporan, error) {
	var l models.Laporan
	if err := r.db.WithContext(ctx).Preload("User").First(&l, id).Error; err != nil {
		return nil, err
	}
	return &l, nil
}

func (r *gormRepository) Create(ctx context.Context, l *models.Laporan) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(l).Error
}

func (r *gormRepository) StokBarang(ctx context.Context) ([]models.Barang, error) {
	var list []models.Barang
	err := r.db.WithContext(ctx).Preload("Kategori").Order("kode_barang asc").Find(&list).Error
	return list, err
}

func (r *gormRepository) Transaksi(ctx context.Context, from, to time.Time) ([]models.Transaksi, error) {
	var list []models.Transaksi
	err := r.db.WithContext(ctx).
		Preload("User").
		Preload("Barang").
		Preload("TransaksiMasuk").
		Preload("TransaksiKeluar").
		Where("tanggal BETWEEN ? AND ?", from, to).
		Order("tanggal asc, id_transaksi asc").
		Find(&list).Error
	return list, err
}

func (r *gormRepository) Permintaan(ctx context.Context, from, to time.Time) ([]models.PermintaanBarang, error) {
	var list []models.PermintaanBarang
	err := r.db.WithContext(ctx).
		Preload("User").
		Preload("Barang").
		Where("created_at >= ? AND created_at < ?", from, to.AddDate(0, 0, 1)).
		Order("created_at asc, id_permintaan asc").
		Find(&list).Error
	return list, err
}
