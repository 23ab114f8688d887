package dashboard

import (
	"context"
	"time"

	"gudang-backend/internal/models"

	"gorm.io/gorm"
)

// MovementRow adalah total jumlah barang per bucket waktu dan jenis transaksi.
type MovementRow struct {
	Bucket time.Time             `gorm:"column:bucket"`
	Jenis  models.JenisTransaksi `gorm:"column:jenis"`
	Total  int                   `gorm:"column:total"`
}

type Counts struct {
	JumlahBarang       int64 `json:"jumlah_barang"`
	DiBawahMinimum     int64 `json:"di_bawah_minimum"`
	PermintaanMenunggu int64 `json:"permintaan_menunggu"`
}

type Repository interface {
	// Movements mengelompokkan transaksi di [from, to] per unit date_trunc
	// ("day", "week", atau "month").
	Movements(ctx context.Context, unit string, from, to time.Time) ([]MovementRow, error)
	Counts(ctx context.Context) (*Counts, error)
}

type gormRepository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

func (r *gormRepository) Movements(ctx context.Context, unit string, from, to time.Time) ([]MovementRow, error) {
	var rows []MovementRow
	err := r.db.WithContext(ctx).Raw(`
		SELECT date_trunc(?::text, tanggal::timestamp)::date AS bucket,
			   jenis_transaksi AS jenis,
			   SUM(jumlah) AS total
		FROM transaksi
		WHERE tanggal >= ? AND tanggal <= ?
		GROUP BY bucket, jenis
		ORDER BY bucket ASC`, unit, from, to).Scan(&rows).Error
	return rows, err
}

func (r *gormRepository) Counts(ctx context.Context) (*Counts, error) {
	var out Counts
	db := r.db.WithContext(ctx)
	if err := db.Model(&models.Barang{}).Count(&out.JumlahBarang).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&models.Barang{}).Where("stok < stok_minimum").Count(&out.DiBawahMinimum).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&models.PermintaanBarang{}).
		Where("status = ?", models.StatusMenunggu).
		Count(&out.PermintaanMenunggu).Error; err != nil {
		return nil, err
	}
	return &out, nil
}
