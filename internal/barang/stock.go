package barang

import (
	"errors"

	"gudang-backend/internal/database"
	"gudang-backend/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrStokTidakCukup dikembalikan DecrementStok bila guard stok >= jumlah gagal.
var ErrStokTidakCukup = errors.New("stok tidak mencukupi")

// Helper di bawah dipakai di dalam transaksi oleh paket permintaan dan
// transaksi. tx harus berasal dari db.Transaction.

// LockForUpdate membaca barang dengan SELECT ... FOR UPDATE.
func LockForUpdate(tx *gorm.DB, id uint) (*models.Barang, error) {
	var b models.Barang
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id_barang = ?", id).
		First(&b).Error
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func DecrementStok(tx *gorm.DB, id uint, qty int) error {
	res := tx.Model(&models.Barang{}).
		Where("id_barang = ? AND stok >= ?", id, qty).
		Update("stok", gorm.Expr("stok - ?", qty))
	if res.Error != nil {
		if database.IsCheckViolation(res.Error) {
			return ErrStokTidakCukup
		}
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrStokTidakCukup
	}
	return nil
}

func IncrementStok(tx *gorm.DB, id uint, qty int) error {
	res := tx.Model(&models.Barang{}).
		Where("id_barang = ?", id).
		Update("stok", gorm.Expr("stok + ?", qty))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func SetStok(tx *gorm.DB, id uint, stok int) error {
	return tx.Model(&models.Barang{}).
		Where("id_barang = ?", id).
		Update("stok", stok).Error
}
