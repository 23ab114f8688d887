package models

import "time"

type JenisTransaksi string

const (
	JenisMasuk  JenisTransaksi = "MASUK"
	JenisKeluar JenisTransaksi = "KELUAR"
)

func (j JenisTransaksi) Valid() bool {
	return j == JenisMasuk || j == JenisKeluar
}

// Transaksi adalah catatan pergerakan stok. Tidak pernah diubah atau dihapus.
type Transaksi struct {
	ID              uint             `gorm:"primaryKey;column:id_transaksi" json:"id_transaksi"`
	UserID          uint             `gorm:"column:id_user;index;not null" json:"id_user"`
	User            *User            `gorm:"foreignKey:UserID" json:"user,omitempty"`
	BarangID        uint             `gorm:"column:id_barang;index;not null" json:"id_barang"`
	Barang          *Barang          `gorm:"foreignKey:BarangID" json:"barang,omitempty"`
	JenisTransaksi  JenisTransaksi   `gorm:"size:10;not null;index" json:"jenis_transaksi"`
	Tanggal         time.Time        `gorm:"type:date;not null;index" json:"tanggal"`
	Jumlah          int              `gorm:"not null;check:chk_transaksi_jumlah,jumlah > 0" json:"jumlah"`
	TransaksiMasuk  *TransaksiMasuk  `gorm:"foreignKey:TransaksiID" json:"transaksi_masuk,omitempty"`
	TransaksiKeluar *TransaksiKeluar `gorm:"foreignKey:TransaksiID" json:"transaksi_keluar,omitempty"`
	CreatedAt       time.Time        `json:"created_at"`
}

func (Transaksi) TableName() string { return "transaksi" }

type TransaksiMasuk struct {
	ID          uint    `gorm:"primaryKey;column:id_transaksi_masuk" json:"id_transaksi_masuk"`
	TransaksiID uint    `gorm:"column:id_transaksi;uniqueIndex;not null" json:"id_transaksi"`
	Sumber      *string `gorm:"size:100" json:"sumber"`
	Keterangan  *string `gorm:"type:text" json:"keterangan"`
}

func (TransaksiMasuk) TableName() string { return "transaksi_masuk" }

type TransaksiKeluar struct {
	ID          uint    `gorm:"primaryKey;column:id_transaksi_keluar" json:"id_transaksi_keluar"`
	TransaksiID uint    `gorm:"column:id_transaksi;uniqueIndex;not null" json:"id_transaksi"`
	Tujuan      *string `gorm:"size:100" json:"tujuan"`
}

func (TransaksiKeluar) TableName() string { return "transaksi_keluar" }
