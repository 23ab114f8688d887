package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Barang struct {
	ID          uint            `gorm:"primaryKey;column:id_barang" json:"id_barang"`
	KodeBarang  string          `gorm:"size:50;uniqueIndex;not null" json:"kode_barang"`
	NamaBarang  string          `gorm:"size:255;not null" json:"nama_barang"`
	KategoriID  uint            `gorm:"column:id_kategori;index;not null" json:"id_kategori"`
	Kategori    *Kategori       `gorm:"foreignKey:KategoriID;constraint:OnDelete:RESTRICT" json:"kategori,omitempty"`
	Satuan      string          `gorm:"size:20;not null" json:"satuan"`
	Stok        int             `gorm:"not null;default:0;check:chk_barang_stok,stok >= 0" json:"stok"`
	StokMinimum int             `gorm:"not null;default:0" json:"stok_minimum"`
	HargaSatuan decimal.Decimal `gorm:"type:numeric(14,2);not null;default:0" json:"harga_satuan"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

func (Barang) TableName() string { return "barang" }

func (b *Barang) DiBawahMinimum() bool {
	return b.Stok < b.StokMinimum
}

// NilaiStok = stok x harga satuan.
func (b *Barang) NilaiStok() decimal.Decimal {
	return b.HargaSatuan.Mul(decimal.NewFromInt(int64(b.Stok)))
}
