package models

import "time"

type JenisLaporan string

const (
	LaporanStok       JenisLaporan = "STOK"
	LaporanTransaksi  JenisLaporan = "TRANSAKSI"
	LaporanPermintaan JenisLaporan = "PERMINTAAN"
)

func (j JenisLaporan) Valid() bool {
	switch j {
	case LaporanStok, LaporanTransaksi, LaporanPermintaan:
		return true
	}
	return false
}

type Laporan struct {
	ID           uint         `gorm:"primaryKey;column:id_laporan" json:"id_laporan"`
	JenisLaporan JenisLaporan `gorm:"size:20;not null;index" json:"jenis_laporan"`
	PeriodeAwal  time.Time    `gorm:"type:date;not null" json:"periode_awal"`
	PeriodeAkhir time.Time    `gorm:"type:date;not null" json:"periode_akhir"`
	Keterangan   *string      `gorm:"type:text" json:"keterangan"`
	UserID       uint         `gorm:"column:id_user;index;not null" json:"id_user"`
	User         *User        `gorm:"foreignKey:UserID" json:"user,omitempty"`
	CreatedAt    time.Time    `json:"created_at"`
}

func (Laporan) TableName() string { return "laporan" }
