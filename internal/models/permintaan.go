package models

import (
	"errors"
	"time"
)

type StatusPermintaan string

const (
	StatusMenunggu  StatusPermintaan = "Menunggu Persetujuan"
	StatusDisetujui StatusPermintaan = "Disetujui"
	StatusDitolak   StatusPermintaan = "Ditolak"
)

var ErrSudahDiproses = errors.New("permintaan sudah diproses")

func (s StatusPermintaan) Valid() bool {
	switch s {
	case StatusMenunggu, StatusDisetujui, StatusDitolak:
		return true
	}
	return false
}

func (s StatusPermintaan) IsFinal() bool {
	return s == StatusDisetujui || s == StatusDitolak
}

// Transition memeriksa perpindahan status. Hanya Menunggu Persetujuan yang
// boleh berpindah, dan hanya ke salah satu status final.
func (s StatusPermintaan) Transition(to StatusPermintaan) error {
	if s != StatusMenunggu {
		return ErrSudahDiproses
	}
	if !to.IsFinal() {
		return errors.New("status tujuan tidak valid")
	}
	return nil
}

type PermintaanBarang struct {
	ID            uint             `gorm:"primaryKey;column:id_permintaan" json:"id_permintaan"`
	UserID        uint             `gorm:"column:id_user;index;not null" json:"id_user"`
	User          *User            `gorm:"foreignKey:UserID" json:"user,omitempty"`
	BarangID      uint             `gorm:"column:id_barang;index;not null" json:"id_barang"`
	Barang        *Barang          `gorm:"foreignKey:BarangID" json:"barang,omitempty"`
	JumlahDiminta int              `gorm:"not null;check:chk_permintaan_jumlah,jumlah_diminta > 0" json:"jumlah_diminta"`
	Status        StatusPermintaan `gorm:"size:30;not null;index" json:"status"`
	DiprosesOleh  *uint            `gorm:"column:diproses_oleh" json:"diproses_oleh"`
	DiprosesPada  *time.Time       `json:"diproses_pada"`
	CreatedAt     time.Time        `json:"created_at"`
	UpdatedAt     time.Time        `json:"updated_at"`
}

func (PermintaanBarang) TableName() string { return "permintaan_barang" }
