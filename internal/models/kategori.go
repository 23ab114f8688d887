package models

import "time"

type Kategori struct {
	ID           uint      `gorm:"primaryKey;column:id_kategori" json:"id_kategori"`
	NamaKategori string    `gorm:"size:100;uniqueIndex;not null" json:"nama_kategori"`
	Deskripsi    *string   `gorm:"type:text" json:"deskripsi"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (Kategori) TableName() string { return "kategori" }
