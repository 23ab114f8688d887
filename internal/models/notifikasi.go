package models

import "time"

type Notifikasi struct {
	ID        uint      `gorm:"primaryKey;column:id_notifikasi" json:"id_notifikasi"`
	UserID    uint      `gorm:"column:id_user;index;not null" json:"id_user"`
	Judul     string    `gorm:"size:150;not null" json:"judul"`
	Pesan     string    `gorm:"type:text;not null" json:"pesan"`
	Dibaca    bool      `gorm:"not null;default:false" json:"dibaca"`
	CreatedAt time.Time `json:"created_at"`
}

func (Notifikasi) TableName() string { return "notifikasi" }
