package models

import "time"

// RevokedToken: jti token yang sudah logout, disimpan sampai token kedaluwarsa.
type RevokedToken struct {
	JTI       string    `gorm:"primaryKey;size:64"`
	ExpiresAt time.Time `gorm:"index;not null"`
	CreatedAt time.Time
}
