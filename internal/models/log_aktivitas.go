package models

import "time"

type AksiLog string

const (
	AksiCreate   AksiLog = "create"
	AksiUpdate   AksiLog = "update"
	AksiDelete   AksiLog = "delete"
	AksiApprove  AksiLog = "approve"
	AksiReject   AksiLog = "reject"
	AksiLogin    AksiLog = "login"
	AksiLogout   AksiLog = "logout"
	AksiRegister AksiLog = "register"
)

// LogAktivitas adalah jejak audit append-only per user.
type LogAktivitas struct {
	ID     uint  `gorm:"primaryKey;column:id_log" json:"id_log"`
	UserID uint  `gorm:"column:id_user;index;not null" json:"id_user"`
	User   *User `gorm:"foreignKey:UserID" json:"user,omitempty"`

	Aksi AksiLog `gorm:"size:20;not null" json:"aksi"`

	// Entity yang disentuh, mis. "barang", "permintaan_barang", "transaksi"
	EntityType string `gorm:"size:50;index" json:"entity_type"`
	EntityID   uint   `gorm:"index" json:"entity_id"`

	Deskripsi string    `gorm:"size:255" json:"deskripsi"`
	Timestamp time.Time `gorm:"index;not null;autoCreateTime" json:"timestamp"`
}

func (LogAktivitas) TableName() string { return "logaktivitas" }
