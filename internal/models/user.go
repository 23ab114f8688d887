package models

import "time"

type Role string

const (
	RoleAdminGudang        Role = "AdminGudang"
	RolePetugasOperasional Role = "PetugasOperasional"
	RoleKepalaDivisi       Role = "KepalaDivisi"
)

var Roles = []Role{RoleAdminGudang, RolePetugasOperasional, RoleKepalaDivisi}

func (r Role) Valid() bool {
	for _, v := range Roles {
		if r == v {
			return true
		}
	}
	return false
}

func (r Role) IsAdmin() bool {
	return r == RoleAdminGudang
}

type User struct {
	ID           uint      `gorm:"primaryKey;column:id_user" json:"id_user"`
	Username     string    `gorm:"size:50;uniqueIndex;not null" json:"username"`
	PasswordHash string    `gorm:"column:password;size:255;not null" json:"-"`
	NamaLengkap  string    `gorm:"size:255;not null" json:"nama_lengkap"`
	Role         Role      `gorm:"size:30;not null" json:"role"`
	Divisi       *string   `gorm:"size:100" json:"divisi"`
	IsAktif      bool      `gorm:"not null;default:true" json:"is_aktif"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (User) TableName() string { return "users" }

// UserPublic adalah bentuk user yang aman dikirim ke klien.
type UserPublic struct {
	ID          uint    `json:"id_user"`
	Username    string  `json:"username"`
	NamaLengkap string  `json:"nama_lengkap"`
	Role        Role    `json:"role"`
	Divisi      *string `json:"divisi"`
}

func (u *User) Public() UserPublic {
	return UserPublic{
		ID:          u.ID,
		Username:    u.Username,
		NamaLengkap: u.NamaLengkap,
		Role:        u.Role,
		Divisi:      u.Divisi,
	}
}
