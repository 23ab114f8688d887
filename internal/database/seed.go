package database

import (
	"errors"
	"log"

	"gudang-backend/internal/config"
	"gudang-backend/internal/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// SeedAdmin membuat akun AdminGudang pertama bila ADMIN_USERNAME di-set dan
// username tersebut belum ada.
func SeedAdmin(db *gorm.DB, cfg *config.Config) error {
	if cfg.AdminUsername == "" {
		return nil
	}

	var existing models.User
	err := db.Where("username = ?", cfg.AdminUsername).First(&existing).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	admin := models.User{
		Username:     cfg.AdminUsername,
		PasswordHash: string(hash),
		NamaLengkap:  "Administrator Gudang",
		Role:         models.RoleAdminGudang,
		IsAktif:      true,
	}
	if err := db.Create(&admin).Error; err != nil {
		return err
	}
	log.Printf("Akun admin %q dibuat", admin.Username)
	return nil
}
