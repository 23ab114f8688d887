package audit

import (
	"context"
	"log"

	"gudang-backend/internal/models"

	"gorm.io/gorm"
)

// Entry adalah satu baris log aktivitas yang akan ditulis.
type Entry struct {
	UserID     uint
	Aksi       models.AksiLog
	EntityType string
	EntityID   uint
	Deskripsi  string
}

// Recorder menulis log aktivitas. Kegagalan menulis log tidak boleh
// menggagalkan operasi utama, jadi Record tidak mengembalikan error.
type Recorder interface {
	Record(ctx context.Context, e Entry)
}

type discard struct{}

func (discard) Record(context.Context, Entry) {}

// Discard membuang semua entry.
var Discard Recorder = discard{}

// Store adalah implementasi gorm untuk Recorder dan Repository.
type Store struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

func (s *Store) Record(ctx context.Context, e Entry) {
	row := models.LogAktivitas{
		UserID:     e.UserID,
		Aksi:       e.Aksi,
		EntityType: e.EntityType,
		EntityID:   e.EntityID,
		Deskripsi:  truncate(e.Deskripsi, 255),
	}
	if err := s.db.WithContext(ctx).Create(&row).Error; err != nil {
		log.Printf("[WARN] log aktivitas gagal disimpan (user=%d aksi=%s %s#%d): %v",
			e.UserID, e.Aksi, e.EntityType, e.EntityID, err)
	}
}

func (s *Store) ListAll(ctx context.Context) ([]models.LogAktivitas, error) {
	var logs []models.LogAktivitas
	err := s.db.WithContext(ctx).
		Preload("User").
		Order("timestamp DESC, id_log DESC").
		Find(&logs).Error
	return logs, err
}

func (s *Store) ListByUser(ctx context.Context, userID uint) ([]models.LogAktivitas, error) {
	var logs []models.LogAktivitas
	err := s.db.WithContext(ctx).
		Preload("User").
		Where("id_user = ?", userID).
		Order("timestamp DESC, id_log DESC").
		Find(&logs).Error
	return logs, err
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
