package database

import (
	"log"
	"os"
	"time"

	"gudang-backend/internal/config"
	"gudang-backend/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Init membuka koneksi Postgres dan menjalankan migrasi. Gagal koneksi atau
// migrasi menghentikan proses.
func Init(cfg *config.Config) *gorm.DB {
	level := logger.Warn
	if cfg.IsLocal() {
		level = logger.Info
	}

	db, err := gorm.Open(postgres.Open(cfg.DatabaseDSN), &gorm.Config{
		Logger: logger.New(
			log.New(os.Stdout, "[GORM] ", log.LstdFlags),
			logger.Config{
				SlowThreshold:             200 * time.Millisecond,
				LogLevel:                  level,
				IgnoreRecordNotFoundError: true,
				Colorful:                  false,
			},
		),
	})
	if err != nil {
		log.Fatalf("Gagal terhubung ke database: %v", err)
	}

	if err := Migrate(db); err != nil {
		log.Fatalf("AutoMigrate gagal: %v", err)
	}

	log.Println("Koneksi database berhasil. Migrasi selesai.")
	return db
}

func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&models.User{},
		&models.Kategori{},
		&models.Barang{},
		&models.PermintaanBarang{},
		&models.Transaksi{},
		&models.TransaksiMasuk{},
		&models.TransaksiKeluar{},
		&models.LogAktivitas{},
		&models.Notifikasi{},
		&models.Laporan{},
		&models.RevokedToken{},
	)
	if err != nil {
		return err
	}

	// AutoMigrate hanya membuat check constraint saat tabel baru dibuat.
	// Tabel barang lama perlu ditambah manual supaya stok tidak bisa negatif.
	checks := []struct {
		model any
		name  string
	}{
		{&models.Barang{}, "chk_barang_stok"},
		{&models.PermintaanBarang{}, "chk_permintaan_jumlah"},
		{&models.Transaksi{}, "chk_transaksi_jumlah"},
	}
	for _, c := range checks {
		if db.Migrator().HasConstraint(c.model, c.name) {
			continue
		}
		log.Printf("Menambahkan constraint %s...", c.name)
		if err := db.Migrator().CreateConstraint(c.model, c.name); err != nil {
			log.Printf("Constraint %s gagal ditambahkan: %v", c.name, err)
		}
	}
	return nil
}
