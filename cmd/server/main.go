package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"gudang-backend/internal/audit"
	"gudang-backend/internal/auth"
	"gudang-backend/internal/barang"
	"gudang-backend/internal/config"
	"gudang-backend/internal/dashboard"
	"gudang-backend/internal/database"
	"gudang-backend/internal/kategori"
	"gudang-backend/internal/laporan"
	"gudang-backend/internal/notifikasi"
	"gudang-backend/internal/permintaan"
	"gudang-backend/internal/server"
	"gudang-backend/internal/telemetry"
	"gudang-backend/internal/transaksi"
)

func main() {
	cfg := config.Load()

	shutdownTracing, err := telemetry.Init(context.Background(), cfg)
	if err != nil {
		log.Fatalf("[FATAL] Gagal menyiapkan tracing: %v", err)
	}

	db := database.Init(cfg)
	if err := database.SeedAdmin(db, cfg); err != nil {
		log.Fatalf("[FATAL] Gagal membuat admin awal: %v", err)
	}

	logs := audit.NewStore(db)
	notif := notifikasi.NewService(notifikasi.NewRepository(db))
	tokens := auth.NewTokenIssuer(cfg.JWTSecret, cfg.TokenTTL())

	app := server.New(cfg, server.Services{
		Auth:       auth.NewService(auth.NewRepository(db), tokens, logs),
		Audit:      audit.NewService(logs),
		Notifikasi: notif,
		Kategori:   kategori.NewService(kategori.NewRepository(db), logs),
		Barang:     barang.NewService(barang.NewRepository(db), logs, notif),
		Permintaan: permintaan.NewService(permintaan.NewRepository(db), logs, notif),
		Transaksi:  transaksi.NewService(transaksi.NewRepository(db), logs, notif),
		Laporan:    laporan.NewService(laporan.NewRepository(db), logs),
		Dashboard:  dashboard.NewService(dashboard.NewRepository(db)),
	})

	go func() {
		if err := app.Listen(":" + cfg.HTTPPort); err != nil {
			log.Fatalf("[FATAL] Server berhenti: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	log.Println("[INFO] Mematikan server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := app.ShutdownWithContext(ctx); err != nil {
		log.Printf("[WARN] Shutdown server: %v", err)
	}
	if err := shutdownTracing(ctx); err != nil {
		log.Printf("[WARN] Shutdown tracing: %v", err)
	}
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}
