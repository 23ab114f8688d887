package transaksi

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gudang-backend/internal/apperror"
	"gudang-backend/internal/audit"
	"gudang-backend/internal/barang"
	"gudang-backend/internal/identity"
	"gudang-backend/internal/models"
	"gudang-backend/internal/telemetry"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"gorm.io/gorm"
)

const (
	dateLayout    = "2006-01-02"
	msgStokKurang = "Stok tidak mencukupi. Stok tersedia: %d"
)

var tracer = otel.Tracer("gudang-backend/transaksi")

// Notifier dipenuhi oleh notifikasi.Service.
type Notifier interface {
	NotifyRole(ctx context.Context, role models.Role, judul, pesan string)
}

type Service struct {
	repo     Repository
	audit    audit.Recorder
	notifier Notifier
}

func NewService(repo Repository, rec audit.Recorder, n Notifier) *Service {
	if rec == nil {
		rec = audit.Discard
	}
	return &Service{repo: repo, audit: rec, notifier: n}
}

type KeluarInput struct {
	BarangID uint    `json:"id_barang" validate:"required"`
	Tanggal  string  `json:"tanggal" validate:"required,datetime=2006-01-02"`
	Jumlah   int     `json:"jumlah" validate:"required,min=1"`
	Tujuan   *string `json:"tujuan" validate:"omitempty,max=100"`
}

type MasukInput struct {
	BarangID   uint    `json:"id_barang" validate:"required"`
	Tanggal    string  `json:"tanggal" validate:"required,datetime=2006-01-02"`
	Jumlah     int     `json:"jumlah" validate:"required,min=1"`
	Sumber     *string `json:"sumber" validate:"omitempty,max=100"`
	Keterangan *string `json:"keterangan"`
}

func (s *Service) List(ctx context.Context, jenis models.JenisTransaksi) ([]models.Transaksi, error) {
	list, err := s.repo.List(ctx, jenis)
	if err != nil {
		return nil, apperror.Internal(fmt.Sprintf("Gagal mengambil data transaksi %s", strings.ToLower(string(jenis))), err)
	}
	return list, nil
}

// CreateKeluar mencatat barang keluar: header, detail, dan pengurangan stok
// dalam satu transaksi database dengan baris barang terkunci.
func (s *Service) CreateKeluar(ctx context.Context, p identity.Principal, in KeluarInput) (_ *models.Transaksi, err error) {
	ctx, span := tracer.Start(ctx, "transaksi.keluar")
	span.SetAttributes(attribute.Int64("barang.id", int64(in.BarangID)), attribute.Int("jumlah", in.Jumlah))
	defer func() { telemetry.End(span, err) }()

	if err := s.AuthorizeKeluar(p); err != nil {
		return nil, err
	}
	tanggal, err := s.validate(ctx, in.BarangID, in.Tanggal)
	if err != nil {
		return nil, err
	}

	trx := &models.Transaksi{
		UserID:          p.UserID,
		BarangID:        in.BarangID,
		JenisTransaksi:  models.JenisKeluar,
		Tanggal:         tanggal,
		Jumlah:          in.Jumlah,
		TransaksiKeluar: &models.TransaksiKeluar{Tujuan: trimOptional(in.Tujuan)},
	}

	var sisa *models.Barang
	err = s.repo.Transaction(ctx, func(tx TxRepository) error {
		b, err := tx.LockBarang(in.BarangID)
		if err != nil {
			return err
		}
		if b.Stok < in.Jumlah {
			return apperror.InvalidState(fmt.Sprintf(msgStokKurang, b.Stok))
		}
		if err := tx.Create(trx); err != nil {
			return err
		}
		if err := tx.DecrementStok(in.BarangID, in.Jumlah); err != nil {
			if errors.Is(err, barang.ErrStokTidakCukup) {
				return apperror.InvalidState(fmt.Sprintf(msgStokKurang, b.Stok))
			}
			return err
		}
		b.Stok -= in.Jumlah
		sisa = b
		return nil
	})
	if err != nil {
		return nil, mapTxError(err, "Gagal mencatat transaksi keluar")
	}

	full, err := s.find(ctx, trx.ID)
	if err != nil {
		return nil, err
	}
	s.record(ctx, p, full, "keluar")
	if sisa.DiBawahMinimum() && s.notifier != nil {
		s.notifier.NotifyRole(ctx, models.RoleAdminGudang,
			"Stok Barang Menipis",
			fmt.Sprintf("Stok %s tersisa %d %s setelah transaksi keluar, di bawah stok minimum %d.",
				sisa.NamaBarang, sisa.Stok, sisa.Satuan, sisa.StokMinimum))
	}
	return full, nil
}

func (s *Service) CreateMasuk(ctx context.Context, p identity.Principal, in MasukInput) (_ *models.Transaksi, err error) {
	ctx, span := tracer.Start(ctx, "transaksi.masuk")
	span.SetAttributes(attribute.Int64("barang.id", int64(in.BarangID)), attribute.Int("jumlah", in.Jumlah))
	defer func() { telemetry.End(span, err) }()

	if err := s.AuthorizeMasuk(p); err != nil {
		return nil, err
	}
	tanggal, err := s.validate(ctx, in.BarangID, in.Tanggal)
	if err != nil {
		return nil, err
	}

	trx := &models.Transaksi{
		UserID:         p.UserID,
		BarangID:       in.BarangID,
		JenisTransaksi: models.JenisMasuk,
		Tanggal:        tanggal,
		Jumlah:         in.Jumlah,
		TransaksiMasuk: &models.TransaksiMasuk{
			Sumber:     trimOptional(in.Sumber),
			Keterangan: trimOptional(in.Keterangan),
		},
	}

	err = s.repo.Transaction(ctx, func(tx TxRepository) error {
		if _, err := tx.LockBarang(in.BarangID); err != nil {
			return err
		}
		if err := tx.Create(trx); err != nil {
			return err
		}
		return tx.IncrementStok(in.BarangID, in.Jumlah)
	})
	if err != nil {
		return nil, mapTxError(err, "Gagal mencatat transaksi masuk")
	}

	full, err := s.find(ctx, trx.ID)
	if err != nil {
		return nil, err
	}
	s.record(ctx, p, full, "masuk")
	return full, nil
}

// AuthorizeKeluar dan AuthorizeMasuk dipanggil handler sebelum body divalidasi.
func (s *Service) AuthorizeKeluar(p identity.Principal) error {
	if !p.IsAdmin() {
		return apperror.Forbidden("Hanya Admin Gudang yang dapat mencatat transaksi keluar")
	}
	return nil
}

func (s *Service) AuthorizeMasuk(p identity.Principal) error {
	if !p.IsAdmin() {
		return apperror.Forbidden("Hanya Admin Gudang yang dapat mencatat transaksi masuk")
	}
	return nil
}

func (s *Service) validate(ctx context.Context, barangID uint, tanggal string) (time.Time, error) {
	tgl, err := time.Parse(dateLayout, tanggal)
	if err != nil {
		return time.Time{}, apperror.Field("tanggal", "format tanggal harus YYYY-MM-DD")
	}
	ok, err := s.repo.BarangExists(ctx, barangID)
	if err != nil {
		return time.Time{}, apperror.Internal("Gagal memeriksa barang", err)
	}
	if !ok {
		return time.Time{}, apperror.Field("id_barang", "barang tidak ditemukan")
	}
	return tgl, nil
}

func (s *Service) find(ctx context.Context, id uint) (*models.Transaksi, error) {
	t, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("Transaksi tidak ditemukan")
		}
		return nil, apperror.Internal("Gagal mengambil transaksi", err)
	}
	return t, nil
}

func (s *Service) record(ctx context.Context, p identity.Principal, t *models.Transaksi, arah string) {
	nama := fmt.Sprintf("barang #%d", t.BarangID)
	if t.Barang != nil {
		nama = t.Barang.NamaBarang
	}
	s.audit.Record(ctx, audit.Entry{
		UserID:     p.UserID,
		Aksi:       models.AksiCreate,
		EntityType: "transaksi",
		EntityID:   t.ID,
		Deskripsi:  fmt.Sprintf("Transaksi %s %d %s", arah, t.Jumlah, nama),
	})
}

func mapTxError(err error, internalMsg string) error {
	var appErr *apperror.Error
	switch {
	case errors.As(err, &appErr):
		return appErr
	case errors.Is(err, gorm.ErrRecordNotFound):
		return apperror.Field("id_barang", "barang tidak ditemukan")
	}
	return apperror.Internal(internalMsg, err)
}

func trimOptional(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}
