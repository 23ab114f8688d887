package laporan

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gudang-backend/internal/apperror"
	"gudang-backend/internal/audit"
	"gudang-backend/internal/identity"
	"gudang-backend/internal/models"
	"gudang-backend/internal/telemetry"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"gorm.io/gorm"
)

type Format string

const (
	FormatPDF   Format = "pdf"
	FormatExcel Format = "xlsx"
)

var tracer = otel.Tracer("gudang-backend/laporan")

type Service struct {
	repo  Repository
	audit audit.Recorder
}

func NewService(repo Repository, rec audit.Recorder) *Service {
	if rec == nil {
		rec = audit.Discard
	}
	return &Service{repo: repo, audit: rec}
}

type CreateInput struct {
	JenisLaporan string  `json:"jenis_laporan" validate:"required,oneof=STOK TRANSAKSI PERMINTAAN"`
	PeriodeAwal  string  `json:"periode_awal" validate:"required,datetime=2006-01-02"`
	PeriodeAkhir string  `json:"periode_akhir" validate:"required,datetime=2006-01-02"`
	Keterangan   *string `json:"keterangan"`
}

// Detail adalah laporan beserta tabel hasil hitungnya.
type Detail struct {
	models.Laporan
	Hasil *Report `json:"hasil"`
}

// File adalah hasil render yang siap diunduh.
type File struct {
	Name        string
	ContentType string
	Body        []byte
}

func (s *Service) List(ctx context.Context) ([]models.Laporan, error) {
	list, err := s.repo.List(ctx)
	if err != nil {
		return nil, apperror.Internal("Gagal mengambil data laporan", err)
	}
	return list, nil
}

func (s *Service) Get(ctx context.Context, id uint) (*Detail, error) {
	l, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	r, err := build(ctx, s.repo, l)
	if err != nil {
		return nil, apperror.Internal("Gagal menyusun laporan", err)
	}
	return &Detail{Laporan: *l, Hasil: r}, nil
}

// AuthorizeCreate dipanggil handler sebelum body divalidasi.
func (s *Service) AuthorizeCreate(p identity.Principal) error {
	if p.Role != models.RoleAdminGudang && p.Role != models.RoleKepalaDivisi {
		return apperror.Forbidden("Hanya Admin Gudang atau Kepala Divisi yang dapat membuat laporan")
	}
	return nil
}

func (s *Service) Create(ctx context.Context, p identity.Principal, in CreateInput) (*models.Laporan, error) {
	if err := s.AuthorizeCreate(p); err != nil {
		return nil, err
	}

	jenis := models.JenisLaporan(in.JenisLaporan)
	if !jenis.Valid() {
		return nil, apperror.Field("jenis_laporan", "jenis laporan tidak valid")
	}
	awal, errAwal := time.Parse(dateLayout, in.PeriodeAwal)
	akhir, errAkhir := time.Parse(dateLayout, in.PeriodeAkhir)
	if errAwal != nil || errAkhir != nil {
		return nil, apperror.Field("periode_awal", "format tanggal harus YYYY-MM-DD")
	}
	if akhir.Before(awal) {
		return nil, apperror.Field("periode_akhir", "tidak boleh sebelum periode_awal")
	}

	l := &models.Laporan{
		JenisLaporan: jenis,
		PeriodeAwal:  awal,
		PeriodeAkhir: akhir,
		Keterangan:   in.Keterangan,
		UserID:       p.UserID,
	}
	if err := s.repo.Create(ctx, l); err != nil {
		return nil, apperror.Internal("Gagal membuat laporan", err)
	}

	s.audit.Record(ctx, audit.Entry{
		UserID:     p.UserID,
		Aksi:       models.AksiCreate,
		EntityType: "laporan",
		EntityID:   l.ID,
		Deskripsi:  fmt.Sprintf("Membuat laporan %s %s s/d %s", l.JenisLaporan, in.PeriodeAwal, in.PeriodeAkhir),
	})
	return s.find(ctx, l.ID)
}

func (s *Service) Render(ctx context.Context, id uint, format Format) (_ *File, err error) {
	ctx, span := tracer.Start(ctx, "laporan.render")
	span.SetAttributes(attribute.Int64("laporan.id", int64(id)), attribute.String("format", string(format)))
	defer func() { telemetry.End(span, err) }()

	l, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	r, err := build(ctx, s.repo, l)
	if err != nil {
		return nil, apperror.Internal("Gagal menyusun laporan", err)
	}

	file := &File{Name: fileName(l, format)}
	switch format {
	case FormatPDF:
		file.ContentType = "application/pdf"
		file.Body, err = RenderPDF(r)
	case FormatExcel:
		file.ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
		file.Body, err = RenderExcel(r)
	default:
		return nil, apperror.Field("format", "format tidak didukung")
	}
	if err != nil {
		return nil, apperror.Internal("Gagal membuat file laporan", err)
	}
	return file, nil
}

func (s *Service) find(ctx context.Context, id uint) (*models.Laporan, error) {
	l, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("Laporan tidak ditemukan")
		}
		return nil, apperror.Internal("Gagal mengambil laporan", err)
	}
	return l, nil
}

func fileName(l *models.Laporan, format Format) string {
	return fmt.Sprintf("laporan_%s_%s_%s.%s",
		strings.ToLower(string(l.JenisLaporan)),
		l.PeriodeAwal.Format("20060102"),
		l.PeriodeAkhir.Format("20060102"),
		format)
}
