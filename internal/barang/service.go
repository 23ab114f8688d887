package barang

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gudang-backend/internal/apperror"
	"gudang-backend/internal/audit"
	"gudang-backend/internal/identity"
	"gudang-backend/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const msgMasihDipakai = "Barang tidak dapat dihapus karena sudah memiliki transaksi atau permintaan"

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

type CreateInput struct {
	KodeBarang  string          `json:"kode_barang" validate:"required,max=50"`
	NamaBarang  string          `json:"nama_barang" validate:"required,max=255"`
	KategoriID  uint            `json:"id_kategori" validate:"required"`
	Satuan      string          `json:"satuan" validate:"required,max=20"`
	Stok        int             `json:"stok" validate:"gte=0"`
	StokMinimum int             `json:"stok_minimum" validate:"gte=0"`
	HargaSatuan decimal.Decimal `json:"harga_satuan"`
}

type UpdateInput struct {
	KodeBarang  *string          `json:"kode_barang" validate:"omitempty,max=50"`
	NamaBarang  *string          `json:"nama_barang" validate:"omitempty,max=255"`
	KategoriID  *uint            `json:"id_kategori" validate:"omitempty,gt=0"`
	Satuan      *string          `json:"satuan" validate:"omitempty,max=20"`
	StokMinimum *int             `json:"stok_minimum" validate:"omitempty,gte=0"`
	HargaSatuan *decimal.Decimal `json:"harga_satuan"`
}

type SetStokInput struct {
	Stok *int `json:"stok" validate:"required,gte=0"`
}

// StatusStok adalah hasil cek stok minimum.
type StatusStok struct {
	IDBarang       uint   `json:"id_barang"`
	NamaBarang     string `json:"nama_barang"`
	Stok           int    `json:"stok"`
	StokMinimum    int    `json:"stok_minimum"`
	DiBawahMinimum bool   `json:"di_bawah_minimum"`
}

func (s *Service) List(ctx context.Context, f Filter) ([]models.Barang, error) {
	list, err := s.repo.List(ctx, f)
	if err != nil {
		return nil, apperror.Internal("Gagal mengambil data barang", err)
	}
	return list, nil
}

func (s *Service) Get(ctx context.Context, id uint) (*models.Barang, error) {
	b, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("Barang tidak ditemukan")
		}
		return nil, apperror.Internal("Gagal mengambil data barang", err)
	}
	return b, nil
}

func (s *Service) Create(ctx context.Context, p identity.Principal, in CreateInput) (*models.Barang, error) {
	b := &models.Barang{
		KodeBarang:  strings.TrimSpace(in.KodeBarang),
		NamaBarang:  strings.TrimSpace(in.NamaBarang),
		KategoriID:  in.KategoriID,
		Satuan:      strings.TrimSpace(in.Satuan),
		Stok:        in.Stok,
		StokMinimum: in.StokMinimum,
		HargaSatuan: in.HargaSatuan,
	}
	if err := s.check(ctx, b, 0); err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, b); err != nil {
		if errors.Is(err, ErrKodeDipakai) {
			return nil, apperror.Field("kode_barang", ErrKodeDipakai.Error())
		}
		return nil, apperror.Internal("Gagal menambah barang", err)
	}

	s.record(ctx, p, models.AksiCreate, b.ID, fmt.Sprintf("Menambah barang %s (%s)", b.NamaBarang, b.KodeBarang))
	return s.Get(ctx, b.ID)
}

func (s *Service) Update(ctx context.Context, p identity.Principal, id uint, in UpdateInput) (*models.Barang, error) {
	b, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.KodeBarang != nil {
		b.KodeBarang = strings.TrimSpace(*in.KodeBarang)
	}
	if in.NamaBarang != nil {
		b.NamaBarang = strings.TrimSpace(*in.NamaBarang)
	}
	if in.KategoriID != nil {
		b.KategoriID = *in.KategoriID
		b.Kategori = nil
	}
	if in.Satuan != nil {
		b.Satuan = strings.TrimSpace(*in.Satuan)
	}
	if in.StokMinimum != nil {
		b.StokMinimum = *in.StokMinimum
	}
	if in.HargaSatuan != nil {
		b.HargaSatuan = *in.HargaSatuan
	}
	if err := s.check(ctx, b, id); err != nil {
		return nil, err
	}

	if err := s.repo.Save(ctx, b); err != nil {
		if errors.Is(err, ErrKodeDipakai) {
			return nil, apperror.Field("kode_barang", ErrKodeDipakai.Error())
		}
		return nil, apperror.Internal("Gagal memperbarui barang", err)
	}

	s.record(ctx, p, models.AksiUpdate, b.ID, fmt.Sprintf("Mengubah barang %s (%s)", b.NamaBarang, b.KodeBarang))
	return s.Get(ctx, id)
}

func (s *Service) Delete(ctx context.Context, p identity.Principal, id uint) error {
	b, err := s.Get(ctx, id)
	if err != nil {
		return err
	}

	refs, err := s.repo.CountReferences(ctx, id)
	if err != nil {
		return apperror.Internal("Gagal menghapus barang", err)
	}
	if refs > 0 {
		return apperror.InvalidState(msgMasihDipakai)
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return apperror.Internal("Gagal menghapus barang", err)
	}

	s.record(ctx, p, models.AksiDelete, id, fmt.Sprintf("Menghapus barang %s (%s)", b.NamaBarang, b.KodeBarang))
	return nil
}

// SetStok menimpa stok barang (koreksi stok opname).
func (s *Service) SetStok(ctx context.Context, p identity.Principal, id uint, stok int) (*models.Barang, error) {
	if stok < 0 {
		return nil, apperror.Field("stok", "minimal 0")
	}

	before, err := s.repo.SetStok(ctx, id, stok)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("Barang tidak ditemukan")
		}
		return nil, apperror.Internal("Gagal memperbarui stok", err)
	}

	s.record(ctx, p, models.AksiUpdate, id,
		fmt.Sprintf("Mengubah stok %s dari %d menjadi %d", before.NamaBarang, before.Stok, stok))
	return s.Get(ctx, id)
}

// CekMinimum melaporkan posisi stok terhadap stok minimum. Bila di bawah
// minimum, semua AdminGudang aktif menerima notifikasi.
func (s *Service) CekMinimum(ctx context.Context, id uint) (*StatusStok, error) {
	b, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	st := &StatusStok{
		IDBarang:       b.ID,
		NamaBarang:     b.NamaBarang,
		Stok:           b.Stok,
		StokMinimum:    b.StokMinimum,
		DiBawahMinimum: b.DiBawahMinimum(),
	}
	if st.DiBawahMinimum && s.notifier != nil {
		s.notifier.NotifyRole(ctx, models.RoleAdminGudang,
			"Stok Barang Menipis",
			fmt.Sprintf("Stok %s (%s) tersisa %d %s, di bawah stok minimum %d.",
				b.NamaBarang, b.KodeBarang, b.Stok, b.Satuan, b.StokMinimum))
	}
	return st, nil
}

func (s *Service) check(ctx context.Context, b *models.Barang, excludeID uint) error {
	fields := map[string]string{}
	if b.KodeBarang == "" {
		fields["kode_barang"] = "wajib diisi"
	}
	if b.NamaBarang == "" {
		fields["nama_barang"] = "wajib diisi"
	}
	if b.Satuan == "" {
		fields["satuan"] = "wajib diisi"
	}
	if b.HargaSatuan.IsNegative() {
		fields["harga_satuan"] = "minimal 0"
	}

	if b.KodeBarang != "" {
		taken, err := s.repo.KodeExists(ctx, b.KodeBarang, excludeID)
		if err != nil {
			return apperror.Internal("Gagal memeriksa kode barang", err)
		}
		if taken {
			fields["kode_barang"] = ErrKodeDipakai.Error()
		}
	}

	ok, err := s.repo.KategoriExists(ctx, b.KategoriID)
	if err != nil {
		return apperror.Internal("Gagal memeriksa kategori", err)
	}
	if !ok {
		fields["id_kategori"] = "kategori tidak ditemukan"
	}

	if len(fields) > 0 {
		return apperror.Validation("Validasi gagal", fields)
	}
	return nil
}

func (s *Service) record(ctx context.Context, p identity.Principal, aksi models.AksiLog, id uint, desc string) {
	s.audit.Record(ctx, audit.Entry{
		UserID:     p.UserID,
		Aksi:       aksi,
		EntityType: "barang",
		EntityID:   id,
		Deskripsi:  desc,
	})
}
