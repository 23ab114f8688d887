package permintaan

import (
	"context"
	"errors"
	"fmt"
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
	msgTidakDitemukan = "Permintaan tidak ditemukan"
	msgSudahDiproses  = "Permintaan sudah diproses"
	msgStokKurang     = "Stok tidak mencukupi. Stok tersedia: %d"
)

var tracer = otel.Tracer("gudang-backend/permintaan")

// Notifier dipenuhi oleh notifikasi.Service.
type Notifier interface {
	Notify(ctx context.Context, userID uint, judul, pesan string)
	NotifyRole(ctx context.Context, role models.Role, judul, pesan string)
}

type Service struct {
	repo     Repository
	audit    audit.Recorder
	notifier Notifier
	now      func() time.Time
}

func NewService(repo Repository, rec audit.Recorder, n Notifier) *Service {
	if rec == nil {
		rec = audit.Discard
	}
	return &Service{repo: repo, audit: rec, notifier: n, now: time.Now}
}

type CreateInput struct {
	BarangID      uint `json:"id_barang" validate:"required"`
	JumlahDiminta int  `json:"jumlah_diminta" validate:"required,min=1"`
}

// List: AdminGudang melihat semua permintaan, role lain hanya miliknya.
func (s *Service) List(ctx context.Context, p identity.Principal) ([]models.PermintaanBarang, error) {
	var scope *uint
	if !p.IsAdmin() {
		scope = &p.UserID
	}
	list, err := s.repo.List(ctx, scope)
	if err != nil {
		return nil, apperror.Internal("Gagal mengambil data permintaan", err)
	}
	return list, nil
}

func (s *Service) Get(ctx context.Context, p identity.Principal, id uint) (*models.PermintaanBarang, error) {
	req, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if !p.IsAdmin() && req.UserID != p.UserID {
		return nil, apperror.Forbidden("Anda tidak memiliki akses ke permintaan ini")
	}
	return req, nil
}

// AuthorizeCreate dipanggil handler sebelum body divalidasi.
func (s *Service) AuthorizeCreate(p identity.Principal) error {
	if p.Role != models.RolePetugasOperasional {
		return apperror.Forbidden("Hanya Petugas Operasional yang dapat mengajukan permintaan")
	}
	return nil
}

func (s *Service) Create(ctx context.Context, p identity.Principal, in CreateInput) (*models.PermintaanBarang, error) {
	if err := s.AuthorizeCreate(p); err != nil {
		return nil, err
	}

	ok, err := s.repo.BarangExists(ctx, in.BarangID)
	if err != nil {
		return nil, apperror.Internal("Gagal mengajukan permintaan", err)
	}
	if !ok {
		return nil, apperror.Field("id_barang", "barang tidak ditemukan")
	}

	req := &models.PermintaanBarang{
		UserID:        p.UserID,
		BarangID:      in.BarangID,
		JumlahDiminta: in.JumlahDiminta,
		Status:        models.StatusMenunggu,
	}
	if err := s.repo.Create(ctx, req); err != nil {
		return nil, apperror.Internal("Gagal mengajukan permintaan", err)
	}

	full, err := s.find(ctx, req.ID)
	if err != nil {
		return nil, err
	}

	s.audit.Record(ctx, audit.Entry{
		UserID:     p.UserID,
		Aksi:       models.AksiCreate,
		EntityType: "permintaan_barang",
		EntityID:   full.ID,
		Deskripsi:  fmt.Sprintf("Mengajukan permintaan %d %s", full.JumlahDiminta, namaBarang(full)),
	})
	if s.notifier != nil {
		s.notifier.NotifyRole(ctx, models.RoleAdminGudang,
			"Permintaan Barang Baru",
			fmt.Sprintf("%s mengajukan permintaan %d %s.", p.Username, full.JumlahDiminta, namaBarang(full)))
	}
	return full, nil
}

// Approve memindahkan permintaan ke Disetujui dan mengurangi stok dalam satu
// transaksi database, dengan baris permintaan dan barang terkunci.
func (s *Service) Approve(ctx context.Context, p identity.Principal, id uint) (_ *models.PermintaanBarang, err error) {
	ctx, span := tracer.Start(ctx, "permintaan.approve")
	span.SetAttributes(attribute.Int64("permintaan.id", int64(id)))
	defer func() { telemetry.End(span, err) }()

	if !p.IsAdmin() {
		return nil, apperror.Forbidden("Hanya Admin Gudang yang dapat menyetujui permintaan")
	}

	err = s.repo.Transaction(ctx, func(tx TxRepository) error {
		req, err := tx.LockPermintaan(id)
		if err != nil {
			return err
		}
		if err := req.Status.Transition(models.StatusDisetujui); err != nil {
			return err
		}

		b, err := tx.LockBarang(req.BarangID)
		if err != nil {
			return err
		}
		if b.Stok < req.JumlahDiminta {
			return apperror.InvalidState(fmt.Sprintf(msgStokKurang, b.Stok))
		}

		if err := tx.UpdateStatus(id, models.StatusMenunggu, models.StatusDisetujui, p.UserID, s.now()); err != nil {
			return err
		}
		if err := tx.DecrementStok(req.BarangID, req.JumlahDiminta); err != nil {
			if errors.Is(err, barang.ErrStokTidakCukup) {
				return apperror.InvalidState(fmt.Sprintf(msgStokKurang, b.Stok))
			}
			return err
		}
		return nil
	})
	if err != nil {
		return nil, s.mapProcessError(err, "Gagal menyetujui permintaan")
	}

	full, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	s.afterProcess(ctx, p, full, models.AksiApprove, "disetujui")
	return full, nil
}

func (s *Service) Reject(ctx context.Context, p identity.Principal, id uint) (_ *models.PermintaanBarang, err error) {
	ctx, span := tracer.Start(ctx, "permintaan.reject")
	span.SetAttributes(attribute.Int64("permintaan.id", int64(id)))
	defer func() { telemetry.End(span, err) }()

	if !p.IsAdmin() {
		return nil, apperror.Forbidden("Hanya Admin Gudang yang dapat menolak permintaan")
	}

	err = s.repo.Transaction(ctx, func(tx TxRepository) error {
		req, err := tx.LockPermintaan(id)
		if err != nil {
			return err
		}
		if err := req.Status.Transition(models.StatusDitolak); err != nil {
			return err
		}
		return tx.UpdateStatus(id, models.StatusMenunggu, models.StatusDitolak, p.UserID, s.now())
	})
	if err != nil {
		return nil, s.mapProcessError(err, "Gagal menolak permintaan")
	}

	full, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	s.afterProcess(ctx, p, full, models.AksiReject, "ditolak")
	return full, nil
}

func (s *Service) mapProcessError(err error, internalMsg string) error {
	var appErr *apperror.Error
	switch {
	case errors.As(err, &appErr):
		return appErr
	case errors.Is(err, gorm.ErrRecordNotFound):
		return apperror.NotFound(msgTidakDitemukan)
	case errors.Is(err, models.ErrSudahDiproses):
		return apperror.InvalidState(msgSudahDiproses)
	}
	return apperror.Internal(internalMsg, err)
}

func (s *Service) afterProcess(ctx context.Context, p identity.Principal, req *models.PermintaanBarang, aksi models.AksiLog, hasil string) {
	s.audit.Record(ctx, audit.Entry{
		UserID:     p.UserID,
		Aksi:       aksi,
		EntityType: "permintaan_barang",
		EntityID:   req.ID,
		Deskripsi:  fmt.Sprintf("Permintaan #%d (%d %s) %s", req.ID, req.JumlahDiminta, namaBarang(req), hasil),
	})
	if s.notifier != nil {
		s.notifier.Notify(ctx, req.UserID,
			"Permintaan "+string(req.Status),
			fmt.Sprintf("Permintaan Anda untuk %d %s telah %s.", req.JumlahDiminta, namaBarang(req), hasil))
	}
}

func (s *Service) find(ctx context.Context, id uint) (*models.PermintaanBarang, error) {
	req, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound(msgTidakDitemukan)
		}
		return nil, apperror.Internal("Gagal mengambil detail permintaan", err)
	}
	return req, nil
}

func namaBarang(req *models.PermintaanBarang) string {
	if req.Barang == nil {
		return fmt.Sprintf("barang #%d", req.BarangID)
	}
	return req.Barang.NamaBarang
}
