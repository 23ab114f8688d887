package kategori

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gudang-backend/internal/apperror"
	"gudang-backend/internal/audit"
	"gudang-backend/internal/identity"
	"gudang-backend/internal/models"

	"gorm.io/gorm"
)

const msgMasihDipakai = "Kategori tidak dapat dihapus karena masih memiliki barang"

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
	NamaKategori string  `json:"nama_kategori" validate:"required,max=100"`
	Deskripsi    *string `json:"deskripsi"`
}

type UpdateInput struct {
	NamaKategori *string `json:"nama_kategori" validate:"omitempty,max=100"`
	Deskripsi    *string `json:"deskripsi"`
}

func (s *Service) List(ctx context.Context) ([]models.Kategori, error) {
	list, err := s.repo.List(ctx)
	if err != nil {
		return nil, apperror.Internal("Gagal mengambil kategori", err)
	}
	return list, nil
}

func (s *Service) Get(ctx context.Context, id uint) (*models.Kategori, error) {
	k, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("Kategori tidak ditemukan")
		}
		return nil, apperror.Internal("Gagal mengambil kategori", err)
	}
	return k, nil
}

func (s *Service) Create(ctx context.Context, p identity.Principal, in CreateInput) (*models.Kategori, error) {
	name := strings.TrimSpace(in.NamaKategori)
	if name == "" {
		return nil, apperror.Field("nama_kategori", "wajib diisi")
	}
	if err := s.ensureUniqueName(ctx, name, 0); err != nil {
		return nil, err
	}

	k := &models.Kategori{NamaKategori: name, Deskripsi: trimOptional(in.Deskripsi)}
	if err := s.repo.Create(ctx, k); err != nil {
		if errors.Is(err, ErrNamaDipakai) {
			return nil, apperror.Field("nama_kategori", ErrNamaDipakai.Error())
		}
		return nil, apperror.Internal("Gagal membuat kategori", err)
	}

	s.record(ctx, p, models.AksiCreate, k.ID, fmt.Sprintf("Menambah kategori %s", k.NamaKategori))
	return k, nil
}

func (s *Service) Update(ctx context.Context, p identity.Principal, id uint, in UpdateInput) (*models.Kategori, error) {
	k, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.NamaKategori != nil {
		name := strings.TrimSpace(*in.NamaKategori)
		if name == "" {
			return nil, apperror.Field("nama_kategori", "tidak boleh kosong")
		}
		if err := s.ensureUniqueName(ctx, name, id); err != nil {
			return nil, err
		}
		k.NamaKategori = name
	}
	if in.Deskripsi != nil {
		k.Deskripsi = trimOptional(in.Deskripsi)
	}

	if err := s.repo.Save(ctx, k); err != nil {
		if errors.Is(err, ErrNamaDipakai) {
			return nil, apperror.Field("nama_kategori", ErrNamaDipakai.Error())
		}
		return nil, apperror.Internal("Gagal memperbarui kategori", err)
	}

	s.record(ctx, p, models.AksiUpdate, k.ID, fmt.Sprintf("Mengubah kategori %s", k.NamaKategori))
	return k, nil
}

func (s *Service) Delete(ctx context.Context, p identity.Principal, id uint) error {
	k, err := s.Get(ctx, id)
	if err != nil {
		return err
	}

	count, err := s.repo.CountBarang(ctx, id)
	if err != nil {
		return apperror.Internal("Gagal menghapus kategori", err)
	}
	if count > 0 {
		return apperror.InvalidState(msgMasihDipakai)
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, ErrMasihDipakai) {
			return apperror.InvalidState(msgMasihDipakai)
		}
		return apperror.Internal("Gagal menghapus kategori", err)
	}

	s.record(ctx, p, models.AksiDelete, id, fmt.Sprintf("Menghapus kategori %s", k.NamaKategori))
	return nil
}

func (s *Service) ensureUniqueName(ctx context.Context, name string, excludeID uint) error {
	taken, err := s.repo.NameExists(ctx, name, excludeID)
	if err != nil {
		return apperror.Internal("Gagal memeriksa kategori", err)
	}
	if taken {
		return apperror.Field("nama_kategori", ErrNamaDipakai.Error())
	}
	return nil
}

func (s *Service) record(ctx context.Context, p identity.Principal, aksi models.AksiLog, id uint, desc string) {
	s.audit.Record(ctx, audit.Entry{
		UserID:     p.UserID,
		Aksi:       aksi,
		EntityType: "kategori",
		EntityID:   id,
		Deskripsi:  desc,
	})
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
