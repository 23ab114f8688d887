package notifikasi

import (
	"context"
	"errors"
	"log"

	"gudang-backend/internal/apperror"
	"gudang-backend/internal/identity"
	"gudang-backend/internal/models"

	"gorm.io/gorm"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Notify dan NotifyRole dipanggil service lain setelah commit. Gagal kirim
// notifikasi hanya dicatat di log.
func (s *Service) Notify(ctx context.Context, userID uint, judul, pesan string) {
	n := &models.Notifikasi{UserID: userID, Judul: judul, Pesan: pesan}
	if err := s.repo.Create(ctx, n); err != nil {
		log.Printf("[WARN] notifikasi ke user %d gagal: %v", userID, err)
	}
}

func (s *Service) NotifyRole(ctx context.Context, role models.Role, judul, pesan string) {
	ids, err := s.repo.ActiveUserIDsByRole(ctx, role)
	if err != nil {
		log.Printf("[WARN] daftar user role %s gagal diambil: %v", role, err)
		return
	}
	rows := make([]*models.Notifikasi, 0, len(ids))
	for _, id := range ids {
		rows = append(rows, &models.Notifikasi{UserID: id, Judul: judul, Pesan: pesan})
	}
	if err := s.repo.Create(ctx, rows...); err != nil {
		log.Printf("[WARN] notifikasi ke role %s gagal: %v", role, err)
	}
}

func (s *Service) List(ctx context.Context, p identity.Principal) ([]models.Notifikasi, error) {
	list, err := s.repo.ListByUser(ctx, p.UserID)
	if err != nil {
		return nil, apperror.Internal("Gagal mengambil notifikasi", err)
	}
	return list, nil
}

type CreateInput struct {
	UserID *uint  `json:"id_user" validate:"omitempty,gt=0"`
	Judul  string `json:"judul" validate:"required,max=150"`
	Pesan  string `json:"pesan" validate:"required"`
}

func (s *Service) Create(ctx context.Context, p identity.Principal, in CreateInput) (*models.Notifikasi, error) {
	target := p.UserID
	if in.UserID != nil && *in.UserID != p.UserID {
		if !p.IsAdmin() {
			return nil, apperror.Forbidden("Anda hanya dapat membuat notifikasi untuk diri sendiri")
		}
		ok, err := s.repo.UserExists(ctx, *in.UserID)
		if err != nil {
			return nil, apperror.Internal("Gagal membuat notifikasi", err)
		}
		if !ok {
			return nil, apperror.Field("id_user", "pengguna tidak ditemukan")
		}
		target = *in.UserID
	}

	n := &models.Notifikasi{UserID: target, Judul: in.Judul, Pesan: in.Pesan}
	if err := s.repo.Create(ctx, n); err != nil {
		return nil, apperror.Internal("Gagal membuat notifikasi", err)
	}
	return n, nil
}

func (s *Service) MarkRead(ctx context.Context, p identity.Principal, id uint) (*models.Notifikasi, error) {
	n, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if n.UserID != p.UserID {
		return nil, apperror.Forbidden("Anda tidak memiliki akses ke notifikasi ini")
	}
	if err := s.repo.MarkRead(ctx, id); err != nil {
		return nil, apperror.Internal("Gagal memperbarui notifikasi", err)
	}
	n.Dibaca = true
	return n, nil
}

func (s *Service) Delete(ctx context.Context, p identity.Principal, id uint) error {
	n, err := s.find(ctx, id)
	if err != nil {
		return err
	}
	if n.UserID != p.UserID && !p.IsAdmin() {
		return apperror.Forbidden("Anda tidak memiliki akses ke notifikasi ini")
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return apperror.Internal("Gagal menghapus notifikasi", err)
	}
	return nil
}

func (s *Service) find(ctx context.Context, id uint) (*models.Notifikasi, error) {
	n, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("Notifikasi tidak ditemukan")
		}
		return nil, apperror.Internal("Gagal mengambil notifikasi", err)
	}
	return n, nil
}
