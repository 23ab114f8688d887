package audit

import (
	"context"

	"gudang-backend/internal/apperror"
	"gudang-backend/internal/identity"
	"gudang-backend/internal/models"
)

type Repository interface {
	ListAll(ctx context.Context) ([]models.LogAktivitas, error)
	ListByUser(ctx context.Context, userID uint) ([]models.LogAktivitas, error)
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// List: admin melihat semua log, role lain hanya log miliknya.
func (s *Service) List(ctx context.Context, p identity.Principal) ([]models.LogAktivitas, error) {
	var (
		logs []models.LogAktivitas
		err  error
	)
	if p.IsAdmin() {
		logs, err = s.repo.ListAll(ctx)
	} else {
		logs, err = s.repo.ListByUser(ctx, p.UserID)
	}
	if err != nil {
		return nil, apperror.Internal("Gagal mengambil log aktivitas", err)
	}
	return logs, nil
}

func (s *Service) ListForUser(ctx context.Context, p identity.Principal, userID uint) ([]models.LogAktivitas, error) {
	if !p.IsAdmin() && p.UserID != userID {
		return nil, apperror.Forbidden("Anda tidak memiliki akses untuk melihat log ini")
	}
	logs, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, apperror.Internal("Gagal mengambil log aktivitas", err)
	}
	return logs, nil
}
