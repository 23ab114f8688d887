package auth

import (
	"context"
	"errors"
	"strings"

	"gudang-backend/internal/apperror"
	"gudang-backend/internal/audit"
	"gudang-backend/internal/identity"
	"gudang-backend/internal/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const msgInvalidCredentials = "Username atau password salah"

type Service struct {
	repo   Repository
	tokens *TokenIssuer
	audit  audit.Recorder
}

func NewService(repo Repository, tokens *TokenIssuer, rec audit.Recorder) *Service {
	if rec == nil {
		rec = audit.Discard
	}
	return &Service{repo: repo, tokens: tokens, audit: rec}
}

// TokenResult adalah body respons login/register.
type TokenResult struct {
	User        models.UserPublic `json:"user"`
	AccessToken string            `json:"access_token"`
	TokenType   string            `json:"token_type"`
	ExpiresIn   int               `json:"expires_in"`
}

type RegisterInput struct {
	Username             string  `json:"username" validate:"required,max=50"`
	Password             string  `json:"password" validate:"required,min=6"`
	PasswordConfirmation string  `json:"password_confirmation" validate:"required,eqfield=Password"`
	NamaLengkap          string  `json:"nama_lengkap" validate:"required,max=255"`
	Role                 string  `json:"role" validate:"required,oneof=AdminGudang PetugasOperasional KepalaDivisi"`
	Divisi               *string `json:"divisi" validate:"omitempty,max=100"`
}

func (s *Service) Register(ctx context.Context, in RegisterInput) (*TokenResult, error) {
	role := models.Role(in.Role)
	if !role.Valid() {
		return nil, apperror.Field("role", "role tidak valid")
	}

	username := strings.TrimSpace(in.Username)
	namaLengkap := strings.TrimSpace(in.NamaLengkap)
	blank := map[string]string{}
	if username == "" {
		blank["username"] = "wajib diisi"
	}
	if namaLengkap == "" {
		blank["nama_lengkap"] = "wajib diisi"
	}
	if len(blank) > 0 {
		return nil, apperror.Validation("Validasi gagal", blank)
	}

	if _, err := s.repo.FindUserByUsername(ctx, username); err == nil {
		return nil, apperror.Field("username", ErrUsernameTaken.Error())
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperror.Internal("Registrasi gagal", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperror.Internal("Registrasi gagal", err)
	}

	user := &models.User{
		Username:     username,
		PasswordHash: string(hash),
		NamaLengkap:  namaLengkap,
		Role:         role,
		Divisi:       in.Divisi,
		IsAktif:      true,
	}
	if err := s.repo.CreateUser(ctx, user); err != nil {
		if errors.Is(err, ErrUsernameTaken) {
			return nil, apperror.Field("username", ErrUsernameTaken.Error())
		}
		return nil, apperror.Internal("Registrasi gagal", err)
	}

	res, err := s.issue(user)
	if err != nil {
		return nil, err
	}
	s.audit.Record(ctx, audit.Entry{
		UserID:     user.ID,
		Aksi:       models.AksiRegister,
		EntityType: "users",
		EntityID:   user.ID,
		Deskripsi:  "Registrasi akun " + user.Username,
	})
	return res, nil
}

func (s *Service) Login(ctx context.Context, username, password string) (*TokenResult, error) {
	user, err := s.repo.FindUserByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.Unauthenticated(msgInvalidCredentials)
		}
		return nil, apperror.Internal("Login gagal", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, apperror.Unauthenticated(msgInvalidCredentials)
	}
	if !user.Role.Valid() {
		return nil, apperror.Forbidden("Role pengguna tidak diizinkan")
	}
	if !user.IsAktif {
		return nil, apperror.Forbidden("Akun Anda tidak aktif")
	}

	res, err := s.issue(user)
	if err != nil {
		return nil, err
	}
	s.audit.Record(ctx, audit.Entry{
		UserID:     user.ID,
		Aksi:       models.AksiLogin,
		EntityType: "users",
		EntityID:   user.ID,
		Deskripsi:  "Login " + user.Username,
	})
	return res, nil
}

func (s *Service) issue(user *models.User) (*TokenResult, error) {
	token, _, err := s.tokens.Issue(user)
	if err != nil {
		return nil, apperror.Internal("Token gagal dibuat", err)
	}
	return &TokenResult{
		User:        user.Public(),
		AccessToken: token,
		TokenType:   "bearer",
		ExpiresIn:   int(s.tokens.TTL().Seconds()),
	}, nil
}

func (s *Service) Me(ctx context.Context, p identity.Principal) (*models.UserPublic, error) {
	user, err := s.repo.FindUserByID(ctx, p.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.Unauthenticated("Tidak ada pengguna yang sedang login")
		}
		return nil, apperror.Internal("Gagal mengambil profil", err)
	}
	pub := user.Public()
	return &pub, nil
}

func (s *Service) Logout(ctx context.Context, p identity.Principal) error {
	if err := s.repo.RevokeToken(ctx, p.TokenID, p.ExpiresAt); err != nil {
		return apperror.Internal("Gagal melakukan logout", err)
	}
	s.audit.Record(ctx, audit.Entry{
		UserID:     p.UserID,
		Aksi:       models.AksiLogout,
		EntityType: "users",
		EntityID:   p.UserID,
		Deskripsi:  "Logout " + p.Username,
	})
	return nil
}

// Authenticate memverifikasi token dan memastikan belum dicabut.
func (s *Service) Authenticate(ctx context.Context, tokenStr string) (identity.Principal, error) {
	claims, err := s.tokens.Parse(tokenStr)
	if err != nil {
		return identity.Principal{}, apperror.Unauthenticated("Token tidak valid atau sudah kedaluwarsa")
	}
	revoked, err := s.repo.IsTokenRevoked(ctx, claims.ID)
	if err != nil {
		return identity.Principal{}, apperror.Internal("Gagal memverifikasi token", err)
	}
	if revoked {
		return identity.Principal{}, apperror.Unauthenticated("Token sudah tidak berlaku")
	}
	if !claims.Role.Valid() {
		return identity.Principal{}, apperror.Forbidden("Role pengguna tidak diizinkan")
	}

	return identity.Principal{
		UserID:    claims.UserID,
		Username:  claims.Username,
		Role:      claims.Role,
		TokenID:   claims.ID,
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}
