package services

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/plutopets/pluto-backend/internal/config"
	"github.com/plutopets/pluto-backend/internal/dto"
	"github.com/plutopets/pluto-backend/internal/mailer"
	"github.com/plutopets/pluto-backend/internal/models"
	"github.com/plutopets/pluto-backend/internal/modules/journal"
	"github.com/plutopets/pluto-backend/internal/modules/pets"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailNotVerified   = errors.New("email not verified")
	ErrInvalidToken       = errors.New("invalid or expired token")
	ErrUserNotFound       = errors.New("user not found")
	ErrProfileSetup       = errors.New("account created but profile setup failed")
)

const emailTokenTTL = 24 * time.Hour

type AuthService struct {
	db      *gorm.DB
	cfg     *config.Config
	mailer  mailer.Mailer
	pets    *pets.Service
	journal *journal.Service
}

func NewAuthService(db *gorm.DB, cfg *config.Config, m mailer.Mailer, p *pets.Service, j *journal.Service) *AuthService {
	return &AuthService{db: db, cfg: cfg, mailer: m, pets: p, journal: j}
}

// Register creates the user row, then the role profile and the journal
// container. When the profile step fails the account still exists, so the
// caller gets ErrProfileSetup rather than a rollback.
func (s *AuthService) Register(req *dto.RegisterRequest) (*dto.AuthResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" || len(req.Password) < 8 {
		return nil, errors.New("email required and password must be at least 8 characters")
	}

	role := req.Role
	if role == "" {
		role = models.RolePetOwner
	}
	if role != models.RolePetOwner && role != models.RoleDoctor {
		return nil, errors.New("invalid role")
	}

	var existing models.User
	if err := s.db.Where("email = ?", email).First(&existing).Error; err == nil {
		return nil, ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := models.User{
		ID:       uuid.New(),
		Email:    email,
		Password: string(hash),
		Role:     role,
	}
	if err := s.db.Create(&user).Error; err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	if err := s.sendEmailToken(&user, models.TokenPurposeVerifyEmail); err != nil {
		slog.Error("verification mail failed", "user_id", user.ID, "error", err)
	}

	if err := s.setupProfile(&user, req.Profile); err != nil {
		slog.Error("profile setup failed", "user_id", user.ID, "error", err)
		return nil, ErrProfileSetup
	}

	return s.generateTokenPair(&user)
}

func (s *AuthService) setupProfile(user *models.User, attrs map[string]interface{}) error {
	if user.Role == models.RoleDoctor {
		_, err := s.pets.CreateDoctorProfile(user.ID, attrs)
		return err
	}
	if _, err := s.pets.CreatePetProfile(user.ID, attrs); err != nil {
		return err
	}
	return s.journal.EnsureContainer(user.ID)
}

func (s *AuthService) Login(req *dto.LoginRequest) (*dto.AuthResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	var user models.User
	if err := s.db.Where("email = ?", email).First(&user).Error; err != nil {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	if !user.EmailVerified {
		return nil, ErrEmailNotVerified
	}

	s.healProfile(&user)

	return s.generateTokenPair(&user)
}

// healProfile backfills the role profile for accounts whose registration lost
// the profile step. Failures are logged, not surfaced; login must still work.
func (s *AuthService) healProfile(user *models.User) {
	if user.Role == models.RoleDoctor {
		if _, err := s.pets.GetDoctorProfile(user.ID); errors.Is(err, pets.ErrProfileNotFound) {
			if _, err := s.pets.CreateDoctorProfile(user.ID, nil); err != nil {
				slog.Warn("doctor profile heal failed", "user_id", user.ID, "error", err)
			}
		}
		return
	}
	if _, err := s.pets.GetPetProfile(user.ID); errors.Is(err, pets.ErrProfileNotFound) {
		if _, err := s.pets.CreatePetProfile(user.ID, nil); err != nil {
			slog.Warn("pet profile heal failed", "user_id", user.ID, "error", err)
		}
		if err := s.journal.EnsureContainer(user.ID); err != nil {
			slog.Warn("journal container heal failed", "user_id", user.ID, "error", err)
		}
	}
}

func (s *AuthService) Refresh(req *dto.RefreshRequest) (*dto.AuthResponse, error) {
	tokenHash := hashToken(req.RefreshToken)

	var stored models.RefreshToken
	if err := s.db.Where("token_hash = ? AND revoked = false", tokenHash).First(&stored).Error; err != nil {
		return nil, ErrInvalidToken
	}

	if time.Now().After(stored.ExpiresAt) {
		s.db.Model(&stored).Update("revoked", true)
		return nil, ErrInvalidToken
	}

	s.db.Model(&stored).Update("revoked", true)

	var user models.User
	if err := s.db.First(&user, "id = ?", stored.UserID).Error; err != nil {
		return nil, fmt.Errorf("user not found: %w", err)
	}

	return s.generateTokenPair(&user)
}

func (s *AuthService) Logout(req *dto.LogoutRequest) error {
	tokenHash := hashToken(req.RefreshToken)
	return s.db.Model(&models.RefreshToken{}).
		Where("token_hash = ?", tokenHash).
		Update("revoked", true).Error
}

func (s *AuthService) VerifyEmail(rawToken string) error {
	token, err := s.consumeEmailToken(rawToken, models.TokenPurposeVerifyEmail)
	if err != nil {
		return err
	}
	return s.db.Model(&models.User{}).
		Where("id = ?", token.UserID).
		Update("email_verified", true).Error
}

// ResendVerification is a silent no-op for unknown or already verified
// addresses so it cannot be used to probe accounts.
func (s *AuthService) ResendVerification(email string) error {
	var user models.User
	if err := s.db.Where("email = ?", strings.ToLower(strings.TrimSpace(email))).First(&user).Error; err != nil {
		return nil
	}
	if user.EmailVerified {
		return nil
	}
	return s.sendEmailToken(&user, models.TokenPurposeVerifyEmail)
}

func (s *AuthService) ForgotPassword(email string) error {
	var user models.User
	if err := s.db.Where("email = ?", strings.ToLower(strings.TrimSpace(email))).First(&user).Error; err != nil {
		return nil
	}
	return s.sendEmailToken(&user, models.TokenPurposeResetPassword)
}

func (s *AuthService) ResetPassword(rawToken, newPassword string) error {
	if len(newPassword) < 8 {
		return errors.New("password must be at least 8 characters")
	}

	token, err := s.consumeEmailToken(rawToken, models.TokenPurposeResetPassword)
	if err != nil {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.User{}).
			Where("id = ?", token.UserID).
			Update("password", string(hash)).Error; err != nil {
			return err
		}
		// A password reset invalidates every live session.
		return tx.Model(&models.RefreshToken{}).
			Where("user_id = ?", token.UserID).
			Update("revoked", true).Error
	})
}

func (s *AuthService) DeleteAccount(userID uuid.UUID, password string) error {
	var user models.User
	if err := s.db.First(&user, "id = ?", userID).Error; err != nil {
		return ErrUserNotFound
	}

	if password == "" {
		return errors.New("password is required")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return ErrInvalidCredentials
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		tx.Where("user_id = ?", userID).Delete(&models.RefreshToken{})
		tx.Where("user_id = ?", userID).Delete(&models.EmailToken{})
		tx.Where("owner_id = ?", userID).Delete(&pets.PetProfile{})
		tx.Where("owner_id = ?", userID).Delete(&pets.DoctorProfile{})
		tx.Where("owner_id = ?", userID).Delete(&journal.JournalDoc{})
		return tx.Delete(&user).Error
	})
}

func (s *AuthService) sendEmailToken(user *models.User, purpose string) error {
	rawToken, err := randomToken()
	if err != nil {
		return err
	}

	record := models.EmailToken{
		ID:        uuid.New(),
		UserID:    user.ID,
		Purpose:   purpose,
		TokenHash: hashToken(rawToken),
		ExpiresAt: time.Now().Add(emailTokenTTL),
	}
	if err := s.db.Create(&record).Error; err != nil {
		return fmt.Errorf("failed to store email token: %w", err)
	}

	if purpose == models.TokenPurposeResetPassword {
		return s.mailer.SendPasswordReset(user.Email, rawToken)
	}
	return s.mailer.SendVerification(user.Email, rawToken)
}

func (s *AuthService) consumeEmailToken(rawToken, purpose string) (*models.EmailToken, error) {
	var token models.EmailToken
	err := s.db.Where("token_hash = ? AND purpose = ? AND used_at IS NULL", hashToken(rawToken), purpose).
		First(&token).Error
	if err != nil {
		return nil, ErrInvalidToken
	}
	if time.Now().After(token.ExpiresAt) {
		return nil, ErrInvalidToken
	}

	now := time.Now()
	if err := s.db.Model(&token).Update("used_at", &now).Error; err != nil {
		return nil, err
	}
	return &token, nil
}

func (s *AuthService) generateTokenPair(user *models.User) (*dto.AuthResponse, error) {
	accessToken, err := s.generateAccessToken(user)
	if err != nil {
		return nil, err
	}

	refreshToken, err := s.generateRefreshToken(user)
	if err != nil {
		return nil, err
	}

	return &dto.AuthResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User: dto.UserResponse{
			ID:            user.ID,
			Email:         user.Email,
			Role:          user.Role,
			EmailVerified: user.EmailVerified,
		},
	}, nil
}

func (s *AuthService) generateAccessToken(user *models.User) (string, error) {
	claims := jwt.MapClaims{
		"sub":   user.ID.String(),
		"email": user.Email,
		"role":  user.Role,
		"iat":   time.Now().Unix(),
		"exp":   time.Now().Add(s.cfg.JWTAccessExpiry).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.JWTSecret))
}

func (s *AuthService) generateRefreshToken(user *models.User) (string, error) {
	rawToken, err := randomToken()
	if err != nil {
		return "", err
	}

	record := models.RefreshToken{
		ID:        uuid.New(),
		UserID:    user.ID,
		TokenHash: hashToken(rawToken),
		ExpiresAt: time.Now().Add(s.cfg.JWTRefreshExpiry),
	}
	if err := s.db.Create(&record).Error; err != nil {
		return "", fmt.Errorf("failed to store refresh token: %w", err)
	}

	return rawToken, nil
}

func randomToken() (string, error) {
	rawBytes := make([]byte, 32)
	if _, err := rand.Read(rawBytes); err != nil {
		return "", fmt.Errorf("failed to generate random bytes: %w", err)
	}
	return base64.URLEncoding.EncodeToString(rawBytes), nil
}

func hashToken(token string) string {
	h := sha256.Sum256([]byte(token))
	return fmt.Sprintf("%x", h)
}
