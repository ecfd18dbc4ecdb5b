package services

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"time"

	"github.com/ahmetcoskunkizilkaya/community-hub/internal/community"
	"github.com/ahmetcoskunkizilkaya/community-hub/internal/config"
	"github.com/ahmetcoskunkizilkaya/community-hub/internal/dto"
	"github.com/ahmetcoskunkizilkaya/community-hub/internal/models"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	// ErrEmailTaken's message is part of the signup contract.
	ErrEmailTaken         = errors.New("Email already exists")
	ErrInvalidSignup      = errors.New("email required and password must be at least 6 characters")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidToken       = errors.New("invalid or expired refresh token")
	ErrUserNotFound       = errors.New("user not found")
)

type AuthService struct {
	db       *gorm.DB
	cfg      *config.Config
	registry *community.Registry
}

func NewAuthService(db *gorm.DB, cfg *config.Config, registry *community.Registry) *AuthService {
	return &AuthService{db: db, cfg: cfg, registry: registry}
}

// Signup creates the identity and the user record in one transaction, so a
// failure at any point leaves nothing behind. An email matching the
// community's configured bootstrap admin is seeded with the admin role; this
// fires only when no record exists yet, which signup guarantees.
func (s *AuthService) Signup(communityID string, req *dto.SignupRequest) (*dto.AuthResponse, error) {
	if len(req.Email) == 0 || len(req.Password) < 6 {
		return nil, ErrInvalidSignup
	}

	var existing models.User
	err := s.db.Scopes(community.Scoped(communityID)).Where("email = ?", req.Email).First(&existing).Error
	if err == nil {
		return nil, ErrEmailTaken
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	role := models.RoleUser
	if boot := s.registry.BootstrapAdminEmail(communityID); boot != "" && req.Email == boot {
		role = models.RoleAdmin
	}

	user := models.User{
		ID:          uuid.New(),
		CommunityID: communityID,
		Email:       req.Email,
		Password:    string(hash),
		Name:        req.Name,
		Phone:       req.Phone,
		Role:        role,
	}

	var resp *dto.AuthResponse
	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&user).Error; err != nil {
			// A concurrent signup can slip past the precheck; the unique
			// index on (community_id, email) is the arbiter.
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrEmailTaken
			}
			return fmt.Errorf("failed to create user: %w", err)
		}
		var txErr error
		resp, txErr = s.generateTokenPair(tx, communityID, &user)
		return txErr
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

func (s *AuthService) Login(communityID string, req *dto.LoginRequest) (*dto.AuthResponse, error) {
	var user models.User
	if err := s.db.Scopes(community.Scoped(communityID)).Where("email = ?", req.Email).First(&user).Error; err != nil {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return s.generateTokenPair(s.db, communityID, &user)
}

func (s *AuthService) Refresh(communityID string, req *dto.RefreshRequest) (*dto.AuthResponse, error) {
	tokenHash := hashToken(req.RefreshToken)

	var stored models.RefreshToken
	if err := s.db.Scopes(community.Scoped(communityID)).Where("token_hash = ? AND revoked = ?", tokenHash, false).First(&stored).Error; err != nil {
		return nil, ErrInvalidToken
	}

	if time.Now().After(stored.ExpiresAt) {
		s.db.Model(&stored).Update("revoked", true)
		return nil, ErrInvalidToken
	}

	s.db.Model(&stored).Update("revoked", true)

	var user models.User
	if err := s.db.Scopes(community.Scoped(communityID)).First(&user, "id = ?", stored.UserID).Error; err != nil {
		return nil, fmt.Errorf("user not found: %w", err)
	}

	return s.generateTokenPair(s.db, communityID, &user)
}

func (s *AuthService) Logout(communityID string, req *dto.LogoutRequest) error {
	tokenHash := hashToken(req.RefreshToken)
	return s.db.Model(&models.RefreshToken{}).
		Scopes(community.Scoped(communityID)).
		Where("token_hash = ?", tokenHash).
		Update("revoked", true).Error
}

func (s *AuthService) generateTokenPair(db *gorm.DB, communityID string, user *models.User) (*dto.AuthResponse, error) {
	accessToken, err := s.generateAccessToken(communityID, user)
	if err != nil {
		return nil, err
	}

	refreshToken, err := s.generateRefreshToken(db, communityID, user)
	if err != nil {
		return nil, err
	}

	return &dto.AuthResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User:         *user,
	}, nil
}

func (s *AuthService) generateAccessToken(communityID string, user *models.User) (string, error) {
	claims := jwt.MapClaims{
		"sub":          user.ID.String(),
		"email":        user.Email,
		"community_id": communityID,
		"iat":          time.Now().Unix(),
		"exp":          time.Now().Add(s.cfg.JWTAccessExpiry).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.JWTSecret))
}

func (s *AuthService) generateRefreshToken(db *gorm.DB, communityID string, user *models.User) (string, error) {
	rawBytes := make([]byte, 32)
	if _, err := rand.Read(rawBytes); err != nil {
		return "", fmt.Errorf("failed to generate random bytes: %w", err)
	}

	rawToken := base64.URLEncoding.EncodeToString(rawBytes)
	tokenHash := hashToken(rawToken)

	record := models.RefreshToken{
		ID:          uuid.New(),
		CommunityID: communityID,
		UserID:      user.ID,
		TokenHash:   tokenHash,
		ExpiresAt:   time.Now().Add(s.cfg.JWTRefreshExpiry),
	}

	if err := db.Create(&record).Error; err != nil {
		return "", fmt.Errorf("failed to store refresh token: %w", err)
	}

	return rawToken, nil
}

func hashToken(token string) string {
	h := sha256.Sum256([]byte(token))
	return fmt.Sprintf("%x", h)
}
