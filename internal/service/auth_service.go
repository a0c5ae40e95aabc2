package service

import (
	"context"
	"strings"
	"time"

	"github.com/artisanhub/internal/cache"
	"github.com/artisanhub/internal/config"
	"github.com/artisanhub/internal/constants"
	"github.com/artisanhub/internal/logger"
	"github.com/artisanhub/internal/models"
	"github.com/artisanhub/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// AuthService registration, login and account management
type AuthService struct {
	cfg      *config.Config
	userRepo repository.UserRepository
}

// NewAuthService builds the auth service
func NewAuthService(cfg *config.Config, userRepo repository.UserRepository) *AuthService {
	return &AuthService{
		cfg:      cfg,
		userRepo: userRepo,
	}
}

// JWTClaims bearer token claims
type JWTClaims struct {
	UserID       uint   `json:"user_id"`
	Role         string `json:"role"`
	TokenVersion uint64 `json:"token_version"`
	jwt.RegisteredClaims
}

// RegisterInput registration form
type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Role     string
	Phone    string
}

// ProfileInput partial profile update; nil fields are left untouched
type ProfileInput struct {
	Name           *string                `json:"name"`
	Phone          *string                `json:"phone"`
	Address        *models.Address        `json:"address"`
	ArtisanProfile *models.ArtisanProfile `json:"artisan_profile"`
}

func (s *AuthService) expireHours() int {
	if s.cfg.JWT.ExpireHours <= 0 {
		return 24 * 7
	}
	return s.cfg.JWT.ExpireHours
}

// GenerateJWT signs an HS256 token for user
func (s *AuthService) GenerateJWT(user *models.User) (string, time.Time, error) {
	now := time.Now()
	expiresAt := now.Add(time.Duration(s.expireHours()) * time.Hour)
	claims := JWTClaims{
		UserID:       user.ID,
		Role:         user.Role,
		TokenVersion: user.TokenVersion,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(s.cfg.JWT.SecretKey))
	if err != nil {
		return "", time.Time{}, err
	}
	return tokenString, expiresAt, nil
}

// ParseJWT verifies signature and expiry
func (s *AuthService) ParseJWT(tokenString string) (*JWTClaims, error) {
	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	claims := &JWTClaims{}
	token, err := parser.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte(s.cfg.JWT.SecretKey), nil
	})
	if err != nil || !token.Valid || claims.UserID == 0 {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// Authenticate turns a bearer token into an Identity, checking status and revocation.
// The cached session is tried first; the database is the fallback.
func (s *AuthService) Authenticate(ctx context.Context, tokenString string) (Identity, error) {
	claims, err := s.ParseJWT(tokenString)
	if err != nil {
		return Identity{}, err
	}
	session, hit, err := cache.LoadSession(ctx, claims.UserID)
	if err != nil {
		logger.Warnw("auth_session_cache_read_failed", "user_id", claims.UserID, "error", err)
	}
	if !hit {
		user, err := s.userRepo.GetByID(claims.UserID)
		if err != nil {
			return Identity{}, err
		}
		if user == nil {
			return Identity{}, ErrInvalidToken
		}
		session = cache.SessionOf(user)
		if err := cache.StoreSession(ctx, session); err != nil {
			logger.Warnw("auth_session_cache_write_failed", "user_id", claims.UserID, "error", err)
		}
	}
	if !session.Active() {
		return Identity{}, ErrUserDisabled
	}
	var issuedAt time.Time
	if claims.IssuedAt != nil {
		issuedAt = claims.IssuedAt.Time
	}
	if !session.Accepts(claims.TokenVersion, issuedAt) {
		return Identity{}, ErrTokenRevoked
	}
	return Identity{UserID: session.UserID, Role: session.Role}, nil
}

// Register creates a customer or artisan account and signs it in
func (s *AuthService) Register(input RegisterInput) (*models.User, string, time.Time, error) {
	role := strings.TrimSpace(input.Role)
	if role == "" {
		role = constants.RoleCustomer
	}
	if role != constants.RoleCustomer && role != constants.RoleArtisan {
		return nil, "", time.Time{}, ErrRoleNotAllowed
	}
	if err := validatePassword(s.cfg.Security.PasswordMinLength, "password", input.Password); err != nil {
		return nil, "", time.Time{}, err
	}
	user, err := models.NewUser(input.Name, input.Email, role)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	if phone := strings.TrimSpace(input.Phone); phone != "" {
		user.Phone = phone
		if err := user.Validate(); err != nil {
			return nil, "", time.Time{}, err
		}
	}

	exist, err := s.userRepo.GetByEmail(user.Email)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	if exist != nil {
		return nil, "", time.Time{}, ErrEmailExists
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	now := time.Now()
	user.PasswordHash = string(hashed)
	user.LastLoginAt = &now
	if err := s.userRepo.Create(user); err != nil {
		return nil, "", time.Time{}, err
	}

	token, expiresAt, err := s.GenerateJWT(user)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	_ = cache.StoreSession(context.Background(), cache.SessionOf(user))
	return user, token, expiresAt, nil
}

// Login checks credentials and issues a token
func (s *AuthService) Login(email, password string) (*models.User, string, time.Time, error) {
	user, err := s.userRepo.GetByEmail(email)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	if user == nil {
		return nil, "", time.Time{}, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, "", time.Time{}, ErrInvalidCredentials
	}
	if !strings.EqualFold(user.Status, constants.UserStatusActive) {
		return nil, "", time.Time{}, ErrUserDisabled
	}

	token, expiresAt, err := s.GenerateJWT(user)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	now := time.Now()
	if err := s.userRepo.TouchLastLogin(user.ID, now); err != nil {
		logger.Warnw("auth_touch_last_login_failed", "user_id", user.ID, "error", err)
	}
	user.LastLoginAt = &now
	_ = cache.StoreSession(context.Background(), cache.SessionOf(user))
	return user, token, expiresAt, nil
}

// Profile the caller's account
func (s *AuthService) Profile(userID uint) (*models.User, error) {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

// UpdateProfile applies the provided fields; artisan profile only for artisans
func (s *AuthService) UpdateProfile(userID uint, input ProfileInput) (*models.User, error) {
	user, err := s.Profile(userID)
	if err != nil {
		return nil, err
	}
	updated := false
	if input.Name != nil {
		if name := strings.TrimSpace(*input.Name); name != "" {
			user.Name = name
			updated = true
		}
	}
	if input.Phone != nil {
		user.Phone = strings.TrimSpace(*input.Phone)
		updated = true
	}
	if input.Address != nil {
		user.Address = *input.Address
		updated = true
	}
	if input.ArtisanProfile != nil {
		if user.Role != constants.RoleArtisan && user.Role != constants.RoleAdmin {
			return nil, ErrForbidden
		}
		user.ArtisanProfile = *input.ArtisanProfile
		updated = true
	}
	if !updated {
		return nil, ErrProfileEmpty
	}
	if err := user.Validate(); err != nil {
		return nil, err
	}
	if err := s.userRepo.Update(user); err != nil {
		return nil, err
	}
	return user, nil
}

// ChangePassword verifies the current password, stores the new one and revokes older tokens
func (s *AuthService) ChangePassword(userID uint, currentPassword, newPassword string) error {
	user, err := s.Profile(userID)
	if err != nil {
		return err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(currentPassword)); err != nil {
		return ErrInvalidPassword
	}
	if err := validatePassword(s.cfg.Security.PasswordMinLength, "new_password", newPassword); err != nil {
		return err
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	if err := s.userRepo.UpdatePassword(user.ID, string(hashed)); err != nil {
		return err
	}
	if err := cache.ForgetSession(context.Background(), user.ID); err != nil {
		logger.Warnw("auth_state_cache_delete_failed", "user_id", user.ID, "error", err)
	}
	return nil
}
