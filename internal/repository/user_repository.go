package repository

import (
	"strings"
	"time"

	"github.com/artisanhub/internal/models"

	"gorm.io/gorm"
)

// UserRepository user persistence
type UserRepository interface {
	GetByEmail(email string) (*models.User, error)
	GetByID(id uint) (*models.User, error)
	Create(user *models.User) error
	Update(user *models.User) error
	UpdatePassword(userID uint, passwordHash string) error
	TouchLastLogin(userID uint, at time.Time) error
}

// GormUserRepository gorm implementation
type GormUserRepository struct {
	db *gorm.DB
}

// NewUserRepository builds the user repository
func NewUserRepository(db *gorm.DB) *GormUserRepository {
	return &GormUserRepository{db: db}
}

// GetByEmail looks a user up by lower-cased email
func (r *GormUserRepository) GetByEmail(email string) (*models.User, error) {
	return firstOrNil[models.User](r.db.Where("email = ?", strings.ToLower(strings.TrimSpace(email))))
}

func (r *GormUserRepository) GetByID(id uint) (*models.User, error) {
	return firstOrNil[models.User](r.db, id)
}

func (r *GormUserRepository) Create(user *models.User) error {
	return r.db.Create(user).Error
}

func (r *GormUserRepository) Update(user *models.User) error {
	return r.db.Save(user).Error
}

// UpdatePassword stores a new hash and revokes every token issued so far
func (r *GormUserRepository) UpdatePassword(userID uint, passwordHash string) error {
	now := time.Now()
	return r.db.Model(&models.User{}).Where("id = ?", userID).Updates(map[string]interface{}{
		"password_hash":        passwordHash,
		"token_version":        gorm.Expr("token_version + 1"),
		"token_invalid_before": now,
		"updated_at":           now,
	}).Error
}

func (r *GormUserRepository) TouchLastLogin(userID uint, at time.Time) error {
	return r.db.Model(&models.User{}).Where("id = ?", userID).UpdateColumn("last_login_at", at).Error
}
