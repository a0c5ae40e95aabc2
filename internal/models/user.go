package models

import (
	"strings"
	"time"

	"github.com/artisanhub/internal/constants"

	"gorm.io/gorm"
)

// Address postal address stored inline on the owning row
type Address struct {
	Street  string `gorm:"type:varchar(100)" json:"street" validate:"omitempty,min=5,max=100"` // street
	City    string `gorm:"type:varchar(50)" json:"city" validate:"omitempty,min=2,max=50"`     // city
	State   string `gorm:"type:varchar(50)" json:"state" validate:"omitempty,max=50"`          // state
	ZipCode string `gorm:"type:varchar(20)" json:"zip_code" validate:"omitempty,max=20"`       // postal code
	Country string `gorm:"type:varchar(50)" json:"country" validate:"omitempty,max=50"`        // country
}

// ArtisanProfile seller-facing profile, only meaningful for artisans
type ArtisanProfile struct {
	Bio             string      `gorm:"type:varchar(500)" json:"bio" validate:"max=500"`                    // short biography
	Specialties     StringArray `gorm:"type:json" json:"specialties" validate:"max=20,dive,max=50"`         // crafts practised
	ExperienceYears int         `gorm:"not null;default:0" json:"experience_years" validate:"gte=0,lte=80"` // years of experience
	Location        string      `gorm:"type:varchar(100)" json:"location" validate:"max=100"`               // workshop location
}

// User account of a customer, artisan or admin
type User struct {
	ID                 uint           `gorm:"primarykey" json:"id"`                                                                                            // primary key
	Name               string         `gorm:"type:varchar(50);not null" json:"name" validate:"required,min=2,max=50"`                                          // display name
	Email              string         `gorm:"uniqueIndex;not null" json:"email" validate:"required,email"`                                                     // login email
	PasswordHash       string         `gorm:"not null" json:"-"`                                                                                               // bcrypt hash
	Role               string         `gorm:"type:varchar(20);not null;default:'customer';index" json:"role" validate:"required,oneof=customer artisan admin"` // role
	Phone              string         `gorm:"type:varchar(30)" json:"phone" validate:"omitempty,phone"`                                                        // phone number
	Address            Address        `gorm:"embedded;embeddedPrefix:address_" json:"address"`                                                                 // postal address
	ArtisanProfile     ArtisanProfile `gorm:"embedded;embeddedPrefix:artisan_" json:"artisan_profile"`                                                         // artisan profile
	Status             string         `gorm:"type:varchar(20);default:'active'" json:"status"`                                                                 // account status
	TokenVersion       uint64         `gorm:"not null;default:0" json:"-"`                                                                                     // bumped to revoke every token
	TokenInvalidBefore *time.Time     `gorm:"index" json:"-"`                                                                                                  // tokens issued before this are rejected
	LastLoginAt        *time.Time     `json:"last_login_at"`                                                                                                   // last login
	CreatedAt          time.Time      `gorm:"index" json:"created_at"`                                                                                         // created
	UpdatedAt          time.Time      `gorm:"index" json:"updated_at"`                                                                                         // updated
	DeletedAt          gorm.DeletedAt `gorm:"index" json:"-"`                                                                                                  // soft delete
}

// TableName table name
func (User) TableName() string {
	return "users"
}

// NewUser normalizes and validates a new account; the password hash is set by the caller
func NewUser(name, email, role string) (*User, error) {
	u := &User{
		Name:   strings.TrimSpace(name),
		Email:  strings.ToLower(strings.TrimSpace(email)),
		Role:   strings.TrimSpace(role),
		Status: constants.UserStatusActive,
	}
	if err := u.Validate(); err != nil {
		return nil, err
	}
	return u, nil
}

// Validate checks field constraints
func (u *User) Validate() error {
	return ValidateStruct(u)
}
