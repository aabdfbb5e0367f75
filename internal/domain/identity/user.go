package identity

import (
	"strings"

	"github.com/cotizador/backend/internal/domain/shared"
	"golang.org/x/crypto/bcrypt"
)

// Password cost for bcrypt
const bcryptCost = 10

// User represents an account that can operate the back office.
// Admins additionally pass the authorization gate on privileged endpoints.
type User struct {
	shared.BaseEntity
	Username     string `gorm:"type:varchar(100);not null"`
	Email        string `gorm:"type:varchar(200);not null;uniqueIndex"`
	PasswordHash string `gorm:"type:varchar(100);not null"`
	IsAdmin      bool   `gorm:"not null;default:false"`
	IsActive     bool   `gorm:"not null;default:true"`
}

// TableName returns the table name for GORM
func (User) TableName() string {
	return "users"
}

// NewUser creates a new active user with a hashed password
func NewUser(username, email, password string, isAdmin bool) (*User, error) {
	username = strings.TrimSpace(username)
	email = strings.ToLower(strings.TrimSpace(email))

	if username == "" {
		return nil, shared.NewDomainError("INVALID_USERNAME", "Username cannot be empty")
	}
	if email == "" || !strings.Contains(email, "@") {
		return nil, shared.NewDomainError("INVALID_EMAIL", "A valid email is required")
	}
	if len(password) < 8 {
		return nil, shared.NewDomainError("INVALID_PASSWORD", "Password must have at least 8 characters")
	}

	hash, err := HashPassword(password)
	if err != nil {
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to hash password")
	}

	return &User{
		BaseEntity:   shared.NewBaseEntity(),
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		IsAdmin:      isAdmin,
		IsActive:     true,
	}, nil
}

// VerifyPassword checks a plaintext password against the stored hash
func (u *User) VerifyPassword(password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) == nil
}

// ChangePassword replaces the stored password hash
func (u *User) ChangePassword(newPassword string) error {
	if len(newPassword) < 8 {
		return shared.NewDomainError("INVALID_PASSWORD", "Password must have at least 8 characters")
	}
	hash, err := HashPassword(newPassword)
	if err != nil {
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to hash password")
	}
	u.PasswordHash = hash
	u.Touch()
	return nil
}

// ToggleActive flips the active flag and reports the new state
func (u *User) ToggleActive() bool {
	u.IsActive = !u.IsActive
	u.Touch()
	return u.IsActive
}

// CanLogin reports whether the account may authenticate
func (u *User) CanLogin() bool {
	return u.IsActive
}

// HashPassword hashes a plaintext password with bcrypt
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
