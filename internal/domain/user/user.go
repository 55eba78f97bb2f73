package user

import (
	"fmt"
	"net/mail"
	"strings"
	"time"

	"cardly/internal/shared/authorization"
	"cardly/internal/shared/biztime"
	"cardly/internal/shared/errors"
)

// User is an account that owns cards or administers the platform.
type User struct {
	id           uint
	name         string
	email        string
	passwordHash string
	role         authorization.UserRole
	isActive     bool
	version      int
	createdAt    time.Time
	updatedAt    time.Time
}

// NormalizeEmail lower-cases and trims an address.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func validateName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", errors.NewValidationError("name is required")
	}
	if len(name) > 100 {
		return "", errors.NewValidationError("name is too long")
	}
	return name, nil
}

func validateEmail(email string) (string, error) {
	email = NormalizeEmail(email)
	if _, err := mail.ParseAddress(email); err != nil || email == "" {
		return "", errors.NewValidationError("invalid email", email)
	}
	return email, nil
}

// NewUser creates an active user.
func NewUser(name, email, passwordHash string, role authorization.UserRole) (*User, error) {
	name, err := validateName(name)
	if err != nil {
		return nil, err
	}
	email, err = validateEmail(email)
	if err != nil {
		return nil, err
	}
	if !role.IsValid() {
		return nil, errors.NewValidationError(fmt.Sprintf("invalid role: %s", role))
	}

	now := biztime.NowUTC()
	return &User{
		name:         name,
		email:        email,
		passwordHash: passwordHash,
		role:         role,
		isActive:     true,
		version:      1,
		createdAt:    now,
		updatedAt:    now,
	}, nil
}

// ReconstructUser reconstructs a user from persistence
func ReconstructUser(id uint, name, email, passwordHash string, role authorization.UserRole, isActive bool, version int, createdAt, updatedAt time.Time) *User {
	return &User{
		id:           id,
		name:         name,
		email:        email,
		passwordHash: passwordHash,
		role:         role,
		isActive:     isActive,
		version:      version,
		createdAt:    createdAt,
		updatedAt:    updatedAt,
	}
}

func (u *User) touch() {
	u.updatedAt = biztime.NowUTC()
	u.version++
}

func (u *User) Rename(name string) error {
	name, err := validateName(name)
	if err != nil {
		return err
	}
	u.name = name
	u.touch()
	return nil
}

func (u *User) ChangeEmail(email string) error {
	email, err := validateEmail(email)
	if err != nil {
		return err
	}
	u.email = email
	u.touch()
	return nil
}

func (u *User) ChangeRole(role authorization.UserRole) error {
	if !role.IsValid() {
		return errors.NewValidationError(fmt.Sprintf("invalid role: %s", role))
	}
	u.role = role
	u.touch()
	return nil
}

func (u *User) SetPasswordHash(hash string) {
	u.passwordHash = hash
	u.touch()
}

// SetActive reports whether the flag changed.
func (u *User) SetActive(active bool) bool {
	if u.isActive == active {
		return false
	}
	u.isActive = active
	u.touch()
	return true
}

func (u *User) ID() uint                     { return u.id }
func (u *User) Name() string                 { return u.name }
func (u *User) Email() string                { return u.email }
func (u *User) PasswordHash() string         { return u.passwordHash }
func (u *User) Role() authorization.UserRole { return u.role }
func (u *User) IsActive() bool               { return u.isActive }
func (u *User) Version() int                 { return u.version }
func (u *User) CreatedAt() time.Time         { return u.createdAt }
func (u *User) UpdatedAt() time.Time         { return u.updatedAt }

// SetID sets the user ID (only for persistence layer use)
func (u *User) SetID(id uint) error {
	if u.id != 0 {
		return fmt.Errorf("user ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("user ID cannot be zero")
	}
	u.id = id
	return nil
}
