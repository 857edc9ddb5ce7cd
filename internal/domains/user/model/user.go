package model

import (
	"errors"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/google/uuid"
)

// Roles
const (
	RoleAdministrator = "Administrator"
	RoleCustomer      = "Customer"
)

var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrUserNotFound       = errors.New("user not found")
	ErrUserExists         = errors.New("user already exists")
	ErrUnknownRole        = errors.New("role does not exist")
)

// User is an identity store account. Never serialized to clients.
type User struct {
	ID           uuid.UUID
	UserName     string
	Email        string
	PasswordHash string
	Roles        []string
	CreatedAt    time.Time
}

// ========================================
// AUTH DTOs
// ========================================

// LoginRequest - POST /api/users
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (r LoginRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Username, validation.Required.Error("username is required")),
		validation.Field(&r.Password, validation.Required.Error("password is required")),
	)
}

// LoginResponse - issued bearer token
type LoginResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// UnauthorizedLogin is echoed back on a failed login. It never carries the password.
type UnauthorizedLogin struct {
	Username string `json:"username"`
}

// ========================================
// SEED
// ========================================

// SeedUser is an account created by the seeder when absent.
type SeedUser struct {
	UserName string
	Email    string
	Password string
	Roles    []string
}

func (s SeedUser) Validate() error {
	return validation.ValidateStruct(&s,
		validation.Field(&s.UserName, validation.Required),
		validation.Field(&s.Email, validation.Required, is.Email),
		validation.Field(&s.Password, validation.Required, validation.Length(8, 128)),
		validation.Field(&s.Roles, validation.Each(validation.In(RoleAdministrator, RoleCustomer))),
	)
}

// DefaultSeedUsers returns the admin and the two customer accounts.
func DefaultSeedUsers(adminPassword, customerPassword string) []SeedUser {
	return []SeedUser{
		{UserName: "admin", Email: "admin@bookstore.com", Password: adminPassword, Roles: []string{RoleAdministrator}},
		{UserName: "customer01", Email: "customer01@mail.com", Password: customerPassword, Roles: []string{RoleCustomer}},
		{UserName: "customer02", Email: "customer02@mail.com", Password: customerPassword, Roles: []string{RoleCustomer}},
	}
}
