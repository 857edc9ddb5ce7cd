package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"bookstore-api/internal/domains/user/model"
	"bookstore-api/internal/domains/user/repository"
	"bookstore-api/pkg/jwt"
	"bookstore-api/pkg/logger"
)

// Service is what the user handler and the seed command depend on.
type Service interface {
	Login(ctx context.Context, req model.LoginRequest) (*model.LoginResponse, error)
	// Seed creates the roles and every absent user. Returns the users created.
	Seed(ctx context.Context, users []model.SeedUser) ([]string, error)
}

type userService struct {
	repo       repository.UserRepository
	tokens     *jwt.Manager
	bcryptCost int
	log        *logger.Logger
}

func NewUserService(repo repository.UserRepository, tokens *jwt.Manager, bcryptCost int, log *logger.Logger) Service {
	if bcryptCost == 0 {
		bcryptCost = bcrypt.DefaultCost
	}
	return &userService{
		repo:       repo,
		tokens:     tokens,
		bcryptCost: bcryptCost,
		log:        log,
	}
}

func (s *userService) Login(ctx context.Context, req model.LoginRequest) (*model.LoginResponse, error) {
	// 1. VALIDATE INPUT
	if err := req.Validate(); err != nil {
		return nil, err
	}

	// 2. FIND USER BY USERNAME
	u, err := s.repo.FindByUserName(ctx, req.Username)
	if err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			return nil, model.ErrInvalidCredentials
		}
		return nil, err
	}

	// 3. VERIFY PASSWORD
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)); err != nil {
		return nil, model.ErrInvalidCredentials
	}

	// 4. GENERATE JWT
	token, expiresAt, err := s.tokens.GenerateToken(u.ID.String(), u.Email, u.Roles)
	if err != nil {
		return nil, fmt.Errorf("generate access token: %w", err)
	}

	s.log.Info("user logged in", map[string]interface{}{"username": u.UserName})
	return &model.LoginResponse{
		Token:     token,
		ExpiresAt: expiresAt,
	}, nil
}

func (s *userService) Seed(ctx context.Context, users []model.SeedUser) ([]string, error) {
	for _, role := range []string{model.RoleAdministrator, model.RoleCustomer} {
		created, err := s.repo.EnsureRole(ctx, role)
		if err != nil {
			return nil, err
		}
		if created {
			s.log.Info("role seeded", map[string]interface{}{"role": role})
		}
	}

	var created []string
	for _, su := range users {
		if err := su.Validate(); err != nil {
			return created, fmt.Errorf("seed user %q: %w", su.UserName, err)
		}

		exists, err := s.repo.ExistsByUserName(ctx, su.UserName)
		if err != nil {
			return created, err
		}
		if exists {
			continue
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(su.Password), s.bcryptCost)
		if err != nil {
			return created, fmt.Errorf("hash password of %q: %w", su.UserName, err)
		}

		u := &model.User{
			ID:           uuid.New(),
			UserName:     su.UserName,
			Email:        su.Email,
			PasswordHash: string(hash),
			Roles:        su.Roles,
		}
		if err := s.repo.Create(ctx, u); err != nil {
			return created, err
		}

		s.log.Info("user seeded", map[string]interface{}{"username": u.UserName})
		created = append(created, u.UserName)
	}

	return created, nil
}
