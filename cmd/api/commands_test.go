package main

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bookstore-api/internal/config"
	"bookstore-api/internal/domains/user/model"
	"bookstore-api/internal/testutil"
	"bookstore-api/pkg/container"
	"bookstore-api/pkg/logger"
)

func newStartupContainer(users *testutil.Users) *container.Container {
	cfg := &config.Config{
		App:  config.AppConfig{Environment: config.EnvironmentDevelopment, BcryptCost: 4},
		JWT:  config.JWTConfig{Secret: strings.Repeat("k", 32), Issuer: "bookstore-api"},
		Seed: config.SeedConfig{AdminPassword: "Adm1n!pass", CustomerPassword: "Cust0mer!pass"},
	}
	cat := testutil.NewCatalog()
	return container.Wire(cfg, logger.Nop(), container.Repositories{
		Authors: cat.Authors,
		Books:   cat.Books,
		Users:   users,
	})
}

func TestPrepareStore(t *testing.T) {
	users := testutil.NewUsers()
	c := newStartupContainer(users)

	var migrated int
	migrate := func(ctx context.Context) ([]string, error) {
		migrated++
		return []string{"001_catalog.sql"}, nil
	}

	require.NoError(t, prepareStore(context.Background(), c, migrate))
	assert.Equal(t, 1, migrated)

	for _, name := range []string{"admin", "customer01", "customer02"} {
		exists, err := users.ExistsByUserName(context.Background(), name)
		require.NoError(t, err)
		assert.True(t, exists, name)
	}
	assert.True(t, users.HasRole(model.RoleAdministrator))
	assert.True(t, users.HasRole(model.RoleCustomer))

	res, err := c.UserService.Login(context.Background(), model.LoginRequest{Username: "admin", Password: "Adm1n!pass"})
	require.NoError(t, err)
	assert.NotEmpty(t, res.Token)

	t.Run("second start changes nothing", func(t *testing.T) {
		require.NoError(t, prepareStore(context.Background(), c, migrate))
		assert.Equal(t, 2, migrated)
	})
}

func TestPrepareStoreStopsOnMigrationFailure(t *testing.T) {
	users := testutil.NewUsers()
	c := newStartupContainer(users)

	err := prepareStore(context.Background(), c, func(ctx context.Context) ([]string, error) {
		return nil, errors.New("relation already exists")
	})
	require.Error(t, err)

	exists, err := users.ExistsByUserName(context.Background(), "admin")
	require.NoError(t, err)
	assert.False(t, exists)
}
