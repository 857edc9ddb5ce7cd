package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"bookstore-api/internal/domains/user/model"
	"bookstore-api/internal/infrastructure/database"
	"bookstore-api/pkg/container"
)

// migrator applies the schema and returns the versions it applied.
type migrator func(ctx context.Context) ([]string, error)

func poolMigrator(c *container.Container) migrator {
	return func(ctx context.Context) ([]string, error) {
		return database.Migrate(ctx, c.DB.Pool)
	}
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply pending database migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := container.NewContainer()
		if err != nil {
			return err
		}
		defer c.Cleanup()

		ctx, cancel := context.WithTimeout(cmd.Context(), 2*time.Minute)
		defer cancel()

		return migrateSchema(ctx, c, poolMigrator(c))
	},
}

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Create the Administrator and Customer roles and the default users",
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := container.NewContainer()
		if err != nil {
			return err
		}
		defer c.Cleanup()

		ctx, cancel := context.WithTimeout(cmd.Context(), time.Minute)
		defer cancel()

		return seedUsers(ctx, c)
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd, seedCmd)
}

// prepareStore runs on every serve: both steps are idempotent, so a fresh
// database comes up with the schema and the default accounts.
func prepareStore(ctx context.Context, c *container.Container, migrate migrator) error {
	if err := migrateSchema(ctx, c, migrate); err != nil {
		return err
	}
	return seedUsers(ctx, c)
}

func migrateSchema(ctx context.Context, c *container.Container, migrate migrator) error {
	applied, err := migrate(ctx)
	if err != nil {
		return fmt.Errorf("migrate: %w", err)
	}

	c.Log.Info("migrations applied", map[string]interface{}{"applied": applied, "count": len(applied)})
	return nil
}

func seedUsers(ctx context.Context, c *container.Container) error {
	users := model.DefaultSeedUsers(c.Config.Seed.AdminPassword, c.Config.Seed.CustomerPassword)
	created, err := c.UserService.Seed(ctx, users)
	if err != nil {
		return fmt.Errorf("seed: %w", err)
	}

	c.Log.Info("seed completed", map[string]interface{}{"created": created})
	return nil
}
