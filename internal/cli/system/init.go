package system

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/julianstephens/studyplan/internal/cli"
	"github.com/julianstephens/studyplan/internal/constants"
	"github.com/julianstephens/studyplan/internal/storage"
	"github.com/julianstephens/studyplan/internal/storage/postgres"
)

type InitCmd struct {
	Force  bool   `help:"Force reset by deleting existing storage before initialization."`
	Source string `help:"Source store path or connection string to copy classes, assignments and settings from."`
}

func (c *InitCmd) Run(ctx *cli.Context) error {
	if c.Force {
		if err := c.reset(ctx); err != nil {
			return err
		}
	}

	if err := ctx.Store.Init(); err != nil {
		return err
	}
	ctx.Printf("Initialized %s storage at: %s\n", constants.AppName, ctx.Store.GetConfigPath())

	if c.Source != "" {
		ctx.Printf("Copying data from: %s\n", c.Source)
		if err := c.copyFrom(ctx, c.Source); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
		ctx.Println("Migration completed successfully!")
	}
	return nil
}

func (c *InitCmd) reset(ctx *cli.Context) error {
	if _, ok := ctx.Store.(*postgres.Store); ok {
		return errors.New("--force is not supported for PostgreSQL storage")
	}

	dbPath := ctx.Store.GetConfigPath()
	if c.Source != "" {
		absDB, err := filepath.Abs(dbPath)
		if err == nil {
			dbPath = absDB
		}
		absSource, err := filepath.Abs(cli.ExpandPath(c.Source))
		if err == nil && absSource == dbPath {
			return fmt.Errorf("cannot use --force when source and destination are the same: %s", dbPath)
		}
	}

	if _, err := os.Stat(dbPath); err == nil {
		if err := ctx.Store.Close(); err != nil {
			return fmt.Errorf("failed to close existing storage: %w", err)
		}
		if err := os.Remove(dbPath); err != nil {
			return fmt.Errorf("failed to delete existing storage: %w", err)
		}
		ctx.Printf("Deleted existing storage at: %s\n", dbPath)
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("failed to access existing storage: %w", err)
	}
	return nil
}

// copyFrom copies each stored key verbatim, so it works between any two
// backends.
func (c *InitCmd) copyFrom(ctx *cli.Context, source string) error {
	src, err := cli.NewStore(source, filepath.Dir(ctx.Store.GetConfigPath()))
	if err != nil {
		return err
	}
	if err := src.Load(); err != nil {
		return fmt.Errorf("failed to load source storage: %w", err)
	}
	defer src.Close()

	for _, key := range []string{constants.KeySettings, constants.KeyClasses, constants.KeyAssignments} {
		value, err := src.Get(key)
		if errors.Is(err, storage.ErrNotFound) {
			continue
		}
		if err != nil {
			return fmt.Errorf("failed to read %s from source: %w", key, err)
		}
		if err := ctx.Store.Put(key, value); err != nil {
			return fmt.Errorf("failed to write %s: %w", key, err)
		}
		ctx.Printf("  Copied %s\n", key)
	}
	return nil
}
