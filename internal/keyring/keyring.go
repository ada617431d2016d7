package keyring

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/zalando/go-keyring"

	"github.com/julianstephens/studyplan/internal/constants"
	"github.com/julianstephens/studyplan/internal/logger"
)

var (
	// ErrNotFound is returned when no credentials are found in the keyring
	ErrNotFound = errors.New("credentials not found in keyring")
	// ErrKeyringUnavailable is returned when the OS keyring is not available
	ErrKeyringUnavailable = errors.New("OS keyring is not available")
	// ErrNoConnectionString is returned when neither the keyring nor the
	// environment supplies a DSN.
	ErrNoConnectionString = errors.New("no database connection string configured")
)

// GetConnectionString retrieves the database connection string from the OS keyring.
func GetConnectionString() (string, error) {
	connStr, err := keyring.Get(constants.AppName, constants.DefaultKeyringUser)
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("%w: %v", ErrKeyringUnavailable, err)
	}
	return connStr, nil
}

func SetConnectionString(connStr string) error {
	if strings.TrimSpace(connStr) == "" {
		return errors.New("connection string cannot be empty")
	}
	if err := keyring.Set(constants.AppName, constants.DefaultKeyringUser, connStr); err != nil {
		return fmt.Errorf("failed to store credentials in keyring: %w", err)
	}
	return nil
}

func DeleteConnectionString() error {
	err := keyring.Delete(constants.AppName, constants.DefaultKeyringUser)
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to delete credentials from keyring: %w", err)
	}
	return nil
}

// IsAvailable is a best-effort probe of the OS keyring.
func IsAvailable() bool {
	_, err := keyring.Get(constants.AppName, "test-availability")
	return err == nil || errors.Is(err, keyring.ErrNotFound)
}

// LoadEnvFile loads <configDir>/.env into the process environment without
// overriding variables that are already set. A missing file is not an error.
func LoadEnvFile(configDir string) error {
	path := filepath.Join(configDir, constants.EnvFileName)
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("failed to load %s: %w", path, err)
	}
	logger.Debug("Loaded environment file", "path", path)
	return nil
}

// ResolveConnectionString finds the PostgreSQL DSN: the OS keyring first,
// then STUDYPLAN_DB_CONNECTION (after loading the config directory's .env).
func ResolveConnectionString(configDir string) (string, error) {
	connStr, err := GetConnectionString()
	if err == nil {
		return connStr, nil
	}
	if !errors.Is(err, ErrNotFound) {
		logger.Warn("Keyring lookup failed, falling back to environment", "error", err)
	}

	if err := LoadEnvFile(configDir); err != nil {
		return "", err
	}
	if env := strings.TrimSpace(os.Getenv(constants.DBConnectionEnv)); env != "" {
		return env, nil
	}
	return "", ErrNoConnectionString
}
