package storage

import (
	"encoding/json"
	"errors"

	"github.com/julianstephens/studyplan/internal/constants"
	apperrors "github.com/julianstephens/studyplan/internal/errors"
	"github.com/julianstephens/studyplan/internal/logger"
	"github.com/julianstephens/studyplan/internal/models"
)

// LoadClasses reads the class collection. Missing or corrupt data yields an
// empty collection.
func LoadClasses(p Provider) []models.ClassEntry {
	return loadList[models.ClassEntry](p, constants.KeyClasses)
}

// LoadAssignments reads the assignment collection in stored order. Missing
// or corrupt data yields an empty collection.
func LoadAssignments(p Provider) []models.AssignmentEntry {
	return loadList[models.AssignmentEntry](p, constants.KeyAssignments)
}

// SaveClasses overwrites the stored class collection.
func SaveClasses(p Provider, classes []models.ClassEntry) error {
	return saveValue(p, constants.KeyClasses, nonNil(classes))
}

// SaveAssignments overwrites the stored assignment collection.
func SaveAssignments(p Provider, assignments []models.AssignmentEntry) error {
	return saveValue(p, constants.KeyAssignments, nonNil(assignments))
}

// LoadSettings reads settings with defaults applied to anything missing.
func LoadSettings(p Provider) models.Settings {
	var settings models.Settings
	data, err := p.Get(constants.KeySettings)
	switch {
	case errors.Is(err, ErrNotFound):
	case err != nil:
		logger.Warn("Failed to read settings", "error", err)
	default:
		if err := json.Unmarshal(data, &settings); err != nil {
			logger.Warn("Stored settings are corrupt, using defaults", "error", err)
			settings = models.Settings{}
		}
	}
	models.ApplyDefaultSettings(&settings)
	return settings
}

// SaveSettings overwrites the stored settings.
func SaveSettings(p Provider, settings models.Settings) error {
	return saveValue(p, constants.KeySettings, settings)
}

func loadList[T any](p Provider, key string) []T {
	data, err := p.Get(key)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			logger.Warn("Failed to read collection", "key", key, "error", err)
		}
		return []T{}
	}

	var out []T
	if err := json.Unmarshal(data, &out); err != nil {
		logger.Warn("Stored collection is corrupt, starting empty", "key", key, "error", err)
		return []T{}
	}
	if out == nil {
		out = []T{}
	}
	return out
}

func saveValue(p Provider, key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return apperrors.StorageWrite(key, err)
	}
	if err := p.Put(key, data); err != nil {
		return apperrors.StorageWrite(key, err)
	}
	logger.Debug("Saved collection", "key", key, "bytes", len(data))
	return nil
}

// nonNil keeps empty collections serialized as [] rather than null.
func nonNil[T any](list []T) []T {
	if list == nil {
		return []T{}
	}
	return list
}
