package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/localnerve/jobboard/internal/models"
	"github.com/localnerve/jobboard/internal/types"
	"github.com/localnerve/jobboard/internal/validation"
	"gorm.io/gorm"
)

// ProfileUpdate carries the candidate fields a profile update may change.
// Nested objects are merged into the stored value key by key.
type ProfileUpdate struct {
	Name        *string         `json:"name,omitempty" validate:"omitempty,min=2,max=50"`
	Phone       *string         `json:"phone,omitempty" validate:"omitempty,max=30"`
	Location    json.RawMessage `json:"location,omitempty" swaggertype:"object"`
	Profile     json.RawMessage `json:"profile,omitempty" swaggertype:"object"`
	Preferences json.RawMessage `json:"preferences,omitempty" swaggertype:"object"`
}

// mergeJSON overlays the keys of patch onto base, merging nested objects
func mergeJSON[T any](base T, patch json.RawMessage) (T, error) {
	var zero T
	current, err := json.Marshal(base)
	if err != nil {
		return zero, err
	}

	var merged map[string]interface{}
	if err := json.Unmarshal(current, &merged); err != nil || merged == nil {
		merged = map[string]interface{}{}
	}
	var overlay map[string]interface{}
	if err := json.Unmarshal(patch, &overlay); err != nil {
		return zero, types.NewValidationError(map[string][]string{"body": {"must be a JSON object"}})
	}
	deepMerge(merged, overlay)

	out, err := json.Marshal(merged)
	if err != nil {
		return zero, err
	}
	var result T
	if err := json.Unmarshal(out, &result); err != nil {
		return zero, types.NewValidationError(map[string][]string{"body": {err.Error()}})
	}
	return result, nil
}

// deepMerge copies src into dst, descending into objects present on both sides
func deepMerge(dst, src map[string]interface{}) {
	for k, v := range src {
		if sub, ok := v.(map[string]interface{}); ok {
			if existing, ok := dst[k].(map[string]interface{}); ok {
				deepMerge(existing, sub)
				continue
			}
		}
		dst[k] = v
	}
}

// UpdateProfile applies a profile update to the candidate
func UpdateProfile(ctx context.Context, db *gorm.DB, candidateID string, in *ProfileUpdate) (*models.Candidate, error) {
	var result *models.Candidate

	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var c models.Candidate
		if err := forUpdate(tx).Where("id = ?", candidateID).First(&c).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return types.ErrUserNotFound
			}
			return err
		}

		if in.Name != nil {
			c.Name = *in.Name
		}
		if in.Phone != nil {
			c.Phone = *in.Phone
		}
		if len(in.Location) > 0 {
			loc, err := mergeJSON(c.Location.Data(), in.Location)
			if err != nil {
				return err
			}
			c.Location = models.NewJSONColumn(loc)
		}
		if len(in.Profile) > 0 {
			profile, err := mergeJSON(c.Profile.Data(), in.Profile)
			if err != nil {
				return err
			}
			if err := validation.Struct(&profile); err != nil {
				return err
			}
			c.Profile = models.NewJSONColumn(profile)
		}
		if len(in.Preferences) > 0 {
			prefs, err := mergeJSON(c.Preferences.Data(), in.Preferences)
			if err != nil {
				return err
			}
			if err := validation.Struct(&prefs); err != nil {
				return err
			}
			c.Preferences = models.NewJSONColumn(prefs)
		}

		if err := tx.Model(&c).Select("name", "phone", "location", "profile", "preferences").Updates(&c).Error; err != nil {
			return fmt.Errorf("failed to update profile: %w", err)
		}
		result = &c
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// ProfileSection is a list-valued section of the candidate profile whose entries carry their own ids
type ProfileSection[T models.ProfileEntry] struct {
	column   string
	notFound *types.CustomError
	get      func(*models.Candidate) []T
	set      func(*models.Candidate, []T)
	withID   func(T, string) T
}

// Profile sections
var (
	WorkExperienceSection = ProfileSection[models.WorkExperience]{
		column:   "work_experience",
		notFound: types.ErrExperienceNotFound,
		get:      func(c *models.Candidate) []models.WorkExperience { return c.WorkExperience.Data() },
		set: func(c *models.Candidate, v []models.WorkExperience) {
			c.WorkExperience = models.NewJSONColumn(v)
		},
		withID: func(e models.WorkExperience, id string) models.WorkExperience { e.ID = id; return e },
	}
	EducationSection = ProfileSection[models.Education]{
		column:   "education",
		notFound: types.ErrEducationNotFound,
		get:      func(c *models.Candidate) []models.Education { return c.Education.Data() },
		set:      func(c *models.Candidate, v []models.Education) { c.Education = models.NewJSONColumn(v) },
		withID:   func(e models.Education, id string) models.Education { e.ID = id; return e },
	}
	SkillSection = ProfileSection[models.Skill]{
		column:   "skills",
		notFound: types.ErrSkillNotFound,
		get:      func(c *models.Candidate) []models.Skill { return c.Skills.Data() },
		set:      func(c *models.Candidate, v []models.Skill) { c.Skills = models.NewJSONColumn(v) },
		withID:   func(e models.Skill, id string) models.Skill { e.ID = id; return e },
	}
	CertificationSection = ProfileSection[models.Certification]{
		column:   "certifications",
		notFound: types.ErrCertificationNotFound,
		get:      func(c *models.Candidate) []models.Certification { return c.Certifications.Data() },
		set: func(c *models.Candidate, v []models.Certification) {
			c.Certifications = models.NewJSONColumn(v)
		},
		withID: func(e models.Certification, id string) models.Certification { e.ID = id; return e },
	}
)

// mutate runs fn over the section's entries under a row lock and stores the result
func (s ProfileSection[T]) mutate(ctx context.Context, db *gorm.DB, candidateID string, fn func([]T) ([]T, error)) error {
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var c models.Candidate
		if err := forUpdate(tx).Select("id", s.column).Where("id = ?", candidateID).First(&c).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return types.ErrUserNotFound
			}
			return err
		}

		entries, err := fn(nonNil(s.get(&c)))
		if err != nil {
			return err
		}
		s.set(&c, entries)

		value, err := s.columnValue(&c)
		if err != nil {
			return err
		}
		return tx.Model(&models.Candidate{}).Where("id = ?", candidateID).Update(s.column, value).Error
	})
}

func (s ProfileSection[T]) columnValue(c *models.Candidate) (interface{}, error) {
	return models.NewJSONColumn(s.get(c)).Value()
}

// Add appends entries, assigning each a new id, and returns the added entries
func (s ProfileSection[T]) Add(ctx context.Context, db *gorm.DB, candidateID string, entries ...T) ([]T, error) {
	added := make([]T, 0, len(entries))
	for _, e := range entries {
		if err := validation.Struct(e); err != nil {
			return nil, err
		}
		added = append(added, s.withID(e, uuid.NewString()))
	}

	err := s.mutate(ctx, db, candidateID, func(current []T) ([]T, error) {
		return append(current, added...), nil
	})
	if err != nil {
		return nil, err
	}
	return added, nil
}

// List returns the section's entries
func (s ProfileSection[T]) List(ctx context.Context, db *gorm.DB, candidateID string) ([]T, error) {
	c, err := findCandidate(ctx, db, candidateID)
	if err != nil {
		return nil, err
	}
	return nonNil(s.get(c)), nil
}

// Update merges patch into the entry with entryID and returns the result
func (s ProfileSection[T]) Update(ctx context.Context, db *gorm.DB, candidateID, entryID string, patch json.RawMessage) (T, error) {
	var updated T
	err := s.mutate(ctx, db, candidateID, func(current []T) ([]T, error) {
		for i, e := range current {
			if e.EntryID() != entryID {
				continue
			}
			merged, err := mergeJSON(e, patch)
			if err != nil {
				return nil, err
			}
			merged = s.withID(merged, entryID)
			if err := validation.Struct(merged); err != nil {
				return nil, err
			}
			current[i] = merged
			updated = merged
			return current, nil
		}
		return nil, s.notFound
	})
	return updated, err
}

// Delete removes the entry with entryID
func (s ProfileSection[T]) Delete(ctx context.Context, db *gorm.DB, candidateID, entryID string) error {
	return s.mutate(ctx, db, candidateID, func(current []T) ([]T, error) {
		for i, e := range current {
			if e.EntryID() == entryID {
				return append(current[:i], current[i+1:]...), nil
			}
		}
		return nil, s.notFound
	})
}
