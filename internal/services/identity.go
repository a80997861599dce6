// identity.go
//
// A job board backend for candidates, companies and their applications
// Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC
//
// This file is part of jobboard.
// jobboard is free software: you can redistribute it and/or modify it
// under the terms of the GNU Affero General Public License as published by the Free Software
// Foundation, either version 3 of the License, or (at your option) any later version.
// jobboard is distributed in the hope that it will be useful, but WITHOUT ANY WARRANTY;
// without even the implied warranty of MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.
// See the GNU Affero General Public License for more details.
// You should have received a copy of the GNU Affero General Public License along with jobboard.
// If not, see <https://www.gnu.org/licenses/>.
// Additional terms under GNU AGPL version 3 section 7:
// a) The reasonable legal notice of original copyright and author attribution must be preserved
//    by including the string: "Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC"
//    in this material, copies, or source code of derived works.

package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/localnerve/jobboard/internal/database"
	"github.com/localnerve/jobboard/internal/models"
	"github.com/localnerve/jobboard/internal/types"
	"gorm.io/gorm"
)

// RegisterInput is an email/password candidate registration
type RegisterInput struct {
	Name     string `json:"name" validate:"required,min=2,max=50"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,password"`
	Phone    string `json:"phone,omitempty" validate:"omitempty,max=30"`
}

// LoginInput is an email/password login, shared by candidates and companies
type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// ChangePasswordInput replaces an email account's password
type ChangePasswordInput struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword" validate:"required,min=8,password"`
}

// GoogleIdentity is the verified subset of a Google account used for provisioning
type GoogleIdentity struct {
	Subject     string `json:"sub"`
	Email       string `json:"email"`
	Name        string `json:"name"`
	Picture     string `json:"picture,omitempty"`
	FirebaseUID string `json:"-"`
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// RegisterCandidate creates an email candidate account
func RegisterCandidate(ctx context.Context, db *gorm.DB, in *RegisterInput) (*models.Candidate, error) {
	email := normalizeEmail(in.Email)

	var existing models.Candidate
	err := db.WithContext(ctx).Select("id", "login_type").Where("email = ?", email).First(&existing).Error
	if err == nil {
		if existing.LoginType == models.LoginTypeGoogle {
			return nil, types.ErrGoogleUserExists
		}
		return nil, types.ErrUserExists
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hash, err := HashPassword(in.Password)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	candidate := &models.Candidate{
		Name:         strings.TrimSpace(in.Name),
		Email:        email,
		PasswordHash: hash,
		Phone:        in.Phone,
		LoginType:    models.LoginTypeEmail,
		IsActive:     true,
		LastLogin:    &now,
	}
	if err := db.WithContext(ctx).Create(candidate).Error; err != nil {
		if database.IsDuplicateKey(err) {
			return nil, types.ErrUserExists
		}
		return nil, fmt.Errorf("failed to create candidate: %w", err)
	}
	return candidate, nil
}

// LoginCandidate checks an email candidate's password and records the login
func LoginCandidate(ctx context.Context, db *gorm.DB, in *LoginInput) (*models.Candidate, error) {
	var candidate models.Candidate
	err := db.WithContext(ctx).
		Where("email = ? AND is_active = ?", normalizeEmail(in.Email), true).
		First(&candidate).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, types.ErrInvalidCredentials
		}
		return nil, err
	}

	if candidate.LoginType == models.LoginTypeGoogle {
		return nil, types.ErrGoogleUser
	}
	if !CheckPassword(candidate.PasswordHash, in.Password) {
		return nil, types.ErrInvalidCredentials
	}

	if err := touchLogin(ctx, db, &candidate); err != nil {
		return nil, err
	}
	return &candidate, nil
}

func touchLogin(ctx context.Context, db *gorm.DB, candidate *models.Candidate) error {
	now := time.Now()
	candidate.LastLogin = &now
	return db.WithContext(ctx).Model(candidate).UpdateColumn("last_login", now).Error
}

// ProvisionGoogleCandidate finds or creates the candidate for a verified Google identity.
// Lookup is by Google id, then by email. An email/password account is never linked.
func ProvisionGoogleCandidate(ctx context.Context, db *gorm.DB, id *GoogleIdentity) (*models.Candidate, error) {
	if id.Subject == "" || id.Email == "" || id.Name == "" {
		return nil, types.ErrInvalidUserInfo
	}
	email := normalizeEmail(id.Email)

	var candidate models.Candidate
	err := db.WithContext(ctx).Where("google_id = ?", id.Subject).First(&candidate).Error
	if err == nil {
		if !candidate.IsActive {
			return nil, types.ErrAccountDeactivated
		}
		if id.FirebaseUID != "" && candidate.FirebaseUID == nil {
			uid := id.FirebaseUID
			candidate.FirebaseUID = &uid
			if err := db.WithContext(ctx).Model(&candidate).Update("firebase_uid", uid).Error; err != nil {
				return nil, err
			}
		}
		if err := touchLogin(ctx, db, &candidate); err != nil {
			return nil, err
		}
		return &candidate, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hash, err := unusablePasswordHash()
	if err != nil {
		return nil, err
	}

	subject := id.Subject
	var firebaseUID *string
	if id.FirebaseUID != "" {
		uid := id.FirebaseUID
		firebaseUID = &uid
	}

	err = db.WithContext(ctx).Where("email = ?", email).First(&candidate).Error
	switch {
	case err == nil:
		if candidate.LoginType == models.LoginTypeEmail {
			return nil, types.ErrEmailUserExists
		}
		now := time.Now()
		updates := map[string]interface{}{
			"google_id":         subject,
			"login_type":        models.LoginTypeGoogle,
			"is_email_verified": true,
			"password_hash":     hash,
			"firebase_uid":      firebaseUID,
			"last_login":        now,
		}
		if candidate.ProfilePicture == "" && id.Picture != "" {
			updates["profile_picture"] = id.Picture
		}
		if err := db.WithContext(ctx).Model(&candidate).Updates(updates).Error; err != nil {
			return nil, fmt.Errorf("failed to link google account: %w", err)
		}
		return findCandidate(ctx, db, candidate.ID)

	case errors.Is(err, gorm.ErrRecordNotFound):
		now := time.Now()
		candidate = models.Candidate{
			Name:            id.Name,
			Email:           email,
			PasswordHash:    hash,
			GoogleID:        &subject,
			FirebaseUID:     firebaseUID,
			LoginType:       models.LoginTypeGoogle,
			IsEmailVerified: true,
			ProfilePicture:  id.Picture,
			IsActive:        true,
			LastLogin:       &now,
		}
		if err := db.WithContext(ctx).Create(&candidate).Error; err != nil {
			if database.IsDuplicateKey(err) {
				return nil, types.ErrUserExists
			}
			return nil, fmt.Errorf("failed to create google candidate: %w", err)
		}
		return &candidate, nil

	default:
		return nil, err
	}
}

func findCandidate(ctx context.Context, db *gorm.DB, id string) (*models.Candidate, error) {
	var candidate models.Candidate
	if err := db.WithContext(ctx).Where("id = ?", id).First(&candidate).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, types.ErrUserNotFound
		}
		return nil, err
	}
	return &candidate, nil
}

// GetCandidate reads a candidate by id
func GetCandidate(ctx context.Context, db *gorm.DB, id string) (*models.Candidate, error) {
	return findCandidate(ctx, db, id)
}

// ChangePassword replaces an email candidate's password after checking the current one
func ChangePassword(ctx context.Context, db *gorm.DB, candidateID string, in *ChangePasswordInput) error {
	candidate, err := findCandidate(ctx, db, candidateID)
	if err != nil {
		return err
	}
	if candidate.LoginType != models.LoginTypeEmail {
		return types.ErrInvalidOperation
	}
	if !CheckPassword(candidate.PasswordHash, in.CurrentPassword) {
		return types.ErrInvalidPassword
	}

	hash, err := HashPassword(in.NewPassword)
	if err != nil {
		return err
	}
	return db.WithContext(ctx).Model(candidate).Update("password_hash", hash).Error
}

// DeactivateCandidate soft deletes a candidate, freeing the email for a new registration
func DeactivateCandidate(ctx context.Context, db *gorm.DB, candidateID string) error {
	candidate, err := findCandidate(ctx, db, candidateID)
	if err != nil {
		return err
	}

	freed := fmt.Sprintf("deleted_%d_%s", time.Now().UnixMilli(), candidate.Email)
	return db.WithContext(ctx).Model(candidate).Updates(map[string]interface{}{
		"is_active": false,
		"email":     freed,
	}).Error
}
