// companies.go
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
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/localnerve/jobboard/internal/database"
	"github.com/localnerve/jobboard/internal/models"
	"github.com/localnerve/jobboard/internal/types"
	"github.com/localnerve/jobboard/internal/validation"
	"gorm.io/gorm"
)

// CompanyRegisterInput is a company registration
type CompanyRegisterInput struct {
	Name        string `json:"name" validate:"required,min=2,max=100"`
	Email       string `json:"email" validate:"required,email"`
	Password    string `json:"password" validate:"required,min=8,password"`
	Description string `json:"description,omitempty" validate:"max=1000"`
	Website     string `json:"website,omitempty" validate:"omitempty,url"`
	Industry    string `json:"industry,omitempty" validate:"max=100"`
}

// CompanyProfileUpdate carries the company fields a profile update may change
type CompanyProfileUpdate struct {
	Name        *string         `json:"name,omitempty" validate:"omitempty,min=2,max=100"`
	Description *string         `json:"description,omitempty" validate:"omitempty,max=1000"`
	Website     *string         `json:"website,omitempty" validate:"omitempty,url"`
	Logo        *string         `json:"logo,omitempty" validate:"omitempty,url"`
	Industry    *string         `json:"industry,omitempty" validate:"omitempty,max=100"`
	Size        *string         `json:"size,omitempty" validate:"omitempty,oneof=1-10 11-50 51-200 201-500 501-1000 1000+"`
	Founded     *types.FlexInt  `json:"founded,omitempty" validate:"omitempty,gte=1800,pastyear" swaggertype:"integer"`
	ContactInfo json.RawMessage `json:"contactInfo,omitempty" swaggertype:"object"`
	HRContact   json.RawMessage `json:"hrContact,omitempty" swaggertype:"object"`
}

// RegisterCompany creates a company account
func RegisterCompany(ctx context.Context, db *gorm.DB, in *CompanyRegisterInput) (*models.Company, error) {
	email := normalizeEmail(in.Email)

	var count int64
	if err := db.WithContext(ctx).Model(&models.Company{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, types.ErrCompanyExists
	}

	hash, err := HashPassword(in.Password)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	company := &models.Company{
		Name:         strings.TrimSpace(in.Name),
		Email:        email,
		PasswordHash: hash,
		Description:  in.Description,
		Website:      in.Website,
		Industry:     in.Industry,
		IsActive:     true,
		LastLogin:    &now,
	}
	if err := db.WithContext(ctx).Create(company).Error; err != nil {
		if database.IsDuplicateKey(err) {
			return nil, types.ErrCompanyExists
		}
		return nil, fmt.Errorf("failed to create company: %w", err)
	}
	return company, nil
}

// LoginCompany checks an active company's password and records the login
func LoginCompany(ctx context.Context, db *gorm.DB, in *LoginInput) (*models.Company, error) {
	var company models.Company
	err := db.WithContext(ctx).
		Where("email = ? AND is_active = ?", normalizeEmail(in.Email), true).
		First(&company).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, types.ErrInvalidCredentials
		}
		return nil, err
	}
	if !CheckPassword(company.PasswordHash, in.Password) {
		return nil, types.ErrInvalidCredentials
	}

	now := time.Now()
	company.LastLogin = &now
	if err := db.WithContext(ctx).Model(&company).UpdateColumn("last_login", now).Error; err != nil {
		return nil, err
	}
	return &company, nil
}

// GetCompany reads a company by id
func GetCompany(ctx context.Context, db *gorm.DB, id string) (*models.Company, error) {
	var company models.Company
	if err := db.WithContext(ctx).Where("id = ?", id).First(&company).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, types.ErrCompanyNotFound
		}
		return nil, err
	}
	return &company, nil
}

// UpdateCompanyProfile applies a profile update, merging contactInfo and hrContact into the stored values
func UpdateCompanyProfile(ctx context.Context, db *gorm.DB, companyID string, in *CompanyProfileUpdate) (*models.Company, error) {
	var result *models.Company

	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var c models.Company
		if err := forUpdate(tx).Where("id = ?", companyID).First(&c).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return types.ErrCompanyNotFound
			}
			return err
		}

		if in.Name != nil {
			c.Name = *in.Name
		}
		if in.Description != nil {
			c.Description = *in.Description
		}
		if in.Website != nil {
			c.Website = *in.Website
		}
		if in.Logo != nil {
			c.Logo = *in.Logo
		}
		if in.Industry != nil {
			c.Industry = *in.Industry
		}
		if in.Size != nil {
			c.Size = *in.Size
		}
		if in.Founded != nil {
			founded := in.Founded.Int()
			c.Founded = &founded
		}
		if len(in.ContactInfo) > 0 {
			contact, err := mergeJSON(c.ContactInfo.Data(), in.ContactInfo)
			if err != nil {
				return err
			}
			c.ContactInfo = models.NewJSONColumn(contact)
		}
		if len(in.HRContact) > 0 {
			hr, err := mergeJSON(c.HRContact.Data(), in.HRContact)
			if err != nil {
				return err
			}
			if err := validation.Struct(&hr); err != nil {
				return err
			}
			c.HRContact = models.NewJSONColumn(hr)
		}

		if err := tx.Model(&c).
			Select("name", "description", "website", "logo", "industry", "size", "founded", "contact_info", "hr_contact").
			Updates(&c).Error; err != nil {
			return fmt.Errorf("failed to update company profile: %w", err)
		}
		result = &c
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}
