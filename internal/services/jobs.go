// jobs.go
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

	"github.com/localnerve/jobboard/internal/models"
	"github.com/localnerve/jobboard/internal/types"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// JobInput carries the writable fields of a job posting
type JobInput struct {
	Title          string     `json:"title" yaml:"title" validate:"required,min=5,max=200"`
	Company        string     `json:"company,omitempty" yaml:"company" validate:"omitempty,min=2,max=100"`
	Location       string     `json:"location" yaml:"location" validate:"required,min=2,max=100"`
	Domain         string     `json:"domain" yaml:"domain" validate:"required,min=2,max=100"`
	Salary         string     `json:"salary,omitempty" yaml:"salary" validate:"max=50"`
	Description    string     `json:"description" yaml:"description" validate:"required,min=50,max=2000"`
	Eligibility    string     `json:"eligibility" yaml:"eligibility" validate:"required,min=10,max=500"`
	EducationLevel string     `json:"educationLevel" yaml:"educationLevel" validate:"required,oneof=Graduate 'Post Graduate'"`
	Course         string     `json:"course" yaml:"course" validate:"required,min=2,max=100"`
	Specialization string     `json:"specialization" yaml:"specialization" validate:"required,min=2,max=100"`
	Skills         []string   `json:"skills" yaml:"skills" validate:"required,min=1,dive,min=1,max=50"`
	ApplyLink      string     `json:"applyLink,omitempty" yaml:"applyLink" validate:"omitempty,url"`
	ExpiresAt      *time.Time `json:"expiresAt,omitempty" yaml:"expiresAt"`
	IsActive       *bool      `json:"isActive,omitempty" yaml:"isActive"`
}

// JobFilter narrows the public job listing
type JobFilter struct {
	Paging
	EducationLevel string
	Course         string
	Specialization string
	Domain         string
	Location       string
	Search         string
}

// CompanyJobFilter narrows a company's own job listing
type CompanyJobFilter struct {
	Paging
	Status string // all, active or inactive
}

// JobPage is one page of jobs
type JobPage struct {
	Jobs       []models.Job `json:"jobs"`
	Pagination Pagination   `json:"pagination"`
}

func (in *JobInput) apply(job *models.Job) {
	job.Title = in.Title
	job.Location = in.Location
	job.Domain = in.Domain
	job.Salary = in.Salary
	job.Description = in.Description
	job.Eligibility = in.Eligibility
	job.EducationLevel = in.EducationLevel
	job.Course = in.Course
	job.Specialization = in.Specialization
	job.Skills = models.NewJSONColumn(nonNil(in.Skills))
	job.ApplyLink = in.ApplyLink
	if in.ExpiresAt != nil {
		job.ExpiresAt = *in.ExpiresAt
	}
	if in.IsActive != nil {
		job.IsActive = *in.IsActive
	}
}

// CreateJob posts a job. A nil company makes it an administrative posting.
func CreateJob(ctx context.Context, db *gorm.DB, company *models.Company, in *JobInput) (*models.Job, error) {
	job := &models.Job{IsActive: true, PostedBy: models.PostedByAdmin, Company: in.Company}
	in.apply(job)
	if company != nil {
		job.Company = company.Name
		job.CompanyID = &company.ID
		job.PostedBy = models.PostedByCompany
	}
	if job.Company == "" {
		return nil, types.NewValidationError(map[string][]string{"company": {"company is required"}})
	}

	// Create writes the column default back over a false IsActive
	wantActive := job.IsActive
	if err := db.WithContext(ctx).Omit(clause.Associations).Create(job).Error; err != nil {
		return nil, fmt.Errorf("failed to create job: %w", err)
	}
	if !wantActive {
		if err := db.WithContext(ctx).Model(job).Update("is_active", false).Error; err != nil {
			return nil, fmt.Errorf("failed to deactivate job: %w", err)
		}
		job.IsActive = false
	}

	if company != nil {
		if err := RecomputeCompanyJobStats(ctx, db, company.ID); err != nil {
			return nil, err
		}
	}
	return job, nil
}

// findOwnedJob loads a job visible to owner. An empty companyID is the admin context, which sees every job.
// A job owned by someone else reads as missing.
func findOwnedJob(ctx context.Context, db *gorm.DB, jobID, companyID string) (*models.Job, error) {
	var job models.Job
	q := db.WithContext(ctx).Where("id = ?", jobID)
	if companyID != "" {
		q = q.Where("company_id = ?", companyID)
	}
	if err := q.First(&job).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, types.ErrJobNotFound
		}
		return nil, err
	}
	return &job, nil
}

// GetCompanyJob reads one of the company's jobs
func GetCompanyJob(ctx context.Context, db *gorm.DB, jobID, companyID string) (*models.Job, error) {
	return findOwnedJob(ctx, db, jobID, companyID)
}

// UpdateJob replaces the writable fields of a job the owner controls
func UpdateJob(ctx context.Context, db *gorm.DB, jobID, companyID string, in *JobInput) (*models.Job, error) {
	job, err := findOwnedJob(ctx, db, jobID, companyID)
	if err != nil {
		return nil, err
	}

	wasActive := job.IsActive
	in.apply(job)
	if companyID == "" && in.Company != "" {
		job.Company = in.Company
	}
	job.Slug = models.JobSlug(job.Title, job.ID)

	if err := db.WithContext(ctx).Omit(clause.Associations).Save(job).Error; err != nil {
		return nil, fmt.Errorf("failed to update job %s: %w", jobID, err)
	}

	if job.CompanyID != nil && wasActive != job.IsActive {
		if err := RecomputeCompanyJobStats(ctx, db, *job.CompanyID); err != nil {
			return nil, err
		}
	}
	return job, nil
}

// DeleteJob hard deletes a job the owner controls. Its applications are left in place
// and drop out of listings through the join on jobs.
func DeleteJob(ctx context.Context, db *gorm.DB, jobID, companyID string) error {
	job, err := findOwnedJob(ctx, db, jobID, companyID)
	if err != nil {
		return err
	}

	if err := db.WithContext(ctx).Delete(&models.Job{}, "id = ?", job.ID).Error; err != nil {
		return fmt.Errorf("failed to delete job %s: %w", jobID, err)
	}

	if job.CompanyID != nil {
		return RecomputeCompanyJobStats(ctx, db, *job.CompanyID)
	}
	return nil
}

// ToggleJob flips a company job between active and inactive
func ToggleJob(ctx context.Context, db *gorm.DB, jobID, companyID string) (*models.Job, error) {
	job, err := findOwnedJob(ctx, db, jobID, companyID)
	if err != nil {
		return nil, err
	}

	job.IsActive = !job.IsActive
	if err := db.WithContext(ctx).Model(job).Update("is_active", job.IsActive).Error; err != nil {
		return nil, fmt.Errorf("failed to toggle job %s: %w", jobID, err)
	}

	if err := RecomputeCompanyJobStats(ctx, db, companyID); err != nil {
		return nil, err
	}
	return job, nil
}

// ListCompanyJobs pages through the company's own jobs, newest first
func ListCompanyJobs(ctx context.Context, db *gorm.DB, companyID string, f CompanyJobFilter) (*JobPage, error) {
	p := f.Paging.Normalize()

	scope := func() *gorm.DB {
		q := quiet(db.WithContext(ctx)).Model(&models.Job{}).Where("company_id = ?", companyID)
		switch f.Status {
		case "active":
			q = q.Where("is_active = ?", true)
		case "inactive":
			q = q.Where("is_active = ?", false)
		}
		return q
	}

	return pageJobs(scope, p)
}

// ListJobs pages through active jobs matching the filter, newest first
func ListJobs(ctx context.Context, db *gorm.DB, f JobFilter) (*JobPage, error) {
	p := f.Paging.Normalize()

	scope := func() *gorm.DB {
		q := quiet(db.WithContext(ctx)).Model(&models.Job{}).Where("is_active = ?", true)
		if f.EducationLevel != "" {
			q = q.Where("education_level = ?", f.EducationLevel)
		}
		if f.Course != "" {
			q = q.Where("course = ?", f.Course)
		}
		if f.Specialization != "" {
			q = q.Where("specialization = ?", f.Specialization)
		}
		if f.Domain != "" {
			q = q.Where("domain = ?", f.Domain)
		}
		if f.Location != "" {
			q = q.Where("LOWER(location) LIKE ?", likePattern(f.Location))
		}
		if f.Search != "" {
			pattern := likePattern(f.Search)
			q = q.Where("(LOWER(title) LIKE ? OR LOWER(company) LIKE ? OR LOWER(description) LIKE ? OR LOWER(domain) LIKE ?)",
				pattern, pattern, pattern, pattern)
		}
		return q
	}

	return pageJobs(scope, p)
}

func pageJobs(scope func() *gorm.DB, p Paging) (*JobPage, error) {
	var total int64
	if err := scope().Count(&total).Error; err != nil {
		return nil, fmt.Errorf("failed to count jobs: %w", err)
	}

	jobs := []models.Job{}
	if err := scope().Order("created_at DESC").Order("id DESC").Offset(p.Offset()).Limit(p.Limit).Find(&jobs).Error; err != nil {
		return nil, fmt.Errorf("failed to list jobs: %w", err)
	}

	return &JobPage{Jobs: jobs, Pagination: JobPagination(p, total)}, nil
}

// likePattern builds a case-insensitive substring pattern
func likePattern(s string) string {
	return "%" + strings.ToLower(strings.TrimSpace(s)) + "%"
}

// GetJob reads any job by id
func GetJob(ctx context.Context, db *gorm.DB, jobID string) (*models.Job, error) {
	var job models.Job
	if err := db.WithContext(ctx).Where("id = ?", jobID).First(&job).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, types.NewError(types.ErrJobNotFound.Code, types.CodeNotFound, "Job not found")
		}
		return nil, err
	}
	return &job, nil
}

// Distinct job attributes for filter menus
const (
	MetaDomains   = "domain"
	MetaLocations = "location"
	MetaCompanies = "company"
)

// JobMeta lists the sorted distinct values of column over active jobs
func JobMeta(ctx context.Context, db *gorm.DB, column string) ([]string, error) {
	switch column {
	case MetaDomains, MetaLocations, MetaCompanies:
	default:
		return nil, fmt.Errorf("unsupported job meta column %q", column)
	}

	values := []string{}
	if err := quiet(db.WithContext(ctx)).Model(&models.Job{}).
		Where("is_active = ?", true).
		Distinct(column).
		Order(column+" ASC").
		Pluck(column, &values).Error; err != nil {
		return nil, fmt.Errorf("failed to list job %s values: %w", column, err)
	}
	return values, nil
}

// RecomputeCompanyJobStats rewrites the company's job counters from the jobs table
func RecomputeCompanyJobStats(ctx context.Context, db *gorm.DB, companyID string) error {
	var total, active int64
	q := quiet(db.WithContext(ctx))
	if err := q.Model(&models.Job{}).Where("company_id = ?", companyID).Count(&total).Error; err != nil {
		return fmt.Errorf("failed to count company jobs: %w", err)
	}
	if err := q.Model(&models.Job{}).Where("company_id = ? AND is_active = ?", companyID, true).Count(&active).Error; err != nil {
		return fmt.Errorf("failed to count active company jobs: %w", err)
	}

	return db.WithContext(ctx).Model(&models.Company{}).Where("id = ?", companyID).
		Updates(map[string]interface{}{"total_jobs_posted": total, "active_jobs": active}).Error
}
