// applications.go
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
	"log"
	"net/http"
	"slices"
	"time"

	"github.com/localnerve/jobboard/internal/database"
	"github.com/localnerve/jobboard/internal/models"
	"github.com/localnerve/jobboard/internal/types"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
)

// WithdrawNote is recorded on the action appended by a candidate withdrawal
const WithdrawNote = "Application withdrawn by candidate"

var (
	errJobNotOwned  = types.NewError(http.StatusNotFound, types.CodeJobNotFound, "Job not found or does not belong to your company")
	errViewDenied   = types.NewError(http.StatusForbidden, types.CodeAccessDenied, "You can only view applications for your own job postings")
	errUpdateDenied = types.NewError(http.StatusForbidden, types.CodeAccessDenied, "You can only update applications for your own job postings")
	errNoneOwned    = types.NewError(http.StatusForbidden, types.CodeAccessDenied, "No valid applications found for your company")
)

// SubmitInput is a candidate's application to a job
type SubmitInput struct {
	JobID               string                      `json:"jobId"`
	ContactInfo         *models.ContactInfo         `json:"contactInfo"`
	Resume              *models.ResumeRef           `json:"resume"`
	EmployerQuestions   []models.EmployerQuestion   `json:"employerQuestions,omitempty" validate:"omitempty,dive"`
	RelevantExperience  []models.RelevantExperience `json:"relevantExperience,omitempty" validate:"omitempty,dive"`
	SupportingDocuments []models.SupportingDocument `json:"supportingDocuments,omitempty" validate:"omitempty,dive"`
	CoverLetter         string                      `json:"coverLetter,omitempty" validate:"max=2000"`
	JobAlertPreferences *models.JobAlertPreferences `json:"jobAlertPreferences,omitempty"`
	ApplicationSource   string                      `json:"applicationSource,omitempty" validate:"omitempty,oneof=web mobile api"`
}

// ApplicationFilter narrows an application listing
type ApplicationFilter struct {
	Paging
	Status    string
	JobID     string
	SortBy    string
	SortOrder string
}

// ApplicationSummary counts applications per status over an owner scope
type ApplicationSummary struct {
	Total        int64            `json:"total"`
	StatusCounts map[string]int64 `json:"statusCounts"`
}

// ApplicationPage is one page of applications with its summary
type ApplicationPage struct {
	Applications []models.Application `json:"applications"`
	Pagination   Pagination           `json:"pagination"`
	Summary      ApplicationSummary   `json:"summary"`
}

// JobBrief is the job header of a per-job application listing
type JobBrief struct {
	ID       string `json:"_id"`
	Title    string `json:"title"`
	Company  string `json:"company"`
	Location string `json:"location"`
	Domain   string `json:"domain"`
}

// JobApplicationsPage lists the applications of one job
type JobApplicationsPage struct {
	Job          JobBrief             `json:"job"`
	Applications []models.Application `json:"applications"`
	Statistics   ApplicationSummary   `json:"statistics"`
	Pagination   Pagination           `json:"pagination"`
}

// BulkResult reports the outcome of a bulk action
type BulkResult struct {
	UpdatedCount   int `json:"updatedCount"`
	TotalRequested int `json:"totalRequested"`
}

// forUpdate row-locks the next read on dialects that support it
func forUpdate(tx *gorm.DB) *gorm.DB {
	if database.SupportsRowLocking(tx) {
		return tx.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	return tx
}

func quiet(db *gorm.DB) *gorm.DB {
	return db.Session(&gorm.Session{Logger: db.Logger.LogMode(logger.Silent)})
}

// SubmitApplication records a candidate's application to a job and bumps the job's counter.
// The (candidate, job) unique index rejects duplicates, including concurrent ones.
func SubmitApplication(ctx context.Context, db *gorm.DB, candidateID string, in *SubmitInput) (*models.Application, error) {
	if in.JobID == "" || in.ContactInfo == nil || in.Resume == nil {
		return nil, types.ErrMissingRequired
	}

	app := &models.Application{
		CandidateID:       candidateID,
		JobID:             in.JobID,
		Status:            models.StatusPending,
		ContactInfo:       models.NewJSONColumn(*in.ContactInfo),
		Resume:            models.NewJSONColumn(*in.Resume),
		CoverLetter:       in.CoverLetter,
		ApplicationSource: in.ApplicationSource,
	}
	app.EmployerQuestions = models.NewJSONColumn(nonNil(in.EmployerQuestions))
	app.RelevantExperience = models.NewJSONColumn(nonNil(in.RelevantExperience))
	app.SupportingDocuments = models.NewJSONColumn(nonNil(in.SupportingDocuments))
	if in.JobAlertPreferences != nil {
		app.JobAlertPreferences = models.NewJSONColumn(*in.JobAlertPreferences)
	}

	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var job models.Job
		if err := tx.Select("id").Where("id = ?", in.JobID).First(&job).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return types.ErrJobNotFound
			}
			return fmt.Errorf("failed to load job %s: %w", in.JobID, err)
		}

		if err := tx.Omit(clause.Associations).Create(app).Error; err != nil {
			if database.IsDuplicateKey(err) {
				return types.ErrAlreadyApplied
			}
			return fmt.Errorf("failed to create application: %w", err)
		}

		return tx.Model(&models.Job{}).Where("id = ?", job.ID).
			UpdateColumn("total_applications", gorm.Expr("total_applications + ?", 1)).Error
	})
	if err != nil {
		return nil, err
	}

	app.Actions = []models.ApplicationAction{}
	return app, nil
}

// TransitionStatus moves an application to status on behalf of the company that owns its job,
// appending one action to its history. Any employer status may follow any other.
func TransitionStatus(ctx context.Context, db *gorm.DB, applicationID, companyID, status, notes string) (*models.Application, error) {
	if !slices.Contains(models.EmployerStatuses, status) {
		return nil, types.ErrInvalidStatus
	}

	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var app models.Application
		if err := forUpdate(tx).Where("id = ?", applicationID).First(&app).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return types.ErrApplicationNotFound
			}
			return fmt.Errorf("failed to load application %s: %w", applicationID, err)
		}

		var job models.Job
		if err := tx.Select("id", "company_id").Where("id = ?", app.JobID).First(&job).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errUpdateDenied
			}
			return fmt.Errorf("failed to load job %s: %w", app.JobID, err)
		}
		if !job.OwnedBy(companyID) {
			return errUpdateDenied
		}

		return appendTransition(tx, &app, status, notes, companyID)
	})
	if err != nil {
		return nil, err
	}

	return loadApplication(ctx, db, applicationID)
}

// appendTransition sets the status and appends the matching action inside tx
func appendTransition(tx *gorm.DB, app *models.Application, status, notes, actorID string) error {
	now := time.Now()
	if err := tx.Model(&models.Application{}).Where("id = ?", app.ID).
		Updates(map[string]interface{}{"status": status, "last_updated": now}).Error; err != nil {
		return fmt.Errorf("failed to update application %s: %w", app.ID, err)
	}

	action := &models.ApplicationAction{
		ApplicationID: app.ID,
		Action:        status,
		ActionDate:    now,
		Notes:         notes,
		ActionBy:      actorID,
	}
	if err := tx.Create(action).Error; err != nil {
		return fmt.Errorf("failed to record action for application %s: %w", app.ID, err)
	}
	return nil
}

// BulkTransition applies action to every listed application whose job the company owns.
// Each item commits on its own; ids the company does not own are skipped.
func BulkTransition(ctx context.Context, db *gorm.DB, companyID string, applicationIDs []string, action, notes string) (*BulkResult, error) {
	if len(applicationIDs) == 0 {
		return nil, types.ErrInvalidInput
	}
	if !slices.Contains(models.BulkStatuses, action) {
		return nil, types.ErrInvalidAction
	}

	var owned []string
	if err := db.WithContext(ctx).Model(&models.Application{}).
		Joins("JOIN jobs ON jobs.id = applications.job_id").
		Where("applications.id IN ? AND jobs.company_id = ?", applicationIDs, companyID).
		Pluck("applications.id", &owned).Error; err != nil {
		return nil, fmt.Errorf("failed to select owned applications: %w", err)
	}
	if len(owned) == 0 {
		return nil, errNoneOwned
	}

	if notes == "" {
		notes = "Bulk action: " + action
	}

	result := &BulkResult{TotalRequested: len(applicationIDs)}
	for _, id := range owned {
		if _, err := TransitionStatus(ctx, db, id, companyID, action, notes); err != nil {
			log.Printf("Bulk %s skipped application %s: %v", action, id, err)
			continue
		}
		result.UpdatedCount++
	}

	return result, nil
}

// WithdrawApplication withdraws a candidate's own application unless it was already rejected or hired
func WithdrawApplication(ctx context.Context, db *gorm.DB, applicationID, candidateID string) (*models.Application, error) {
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var app models.Application
		if err := forUpdate(tx).Where("id = ? AND candidate_id = ?", applicationID, candidateID).First(&app).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return types.ErrApplicationNotFound
			}
			return fmt.Errorf("failed to load application %s: %w", applicationID, err)
		}
		if app.IsTerminal() {
			return types.ErrCannotWithdraw
		}
		return appendTransition(tx, &app, models.StatusWithdrawn, WithdrawNote, candidateID)
	})
	if err != nil {
		return nil, err
	}

	return loadApplication(ctx, db, applicationID)
}

// HasApplied reports whether the candidate has an application for the job
func HasApplied(ctx context.Context, db *gorm.DB, candidateID, jobID string) (bool, error) {
	var count int64
	if err := quiet(db.WithContext(ctx)).Model(&models.Application{}).
		Where("candidate_id = ? AND job_id = ?", candidateID, jobID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// AppliedJobIDs lists the ids of every job the candidate applied to
func AppliedJobIDs(ctx context.Context, db *gorm.DB, candidateID string) ([]string, error) {
	ids := []string{}
	if err := quiet(db.WithContext(ctx)).Model(&models.Application{}).
		Where("candidate_id = ?", candidateID).
		Pluck("job_id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}

// loadApplication reads an application with its ordered history and job
func loadApplication(ctx context.Context, db *gorm.DB, applicationID string) (*models.Application, error) {
	var app models.Application
	err := db.WithContext(ctx).
		Preload("Actions", func(tx *gorm.DB) *gorm.DB { return tx.Order("id ASC") }).
		Preload("Job").
		Where("id = ?", applicationID).
		First(&app).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, types.ErrApplicationNotFound
		}
		return nil, err
	}
	return &app, nil
}

// GetCandidateApplication reads one of the candidate's own applications
func GetCandidateApplication(ctx context.Context, db *gorm.DB, applicationID, candidateID string) (*models.Application, error) {
	app, err := loadApplication(ctx, db, applicationID)
	if err != nil {
		return nil, err
	}
	if app.CandidateID != candidateID {
		return nil, types.ErrApplicationNotFound
	}
	return app, nil
}

// GetCompanyApplication reads an application to one of the company's jobs, with the applicant
func GetCompanyApplication(ctx context.Context, db *gorm.DB, applicationID, companyID string) (*models.Application, error) {
	app, err := loadApplication(ctx, db, applicationID)
	if err != nil {
		return nil, err
	}
	if app.Job == nil || !app.Job.OwnedBy(companyID) {
		return nil, errViewDenied
	}

	var candidate models.Candidate
	if err := db.WithContext(ctx).Where("id = ?", app.CandidateID).First(&candidate).Error; err == nil {
		app.Candidate = &candidate
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	return app, nil
}

var candidateSortColumns = map[string]string{
	"appliedAt":   "applications.applied_at",
	"lastUpdated": "applications.last_updated",
	"status":      "applications.status",
}

// ListCandidateApplications pages through a candidate's applications to active jobs
func ListCandidateApplications(ctx context.Context, db *gorm.DB, candidateID string, f ApplicationFilter) (*ApplicationPage, error) {
	scope := func() *gorm.DB {
		return quiet(db.WithContext(ctx)).Model(&models.Application{}).
			Joins("JOIN jobs ON jobs.id = applications.job_id AND jobs.is_active = ?", true).
			Where("applications.candidate_id = ?", candidateID)
	}

	order := "applications.applied_at DESC"
	if col, ok := candidateSortColumns[f.SortBy]; ok {
		dir := "DESC"
		if f.SortOrder == "asc" {
			dir = "ASC"
		}
		order = col + " " + dir
	}

	return listApplications(scope, f, order, false)
}

// ListCompanyApplications pages through applications to the company's jobs, optionally for one job
func ListCompanyApplications(ctx context.Context, db *gorm.DB, companyID string, f ApplicationFilter) (*ApplicationPage, error) {
	scope := func() *gorm.DB {
		q := quiet(db.WithContext(ctx)).Model(&models.Application{}).
			Joins("JOIN jobs ON jobs.id = applications.job_id").
			Where("jobs.company_id = ?", companyID)
		if f.JobID != "" {
			q = q.Where("applications.job_id = ?", f.JobID)
		}
		return q
	}

	return listApplications(scope, f, "applications.applied_at DESC", true)
}

// ListJobApplications lists the applications of one job owned by the company
func ListJobApplications(ctx context.Context, db *gorm.DB, companyID, jobID string, f ApplicationFilter) (*JobApplicationsPage, error) {
	var job models.Job
	if err := db.WithContext(ctx).Where("id = ?", jobID).First(&job).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errJobNotOwned
		}
		return nil, err
	}
	if !job.OwnedBy(companyID) {
		return nil, errJobNotOwned
	}

	f.JobID = jobID
	page, err := ListCompanyApplications(ctx, db, companyID, f)
	if err != nil {
		return nil, err
	}

	return &JobApplicationsPage{
		Job: JobBrief{
			ID:       job.ID,
			Title:    job.Title,
			Company:  job.Company,
			Location: job.Location,
			Domain:   job.Domain,
		},
		Applications: page.Applications,
		Statistics:   page.Summary,
		Pagination:   page.Pagination,
	}, nil
}

// listApplications counts, pages and summarizes the rows of scope.
// The summary ignores the status filter so clients can render every tab count.
func listApplications(scope func() *gorm.DB, f ApplicationFilter, order string, withCandidate bool) (*ApplicationPage, error) {
	p := f.Paging.Normalize()

	filtered := func() *gorm.DB {
		q := scope()
		if f.Status != "" && f.Status != "all" {
			q = q.Where("applications.status = ?", f.Status)
		}
		return q
	}

	var total int64
	if err := filtered().Count(&total).Error; err != nil {
		return nil, fmt.Errorf("failed to count applications: %w", err)
	}

	apps := []models.Application{}
	q := filtered().Select("applications.*").
		Preload("Job").
		Preload("Actions", func(tx *gorm.DB) *gorm.DB { return tx.Order("id ASC") })
	if withCandidate {
		q = q.Preload("Candidate")
	}
	if err := q.Order(order).Order("applications.id DESC").Offset(p.Offset()).Limit(p.Limit).Find(&apps).Error; err != nil {
		return nil, fmt.Errorf("failed to list applications: %w", err)
	}

	summary, err := summarize(scope())
	if err != nil {
		return nil, err
	}

	return &ApplicationPage{
		Applications: apps,
		Pagination:   ApplicationPagination(p, total),
		Summary:      summary,
	}, nil
}

type statusCount struct {
	Status string
	Count  int64
}

func summarize(q *gorm.DB) (ApplicationSummary, error) {
	var rows []statusCount
	if err := q.Select("applications.status AS status, COUNT(*) AS count").
		Group("applications.status").
		Scan(&rows).Error; err != nil {
		return ApplicationSummary{}, fmt.Errorf("failed to summarize applications: %w", err)
	}

	summary := ApplicationSummary{StatusCounts: make(map[string]int64, len(models.AllStatuses))}
	for _, s := range models.AllStatuses {
		summary.StatusCounts[s] = 0
	}
	for _, r := range rows {
		summary.StatusCounts[r.Status] = r.Count
		summary.Total += r.Count
	}
	return summary, nil
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
