// application.go
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

package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Application statuses
const (
	StatusPending     = "pending"
	StatusReviewed    = "reviewed"
	StatusShortlisted = "shortlisted"
	StatusRejected    = "rejected"
	StatusHired       = "hired"
	StatusWithdrawn   = "withdrawn"
)

// Application sources
const (
	SourceWeb    = "web"
	SourceMobile = "mobile"
	SourceAPI    = "api"
)

// EmployerStatuses are the statuses a company may set.
var EmployerStatuses = []string{StatusPending, StatusReviewed, StatusShortlisted, StatusRejected, StatusHired}

// BulkStatuses are the statuses allowed in a bulk action.
var BulkStatuses = []string{StatusReviewed, StatusShortlisted, StatusRejected}

// AllStatuses is the closed status enumeration.
var AllStatuses = []string{StatusPending, StatusReviewed, StatusShortlisted, StatusRejected, StatusHired, StatusWithdrawn}

// Application links one candidate to one job. At most one row exists per (candidate, job).
type Application struct {
	ID                  string                           `gorm:"type:char(36);primaryKey" json:"id"`
	CandidateID         string                           `gorm:"type:char(36);not null;index:idx_application_candidate_job,unique" json:"candidateId"`
	JobID               string                           `gorm:"type:char(36);not null;index:idx_application_candidate_job,unique;index" json:"jobId"`
	Status              string                           `gorm:"size:20;not null;default:pending;index" json:"status"`
	ContactInfo         JSONColumn[ContactInfo]          `json:"contactInfo"`
	Resume              JSONColumn[ResumeRef]            `json:"resume"`
	EmployerQuestions   JSONColumn[[]EmployerQuestion]   `json:"employerQuestions"`
	RelevantExperience  JSONColumn[[]RelevantExperience] `json:"relevantExperience"`
	SupportingDocuments JSONColumn[[]SupportingDocument] `json:"supportingDocuments"`
	CoverLetter         string                           `gorm:"size:2000" json:"coverLetter,omitempty"`
	JobAlertPreferences JSONColumn[JobAlertPreferences]  `json:"jobAlertPreferences"`
	ApplicationSource   string                           `gorm:"size:10;not null;default:mobile" json:"applicationSource"`
	AppliedAt           time.Time                        `gorm:"not null;index" json:"appliedAt"`
	LastUpdated         time.Time                        `gorm:"not null" json:"lastUpdated"`
	Actions             []ApplicationAction              `gorm:"foreignKey:ApplicationID" json:"employerActions"`
	Job                 *Job                             `gorm:"foreignKey:JobID" json:"job,omitempty"`
	Candidate           *Candidate                       `gorm:"foreignKey:CandidateID" json:"candidate,omitempty"`
}

// TableName overrides the table name for Application
func (Application) TableName() string {
	return "applications"
}

// BeforeCreate assigns a new id, the initial status and timestamps
func (a *Application) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	if a.Status == "" {
		a.Status = StatusPending
	}
	if a.ApplicationSource == "" {
		a.ApplicationSource = SourceMobile
	}
	now := time.Now()
	if a.AppliedAt.IsZero() {
		a.AppliedAt = now
	}
	if a.LastUpdated.IsZero() {
		a.LastUpdated = now
	}
	return nil
}

// IsTerminal reports whether the candidate can no longer withdraw.
func (a *Application) IsTerminal() bool {
	return a.Status == StatusRejected || a.Status == StatusHired
}

// ApplicationAction is one append-only entry of an application's status history.
type ApplicationAction struct {
	ID            uint64    `gorm:"primaryKey;autoIncrement" json:"id"`
	ApplicationID string    `gorm:"type:char(36);not null;index" json:"-"`
	Action        string    `gorm:"size:20;not null" json:"action"`
	ActionDate    time.Time `gorm:"not null" json:"actionDate"`
	Notes         string    `gorm:"size:500" json:"notes"`
	ActionBy      string    `gorm:"type:char(36);not null" json:"actionBy"`
}

// TableName overrides the table name for ApplicationAction
func (ApplicationAction) TableName() string {
	return "application_actions"
}

// ContactInfo is the contact snapshot captured at submission time
type ContactInfo struct {
	FullName string    `json:"fullName" validate:"required,min=2,max=100"`
	Email    string    `json:"email" validate:"required,email"`
	Phone    string    `json:"phone" validate:"required,min=5,max=30"`
	Location *Location `json:"location,omitempty"`
}

// EmployerQuestion is a screening question with its answer
type EmployerQuestion struct {
	Question     string          `json:"question" validate:"required"`
	Answer       json.RawMessage `json:"answer,omitempty" swaggertype:"object"`
	QuestionType string          `json:"questionType,omitempty" validate:"omitempty,oneof=text number boolean select multiselect"`
}

// RelevantExperience is a short experience summary attached to an application
type RelevantExperience struct {
	JobTitle    string `json:"jobTitle,omitempty"`
	Company     string `json:"company,omitempty"`
	Duration    string `json:"duration,omitempty"`
	Description string `json:"description,omitempty" validate:"max=2000"`
}

// SupportingDocument is an extra file attached to an application
type SupportingDocument struct {
	FileName     string     `json:"fileName,omitempty"`
	FileURL      string     `json:"fileUrl" validate:"required,url"`
	DocumentType string     `json:"documentType,omitempty"`
	UploadedAt   *time.Time `json:"uploadedAt,omitempty"`
}

// JobAlertPreferences controls follow-up notifications
type JobAlertPreferences struct {
	EmailUpdates bool   `json:"emailUpdates"`
	Location     string `json:"location,omitempty"`
	JobTitle     string `json:"jobTitle,omitempty"`
}
