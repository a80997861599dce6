// data.go
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

package testutil

import (
	"fmt"
	"testing"
	"time"

	"github.com/localnerve/jobboard/internal/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// TestPassword satisfies the registration password rules
const TestPassword = "Secret123"

func hash(t *testing.T, password string) string {
	t.Helper()
	h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("Failed to hash password: %v", err)
	}
	return string(h)
}

// CreateTestCandidate creates an active email candidate with TestPassword
func CreateTestCandidate(t *testing.T, db *gorm.DB, email string) *models.Candidate {
	t.Helper()
	candidate := &models.Candidate{
		Name:         "Test Candidate",
		Email:        email,
		PasswordHash: hash(t, TestPassword),
		LoginType:    models.LoginTypeEmail,
		IsActive:     true,
	}
	if err := db.Create(candidate).Error; err != nil {
		t.Fatalf("Failed to create candidate: %v", err)
	}
	return candidate
}

// CreateTestCompany creates an active company with TestPassword
func CreateTestCompany(t *testing.T, db *gorm.DB, name, email string) *models.Company {
	t.Helper()
	company := &models.Company{
		Name:         name,
		Email:        email,
		PasswordHash: hash(t, TestPassword),
		IsActive:     true,
	}
	if err := db.Create(company).Error; err != nil {
		t.Fatalf("Failed to create company: %v", err)
	}
	return company
}

// JobOption customizes a test job
type JobOption func(*models.Job)

// WithDomain sets the job domain
func WithDomain(domain string) JobOption {
	return func(j *models.Job) { j.Domain = domain }
}

// WithLocation sets the job location
func WithLocation(location string) JobOption {
	return func(j *models.Job) { j.Location = location }
}

// WithEducationLevel sets the job education level
func WithEducationLevel(level string) JobOption {
	return func(j *models.Job) { j.EducationLevel = level }
}

// WithCreatedAt backdates the job
func WithCreatedAt(at time.Time) JobOption {
	return func(j *models.Job) { j.CreatedAt = at }
}

// CreateTestJob creates an active job. A nil company makes it an administrative posting.
func CreateTestJob(t *testing.T, db *gorm.DB, company *models.Company, title string, opts ...JobOption) *models.Job {
	t.Helper()
	job := &models.Job{
		Title:          title,
		Company:        "Admin Posted",
		Location:       "Bengaluru",
		Domain:         "Web Development",
		Description:    "Build and maintain web applications for a growing product team across the stack.",
		Eligibility:    "Graduates with a computer science background",
		EducationLevel: "Graduate",
		Course:         "B.Tech / B.E",
		Specialization: "CSE",
		Skills:         models.NewJSONColumn([]string{"Go", "SQL"}),
		IsActive:       true,
		PostedBy:       models.PostedByAdmin,
	}
	if company != nil {
		job.Company = company.Name
		job.CompanyID = &company.ID
		job.PostedBy = models.PostedByCompany
	}
	for _, opt := range opts {
		opt(job)
	}
	if err := db.Create(job).Error; err != nil {
		t.Fatalf("Failed to create job: %v", err)
	}
	return job
}

// CreateTestApplication inserts an application directly, bypassing the ledger
func CreateTestApplication(t *testing.T, db *gorm.DB, candidate *models.Candidate, job *models.Job, status string) *models.Application {
	t.Helper()
	app := &models.Application{
		CandidateID: candidate.ID,
		JobID:       job.ID,
		Status:      status,
		ContactInfo: models.NewJSONColumn(models.ContactInfo{
			FullName: candidate.Name,
			Email:    candidate.Email,
			Phone:    "9876543210",
		}),
		Resume: models.NewJSONColumn(models.ResumeRef{
			FileName: "resume.pdf",
			FileURL:  fmt.Sprintf("https://files.example.com/%s/resume.pdf", candidate.ID),
		}),
	}
	if err := db.Omit("Job", "Candidate", "Actions").Create(app).Error; err != nil {
		t.Fatalf("Failed to create application: %v", err)
	}
	return app
}
