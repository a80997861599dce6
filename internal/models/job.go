package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"gorm.io/gorm"
)

// Job posters
const (
	PostedByAdmin   = "admin"
	PostedByCompany = "company"
)

// DefaultJobLifetime is how long a posting stays open when no expiry is given
const DefaultJobLifetime = 30 * 24 * time.Hour

// Job is a posting in the catalog. A nil CompanyID means it was posted administratively.
type Job struct {
	ID                string               `gorm:"type:char(36);primaryKey" json:"id"`
	Title             string               `gorm:"size:200;not null" json:"title"`
	Slug              string               `gorm:"size:255;index" json:"slug"`
	Company           string               `gorm:"size:100;not null;index" json:"company"`
	CompanyID         *string              `gorm:"type:char(36);index" json:"companyId"`
	Location          string               `gorm:"size:100;not null;index" json:"location"`
	Domain            string               `gorm:"size:100;not null;index" json:"domain"`
	Salary            string               `gorm:"size:50" json:"salary,omitempty"`
	Description       string               `gorm:"size:2000;not null" json:"description"`
	Eligibility       string               `gorm:"size:500;not null" json:"eligibility"`
	EducationLevel    string               `gorm:"size:50;not null;index" json:"educationLevel"`
	Course            string               `gorm:"size:100;not null" json:"course"`
	Specialization    string               `gorm:"size:100;not null" json:"specialization"`
	Skills            JSONColumn[[]string] `json:"skills"`
	ApplyLink         string               `gorm:"size:500" json:"applyLink,omitempty"`
	IsActive          bool                 `gorm:"not null;default:true;index" json:"isActive"`
	TotalApplications int64                `gorm:"not null;default:0" json:"totalApplications"`
	PostedBy          string               `gorm:"size:20;not null;default:admin" json:"postedBy"`
	ExpiresAt         time.Time            `gorm:"not null" json:"expiresAt"`
	CreatedAt         time.Time            `gorm:"index" json:"createdAt"`
	UpdatedAt         time.Time            `json:"updatedAt"`
}

// TableName overrides the table name for Job
func (Job) TableName() string {
	return "jobs"
}

// BeforeCreate assigns a new id and the default expiry
func (j *Job) BeforeCreate(tx *gorm.DB) error {
	if j.ID == "" {
		j.ID = uuid.NewString()
	}
	if j.Slug == "" {
		j.Slug = JobSlug(j.Title, j.ID)
	}
	if j.ExpiresAt.IsZero() {
		j.ExpiresAt = time.Now().Add(DefaultJobLifetime)
	}
	if j.Skills.Data() == nil {
		j.Skills = NewJSONColumn([]string{})
	}
	if j.PostedBy == "" {
		j.PostedBy = PostedByAdmin
	}
	return nil
}

// OwnedBy reports whether the job belongs to the given company
func (j *Job) OwnedBy(companyID string) bool {
	return j.CompanyID != nil && *j.CompanyID == companyID
}

// JobSlug builds a url-friendly, unique slug from the title and id
func JobSlug(title, id string) string {
	suffix := id
	if len(suffix) > 8 {
		suffix = suffix[:8]
	}
	return slug.Make(title) + "-" + suffix
}
