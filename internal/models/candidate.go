package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Login types
const (
	LoginTypeEmail  = "email"
	LoginTypeGoogle = "google"
)

// Candidate is a job seeker account
type Candidate struct {
	ID              string                       `gorm:"type:char(36);primaryKey" json:"id"`
	Name            string                       `gorm:"size:100;not null" json:"name"`
	Email           string                       `gorm:"size:255;not null;uniqueIndex" json:"email"`
	PasswordHash    string                       `gorm:"size:255" json:"-"`
	Phone           string                       `gorm:"size:30" json:"phone,omitempty"`
	ProfilePicture  string                       `gorm:"size:500" json:"profilePicture,omitempty"`
	LoginType       string                       `gorm:"size:20;not null;default:email" json:"loginType"`
	GoogleID        *string                      `gorm:"size:255;uniqueIndex" json:"-"`
	FirebaseUID     *string                      `gorm:"size:255;uniqueIndex" json:"-"`
	IsEmailVerified bool                         `gorm:"not null;default:false" json:"isEmailVerified"`
	Location        JSONColumn[Location]         `json:"location"`
	Profile         JSONColumn[Profile]          `json:"profile"`
	Preferences     JSONColumn[Preferences]      `json:"preferences"`
	WorkExperience  JSONColumn[[]WorkExperience] `json:"workExperience"`
	Education       JSONColumn[[]Education]      `json:"education"`
	Skills          JSONColumn[[]Skill]          `json:"skills"`
	Certifications  JSONColumn[[]Certification]  `json:"certifications"`
	Resume          JSONColumn[*ResumeRef]       `json:"resume,omitempty"`
	LastLogin       *time.Time                   `json:"lastLogin,omitempty"`
	IsActive        bool                         `gorm:"not null;default:true;index" json:"isActive"`
	CreatedAt       time.Time                    `json:"createdAt"`
	UpdatedAt       time.Time                    `json:"updatedAt"`
}

// TableName overrides the table name for Candidate
func (Candidate) TableName() string {
	return "candidates"
}

// BeforeCreate assigns a new id and empty profile sections
func (c *Candidate) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	if c.WorkExperience.Data() == nil {
		c.WorkExperience = NewJSONColumn([]WorkExperience{})
	}
	if c.Education.Data() == nil {
		c.Education = NewJSONColumn([]Education{})
	}
	if c.Skills.Data() == nil {
		c.Skills = NewJSONColumn([]Skill{})
	}
	if c.Certifications.Data() == nil {
		c.Certifications = NewJSONColumn([]Certification{})
	}
	return nil
}

// Location is a city/state/country triple
type Location struct {
	City    string `json:"city,omitempty"`
	State   string `json:"state,omitempty"`
	Country string `json:"country,omitempty"`
}

// Profile holds the candidate's education summary
type Profile struct {
	EducationLevel string   `json:"educationLevel,omitempty" validate:"omitempty,oneof=Graduate 'Post Graduate'"`
	Course         string   `json:"course,omitempty"`
	Specialization string   `json:"specialization,omitempty"`
	Summary        string   `json:"summary,omitempty" validate:"max=2000"`
	CurrentSalary  *float64 `json:"currentSalary,omitempty" validate:"omitempty,gte=0"`
	ResumeURL      string   `json:"resumeUrl,omitempty" validate:"omitempty,url"`
	Visibility     *bool    `json:"visibility,omitempty"`
}

// WorkSchedule lists preferred days and shifts
type WorkSchedule struct {
	Days      []string `json:"days,omitempty"`
	Shifts    []string `json:"shifts,omitempty"`
	Schedules []string `json:"schedules,omitempty"`
}

// Preferences describes what the candidate is looking for
type Preferences struct {
	DesiredJobTitles   []string      `json:"desiredJobTitles,omitempty"`
	JobTypes           []string      `json:"jobTypes,omitempty"`
	WorkSchedule       *WorkSchedule `json:"workSchedule,omitempty"`
	MinimumSalary      *float64      `json:"minimumSalary,omitempty" validate:"omitempty,gte=0"`
	PreferredLocations []string      `json:"preferredLocations,omitempty"`
	RemoteWork         *bool         `json:"remoteWork,omitempty"`
}

// ResumeRef points at an uploaded resume
type ResumeRef struct {
	FileName   string     `json:"fileName,omitempty"`
	FileURL    string     `json:"fileUrl" validate:"required,url"`
	UploadedAt *time.Time `json:"uploadedAt,omitempty"`
}

// ProfileEntry is an item of a list-valued profile section
type ProfileEntry interface {
	EntryID() string
}

// WorkExperience is a single job history entry
type WorkExperience struct {
	ID             string     `json:"id"`
	JobTitle       string     `json:"jobTitle,omitempty" validate:"max=200"`
	Company        string     `json:"company,omitempty" validate:"max=200"`
	Location       string     `json:"location,omitempty"`
	EmploymentType string     `json:"employmentType,omitempty"`
	StartDate      *time.Time `json:"startDate,omitempty"`
	EndDate        *time.Time `json:"endDate,omitempty"`
	IsCurrent      bool       `json:"isCurrent"`
	NoticePeriod   string     `json:"noticePeriod,omitempty"`
	Description    string     `json:"description,omitempty" validate:"max=2000"`
}

// EntryID implements ProfileEntry
func (w WorkExperience) EntryID() string { return w.ID }

// Education is a single degree entry
type Education struct {
	ID          string     `json:"id"`
	Degree      string     `json:"degree,omitempty" validate:"max=200"`
	Institution string     `json:"institution,omitempty" validate:"max=200"`
	Location    string     `json:"location,omitempty"`
	StartDate   *time.Time `json:"startDate,omitempty"`
	EndDate     *time.Time `json:"endDate,omitempty"`
	IsCurrent   bool       `json:"isCurrent"`
	Grade       string     `json:"grade,omitempty"`
}

// EntryID implements ProfileEntry
func (e Education) EntryID() string { return e.ID }

// Skill is a named skill with a proficiency
type Skill struct {
	ID          string `json:"id"`
	Name        string `json:"name" validate:"max=100"`
	Proficiency string `json:"proficiency,omitempty" validate:"omitempty,oneof=Beginner Intermediate Advanced Expert"`
	Source      string `json:"source,omitempty"`
}

// EntryID implements ProfileEntry
func (s Skill) EntryID() string { return s.ID }

// Certification is a credential held by the candidate
type Certification struct {
	ID           string     `json:"id"`
	Name         string     `json:"name,omitempty" validate:"max=200"`
	Issuer       string     `json:"issuer,omitempty" validate:"max=200"`
	IssueDate    *time.Time `json:"issueDate,omitempty"`
	ExpiryDate   *time.Time `json:"expiryDate,omitempty"`
	CredentialID string     `json:"credentialId,omitempty"`
	URL          string     `json:"url,omitempty" validate:"omitempty,url"`
}

// EntryID implements ProfileEntry
func (c Certification) EntryID() string { return c.ID }

// SavedJob is a bookmark of a job by a candidate
type SavedJob struct {
	ID          uint64    `gorm:"primaryKey;autoIncrement" json:"-"`
	CandidateID string    `gorm:"type:char(36);not null;index:idx_saved_candidate_job,unique" json:"-"`
	JobID       string    `gorm:"type:char(36);not null;index:idx_saved_candidate_job,unique" json:"jobId"`
	SavedAt     time.Time `gorm:"not null" json:"savedAt"`
	Job         *Job      `gorm:"foreignKey:JobID" json:"job,omitempty"`
}

// TableName overrides the table name for SavedJob
func (SavedJob) TableName() string {
	return "saved_jobs"
}
