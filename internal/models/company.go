package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Company is an employer account that owns job postings
type Company struct {
	ID              string                     `gorm:"type:char(36);primaryKey" json:"id"`
	Name            string                     `gorm:"size:100;not null" json:"name"`
	Email           string                     `gorm:"size:255;not null;uniqueIndex" json:"email"`
	PasswordHash    string                     `gorm:"size:255;not null" json:"-"`
	Description     string                     `gorm:"size:1000" json:"description,omitempty"`
	Website         string                     `gorm:"size:500" json:"website,omitempty"`
	Logo            string                     `gorm:"size:500" json:"logo,omitempty"`
	Industry        string                     `gorm:"size:100" json:"industry,omitempty"`
	Size            string                     `gorm:"size:20" json:"size,omitempty"`
	Founded         *int                       `json:"founded,omitempty"`
	ContactInfo     JSONColumn[CompanyContact] `json:"contactInfo"`
	HRContact       JSONColumn[HRContact]      `json:"hrContact"`
	IsVerified      bool                       `gorm:"not null;default:false" json:"isVerified"`
	IsActive        bool                       `gorm:"not null;default:true" json:"isActive"`
	TotalJobsPosted int64                      `gorm:"not null;default:0" json:"totalJobsPosted"`
	ActiveJobs      int64                      `gorm:"not null;default:0" json:"activeJobs"`
	LastLogin       *time.Time                 `json:"lastLogin,omitempty"`
	CreatedAt       time.Time                  `json:"createdAt"`
	UpdatedAt       time.Time                  `json:"updatedAt"`
}

// TableName overrides the table name for Company
func (Company) TableName() string {
	return "companies"
}

// BeforeCreate assigns a new id
func (c *Company) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}

// Address is a postal address
type Address struct {
	Street  string `json:"street,omitempty"`
	City    string `json:"city,omitempty"`
	State   string `json:"state,omitempty"`
	Country string `json:"country,omitempty"`
	Pincode string `json:"pincode,omitempty"`
}

// CompanyContact is the company's public contact info
type CompanyContact struct {
	Phone   string   `json:"phone,omitempty"`
	Address *Address `json:"address,omitempty"`
}

// HRContact is the recruiter responsible for postings
type HRContact struct {
	Name        string `json:"name,omitempty"`
	Email       string `json:"email,omitempty" validate:"omitempty,email"`
	Phone       string `json:"phone,omitempty"`
	Designation string `json:"designation,omitempty"`
}
