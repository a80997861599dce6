// dashboard.go
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
	"fmt"
	"time"

	"github.com/localnerve/jobboard/internal/models"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
	"gorm.io/hints"
)

// Dashboard windows
const (
	RecentJobsWindow         = 30 * 24 * time.Hour
	RecentApplicationsWindow = 7 * 24 * time.Hour
)

// DashboardStatistics are the headline counters of a company dashboard
type DashboardStatistics struct {
	TotalJobs               int64 `json:"totalJobs"`
	ActiveJobs              int64 `json:"activeJobs"`
	InactiveJobs            int64 `json:"inactiveJobs"`
	RecentJobs              int64 `json:"recentJobs"`
	TotalApplications       int64 `json:"totalApplications"`
	PendingApplications     int64 `json:"pendingApplications"`
	ShortlistedApplications int64 `json:"shortlistedApplications"`
	HiredApplications       int64 `json:"hiredApplications"`
	RecentApplications      int64 `json:"recentApplications"`
}

// GroupCount is one bucket of a grouped count
type GroupCount struct {
	ID    string `json:"_id" gorm:"column:group_key"`
	Count int64  `json:"count" gorm:"column:count"`
}

// DashboardCharts are the grouped counts of a company dashboard
type DashboardCharts struct {
	JobsByDomain         []GroupCount `json:"jobsByDomain"`
	JobsByEducation      []GroupCount `json:"jobsByEducation"`
	ApplicationsByStatus []GroupCount `json:"applicationsByStatus"`
}

// Dashboard is the company dashboard rollup
type Dashboard struct {
	Statistics DashboardStatistics `json:"statistics"`
	Charts     DashboardCharts     `json:"charts"`
}

// CompanyDashboard rolls up the company's jobs and the applications to them.
// The queries are independent and run concurrently.
func CompanyDashboard(ctx context.Context, db *gorm.DB, companyID string) (*Dashboard, error) {
	now := time.Now()
	d := &Dashboard{}
	s := &d.Statistics

	g, ctx := errgroup.WithContext(ctx)

	jobs := func(tag string) *gorm.DB {
		return quiet(db.WithContext(ctx)).Clauses(hints.Comment("select", "dashboard:"+tag)).
			Model(&models.Job{}).Where("company_id = ?", companyID)
	}
	apps := func(tag string) *gorm.DB {
		return quiet(db.WithContext(ctx)).Clauses(hints.Comment("select", "dashboard:"+tag)).
			Model(&models.Application{}).
			Joins("JOIN jobs ON jobs.id = applications.job_id").
			Where("jobs.company_id = ?", companyID)
	}

	g.Go(func() error { return jobs("total_jobs").Count(&s.TotalJobs).Error })
	g.Go(func() error { return jobs("active_jobs").Where("is_active = ?", true).Count(&s.ActiveJobs).Error })
	g.Go(func() error {
		return jobs("recent_jobs").Where("created_at >= ?", now.Add(-RecentJobsWindow)).Count(&s.RecentJobs).Error
	})
	g.Go(func() error { return apps("total_applications").Count(&s.TotalApplications).Error })
	g.Go(func() error {
		return apps("pending_applications").Where("applications.status = ?", models.StatusPending).
			Count(&s.PendingApplications).Error
	})
	g.Go(func() error {
		return apps("shortlisted_applications").Where("applications.status = ?", models.StatusShortlisted).
			Count(&s.ShortlistedApplications).Error
	})
	g.Go(func() error {
		return apps("hired_applications").Where("applications.status = ?", models.StatusHired).
			Count(&s.HiredApplications).Error
	})
	g.Go(func() error {
		return apps("recent_applications").Where("applications.applied_at >= ?", now.Add(-RecentApplicationsWindow)).
			Count(&s.RecentApplications).Error
	})
	g.Go(func() error {
		d.Charts.JobsByDomain = []GroupCount{}
		return jobs("jobs_by_domain").Select("domain AS group_key, COUNT(*) AS count").
			Group("domain").Order("count DESC").Scan(&d.Charts.JobsByDomain).Error
	})
	g.Go(func() error {
		d.Charts.JobsByEducation = []GroupCount{}
		return jobs("jobs_by_education").Select("education_level AS group_key, COUNT(*) AS count").
			Group("education_level").Scan(&d.Charts.JobsByEducation).Error
	})
	g.Go(func() error {
		d.Charts.ApplicationsByStatus = []GroupCount{}
		return apps("applications_by_status").Select("applications.status AS group_key, COUNT(*) AS count").
			Group("applications.status").Scan(&d.Charts.ApplicationsByStatus).Error
	})

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to build dashboard: %w", err)
	}

	s.InactiveJobs = s.TotalJobs - s.ActiveJobs
	return d, nil
}
