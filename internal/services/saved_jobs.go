package services

import (
	"context"
	"fmt"
	"time"

	"github.com/localnerve/jobboard/internal/database"
	"github.com/localnerve/jobboard/internal/models"
	"github.com/localnerve/jobboard/internal/types"
	"gorm.io/gorm"
)

// SaveJob bookmarks a job for the candidate
func SaveJob(ctx context.Context, db *gorm.DB, candidateID, jobID string) (*models.SavedJob, error) {
	job, err := GetJob(ctx, db, jobID)
	if err != nil {
		return nil, types.ErrJobNotFound
	}

	saved := &models.SavedJob{CandidateID: candidateID, JobID: job.ID, SavedAt: time.Now()}
	if err := db.WithContext(ctx).Omit("Job").Create(saved).Error; err != nil {
		if database.IsDuplicateKey(err) {
			return nil, types.ErrAlreadySaved
		}
		return nil, fmt.Errorf("failed to save job: %w", err)
	}
	saved.Job = job
	return saved, nil
}

// UnsaveJob removes a bookmark
func UnsaveJob(ctx context.Context, db *gorm.DB, candidateID, jobID string) error {
	res := db.WithContext(ctx).Where("candidate_id = ? AND job_id = ?", candidateID, jobID).Delete(&models.SavedJob{})
	if res.Error != nil {
		return fmt.Errorf("failed to remove saved job: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return types.ErrJobNotFound
	}
	return nil
}

// ListSavedJobs lists the candidate's bookmarks that still point at a job, newest first
func ListSavedJobs(ctx context.Context, db *gorm.DB, candidateID string) ([]models.SavedJob, error) {
	saved := []models.SavedJob{}
	err := quiet(db.WithContext(ctx)).
		InnerJoins("Job").
		Where("saved_jobs.candidate_id = ?", candidateID).
		Order("saved_jobs.saved_at DESC").
		Find(&saved).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list saved jobs: %w", err)
	}
	return saved, nil
}
