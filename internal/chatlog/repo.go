package chatlog

import (
	"context"

	"gorm.io/gorm"
)

type Repo struct {
	db *gorm.DB
}

func NewRepo(db *gorm.DB) *Repo {
	return &Repo{db: db}
}

func (r *Repo) AppendEntry(ctx context.Context, e *Entry) error {
	return r.db.WithContext(ctx).Create(e).Error
}

// CountHarmful counts a user's AI-flagged rows.
func (r *Repo) CountHarmful(ctx context.Context, userID int) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&Entry{}).
		Where("user_id = ? AND ai_harmfulness = ?", userID, 1).
		Count(&n).Error
	return n, err
}

// ListHarmful returns a user's AI-flagged rows in insertion order.
func (r *Repo) ListHarmful(ctx context.Context, userID int) ([]Entry, error) {
	var entries []Entry
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND ai_harmfulness = ?", userID, 1).
		Order("id ASC").
		Find(&entries).Error
	return entries, err
}

// Job CRUD
func (r *Repo) CreateJob(ctx context.Context, job *Job) error {
	return r.db.WithContext(ctx).Create(job).Error
}

func (r *Repo) GetJobByID(ctx context.Context, id string) (*Job, error) {
	var j Job
	if err := r.db.WithContext(ctx).First(&j, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &j, nil
}

func (r *Repo) MarkJobRunning(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Model(&Job{}).
		Where("id = ? AND status = ?", id, JobQueued).
		Update("status", JobRunning).Error
}

func (r *Repo) MarkJobSucceeded(ctx context.Context, id string, resultPath string) error {
	return r.db.WithContext(ctx).Model(&Job{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"status":      JobSucceeded,
			"result_path": resultPath,
			"error":       nil,
		}).Error
}

func (r *Repo) MarkJobFailed(ctx context.Context, id string, errMsg string) error {
	return r.db.WithContext(ctx).Model(&Job{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"status":      JobFailed,
			"error":       errMsg,
			"result_path": nil,
		}).Error
}
