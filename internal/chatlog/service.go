package chatlog

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// JobPublisher queues a generation job for the worker.
type JobPublisher interface {
	PublishJob(ctx context.Context, jobID string) error
}

// TriggerStore tracks harmful-row counters and the per-user in-flight guard.
type TriggerStore interface {
	IncrHarmfulCount(ctx context.Context, userID int) (int64, error)
	AcquireTrigger(ctx context.Context, userID int, jobID string, ttl time.Duration) (bool, error)
	ReleaseTrigger(ctx context.Context, userID int) error
}

// triggerTTL bounds how long a queued job blocks re-triggering if the worker
// never reports back.
const triggerTTL = time.Hour

type Service struct {
	repo      *Repo
	triggers  TriggerStore
	publisher JobPublisher
	threshold int
	log       *zap.Logger
}

func NewService(repo *Repo, triggers TriggerStore, publisher JobPublisher, threshold int, log *zap.Logger) *Service {
	if threshold <= 0 {
		threshold = 10
	}
	return &Service{
		repo:      repo,
		triggers:  triggers,
		publisher: publisher,
		threshold: threshold,
		log:       log,
	}
}

// ProcessedTextRequest is one ingested processed chat text.
type ProcessedTextRequest struct {
	UserID        int    `json:"user_id" binding:"required"`
	OriginalText  string `json:"original_text" binding:"required"`
	ProcessedText string `json:"processed_text" binding:"required"`
}

// Ingest parses the processed text, appends the row (rows arriving here are
// AI-flagged by definition), and queues a generation job when the user's
// harmful count reaches the threshold. The returned job is nil when nothing
// was triggered.
func (s *Service) Ingest(ctx context.Context, req ProcessedTextRequest) (*Entry, *Job, error) {
	parsed := ParseProcessedText(req.ProcessedText)

	entry := &Entry{
		UserID:            req.UserID,
		OriginalText:      req.OriginalText,
		ProcessedText:     req.ProcessedText,
		HarmfulWords:      parsed.HarmfulWords,
		ReplacementFormat: parsed.ReplacementFormat,
		ReplacementText:   parsed.ReplacementText,
		AIHarmfulness:     1,
	}
	if err := s.repo.AppendEntry(ctx, entry); err != nil {
		return nil, nil, err
	}

	count, err := s.harmfulCount(ctx, req.UserID)
	if err != nil {
		return nil, nil, err
	}
	if count < int64(s.threshold) {
		return entry, nil, nil
	}

	job, err := s.queueJob(ctx, req.UserID)
	if err != nil {
		// the row is already stored; a trigger failure must not fail ingest
		s.log.Warn("trigger failed", zap.Int("user_id", req.UserID), zap.Error(err))
		return entry, nil, nil
	}
	return entry, job, nil
}

// harmfulCount prefers the redis counter and falls back to the database when
// the counter is unavailable.
func (s *Service) harmfulCount(ctx context.Context, userID int) (int64, error) {
	if s.triggers != nil {
		if n, err := s.triggers.IncrHarmfulCount(ctx, userID); err == nil {
			return n, nil
		} else {
			s.log.Warn("redis counter unavailable, counting from db",
				zap.Int("user_id", userID), zap.Error(err))
		}
	}
	return s.repo.CountHarmful(ctx, userID)
}

func (s *Service) queueJob(ctx context.Context, userID int) (*Job, error) {
	jobID, err := NewJobID()
	if err != nil {
		return nil, err
	}

	if s.triggers != nil {
		acquired, err := s.triggers.AcquireTrigger(ctx, userID, jobID, triggerTTL)
		if err != nil {
			return nil, err
		}
		if !acquired {
			return nil, nil
		}
	}

	job := &Job{ID: jobID, UserID: userID, Status: JobQueued}
	if err := s.repo.CreateJob(ctx, job); err != nil {
		s.releaseTrigger(ctx, userID)
		return nil, err
	}
	if err := s.publisher.PublishJob(ctx, jobID); err != nil {
		_ = s.repo.MarkJobFailed(ctx, jobID, err.Error())
		s.releaseTrigger(ctx, userID)
		return nil, err
	}

	s.log.Info("generation job queued",
		zap.Int("user_id", userID), zap.String("job_id", jobID))
	return job, nil
}

func (s *Service) releaseTrigger(ctx context.Context, userID int) {
	if s.triggers == nil {
		return
	}
	if err := s.triggers.ReleaseTrigger(ctx, userID); err != nil {
		s.log.Warn("release trigger failed", zap.Int("user_id", userID), zap.Error(err))
	}
}

func (s *Service) GetJob(ctx context.Context, jobID string) (*Job, error) {
	return s.repo.GetJobByID(ctx, jobID)
}
