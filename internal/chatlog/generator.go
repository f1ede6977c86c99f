package chatlog

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"github.com/kittyguard/harmreport/internal/ai"
	"github.com/kittyguard/harmreport/internal/harm"
	"github.com/kittyguard/harmreport/internal/quiz"
	"github.com/kittyguard/harmreport/internal/report"
)

// UserReport is the artifact the worker writes for one triggered user.
type UserReport struct {
	UserID      int           `json:"user_id"`
	GeneratedAt time.Time     `json:"generated_at"`
	Statistics  Statistics    `json:"statistics"`
	Report      SummaryReport `json:"report_results"`
	QuizResults []*quiz.Entry `json:"quiz_results"`
}

// Generator runs one queued job end to end: statistics, quizzes, summary,
// artifact, job state.
type Generator struct {
	repo       *Repo
	provider   ai.Provider
	triggers   TriggerStore // may be nil
	reportsDir string
	log        *zap.Logger
}

func NewGenerator(repo *Repo, provider ai.Provider, triggers TriggerStore, reportsDir string, log *zap.Logger) *Generator {
	return &Generator{
		repo:       repo,
		provider:   provider,
		triggers:   triggers,
		reportsDir: reportsDir,
		log:        log,
	}
}

// Run processes one job id from the queue. Per-item generation failures
// degrade fields and keep going; only storage failures fail the job.
func (g *Generator) Run(ctx context.Context, jobID string) error {
	_ = g.repo.MarkJobRunning(ctx, jobID)

	job, err := g.repo.GetJobByID(ctx, jobID)
	if err != nil {
		return err
	}

	rpt, err := g.generate(ctx, job.UserID)
	if err != nil {
		_ = g.repo.MarkJobFailed(ctx, jobID, err.Error())
		g.release(ctx, job.UserID)
		return err
	}

	path := filepath.Join(g.reportsDir, fmt.Sprintf("user_%d_%s.json", job.UserID, jobID))
	if err := report.WriteJSON(path, rpt); err != nil {
		_ = g.repo.MarkJobFailed(ctx, jobID, err.Error())
		g.release(ctx, job.UserID)
		return err
	}

	if err := g.repo.MarkJobSucceeded(ctx, jobID, path); err != nil {
		return err
	}
	g.release(ctx, job.UserID)

	g.log.Info("user report written",
		zap.Int("user_id", job.UserID),
		zap.String("job_id", jobID),
		zap.String("path", path))
	return nil
}

func (g *Generator) generate(ctx context.Context, userID int) (*UserReport, error) {
	if err := os.MkdirAll(g.reportsDir, 0o755); err != nil {
		return nil, err
	}

	entries, err := g.repo.ListHarmful(ctx, userID)
	if err != nil {
		return nil, err
	}

	stats := BuildStatistics(entries)

	quizzes := []*quiz.Entry{}
	items := []report.Item{}
	for _, e := range entries {
		words := harm.SplitWords(e.HarmfulWords)
		if len(words) == 0 || e.OriginalText == "" {
			continue
		}
		q := quiz.NewEntry(e.OriginalText, words[0], g.log)
		quizzes = append(quizzes, q)
		items = append(items, q)
	}
	report.Run(ctx, g.provider, quiz.GenerateOptions, items, g.log)

	summary := GenerateSummary(ctx, g.provider, userID, stats, g.log)

	return &UserReport{
		UserID:      userID,
		GeneratedAt: time.Now().UTC(),
		Statistics:  stats,
		Report:      summary,
		QuizResults: quizzes,
	}, nil
}

func (g *Generator) release(ctx context.Context, userID int) {
	if g.triggers == nil {
		return
	}
	if err := g.triggers.ReleaseTrigger(ctx, userID); err != nil {
		g.log.Warn("release trigger failed", zap.Int("user_id", userID), zap.Error(err))
	}
}
