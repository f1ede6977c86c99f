// Package chatlog is the live ingest side: processed chat texts appended row
// by row, per-user harmful counts, and the generation jobs queued when a user
// crosses the harmful threshold.
package chatlog

import "time"

// Entry is one ingested processed-chat row. Rows are append-only.
type Entry struct {
	ID                uint64    `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID            int       `gorm:"index;not null" json:"user_id"`
	OriginalText      string    `gorm:"type:text;not null" json:"original_text"`
	ProcessedText     string    `gorm:"type:text;not null" json:"processed_text"`
	HarmfulWords      string    `gorm:"type:text" json:"harmful_words"`
	ReplacementFormat string    `gorm:"type:text" json:"replacement_format"`
	ReplacementText   string    `gorm:"type:text" json:"replacement_text"`
	AIHarmfulness     int       `gorm:"index;not null" json:"ai_harmfulness"`
	CreatedAt         time.Time `json:"created_at"`
}

func (Entry) TableName() string { return "chat_entries" }

type JobStatus string

const (
	JobQueued    JobStatus = "queued"
	JobRunning   JobStatus = "running"
	JobSucceeded JobStatus = "succeeded"
	JobFailed    JobStatus = "failed"
)

// Job is one queued per-user generation run (statistics + summary + quizzes).
type Job struct {
	ID string `gorm:"primaryKey;size:26" json:"id"` // ULID length

	UserID int       `gorm:"index;not null" json:"user_id"`
	Status JobStatus `gorm:"type:varchar(16);index;not null" json:"status"`

	// Filled when succeeded
	ResultPath *string `gorm:"type:text" json:"result_path,omitempty"`

	// Filled when failed
	Error *string `gorm:"type:text" json:"error,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Job) TableName() string { return "report_jobs" }
