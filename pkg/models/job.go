package models

import (
	"time"

	"github.com/pkg/errors"
	"github.com/segmentio/encoding/json"
	"github.com/uptrace/bun"
)

const (
	JobStatusPending    = "pending"
	JobStatusInProgress = "in_progress"
	JobStatusCompleted  = "completed"
	JobStatusFailed     = "failed"
)

const (
	JobTypeImport = "import"
)

type Job struct {
	bun.BaseModel `bun:"table:jobs,alias:j"`

	ID         int         `bun:",pk,nullzero" json:"id"`
	UserID     int         `bun:",nullzero" json:"user_id"`
	Type       string      `bun:",nullzero" json:"type"`
	Status     string      `bun:",nullzero" json:"status"`
	Data       string      `bun:",nullzero" json:"-"`
	DataParsed interface{} `bun:"-" json:"data"`
	Progress   int         `json:"progress"`
	Error      *string     `json:"error,omitempty"`
	ProcessID  *string     `json:"process_id,omitempty"`
	CreatedAt  time.Time   `json:"created_at"`
	UpdatedAt  time.Time   `json:"updated_at"`
}

func (job *Job) UnmarshalData() error {
	switch job.Type {
	case JobTypeImport:
		job.DataParsed = &JobImportData{}
	default:
		job.DataParsed = &map[string]interface{}{}
	}

	if job.Data == "" {
		return nil
	}

	err := json.Unmarshal([]byte(job.Data), job.DataParsed)
	if err != nil {
		return errors.WithStack(err)
	}

	return nil
}

// MarshalData serializes DataParsed back into the data column, used when a
// worker writes results into the payload.
func (job *Job) MarshalData() error {
	if job.DataParsed == nil {
		job.Data = "{}"
		return nil
	}

	data, err := json.Marshal(job.DataParsed)
	if err != nil {
		return errors.WithStack(err)
	}
	job.Data = string(data)

	return nil
}

// JobImportData is the payload of a bulk import job: the books to insert for
// the owning user.
type JobImportData struct {
	Books    []*ImportBook `json:"books"`
	Imported int           `json:"imported"`
	Skipped  int           `json:"skipped"`
}

// ImportBook is a single book row in a bulk import payload.
type ImportBook struct {
	Title         string  `json:"title"`
	Author        string  `json:"author"`
	TotalPages    int     `json:"total_pages"`
	ISBN          *string `json:"isbn,omitempty"`
	Genre         *string `json:"genre,omitempty"`
	PublishedDate *string `json:"published_date,omitempty"`
	CoverImageURL *string `json:"cover_image_url,omitempty"`
	IsOwned       bool    `json:"is_owned"`
}
