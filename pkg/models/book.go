package models

import (
	"time"

	"github.com/andersbekkevard/librarium-app-sub001/pkg/readingstate"
	"github.com/uptrace/bun"
)

type Book struct {
	bun.BaseModel `bun:"table:books,alias:b"`

	ID            string             `bun:",pk,nullzero" json:"id"`
	UserID        int                `bun:",nullzero" json:"user_id"`
	Title         string             `bun:",nullzero" json:"title"`
	Author        string             `bun:",nullzero" json:"author"`
	State         readingstate.State `bun:",nullzero" json:"state"`
	CurrentPage   int                `json:"current_page"`
	TotalPages    int                `json:"total_pages"`
	Rating        *int               `json:"rating,omitempty"`
	IsOwned       bool               `json:"is_owned"`
	ISBN          *string            `json:"isbn,omitempty"`
	Genre         *string            `json:"genre,omitempty"`
	PublishedDate *string            `json:"published_date,omitempty"`
	CoverImageURL *string            `json:"cover_image_url,omitempty"`
	Notes         *string            `json:"notes,omitempty"`
	AddedAt       time.Time          `json:"added_at"`
	UpdatedAt     time.Time          `json:"updated_at"`
	StartedAt     *time.Time         `json:"started_at,omitempty"`
	FinishedAt    *time.Time         `json:"finished_at,omitempty"`
}

// IsFinished reports whether the book has been read to completion.
func (b *Book) IsFinished() bool {
	return b.State == readingstate.Finished
}

// ProgressPercent returns reading progress as a 0-100 percentage. Books
// without page counts report 0.
func (b *Book) ProgressPercent() int {
	if b.TotalPages <= 0 {
		return 0
	}
	p := b.CurrentPage * 100 / b.TotalPages
	if p > 100 {
		p = 100
	}
	return p
}
