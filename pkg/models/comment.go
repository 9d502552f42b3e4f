package models

import (
	"time"

	"github.com/uptrace/bun"
)

type Comment struct {
	bun.BaseModel `bun:"table:book_comments,alias:c"`

	ID        string    `bun:",pk,nullzero" json:"id"`
	BookID    string    `bun:",nullzero" json:"book_id"`
	UserID    int       `bun:",nullzero" json:"user_id"`
	Text      string    `bun:",nullzero" json:"text"`
	CreatedAt time.Time `json:"created_at"`
}
