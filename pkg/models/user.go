package models

import (
	"time"

	"github.com/uptrace/bun"
)

type User struct {
	bun.BaseModel `bun:"table:users,alias:u"`

	ID           int       `bun:",pk,nullzero" json:"id"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
	Username     string    `bun:",nullzero" json:"username"`
	Email        *string   `json:"email,omitempty"`
	PasswordHash string    `json:"-"` // Never expose password hash
	IsActive     bool      `json:"is_active"`

	// Relations
	Profile *UserProfile `bun:"rel:has-one,join:id=user_id" json:"profile,omitempty"`
}
