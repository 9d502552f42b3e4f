package models

import (
	"time"

	"github.com/uptrace/bun"
)

// UserProfile holds per-user display metadata. The row is created the first
// time a user signs in and updated through profile edits.
type UserProfile struct {
	bun.BaseModel `bun:"table:user_profiles,alias:p"`

	ID             int       `bun:",pk,nullzero" json:"id"`
	UserID         int       `bun:",nullzero" json:"user_id"`
	DisplayName    string    `bun:",nullzero" json:"display_name"`
	AvatarURL      *string   `json:"avatar_url,omitempty"`
	FavoriteGenre  *string   `json:"favorite_genre,omitempty"`
	ReadingGoal    *int      `json:"reading_goal,omitempty"` // books per year
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
	LastSignedInAt time.Time `json:"last_signed_in_at"`
}
