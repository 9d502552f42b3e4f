package users

import (
	"context"
	"database/sql"
	"time"

	"github.com/andersbekkevard/librarium-app-sub001/pkg/errcodes"
	"github.com/andersbekkevard/librarium-app-sub001/pkg/models"
	"github.com/pkg/errors"
	"github.com/uptrace/bun"
)

type UpdateProfileOptions struct {
	Columns []string
}

type Service struct {
	db *bun.DB
}

func NewService(db *bun.DB) *Service {
	return &Service{db}
}

func (svc *Service) RetrieveProfile(ctx context.Context, userID int) (*models.UserProfile, error) {
	profile := &models.UserProfile{}

	err := svc.db.
		NewSelect().
		Model(profile).
		Where("p.user_id = ?", userID).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errcodes.NotFound("Profile")
		}
		return nil, errors.WithStack(err)
	}

	return profile, nil
}

func (svc *Service) UpdateProfile(ctx context.Context, profile *models.UserProfile, opts UpdateProfileOptions) error {
	if len(opts.Columns) == 0 {
		return nil
	}

	profile.UpdatedAt = time.Now()
	columns := append(opts.Columns, "updated_at")

	_, err := svc.db.
		NewUpdate().
		Model(profile).
		Column(columns...).
		WherePK().
		Exec(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return errcodes.NotFound("Profile")
		}
		return errors.WithStack(err)
	}

	return nil
}

// UpdatePassword swaps in a new password hash.
func (svc *Service) UpdatePassword(ctx context.Context, user *models.User, passwordHash string) error {
	user.PasswordHash = passwordHash
	user.UpdatedAt = time.Now()

	_, err := svc.db.
		NewUpdate().
		Model(user).
		Column("password_hash", "updated_at").
		WherePK().
		Exec(ctx)
	if err != nil {
		return errors.WithStack(err)
	}

	return nil
}

// DeactivateUser flips is_active off. The user's data stays; they just can't
// sign in anymore.
func (svc *Service) DeactivateUser(ctx context.Context, user *models.User) error {
	user.IsActive = false
	user.UpdatedAt = time.Now()

	_, err := svc.db.
		NewUpdate().
		Model(user).
		Column("is_active", "updated_at").
		WherePK().
		Exec(ctx)
	if err != nil {
		return errors.WithStack(err)
	}

	return nil
}
