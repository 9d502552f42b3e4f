package genres

import (
	"context"

	"github.com/andersbekkevard/librarium-app-sub001/pkg/models"
	"github.com/pkg/errors"
	"github.com/uptrace/bun"
)

type Genre struct {
	Name  string `bun:"name" json:"name"`
	Count int    `bun:"count" json:"count"`
}

type Service struct {
	db *bun.DB
}

func NewService(db *bun.DB) *Service {
	return &Service{db}
}

// ListGenres returns the distinct genres on the user's shelf with how many
// books carry each, most common first.
func (svc *Service) ListGenres(ctx context.Context, userID int) ([]*Genre, error) {
	genres := []*Genre{}

	err := svc.db.
		NewSelect().
		Model((*models.Book)(nil)).
		ColumnExpr("b.genre AS name").
		ColumnExpr("COUNT(*) AS count").
		Where("b.user_id = ?", userID).
		Where("b.genre IS NOT NULL").
		Group("b.genre").
		OrderExpr("count DESC, name ASC").
		Scan(ctx, &genres)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return genres, nil
}
