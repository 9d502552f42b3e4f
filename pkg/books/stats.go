package books

import (
	"context"

	"github.com/andersbekkevard/librarium-app-sub001/pkg/models"
	"github.com/andersbekkevard/librarium-app-sub001/pkg/readingstate"
	"github.com/pkg/errors"
)

type Stats struct {
	TotalBooks    int      `json:"total_books"`
	NotStarted    int      `json:"not_started"`
	InProgress    int      `json:"in_progress"`
	Finished      int      `json:"finished"`
	Owned         int      `json:"owned"`
	PagesRead     int      `json:"pages_read"`
	AverageRating *float64 `json:"average_rating"`
}

// Stats aggregates the user's shelf: per-state counts, total pages read
// across all books, and the average rating over rated books.
func (svc *Service) Stats(ctx context.Context, userID int) (*Stats, error) {
	stats := &Stats{}

	rows := []struct {
		State readingstate.State `bun:"state"`
		Count int                `bun:"count"`
	}{}

	err := svc.db.
		NewSelect().
		Model((*models.Book)(nil)).
		ColumnExpr("b.state AS state").
		ColumnExpr("COUNT(*) AS count").
		Where("b.user_id = ?", userID).
		Group("b.state").
		Scan(ctx, &rows)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	for _, row := range rows {
		stats.TotalBooks += row.Count
		switch row.State {
		case readingstate.NotStarted:
			stats.NotStarted = row.Count
		case readingstate.InProgress:
			stats.InProgress = row.Count
		case readingstate.Finished:
			stats.Finished = row.Count
		}
	}

	err = svc.db.
		NewSelect().
		Model((*models.Book)(nil)).
		ColumnExpr("COUNT(*)").
		Where("b.user_id = ?", userID).
		Where("b.is_owned").
		Scan(ctx, &stats.Owned)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	err = svc.db.
		NewSelect().
		Model((*models.Book)(nil)).
		ColumnExpr("COALESCE(SUM(b.current_page), 0)").
		Where("b.user_id = ?", userID).
		Scan(ctx, &stats.PagesRead)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	err = svc.db.
		NewSelect().
		Model((*models.Book)(nil)).
		ColumnExpr("AVG(b.rating)").
		Where("b.user_id = ?", userID).
		Where("b.rating IS NOT NULL").
		Scan(ctx, &stats.AverageRating)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return stats, nil
}
