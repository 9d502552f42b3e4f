package events

import (
	"context"
	"time"

	"github.com/andersbekkevard/librarium-app-sub001/pkg/models"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/segmentio/encoding/json"
	"github.com/uptrace/bun"
)

type ListEventsOptions struct {
	Limit  *int
	Offset *int
	BookID *string
	UserID *int
	Types  []string

	includeTotal bool
}

type Service struct {
	db *bun.DB
}

func NewService(db *bun.DB) *Service {
	return &Service{db}
}

// Append writes a single audit event. It accepts a bun.IDB so that callers
// can append inside the same transaction as the mutation being recorded.
// Events are append-only: there is no update path.
func Append(ctx context.Context, db bun.IDB, event *models.BookEvent) error {
	if event.CreatedAt.IsZero() {
		event.CreatedAt = time.Now()
	}

	if event.ID == "" {
		id, err := uuid.NewRandom()
		if err != nil {
			return errors.WithStack(err)
		}
		event.ID = id.String()
	}

	if event.Data == "" && event.DataParsed != nil {
		data, err := json.Marshal(event.DataParsed)
		if err != nil {
			return errors.WithStack(err)
		}
		event.Data = string(data)
	}
	if event.Data == "" {
		event.Data = "{}"
	}

	_, err := db.
		NewInsert().
		Model(event).
		Exec(ctx)
	if err != nil {
		return errors.WithStack(err)
	}

	return nil
}

// DeleteForBook removes every event belonging to a book. Only used when the
// parent book itself is deleted.
func DeleteForBook(ctx context.Context, db bun.IDB, bookID string) error {
	_, err := db.
		NewDelete().
		Model((*models.BookEvent)(nil)).
		Where("book_id = ?", bookID).
		Exec(ctx)
	return errors.WithStack(err)
}

func (svc *Service) ListEvents(ctx context.Context, opts ListEventsOptions) ([]*models.BookEvent, error) {
	e, _, err := svc.listEventsWithTotal(ctx, opts)
	return e, errors.WithStack(err)
}

func (svc *Service) ListEventsWithTotal(ctx context.Context, opts ListEventsOptions) ([]*models.BookEvent, int, error) {
	opts.includeTotal = true
	return svc.listEventsWithTotal(ctx, opts)
}

func (svc *Service) listEventsWithTotal(ctx context.Context, opts ListEventsOptions) ([]*models.BookEvent, int, error) {
	evts := []*models.BookEvent{}
	var total int
	var err error

	q := svc.db.
		NewSelect().
		Model(&evts).
		Order("e.created_at DESC")

	if opts.Limit != nil {
		q = q.Limit(*opts.Limit)
	}
	if opts.Offset != nil {
		q = q.Offset(*opts.Offset)
	}
	if opts.BookID != nil {
		q = q.Where("e.book_id = ?", *opts.BookID)
	}
	if opts.UserID != nil {
		q = q.Where("e.user_id = ?", *opts.UserID)
	}
	if opts.Types != nil {
		q = q.WhereGroup(" AND ", func(sq *bun.SelectQuery) *bun.SelectQuery {
			for _, t := range opts.Types {
				sq = sq.WhereOr("e.type = ?", t)
			}
			return sq
		})
	}

	if opts.includeTotal {
		total, err = q.ScanAndCount(ctx)
	} else {
		err = q.Scan(ctx)
	}
	if err != nil {
		return nil, 0, errors.WithStack(err)
	}

	for _, event := range evts {
		err := event.UnmarshalData()
		if err != nil {
			return nil, 0, errors.WithStack(err)
		}
	}

	return evts, total, nil
}
