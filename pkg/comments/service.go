package comments

import (
	"context"
	"database/sql"
	"time"

	"github.com/andersbekkevard/librarium-app-sub001/pkg/errcodes"
	"github.com/andersbekkevard/librarium-app-sub001/pkg/events"
	"github.com/andersbekkevard/librarium-app-sub001/pkg/models"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/uptrace/bun"
)

type RetrieveCommentOptions struct {
	ID     *string
	UserID *int
}

type ListCommentsOptions struct {
	Limit  *int
	Offset *int
	BookID *string
	UserID *int

	includeTotal bool
}

type Service struct {
	db *bun.DB
}

func NewService(db *bun.DB) *Service {
	return &Service{db}
}

// CreateComment attaches a note to a book at its current reading position and
// appends a comment_added event.
func (svc *Service) CreateComment(ctx context.Context, comment *models.Comment) error {
	if comment.CreatedAt.IsZero() {
		comment.CreatedAt = time.Now()
	}

	if comment.ID == "" {
		id, err := uuid.NewRandom()
		if err != nil {
			return errors.WithStack(err)
		}
		comment.ID = id.String()
	}

	err := svc.db.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		_, err := tx.
			NewInsert().
			Model(comment).
			Exec(ctx)
		if err != nil {
			return errors.WithStack(err)
		}

		return events.Append(ctx, tx, &models.BookEvent{
			BookID:     comment.BookID,
			UserID:     comment.UserID,
			Type:       models.EventTypeCommentAdded,
			DataParsed: &models.EventCommentAddedData{CommentID: comment.ID},
		})
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return nil
}

func (svc *Service) RetrieveComment(ctx context.Context, opts RetrieveCommentOptions) (*models.Comment, error) {
	comment := &models.Comment{}

	q := svc.db.
		NewSelect().
		Model(comment)

	if opts.ID != nil {
		q = q.Where("c.id = ?", *opts.ID)
	}
	if opts.UserID != nil {
		q = q.Where("c.user_id = ?", *opts.UserID)
	}

	err := q.Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errcodes.NotFound("Comment")
		}
		return nil, errors.WithStack(err)
	}

	return comment, nil
}

func (svc *Service) ListComments(ctx context.Context, opts ListCommentsOptions) ([]*models.Comment, error) {
	c, _, err := svc.listCommentsWithTotal(ctx, opts)
	return c, errors.WithStack(err)
}

func (svc *Service) ListCommentsWithTotal(ctx context.Context, opts ListCommentsOptions) ([]*models.Comment, int, error) {
	opts.includeTotal = true
	return svc.listCommentsWithTotal(ctx, opts)
}

func (svc *Service) listCommentsWithTotal(ctx context.Context, opts ListCommentsOptions) ([]*models.Comment, int, error) {
	comments := []*models.Comment{}
	var total int
	var err error

	q := svc.db.
		NewSelect().
		Model(&comments).
		Order("c.created_at DESC")

	if opts.Limit != nil {
		q = q.Limit(*opts.Limit)
	}
	if opts.Offset != nil {
		q = q.Offset(*opts.Offset)
	}
	if opts.BookID != nil {
		q = q.Where("c.book_id = ?", *opts.BookID)
	}
	if opts.UserID != nil {
		q = q.Where("c.user_id = ?", *opts.UserID)
	}

	if opts.includeTotal {
		total, err = q.ScanAndCount(ctx)
	} else {
		err = q.Scan(ctx)
	}
	if err != nil {
		return nil, 0, errors.WithStack(err)
	}

	return comments, total, nil
}

// DeleteComment removes a single comment. The comment_added event stays in
// the history; the log records what happened, not the current state.
func (svc *Service) DeleteComment(ctx context.Context, comment *models.Comment) error {
	_, err := svc.db.
		NewDelete().
		Model(comment).
		WherePK().
		Exec(ctx)
	if err != nil {
		return errors.WithStack(err)
	}

	return nil
}
