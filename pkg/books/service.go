package books

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/andersbekkevard/librarium-app-sub001/pkg/errcodes"
	"github.com/andersbekkevard/librarium-app-sub001/pkg/events"
	"github.com/andersbekkevard/librarium-app-sub001/pkg/models"
	"github.com/andersbekkevard/librarium-app-sub001/pkg/readingstate"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/uptrace/bun"
)

type RetrieveBookOptions struct {
	ID     *string
	ISBN   *string
	UserID *int
}

type ListBooksOptions struct {
	Limit   *int
	Offset  *int
	UserID  *int
	State   *readingstate.State
	IsOwned *bool
	Genre   *string
	Search  *string

	includeTotal bool
}

type UpdateBookOptions struct {
	Columns []string
}

type Service struct {
	db *bun.DB
}

func NewService(db *bun.DB) *Service {
	return &Service{db}
}

// CreateBook inserts a new book and appends an add_book event. New books
// start in not_started unless the caller explicitly set a state (the manual
// path for entering an already-read book).
func (svc *Service) CreateBook(ctx context.Context, book *models.Book) error {
	now := time.Now()
	if book.AddedAt.IsZero() {
		book.AddedAt = now
	}
	book.UpdatedAt = book.AddedAt

	if book.ID == "" {
		id, err := uuid.NewRandom()
		if err != nil {
			return errors.WithStack(err)
		}
		book.ID = id.String()
	}

	if book.State == "" {
		book.State = readingstate.NotStarted
	}
	if !readingstate.IsValid(book.State) {
		return errcodes.ValidationError("Unknown reading state " + string(book.State) + ".")
	}
	if err := validateInvariants(book); err != nil {
		return err
	}

	// Books entered directly as in_progress or finished get their lifecycle
	// timestamps backfilled.
	switch book.State {
	case readingstate.InProgress:
		if book.StartedAt == nil {
			book.StartedAt = &now
		}
	case readingstate.Finished:
		if book.StartedAt == nil {
			book.StartedAt = &now
		}
		if book.FinishedAt == nil {
			book.FinishedAt = &now
		}
		book.CurrentPage = book.TotalPages
	}

	err := svc.db.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		_, err := tx.
			NewInsert().
			Model(book).
			Returning("*").
			Exec(ctx)
		if err != nil {
			return errors.WithStack(err)
		}

		return events.Append(ctx, tx, &models.BookEvent{
			BookID:     book.ID,
			UserID:     book.UserID,
			Type:       models.EventTypeAddBook,
			DataParsed: &models.EventAddBookData{Title: book.Title},
		})
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return nil
}

func (svc *Service) RetrieveBook(ctx context.Context, opts RetrieveBookOptions) (*models.Book, error) {
	book := &models.Book{}

	q := svc.db.
		NewSelect().
		Model(book)

	if opts.ID != nil {
		q = q.Where("b.id = ?", *opts.ID)
	}
	if opts.ISBN != nil {
		q = q.Where("b.isbn = ?", *opts.ISBN)
	}
	if opts.UserID != nil {
		q = q.Where("b.user_id = ?", *opts.UserID)
	}

	err := q.Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errcodes.NotFound("Book")
		}
		return nil, errors.WithStack(err)
	}

	return book, nil
}

func (svc *Service) ListBooks(ctx context.Context, opts ListBooksOptions) ([]*models.Book, error) {
	b, _, err := svc.listBooksWithTotal(ctx, opts)
	return b, errors.WithStack(err)
}

func (svc *Service) ListBooksWithTotal(ctx context.Context, opts ListBooksOptions) ([]*models.Book, int, error) {
	opts.includeTotal = true
	return svc.listBooksWithTotal(ctx, opts)
}

func (svc *Service) listBooksWithTotal(ctx context.Context, opts ListBooksOptions) ([]*models.Book, int, error) {
	books := []*models.Book{}
	var total int
	var err error

	q := svc.db.
		NewSelect().
		Model(&books).
		Order("b.added_at ASC")

	if opts.Limit != nil {
		q = q.Limit(*opts.Limit)
	}
	if opts.Offset != nil {
		q = q.Offset(*opts.Offset)
	}
	if opts.UserID != nil {
		q = q.Where("b.user_id = ?", *opts.UserID)
	}
	if opts.State != nil {
		q = q.Where("b.state = ?", *opts.State)
	}
	if opts.IsOwned != nil {
		q = q.Where("b.is_owned = ?", *opts.IsOwned)
	}
	if opts.Genre != nil {
		q = q.Where("b.genre = ? COLLATE NOCASE", *opts.Genre)
	}
	if opts.Search != nil {
		search := "%" + *opts.Search + "%"
		q = q.WhereGroup(" AND ", func(sq *bun.SelectQuery) *bun.SelectQuery {
			return sq.
				Where("b.title LIKE ? COLLATE NOCASE", search).
				WhereOr("b.author LIKE ? COLLATE NOCASE", search)
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

	return books, total, nil
}

// UpdateBook is the manual data-correction path: it writes the given columns
// without running the state machine's transition check, and appends a
// manual_update event naming the fields that changed. Field invariants
// (page bounds, rating range) still hold.
func (svc *Service) UpdateBook(ctx context.Context, book *models.Book, opts UpdateBookOptions) error {
	if len(opts.Columns) == 0 {
		return nil
	}

	if err := validateInvariants(book); err != nil {
		return err
	}

	err := svc.db.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		now := time.Now()
		book.UpdatedAt = now
		columns := append(opts.Columns, "updated_at")

		_, err := tx.
			NewUpdate().
			Model(book).
			Column(columns...).
			WherePK().
			Exec(ctx)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return errcodes.NotFound("Book")
			}
			return errors.WithStack(err)
		}

		return events.Append(ctx, tx, &models.BookEvent{
			BookID:     book.ID,
			UserID:     book.UserID,
			Type:       models.EventTypeManualUpdate,
			DataParsed: &models.EventManualUpdateData{Fields: opts.Columns},
		})
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return nil
}

// UpdateState moves a book to the next reading state, enforcing the
// transition table and applying the lifecycle side effects.
func (svc *Service) UpdateState(ctx context.Context, book *models.Book, next readingstate.State) error {
	if err := readingstate.Validate(book.State, next); err != nil {
		return err
	}

	previous := book.State
	columns := applyTransition(book, next)

	err := svc.db.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		now := time.Now()
		book.UpdatedAt = now
		columns = append(columns, "updated_at")

		_, err := tx.
			NewUpdate().
			Model(book).
			Column(columns...).
			WherePK().
			Exec(ctx)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return errcodes.NotFound("Book")
			}
			return errors.WithStack(err)
		}

		return events.Append(ctx, tx, &models.BookEvent{
			BookID:     book.ID,
			UserID:     book.UserID,
			Type:       models.EventTypeStateChange,
			DataParsed: &models.EventStateChangeData{From: string(previous), To: string(next)},
		})
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return nil
}

// UpdateProgress sets the current page and runs the automatic transitions:
// a not_started book moves to in_progress on its first nonzero page, and an
// in_progress book moves to finished when it reaches the last page.
func (svc *Service) UpdateProgress(ctx context.Context, book *models.Book, page int) error {
	if page < 0 {
		return errcodes.ValidationError("Progress can't be negative.")
	}
	if page > book.TotalPages {
		return errcodes.ValidationError(fmt.Sprintf("Progress can't exceed the book's %d pages.", book.TotalPages))
	}

	previousPage := book.CurrentPage
	book.CurrentPage = page
	columns := []string{"current_page"}

	// State hops triggered by this update, in order.
	hops := []*models.EventStateChangeData{}

	if book.State == readingstate.NotStarted && page > 0 {
		columns = append(columns, applyTransition(book, readingstate.InProgress)...)
		hops = append(hops, &models.EventStateChangeData{
			From: string(readingstate.NotStarted),
			To:   string(readingstate.InProgress),
		})
	}
	if book.State == readingstate.InProgress && book.TotalPages > 0 && page == book.TotalPages {
		columns = append(columns, applyTransition(book, readingstate.Finished)...)
		hops = append(hops, &models.EventStateChangeData{
			From: string(readingstate.InProgress),
			To:   string(readingstate.Finished),
		})
	}

	err := svc.db.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		now := time.Now()
		book.UpdatedAt = now
		columns = append(columns, "updated_at")

		_, err := tx.
			NewUpdate().
			Model(book).
			Column(dedupeColumns(columns)...).
			WherePK().
			Exec(ctx)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return errcodes.NotFound("Book")
			}
			return errors.WithStack(err)
		}

		err = events.Append(ctx, tx, &models.BookEvent{
			BookID:     book.ID,
			UserID:     book.UserID,
			Type:       models.EventTypeProgressUpdate,
			DataParsed: &models.EventProgressUpdateData{PreviousPage: previousPage, NewPage: book.CurrentPage},
		})
		if err != nil {
			return err
		}

		for _, hop := range hops {
			err := events.Append(ctx, tx, &models.BookEvent{
				BookID:     book.ID,
				UserID:     book.UserID,
				Type:       models.EventTypeStateChange,
				DataParsed: hop,
			})
			if err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return nil
}

// RateBook records a 1-5 rating. Ratings are only meaningful for finished
// books; anything else is rejected.
func (svc *Service) RateBook(ctx context.Context, book *models.Book, rating int) error {
	if rating < 1 || rating > 5 {
		return errcodes.ValidationError("Rating must be between 1 and 5.")
	}
	if !book.IsFinished() {
		return errcodes.ValidationError("Only finished books can be rated.")
	}

	book.Rating = &rating

	err := svc.db.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		now := time.Now()
		book.UpdatedAt = now

		_, err := tx.
			NewUpdate().
			Model(book).
			Column("rating", "updated_at").
			WherePK().
			Exec(ctx)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return errcodes.NotFound("Book")
			}
			return errors.WithStack(err)
		}

		return events.Append(ctx, tx, &models.BookEvent{
			BookID:     book.ID,
			UserID:     book.UserID,
			Type:       models.EventTypeRatingAdded,
			DataParsed: &models.EventRatingAddedData{Rating: rating},
		})
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return nil
}

// DeleteBook removes a book along with its comments and events in one
// transaction, then appends a delete_book event so the deletion itself stays
// in the user's history.
func (svc *Service) DeleteBook(ctx context.Context, book *models.Book) error {
	err := svc.db.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		_, err := tx.
			NewDelete().
			Model((*models.Comment)(nil)).
			Where("book_id = ?", book.ID).
			Exec(ctx)
		if err != nil {
			return errors.WithStack(err)
		}

		if err := events.DeleteForBook(ctx, tx, book.ID); err != nil {
			return err
		}

		_, err = tx.
			NewDelete().
			Model(book).
			WherePK().
			Exec(ctx)
		if err != nil {
			return errors.WithStack(err)
		}

		return events.Append(ctx, tx, &models.BookEvent{
			BookID:     book.ID,
			UserID:     book.UserID,
			Type:       models.EventTypeDeleteBook,
			DataParsed: &models.EventDeleteBookData{Title: book.Title},
		})
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return nil
}

// applyTransition mutates the book's state and lifecycle fields for an
// already-validated transition and returns the columns that changed.
func applyTransition(book *models.Book, next readingstate.State) []string {
	now := time.Now()
	columns := []string{"state"}
	book.State = next

	switch next {
	case readingstate.InProgress:
		if book.StartedAt == nil {
			book.StartedAt = &now
			columns = append(columns, "started_at")
		}
		if book.FinishedAt != nil {
			// Re-reading a finished book starts a fresh read.
			book.FinishedAt = nil
			columns = append(columns, "finished_at")
		}
	case readingstate.Finished:
		book.FinishedAt = &now
		book.CurrentPage = book.TotalPages
		columns = append(columns, "finished_at", "current_page")
	case readingstate.NotStarted:
		book.StartedAt = nil
		book.FinishedAt = nil
		book.CurrentPage = 0
		columns = append(columns, "started_at", "finished_at", "current_page")
	}

	return columns
}

// validateInvariants checks the field-level invariants that hold regardless
// of which write path is taken, including the manual bypass.
func validateInvariants(book *models.Book) error {
	msgs := []string{}

	if book.CurrentPage < 0 {
		msgs = append(msgs, "Current page can't be negative.")
	}
	if book.TotalPages < 0 {
		msgs = append(msgs, "Total pages can't be negative.")
	}
	if book.CurrentPage > book.TotalPages {
		msgs = append(msgs, "Current page can't exceed total pages.")
	}
	if book.Rating != nil && (*book.Rating < 1 || *book.Rating > 5) {
		msgs = append(msgs, "Rating must be between 1 and 5.")
	}

	if len(msgs) > 0 {
		return errcodes.ValidationErrors(msgs)
	}
	return nil
}

func dedupeColumns(columns []string) []string {
	seen := map[string]bool{}
	out := columns[:0]
	for _, c := range columns {
		if seen[c] {
			continue
		}
		seen[c] = true
		out = append(out, c)
	}
	return out
}
