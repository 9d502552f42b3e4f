package models

import (
	"time"

	"github.com/pkg/errors"
	"github.com/segmentio/encoding/json"
	"github.com/uptrace/bun"
)

const (
	EventTypeAddBook        = "add_book"
	EventTypeStateChange    = "state_change"
	EventTypeProgressUpdate = "progress_update"
	EventTypeRatingAdded    = "rating_added"
	EventTypeCommentAdded   = "comment_added"
	EventTypeManualUpdate   = "manual_update"
	EventTypeDeleteBook     = "delete_book"
)

// BookEvent is an append-only audit record of a mutation to a book. Events
// are never updated, and only deleted in bulk when their parent book is
// deleted.
type BookEvent struct {
	bun.BaseModel `bun:"table:book_events,alias:e"`

	ID         string      `bun:",pk,nullzero" json:"id"`
	BookID     string      `bun:",nullzero" json:"book_id"`
	UserID     int         `bun:",nullzero" json:"user_id"`
	Type       string      `bun:",nullzero" json:"type"`
	Data       string      `bun:",nullzero" json:"-"`
	DataParsed interface{} `bun:"-" json:"data"`
	CreatedAt  time.Time   `json:"created_at"`
}

func (e *BookEvent) UnmarshalData() error {
	switch e.Type {
	case EventTypeAddBook:
		e.DataParsed = &EventAddBookData{}
	case EventTypeStateChange:
		e.DataParsed = &EventStateChangeData{}
	case EventTypeProgressUpdate:
		e.DataParsed = &EventProgressUpdateData{}
	case EventTypeRatingAdded:
		e.DataParsed = &EventRatingAddedData{}
	case EventTypeCommentAdded:
		e.DataParsed = &EventCommentAddedData{}
	case EventTypeManualUpdate:
		e.DataParsed = &EventManualUpdateData{}
	case EventTypeDeleteBook:
		e.DataParsed = &EventDeleteBookData{}
	default:
		e.DataParsed = &map[string]interface{}{}
	}

	if e.Data == "" {
		return nil
	}

	err := json.Unmarshal([]byte(e.Data), e.DataParsed)
	if err != nil {
		return errors.WithStack(err)
	}

	return nil
}

type EventAddBookData struct {
	Title string `json:"title"`
}

type EventStateChangeData struct {
	From string `json:"from"`
	To   string `json:"to"`
}

type EventProgressUpdateData struct {
	PreviousPage int `json:"previous_page"`
	NewPage      int `json:"new_page"`
}

type EventRatingAddedData struct {
	Rating int `json:"rating"`
}

type EventCommentAddedData struct {
	CommentID string `json:"comment_id"`
}

type EventManualUpdateData struct {
	Fields []string `json:"fields"`
}

type EventDeleteBookData struct {
	Title string `json:"title"`
}
