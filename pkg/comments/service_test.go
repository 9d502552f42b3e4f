package comments

import (
	"context"
	"database/sql"
	"testing"

	"github.com/andersbekkevard/librarium-app-sub001/pkg/events"
	"github.com/andersbekkevard/librarium-app-sub001/pkg/migrations"
	"github.com/andersbekkevard/librarium-app-sub001/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"
)

func newTestDB(t *testing.T) *bun.DB {
	t.Helper()

	sqldb, err := sql.Open(sqliteshim.ShimName, ":memory:")
	require.NoError(t, err)

	db := bun.NewDB(sqldb, sqlitedialect.New())

	_, err = migrations.BringUpToDate(context.Background(), db)
	require.NoError(t, err)

	t.Cleanup(func() {
		db.Close()
	})

	return db
}

func seedBook(t *testing.T, db *bun.DB) (*models.User, *models.Book) {
	t.Helper()
	ctx := context.Background()

	user := &models.User{Username: "reader", PasswordHash: "x", IsActive: true}
	_, err := db.NewInsert().Model(user).Exec(ctx)
	require.NoError(t, err)

	book := &models.Book{
		ID:     "2d1a3e9c-0000-4000-8000-000000000001",
		UserID: user.ID,
		Title:  "Piranesi",
		Author: "Susanna Clarke",
		State:  "in_progress",
	}
	_, err = db.NewInsert().Model(book).Exec(ctx)
	require.NoError(t, err)

	return user, book
}

func TestCreateComment(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db)
	user, book := seedBook(t, db)
	ctx := context.Background()

	comment := &models.Comment{
		BookID: book.ID,
		UserID: user.ID,
		Text:   "The statues chapter is stunning.",
	}
	err := svc.CreateComment(ctx, comment)
	require.NoError(t, err)

	assert.NotEmpty(t, comment.ID)
	assert.False(t, comment.CreatedAt.IsZero())

	evts, err := events.NewService(db).ListEvents(ctx, events.ListEventsOptions{
		BookID: &book.ID,
		Types:  []string{models.EventTypeCommentAdded},
	})
	require.NoError(t, err)
	require.Len(t, evts, 1)
	data, ok := evts[0].DataParsed.(*models.EventCommentAddedData)
	require.True(t, ok)
	assert.Equal(t, comment.ID, data.CommentID)
}

func TestListComments_NewestFirst(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db)
	user, book := seedBook(t, db)
	ctx := context.Background()

	for _, text := range []string{"first", "second", "third"} {
		err := svc.CreateComment(ctx, &models.Comment{
			BookID: book.ID,
			UserID: user.ID,
			Text:   text,
		})
		require.NoError(t, err)
	}

	comments, total, err := svc.ListCommentsWithTotal(ctx, ListCommentsOptions{BookID: &book.ID})
	require.NoError(t, err)
	assert.Equal(t, 3, total)
	require.Len(t, comments, 3)
}

func TestDeleteComment_KeepsEvent(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db)
	user, book := seedBook(t, db)
	ctx := context.Background()

	comment := &models.Comment{BookID: book.ID, UserID: user.ID, Text: "typo, deleting"}
	require.NoError(t, svc.CreateComment(ctx, comment))
	require.NoError(t, svc.DeleteComment(ctx, comment))

	_, err := svc.RetrieveComment(ctx, RetrieveCommentOptions{ID: &comment.ID})
	require.Error(t, err)

	// The audit log still shows that a comment was added.
	evts, err := events.NewService(db).ListEvents(ctx, events.ListEventsOptions{
		BookID: &book.ID,
		Types:  []string{models.EventTypeCommentAdded},
	})
	require.NoError(t, err)
	assert.Len(t, evts, 1)
}
