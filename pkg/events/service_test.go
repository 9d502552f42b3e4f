package events

import (
	"context"
	"database/sql"
	"testing"
	"time"

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

func seedEventUser(t *testing.T, db *bun.DB) *models.User {
	t.Helper()

	user := &models.User{Username: "reader", PasswordHash: "x", IsActive: true}
	_, err := db.NewInsert().Model(user).Exec(context.Background())
	require.NoError(t, err)

	return user
}

const testBookID = "2d1a3e9c-0000-4000-8000-000000000001"

func TestAppend(t *testing.T) {
	db := newTestDB(t)
	user := seedEventUser(t, db)
	ctx := context.Background()

	event := &models.BookEvent{
		BookID:     testBookID,
		UserID:     user.ID,
		Type:       models.EventTypeStateChange,
		DataParsed: &models.EventStateChangeData{From: "not_started", To: "in_progress"},
	}
	err := Append(ctx, db, event)
	require.NoError(t, err)

	assert.NotEmpty(t, event.ID)
	assert.JSONEq(t, `{"from":"not_started","to":"in_progress"}`, event.Data)
	assert.False(t, event.CreatedAt.IsZero())
}

func TestAppend_EmptyPayload(t *testing.T) {
	db := newTestDB(t)
	user := seedEventUser(t, db)
	ctx := context.Background()

	event := &models.BookEvent{
		BookID: testBookID,
		UserID: user.ID,
		Type:   models.EventTypeManualUpdate,
	}
	err := Append(ctx, db, event)
	require.NoError(t, err)
	assert.Equal(t, "{}", event.Data)
}

func TestListEvents(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db)
	user := seedEventUser(t, db)
	ctx := context.Background()

	otherBookID := "2d1a3e9c-0000-4000-8000-000000000002"

	for i, e := range []*models.BookEvent{
		{BookID: testBookID, Type: models.EventTypeAddBook, DataParsed: &models.EventAddBookData{Title: "Dune"}},
		{BookID: testBookID, Type: models.EventTypeStateChange, DataParsed: &models.EventStateChangeData{From: "not_started", To: "in_progress"}},
		{BookID: testBookID, Type: models.EventTypeProgressUpdate, DataParsed: &models.EventProgressUpdateData{PreviousPage: 0, NewPage: 50}},
		{BookID: otherBookID, Type: models.EventTypeAddBook, DataParsed: &models.EventAddBookData{Title: "Hyperion"}},
	} {
		e.UserID = user.ID
		// Spread timestamps so ordering is deterministic.
		e.CreatedAt = time.Now().Add(time.Duration(i) * time.Second)
		require.NoError(t, Append(ctx, db, e))
	}

	// Newest first, scoped to the user.
	evts, total, err := svc.ListEventsWithTotal(ctx, ListEventsOptions{UserID: &user.ID})
	require.NoError(t, err)
	assert.Equal(t, 4, total)
	require.Len(t, evts, 4)
	assert.Equal(t, models.EventTypeAddBook, evts[0].Type)
	assert.Equal(t, otherBookID, evts[0].BookID)

	// Scoped to one book.
	bookID := testBookID
	evts, _, err = svc.ListEventsWithTotal(ctx, ListEventsOptions{BookID: &bookID})
	require.NoError(t, err)
	assert.Len(t, evts, 3)

	// Filtered by type, payload unmarshalled.
	evts, err = svc.ListEvents(ctx, ListEventsOptions{
		BookID: &bookID,
		Types:  []string{models.EventTypeProgressUpdate},
	})
	require.NoError(t, err)
	require.Len(t, evts, 1)
	data, ok := evts[0].DataParsed.(*models.EventProgressUpdateData)
	require.True(t, ok)
	assert.Equal(t, 50, data.NewPage)
}

func TestDeleteForBook(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db)
	user := seedEventUser(t, db)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		require.NoError(t, Append(ctx, db, &models.BookEvent{
			BookID: testBookID,
			UserID: user.ID,
			Type:   models.EventTypeProgressUpdate,
		}))
	}

	require.NoError(t, DeleteForBook(ctx, db, testBookID))

	bookID := testBookID
	evts, err := svc.ListEvents(ctx, ListEventsOptions{BookID: &bookID})
	require.NoError(t, err)
	assert.Empty(t, evts)
}
