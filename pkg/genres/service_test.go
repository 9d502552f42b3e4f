package genres

import (
	"context"
	"database/sql"
	"testing"

	"github.com/andersbekkevard/librarium-app-sub001/pkg/migrations"
	"github.com/andersbekkevard/librarium-app-sub001/pkg/models"
	"github.com/google/uuid"
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

func TestListGenres(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db)
	ctx := context.Background()

	user := &models.User{Username: "reader", PasswordHash: "x", IsActive: true}
	_, err := db.NewInsert().Model(user).Exec(ctx)
	require.NoError(t, err)

	scifi := "Science Fiction"
	fantasy := "Fantasy"
	for _, genre := range []*string{&scifi, &scifi, &fantasy, nil} {
		book := &models.Book{
			ID:     uuid.NewString(),
			UserID: user.ID,
			Title:  "t",
			Author: "a",
			State:  "not_started",
			Genre:  genre,
		}
		_, err := db.NewInsert().Model(book).Exec(ctx)
		require.NoError(t, err)
	}

	genres, err := svc.ListGenres(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, genres, 2, "books without a genre are skipped")
	assert.Equal(t, "Science Fiction", genres[0].Name)
	assert.Equal(t, 2, genres[0].Count)
	assert.Equal(t, "Fantasy", genres[1].Name)
	assert.Equal(t, 1, genres[1].Count)
}
