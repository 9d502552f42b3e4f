package users

import (
	"context"
	"database/sql"
	"testing"

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

func seedUserWithProfile(t *testing.T, db *bun.DB) (*models.User, *models.UserProfile) {
	t.Helper()
	ctx := context.Background()

	user := &models.User{Username: "reader", PasswordHash: "x", IsActive: true}
	_, err := db.NewInsert().Model(user).Exec(ctx)
	require.NoError(t, err)

	profile := &models.UserProfile{UserID: user.ID, DisplayName: "reader"}
	_, err = db.NewInsert().Model(profile).Exec(ctx)
	require.NoError(t, err)

	return user, profile
}

func TestRetrieveProfile(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db)
	user, profile := seedUserWithProfile(t, db)
	ctx := context.Background()

	found, err := svc.RetrieveProfile(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, profile.ID, found.ID)
	assert.Equal(t, "reader", found.DisplayName)

	_, err = svc.RetrieveProfile(ctx, user.ID+1)
	require.Error(t, err)
}

func TestUpdateProfile(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db)
	user, profile := seedUserWithProfile(t, db)
	ctx := context.Background()

	genre := "Science Fiction"
	goal := 24
	profile.DisplayName = "Anders"
	profile.FavoriteGenre = &genre
	profile.ReadingGoal = &goal

	err := svc.UpdateProfile(ctx, profile, UpdateProfileOptions{
		Columns: []string{"display_name", "favorite_genre", "reading_goal"},
	})
	require.NoError(t, err)

	found, err := svc.RetrieveProfile(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "Anders", found.DisplayName)
	require.NotNil(t, found.FavoriteGenre)
	assert.Equal(t, genre, *found.FavoriteGenre)
	require.NotNil(t, found.ReadingGoal)
	assert.Equal(t, goal, *found.ReadingGoal)
}

func TestUpdateProfile_NoColumns(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db)
	_, profile := seedUserWithProfile(t, db)

	err := svc.UpdateProfile(context.Background(), profile, UpdateProfileOptions{})
	require.NoError(t, err)
}

func TestDeactivateUser(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db)
	user, _ := seedUserWithProfile(t, db)
	ctx := context.Background()

	err := svc.DeactivateUser(ctx, user)
	require.NoError(t, err)

	found := &models.User{}
	err = db.NewSelect().Model(found).Where("u.id = ?", user.ID).Scan(ctx)
	require.NoError(t, err)
	assert.False(t, found.IsActive)
}

func TestUpdatePassword(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db)
	user, _ := seedUserWithProfile(t, db)
	ctx := context.Background()

	err := svc.UpdatePassword(ctx, user, "new-hash")
	require.NoError(t, err)

	found := &models.User{}
	err = db.NewSelect().Model(found).Where("u.id = ?", user.ID).Scan(ctx)
	require.NoError(t, err)
	assert.Equal(t, "new-hash", found.PasswordHash)
}
