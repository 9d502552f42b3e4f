package auth

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

func TestCreateFirstUser(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db, "test-secret")
	ctx := context.Background()

	user, err := svc.CreateFirstUser(ctx, "anders", nil, "correct horse battery staple")
	require.NoError(t, err)
	assert.NotZero(t, user.ID)
	assert.True(t, user.IsActive)
	assert.NotEqual(t, "correct horse battery staple", user.PasswordHash)
	require.NotNil(t, user.Profile)
	assert.Equal(t, "anders", user.Profile.DisplayName)

	// Setup only works once.
	_, err = svc.CreateFirstUser(ctx, "intruder", nil, "password123")
	require.Error(t, err)
}

func TestAuthenticate(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db, "test-secret")
	ctx := context.Background()

	_, err := svc.CreateFirstUser(ctx, "anders", nil, "correct horse battery staple")
	require.NoError(t, err)

	user, err := svc.Authenticate(ctx, "anders", "correct horse battery staple")
	require.NoError(t, err)
	assert.Equal(t, "anders", user.Username)

	// Username matching is case-insensitive.
	_, err = svc.Authenticate(ctx, "ANDERS", "correct horse battery staple")
	require.NoError(t, err)

	_, err = svc.Authenticate(ctx, "anders", "wrong password")
	require.Error(t, err)

	_, err = svc.Authenticate(ctx, "nobody", "correct horse battery staple")
	require.Error(t, err)
}

func TestAuthenticate_InactiveUser(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db, "test-secret")
	ctx := context.Background()

	user, err := svc.CreateFirstUser(ctx, "anders", nil, "correct horse battery staple")
	require.NoError(t, err)

	user.IsActive = false
	_, err = db.NewUpdate().Model(user).Column("is_active").WherePK().Exec(ctx)
	require.NoError(t, err)

	_, err = svc.Authenticate(ctx, "anders", "correct horse battery staple")
	require.Error(t, err)
}

func TestAuthenticate_RecordsSignIn(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db, "test-secret")
	ctx := context.Background()

	// A user without a profile yet, as if created outside the setup flow.
	hash, err := HashPassword("correct horse battery staple")
	require.NoError(t, err)
	user := &models.User{Username: "anders", PasswordHash: hash, IsActive: true}
	_, err = db.NewInsert().Model(user).Exec(ctx)
	require.NoError(t, err)

	// First sign-in creates the profile.
	_, err = svc.Authenticate(ctx, "anders", "correct horse battery staple")
	require.NoError(t, err)

	profile := &models.UserProfile{}
	err = db.NewSelect().Model(profile).Where("p.user_id = ?", user.ID).Scan(ctx)
	require.NoError(t, err)
	assert.Equal(t, "anders", profile.DisplayName)
	firstSignIn := profile.LastSignedInAt

	// Subsequent sign-ins only bump the timestamp.
	time.Sleep(10 * time.Millisecond)
	_, err = svc.Authenticate(ctx, "anders", "correct horse battery staple")
	require.NoError(t, err)

	err = db.NewSelect().Model(profile).Where("p.user_id = ?", user.ID).Scan(ctx)
	require.NoError(t, err)
	assert.True(t, profile.LastSignedInAt.After(firstSignIn))

	count, err := db.NewSelect().Model((*models.UserProfile)(nil)).Where("user_id = ?", user.ID).Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestTokens(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db, "test-secret")
	ctx := context.Background()

	user, err := svc.CreateFirstUser(ctx, "anders", nil, "correct horse battery staple")
	require.NoError(t, err)

	token, err := svc.GenerateToken(user)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, "anders", claims.Username)

	// A token signed with a different secret is rejected.
	other := NewService(db, "other-secret")
	_, err = other.ValidateToken(token)
	require.Error(t, err)

	_, err = svc.ValidateToken("not-a-token")
	require.Error(t, err)
}

func TestHashPassword(t *testing.T) {
	hash, err := HashPassword("hunter22")
	require.NoError(t, err)

	assert.True(t, CheckPassword("hunter22", hash))
	assert.False(t, CheckPassword("hunter2", hash))
}
