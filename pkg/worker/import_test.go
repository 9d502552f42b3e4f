package worker

import (
	"context"
	"database/sql"
	"testing"

	"github.com/andersbekkevard/librarium-app-sub001/pkg/books"
	"github.com/andersbekkevard/librarium-app-sub001/pkg/config"
	"github.com/andersbekkevard/librarium-app-sub001/pkg/jobs"
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

func newTestWorker(t *testing.T, db *bun.DB) *Worker {
	t.Helper()

	cfg := &config.Config{WorkerProcesses: 1}
	return New(cfg, db)
}

func createImportJob(t *testing.T, db *bun.DB, userID int, importBooks []*models.ImportBook) *models.Job {
	t.Helper()

	job := &models.Job{
		UserID:     userID,
		Type:       models.JobTypeImport,
		Status:     models.JobStatusInProgress,
		DataParsed: &models.JobImportData{Books: importBooks},
	}
	err := jobs.NewService(db).CreateJob(context.Background(), job)
	require.NoError(t, err)

	return job
}

func TestProcessImportJob(t *testing.T) {
	db := newTestDB(t)
	w := newTestWorker(t, db)
	ctx := context.Background()

	user := &models.User{Username: "reader", PasswordHash: "x", IsActive: true}
	_, err := db.NewInsert().Model(user).Exec(ctx)
	require.NoError(t, err)

	isbn := "9780306406157"
	job := createImportJob(t, db, user.ID, []*models.ImportBook{
		{Title: "Dune", Author: "Frank Herbert", TotalPages: 412, ISBN: &isbn},
		{Title: "Hyperion", Author: "Dan Simmons", TotalPages: 482},
	})

	err = w.ProcessImportJob(ctx, job)
	require.NoError(t, err)

	bookList, err := books.NewService(db).ListBooks(ctx, books.ListBooksOptions{UserID: &user.ID})
	require.NoError(t, err)
	assert.Len(t, bookList, 2)

	found, err := jobs.NewService(db).RetrieveJob(ctx, jobs.RetrieveJobOptions{ID: &job.ID})
	require.NoError(t, err)
	assert.Equal(t, 100, found.Progress)
	data, ok := found.DataParsed.(*models.JobImportData)
	require.True(t, ok)
	assert.Equal(t, 2, data.Imported)
	assert.Equal(t, 0, data.Skipped)
}

func TestProcessImportJob_SkipsDuplicateISBN(t *testing.T) {
	db := newTestDB(t)
	w := newTestWorker(t, db)
	ctx := context.Background()

	user := &models.User{Username: "reader", PasswordHash: "x", IsActive: true}
	_, err := db.NewInsert().Model(user).Exec(ctx)
	require.NoError(t, err)

	isbn := "9780306406157"
	existing := &models.Book{
		UserID:     user.ID,
		Title:      "Dune",
		Author:     "Frank Herbert",
		TotalPages: 412,
		ISBN:       &isbn,
	}
	require.NoError(t, books.NewService(db).CreateBook(ctx, existing))

	job := createImportJob(t, db, user.ID, []*models.ImportBook{
		{Title: "Dune", Author: "Frank Herbert", TotalPages: 412, ISBN: &isbn},
	})

	err = w.ProcessImportJob(ctx, job)
	require.NoError(t, err)

	bookList, err := books.NewService(db).ListBooks(ctx, books.ListBooksOptions{UserID: &user.ID})
	require.NoError(t, err)
	assert.Len(t, bookList, 1)

	found, err := jobs.NewService(db).RetrieveJob(ctx, jobs.RetrieveJobOptions{ID: &job.ID})
	require.NoError(t, err)
	data, ok := found.DataParsed.(*models.JobImportData)
	require.True(t, ok)
	assert.Equal(t, 0, data.Imported)
	assert.Equal(t, 1, data.Skipped)
}
