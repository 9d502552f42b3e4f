package worker

import (
	"context"

	"github.com/andersbekkevard/librarium-app-sub001/pkg/books"
	"github.com/andersbekkevard/librarium-app-sub001/pkg/jobs"
	"github.com/andersbekkevard/librarium-app-sub001/pkg/models"
	"github.com/pkg/errors"
	"github.com/robinjoseph08/golib/logger"
)

// ProcessImportJob inserts the books carried in the job payload onto the
// user's shelf. Books whose ISBN is already on the shelf are skipped rather
// than duplicated. Progress is written back to the job row as a percentage so
// the client can poll it.
func (w *Worker) ProcessImportJob(ctx context.Context, job *models.Job) error {
	log := logger.FromContext(ctx)

	data, ok := job.DataParsed.(*models.JobImportData)
	if !ok {
		return errors.New("job data is not import data")
	}

	imported := 0
	skipped := 0

	for i, b := range data.Books {
		if b.ISBN != nil {
			_, err := w.bookService.RetrieveBook(ctx, books.RetrieveBookOptions{
				ISBN:   b.ISBN,
				UserID: &job.UserID,
			})
			if err == nil {
				skipped++
				log.Root(logger.Data{"isbn": *b.ISBN}).Info("skipping duplicate isbn")
				continue
			}
		}

		book := &models.Book{
			UserID:        job.UserID,
			Title:         b.Title,
			Author:        b.Author,
			TotalPages:    b.TotalPages,
			ISBN:          b.ISBN,
			Genre:         b.Genre,
			PublishedDate: b.PublishedDate,
			CoverImageURL: b.CoverImageURL,
			IsOwned:       b.IsOwned,
		}
		if err := w.bookService.CreateBook(ctx, book); err != nil {
			return errors.WithStack(err)
		}
		imported++

		progress := (i + 1) * 100 / len(data.Books)
		if progress != job.Progress {
			job.Progress = progress
			err := w.jobService.UpdateJob(ctx, job, jobs.UpdateJobOptions{
				Columns: []string{"progress"},
			})
			if err != nil {
				return errors.WithStack(err)
			}
		}
	}

	// Record the outcome in the job payload.
	data.Imported = imported
	data.Skipped = skipped
	job.DataParsed = data
	if err := job.MarshalData(); err != nil {
		return errors.WithStack(err)
	}
	job.Progress = 100

	err := w.jobService.UpdateJob(ctx, job, jobs.UpdateJobOptions{
		Columns: []string{"data", "progress"},
	})
	if err != nil {
		return errors.WithStack(err)
	}

	log.Root(logger.Data{"imported": imported, "skipped": skipped}).Info("import complete")

	return nil
}
