package jobs

import (
	"net/http"
	"strconv"

	"github.com/andersbekkevard/librarium-app-sub001/pkg/auth"
	"github.com/andersbekkevard/librarium-app-sub001/pkg/errcodes"
	"github.com/andersbekkevard/librarium-app-sub001/pkg/models"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

type handler struct {
	jobService *Service
}

// createImport enqueues a bulk import. The worker pool picks the job up and
// inserts the books in the background.
func (h *handler) createImport(c echo.Context) error {
	ctx := c.Request().Context()

	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return errcodes.Unauthorized("Authentication required")
	}

	// Bind params.
	params := CreateImportJobPayload{}
	if err := c.Bind(&params); err != nil {
		return errors.WithStack(err)
	}

	// One import at a time per user.
	hasActive, err := h.jobService.HasActiveJobByType(ctx, userID, models.JobTypeImport)
	if err != nil {
		return errors.WithStack(err)
	}
	if hasActive {
		return errcodes.Conflict("An import job is already running or pending.")
	}

	data := &models.JobImportData{}
	for _, b := range params.Books {
		data.Books = append(data.Books, &models.ImportBook{
			Title:         b.Title,
			Author:        b.Author,
			TotalPages:    b.TotalPages,
			ISBN:          b.ISBN,
			Genre:         b.Genre,
			PublishedDate: b.PublishedDate,
			CoverImageURL: b.CoverImageURL,
			IsOwned:       b.IsOwned,
		})
	}

	job := &models.Job{
		UserID:     userID,
		Type:       models.JobTypeImport,
		Status:     models.JobStatusPending,
		DataParsed: data,
	}

	err = h.jobService.CreateJob(ctx, job)
	if err != nil {
		return errors.WithStack(err)
	}

	job, err = h.jobService.RetrieveJob(ctx, RetrieveJobOptions{
		ID: &job.ID,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.JSON(http.StatusOK, job))
}

func (h *handler) retrieve(c echo.Context) error {
	ctx := c.Request().Context()

	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return errcodes.Unauthorized("Authentication required")
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return errcodes.NotFound("Job")
	}

	job, err := h.jobService.RetrieveJob(ctx, RetrieveJobOptions{
		ID:     &id,
		UserID: &userID,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.JSON(http.StatusOK, job))
}

func (h *handler) list(c echo.Context) error {
	ctx := c.Request().Context()

	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return errcodes.Unauthorized("Authentication required")
	}

	// Bind params.
	params := ListJobsQuery{}
	if err := c.Bind(&params); err != nil {
		return errors.WithStack(err)
	}

	jobs, total, err := h.jobService.ListJobsWithTotal(ctx, ListJobsOptions{
		Limit:    &params.Limit,
		Offset:   &params.Offset,
		UserID:   &userID,
		Statuses: params.Status,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	resp := struct {
		Jobs  []*models.Job `json:"jobs"`
		Total int           `json:"total"`
	}{jobs, total}

	return errors.WithStack(c.JSON(http.StatusOK, resp))
}
