package books

import (
	"net/http"

	"github.com/andersbekkevard/librarium-app-sub001/pkg/auth"
	"github.com/andersbekkevard/librarium-app-sub001/pkg/errcodes"
	"github.com/andersbekkevard/librarium-app-sub001/pkg/models"
	"github.com/andersbekkevard/librarium-app-sub001/pkg/readingstate"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

type handler struct {
	bookService *Service
}

// retrieveOwned loads the book in the path param scoped to the signed-in
// user. Every book route goes through this, so one user can never see or
// touch another user's shelf.
func (h *handler) retrieveOwned(c echo.Context) (*models.Book, error) {
	ctx := c.Request().Context()

	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return nil, errcodes.Unauthorized("Authentication required")
	}

	id := c.Param("id")
	return h.bookService.RetrieveBook(ctx, RetrieveBookOptions{
		ID:     &id,
		UserID: &userID,
	})
}

func (h *handler) list(c echo.Context) error {
	ctx := c.Request().Context()

	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return errcodes.Unauthorized("Authentication required")
	}

	// Bind params.
	params := ListBooksQuery{}
	if err := c.Bind(&params); err != nil {
		return errors.WithStack(err)
	}

	opts := ListBooksOptions{
		Limit:   &params.Limit,
		Offset:  &params.Offset,
		UserID:  &userID,
		IsOwned: params.IsOwned,
		Genre:   params.Genre,
		Search:  params.Search,
	}
	if params.State != nil {
		state := readingstate.State(*params.State)
		opts.State = &state
	}

	books, total, err := h.bookService.ListBooksWithTotal(ctx, opts)
	if err != nil {
		return errors.WithStack(err)
	}

	resp := struct {
		Books []*models.Book `json:"books"`
		Total int            `json:"total"`
	}{books, total}

	return errors.WithStack(c.JSON(http.StatusOK, resp))
}

func (h *handler) retrieve(c echo.Context) error {
	book, err := h.retrieveOwned(c)
	if err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.JSON(http.StatusOK, book))
}

func (h *handler) create(c echo.Context) error {
	ctx := c.Request().Context()

	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return errcodes.Unauthorized("Authentication required")
	}

	// Bind body.
	body := CreateBookPayload{}
	if err := c.Bind(&body); err != nil {
		return errors.WithStack(err)
	}

	book := &models.Book{
		UserID:        userID,
		Title:         body.Title,
		Author:        body.Author,
		TotalPages:    body.TotalPages,
		ISBN:          body.ISBN,
		Genre:         body.Genre,
		PublishedDate: body.PublishedDate,
		CoverImageURL: body.CoverImageURL,
		Notes:         body.Notes,
		IsOwned:       body.IsOwned,
	}
	if body.State != nil {
		book.State = readingstate.State(*body.State)
	}

	if err := h.bookService.CreateBook(ctx, book); err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.JSON(http.StatusCreated, book))
}

// update is the manual-correction endpoint. It writes exactly the fields
// present in the payload and skips the state machine's transition check.
func (h *handler) update(c echo.Context) error {
	ctx := c.Request().Context()

	book, err := h.retrieveOwned(c)
	if err != nil {
		return errors.WithStack(err)
	}

	// Bind body.
	body := UpdateBookPayload{}
	if err := c.Bind(&body); err != nil {
		return errors.WithStack(err)
	}

	columns := []string{}
	if body.Title != nil {
		book.Title = *body.Title
		columns = append(columns, "title")
	}
	if body.Author != nil {
		book.Author = *body.Author
		columns = append(columns, "author")
	}
	if body.State != nil {
		book.State = readingstate.State(*body.State)
		columns = append(columns, "state")
	}
	if body.CurrentPage != nil {
		book.CurrentPage = *body.CurrentPage
		columns = append(columns, "current_page")
	}
	if body.TotalPages != nil {
		book.TotalPages = *body.TotalPages
		columns = append(columns, "total_pages")
	}
	if body.Rating != nil {
		book.Rating = body.Rating
		columns = append(columns, "rating")
	}
	if body.ISBN != nil {
		book.ISBN = body.ISBN
		columns = append(columns, "isbn")
	}
	if body.Genre != nil {
		book.Genre = body.Genre
		columns = append(columns, "genre")
	}
	if body.PublishedDate != nil {
		book.PublishedDate = body.PublishedDate
		columns = append(columns, "published_date")
	}
	if body.CoverImageURL != nil {
		book.CoverImageURL = body.CoverImageURL
		columns = append(columns, "cover_image_url")
	}
	if body.Notes != nil {
		book.Notes = body.Notes
		columns = append(columns, "notes")
	}
	if body.IsOwned != nil {
		book.IsOwned = *body.IsOwned
		columns = append(columns, "is_owned")
	}

	err = h.bookService.UpdateBook(ctx, book, UpdateBookOptions{Columns: columns})
	if err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.JSON(http.StatusOK, book))
}

func (h *handler) updateState(c echo.Context) error {
	ctx := c.Request().Context()

	book, err := h.retrieveOwned(c)
	if err != nil {
		return errors.WithStack(err)
	}

	// Bind body.
	body := UpdateStatePayload{}
	if err := c.Bind(&body); err != nil {
		return errors.WithStack(err)
	}

	err = h.bookService.UpdateState(ctx, book, readingstate.State(body.State))
	if err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.JSON(http.StatusOK, book))
}

func (h *handler) updateProgress(c echo.Context) error {
	ctx := c.Request().Context()

	book, err := h.retrieveOwned(c)
	if err != nil {
		return errors.WithStack(err)
	}

	// Bind body.
	body := UpdateProgressPayload{}
	if err := c.Bind(&body); err != nil {
		return errors.WithStack(err)
	}

	err = h.bookService.UpdateProgress(ctx, book, *body.CurrentPage)
	if err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.JSON(http.StatusOK, book))
}

func (h *handler) rate(c echo.Context) error {
	ctx := c.Request().Context()

	book, err := h.retrieveOwned(c)
	if err != nil {
		return errors.WithStack(err)
	}

	// Bind body.
	body := RateBookPayload{}
	if err := c.Bind(&body); err != nil {
		return errors.WithStack(err)
	}

	err = h.bookService.RateBook(ctx, book, body.Rating)
	if err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.JSON(http.StatusOK, book))
}

func (h *handler) delete(c echo.Context) error {
	ctx := c.Request().Context()

	book, err := h.retrieveOwned(c)
	if err != nil {
		return errors.WithStack(err)
	}

	err = h.bookService.DeleteBook(ctx, book)
	if err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.NoContent(http.StatusNoContent))
}

func (h *handler) stats(c echo.Context) error {
	ctx := c.Request().Context()

	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return errcodes.Unauthorized("Authentication required")
	}

	stats, err := h.bookService.Stats(ctx, userID)
	if err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.JSON(http.StatusOK, stats))
}
