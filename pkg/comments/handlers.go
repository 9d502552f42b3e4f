package comments

import (
	"net/http"

	"github.com/andersbekkevard/librarium-app-sub001/pkg/auth"
	"github.com/andersbekkevard/librarium-app-sub001/pkg/books"
	"github.com/andersbekkevard/librarium-app-sub001/pkg/errcodes"
	"github.com/andersbekkevard/librarium-app-sub001/pkg/models"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

type handler struct {
	commentService *Service
	bookService    *books.Service
}

func (h *handler) list(c echo.Context) error {
	ctx := c.Request().Context()

	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return errcodes.Unauthorized("Authentication required")
	}

	// Bind params.
	params := ListCommentsQuery{}
	if err := c.Bind(&params); err != nil {
		return errors.WithStack(err)
	}

	comments, total, err := h.commentService.ListCommentsWithTotal(ctx, ListCommentsOptions{
		Limit:  &params.Limit,
		Offset: &params.Offset,
		BookID: params.BookID,
		UserID: &userID,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	resp := struct {
		Comments []*models.Comment `json:"comments"`
		Total    int               `json:"total"`
	}{comments, total}

	return errors.WithStack(c.JSON(http.StatusOK, resp))
}

func (h *handler) create(c echo.Context) error {
	ctx := c.Request().Context()

	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return errcodes.Unauthorized("Authentication required")
	}

	// Bind body.
	body := CreateCommentPayload{}
	if err := c.Bind(&body); err != nil {
		return errors.WithStack(err)
	}

	// The book has to exist and belong to the commenter.
	_, err := h.bookService.RetrieveBook(ctx, books.RetrieveBookOptions{
		ID:     &body.BookID,
		UserID: &userID,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	comment := &models.Comment{
		BookID: body.BookID,
		UserID: userID,
		Text:   body.Text,
	}

	if err := h.commentService.CreateComment(ctx, comment); err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.JSON(http.StatusCreated, comment))
}

func (h *handler) delete(c echo.Context) error {
	ctx := c.Request().Context()

	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return errcodes.Unauthorized("Authentication required")
	}

	id := c.Param("id")
	comment, err := h.commentService.RetrieveComment(ctx, RetrieveCommentOptions{
		ID:     &id,
		UserID: &userID,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	if err := h.commentService.DeleteComment(ctx, comment); err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.NoContent(http.StatusNoContent))
}
