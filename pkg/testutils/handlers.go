package testutils

import (
	"net/http"

	"github.com/andersbekkevard/librarium-app-sub001/pkg/auth"
	"github.com/andersbekkevard/librarium-app-sub001/pkg/books"
	"github.com/andersbekkevard/librarium-app-sub001/pkg/models"
	"github.com/andersbekkevard/librarium-app-sub001/pkg/readingstate"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/uptrace/bun"
)

type handler struct {
	db *bun.DB
}

// createUserRequest is the request body for creating a test user.
type createUserRequest struct {
	Username string  `json:"username" validate:"required"`
	Password string  `json:"password" validate:"required"`
	Email    *string `json:"email"`
}

// createUserResponse is the response body for creating a test user.
type createUserResponse struct {
	ID       int    `json:"id"`
	Username string `json:"username"`
}

// createUser creates a test user with a profile.
// POST /test/users.
func (h *handler) createUser(c echo.Context) error {
	ctx := c.Request().Context()

	var req createUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}

	hashedPassword, err := auth.HashPassword(req.Password)
	if err != nil {
		return errors.Wrap(err, "failed to hash password")
	}

	user := &models.User{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: hashedPassword,
		IsActive:     true,
	}

	_, err = h.db.NewInsert().Model(user).Exec(ctx)
	if err != nil {
		return errors.Wrap(err, "failed to create user")
	}

	profile := &models.UserProfile{
		UserID:      user.ID,
		DisplayName: user.Username,
	}
	_, err = h.db.NewInsert().Model(profile).Exec(ctx)
	if err != nil {
		return errors.Wrap(err, "failed to create user profile")
	}

	return c.JSON(http.StatusCreated, createUserResponse{
		ID:       user.ID,
		Username: user.Username,
	})
}

// createBookRequest is the request body for seeding a test book.
type createBookRequest struct {
	UserID     int     `json:"user_id" validate:"required"`
	Title      string  `json:"title" validate:"required"`
	Author     string  `json:"author" validate:"required"`
	TotalPages int     `json:"total_pages"`
	State      *string `json:"state"`
	ISBN       *string `json:"isbn"`
	Genre      *string `json:"genre"`
}

// createBook seeds a book on a user's shelf, going through the real service
// so that events get appended too.
// POST /test/books.
func (h *handler) createBook(c echo.Context) error {
	ctx := c.Request().Context()

	var req createBookRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}

	book := &models.Book{
		UserID:     req.UserID,
		Title:      req.Title,
		Author:     req.Author,
		TotalPages: req.TotalPages,
		ISBN:       req.ISBN,
		Genre:      req.Genre,
	}
	if req.State != nil {
		book.State = readingstate.State(*req.State)
	}

	err := books.NewService(h.db).CreateBook(ctx, book)
	if err != nil {
		return errors.Wrap(err, "failed to create book")
	}

	return c.JSON(http.StatusCreated, book)
}

// deleteAllData wipes every table so tests start from a clean slate.
// DELETE /test/data.
func (h *handler) deleteAllData(c echo.Context) error {
	ctx := c.Request().Context()

	for _, model := range []interface{}{
		(*models.Job)(nil),
		(*models.Comment)(nil),
		(*models.BookEvent)(nil),
		(*models.Book)(nil),
		(*models.UserProfile)(nil),
		(*models.User)(nil),
	} {
		_, err := h.db.NewDelete().Model(model).Where("1 = 1").Exec(ctx)
		if err != nil {
			return errors.Wrap(err, "failed to delete data")
		}
	}

	return c.NoContent(http.StatusNoContent)
}
