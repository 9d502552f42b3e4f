package genres

import (
	"net/http"

	"github.com/andersbekkevard/librarium-app-sub001/pkg/auth"
	"github.com/andersbekkevard/librarium-app-sub001/pkg/errcodes"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

type handler struct {
	genreService *Service
}

func (h *handler) list(c echo.Context) error {
	ctx := c.Request().Context()

	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return errcodes.Unauthorized("Authentication required")
	}

	genres, err := h.genreService.ListGenres(ctx, userID)
	if err != nil {
		return errors.WithStack(err)
	}

	resp := struct {
		Genres []*Genre `json:"genres"`
	}{genres}

	return errors.WithStack(c.JSON(http.StatusOK, resp))
}
