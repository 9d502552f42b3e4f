package events

import (
	"net/http"

	"github.com/andersbekkevard/librarium-app-sub001/pkg/auth"
	"github.com/andersbekkevard/librarium-app-sub001/pkg/errcodes"
	"github.com/andersbekkevard/librarium-app-sub001/pkg/models"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

type handler struct {
	eventService *Service
}

func (h *handler) list(c echo.Context) error {
	ctx := c.Request().Context()

	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return errcodes.Unauthorized("Authentication required")
	}

	// Bind params.
	params := ListEventsQuery{}
	if err := c.Bind(&params); err != nil {
		return errors.WithStack(err)
	}

	opts := ListEventsOptions{
		Limit:  &params.Limit,
		Offset: &params.Offset,
		BookID: params.BookID,
		UserID: &userID,
		Types:  params.Types,
	}

	evts, total, err := h.eventService.ListEventsWithTotal(ctx, opts)
	if err != nil {
		return errors.WithStack(err)
	}

	resp := struct {
		Events []*models.BookEvent `json:"events"`
		Total  int                 `json:"total"`
	}{evts, total}

	return errors.WithStack(c.JSON(http.StatusOK, resp))
}
