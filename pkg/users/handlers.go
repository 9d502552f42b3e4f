package users

import (
	"net/http"

	"github.com/andersbekkevard/librarium-app-sub001/pkg/auth"
	"github.com/andersbekkevard/librarium-app-sub001/pkg/errcodes"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

type handler struct {
	userService *Service
}

func (h *handler) retrieveProfile(c echo.Context) error {
	ctx := c.Request().Context()

	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return errcodes.Unauthorized("Authentication required")
	}

	profile, err := h.userService.RetrieveProfile(ctx, userID)
	if err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.JSON(http.StatusOK, profile))
}

func (h *handler) updateProfile(c echo.Context) error {
	ctx := c.Request().Context()

	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return errcodes.Unauthorized("Authentication required")
	}

	// Bind body.
	body := UpdateProfilePayload{}
	if err := c.Bind(&body); err != nil {
		return errors.WithStack(err)
	}

	profile, err := h.userService.RetrieveProfile(ctx, userID)
	if err != nil {
		return errors.WithStack(err)
	}

	columns := []string{}
	if body.DisplayName != nil {
		profile.DisplayName = *body.DisplayName
		columns = append(columns, "display_name")
	}
	if body.AvatarURL != nil {
		profile.AvatarURL = body.AvatarURL
		columns = append(columns, "avatar_url")
	}
	if body.FavoriteGenre != nil {
		profile.FavoriteGenre = body.FavoriteGenre
		columns = append(columns, "favorite_genre")
	}
	if body.ReadingGoal != nil {
		profile.ReadingGoal = body.ReadingGoal
		columns = append(columns, "reading_goal")
	}

	err = h.userService.UpdateProfile(ctx, profile, UpdateProfileOptions{Columns: columns})
	if err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.JSON(http.StatusOK, profile))
}

func (h *handler) updatePassword(c echo.Context) error {
	ctx := c.Request().Context()

	user, ok := auth.UserFromContext(c)
	if !ok {
		return errcodes.Unauthorized("Authentication required")
	}

	// Bind body.
	body := UpdatePasswordPayload{}
	if err := c.Bind(&body); err != nil {
		return errors.WithStack(err)
	}

	if !auth.CheckPassword(body.CurrentPassword, user.PasswordHash) {
		return errcodes.ValidationError("Current password is incorrect.")
	}

	hash, err := auth.HashPassword(body.NewPassword)
	if err != nil {
		return errors.WithStack(err)
	}

	err = h.userService.UpdatePassword(ctx, user, hash)
	if err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.NoContent(http.StatusNoContent))
}

func (h *handler) deactivate(c echo.Context) error {
	ctx := c.Request().Context()

	user, ok := auth.UserFromContext(c)
	if !ok {
		return errcodes.Unauthorized("Authentication required")
	}

	err := h.userService.DeactivateUser(ctx, user)
	if err != nil {
		return errors.WithStack(err)
	}

	// Clear the session cookie; the account can no longer sign in.
	c.SetCookie(auth.ExpiredSessionCookie())

	return errors.WithStack(c.NoContent(http.StatusNoContent))
}
