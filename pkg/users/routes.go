package users

import (
	"github.com/labstack/echo/v4"
	"github.com/uptrace/bun"
)

// RegisterRoutesWithGroup registers user routes on a pre-configured group.
func RegisterRoutesWithGroup(g *echo.Group, db *bun.DB) {
	h := &handler{
		userService: NewService(db),
	}

	g.GET("/me/profile", h.retrieveProfile)
	g.PATCH("/me/profile", h.updateProfile)
	g.PUT("/me/password", h.updatePassword)
	g.DELETE("/me", h.deactivate)
}
