package books

import (
	"github.com/labstack/echo/v4"
	"github.com/uptrace/bun"
)

// RegisterRoutesWithGroup registers book routes on a pre-configured group.
func RegisterRoutesWithGroup(g *echo.Group, db *bun.DB) {
	h := &handler{
		bookService: NewService(db),
	}

	g.GET("", h.list)
	g.POST("", h.create)
	g.GET("/stats", h.stats)
	g.GET("/:id", h.retrieve)
	g.PATCH("/:id", h.update)
	g.DELETE("/:id", h.delete)
	g.PUT("/:id/state", h.updateState)
	g.PUT("/:id/progress", h.updateProgress)
	g.PUT("/:id/rating", h.rate)
}
