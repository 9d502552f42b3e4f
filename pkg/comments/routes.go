package comments

import (
	"github.com/andersbekkevard/librarium-app-sub001/pkg/books"
	"github.com/labstack/echo/v4"
	"github.com/uptrace/bun"
)

// RegisterRoutesWithGroup registers comment routes on a pre-configured group.
func RegisterRoutesWithGroup(g *echo.Group, db *bun.DB) {
	h := &handler{
		commentService: NewService(db),
		bookService:    books.NewService(db),
	}

	g.GET("", h.list)
	g.POST("", h.create)
	g.DELETE("/:id", h.delete)
}
