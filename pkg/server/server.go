package server

import (
	"fmt"
	"net/http"
	"time"

	"github.com/andersbekkevard/librarium-app-sub001/pkg/auth"
	"github.com/andersbekkevard/librarium-app-sub001/pkg/binder"
	"github.com/andersbekkevard/librarium-app-sub001/pkg/books"
	"github.com/andersbekkevard/librarium-app-sub001/pkg/comments"
	"github.com/andersbekkevard/librarium-app-sub001/pkg/config"
	"github.com/andersbekkevard/librarium-app-sub001/pkg/errcodes"
	"github.com/andersbekkevard/librarium-app-sub001/pkg/events"
	"github.com/andersbekkevard/librarium-app-sub001/pkg/genres"
	"github.com/andersbekkevard/librarium-app-sub001/pkg/jobs"
	"github.com/andersbekkevard/librarium-app-sub001/pkg/testutils"
	"github.com/andersbekkevard/librarium-app-sub001/pkg/users"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"
	"github.com/robinjoseph08/golib/echo/v4/health"
	"github.com/robinjoseph08/golib/echo/v4/middleware/logger"
	"github.com/robinjoseph08/golib/echo/v4/middleware/recovery"
	"github.com/uptrace/bun"
)

func New(cfg *config.Config, db *bun.DB) (*http.Server, error) {
	e := echo.New()

	b, err := binder.New()
	if err != nil {
		return nil, errors.WithStack(err)
	}
	e.Binder = b

	e.Use(logger.Middleware())
	e.Use(recovery.Middleware())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     []string{cfg.FrontendURL},
		AllowCredentials: true,
	}))

	health.RegisterRoutes(e)

	// Register auth routes and get the auth service
	authService := auth.RegisterRoutes(e, db, cfg.JWTSecret)
	authMiddleware := auth.NewMiddleware(authService)

	registerProtectedRoutes(e, db, authMiddleware)

	// Test-only routes for seeding and wiping data.
	if cfg.Environment == "test" {
		testutils.RegisterRoutes(e, db)
	}

	echo.NotFoundHandler = notFoundHandler
	e.HTTPErrorHandler = errcodes.NewHandler().Handle

	srv := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.ServerHost, cfg.ServerPort),
		Handler:           e,
		ReadHeaderTimeout: 3 * time.Second,
	}

	return srv, nil
}

// registerProtectedRoutes registers the API routes that require a session.
func registerProtectedRoutes(e *echo.Echo, db *bun.DB, authMiddleware *auth.Middleware) {
	booksGroup := e.Group("/books")
	booksGroup.Use(authMiddleware.Authenticate)
	books.RegisterRoutesWithGroup(booksGroup, db)

	eventsGroup := e.Group("/events")
	eventsGroup.Use(authMiddleware.Authenticate)
	events.RegisterRoutesWithGroup(eventsGroup, db)

	commentsGroup := e.Group("/comments")
	commentsGroup.Use(authMiddleware.Authenticate)
	comments.RegisterRoutesWithGroup(commentsGroup, db)

	usersGroup := e.Group("/users")
	usersGroup.Use(authMiddleware.Authenticate)
	users.RegisterRoutesWithGroup(usersGroup, db)

	jobsGroup := e.Group("/jobs")
	jobsGroup.Use(authMiddleware.Authenticate)
	jobs.RegisterRoutesWithGroup(jobsGroup, db)

	genresGroup := e.Group("/genres")
	genresGroup.Use(authMiddleware.Authenticate)
	genres.RegisterRoutesWithGroup(genresGroup, db)
}

func notFoundHandler(c echo.Context) error {
	c.SetPath("/:path")
	return errcodes.NotFound("Page")
}
