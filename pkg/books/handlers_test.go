package books

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/andersbekkevard/librarium-app-sub001/pkg/binder"
	"github.com/andersbekkevard/librarium-app-sub001/pkg/errcodes"
	"github.com/andersbekkevard/librarium-app-sub001/pkg/models"
	"github.com/andersbekkevard/librarium-app-sub001/pkg/readingstate"
	"github.com/labstack/echo/v4"
	"github.com/segmentio/encoding/json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
)

func newTestEcho(t *testing.T) *echo.Echo {
	t.Helper()

	e := echo.New()
	b, err := binder.New()
	require.NoError(t, err)
	e.Binder = b
	e.HTTPErrorHandler = errcodes.NewHandler().Handle

	return e
}

// doRequest runs a handler with the signed-in user already in context, the
// way the auth middleware would leave it.
func doRequest(t *testing.T, e *echo.Echo, db *bun.DB, userID int, method, path, body string, paramNames, paramValues []string, fn echo.HandlerFunc) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()

	c := e.NewContext(req, rec)
	c.SetParamNames(paramNames...)
	c.SetParamValues(paramValues...)
	c.Set("user_id", userID)

	err := fn(c)
	if err != nil {
		e.HTTPErrorHandler(err, c)
	}

	return rec
}

func TestCreateHandler(t *testing.T) {
	db := newTestDB(t)
	e := newTestEcho(t)
	user := createTestUser(t, db)
	h := &handler{bookService: NewService(db)}

	body := `{"title":"Dune","author":"Frank Herbert","total_pages":412,"isbn":"9780306406157"}`
	rec := doRequest(t, e, db, user.ID, http.MethodPost, "/books", body, nil, nil, h.create)

	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	book := &models.Book{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), book))
	assert.Equal(t, "Dune", book.Title)
	assert.Equal(t, readingstate.NotStarted, book.State)
	assert.Equal(t, user.ID, book.UserID)
}

func TestCreateHandler_CollectsAllViolations(t *testing.T) {
	db := newTestDB(t)
	e := newTestEcho(t)
	user := createTestUser(t, db)
	h := &handler{bookService: NewService(db)}

	// Missing title and author, bogus ISBN and URL: the response carries
	// every violation so a form can show them all at once.
	body := `{"total_pages":100,"isbn":"not-an-isbn","cover_image_url":"not-a-url"}`
	rec := doRequest(t, e, db, user.ID, http.MethodPost, "/books", body, nil, nil, h.create)

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code, rec.Body.String())

	resp := struct {
		Error struct {
			Code    string   `json:"code"`
			Details []string `json:"details"`
		} `json:"error"`
	}{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "validation_error", resp.Error.Code)
	assert.Len(t, resp.Error.Details, 4)
}

func TestUpdateStateHandler_RejectsIllegalTransition(t *testing.T) {
	db := newTestDB(t)
	e := newTestEcho(t)
	user := createTestUser(t, db)
	h := &handler{bookService: NewService(db)}

	book := createTestBook(t, h.bookService, user.ID, 200)

	body := `{"state":"finished"}`
	rec := doRequest(t, e, db, user.ID, http.MethodPut, "/books/:id/state", body, []string{"id"}, []string{book.ID}, h.updateState)

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Body.String(), "invalid_state_transition")
}

func TestUpdateProgressHandler(t *testing.T) {
	db := newTestDB(t)
	e := newTestEcho(t)
	user := createTestUser(t, db)
	h := &handler{bookService: NewService(db)}

	book := createTestBook(t, h.bookService, user.ID, 200)

	body := `{"current_page":50}`
	rec := doRequest(t, e, db, user.ID, http.MethodPut, "/books/:id/progress", body, []string{"id"}, []string{book.ID}, h.updateProgress)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	updated := &models.Book{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), updated))
	assert.Equal(t, 50, updated.CurrentPage)
	assert.Equal(t, readingstate.InProgress, updated.State)
}

func TestRetrieveHandler_OtherUsersBookIsHidden(t *testing.T) {
	db := newTestDB(t)
	e := newTestEcho(t)
	owner := createTestUser(t, db)
	h := &handler{bookService: NewService(db)}

	other := &models.User{Username: "other", PasswordHash: "x", IsActive: true}
	_, err := db.NewInsert().Model(other).Exec(context.Background())
	require.NoError(t, err)

	book := createTestBook(t, h.bookService, owner.ID, 200)

	rec := doRequest(t, e, db, other.ID, http.MethodGet, "/books/:id", "", []string{"id"}, []string{book.ID}, h.retrieve)
	assert.Equal(t, http.StatusNotFound, rec.Code, rec.Body.String())
}

func TestListHandler(t *testing.T) {
	db := newTestDB(t)
	e := newTestEcho(t)
	user := createTestUser(t, db)
	h := &handler{bookService: NewService(db)}

	createTestBook(t, h.bookService, user.ID, 200)
	createTestBook(t, h.bookService, user.ID, 300)

	rec := doRequest(t, e, db, user.ID, http.MethodGet, "/books", "", nil, nil, h.list)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	resp := struct {
		Books []*models.Book `json:"books"`
		Total int            `json:"total"`
	}{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 2, resp.Total)
	assert.Len(t, resp.Books, 2)
}
