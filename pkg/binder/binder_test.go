package binder

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/andersbekkevard/librarium-app-sub001/pkg/errcodes"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testPayload struct {
	Title  string  `json:"title" validate:"required,max=300"`
	Author string  `json:"author" validate:"required,max=200"`
	Rating *int    `json:"rating" validate:"omitempty,min=1,max=5"`
	ISBN   *string `json:"isbn" validate:"omitempty,isbn"`
	State  *string `json:"state" validate:"omitempty,readingstate"`
	Cover  *string `json:"cover" validate:"omitempty,url"`
}

func newBindContext(t *testing.T, payload string) echo.Context {
	t.Helper()

	e := echo.New()
	b, err := New()
	require.NoError(t, err)
	e.Binder = b

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(payload))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	return e.NewContext(req, httptest.NewRecorder())
}

func TestBind_Valid(t *testing.T) {
	c := newBindContext(t, `{"title":"The Pragmatic Programmer","author":"Hunt","isbn":"978-0-306-40615-7","state":"in_progress"}`)

	p := testPayload{}
	require.NoError(t, c.Bind(&p))
	assert.Equal(t, "The Pragmatic Programmer", p.Title)
}

func TestBind_CollectsAllViolations(t *testing.T) {
	c := newBindContext(t, `{"title":"","author":"","rating":9,"isbn":"1234567890","state":"paused"}`)

	p := testPayload{}
	err := c.Bind(&p)
	require.Error(t, err)

	var codeErr *errcodes.Error
	require.ErrorAs(t, err, &codeErr)
	assert.Equal(t, "validation_error", codeErr.Code)
	require.Len(t, codeErr.Details, 5)
	assert.Contains(t, codeErr.Details, `"title" is required`)
	assert.Contains(t, codeErr.Details, `"author" is required`)
	assert.Contains(t, codeErr.Details, `"rating" must be less than or equal to 5`)
	assert.Contains(t, codeErr.Details, `"isbn" is not a valid ISBN-10 or ISBN-13`)
}

func TestBind_UnknownField(t *testing.T) {
	c := newBindContext(t, `{"title":"T","author":"A","publisher":"nope"}`)

	p := testPayload{}
	err := c.Bind(&p)
	require.Error(t, err)
	assert.ErrorIs(t, err, errcodes.UnknownParameter("publisher"))
}

func TestBind_TypeError(t *testing.T) {
	c := newBindContext(t, `{"title":"T","author":"A","rating":"five"}`)

	p := testPayload{}
	err := c.Bind(&p)
	require.Error(t, err)

	var codeErr *errcodes.Error
	require.ErrorAs(t, err, &codeErr)
	assert.Equal(t, "validation_type_error", codeErr.Code)
}

func TestBind_URLValidator(t *testing.T) {
	c := newBindContext(t, `{"title":"T","author":"A","cover":"not-a-url"}`)

	p := testPayload{}
	err := c.Bind(&p)
	require.Error(t, err)

	var codeErr *errcodes.Error
	require.ErrorAs(t, err, &codeErr)
	assert.Contains(t, codeErr.Details, `"cover" is not a valid URL`)
}
