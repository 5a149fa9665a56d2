package handler_test

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/a-h/templ"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aserowy/htmx-playground/binder"
	"github.com/aserowy/htmx-playground/core"
	"github.com/aserowy/htmx-playground/handler"
)

type entryRequest struct {
	ID      string `path:"id"`
	Content string `form:"content"`
}

func text(s string) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		_, err := io.WriteString(w, s)
		return err
	})
}

func TestWrap(t *testing.T) {
	t.Parallel()

	echo := handler.HandlerFunc[handler.Context, entryRequest](
		func(ctx handler.Context, req entryRequest) handler.Response {
			return handler.Templ(text(req.ID + ":" + req.Content))
		},
	)

	t.Run("applies binders in order", func(t *testing.T) {
		t.Parallel()

		r := chi.NewRouter()
		r.Post("/entries/{id}", handler.Wrap(echo,
			handler.WithBinders[handler.Context, entryRequest](binder.Path(chi.URLParam), binder.Form()),
		))

		req := httptest.NewRequest(http.MethodPost, "/entries/42", strings.NewReader(url.Values{"content": {"hello"}}.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "42:hello", rec.Body.String())
		assert.Equal(t, "text/html; charset=utf-8", rec.Header().Get("Content-Type"))
	})

	t.Run("skips binders that are not applicable", func(t *testing.T) {
		t.Parallel()

		r := chi.NewRouter()
		r.Delete("/entries/{id}", handler.Wrap(echo,
			handler.WithBinders[handler.Context, entryRequest](binder.Path(chi.URLParam), binder.Form()),
		))

		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/entries/7", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "7:", rec.Body.String())
	})

	t.Run("binding error is a client error", func(t *testing.T) {
		t.Parallel()

		h := handler.Wrap(echo, handler.WithBinders[handler.Context, entryRequest](binder.Form()))

		req := httptest.NewRequest(http.MethodPost, "/entries", strings.NewReader(`{}`))
		req.Header.Set("Content-Type", "application/json")
		rec := httptest.NewRecorder()
		h(rec, req)

		assert.Equal(t, http.StatusUnsupportedMediaType, rec.Code)
	})

	t.Run("http error from handler", func(t *testing.T) {
		t.Parallel()

		h := handler.Wrap(handler.HandlerFunc[handler.Context, entryRequest](
			func(handler.Context, entryRequest) handler.Response {
				return handler.Error(core.ErrMalformedIdentifier.Wrap(errors.New("bad uuid")))
			},
		))

		rec := httptest.NewRecorder()
		h(rec, httptest.NewRequest(http.MethodDelete, "/entries/x", nil))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "malformed_identifier\n", rec.Body.String())
	})

	t.Run("internal errors are not leaked", func(t *testing.T) {
		t.Parallel()

		h := handler.Wrap(handler.HandlerFunc[handler.Context, entryRequest](
			func(handler.Context, entryRequest) handler.Response {
				return handler.Error(errors.New("connection refused: 10.0.0.1"))
			},
		))

		rec := httptest.NewRecorder()
		h(rec, httptest.NewRequest(http.MethodGet, "/", nil))

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.NotContains(t, rec.Body.String(), "10.0.0.1")
	})

	t.Run("nil response", func(t *testing.T) {
		t.Parallel()

		var got error
		h := handler.Wrap(
			handler.HandlerFunc[handler.Context, entryRequest](func(handler.Context, entryRequest) handler.Response { return nil }),
			handler.WithErrorHandler[handler.Context, entryRequest](func(_ handler.Context, err error) { got = err }),
		)

		h(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
		assert.ErrorIs(t, got, handler.ErrNilResponse)
	})

	t.Run("decorators run outermost first", func(t *testing.T) {
		t.Parallel()

		var order []string
		trace := func(name string) handler.Decorator[handler.Context, entryRequest] {
			return func(next handler.HandlerFunc[handler.Context, entryRequest]) handler.HandlerFunc[handler.Context, entryRequest] {
				return func(ctx handler.Context, req entryRequest) handler.Response {
					order = append(order, name)
					return next(ctx, req)
				}
			}
		}

		h := handler.Wrap(echo, handler.WithDecorators(trace("outer"), trace("inner")))
		h(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

		assert.Equal(t, []string{"outer", "inner"}, order)
	})

	t.Run("custom context factory", func(t *testing.T) {
		t.Parallel()

		type appContext struct {
			handler.Context
			tenant string
		}

		h := handler.Wrap(
			handler.HandlerFunc[appContext, entryRequest](func(ctx appContext, _ entryRequest) handler.Response {
				return handler.Templ(text(ctx.tenant))
			}),
			handler.WithContextFactory[appContext, entryRequest](func(w http.ResponseWriter, r *http.Request) appContext {
				return appContext{Context: handler.NewContext(w, r), tenant: "demo"}
			}),
		)

		rec := httptest.NewRecorder()
		h(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(t, "demo", rec.Body.String())
	})
}

func TestContext(t *testing.T) {
	t.Parallel()

	type key struct{}
	ctx, cancel := context.WithCancel(context.WithValue(context.Background(), key{}, "value"))
	req := httptest.NewRequest(http.MethodGet, "/", nil).WithContext(ctx)
	rec := httptest.NewRecorder()

	c := handler.NewContext(rec, req)
	assert.Same(t, req, c.Request())
	assert.Equal(t, rec, c.ResponseWriter())
	assert.Equal(t, "value", c.Value(key{}))
	require.NoError(t, c.Err())

	cancel()
	<-c.Done()
	assert.ErrorIs(t, c.Err(), context.Canceled)
}

func TestEmpty(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	require.NoError(t, handler.Empty().Render(rec, httptest.NewRequest(http.MethodDelete, "/", nil)))
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = httptest.NewRecorder()
	require.NoError(t, handler.EmptyWithStatus(http.StatusOK).Render(rec, httptest.NewRequest(http.MethodDelete, "/", nil)))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, rec.Body.String())
}
