package router

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/vfg2006/campaign-engine/pkg/apiErrors"
)

func tagMiddleware(tag string, order *[]string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			*order = append(*order, tag)
			next.ServeHTTP(w, r)
		})
	}
}

func TestRouter(t *testing.T) {
	var order []string
	rt := New(WithRoutes(Route{
		Path:   "/v1/campaigns/:id",
		Method: http.MethodGet,
		Handler: http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			order = append(order, "handler")
			w.WriteHeader(http.StatusOK)
		}),
		Middlewares: []func(http.Handler) http.Handler{tagMiddleware("first", &order), tagMiddleware("second", &order)},
	}))

	t.Run("aplica os middlewares da rota na ordem declarada", func(t *testing.T) {
		rec := httptest.NewRecorder()
		rt.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/campaigns/c1", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, []string{"first", "second", "handler"}, order)
	})

	t.Run("rota inexistente", func(t *testing.T) {
		rec := httptest.NewRecorder()
		rt.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/nada", nil))

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Contains(t, rec.Body.String(), apiErrors.ErrRouteNotFound)
	})

	t.Run("método não suportado", func(t *testing.T) {
		rec := httptest.NewRecorder()
		rt.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/v1/campaigns/c1", nil))

		assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
		assert.Contains(t, rec.Body.String(), apiErrors.ErrMethodNotAllowed)
	})
}
