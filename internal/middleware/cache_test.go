package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

func cacheCtx(path, uri string) echo.Context {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, uri, nil)
	c := e.NewContext(req, httptest.NewRecorder())
	c.SetPath(path)
	return c
}

func TestCacheKeyStablePerRequest(t *testing.T) {
	a := cacheKey("tlcache", cacheCtx("/tierlists/:id/votes", "/tierlists/7/votes"))
	b := cacheKey("tlcache", cacheCtx("/tierlists/:id/votes", "/tierlists/7/votes"))
	assert.Equal(t, a, b)
}

func TestCacheKeySeparatesTierlists(t *testing.T) {
	a := cacheKey("tlcache", cacheCtx("/tierlists/:id/votes", "/tierlists/7/votes"))
	b := cacheKey("tlcache", cacheCtx("/tierlists/:id/votes", "/tierlists/8/votes"))
	assert.NotEqual(t, a, b)
}

func TestCacheKeySeparatesQueries(t *testing.T) {
	a := cacheKey("tlcache", cacheCtx("/tierlists/:id/items", "/tierlists/7/items"))
	b := cacheKey("tlcache", cacheCtx("/tierlists/:id/items", "/tierlists/7/items?full=1"))
	assert.NotEqual(t, a, b)
}

func TestCacheKeySeparatesPrefixes(t *testing.T) {
	a := cacheKey("one", cacheCtx("/tierlists", "/tierlists"))
	b := cacheKey("two", cacheCtx("/tierlists", "/tierlists"))
	assert.NotEqual(t, a, b)
}
