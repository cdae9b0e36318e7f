package middleware

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cms-extensions/utilities"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func okEngine(mw ...gin.HandlerFunc) *gin.Engine {
	r := gin.New()
	r.Use(mw...)
	r.Any("/ping", func(c *gin.Context) {
		body, _ := io.ReadAll(c.Request.Body)
		c.String(http.StatusOK, "pong"+string(body))
	})
	return r
}

func serve(r http.Handler, method, body string, header map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, "/ping", strings.NewReader(body))
	for k, v := range header {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRequestDumpMiddleware(t *testing.T) {
	utilities.SetDebug(true)
	t.Cleanup(func() { utilities.SetDebug(false) })
	r := okEngine(RequestDumpMiddleware())

	w := serve(r, http.MethodPost, "!", nil)
	assert.Equal(t, "pong!", w.Body.String(), "body must still be readable by the handler")
	_, err := uuid.Parse(w.Header().Get(RequestIDHeader))
	assert.NoError(t, err)

	given := uuid.NewString()
	w = serve(r, http.MethodGet, "", map[string]string{RequestIDHeader: given})
	assert.Equal(t, given, w.Header().Get(RequestIDHeader))

	w = serve(r, http.MethodGet, "", map[string]string{RequestIDHeader: "not-a-uuid"})
	assert.NotEqual(t, "not-a-uuid", w.Header().Get(RequestIDHeader))
}

func TestRateLimitMiddleware(t *testing.T) {
	r := okEngine(RateLimitMiddleware(0.001, 2))
	assert.Equal(t, http.StatusOK, serve(r, http.MethodGet, "", nil).Code)
	assert.Equal(t, http.StatusOK, serve(r, http.MethodGet, "", nil).Code)
	assert.Equal(t, http.StatusTooManyRequests, serve(r, http.MethodGet, "", nil).Code)

	unlimited := okEngine(RateLimitMiddleware(0, 0))
	for i := 0; i < 10; i++ {
		assert.Equal(t, http.StatusOK, serve(unlimited, http.MethodGet, "", nil).Code)
	}
}

func TestStartupGate(t *testing.T) {
	var starts, inits atomic.Int32
	gate := NewStartupGate(
		func() error { starts.Add(1); return nil },
		func(*gin.Engine) error { inits.Add(1); return nil },
	)

	a, b := gin.New(), gin.New()
	gate.Install(a)
	gate.Install(b)
	for _, r := range []*gin.Engine{a, b} {
		r.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })
	}

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(r *gin.Engine) {
			defer wg.Done()
			assert.Equal(t, http.StatusOK, serve(r, http.MethodGet, "", nil).Code)
		}([]*gin.Engine{a, b}[i%2])
	}
	wg.Wait()

	assert.Equal(t, int32(1), starts.Load())
	assert.Equal(t, int32(2), inits.Load())
}

func TestStartupGate_Failures(t *testing.T) {
	t.Run("start is retried until it succeeds", func(t *testing.T) {
		calls := 0
		gate := NewStartupGate(func() error {
			calls++
			if calls < 3 {
				return errors.New("no database")
			}
			return nil
		}, nil)
		r := gin.New()
		gate.Install(r)
		r.GET("/ping", func(c *gin.Context) { c.Status(http.StatusOK) })

		require.Equal(t, http.StatusServiceUnavailable, serve(r, http.MethodGet, "", nil).Code)
		require.Equal(t, http.StatusServiceUnavailable, serve(r, http.MethodGet, "", nil).Code)
		require.Equal(t, http.StatusOK, serve(r, http.MethodGet, "", nil).Code)
		require.Equal(t, http.StatusOK, serve(r, http.MethodGet, "", nil).Code)
		assert.Equal(t, 3, calls)
	})

	t.Run("init", func(t *testing.T) {
		gate := NewStartupGate(nil, func(*gin.Engine) error { return errors.New("bad routes") })
		r := gin.New()
		gate.Install(r)
		r.GET("/ping", func(c *gin.Context) { c.Status(http.StatusOK) })

		assert.Equal(t, http.StatusServiceUnavailable, serve(r, http.MethodGet, "", nil).Code)
	})
}
