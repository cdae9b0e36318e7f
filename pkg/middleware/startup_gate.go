package middleware

import (
	"net/http"
	"sync"
	"sync/atomic"

	"github.com/gin-gonic/gin"

	"cms-extensions/utilities"
)

// StartupGate runs onStart on the first request through any engine it is
// installed on, and onInit once per gin engine. A failed onStart answers
// that request with 503 and is retried by the next one; once it succeeds
// it is never run again. Engines whose onInit failed always answer 503.
type StartupGate struct {
	onStart func() error
	onInit  func(r *gin.Engine) error

	mu      sync.Mutex
	started atomic.Bool
}

func NewStartupGate(onStart func() error, onInit func(r *gin.Engine) error) *StartupGate {
	return &StartupGate{onStart: onStart, onInit: onInit}
}

func (g *StartupGate) start() error {
	if g.started.Load() {
		return nil
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.started.Load() {
		return nil
	}
	if g.onStart != nil {
		if err := g.onStart(); err != nil {
			utilities.Error("application start failed: %v", err)
			return err
		}
	}
	g.started.Store(true)
	return nil
}

// Install attaches the gate to r and runs onInit for it. Routes added by
// onInit sit behind the gate.
func (g *StartupGate) Install(r *gin.Engine) {
	var initErr error
	r.Use(func(c *gin.Context) {
		if initErr != nil {
			c.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{"error": "service unavailable"})
			return
		}
		if err := g.start(); err != nil {
			c.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{"error": "service unavailable"})
			return
		}
		c.Next()
	})
	if g.onInit != nil {
		if initErr = g.onInit(r); initErr != nil {
			utilities.Error("engine init failed: %v", initErr)
		}
	}
}
