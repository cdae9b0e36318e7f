package utilities

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventBus(t *testing.T) {
	bus := NewEventBus()
	got := make(chan interface{}, 4)

	unsubscribe := bus.Subscribe("saved", func(data interface{}) { got <- data })
	bus.Subscribe("deleted", func(data interface{}) { got <- "wrong event" })

	bus.Publish("saved", 42)
	select {
	case v := <-got:
		assert.Equal(t, 42, v)
	case <-time.After(time.Second):
		require.FailNow(t, "handler was not called")
	}

	unsubscribe()
	bus.Publish("saved", 43)
	select {
	case v := <-got:
		assert.Failf(t, "unexpected delivery", "%v", v)
	case <-time.After(50 * time.Millisecond):
	}

	// unsubscribing twice is harmless
	unsubscribe()
	bus.Publish("nobody-listens", nil)
}
