package eventbus

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPublishReachesAllSubscribers(t *testing.T) {
	bus := NewMemoryBus()

	var got []string
	bus.Subscribe("a", func(topic string) { got = append(got, "s1:"+topic) })
	bus.Subscribe("a", func(topic string) { got = append(got, "s2:"+topic) })
	bus.Subscribe("b", func(topic string) { got = append(got, "s3:"+topic) })

	bus.Publish("a")
	assert.Len(t, got, 2)
	assert.Contains(t, got, "s1:a")
	assert.Contains(t, got, "s2:a")
}

func TestUnsubscribeStopsDelivery(t *testing.T) {
	bus := NewMemoryBus()

	count := 0
	unsub := bus.Subscribe("a", func(string) { count++ })

	bus.Publish("a")
	unsub()
	bus.Publish("a")
	assert.Equal(t, 1, count)
}

func TestPublishInsideHandlerAllowed(t *testing.T) {
	bus := NewMemoryBus()

	var order []string
	bus.Subscribe("second", func(string) { order = append(order, "second") })
	bus.Subscribe("first", func(string) {
		order = append(order, "first")
		bus.Publish("second")
	})

	bus.Publish("first")
	assert.Equal(t, []string{"first", "second"}, order)
}

func TestPublishWithoutSubscribersIsNoop(t *testing.T) {
	bus := NewMemoryBus()
	assert.NotPanics(t, func() { bus.Publish("nobody") })
}
