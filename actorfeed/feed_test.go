package actorfeed_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	match "github.com/finch-markets/obcore"
	"github.com/finch-markets/obcore/actorfeed"
)

func TestFeed_SerializesConcurrentSubmissions(t *testing.T) {
	engine := match.NewEngine(256)
	feed := actorfeed.New(engine, 128)

	var wg sync.WaitGroup
	for i := uint64(1); i <= 100; i++ {
		wg.Add(1)
		go func(id uint64) {
			defer wg.Done()
			_, err := feed.SubmitLimit(id, match.Buy, 10000, 1)
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	assert.NoError(t, feed.Shutdown(ctx))

	assert.Equal(t, 100, engine.OrderCount())
}

func TestFeed_SubmitThenCancelRoundTrip(t *testing.T) {
	engine := match.NewEngine(16)
	feed := actorfeed.New(engine, 16)

	_, err := feed.SubmitLimit(1, match.Buy, 10000, 10)
	assert.NoError(t, err)
	assert.True(t, feed.Cancel(1))
	assert.False(t, feed.Cancel(1))

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	assert.NoError(t, feed.Shutdown(ctx))
}
