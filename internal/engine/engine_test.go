package engine

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"matchcore/internal/model"
)

func TestEngine_CreateThenDeleteRoundTrip(t *testing.T) {
	e := New("BTC/USDC")
	ctx := context.Background()

	events := e.Process(ctx, CreateOrder{OrderID: 1, AccountID: 1, Pair: "BTC/USDC", Side: model.Ask, LimitPrice: 500000, Amount: 150})
	assert.Equal(t, []model.Event{model.Added(1)}, events)

	events = e.Process(ctx, DeleteOrder{OrderID: 1})
	assert.Equal(t, []model.Event{model.Removed(1)}, events)

	askCount, bidCount := e.Orderbook().Len()
	assert.Equal(t, 0, askCount)
	assert.Equal(t, 0, bidCount)
}

func TestEngine_MirrorMatch(t *testing.T) {
	e := New("BTC/USDC")
	ctx := context.Background()

	require.Equal(t, []model.Event{model.Added(1)},
		e.Process(ctx, CreateOrder{OrderID: 1, AccountID: 1, Side: model.Ask, LimitPrice: 500000, Amount: 150}))

	events := e.Process(ctx, CreateOrder{OrderID: 2, AccountID: 2, Side: model.Bid, LimitPrice: 500000, Amount: 150})
	require.Len(t, events, 1)
	assert.Equal(t, model.Traded(model.Trade{Taker: 2, Maker: 1, Amount: 150, Price: 500000}), events[0])
}

func TestEngine_DeleteUnknownIsNoop(t *testing.T) {
	e := New("BTC/USDC")
	events := e.Process(context.Background(), DeleteOrder{OrderID: 999})
	assert.Empty(t, events)
}

func TestEngine_DeleteAlreadyDeletedIsIdempotent(t *testing.T) {
	e := New("BTC/USDC")
	ctx := context.Background()
	e.Process(ctx, CreateOrder{OrderID: 1, AccountID: 1, Side: model.Ask, LimitPrice: 100, Amount: 10})
	e.Process(ctx, DeleteOrder{OrderID: 1})

	events := e.Process(ctx, DeleteOrder{OrderID: 1})
	assert.Empty(t, events)
}
