package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrder_New(t *testing.T) {
	o := New(1, 10, Bid, 500000, 150)

	assert.Equal(t, OrderID(1), o.ID)
	assert.Equal(t, AccountID(10), o.AccountID)
	assert.Equal(t, Open, o.Status)
	assert.Equal(t, uint64(0), o.Filled)
	assert.Equal(t, uint64(150), o.Remaining())
	assert.False(t, o.IsClosed())
}

func TestOrder_Trade_FullFill(t *testing.T) {
	ask := New(1, 1, Ask, 500000, 150)
	bid := New(2, 2, Bid, 500000, 150)

	trade, ok := bid.Trade(&ask)
	require.True(t, ok)

	assert.Equal(t, OrderID(2), trade.Taker)
	assert.Equal(t, OrderID(1), trade.Maker)
	assert.Equal(t, uint64(150), trade.Amount)
	assert.Equal(t, uint64(500000), trade.Price)

	assert.Equal(t, Completed, ask.Status)
	assert.Equal(t, Completed, bid.Status)
	assert.True(t, ask.IsClosed())
	assert.True(t, bid.IsClosed())
}

func TestOrder_Trade_ExecutesAtMakerPrice(t *testing.T) {
	// A bid taker crossing an ask maker must execute at the ask (maker)
	// price, not the bid (taker) price. This is the corrected canonical rule.
	ask := New(1, 1, Ask, 400000, 100)
	bid := New(2, 2, Bid, 500000, 100)

	trade, ok := bid.Trade(&ask)
	require.True(t, ok)
	assert.Equal(t, uint64(400000), trade.Price)
}

func TestOrder_Trade_PartialFill(t *testing.T) {
	ask := New(1, 1, Ask, 500000, 100)
	bid := New(2, 2, Bid, 500000, 150)

	trade, ok := bid.Trade(&ask)
	require.True(t, ok)

	assert.Equal(t, uint64(100), trade.Amount)
	assert.Equal(t, Completed, ask.Status)
	assert.Equal(t, Partial, bid.Status)
	assert.Equal(t, uint64(50), bid.Remaining())
	assert.False(t, bid.IsClosed())
}

func TestOrder_Trade_SameSideNeverCrosses(t *testing.T) {
	a := New(1, 1, Bid, 500000, 100)
	b := New(2, 2, Bid, 500000, 100)

	_, ok := a.Trade(&b)
	assert.False(t, ok)
	assert.Equal(t, uint64(0), a.Filled)
	assert.Equal(t, uint64(0), b.Filled)
}

func TestOrder_Trade_NonCrossing(t *testing.T) {
	ask := New(1, 1, Ask, 600000, 100)
	bid := New(2, 2, Bid, 500000, 100)

	_, ok := bid.Trade(&ask)
	assert.False(t, ok)
	assert.Equal(t, Open, ask.Status)
	assert.Equal(t, Open, bid.Status)
}

func TestOrder_Cancel(t *testing.T) {
	open := New(1, 1, Ask, 100, 10)
	open.Cancel()
	assert.Equal(t, Cancelled, open.Status)
	assert.True(t, open.IsClosed())

	partial := New(2, 1, Ask, 100, 10)
	partial.Filled = 4
	partial.Status = Partial
	partial.Cancel()
	assert.Equal(t, Closed, partial.Status)
	assert.True(t, partial.IsClosed())

	completed := New(3, 1, Ask, 100, 10)
	completed.Status = Completed
	completed.Cancel()
	assert.Equal(t, Completed, completed.Status, "cancel on a terminal status is a no-op")
}
