package bench

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"matchcore/internal/engine"
)

func TestGenerator_StreamProducesRequestedCount(t *testing.T) {
	g := NewGenerator("BTC/USDC", 1, 5)
	reqs := g.Stream(100)
	assert.Len(t, reqs, 100)
}

func TestGenerator_FirstRequestIsAlwaysCreate(t *testing.T) {
	g := NewGenerator("BTC/USDC", 1, 5)
	reqs := g.Stream(1)
	require.Len(t, reqs, 1)
	assert.IsType(t, engine.CreateOrder{}, reqs[0])
}

func TestGenerator_DeterministicForSameSeed(t *testing.T) {
	a := NewGenerator("BTC/USDC", 42, 5).Stream(50)
	b := NewGenerator("BTC/USDC", 42, 5).Stream(50)
	assert.Equal(t, a, b)
}

func TestRecord_CreateRoundTripsMinorUnits(t *testing.T) {
	rec := Record(engine.CreateOrder{
		OrderID: 1, AccountID: 2, Pair: "BTC/USDC",
		Side: 0, LimitPrice: 500000, Amount: 150,
	})
	assert.Equal(t, "CREATE", rec["type_op"])
	assert.Equal(t, "5000.00", rec["limit_price"])
	assert.Equal(t, "1.50", rec["amount"])
	assert.Equal(t, "SELL", rec["side"])
}

func TestRecord_Delete(t *testing.T) {
	rec := Record(engine.DeleteOrder{OrderID: 7})
	assert.Equal(t, "DELETE", rec["type_op"])
	assert.Equal(t, "7", rec["order_id"])
}
