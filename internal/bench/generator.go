// Package bench generates synthetic create/delete record streams for
// load-testing the engine, mirroring the original orders_generator binary.
package bench

import (
	"fmt"
	"math/rand"

	"github.com/google/uuid"

	"matchcore/internal/engine"
	"matchcore/internal/model"
)

// Generator produces a synthetic stream of Create/Delete requests. Account
// ids are drawn from a small fixed pool so that generated traffic has
// realistic repeat-account structure rather than every order belonging to
// a distinct account. The pool itself is derived from the seeded RNG so
// that two Generators built from the same seed produce byte-identical
// streams, required for reproducible benchmark runs.
type Generator struct {
	rng        *rand.Rand
	pair       string
	accountIDs []model.AccountID
	nextID     model.OrderID
	issued     []model.OrderID

	// RunID tags one generator's output for correlation in logs; it plays
	// no role in request generation and is not seed-derived.
	RunID uuid.UUID
}

// NewGenerator constructs a Generator for pair, seeded from seed for
// reproducible benchmark runs. accountPoolSize controls how many distinct
// synthetic accounts participate.
func NewGenerator(pair string, seed int64, accountPoolSize int) *Generator {
	rng := rand.New(rand.NewSource(seed))
	accounts := make([]model.AccountID, accountPoolSize)
	for i := range accounts {
		accounts[i] = model.AccountID(rng.Uint64())
	}
	return &Generator{rng: rng, pair: pair, accountIDs: accounts, nextID: 1, RunID: uuid.New()}
}

// Next produces one request: a Create with probability 0.5, else a Delete
// of a previously issued order id (or a Create, if none have been issued
// yet).
func (g *Generator) Next() engine.Request {
	if g.rng.Intn(2) == 0 && len(g.issued) > 0 {
		return g.randomDelete()
	}
	return g.randomCreate()
}

// Stream produces n requests in sequence.
func (g *Generator) Stream(n int) []engine.Request {
	out := make([]engine.Request, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, g.Next())
	}
	return out
}

func (g *Generator) randomCreate() engine.Request {
	id := g.nextID
	g.nextID++
	g.issued = append(g.issued, id)

	side := model.Ask
	if g.rng.Intn(2) == 1 {
		side = model.Bid
	}

	return engine.CreateOrder{
		OrderID:    id,
		AccountID:  g.accountIDs[g.rng.Intn(len(g.accountIDs))],
		Pair:       g.pair,
		Side:       side,
		LimitPrice: uint64(1000 + g.rng.Intn(1000)),
		Amount:     uint64(1000 + g.rng.Intn(1000)),
	}
}

func (g *Generator) randomDelete() engine.Request {
	id := g.issued[g.rng.Intn(len(g.issued))]
	return engine.DeleteOrder{OrderID: id}
}

// Record renders a request back to the wire shape Ingest accepts, for
// writing a generated stream out to a file that the CLI can later replay.
func Record(req engine.Request) map[string]string {
	switch r := req.(type) {
	case engine.CreateOrder:
		side := "SELL"
		if r.Side == model.Bid {
			side = "BUY"
		}
		return map[string]string{
			"type_op":     "CREATE",
			"account_id":  fmt.Sprintf("%d", r.AccountID),
			"amount":      minorUnitsToDecimal(r.Amount),
			"order_id":    fmt.Sprintf("%d", r.OrderID),
			"pair":        r.Pair,
			"limit_price": minorUnitsToDecimal(r.LimitPrice),
			"side":        side,
		}
	case engine.DeleteOrder:
		return map[string]string{
			"type_op":  "DELETE",
			"order_id": fmt.Sprintf("%d", r.OrderID),
		}
	default:
		return nil
	}
}

// minorUnitsToDecimal renders a 2-fractional-digit minor-unit integer back
// to the decimal-string form Ingest expects on the wire.
func minorUnitsToDecimal(v uint64) string {
	return fmt.Sprintf("%d.%02d", v/100, v%100)
}
