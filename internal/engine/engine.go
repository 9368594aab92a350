// Package engine is the thin façade mapping a CreateOrder/DeleteOrder
// request onto a matcher invocation or a book cancellation, and returning
// the resulting event vector.
package engine

import (
	"context"

	"matchcore/internal/book"
	"matchcore/internal/matcher"
	"matchcore/internal/model"
)

// Engine owns a single pair's book. It is single-threaded and synchronous:
// each Process call completes before the next begins, and nothing inside
// it blocks or suspends.
type Engine struct {
	book *book.Book
}

// New constructs an Engine with an empty book for pair.
func New(pair string) *Engine {
	return &Engine{book: book.New(pair)}
}

// Orderbook returns the engine's book for read-only observability.
func (e *Engine) Orderbook() *book.Book {
	return e.book
}

// Process maps request onto the matcher or a cancellation and returns the
// resulting event vector. ctx is threaded through for cancellation
// propagation by callers that wrap Process in a supervised pipeline (the
// CLI ingest/sink loop); Process never checks ctx.Done() itself. There
// are no suspension points in the core.
func (e *Engine) Process(ctx context.Context, request Request) []model.Event {
	switch req := request.(type) {
	case CreateOrder:
		order := model.New(req.OrderID, req.AccountID, req.Side, req.LimitPrice, req.Amount)
		return matcher.Match(e.book, order)
	case DeleteOrder:
		if _, ok := e.book.Remove(req.OrderID); ok {
			return []model.Event{model.Removed(req.OrderID)}
		}
		return nil
	default:
		return nil
	}
}
