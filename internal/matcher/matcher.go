// Package matcher implements the algorithm that repeatedly pairs an
// incoming taker order against the best opposite-side resting order until
// the taker is exhausted or no longer crosses.
package matcher

import (
	"matchcore/internal/book"
	"matchcore/internal/model"
)

// Match runs the matching loop for a freshly created taker order against
// b, mutating b in place and returning the events produced, in emission
// order: zero or more Traded, optionally followed by exactly one Added if
// the taker still has remaining quantity and rests in the book.
//
// This is the peek-based variant: the maker at the head of its queue is
// inspected via PeekMut and only popped once it is fully filled, so a
// partially-filled maker is never removed and reinserted. It simply
// stays at the head of its level, unchanged in price and position.
func Match(b *book.Book, taker model.Order) []model.Event {
	events := make([]model.Event, 0, 8)

	for !taker.IsClosed() {
		maker, ok := b.PeekMut(taker.Side.Opposite())
		if !ok {
			break
		}

		trade, crossed := taker.Trade(maker)
		if !crossed {
			break
		}
		events = append(events, model.Traded(trade))

		if maker.IsClosed() {
			b.Pop(taker.Side.Opposite())
		} else {
			// The maker kept its place at the head of its level: it
			// didn't move and its price didn't change. The only way
			// this branch is reached is when the trade used up the
			// taker's whole remaining quantity, so the taker is now
			// fully filled and there is nothing left to match.
			break
		}
	}

	if !taker.IsClosed() {
		if err := b.Insert(taker); err == nil {
			events = append(events, model.Added(taker.ID))
		}
	}

	return events
}
