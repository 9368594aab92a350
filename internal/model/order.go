// Package model holds the entities shared by the book, matcher and engine
// packages: Order, Trade and the Event sum type, plus the order state
// machine described by the matching engine's lifecycle rules.
package model

import (
	"errors"
	"fmt"
)

// ErrMismatchSide is returned by boundary code that expects an order of a
// specific side and is handed the other one. The core matching loop never
// needs this: Trade simply returns no trade for a non-crossing pair.
// Nothing in this module returns it; it is exported for callers outside
// the core.
var ErrMismatchSide = errors.New("model: order side mismatch")

// OrderID is the client-assigned identifier that keys every lookup.
type OrderID uint64

// AccountID is an opaque account reference, carried but never interpreted.
type AccountID uint64

// Side is which side of the book an order rests on.
type Side int

const (
	// Ask is the sell side.
	Ask Side = iota
	// Bid is the buy side.
	Bid
)

func (s Side) String() string {
	switch s {
	case Ask:
		return "ASK"
	case Bid:
		return "BID"
	default:
		return "UNKNOWN"
	}
}

// Opposite returns the other side.
func (s Side) Opposite() Side {
	if s == Ask {
		return Bid
	}
	return Ask
}

// Status is the order's position in its lifecycle.
type Status int

const (
	// Open means the order has never traded.
	Open Status = iota
	// Partial means the order has traded but has remaining quantity.
	Partial
	// Cancelled means an Open order was cancelled before any trade.
	Cancelled
	// Closed means a Partial order was cancelled.
	Closed
	// Completed means the order's full amount has been filled.
	Completed
)

func (s Status) String() string {
	switch s {
	case Open:
		return "OPEN"
	case Partial:
		return "PARTIAL"
	case Cancelled:
		return "CANCELLED"
	case Closed:
		return "CLOSED"
	case Completed:
		return "COMPLETED"
	default:
		return "UNKNOWN"
	}
}

// Order is a resting or incoming limit order. LimitPrice and Amount are
// integer minor-unit fixed-point values; the book never does floating
// point arithmetic on them.
type Order struct {
	ID         OrderID
	AccountID  AccountID
	Side       Side
	LimitPrice uint64
	Amount     uint64
	Filled     uint64
	Status     Status
}

// New constructs an Open order with no fills. amount must be > 0; the
// caller (Ingest, or a test) is responsible for enforcing that
// precondition. New itself does not validate it: preconditions here are
// enforced by types and invariants, not runtime checks.
func New(id OrderID, account AccountID, side Side, limitPrice, amount uint64) Order {
	return Order{
		ID:         id,
		AccountID:  account,
		Side:       side,
		LimitPrice: limitPrice,
		Amount:     amount,
		Filled:     0,
		Status:     Open,
	}
}

// Remaining is the order's unfilled quantity.
func (o *Order) Remaining() uint64 {
	return o.Amount - o.Filled
}

// IsClosed reports whether the order has left the book.
func (o *Order) IsClosed() bool {
	switch o.Status {
	case Cancelled, Closed, Completed:
		return true
	default:
		return false
	}
}

// crosses reports whether self (the taker) crosses other (the maker).
func crosses(self, other *Order) bool {
	switch self.Side {
	case Ask:
		return other.Side == Bid && self.LimitPrice <= other.LimitPrice
	case Bid:
		return other.Side == Ask && self.LimitPrice >= other.LimitPrice
	default:
		return false
	}
}

// Trade is the central matching primitive. self is the taker, other is the
// maker. It returns a Trade iff the two orders are on opposite sides and
// cross; otherwise it returns false and mutates nothing.
//
// Execution price is always the maker's limit price: the maker posted
// liquidity first and committed to that price, and the taker accepted it
// by crossing. This is the canonical price-time-priority convention. An
// earlier revision of this engine computed price as max(self, other),
// which happens to equal the maker price only when the taker is an ask.
func (self *Order) Trade(other *Order) (Trade, bool) {
	if !crosses(self, other) {
		return Trade{}, false
	}

	exchanged := min(self.Remaining(), other.Remaining())
	price := other.LimitPrice

	settle(self, exchanged)
	settle(other, exchanged)

	return Trade{
		Taker:  self.ID,
		Maker:  other.ID,
		Amount: exchanged,
		Price:  price,
	}, true
}

func settle(o *Order, exchanged uint64) {
	o.Filled += exchanged
	switch {
	case o.Filled == o.Amount:
		o.Status = Completed
	case o.Filled > 0:
		o.Status = Partial
	}
}

// Cancel transitions Open -> Cancelled or Partial -> Closed; any other
// status is a no-op.
func (o *Order) Cancel() {
	switch o.Status {
	case Open:
		o.Status = Cancelled
	case Partial:
		o.Status = Closed
	}
}

func (o Order) String() string {
	return fmt.Sprintf(
		"Order{id=%d account=%d side=%s price=%d amount=%d filled=%d status=%s}",
		o.ID, o.AccountID, o.Side, o.LimitPrice, o.Amount, o.Filled, o.Status,
	)
}

func min(a, b uint64) uint64 {
	if a < b {
		return a
	}
	return b
}
