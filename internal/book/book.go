// Package book implements the price-indexed, time-ordered order book: two
// price ladders (ask, bid) built on github.com/tidwall/btree, each holding
// a FIFO queue per price level, plus an id->order index for O(1) cancel
// lookups.
package book

import (
	"errors"

	"github.com/tidwall/btree"

	"matchcore/internal/model"
)

// ErrAlreadyPresent is returned by Insert when the order's id is already
// tracked by the book, a programming error in the caller (the engine
// never generates a request with a duplicate id from a single source).
var ErrAlreadyPresent = errors.New("book: order id already present")

// ErrAlreadyClosed is returned by Insert when handed a closed order;
// closed orders never belong in the book per invariant 4.
var ErrAlreadyClosed = errors.New("book: cannot insert a closed order")

type ladder = btree.BTreeG[*priceLevel]

// Book holds one trading pair's resting liquidity.
type Book struct {
	Pair string

	orders map[model.OrderID]*model.Order
	asks   *ladder
	bids   *ladder
}

// New constructs an empty book for pair. Asks sort ascending (best = min
// price); bids sort descending (best = max price). The reversed
// comparator isolates bid ordering entirely inside the ladder, rather
// than wrapping keys in a Reverse type.
func New(pair string) *Book {
	return &Book{
		Pair:   pair,
		orders: make(map[model.OrderID]*model.Order),
		asks: btree.NewBTreeG(func(a, b *priceLevel) bool {
			return a.price < b.price
		}),
		bids: btree.NewBTreeG(func(a, b *priceLevel) bool {
			return a.price > b.price
		}),
	}
}

func (b *Book) ladder(side model.Side) *ladder {
	if side == model.Ask {
		return b.asks
	}
	return b.bids
}

// Insert appends order to the tail of its price level's queue, creating
// the level if necessary, and tracks it in the id index.
func (b *Book) Insert(order model.Order) error {
	if order.IsClosed() {
		return ErrAlreadyClosed
	}
	if _, ok := b.orders[order.ID]; ok {
		return ErrAlreadyPresent
	}

	ladder := b.ladder(order.Side)
	level, ok := ladder.GetMut(&priceLevel{price: order.LimitPrice})
	if !ok {
		level = newLevel(order.LimitPrice)
		ladder.Set(level)
	}
	level.pushBack(order.ID)

	stored := order
	b.orders[order.ID] = &stored
	return nil
}

// Remove cancels and removes order id from the book, returning it. A
// missing id is a silent no-op (ok=false): deleting an order twice has
// no effect beyond the first delete.
func (b *Book) Remove(id model.OrderID) (model.Order, bool) {
	order, ok := b.orders[id]
	if !ok {
		return model.Order{}, false
	}
	delete(b.orders, id)

	ladder := b.ladder(order.Side)
	level, ok := ladder.GetMut(&priceLevel{price: order.LimitPrice})
	if ok {
		level.remove(id)
		if level.empty() {
			ladder.Delete(level)
		}
	}

	order.Cancel()
	return *order, true
}

// PeekMut returns a mutable pointer to the best order on side, without
// removing it. The pointer aliases the book's own storage: mutating it
// (via Order.Trade) is how the matcher settles a maker in place.
func (b *Book) PeekMut(side model.Side) (*model.Order, bool) {
	level, ok := b.ladder(side).MinMut()
	if !ok {
		return nil, false
	}
	id, ok := level.front()
	if !ok {
		return nil, false
	}
	return b.orders[id], true
}

// Pop removes and returns the best order on side. Used once a peeked
// maker has traded to completion and must leave the book.
func (b *Book) Pop(side model.Side) (model.Order, bool) {
	ladder := b.ladder(side)
	level, ok := ladder.MinMut()
	if !ok {
		return model.Order{}, false
	}
	id, ok := level.popFront()
	if !ok {
		return model.Order{}, false
	}
	order := b.orders[id]
	delete(b.orders, id)
	if level.empty() {
		ladder.Delete(level)
	}
	return *order, true
}

// Spread returns (best ask price, best bid price) if both sides are
// non-empty.
func (b *Book) Spread() (askPrice, bidPrice uint64, ok bool) {
	ask, askOK := b.PeekMut(model.Ask)
	bid, bidOK := b.PeekMut(model.Bid)
	if !askOK || !bidOK {
		return 0, 0, false
	}
	return ask.LimitPrice, bid.LimitPrice, true
}

// Len returns the resting order count on each side.
func (b *Book) Len() (askCount, bidCount int) {
	for _, l := range b.asks.Items() {
		askCount += len(l.queue)
	}
	for _, l := range b.bids.Items() {
		bidCount += len(l.queue)
	}
	return askCount, bidCount
}

// Order looks an order up by id without mutating book state. Used by
// observability callers that want to inspect a single resting order.
func (b *Book) Order(id model.OrderID) (model.Order, bool) {
	order, ok := b.orders[id]
	if !ok {
		return model.Order{}, false
	}
	return *order, true
}

// LevelView is a read-only snapshot of one price level, used for
// inspecting book state level by level.
type LevelView struct {
	Price  uint64
	Orders []model.Order
}

// Levels returns a snapshot of every price level on side, best price
// first.
func (b *Book) Levels(side model.Side) []LevelView {
	items := b.ladder(side).Items()
	out := make([]LevelView, 0, len(items))
	for _, l := range items {
		view := LevelView{Price: l.price, Orders: make([]model.Order, 0, len(l.queue))}
		for _, id := range l.queue {
			view.Orders = append(view.Orders, *b.orders[id])
		}
		out = append(out, view)
	}
	return out
}
