package model

import "fmt"

// Trade records one match between a taker and a resting maker.
type Trade struct {
	Taker  OrderID
	Maker  OrderID
	Amount uint64
	Price  uint64
}

func (t Trade) String() string {
	return fmt.Sprintf(
		"Trade{taker=%d maker=%d amount=%d price=%d}",
		t.Taker, t.Maker, t.Amount, t.Price,
	)
}
