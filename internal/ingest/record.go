// Package ingest parses external wire records into engine requests. It is
// the boundary collaborator described by the core's error-handling
// design: the core treats all input as already validated, and ingest is
// where that validation actually happens.
package ingest

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/shopspring/decimal"

	"matchcore/internal/engine"
	"matchcore/internal/model"
)

// ErrMismatchType is returned when a record's type_op tag does not match
// the shape of its remaining fields, e.g. a DELETE-shaped payload tagged
// CREATE. Mirrors the ingest type-mismatch error raised by a mistagged
// create/delete record.
var ErrMismatchType = errors.New("ingest: type_op does not match record shape")

// ErrMalformedDecimal is returned when an amount or limit_price field is
// not a valid decimal string.
var ErrMalformedDecimal = errors.New("ingest: malformed decimal field")

// ErrUnknownSide is returned when the side field is neither SELL nor BUY.
var ErrUnknownSide = errors.New("ingest: side must be SELL or BUY")

// ErrMalformedID is returned when order_id or account_id is not a valid
// base-10 unsigned integer.
var ErrMalformedID = errors.New("ingest: malformed id field")

// envelope is decoded first to discriminate on type_op before committing
// to a concrete record shape.
type envelope struct {
	TypeOp string `json:"type_op"`
}

// createRecord is the wire shape of a CREATE record; all numeric fields
// arrive as decimal strings.
type createRecord struct {
	TypeOp     string `json:"type_op"`
	AccountID  string `json:"account_id"`
	Amount     string `json:"amount"`
	OrderID    string `json:"order_id"`
	Pair       string `json:"pair"`
	LimitPrice string `json:"limit_price"`
	Side       string `json:"side"`
}

// deleteRecord is the wire shape of a DELETE record.
type deleteRecord struct {
	TypeOp  string `json:"type_op"`
	OrderID string `json:"order_id"`
}

// ParseRecord discriminates raw on its type_op tag and decodes it into the
// matching engine.Request, converting decimal-string amounts and prices to
// integer minor units along the way.
func ParseRecord(raw []byte) (engine.Request, error) {
	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, fmt.Errorf("ingest: decode envelope: %w", err)
	}

	switch env.TypeOp {
	case "CREATE":
		return parseCreate(raw)
	case "DELETE":
		return parseDelete(raw)
	default:
		return nil, fmt.Errorf("%w: unknown type_op %q", ErrMismatchType, env.TypeOp)
	}
}

func parseCreate(raw []byte) (engine.Request, error) {
	var rec createRecord
	if err := json.Unmarshal(raw, &rec); err != nil {
		return nil, fmt.Errorf("ingest: decode create record: %w", err)
	}
	if rec.OrderID == "" || rec.LimitPrice == "" {
		return nil, fmt.Errorf("%w: CREATE record missing create-only fields", ErrMismatchType)
	}

	orderID, err := strconv.ParseUint(rec.OrderID, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: order_id %q: %v", ErrMalformedID, rec.OrderID, err)
	}
	accountID, err := strconv.ParseUint(rec.AccountID, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: account_id %q: %v", ErrMalformedID, rec.AccountID, err)
	}

	amount, err := toMinorUnits(rec.Amount)
	if err != nil {
		return nil, err
	}
	limitPrice, err := toMinorUnits(rec.LimitPrice)
	if err != nil {
		return nil, err
	}

	side, err := parseSide(rec.Side)
	if err != nil {
		return nil, err
	}

	return engine.CreateOrder{
		OrderID:    model.OrderID(orderID),
		AccountID:  model.AccountID(accountID),
		Pair:       rec.Pair,
		Side:       side,
		LimitPrice: limitPrice,
		Amount:     amount,
	}, nil
}

func parseDelete(raw []byte) (engine.Request, error) {
	var rec deleteRecord
	if err := json.Unmarshal(raw, &rec); err != nil {
		return nil, fmt.Errorf("ingest: decode delete record: %w", err)
	}

	orderID, err := strconv.ParseUint(rec.OrderID, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: order_id %q: %v", ErrMalformedID, rec.OrderID, err)
	}

	return engine.DeleteOrder{OrderID: model.OrderID(orderID)}, nil
}

func parseSide(s string) (model.Side, error) {
	switch s {
	case "SELL":
		return model.Ask, nil
	case "BUY":
		return model.Bid, nil
	default:
		return 0, fmt.Errorf("%w: got %q", ErrUnknownSide, s)
	}
}

// toMinorUnits converts a decimal string to an integer scaled by 100 (2
// fractional digits), truncating any finer precision rather than rounding.
func toMinorUnits(s string) (uint64, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %q: %v", ErrMalformedDecimal, s, err)
	}
	shifted := d.Shift(2).Truncate(0)
	if shifted.IsNegative() {
		return 0, fmt.Errorf("%w: %q is negative", ErrMalformedDecimal, s)
	}
	return shifted.BigInt().Uint64(), nil
}
