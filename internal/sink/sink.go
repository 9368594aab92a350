// Package sink serializes emitted engine events to an output collaborator.
package sink

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/rs/zerolog/log"

	"matchcore/internal/model"
)

// Sink accepts one process call's event vector at a time.
type Sink interface {
	Write(events []model.Event) error
}

// eventRecord is the JSON projection of an Event. Only the fields
// meaningful for Kind are populated; omitempty keeps the other shape's
// zero values out of the encoded object.
type eventRecord struct {
	Type    string        `json:"type"`
	OrderID model.OrderID `json:"order_id,omitempty"`
	Taker   model.OrderID `json:"taker,omitempty"`
	Maker   model.OrderID `json:"maker,omitempty"`
	Amount  uint64        `json:"amount,omitempty"`
	Price   uint64        `json:"price,omitempty"`
}

func toRecord(e model.Event) eventRecord {
	switch e.Kind {
	case model.EventAdded:
		return eventRecord{Type: "ADDED", OrderID: e.OrderID}
	case model.EventRemoved:
		return eventRecord{Type: "REMOVED", OrderID: e.OrderID}
	case model.EventTraded:
		return eventRecord{
			Type:   "TRADED",
			Taker:  e.Trade.Taker,
			Maker:  e.Trade.Maker,
			Amount: e.Trade.Amount,
			Price:  e.Trade.Price,
		}
	default:
		return eventRecord{Type: "UNKNOWN"}
	}
}

// JSONSink writes one JSON record per event, newline-delimited, to w.
type JSONSink struct {
	enc *json.Encoder
}

// NewJSONSink constructs a JSONSink writing to w.
func NewJSONSink(w io.Writer) *JSONSink {
	return &JSONSink{enc: json.NewEncoder(w)}
}

// Write encodes each event in events as one JSON line.
func (s *JSONSink) Write(events []model.Event) error {
	for _, e := range events {
		if err := s.enc.Encode(toRecord(e)); err != nil {
			return fmt.Errorf("sink: encode event %s: %w", e, err)
		}
	}
	return nil
}

// LoggingSink decorates another Sink, logging each event at debug level
// before delegating. Useful for the CLI's verbose mode.
type LoggingSink struct {
	next Sink
}

// NewLoggingSink constructs a LoggingSink wrapping next.
func NewLoggingSink(next Sink) *LoggingSink {
	return &LoggingSink{next: next}
}

// Write logs then delegates to the wrapped Sink.
func (s *LoggingSink) Write(events []model.Event) error {
	for _, e := range events {
		log.Debug().Stringer("event", e).Msg("engine event")
	}
	return s.next.Write(events)
}
