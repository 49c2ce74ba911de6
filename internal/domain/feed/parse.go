package feed

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	sonic "github.com/bytedance/sonic"
)

var ErrMalformedFeed = errors.New("malformed match event feed")

// Parse decodes a feed document (a JSON array of event objects). Each event keeps a copy of
// its verbatim record in Raw.
func Parse(data []byte) ([]Event, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: empty document", ErrMalformedFeed)
	}
	if data[0] != '[' {
		return nil, fmt.Errorf("%w: expected a JSON array of events", ErrMalformedFeed)
	}

	var records []json.RawMessage
	if err := sonic.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedFeed, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("%w: no events", ErrMalformedFeed)
	}

	out := make([]Event, 0, len(records))
	for idx, record := range records {
		var ev Event
		if err := sonic.Unmarshal(record, &ev); err != nil {
			return nil, fmt.Errorf("%w: event #%d: %v", ErrMalformedFeed, idx, err)
		}
		ev.Raw = append(json.RawMessage(nil), record...)
		if ev.Index <= 0 {
			ev.Index = idx + 1
		}
		out = append(out, ev)
	}

	return out, nil
}

// StartingLineups returns every starting-lineup event in feed order.
func StartingLineups(events []Event) []Event {
	out := make([]Event, 0, 2)
	for _, ev := range events {
		if ev.TypeName() == TypeStartingXI {
			out = append(out, ev)
		}
	}
	return out
}
