package realtime

import (
	"encoding/json"
	"fmt"

	"github.com/cocobase/cocobase-go/pkg/models"
)

// Event is one change notification pushed by the backend.
type Event struct {
	// Event is the kind of change (e.g., "create", "update", "delete").
	Event string `json:"event"`

	// Data is the affected document. Fields the frame does not carry, or
	// carries with an unexpected type, are left zero.
	Data models.Document[models.Data] `json:"-"`

	// Raw is the frame's data value exactly as received. Delete events may
	// carry a bare document id here.
	Raw json.RawMessage `json:"data,omitempty"`
}

// parseEvent decodes a frame. Only a frame that is not a JSON object is an
// error; a data value that does not fit Document is reported through
// docErr and the event is still returned.
func parseEvent(msg []byte) (event Event, docErr error, err error) {
	if err := json.Unmarshal(msg, &event); err != nil {
		return Event{}, nil, err
	}
	if len(event.Raw) == 0 || string(event.Raw) == "null" {
		return event, nil, nil
	}
	if err := json.Unmarshal(event.Raw, &event.Data); err != nil {
		docErr = fmt.Errorf("event data is not a document: %w", err)
	}
	return event, docErr, nil
}

// Decode converts the document payload into out, which must be a pointer to
// a struct or map.
func (e Event) Decode(out any) error {
	return models.DecodeInto(e.Data.Data, out)
}

// Handler receives events. It runs on the connection's read goroutine.
type Handler func(Event)
