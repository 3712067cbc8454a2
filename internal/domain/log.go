package domain

import "time"

// Known audit actions.
const (
	ActionCreated  = "Created"
	ActionModified = "Modified"
	ActionDeleted  = "Deleted"
)

// LogEntry is one audit trail record produced by the backend.
type LogEntry struct {
	MongoID      string `json:"_id,omitempty"`
	ID           string `json:"id,omitempty"`
	Time         string `json:"time"`
	Action       string `json:"action"`
	Data         any    `json:"data,omitempty"`
	ErrorMessage string `json:"errorMessage,omitempty"`
}

// Key returns a stable identifier for rendering.
func (l LogEntry) Key() string {
	if l.ID != "" {
		return l.ID
	}
	return l.MongoID
}

// Summary is the text shown next to the action badge.
func (l LogEntry) Summary() string {
	if l.ErrorMessage != "" {
		return l.ErrorMessage
	}
	return l.Action
}

// ParsedTime parses the entry timestamp. ok is false for missing or
// unparseable values.
func (l LogEntry) ParsedTime() (t time.Time, ok bool) {
	if l.Time == "" {
		return time.Time{}, false
	}
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339, "2006-01-02T15:04:05", "2006-01-02 15:04:05", "2006-01-02"} {
		if parsed, err := time.Parse(layout, l.Time); err == nil {
			return parsed, true
		}
	}
	return time.Time{}, false
}
