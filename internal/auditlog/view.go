package auditlog

import (
	"encoding/json"
	"strconv"
	"time"

	"github.com/wichananm65/personas-web/internal/domain"
)

// TimeLayout is how entry timestamps are shown, in the server's zone.
const TimeLayout = "02/01/2006, 15:04:05"

type badge struct {
	Background string
	Foreground string
}

var (
	badgeCreated = badge{Background: "#e8f5e9", Foreground: "#34A853"}
	badgeDeleted = badge{Background: "#ffebee", Foreground: "#EA4335"}
	badgeOther   = badge{Background: "#e3f2fd", Foreground: "#3A7BD5"}
)

// Row is one rendered log entry.
type Row struct {
	Key     string
	Action  string
	Summary string
	Badge   badge
	Data    string
	When    string
}

func badgeFor(action string) badge {
	switch action {
	case domain.ActionCreated:
		return badgeCreated
	case domain.ActionDeleted:
		return badgeDeleted
	default:
		return badgeOther
	}
}

// Rows converts entries for display. loc may be nil for time.Local.
func Rows(entries []domain.LogEntry, loc *time.Location) []Row {
	if loc == nil {
		loc = time.Local
	}
	rows := make([]Row, 0, len(entries))
	for i, e := range entries {
		key := e.Key()
		if key == "" {
			key = "log-" + strconv.Itoa(i)
		}
		rows = append(rows, Row{
			Key:     key,
			Action:  e.Action,
			Summary: e.Summary(),
			Badge:   badgeFor(e.Action),
			Data:    compact(e.Data),
			When:    when(e, loc),
		})
	}
	return rows
}

// when formats the entry time. A value that does not parse is shown as
// sent.
func when(e domain.LogEntry, loc *time.Location) string {
	t, ok := e.ParsedTime()
	if !ok {
		if e.Time == "" {
			return "N/A"
		}
		return e.Time
	}
	return t.In(loc).Format(TimeLayout)
}

func compact(data any) string {
	if data == nil {
		return ""
	}
	b, err := json.Marshal(data)
	if err != nil {
		return ""
	}
	return string(b)
}
