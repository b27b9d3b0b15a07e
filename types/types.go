package types

import "time"

type SaveStatus string

const (
	SaveIdle   SaveStatus = "idle"
	SaveSaving SaveStatus = "saving"
	SaveSaved  SaveStatus = "saved"
	SaveError  SaveStatus = "error"
)

type SaveState struct {
	Status SaveStatus
	// nil until the first successful save, or after the record is discarded
	LastSaved *time.Time
}

// SavedWorkflowData is the persisted autosave record.
type SavedWorkflowData struct {
	Nodes     []Node `json:"nodes"`
	Edges     []Edge `json:"edges"`
	Timestamp string `json:"timestamp"`
}

func FormatTimestamp(t time.Time) string {
	return t.UTC().Format("2006-01-02T15:04:05.000Z07:00")
}

func ParseTimestamp(s string) (time.Time, error) {
	return time.Parse(time.RFC3339Nano, s)
}
