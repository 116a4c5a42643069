package history

import "github.com/FisherYu0112/Aix-DB/internal/api"

// Display placeholders for records missing optional fields.
const (
	placeholderLabel = "Untitled"
	placeholderTime  = "-"
)

// RowView is the typed display model of one record row: the core never
// builds UI nodes, the rendering layer consumes these.
type RowView struct {
	Icon      string
	Label     string
	Timestamp string
}

// RowViewOf maps a record to its display model. Label falls back
// question -> key -> placeholder; timestamp falls back to placeholder.
func RowViewOf(r api.Record) RowView {
	label := r.Question
	if label == "" {
		label = r.Key
	}
	if label == "" {
		label = placeholderLabel
	}
	ts := r.CreateTime
	if ts == "" {
		ts = placeholderTime
	}
	return RowView{Icon: "chat", Label: label, Timestamp: ts}
}

// ModeView is the display model of a mode chip.
type ModeView struct {
	Icon  string
	Label string
}

func ModeViewOf(m Mode) ModeView {
	switch m {
	case ModeDatabaseQA:
		return ModeView{Icon: "db", Label: "Database QA"}
	case ModeFileDataQA:
		return ModeView{Icon: "file", Label: "File Data QA"}
	case ModeDeepSearch:
		return ModeView{Icon: "search", Label: "Deep Search"}
	default:
		return ModeView{Icon: "chat", Label: "General QA"}
	}
}
