package api

// Record is one persisted conversation entry as returned by the server.
// question and create_time are optional on the wire; display fallbacks live
// in the history package.
type Record struct {
	ChatID     string `json:"chat_id"`
	Question   string `json:"question,omitempty"`
	Key        string `json:"key,omitempty"`
	CreateTime string `json:"create_time,omitempty"`
}

// QueryResult is the data envelope of a record query.
type QueryResult struct {
	Records    []Record `json:"records"`
	TotalCount int      `json:"total_count"`
	TotalPages int      `json:"total_pages"`
}

// AskRequest is one composed question submitted to the QA pipeline.
// Intent carries the mode tag (GENERAL_QA, DATABASE_QA, FILEDATA_QA,
// DEEP_SEARCH) so the server can route to the right agent.
type AskRequest struct {
	ChatID   string `json:"chat_id"`
	Question string `json:"question"`
	Intent   string `json:"intent"`
}
