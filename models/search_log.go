package models

import "time"

// SearchLogEntry is one row of the append-only search log consumed by the
// trending aggregator. Entries are written by the worker, never updated
// except for the optional result-count backfill.
type SearchLogEntry struct {
	Query        string    `bson:"query" json:"query"`
	Timestamp    time.Time `bson:"timestamp" json:"timestamp"`
	SessionID    string    `bson:"session_id" json:"sessionId"`
	ResultsCount int       `bson:"results_count" json:"resultsCount"`
}
