package models

import "time"

// TrendingEntry is one query in the computed trending list.
type TrendingEntry struct {
	Query string  `bson:"query" json:"query"`
	Count int     `bson:"count" json:"count"`
	Score float64 `bson:"score" json:"score"`
	Trend string  `bson:"trend" json:"trend"`
}

// TrendingList is the cached trending computation. It is a TTL cache value,
// not a source of truth; the search log is always authoritative.
type TrendingList struct {
	Entries   []TrendingEntry `json:"trending"`
	UpdatedAt time.Time       `json:"lastUpdated"`
}
