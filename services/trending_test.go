package services

import (
	"testing"
	"time"
)

func TestTrendScoreWeightsRecency(t *testing.T) {
	// 6 searches in the last hour (which also land in the 6h and 24h
	// windows) must outrank 6 searches spread evenly across the day.
	recent := windowCounts{Query: "biryani", Count1h: 6, Count6h: 6, Count24h: 6}
	spread := windowCounts{Query: "pizza", Count1h: 0, Count6h: 1, Count24h: 6}

	if trendScore(recent) <= trendScore(spread) {
		t.Errorf("recent score %v should exceed spread score %v", trendScore(recent), trendScore(spread))
	}
}

func TestTrendScoreFormula(t *testing.T) {
	g := windowCounts{Count1h: 2, Count6h: 4, Count24h: 10}
	// (3*2 + 2*4 + 10) / 2 = 12
	if got := trendScore(g); got != 12 {
		t.Errorf("trendScore = %v, want 12", got)
	}
}

func TestScoreTrendingThresholdAndOrder(t *testing.T) {
	grouped := []windowCounts{
		{Query: "pizza", Count1h: 0, Count6h: 2, Count24h: 6},
		{Query: "biryani", Count1h: 6, Count6h: 6, Count24h: 6},
		{Query: "rare", Count1h: 1, Count6h: 1, Count24h: 1},
	}

	entries := ScoreTrending(grouped, 3)
	if len(entries) != 2 {
		t.Fatalf("got %d entries, want 2 (rare is below the threshold)", len(entries))
	}
	if entries[0].Query != "biryani" {
		t.Errorf("top entry = %q, want biryani", entries[0].Query)
	}
	if entries[0].Trend != "up" {
		t.Errorf("biryani trend = %q, want up (score %v)", entries[0].Trend, entries[0].Score)
	}
	if entries[1].Query != "pizza" {
		t.Errorf("second entry = %q, want pizza", entries[1].Query)
	}
}

func TestScoreTrendingFallback(t *testing.T) {
	now := time.Now()
	grouped := []windowCounts{
		{Query: "older", Count24h: 2, LastSeen: now.Add(-3 * time.Hour)},
		{Query: "newer", Count24h: 2, LastSeen: now.Add(-1 * time.Hour)},
		{Query: "single", Count24h: 1, LastSeen: now},
	}

	// Nothing reaches the minimum count of 3, so the most frequent
	// queries of the day fill in, recency breaking ties.
	entries := ScoreTrending(grouped, 3)
	if len(entries) != 3 {
		t.Fatalf("got %d entries, want 3", len(entries))
	}
	if entries[0].Query != "newer" {
		t.Errorf("top fallback entry = %q, want newer", entries[0].Query)
	}
	if entries[1].Query != "older" {
		t.Errorf("second fallback entry = %q, want older", entries[1].Query)
	}
}

func TestScoreTrendingTopN(t *testing.T) {
	grouped := make([]windowCounts, 0, 15)
	for i := 0; i < 15; i++ {
		grouped = append(grouped, windowCounts{
			Query:    string(rune('a' + i)),
			Count1h:  i,
			Count6h:  i,
			Count24h: 5 + i,
		})
	}

	entries := ScoreTrending(grouped, 3)
	if len(entries) != trendingTopN {
		t.Fatalf("got %d entries, want %d", len(entries), trendingTopN)
	}
	for i := 1; i < len(entries); i++ {
		if entries[i].Score > entries[i-1].Score {
			t.Fatal("entries are not sorted by score descending")
		}
	}
}

func TestScoreTrendingEmpty(t *testing.T) {
	if entries := ScoreTrending(nil, 3); len(entries) != 0 {
		t.Errorf("got %d entries for empty input, want 0", len(entries))
	}
}
