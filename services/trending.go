package services

import (
	"context"
	"encoding/json"
	"sort"
	"time"

	"tastory-backend/internal/logger"
	"tastory-backend/models"

	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

const (
	trendingCacheKey = "trending:current"
	trendingTopN     = 10
	fallbackTopN     = 5

	// Score cutoff between an "up" trend and a stable one. Coarse on
	// purpose: there is no historical-period comparison.
	trendUpCutoff = 10.0
)

// windowCounts is one grouped query out of the trending aggregation.
type windowCounts struct {
	Query    string    `bson:"_id"`
	Count1h  int       `bson:"count_1h"`
	Count6h  int       `bson:"count_6h"`
	Count24h int       `bson:"count_24h"`
	LastSeen time.Time `bson:"last_seen"`
}

// TrendingService scores the search log over sliding recency windows and
// caches the computed list in Redis.
type TrendingService struct {
	searchLogs   *mongo.Collection
	rdb          *redis.Client
	ttl          time.Duration
	minCount     int
	queryTimeout time.Duration
}

func NewTrendingService(searchLogs *mongo.Collection, rdb *redis.Client, ttl time.Duration, minCount int, queryTimeout time.Duration) *TrendingService {
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	if minCount < 1 {
		minCount = 3
	}
	return &TrendingService{
		searchLogs:   searchLogs,
		rdb:          rdb,
		ttl:          ttl,
		minCount:     minCount,
		queryTimeout: queryTimeout,
	}
}

// Get returns the trending list, serving the cached copy within its TTL
// and recomputing synchronously on a miss. Concurrent misses may each
// recompute; the result is identical so last write wins.
func (s *TrendingService) Get(ctx context.Context) (*models.TrendingList, bool, error) {
	if s.rdb != nil {
		cached, err := s.rdb.Get(ctx, trendingCacheKey).Result()
		if err == nil {
			var list models.TrendingList
			if jsonErr := json.Unmarshal([]byte(cached), &list); jsonErr == nil {
				return &list, true, nil
			}
		} else if err != redis.Nil {
			logger.Warn("Trending cache read failed", "error", err)
		}
	}

	list, err := s.Compute(ctx)
	if err != nil {
		return nil, false, err
	}

	if s.rdb != nil {
		if payload, err := json.Marshal(list); err == nil {
			if err := s.rdb.Set(ctx, trendingCacheKey, payload, s.ttl).Err(); err != nil {
				logger.Warn("Trending cache write failed", "error", err)
			}
		}
	}

	return list, false, nil
}

// Compute aggregates the last 24 hours of search logs into a scored
// trending list.
func (s *TrendingService) Compute(ctx context.Context) (*models.TrendingList, error) {
	ctx, cancel := withSearchDeadline(ctx, s.queryTimeout)
	defer cancel()

	now := time.Now().UTC()
	cutoff1h := now.Add(-1 * time.Hour)
	cutoff6h := now.Add(-6 * time.Hour)
	cutoff24h := now.Add(-24 * time.Hour)

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.D{
			{Key: "timestamp", Value: bson.D{{Key: "$gte", Value: cutoff24h}}},
			{Key: "query", Value: bson.D{{Key: "$ne", Value: ""}}},
		}}},
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$query"},
			{Key: "count_1h", Value: bson.D{{Key: "$sum", Value: bson.D{{Key: "$cond", Value: bson.A{
				bson.D{{Key: "$gte", Value: bson.A{"$timestamp", cutoff1h}}}, 1, 0,
			}}}}}},
			{Key: "count_6h", Value: bson.D{{Key: "$sum", Value: bson.D{{Key: "$cond", Value: bson.A{
				bson.D{{Key: "$gte", Value: bson.A{"$timestamp", cutoff6h}}}, 1, 0,
			}}}}}},
			{Key: "count_24h", Value: bson.D{{Key: "$sum", Value: 1}}},
			{Key: "last_seen", Value: bson.D{{Key: "$max", Value: "$timestamp"}}},
		}}},
	}

	cursor, err := s.searchLogs.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, classifyStoreError(err)
	}
	defer cursor.Close(ctx)

	var grouped []windowCounts
	if err := cursor.All(ctx, &grouped); err != nil {
		return nil, classifyStoreError(err)
	}

	entries := ScoreTrending(grouped, s.minCount)
	return &models.TrendingList{
		Entries:   entries,
		UpdatedAt: now,
	}, nil
}

// ScoreTrending turns window counts into the final trending list. Recent
// windows are weighted heavier, queries under the minimum count are
// dropped, and if nothing clears the bar the most frequent queries of the
// day fill in.
func ScoreTrending(grouped []windowCounts, minCount int) []models.TrendingEntry {
	qualified := make([]windowCounts, 0, len(grouped))
	for _, g := range grouped {
		if g.Count24h >= minCount {
			qualified = append(qualified, g)
		}
	}

	if len(qualified) > 0 {
		sort.SliceStable(qualified, func(i, j int) bool {
			return trendScore(qualified[i]) > trendScore(qualified[j])
		})
		if len(qualified) > trendingTopN {
			qualified = qualified[:trendingTopN]
		}
		return toEntries(qualified)
	}

	// Nothing cleared the threshold: fall back to raw 24h frequency with
	// a recency tie-break.
	fallback := append([]windowCounts(nil), grouped...)
	sort.SliceStable(fallback, func(i, j int) bool {
		if fallback[i].Count24h != fallback[j].Count24h {
			return fallback[i].Count24h > fallback[j].Count24h
		}
		return fallback[i].LastSeen.After(fallback[j].LastSeen)
	})
	if len(fallback) > fallbackTopN {
		fallback = fallback[:fallbackTopN]
	}
	return toEntries(fallback)
}

// trendScore weights the 1h window triple and the 6h window double.
func trendScore(g windowCounts) float64 {
	return float64(3*g.Count1h+2*g.Count6h+g.Count24h) / 2
}

func toEntries(grouped []windowCounts) []models.TrendingEntry {
	entries := make([]models.TrendingEntry, 0, len(grouped))
	for _, g := range grouped {
		score := trendScore(g)
		trend := "stable"
		if score >= trendUpCutoff {
			trend = "up"
		}
		entries = append(entries, models.TrendingEntry{
			Query: g.Query,
			Count: g.Count24h,
			Score: score,
			Trend: trend,
		})
	}
	return entries
}
