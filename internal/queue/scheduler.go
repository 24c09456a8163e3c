package queue

import (
	"context"
	"time"

	"tastory-backend/internal/logger"

	"github.com/go-co-op/gocron"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// StartRetentionScheduler prunes search log entries older than the
// retention window once a day. The trending aggregator only ever reads
// the last 24 hours, so anything past the window is dead weight.
func StartRetentionScheduler(searchLogs *mongo.Collection, retentionDays int) *gocron.Scheduler {
	if retentionDays < 1 {
		retentionDays = 7
	}

	scheduler := gocron.NewScheduler(time.UTC)
	scheduler.TagsUnique()

	_, err := scheduler.Every(1).Day().At("03:00").Tag("search-log-retention").Do(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
		defer cancel()

		cutoff := time.Now().UTC().AddDate(0, 0, -retentionDays)
		res, err := searchLogs.DeleteMany(ctx, bson.M{
			"timestamp": bson.M{"$lt": cutoff},
		})
		if err != nil {
			logger.Error("Search log retention prune failed", "error", err)
			return
		}
		logger.Info("Pruned old search logs", "deleted", res.DeletedCount, "cutoff", cutoff)
	})
	if err != nil {
		logger.Error("Failed to schedule retention job", "error", err)
	}

	scheduler.StartAsync()
	return scheduler
}
