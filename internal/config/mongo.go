package config

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func ConnectMongoDB(cfg *Config) (*mongo.Client, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %v", err)
	}

	// Test connection
	err = client.Ping(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to ping MongoDB: %v", err)
	}

	// Create indexes
	err = createIndexes(client, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create indexes: %v", err)
	}

	return client, nil
}

// createIndexes bootstraps the regular indexes the pipeline relies on. The
// Atlas vector and text search indexes cannot be created through the driver
// and are provisioned out of band.
func createIndexes(client *mongo.Client, cfg *Config) error {
	db := client.Database(cfg.DBName)

	recipesCollection := db.Collection(cfg.RecipesCollection)
	recipeIndexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "RecipeId", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "Name", Value: 1}},
		},
	}
	_, err := recipesCollection.Indexes().CreateMany(context.Background(), recipeIndexes)
	if err != nil {
		return err
	}

	reviewsCollection := db.Collection(cfg.ReviewsCollection)
	reviewIndexes := []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "RecipeId", Value: 1}, {Key: "Rating", Value: -1}},
		},
	}
	_, err = reviewsCollection.Indexes().CreateMany(context.Background(), reviewIndexes)
	if err != nil {
		return err
	}

	// Search log indexes back the trending aggregation windows.
	searchLogsCollection := db.Collection(cfg.SearchLogsCollection)
	searchLogIndexes := []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "timestamp", Value: -1}},
		},
		{
			Keys: bson.D{{Key: "query", Value: 1}},
		},
	}
	_, err = searchLogsCollection.Indexes().CreateMany(context.Background(), searchLogIndexes)
	if err != nil {
		return err
	}

	return nil
}
