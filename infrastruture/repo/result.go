package repo

import (
	"context"
	"errors"
	"time"

	dmn "github.com/beka-birhanu/rotating-maze/domain"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ResultRepo handles the persistence of episode results.
type ResultRepo struct {
	collection *mongo.Collection
}

// NewResultRepo creates a new ResultRepo with the given MongoDB client, database name, and collection name.
func NewResultRepo(client *mongo.Client, dbName, collectionName string) *ResultRepo {
	collection := client.Database(dbName).Collection(collectionName)
	return &ResultRepo{
		collection: collection,
	}
}

// Save inserts or updates the result of an episode.
// Scoring the same episode twice overwrites the earlier record.
func (r *ResultRepo) Save(result *dmn.EpisodeResult) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	filter := bson.M{"_id": result.EpisodeID}
	update := bson.M{
		"$set": bson.M{
			"variant":      result.Variant,
			"success":      result.Success,
			"score":        result.Score,
			"stepsTaken":   result.StepsTaken,
			"optimalSteps": result.OptimalSteps,
			"efficiency":   result.Efficiency,
			"finishedAt":   result.FinishedAt,
		},
	}

	opts := options.Update().SetUpsert(true)
	if _, err := r.collection.UpdateOne(ctx, filter, update, opts); err != nil {
		return errors.New("unexpected error: " + err.Error())
	}

	return nil
}

// ByEpisode retrieves the result of an episode.
// Returns dmn.ErrResultNotFound if the episode has no recorded result.
func (r *ResultRepo) ByEpisode(id uuid.UUID) (*dmn.EpisodeResult, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	filter := bson.M{"_id": id}
	var result dmn.EpisodeResult
	if err := r.collection.FindOne(ctx, filter).Decode(&result); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, dmn.ErrResultNotFound
		}
		return nil, errors.New("unexpected error: " + err.Error())
	}
	return &result, nil
}

// ByVariant lists the results of a variant, most recent first.
func (r *ResultRepo) ByVariant(variant string) ([]*dmn.EpisodeResult, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	filter := bson.M{"variant": variant}
	opts := options.Find().SetSort(bson.D{{Key: "finishedAt", Value: -1}})
	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, errors.New("unexpected error: " + err.Error())
	}

	var results []*dmn.EpisodeResult
	if err := cursor.All(ctx, &results); err != nil {
		return nil, errors.New("unexpected error: " + err.Error())
	}
	return results, nil
}
