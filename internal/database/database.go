package database

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Collection names. Everything user-generated lives in Mongo; static content
// lives in Postgres.
const (
	ColUsers            = "users"
	ColSessions         = "user_sessions"
	ColMeals            = "meals"
	ColWater            = "water"
	ColSteps            = "steps"
	ColVitamins         = "vitamins"
	ColWeightLogs       = "weight_logs"
	ColPersonalDiets    = "personal_diets"
	ColActiveDiets      = "active_diets"
	ColDeletionRequests = "deletion_requests"
)

// Connect dials MongoDB and verifies the connection with a ping. Timeouts
// are generous because Atlas cold starts are slow.
func Connect(mongoURI, dbName string) (*mongo.Client, *mongo.Database, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	clientOptions := options.Client().ApplyURI(mongoURI)
	clientOptions.SetServerSelectionTimeout(10 * time.Second)

	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, nil, err
	}

	pingCtx, pingCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer pingCancel()

	if err := client.Ping(pingCtx, nil); err != nil {
		client.Disconnect(context.Background())
		return nil, nil, err
	}

	return client, client.Database(dbName), nil
}

// Disconnect closes the Mongo connection.
func Disconnect(client *mongo.Client) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return client.Disconnect(ctx)
}

// EnsureIndexes creates the indexes the query paths depend on. Safe to run
// on every startup; CreateMany is a no-op for existing indexes.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	type spec struct {
		col    string
		models []mongo.IndexModel
	}
	specs := []spec{
		{ColUsers, []mongo.IndexModel{
			{Keys: bson.D{{Key: "user_id", Value: 1}}, Options: options.Index().SetUnique(true)},
			{Keys: bson.D{{Key: "email", Value: 1}}},
			{Keys: bson.D{{Key: "scheduled_deletion_at", Value: 1}}},
		}},
		{ColSessions, []mongo.IndexModel{
			{Keys: bson.D{{Key: "session_token", Value: 1}}, Options: options.Index().SetUnique(true)},
			{Keys: bson.D{{Key: "user_id", Value: 1}}},
		}},
		{ColMeals, []mongo.IndexModel{
			{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "date", Value: 1}}},
			{Keys: bson.D{{Key: "meal_id", Value: 1}}},
		}},
		{ColWater, []mongo.IndexModel{
			{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "date", Value: 1}}},
		}},
		{ColSteps, []mongo.IndexModel{
			{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "date", Value: 1}}, Options: options.Index().SetUnique(true)},
		}},
		{ColVitamins, []mongo.IndexModel{
			{Keys: bson.D{{Key: "user_id", Value: 1}}},
		}},
		{ColWeightLogs, []mongo.IndexModel{
			{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "date", Value: 1}}, Options: options.Index().SetUnique(true)},
		}},
		{ColPersonalDiets, []mongo.IndexModel{
			{Keys: bson.D{{Key: "user_id", Value: 1}}},
		}},
		{ColActiveDiets, []mongo.IndexModel{
			{Keys: bson.D{{Key: "user_id", Value: 1}}},
		}},
	}
	for _, s := range specs {
		if _, err := db.Collection(s.col).Indexes().CreateMany(ctx, s.models); err != nil {
			return err
		}
	}
	return nil
}
