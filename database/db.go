package database

import (
	"context"
	"fmt"
	"log"
	"time"

	"kisansaarthi/config"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// MongoClient is the global MongoDB client instance.
var MongoClient *mongo.Client

// Connect dials uri and pings the primary.
func Connect(ctx context.Context, uri string) (*mongo.Client, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}
	return client, nil
}

// InitDB initializes the MongoDB connection.
func InitDB() {
	client, err := Connect(context.Background(), config.AppConfig.DatabaseURL)
	if err != nil {
		log.Fatalf("%v", err)
	}
	MongoClient = client
	log.Println("Connected to MongoDB successfully!")
}

// MongoPinger adapts a client to the health monitor.
type MongoPinger struct {
	Client *mongo.Client
}

func (p MongoPinger) Ping(ctx context.Context) error {
	return p.Client.Ping(ctx, readpref.Primary())
}
