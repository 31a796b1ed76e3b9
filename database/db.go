package database

import (
	"context"
	"time"

	"voicedesk/config"
	"voicedesk/utils"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// MongoClient is the global MongoDB client instance. It stays nil when the
// database is unreachable; booking lookups then behave as "not found".
var MongoClient *mongo.Client

// InitDB initializes the MongoDB connection.
func InitDB() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	logger := utils.GetLogger()

	clientOptions := options.Client().ApplyURI(config.AppConfig.DatabaseURL)
	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		logger.Warn("failed to connect to MongoDB, bookings unavailable", zap.Error(err))
		return
	}
	if err := client.Ping(ctx, nil); err != nil {
		logger.Warn("failed to ping MongoDB, bookings unavailable", zap.Error(err))
		return
	}
	MongoClient = client
	logger.Info("Connected to MongoDB successfully!")
}
