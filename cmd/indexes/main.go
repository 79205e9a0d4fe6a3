package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/mentorwise/mentorwise-api/config"
	"github.com/mentorwise/mentorwise-api/pkg/logger"
	"github.com/mentorwise/mentorwise-api/pkg/mongodb"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	err = logger.Initialize(logger.Config{
		Level:       cfg.Logging.Level,
		LogDir:      cfg.Logging.Dir,
		ServiceName: "mentorwise-indexes",
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("Creating MongoDB indexes",
		zap.String("uri", maskMongoURI(cfg.Mongo.URI)),
		zap.String("database", cfg.Mongo.Database))

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	client, err := mongodb.New(ctx, cfg.Mongo)
	if err != nil {
		logger.Error("Failed to connect to MongoDB", zap.Error(err))
		os.Exit(1)
	}
	defer func() {
		if closeErr := client.Close(context.Background()); closeErr != nil {
			logger.Error("Failed to disconnect from MongoDB", zap.Error(closeErr))
		}
	}()

	if err := client.EnsureIndexes(ctx); err != nil {
		logger.Error("Failed to create indexes", zap.Error(err))
		os.Exit(1)
	}

	logger.Info("MongoDB indexes created successfully")
}

// maskMongoURI hides credentials in the connection string for logging
func maskMongoURI(uri string) string {
	at := strings.LastIndex(uri, "@")
	if at == -1 {
		return uri
	}
	scheme := strings.Index(uri, "://")
	if scheme == -1 {
		return "***"
	}
	return uri[:scheme+3] + "***" + uri[at:]
}
