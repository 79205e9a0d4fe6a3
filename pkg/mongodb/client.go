package mongodb

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.mongodb.org/mongo-driver/v2/mongo/readpref"

	"github.com/mentorwise/mentorwise-api/config"
)

const (
	UsersCollectionName              = "users"
	ConnectionRequestsCollectionName = "connection_requests"
)

// Client wraps mongo.Client and exposes the application's collections
type Client struct {
	client *mongo.Client
	db     *mongo.Database
}

// New connects to MongoDB, verifies the connection and returns a Client
func New(ctx context.Context, cfg config.MongoConfig) (*Client, error) {
	opts := options.Client().
		ApplyURI(cfg.URI).
		SetConnectTimeout(10 * time.Second)

	client, err := mongo.Connect(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	return &Client{
		client: client,
		db:     client.Database(cfg.Database),
	}, nil
}

// Users returns the users collection
func (c *Client) Users() *mongo.Collection {
	return c.db.Collection(UsersCollectionName)
}

// ConnectionRequests returns the connection requests collection
func (c *Client) ConnectionRequests() *mongo.Collection {
	return c.db.Collection(ConnectionRequestsCollectionName)
}

// Ping verifies the server is reachable, used by the healthcheck
func (c *Client) Ping(ctx context.Context) error {
	return c.client.Ping(ctx, readpref.Primary())
}

// Close disconnects from MongoDB
func (c *Client) Close(ctx context.Context) error {
	return c.client.Disconnect(ctx)
}

// EnsureIndexes creates the indexes the application relies on for correctness.
// The unique index on (mentee, mentor) is the integrity guard against racing
// duplicate connection requests, so it must exist before the API serves traffic.
func (c *Client) EnsureIndexes(ctx context.Context) error {
	userIndexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "googleId", Value: 1}},
			Options: options.Index().SetUnique(true).SetSparse(true),
		},
		{
			// Supports the searchable-mentors query and its sort order
			Keys: bson.D{{Key: "role", Value: 1}, {Key: "cgpa", Value: -1}, {Key: "createdAt", Value: -1}},
		},
		{
			// Supports reset token lookup during completeReset
			Keys:    bson.D{{Key: "resetPasswordToken", Value: 1}},
			Options: options.Index().SetSparse(true),
		},
	}

	if _, err := c.Users().Indexes().CreateMany(ctx, userIndexes); err != nil {
		return fmt.Errorf("failed to create user indexes: %w", err)
	}

	requestIndexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "mentee", Value: 1}, {Key: "mentor", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "mentor", Value: 1}, {Key: "status", Value: 1}, {Key: "createdAt", Value: -1}},
		},
		{
			Keys: bson.D{{Key: "mentee", Value: 1}, {Key: "createdAt", Value: -1}},
		},
	}

	if _, err := c.ConnectionRequests().Indexes().CreateMany(ctx, requestIndexes); err != nil {
		return fmt.Errorf("failed to create connection request indexes: %w", err)
	}

	return nil
}
