package repository

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/mentorwise/mentorwise-api/internal/models"
	"github.com/mentorwise/mentorwise-api/pkg/metrics"
)

// ConnectionRequestRepository handles connection request data access
type ConnectionRequestRepository struct {
	coll *mongo.Collection
}

// NewConnectionRequestRepository creates a new connection request repository
func NewConnectionRequestRepository(coll *mongo.Collection) *ConnectionRequestRepository {
	return &ConnectionRequestRepository{coll: coll}
}

// Create inserts a new pending request. The unique compound index on
// (mentee, mentor) is the integrity guard against duplicate or racing sends;
// there is deliberately no check-then-insert here.
func (r *ConnectionRequestRepository) Create(ctx context.Context, menteeID, mentorID bson.ObjectID, message string) (*models.ConnectionRequest, error) {
	start := time.Now()

	now := time.Now().UTC()
	request := &models.ConnectionRequest{
		Mentee:    menteeID,
		Mentor:    mentorID,
		Status:    models.StatusPending,
		Message:   message,
		CreatedAt: now,
		UpdatedAt: now,
	}

	result, err := r.coll.InsertOne(ctx, request)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			metrics.MongoOperationDuration.WithLabelValues("request_create", "duplicate").Observe(metrics.MeasureDuration(start))
			return nil, ErrDuplicateKey
		}
		metrics.MongoOperationDuration.WithLabelValues("request_create", "error").Observe(metrics.MeasureDuration(start))
		return nil, fmt.Errorf("failed to insert connection request: %w", err)
	}

	request.ID = result.InsertedID.(bson.ObjectID)
	metrics.MongoOperationDuration.WithLabelValues("request_create", "success").Observe(metrics.MeasureDuration(start))
	return request, nil
}

// ListByMentor returns this mentor's requests with the given status, newest first
func (r *ConnectionRequestRepository) ListByMentor(ctx context.Context, mentorID bson.ObjectID, status models.RequestStatus) ([]*models.ConnectionRequest, error) {
	filter := bson.M{"mentor": mentorID, "status": status}
	return r.list(ctx, filter)
}

// ListByMentee returns all requests sent by this mentee, newest first
func (r *ConnectionRequestRepository) ListByMentee(ctx context.Context, menteeID bson.ObjectID) ([]*models.ConnectionRequest, error) {
	return r.list(ctx, bson.M{"mentee": menteeID})
}

func (r *ConnectionRequestRepository) list(ctx context.Context, filter bson.M) ([]*models.ConnectionRequest, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})

	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list connection requests: %w", err)
	}

	requests := []*models.ConnectionRequest{}
	if err := cursor.All(ctx, &requests); err != nil {
		return nil, fmt.Errorf("failed to decode connection requests: %w", err)
	}
	return requests, nil
}

// GetByIDForMentor fetches a request addressed to this mentor
func (r *ConnectionRequestRepository) GetByIDForMentor(ctx context.Context, requestID, mentorID bson.ObjectID) (*models.ConnectionRequest, error) {
	var request models.ConnectionRequest
	err := r.coll.FindOne(ctx, bson.M{"_id": requestID, "mentor": mentorID}).Decode(&request)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch connection request: %w", err)
	}
	return &request, nil
}

// ResolveIfPending transitions the request to newStatus in a single
// conditional update filtered on the current pending status, so two racing
// resolves yield exactly one state change.
func (r *ConnectionRequestRepository) ResolveIfPending(ctx context.Context, requestID, mentorID bson.ObjectID, newStatus models.RequestStatus) (bool, error) {
	filter := bson.M{
		"_id":    requestID,
		"mentor": mentorID,
		"status": models.StatusPending,
	}
	update := bson.M{"$set": bson.M{
		"status":    newStatus,
		"updatedAt": time.Now().UTC(),
	}}

	result, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return false, fmt.Errorf("failed to resolve connection request: %w", err)
	}
	return result.MatchedCount > 0, nil
}
