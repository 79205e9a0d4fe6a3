package repository

import (
	"context"
	"fmt"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/mentorwise/mentorwise-api/internal/models"
	"github.com/mentorwise/mentorwise-api/pkg/metrics"
)

const maxSearchResults = 50

// UserRepository handles user data access against the users collection
type UserRepository struct {
	coll *mongo.Collection
}

// NewUserRepository creates a new user repository
func NewUserRepository(coll *mongo.Collection) *UserRepository {
	return &UserRepository{coll: coll}
}

// Create inserts a new user document. The unique index on email (and the
// sparse unique index on googleId) turns racing duplicate inserts into
// ErrDuplicateKey.
func (r *UserRepository) Create(ctx context.Context, user *models.User) (*models.User, error) {
	start := time.Now()

	now := time.Now().UTC()
	user.CreatedAt = now
	user.UpdatedAt = now

	result, err := r.coll.InsertOne(ctx, user)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			metrics.MongoOperationDuration.WithLabelValues("user_create", "duplicate").Observe(metrics.MeasureDuration(start))
			return nil, ErrDuplicateKey
		}
		metrics.MongoOperationDuration.WithLabelValues("user_create", "error").Observe(metrics.MeasureDuration(start))
		return nil, fmt.Errorf("failed to insert user: %w", err)
	}

	user.ID = result.InsertedID.(bson.ObjectID)
	metrics.MongoOperationDuration.WithLabelValues("user_create", "success").Observe(metrics.MeasureDuration(start))
	return user, nil
}

// GetByEmail fetches a user by email. Emails are stored lowercased, so the
// caller is expected to normalize before querying.
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := r.coll.FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch user by email: %w", err)
	}
	return &user, nil
}

// GetByID fetches a user by id
func (r *UserRepository) GetByID(ctx context.Context, id bson.ObjectID) (*models.User, error) {
	var user models.User
	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&user)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch user by id: %w", err)
	}
	return &user, nil
}

// GetManyByIDs fetches all users whose id is in the given set
func (r *UserRepository) GetManyByIDs(ctx context.Context, ids []bson.ObjectID) ([]*models.User, error) {
	if len(ids) == 0 {
		return []*models.User{}, nil
	}

	cursor, err := r.coll.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch users by ids: %w", err)
	}

	var users []*models.User
	if err := cursor.All(ctx, &users); err != nil {
		return nil, fmt.Errorf("failed to decode users: %w", err)
	}
	return users, nil
}

// UpdateProfile overwrites about, cgpa and subjects in a single update so the
// three fields never go out of sync. A nil cgpa unsets the field.
func (r *UserRepository) UpdateProfile(ctx context.Context, id bson.ObjectID, about string, cgpa *float64, subjects []string) (*models.User, error) {
	if subjects == nil {
		subjects = []string{}
	}

	set := bson.M{
		"about":     about,
		"subjects":  subjects,
		"updatedAt": time.Now().UTC(),
	}
	update := bson.M{"$set": set}
	if cgpa != nil {
		set["cgpa"] = *cgpa
	} else {
		update["$unset"] = bson.M{"cgpa": ""}
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var user models.User
	err := r.coll.FindOneAndUpdate(ctx, bson.M{"_id": id}, update, opts).Decode(&user)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}
	return &user, nil
}

// SetResetToken stores the reset token hash and expiry, opening the reset window
func (r *UserRepository) SetResetToken(ctx context.Context, id bson.ObjectID, tokenHash string, expires time.Time) error {
	result, err := r.coll.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{
		"resetPasswordToken":   tokenHash,
		"resetPasswordExpires": expires,
		"updatedAt":            time.Now().UTC(),
	}})
	if err != nil {
		return fmt.Errorf("failed to set reset token: %w", err)
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// ClearResetToken closes the reset window by removing both fields
func (r *UserRepository) ClearResetToken(ctx context.Context, id bson.ObjectID) error {
	_, err := r.coll.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$unset": bson.M{
		"resetPasswordToken":   "",
		"resetPasswordExpires": "",
	}})
	if err != nil {
		return fmt.Errorf("failed to clear reset token: %w", err)
	}
	return nil
}

// GetByResetToken fetches the user holding this token hash with an unexpired window
func (r *UserRepository) GetByResetToken(ctx context.Context, tokenHash string, now time.Time) (*models.User, error) {
	filter := bson.M{
		"resetPasswordToken":   tokenHash,
		"resetPasswordExpires": bson.M{"$gt": now},
	}

	var user models.User
	err := r.coll.FindOne(ctx, filter).Decode(&user)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch user by reset token: %w", err)
	}
	return &user, nil
}

// UpdatePassword sets the new hash and clears reset state in one write, so a
// completed reset can never leave the window open.
func (r *UserRepository) UpdatePassword(ctx context.Context, id bson.ObjectID, passwordHash string) error {
	result, err := r.coll.UpdateOne(ctx, bson.M{"_id": id}, bson.M{
		"$set": bson.M{
			"password":  passwordHash,
			"updatedAt": time.Now().UTC(),
		},
		"$unset": bson.M{
			"resetPasswordToken":   "",
			"resetPasswordExpires": "",
		},
	})
	if err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// SearchMentors returns mentors with complete profiles matching the filters,
// ordered by cgpa descending then recency, capped at 50. Credentials and
// reset token state are excluded by projection.
func (r *UserRepository) SearchMentors(ctx context.Context, filters models.SearchFilters) ([]*models.User, error) {
	start := time.Now()

	filter := bson.M{
		"role":     models.RoleMentor,
		"about":    bson.M{"$exists": true, "$ne": ""},
		"cgpa":     bson.M{"$exists": true, "$ne": nil},
		"subjects": bson.M{"$exists": true, "$not": bson.M{"$size": 0}},
	}

	if filters.Search != "" {
		pattern := bson.Regex{Pattern: regexp.QuoteMeta(filters.Search), Options: "i"}
		filter["$or"] = bson.A{
			bson.M{"firstName": pattern},
			bson.M{"lastName": pattern},
			bson.M{"subjects": pattern},
		}
	}

	if filters.MinCGPA != nil {
		filter["cgpa"] = bson.M{"$gte": *filters.MinCGPA}
	}

	if filters.Department != "" {
		filter["department"] = filters.Department
	}

	opts := options.Find().
		SetProjection(bson.M{
			"password":             0,
			"resetPasswordToken":   0,
			"resetPasswordExpires": 0,
			"authProvider":         0,
			"googleId":             0,
		}).
		SetSort(bson.D{{Key: "cgpa", Value: -1}, {Key: "createdAt", Value: -1}}).
		SetLimit(maxSearchResults)

	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		metrics.MongoOperationDuration.WithLabelValues("mentor_search", "error").Observe(metrics.MeasureDuration(start))
		return nil, fmt.Errorf("failed to search mentors: %w", err)
	}

	var mentors []*models.User
	if err := cursor.All(ctx, &mentors); err != nil {
		metrics.MongoOperationDuration.WithLabelValues("mentor_search", "error").Observe(metrics.MeasureDuration(start))
		return nil, fmt.Errorf("failed to decode mentors: %w", err)
	}

	metrics.MongoOperationDuration.WithLabelValues("mentor_search", "success").Observe(metrics.MeasureDuration(start))
	return mentors, nil
}
