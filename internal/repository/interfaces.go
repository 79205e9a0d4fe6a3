package repository

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/mentorwise/mentorwise-api/internal/models"
)

var (
	// ErrNotFound indicates no document matched the query
	ErrNotFound = errors.New("document not found")

	// ErrDuplicateKey indicates a unique index rejected the write
	ErrDuplicateKey = errors.New("duplicate key")
)

// UserDataSource defines the interface for user persistence
type UserDataSource interface {
	// Create inserts a new user; ErrDuplicateKey when the email (or googleId)
	// is already registered
	Create(ctx context.Context, user *models.User) (*models.User, error)

	// GetByEmail fetches a user by lowercased email
	GetByEmail(ctx context.Context, email string) (*models.User, error)

	// GetByID fetches a user by id
	GetByID(ctx context.Context, id bson.ObjectID) (*models.User, error)

	// GetManyByIDs fetches all users whose id is in the given set
	GetManyByIDs(ctx context.Context, ids []bson.ObjectID) ([]*models.User, error)

	// UpdateProfile atomically overwrites the mentor-only profile fields
	UpdateProfile(ctx context.Context, id bson.ObjectID, about string, cgpa *float64, subjects []string) (*models.User, error)

	// SetResetToken stores the reset token hash and its expiry
	SetResetToken(ctx context.Context, id bson.ObjectID, tokenHash string, expires time.Time) error

	// ClearResetToken removes both reset token fields
	ClearResetToken(ctx context.Context, id bson.ObjectID) error

	// GetByResetToken fetches the user holding this token hash with an
	// expiry still in the future
	GetByResetToken(ctx context.Context, tokenHash string, now time.Time) (*models.User, error)

	// UpdatePassword sets a new password hash and clears any reset token
	// state in the same write
	UpdatePassword(ctx context.Context, id bson.ObjectID, passwordHash string) error

	// SearchMentors returns searchable mentors matching the filters,
	// ordered by cgpa then recency, capped at 50
	SearchMentors(ctx context.Context, filters models.SearchFilters) ([]*models.User, error)
}

// ConnectionRequestDataSource defines the interface for connection request persistence
type ConnectionRequestDataSource interface {
	// Create inserts a new pending request; ErrDuplicateKey when a request
	// for this (mentee, mentor) pair already exists in any state
	Create(ctx context.Context, menteeID, mentorID bson.ObjectID, message string) (*models.ConnectionRequest, error)

	// ListByMentor returns this mentor's requests with the given status,
	// newest first
	ListByMentor(ctx context.Context, mentorID bson.ObjectID, status models.RequestStatus) ([]*models.ConnectionRequest, error)

	// ListByMentee returns all requests sent by this mentee, newest first
	ListByMentee(ctx context.Context, menteeID bson.ObjectID) ([]*models.ConnectionRequest, error)

	// GetByIDForMentor fetches a request addressed to this mentor
	GetByIDForMentor(ctx context.Context, requestID, mentorID bson.ObjectID) (*models.ConnectionRequest, error)

	// ResolveIfPending transitions the request to newStatus only when its
	// current status is pending; returns false when nothing matched
	ResolveIfPending(ctx context.Context, requestID, mentorID bson.ObjectID, newStatus models.RequestStatus) (bool, error)
}
