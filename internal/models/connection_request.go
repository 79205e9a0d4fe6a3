package models

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// RequestStatus represents the status of a connection request
type RequestStatus string

const (
	StatusPending  RequestStatus = "pending"
	StatusAccepted RequestStatus = "accepted"
	StatusRejected RequestStatus = "rejected"
)

// IsTerminal returns true if the status permits no further transitions
func (s RequestStatus) IsTerminal() bool {
	return s == StatusAccepted || s == StatusRejected
}

// CanTransitionTo checks if a status transition is valid. Only
// pending→accepted and pending→rejected are allowed.
func (s RequestStatus) CanTransitionTo(newStatus RequestStatus) bool {
	return s == StatusPending && newStatus.IsTerminal()
}

// ConnectionRequest represents one mentee's solicitation of one mentor.
// The (mentee, mentor) pair is unique for the lifetime of the collection:
// a mentee can never send a second request to the same mentor, even after
// rejection.
type ConnectionRequest struct {
	ID        bson.ObjectID `bson:"_id,omitempty"`
	Mentee    bson.ObjectID `bson:"mentee"`
	Mentor    bson.ObjectID `bson:"mentor"`
	Status    RequestStatus `bson:"status"`
	Message   string        `bson:"message"`
	CreatedAt time.Time     `bson:"createdAt"`
	UpdatedAt time.Time     `bson:"updatedAt"`
}

// ConnectionRequestView is the client-facing representation of a request
type ConnectionRequestView struct {
	ID        string        `json:"id"`
	MenteeID  string        `json:"menteeId"`
	MentorID  string        `json:"mentorId"`
	Status    RequestStatus `json:"status"`
	Message   string        `json:"message"`
	CreatedAt time.Time     `json:"createdAt"`
}

// View converts a stored request into its client-facing representation
func (r *ConnectionRequest) View() ConnectionRequestView {
	return ConnectionRequestView{
		ID:        r.ID.Hex(),
		MenteeID:  r.Mentee.Hex(),
		MentorID:  r.Mentor.Hex(),
		Status:    r.Status,
		Message:   r.Message,
		CreatedAt: r.CreatedAt,
	}
}

// SendConnectionRequest is the payload for creating a connection request
type SendConnectionRequest struct {
	MentorID string `json:"mentorId" binding:"required"`
	Message  string `json:"message" binding:"max=1000"`
}

// ResolveConnectionRequest is the payload for accepting or rejecting
type ResolveConnectionRequest struct {
	Status RequestStatus `json:"status" binding:"required,oneof=accepted rejected"`
}

// ReceivedRequest is a pending request joined with the requesting mentee
type ReceivedRequest struct {
	ID        string        `json:"id"`
	Status    RequestStatus `json:"status"`
	Message   string        `json:"message"`
	CreatedAt time.Time     `json:"createdAt"`
	Mentee    UserSummary   `json:"mentee"`
}

// SentRequest is a request joined with the targeted mentor
type SentRequest struct {
	ID        string        `json:"id"`
	Status    RequestStatus `json:"status"`
	Message   string        `json:"message"`
	CreatedAt time.Time     `json:"createdAt"`
	Mentor    UserSummary   `json:"mentor"`
}

// ReceivedRequestsResponse lists a mentor's pending requests
type ReceivedRequestsResponse struct {
	Success  bool              `json:"success"`
	Count    int               `json:"count"`
	Requests []ReceivedRequest `json:"requests"`
}

// SentRequestsResponse lists a mentee's requests in any state
type SentRequestsResponse struct {
	Success  bool          `json:"success"`
	Count    int           `json:"count"`
	Requests []SentRequest `json:"requests"`
}
