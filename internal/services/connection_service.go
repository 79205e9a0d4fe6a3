package services

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.uber.org/zap"

	"github.com/mentorwise/mentorwise-api/internal/models"
	"github.com/mentorwise/mentorwise-api/internal/repository"
	"github.com/mentorwise/mentorwise-api/pkg/logger"
	"github.com/mentorwise/mentorwise-api/pkg/metrics"
)

var (
	ErrMentorNotFound   = errors.New("mentor not found")
	ErrNotAMentor       = errors.New("target user is not a mentor")
	ErrSelfRequest      = errors.New("cannot send a request to yourself")
	ErrDuplicateRequest = errors.New("request already sent to this mentor")
	ErrRequestNotFound  = errors.New("connection request not found")
	ErrAlreadyResolved  = errors.New("request already resolved")
	ErrInvalidStatus    = errors.New("status must be accepted or rejected")
)

// ConnectionService owns the connection request lifecycle: one request per
// (mentee, mentor) pair, pending until the mentor accepts or rejects it.
type ConnectionService struct {
	requestRepo repository.ConnectionRequestDataSource
	userRepo    repository.UserDataSource
}

// NewConnectionService creates a new ConnectionService
func NewConnectionService(requestRepo repository.ConnectionRequestDataSource, userRepo repository.UserDataSource) *ConnectionService {
	return &ConnectionService{
		requestRepo: requestRepo,
		userRepo:    userRepo,
	}
}

// Send creates a pending request from the mentee to the mentor. The unique
// index on (mentee, mentor) rejects a second request to the same mentor
// regardless of the first one's outcome, including under concurrent sends.
func (s *ConnectionService) Send(ctx context.Context, menteeID string, req *models.SendConnectionRequest) (*models.ConnectionRequestView, error) {
	mentee, err := bson.ObjectIDFromHex(menteeID)
	if err != nil {
		return nil, ErrUserNotFound
	}

	mentor, err := bson.ObjectIDFromHex(req.MentorID)
	if err != nil {
		return nil, ErrMentorNotFound
	}

	if mentor == mentee {
		return nil, ErrSelfRequest
	}

	target, err := s.userRepo.GetByID(ctx, mentor)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrMentorNotFound
		}
		return nil, err
	}
	if target.Role != models.RoleMentor {
		return nil, ErrNotAMentor
	}

	created, err := s.requestRepo.Create(ctx, mentee, mentor, req.Message)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateKey) {
			metrics.ConnectionRequestsSent.WithLabelValues("duplicate").Inc()
			return nil, ErrDuplicateRequest
		}
		metrics.ConnectionRequestsSent.WithLabelValues("error").Inc()
		logger.Error("Failed to create connection request",
			zap.String("mentee_id", menteeID), zap.String("mentor_id", req.MentorID), zap.Error(err))
		return nil, err
	}

	metrics.ConnectionRequestsSent.WithLabelValues("success").Inc()
	logger.Info("Connection request sent",
		zap.String("request_id", created.ID.Hex()),
		zap.String("mentee_id", menteeID),
		zap.String("mentor_id", req.MentorID))

	view := created.View()
	return &view, nil
}

// ListReceived returns the caller's pending incoming requests with each
// mentee's profile excerpt attached
func (s *ConnectionService) ListReceived(ctx context.Context, mentorID string) (*models.ReceivedRequestsResponse, error) {
	mentor, err := bson.ObjectIDFromHex(mentorID)
	if err != nil {
		return nil, ErrUserNotFound
	}

	requests, err := s.requestRepo.ListByMentor(ctx, mentor, models.StatusPending)
	if err != nil {
		return nil, err
	}

	summaries, err := s.summariesFor(ctx, requests, func(r *models.ConnectionRequest) bson.ObjectID {
		return r.Mentee
	})
	if err != nil {
		return nil, err
	}

	received := make([]models.ReceivedRequest, 0, len(requests))
	for _, r := range requests {
		summary, ok := summaries[r.Mentee]
		if !ok {
			// the mentee account was deleted out from under the request
			continue
		}
		received = append(received, models.ReceivedRequest{
			ID:        r.ID.Hex(),
			Status:    r.Status,
			Message:   r.Message,
			CreatedAt: r.CreatedAt,
			Mentee:    summary,
		})
	}

	return &models.ReceivedRequestsResponse{
		Success:  true,
		Count:    len(received),
		Requests: received,
	}, nil
}

// ListSent returns all of the caller's outgoing requests in any state with
// each mentor's profile excerpt attached
func (s *ConnectionService) ListSent(ctx context.Context, menteeID string) (*models.SentRequestsResponse, error) {
	mentee, err := bson.ObjectIDFromHex(menteeID)
	if err != nil {
		return nil, ErrUserNotFound
	}

	requests, err := s.requestRepo.ListByMentee(ctx, mentee)
	if err != nil {
		return nil, err
	}

	summaries, err := s.summariesFor(ctx, requests, func(r *models.ConnectionRequest) bson.ObjectID {
		return r.Mentor
	})
	if err != nil {
		return nil, err
	}

	sent := make([]models.SentRequest, 0, len(requests))
	for _, r := range requests {
		summary, ok := summaries[r.Mentor]
		if !ok {
			continue
		}
		sent = append(sent, models.SentRequest{
			ID:        r.ID.Hex(),
			Status:    r.Status,
			Message:   r.Message,
			CreatedAt: r.CreatedAt,
			Mentor:    summary,
		})
	}

	return &models.SentRequestsResponse{
		Success:  true,
		Count:    len(sent),
		Requests: sent,
	}, nil
}

// Resolve transitions a pending request to accepted or rejected. The update
// is conditional on the pending status, so of two racing resolves exactly one
// wins and the loser sees ErrAlreadyResolved. Only the addressed mentor can
// resolve; requests addressed to someone else look like ErrRequestNotFound.
func (s *ConnectionService) Resolve(ctx context.Context, mentorID, requestID string, status models.RequestStatus) (*models.ConnectionRequestView, error) {
	if !models.StatusPending.CanTransitionTo(status) {
		return nil, ErrInvalidStatus
	}

	mentor, err := bson.ObjectIDFromHex(mentorID)
	if err != nil {
		return nil, ErrUserNotFound
	}

	request, err := bson.ObjectIDFromHex(requestID)
	if err != nil {
		return nil, ErrRequestNotFound
	}

	updated, err := s.requestRepo.ResolveIfPending(ctx, request, mentor, status)
	if err != nil {
		return nil, err
	}

	if !updated {
		// distinguish a missing request from one already resolved
		existing, getErr := s.requestRepo.GetByIDForMentor(ctx, request, mentor)
		if getErr != nil {
			if errors.Is(getErr, repository.ErrNotFound) {
				return nil, ErrRequestNotFound
			}
			return nil, getErr
		}
		metrics.ConnectionStatusUpdates.WithLabelValues(string(existing.Status), string(status)).Inc()
		return nil, ErrAlreadyResolved
	}

	metrics.ConnectionStatusUpdates.WithLabelValues(string(models.StatusPending), string(status)).Inc()
	logger.Info("Connection request resolved",
		zap.String("request_id", requestID),
		zap.String("mentor_id", mentorID),
		zap.String("status", string(status)))

	resolved, err := s.requestRepo.GetByIDForMentor(ctx, request, mentor)
	if err != nil {
		return nil, err
	}

	view := resolved.View()
	return &view, nil
}

func (s *ConnectionService) summariesFor(ctx context.Context, requests []*models.ConnectionRequest, pick func(*models.ConnectionRequest) bson.ObjectID) (map[bson.ObjectID]models.UserSummary, error) {
	if len(requests) == 0 {
		return map[bson.ObjectID]models.UserSummary{}, nil
	}

	seen := map[bson.ObjectID]struct{}{}
	ids := make([]bson.ObjectID, 0, len(requests))
	for _, r := range requests {
		id := pick(r)
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}

	users, err := s.userRepo.GetManyByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	summaries := make(map[bson.ObjectID]models.UserSummary, len(users))
	for _, u := range users {
		summaries[u.ID] = u.Summary()
	}
	return summaries, nil
}
