package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/mentorwise/mentorwise-api/internal/models"
	"github.com/mentorwise/mentorwise-api/internal/repository"
)

func TestConnectionService_Send_Success(t *testing.T) {
	requestRepo := new(MockConnectionRequestRepository)
	userRepo := new(MockUserRepository)
	svc := NewConnectionService(requestRepo, userRepo)

	mentee := bson.NewObjectID()
	mentor := bson.NewObjectID()

	userRepo.On("GetByID", mock.Anything, mentor).Return(&models.User{ID: mentor, Role: models.RoleMentor}, nil)
	requestRepo.On("Create", mock.Anything, mentee, mentor, "hi!").Return(&models.ConnectionRequest{
		ID:      bson.NewObjectID(),
		Mentee:  mentee,
		Mentor:  mentor,
		Status:  models.StatusPending,
		Message: "hi!",
	}, nil)

	view, err := svc.Send(context.Background(), mentee.Hex(), &models.SendConnectionRequest{
		MentorID: mentor.Hex(),
		Message:  "hi!",
	})
	assert.NoError(t, err)
	assert.Equal(t, models.StatusPending, view.Status)
	assert.Equal(t, mentor.Hex(), view.MentorID)
}

func TestConnectionService_Send_MentorNotFound(t *testing.T) {
	requestRepo := new(MockConnectionRequestRepository)
	userRepo := new(MockUserRepository)
	svc := NewConnectionService(requestRepo, userRepo)

	mentor := bson.NewObjectID()
	userRepo.On("GetByID", mock.Anything, mentor).Return(nil, repository.ErrNotFound)

	_, err := svc.Send(context.Background(), bson.NewObjectID().Hex(), &models.SendConnectionRequest{MentorID: mentor.Hex()})
	assert.ErrorIs(t, err, ErrMentorNotFound)
}

func TestConnectionService_Send_MalformedMentorID(t *testing.T) {
	svc := NewConnectionService(new(MockConnectionRequestRepository), new(MockUserRepository))

	_, err := svc.Send(context.Background(), bson.NewObjectID().Hex(), &models.SendConnectionRequest{MentorID: "not-an-object-id"})
	assert.ErrorIs(t, err, ErrMentorNotFound)
}

func TestConnectionService_Send_TargetNotAMentor(t *testing.T) {
	requestRepo := new(MockConnectionRequestRepository)
	userRepo := new(MockUserRepository)
	svc := NewConnectionService(requestRepo, userRepo)

	mentor := bson.NewObjectID()
	userRepo.On("GetByID", mock.Anything, mentor).Return(&models.User{ID: mentor, Role: models.RoleMentee}, nil)

	_, err := svc.Send(context.Background(), bson.NewObjectID().Hex(), &models.SendConnectionRequest{MentorID: mentor.Hex()})
	assert.ErrorIs(t, err, ErrNotAMentor)
	requestRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestConnectionService_Send_DuplicatePair(t *testing.T) {
	requestRepo := new(MockConnectionRequestRepository)
	userRepo := new(MockUserRepository)
	svc := NewConnectionService(requestRepo, userRepo)

	mentee := bson.NewObjectID()
	mentor := bson.NewObjectID()
	userRepo.On("GetByID", mock.Anything, mentor).Return(&models.User{ID: mentor, Role: models.RoleMentor}, nil)
	requestRepo.On("Create", mock.Anything, mentee, mentor, "").Return(nil, repository.ErrDuplicateKey)

	_, err := svc.Send(context.Background(), mentee.Hex(), &models.SendConnectionRequest{MentorID: mentor.Hex()})
	assert.ErrorIs(t, err, ErrDuplicateRequest)
}

func TestConnectionService_Send_SelfRequest(t *testing.T) {
	svc := NewConnectionService(new(MockConnectionRequestRepository), new(MockUserRepository))

	id := bson.NewObjectID()
	_, err := svc.Send(context.Background(), id.Hex(), &models.SendConnectionRequest{MentorID: id.Hex()})
	assert.ErrorIs(t, err, ErrSelfRequest)
}

func TestConnectionService_ListReceived_JoinsMenteeSummaries(t *testing.T) {
	requestRepo := new(MockConnectionRequestRepository)
	userRepo := new(MockUserRepository)
	svc := NewConnectionService(requestRepo, userRepo)

	mentor := bson.NewObjectID()
	mentee := bson.NewObjectID()

	requestRepo.On("ListByMentor", mock.Anything, mentor, models.StatusPending).Return([]*models.ConnectionRequest{
		{ID: bson.NewObjectID(), Mentee: mentee, Mentor: mentor, Status: models.StatusPending, CreatedAt: time.Now()},
	}, nil)
	userRepo.On("GetManyByIDs", mock.Anything, []bson.ObjectID{mentee}).Return([]*models.User{
		{ID: mentee, FirstName: "Ada", LastName: "Khan", Email: "ada@example.com", Department: "CS", Batch: "F23"},
	}, nil)

	resp, err := svc.ListReceived(context.Background(), mentor.Hex())
	assert.NoError(t, err)
	assert.True(t, resp.Success)
	assert.Equal(t, 1, resp.Count)
	assert.Equal(t, "Ada", resp.Requests[0].Mentee.FirstName)
}

func TestConnectionService_ListSent_JoinsMentorSummaries(t *testing.T) {
	requestRepo := new(MockConnectionRequestRepository)
	userRepo := new(MockUserRepository)
	svc := NewConnectionService(requestRepo, userRepo)

	mentee := bson.NewObjectID()
	mentorA := bson.NewObjectID()
	mentorB := bson.NewObjectID()

	// resolved requests stay in the listing alongside pending ones
	requestRepo.On("ListByMentee", mock.Anything, mentee).Return([]*models.ConnectionRequest{
		{ID: bson.NewObjectID(), Mentee: mentee, Mentor: mentorA, Status: models.StatusAccepted, CreatedAt: time.Now()},
		{ID: bson.NewObjectID(), Mentee: mentee, Mentor: mentorB, Status: models.StatusPending, CreatedAt: time.Now().Add(-time.Hour)},
	}, nil)
	userRepo.On("GetManyByIDs", mock.Anything, []bson.ObjectID{mentorA, mentorB}).Return([]*models.User{
		{ID: mentorA, FirstName: "Grace", LastName: "Ali", Email: "grace@example.com", Department: "SE", Batch: "F22"},
		{ID: mentorB, FirstName: "Omar", LastName: "Riaz", Email: "omar@example.com", Department: "CS", Batch: "F23"},
	}, nil)

	resp, err := svc.ListSent(context.Background(), mentee.Hex())
	assert.NoError(t, err)
	assert.True(t, resp.Success)
	assert.Equal(t, 2, resp.Count)
	assert.Equal(t, models.StatusAccepted, resp.Requests[0].Status)
	assert.Equal(t, "Grace", resp.Requests[0].Mentor.FirstName)
	assert.Equal(t, models.StatusPending, resp.Requests[1].Status)
	assert.Equal(t, "Omar", resp.Requests[1].Mentor.FirstName)
}

func TestConnectionService_ListSent_SkipsDeletedMentors(t *testing.T) {
	requestRepo := new(MockConnectionRequestRepository)
	userRepo := new(MockUserRepository)
	svc := NewConnectionService(requestRepo, userRepo)

	mentee := bson.NewObjectID()
	mentor := bson.NewObjectID()

	requestRepo.On("ListByMentee", mock.Anything, mentee).Return([]*models.ConnectionRequest{
		{ID: bson.NewObjectID(), Mentee: mentee, Mentor: mentor, Status: models.StatusPending, CreatedAt: time.Now()},
	}, nil)
	userRepo.On("GetManyByIDs", mock.Anything, []bson.ObjectID{mentor}).Return([]*models.User{}, nil)

	resp, err := svc.ListSent(context.Background(), mentee.Hex())
	assert.NoError(t, err)
	assert.Equal(t, 0, resp.Count)
	assert.Empty(t, resp.Requests)
}

func TestConnectionService_Resolve_Success(t *testing.T) {
	requestRepo := new(MockConnectionRequestRepository)
	userRepo := new(MockUserRepository)
	svc := NewConnectionService(requestRepo, userRepo)

	mentor := bson.NewObjectID()
	requestID := bson.NewObjectID()

	requestRepo.On("ResolveIfPending", mock.Anything, requestID, mentor, models.StatusAccepted).Return(true, nil)
	requestRepo.On("GetByIDForMentor", mock.Anything, requestID, mentor).Return(&models.ConnectionRequest{
		ID:     requestID,
		Mentee: bson.NewObjectID(),
		Mentor: mentor,
		Status: models.StatusAccepted,
	}, nil)

	view, err := svc.Resolve(context.Background(), mentor.Hex(), requestID.Hex(), models.StatusAccepted)
	assert.NoError(t, err)
	assert.Equal(t, models.StatusAccepted, view.Status)
}

func TestConnectionService_Resolve_InvalidStatus(t *testing.T) {
	svc := NewConnectionService(new(MockConnectionRequestRepository), new(MockUserRepository))

	_, err := svc.Resolve(context.Background(), bson.NewObjectID().Hex(), bson.NewObjectID().Hex(), models.StatusPending)
	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestConnectionService_Resolve_NotFound(t *testing.T) {
	requestRepo := new(MockConnectionRequestRepository)
	svc := NewConnectionService(requestRepo, new(MockUserRepository))

	mentor := bson.NewObjectID()
	requestID := bson.NewObjectID()

	requestRepo.On("ResolveIfPending", mock.Anything, requestID, mentor, models.StatusRejected).Return(false, nil)
	requestRepo.On("GetByIDForMentor", mock.Anything, requestID, mentor).Return(nil, repository.ErrNotFound)

	_, err := svc.Resolve(context.Background(), mentor.Hex(), requestID.Hex(), models.StatusRejected)
	assert.ErrorIs(t, err, ErrRequestNotFound)
}

func TestConnectionService_Resolve_AlreadyResolved(t *testing.T) {
	requestRepo := new(MockConnectionRequestRepository)
	svc := NewConnectionService(requestRepo, new(MockUserRepository))

	mentor := bson.NewObjectID()
	requestID := bson.NewObjectID()

	// the conditional update misses because a racing resolve already won
	requestRepo.On("ResolveIfPending", mock.Anything, requestID, mentor, models.StatusAccepted).Return(false, nil)
	requestRepo.On("GetByIDForMentor", mock.Anything, requestID, mentor).Return(&models.ConnectionRequest{
		ID:     requestID,
		Mentor: mentor,
		Status: models.StatusRejected,
	}, nil)

	_, err := svc.Resolve(context.Background(), mentor.Hex(), requestID.Hex(), models.StatusAccepted)
	assert.ErrorIs(t, err, ErrAlreadyResolved)
}
