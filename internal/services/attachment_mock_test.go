package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"bnbBack/internal/events"
	"bnbBack/internal/logger"
	"bnbBack/internal/models"
)

type mockAttachmentStore struct {
	mock.Mock
}

func (m *mockAttachmentStore) Save(ctx context.Context, attachment models.Attachment) (string, error) {
	args := m.Called(ctx, attachment)
	return args.String(0), args.Error(1)
}

type mockPublisher struct {
	mock.Mock
}

func (m *mockPublisher) Publish(ctx context.Context, subject string, payload interface{}) error {
	args := m.Called(ctx, subject, payload)
	return args.Error(0)
}

func TestCreateApartmentStoresImageOnceAndPublishes(t *testing.T) {
	store := newFakeApartmentStore()
	attachments := &mockAttachmentStore{}
	publisher := &mockPublisher{}
	svc := &ApartmentService{
		ApartmentRepo:  store,
		ServiceTagRepo: &fakeServiceTagStore{tags: catalog, apartments: store},
		Attachments:    attachments,
		Events:         publisher,
		Logger:         logger.Nop(),
		QueryTimeout:   time.Second,
	}
	image := testImage()

	attachments.On("Save", mock.Anything, mock.MatchedBy(func(a models.Attachment) bool {
		return a.Filename == "loft.jpg"
	})).Return("https://cdn.example.com/images/abc.jpg", nil).Once()
	publisher.On("Publish", mock.Anything, events.SubjectApartmentCreated, events.ApartmentCreated{
		ApartmentID: 1,
		OwnerID:     9,
		Services:    []int{2},
		Image:       "https://cdn.example.com/images/abc.jpg",
	}).Return(nil).Once()

	in := validApartmentInput()
	in.Services = []int{2, 2}
	id, err := svc.CreateApartment(context.Background(), 9, in, image)

	require.NoError(t, err)
	assert.Equal(t, 1, id)
	assert.Equal(t, "https://cdn.example.com/images/abc.jpg", store.apartments[1].Image)
	attachments.AssertExpectations(t)
	publisher.AssertExpectations(t)
}

func TestCreateApartmentPublishFailureIsNotFatal(t *testing.T) {
	store := newFakeApartmentStore()
	attachments := &mockAttachmentStore{}
	publisher := &mockPublisher{}
	svc := &ApartmentService{
		ApartmentRepo:  store,
		ServiceTagRepo: &fakeServiceTagStore{tags: catalog},
		Attachments:    attachments,
		Events:         publisher,
		Logger:         logger.Nop(),
	}

	attachments.On("Save", mock.Anything, mock.Anything).Return("/uploads/a.jpg", nil)
	publisher.On("Publish", mock.Anything, mock.Anything, mock.Anything).Return(assert.AnError)

	_, err := svc.CreateApartment(context.Background(), 1, validApartmentInput(), testImage())

	assert.NoError(t, err)
	publisher.AssertNumberOfCalls(t, "Publish", 1)
}
