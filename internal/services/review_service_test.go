package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bnbBack/internal/events"
	"bnbBack/internal/logger"
	"bnbBack/internal/models"
)

func newReviewService(store *fakeReviewStore) (*ReviewService, *fakeCache, *fakePublisher) {
	cache := &fakeCache{}
	pub := &fakePublisher{}
	return &ReviewService{
		ReviewRepo:   store,
		Cache:        cache,
		Events:       pub,
		Logger:       logger.Nop(),
		QueryTimeout: time.Second,
	}, cache, pub
}

func validReview() models.ReviewInput {
	return models.ReviewInput{Username: "alice", Email: "alice@example.com", Review: "Lovely place", Days: 3}
}

func TestCreateReviewSuccess(t *testing.T) {
	store := &fakeReviewStore{}
	svc, cache, pub := newReviewService(store)

	require.NoError(t, svc.CreateReview(context.Background(), 4, validReview()))

	require.Len(t, store.reviews[4], 1)
	assert.Equal(t, "alice", store.reviews[4][0].Username)
	assert.Equal(t, []int{4}, cache.invalidated)
	assert.Equal(t, []string{events.SubjectReviewCreated}, pub.subjects)
}

func TestCreateReviewValidation(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*models.ReviewInput)
		message string
	}{
		{"zero days", func(in *models.ReviewInput) { in.Days = 0 }, `"days" must be greater than or equal to 1`},
		{"bad email", func(in *models.ReviewInput) { in.Email = "not-an-email" }, `"email" must be a valid email`},
		{"missing username", func(in *models.ReviewInput) { in.Username = "" }, `"username" is required`},
		{"short review", func(in *models.ReviewInput) { in.Review = "ok" }, `"review" length must be at least 3 characters long`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := &fakeReviewStore{}
			svc, _, pub := newReviewService(store)
			in := validReview()
			tt.mutate(&in)

			err := svc.CreateReview(context.Background(), 1, in)

			var verr *models.ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.message, verr.Message)
			assert.Empty(t, store.reviews)
			assert.Empty(t, pub.subjects)
		})
	}
}

func TestCreateReviewUnknownApartment(t *testing.T) {
	store := &fakeReviewStore{known: func(id int) bool { return id == 1 }}
	svc, _, _ := newReviewService(store)

	err := svc.CreateReview(context.Background(), 2, validReview())

	assert.ErrorIs(t, err, models.ErrApartmentNotFound)
}

func TestCreateReviewStoreFailure(t *testing.T) {
	store := &fakeReviewStore{err: errDBDown}
	svc, _, pub := newReviewService(store)

	err := svc.CreateReview(context.Background(), 1, validReview())

	var upstream *models.UpstreamError
	require.ErrorAs(t, err, &upstream)
	assert.Equal(t, "create review", upstream.Op)
	assert.Empty(t, pub.subjects)
}
