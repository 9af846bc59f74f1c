package services

import (
	"context"
	"errors"
	"time"

	"bnbBack/internal/events"
	"bnbBack/internal/logger"
	"bnbBack/internal/metrics"
	"bnbBack/internal/models"
)

type ReviewService struct {
	ReviewRepo   ReviewStore
	Cache        DetailCache
	Events       EventPublisher
	Metrics      *metrics.Metrics
	Logger       logger.Logger
	QueryTimeout time.Duration
}

// CreateReview validates and stores an anonymous review for the apartment.
// The date is assigned by the database.
func (s *ReviewService) CreateReview(ctx context.Context, apartmentID int, in models.ReviewInput) error {
	if err := ValidateReview(in); err != nil {
		return err
	}

	qctx, cancel := withStoreTimeout(ctx, s.QueryTimeout)
	defer cancel()

	err := s.ReviewRepo.CreateReview(qctx, apartmentID, in)
	if errors.Is(err, models.ErrApartmentNotFound) {
		return err
	}
	if err != nil {
		s.Metrics.UpstreamError("create review")
		return &models.UpstreamError{Op: "create review", Err: err}
	}

	s.Metrics.ReviewCreated()
	if s.Cache != nil {
		if err := s.Cache.InvalidateDetail(ctx, apartmentID); err != nil && s.Logger != nil {
			s.Logger.Warnf("invalidate apartment %d: %v", apartmentID, err)
		}
	}
	if s.Events != nil {
		payload := events.ReviewCreated{ApartmentID: apartmentID, Days: in.Days}
		if err := s.Events.Publish(ctx, events.SubjectReviewCreated, payload); err != nil && s.Logger != nil {
			s.Logger.Warnf("publish %s: %v", events.SubjectReviewCreated, err)
		}
	}
	return nil
}
