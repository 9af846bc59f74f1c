package services

import (
	"context"
	"time"

	"bnbBack/internal/models"
)

type ApartmentStore interface {
	GetApartments(ctx context.Context) ([]models.Apartment, error)
	GetApartmentByID(ctx context.Context, id int) (models.Apartment, error)
	IncrementVote(ctx context.Context, id int) error
	CreateApartment(ctx context.Context, apartment models.Apartment, serviceIDs []int) (int, error)
}

type OwnerStore interface {
	GetOwnerByApartmentID(ctx context.Context, apartmentID int) (*models.Owner, error)
}

type ServiceTagStore interface {
	GetServiceTags(ctx context.Context) ([]models.ServiceTag, error)
	GetLabelsByApartmentID(ctx context.Context, apartmentID int) ([]string, error)
	FilterExistingIDs(ctx context.Context, ids []int) ([]int, error)
}

type ReviewStore interface {
	CreateReview(ctx context.Context, apartmentID int, in models.ReviewInput) error
	GetReviewsByApartmentID(ctx context.Context, apartmentID int) ([]models.Review, error)
}

// AttachmentStore persists an uploaded image and returns the path under which
// it is reachable.
type AttachmentStore interface {
	Save(ctx context.Context, attachment models.Attachment) (string, error)
}

// DetailCache holds composite views. Every invalidation bumps a per-apartment
// version; SetDetail drops a view built against an older version.
type DetailCache interface {
	GetDetail(ctx context.Context, id int) (*models.ApartmentDetail, error)
	DetailVersion(ctx context.Context, id int) (int64, error)
	SetDetail(ctx context.Context, detail *models.ApartmentDetail, version int64) error
	InvalidateDetail(ctx context.Context, id int) error
}

type EventPublisher interface {
	Publish(ctx context.Context, subject string, payload interface{}) error
}

// RankingNotifier receives the full ranking after every successful vote.
type RankingNotifier interface {
	NotifyRanking(apartments []models.Apartment)
}

// withStoreTimeout bounds a single store call. A zero timeout only adds
// cancellation.
func withStoreTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, timeout)
}
