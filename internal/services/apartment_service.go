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

type ApartmentService struct {
	ApartmentRepo  ApartmentStore
	OwnerRepo      OwnerStore
	ServiceTagRepo ServiceTagStore
	ReviewRepo     ReviewStore
	Attachments    AttachmentStore
	Cache          DetailCache
	Events         EventPublisher
	Notifier       RankingNotifier
	Metrics        *metrics.Metrics
	Logger         logger.Logger
	QueryTimeout   time.Duration
	UploadTimeout  time.Duration
}

func (s *ApartmentService) upstream(op string, err error) error {
	s.Metrics.UpstreamError(op)
	return &models.UpstreamError{Op: op, Err: err}
}

// GetApartments returns the index ordered by vote, most popular first.
func (s *ApartmentService) GetApartments(ctx context.Context) ([]models.Apartment, error) {
	qctx, cancel := withStoreTimeout(ctx, s.QueryTimeout)
	defer cancel()

	apartments, err := s.ApartmentRepo.GetApartments(qctx)
	if err != nil {
		return nil, s.upstream("list apartments", err)
	}
	if apartments == nil {
		apartments = []models.Apartment{}
	}
	return apartments, nil
}

func (s *ApartmentService) GetServiceTags(ctx context.Context) ([]models.ServiceTag, error) {
	qctx, cancel := withStoreTimeout(ctx, s.QueryTimeout)
	defer cancel()

	tags, err := s.ServiceTagRepo.GetServiceTags(qctx)
	if err != nil {
		return nil, s.upstream("list services", err)
	}
	if tags == nil {
		tags = []models.ServiceTag{}
	}
	return tags, nil
}

// GetApartmentDetail assembles the composite view: apartment, then owner,
// service labels and reviews. The first failing step aborts the whole view.
// Only the apartment lookup can yield ErrApartmentNotFound.
func (s *ApartmentService) GetApartmentDetail(ctx context.Context, id int) (*models.ApartmentDetail, error) {
	if detail := s.cachedDetail(ctx, id); detail != nil {
		return detail, nil
	}
	version, cacheable := s.detailVersion(ctx, id)

	apartment, err := s.fetchApartment(ctx, id)
	if err != nil {
		return nil, err
	}
	detail := &models.ApartmentDetail{Apartment: apartment}

	if detail.Owner, err = s.fetchOwner(ctx, id); err != nil {
		return nil, err
	}
	if detail.Services, err = s.fetchServiceLabels(ctx, id); err != nil {
		return nil, err
	}
	if detail.Reviews, err = s.fetchReviews(ctx, id); err != nil {
		return nil, err
	}

	if cacheable {
		if err := s.Cache.SetDetail(ctx, detail, version); err != nil {
			s.logf("cache apartment %d: %v", id, err)
		}
	}
	return detail, nil
}

func (s *ApartmentService) fetchApartment(ctx context.Context, id int) (models.Apartment, error) {
	qctx, cancel := withStoreTimeout(ctx, s.QueryTimeout)
	defer cancel()

	apartment, err := s.ApartmentRepo.GetApartmentByID(qctx, id)
	if errors.Is(err, models.ErrApartmentNotFound) {
		return models.Apartment{}, err
	}
	if err != nil {
		return models.Apartment{}, s.upstream("get apartment", err)
	}
	return apartment, nil
}

func (s *ApartmentService) fetchOwner(ctx context.Context, id int) (*models.Owner, error) {
	qctx, cancel := withStoreTimeout(ctx, s.QueryTimeout)
	defer cancel()

	owner, err := s.OwnerRepo.GetOwnerByApartmentID(qctx, id)
	if err != nil {
		return nil, s.upstream("get owner", err)
	}
	return owner, nil
}

func (s *ApartmentService) fetchServiceLabels(ctx context.Context, id int) ([]string, error) {
	qctx, cancel := withStoreTimeout(ctx, s.QueryTimeout)
	defer cancel()

	labels, err := s.ServiceTagRepo.GetLabelsByApartmentID(qctx, id)
	if err != nil {
		return nil, s.upstream("get services", err)
	}
	if labels == nil {
		labels = []string{}
	}
	return labels, nil
}

func (s *ApartmentService) fetchReviews(ctx context.Context, id int) ([]models.Review, error) {
	qctx, cancel := withStoreTimeout(ctx, s.QueryTimeout)
	defer cancel()

	reviews, err := s.ReviewRepo.GetReviewsByApartmentID(qctx, id)
	if err != nil {
		return nil, s.upstream("get reviews", err)
	}
	if reviews == nil {
		reviews = []models.Review{}
	}
	return reviews, nil
}

// CreateApartment runs the creation workflow: validate, check the services
// catalog, store the image, then insert the apartment with its service rows
// in one transaction. The stored image is kept even if the insert fails.
func (s *ApartmentService) CreateApartment(ctx context.Context, ownerID int, in models.ApartmentInput, image *models.Attachment) (int, error) {
	if err := ValidateApartment(in); err != nil {
		return 0, err
	}
	if image == nil {
		return 0, models.ErrAttachmentMissing
	}

	serviceIDs := uniqueServiceIDs(in.Services)
	if len(serviceIDs) > 0 {
		qctx, cancel := withStoreTimeout(ctx, s.QueryTimeout)
		existing, err := s.ServiceTagRepo.FilterExistingIDs(qctx, serviceIDs)
		cancel()
		if err != nil {
			return 0, s.upstream("check services", err)
		}
		if missing := missingServiceIDs(serviceIDs, existing); len(missing) > 0 {
			return 0, unknownServicesError(missing)
		}
	}

	imagePath, err := s.saveAttachment(ctx, *image)
	if err != nil {
		return 0, err
	}

	apartment := models.Apartment{
		OwnerID:      ownerID,
		Title:        in.Title,
		Rooms:        in.Rooms,
		Beds:         in.Beds,
		Bathrooms:    in.Bathrooms,
		SquareMeters: in.SquareMeters,
		Address:      in.Address,
		City:         in.City,
		Image:        imagePath,
	}

	qctx, cancel := withStoreTimeout(ctx, s.QueryTimeout)
	defer cancel()

	id, err := s.ApartmentRepo.CreateApartment(qctx, apartment, serviceIDs)
	if err != nil {
		s.logf("create apartment failed, image %s left in storage: %v", imagePath, err)
		return 0, s.upstream("create apartment", err)
	}

	s.Metrics.ApartmentCreated()
	s.publish(ctx, events.SubjectApartmentCreated, events.ApartmentCreated{
		ApartmentID: id,
		OwnerID:     ownerID,
		Services:    serviceIDs,
		Image:       imagePath,
	})
	return id, nil
}

// saveAttachment runs under UploadTimeout, falling back to QueryTimeout when
// it is unset.
func (s *ApartmentService) saveAttachment(ctx context.Context, image models.Attachment) (string, error) {
	timeout := s.UploadTimeout
	if timeout <= 0 {
		timeout = s.QueryTimeout
	}
	qctx, cancel := withStoreTimeout(ctx, timeout)
	defer cancel()

	path, err := s.Attachments.Save(qctx, image)
	if err != nil {
		return "", s.upstream("save attachment", err)
	}
	return path, nil
}

// VoteApartment adds one vote and returns the whole re-ranked index.
func (s *ApartmentService) VoteApartment(ctx context.Context, id int) ([]models.Apartment, error) {
	qctx, cancel := withStoreTimeout(ctx, s.QueryTimeout)
	err := s.ApartmentRepo.IncrementVote(qctx, id)
	cancel()
	if errors.Is(err, models.ErrApartmentNotFound) {
		return nil, err
	}
	if err != nil {
		return nil, s.upstream("vote apartment", err)
	}

	s.Metrics.VoteCast()
	s.invalidate(ctx, id)
	s.publish(ctx, events.SubjectApartmentVoted, events.ApartmentVoted{ApartmentID: id})

	ranking, err := s.GetApartments(ctx)
	if err != nil {
		return nil, err
	}
	if s.Notifier != nil {
		s.Notifier.NotifyRanking(ranking)
	}
	return ranking, nil
}

func (s *ApartmentService) cachedDetail(ctx context.Context, id int) *models.ApartmentDetail {
	if s.Cache == nil {
		return nil
	}
	detail, err := s.Cache.GetDetail(ctx, id)
	if err != nil {
		s.logf("read cached apartment %d: %v", id, err)
		return nil
	}
	return detail
}

// detailVersion must be read before any store fetch so that a review or vote
// landing mid-assembly makes the write-back stale.
func (s *ApartmentService) detailVersion(ctx context.Context, id int) (int64, bool) {
	if s.Cache == nil {
		return 0, false
	}
	version, err := s.Cache.DetailVersion(ctx, id)
	if err != nil {
		s.logf("read cache version of apartment %d: %v", id, err)
		return 0, false
	}
	return version, true
}

func (s *ApartmentService) invalidate(ctx context.Context, id int) {
	if s.Cache == nil {
		return
	}
	if err := s.Cache.InvalidateDetail(ctx, id); err != nil {
		s.logf("invalidate apartment %d: %v", id, err)
	}
}

func (s *ApartmentService) publish(ctx context.Context, subject string, payload interface{}) {
	if s.Events == nil {
		return
	}
	if err := s.Events.Publish(ctx, subject, payload); err != nil {
		s.logf("publish %s: %v", subject, err)
	}
}

func (s *ApartmentService) logf(format string, args ...interface{}) {
	if s.Logger != nil {
		s.Logger.Warnf(format, args...)
	}
}
