package services

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"bnbBack/internal/models"
)

type fakeApartmentStore struct {
	mu           sync.Mutex
	apartments   map[int]models.Apartment
	associations map[int][]int
	nextID       int
	createErr    error
	getErr       error
	listErr      error
	creates      int
}

func newFakeApartmentStore(apartments ...models.Apartment) *fakeApartmentStore {
	s := &fakeApartmentStore{
		apartments:   map[int]models.Apartment{},
		associations: map[int][]int{},
		nextID:       1,
	}
	for _, a := range apartments {
		s.apartments[a.ID] = a
		if a.ID >= s.nextID {
			s.nextID = a.ID + 1
		}
	}
	return s
}

func (s *fakeApartmentStore) GetApartments(ctx context.Context) ([]models.Apartment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listErr != nil {
		return nil, s.listErr
	}
	out := make([]models.Apartment, 0, len(s.apartments))
	for _, a := range s.apartments {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Vote != out[j].Vote {
			return out[i].Vote > out[j].Vote
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (s *fakeApartmentStore) GetApartmentByID(ctx context.Context, id int) (models.Apartment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.getErr != nil {
		return models.Apartment{}, s.getErr
	}
	a, ok := s.apartments[id]
	if !ok {
		return models.Apartment{}, models.ErrApartmentNotFound
	}
	return a, nil
}

func (s *fakeApartmentStore) IncrementVote(ctx context.Context, id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.apartments[id]
	if !ok {
		return models.ErrApartmentNotFound
	}
	a.Vote++
	s.apartments[id] = a
	return nil
}

func (s *fakeApartmentStore) CreateApartment(ctx context.Context, apartment models.Apartment, serviceIDs []int) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.creates++
	if s.createErr != nil {
		return 0, s.createErr
	}
	apartment.ID = s.nextID
	s.nextID++
	s.apartments[apartment.ID] = apartment
	s.associations[apartment.ID] = append([]int(nil), serviceIDs...)
	return apartment.ID, nil
}

type fakeOwnerStore struct {
	owners map[int]*models.Owner
	err    error
}

func (s *fakeOwnerStore) GetOwnerByApartmentID(ctx context.Context, apartmentID int) (*models.Owner, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.owners[apartmentID], nil
}

// fakeServiceTagStore resolves labels through the apartment store's
// association rows.
type fakeServiceTagStore struct {
	tags       []models.ServiceTag
	apartments *fakeApartmentStore
	labelsErr  error
	filterErr  error
}

func (s *fakeServiceTagStore) GetServiceTags(ctx context.Context) ([]models.ServiceTag, error) {
	return s.tags, nil
}

func (s *fakeServiceTagStore) GetLabelsByApartmentID(ctx context.Context, apartmentID int) ([]string, error) {
	if s.labelsErr != nil {
		return nil, s.labelsErr
	}
	if s.apartments == nil {
		return nil, nil
	}
	s.apartments.mu.Lock()
	ids := s.apartments.associations[apartmentID]
	s.apartments.mu.Unlock()

	var labels []string
	for _, id := range ids {
		for _, t := range s.tags {
			if t.ID == id {
				labels = append(labels, t.Label)
			}
		}
	}
	return labels, nil
}

func (s *fakeServiceTagStore) FilterExistingIDs(ctx context.Context, ids []int) ([]int, error) {
	if s.filterErr != nil {
		return nil, s.filterErr
	}
	var out []int
	for _, id := range ids {
		for _, t := range s.tags {
			if t.ID == id {
				out = append(out, id)
			}
		}
	}
	return out, nil
}

type fakeReviewStore struct {
	mu       sync.Mutex
	reviews  map[int][]models.Review
	known    func(id int) bool
	err      error
	afterGet func(apartmentID int)
}

func (s *fakeReviewStore) CreateReview(ctx context.Context, apartmentID int, in models.ReviewInput) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	if s.known != nil && !s.known(apartmentID) {
		return models.ErrApartmentNotFound
	}
	if s.reviews == nil {
		s.reviews = map[int][]models.Review{}
	}
	s.reviews[apartmentID] = append(s.reviews[apartmentID], models.Review{
		ID:          len(s.reviews[apartmentID]) + 1,
		ApartmentID: apartmentID,
		Username:    in.Username,
		Email:       in.Email,
		Review:      in.Review,
		Days:        in.Days,
	})
	return nil
}

func (s *fakeReviewStore) GetReviewsByApartmentID(ctx context.Context, apartmentID int) ([]models.Review, error) {
	s.mu.Lock()
	if s.err != nil {
		s.mu.Unlock()
		return nil, s.err
	}
	reviews := append([]models.Review(nil), s.reviews[apartmentID]...)
	hook := s.afterGet
	s.afterGet = nil
	s.mu.Unlock()

	if hook != nil {
		hook(apartmentID)
	}
	return reviews, nil
}

type fakeAttachmentStore struct {
	saved    []string
	err      error
	deadline time.Time
}

func (s *fakeAttachmentStore) Save(ctx context.Context, attachment models.Attachment) (string, error) {
	s.deadline, _ = ctx.Deadline()
	if s.err != nil {
		return "", s.err
	}
	path := "/uploads/" + attachment.Filename
	s.saved = append(s.saved, path)
	return path, nil
}

type fakeCache struct {
	mu          sync.Mutex
	details     map[int]*models.ApartmentDetail
	versions    map[int]int64
	invalidated []int
}

func (c *fakeCache) GetDetail(ctx context.Context, id int) (*models.ApartmentDetail, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.details[id], nil
}

func (c *fakeCache) DetailVersion(ctx context.Context, id int) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.versions[id], nil
}

func (c *fakeCache) SetDetail(ctx context.Context, detail *models.ApartmentDetail, version int64) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.versions[detail.ID] != version {
		return nil
	}
	if c.details == nil {
		c.details = map[int]*models.ApartmentDetail{}
	}
	c.details[detail.ID] = detail
	return nil
}

func (c *fakeCache) InvalidateDetail(ctx context.Context, id int) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.versions == nil {
		c.versions = map[int]int64{}
	}
	c.versions[id]++
	delete(c.details, id)
	c.invalidated = append(c.invalidated, id)
	return nil
}

type fakePublisher struct {
	mu       sync.Mutex
	subjects []string
}

func (p *fakePublisher) Publish(ctx context.Context, subject string, payload interface{}) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.subjects = append(p.subjects, subject)
	return nil
}

type fakeNotifier struct {
	mu       sync.Mutex
	rankings [][]models.Apartment
}

func (n *fakeNotifier) NotifyRanking(apartments []models.Apartment) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.rankings = append(n.rankings, apartments)
}

// blockingApartmentStore never answers before the context is done.
type blockingApartmentStore struct {
	fakeApartmentStore
}

func (s *blockingApartmentStore) GetApartments(ctx context.Context) ([]models.Apartment, error) {
	<-ctx.Done()
	return nil, ctx.Err()
}

var errDBDown = errors.New("connection refused")
