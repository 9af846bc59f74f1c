package handlers

import (
	"context"
	"io"
	"sort"
	"sync"

	"bnbBack/internal/logger"
	"bnbBack/internal/models"
	"bnbBack/internal/services"
)

type memoryStore struct {
	mu         sync.Mutex
	apartments map[int]models.Apartment
	services   map[int][]int
	reviews    map[int][]models.Review
	tags       []models.ServiceTag
	images     []string
}

func newMemoryStore() *memoryStore {
	return &memoryStore{
		apartments: map[int]models.Apartment{},
		services:   map[int][]int{},
		reviews:    map[int][]models.Review{},
		tags: []models.ServiceTag{
			{ID: 1, Label: "Wi-Fi"},
			{ID: 2, Label: "Parking"},
			{ID: 3, Label: "Air conditioning"},
		},
	}
}

func (m *memoryStore) GetApartments(ctx context.Context) ([]models.Apartment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []models.Apartment{}
	for _, a := range m.apartments {
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

func (m *memoryStore) GetApartmentByID(ctx context.Context, id int) (models.Apartment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.apartments[id]
	if !ok {
		return models.Apartment{}, models.ErrApartmentNotFound
	}
	return a, nil
}

func (m *memoryStore) IncrementVote(ctx context.Context, id int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.apartments[id]
	if !ok {
		return models.ErrApartmentNotFound
	}
	a.Vote++
	m.apartments[id] = a
	return nil
}

func (m *memoryStore) CreateApartment(ctx context.Context, a models.Apartment, serviceIDs []int) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	a.ID = len(m.apartments) + 1
	m.apartments[a.ID] = a
	m.services[a.ID] = serviceIDs
	return a.ID, nil
}

func (m *memoryStore) GetOwnerByApartmentID(ctx context.Context, apartmentID int) (*models.Owner, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.apartments[apartmentID]
	if !ok {
		return nil, nil
	}
	return &models.Owner{ID: a.OwnerID, Name: "Ada"}, nil
}

func (m *memoryStore) GetServiceTags(ctx context.Context) ([]models.ServiceTag, error) {
	return m.tags, nil
}

func (m *memoryStore) GetLabelsByApartmentID(ctx context.Context, apartmentID int) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var labels []string
	for _, id := range m.services[apartmentID] {
		for _, t := range m.tags {
			if t.ID == id {
				labels = append(labels, t.Label)
			}
		}
	}
	return labels, nil
}

func (m *memoryStore) FilterExistingIDs(ctx context.Context, ids []int) ([]int, error) {
	var out []int
	for _, id := range ids {
		for _, t := range m.tags {
			if t.ID == id {
				out = append(out, id)
			}
		}
	}
	return out, nil
}

func (m *memoryStore) CreateReview(ctx context.Context, apartmentID int, in models.ReviewInput) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.apartments[apartmentID]; !ok {
		return models.ErrApartmentNotFound
	}
	m.reviews[apartmentID] = append(m.reviews[apartmentID], models.Review{
		ID: len(m.reviews[apartmentID]) + 1, ApartmentID: apartmentID,
		Username: in.Username, Email: in.Email, Review: in.Review, Days: in.Days,
	})
	return nil
}

func (m *memoryStore) GetReviewsByApartmentID(ctx context.Context, apartmentID int) ([]models.Review, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.reviews[apartmentID], nil
}

func (m *memoryStore) Save(ctx context.Context, attachment models.Attachment) (string, error) {
	if _, err := io.ReadAll(attachment.Body); err != nil {
		return "", err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	path := "/uploads/" + attachment.Filename
	m.images = append(m.images, path)
	return path, nil
}

func newTestHandlers(store *memoryStore) (*ApartmentHandler, *ReviewHandler) {
	log := logger.Nop()
	apartments := &services.ApartmentService{
		ApartmentRepo:  store,
		OwnerRepo:      store,
		ServiceTagRepo: store,
		ReviewRepo:     store,
		Attachments:    store,
		Logger:         log,
	}
	reviews := &services.ReviewService{ReviewRepo: store, Logger: log}
	return &ApartmentHandler{Service: apartments, Logger: log}, &ReviewHandler{Service: reviews, Logger: log}
}
