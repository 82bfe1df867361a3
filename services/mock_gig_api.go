package services

import (
	"context"

	"gig-web/models"
	"github.com/stretchr/testify/mock"
)

// ✅ Ensure MockGigAPI implements GigAPI
var _ GigAPI = (*MockGigAPI)(nil)

// MockGigAPI is a mock implementation for testing and extends `mock.Mock`
type MockGigAPI struct {
	mock.Mock
}

// GetCategories (Mocked)
func (m *MockGigAPI) GetCategories(ctx context.Context) ([]models.Category, error) {
	args := m.Called(ctx)
	categories, _ := args.Get(0).([]models.Category)
	return categories, args.Error(1)
}

// CreateGig (Mocked)
func (m *MockGigAPI) CreateGig(ctx context.Context, payload *Payload) error {
	args := m.Called(ctx, payload)
	return args.Error(0)
}

// GetGig (Mocked)
func (m *MockGigAPI) GetGig(ctx context.Context, id string) (models.Gig, error) {
	args := m.Called(ctx, id)
	gig, _ := args.Get(0).(models.Gig)
	return gig, args.Error(1)
}

// UpdateGig (Mocked)
func (m *MockGigAPI) UpdateGig(ctx context.Context, id string, payload *Payload) error {
	args := m.Called(ctx, id, payload)
	return args.Error(0)
}

// ListMyGigs (Mocked)
func (m *MockGigAPI) ListMyGigs(ctx context.Context) ([]models.Gig, error) {
	args := m.Called(ctx)
	gigs, _ := args.Get(0).([]models.Gig)
	return gigs, args.Error(1)
}
