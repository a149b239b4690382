package locations

import (
	"context"
	"errors"
	"testing"

	"github.com/gmelashvili/paraglide/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockLocationRepository struct {
	mock.Mock
}

func (m *MockLocationRepository) List(ctx context.Context) ([]domain.Location, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Location), args.Error(1)
}

func (m *MockLocationRepository) GetByID(ctx context.Context, id int64) (*domain.Location, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Location), args.Error(1)
}

type MockLocationCache struct {
	mock.Mock
}

func (m *MockLocationCache) GetLocations(ctx context.Context) ([]domain.Location, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Location), args.Error(1)
}

func (m *MockLocationCache) SetLocations(ctx context.Context, locations []domain.Location) error {
	args := m.Called(ctx, locations)
	return args.Error(0)
}

func (m *MockLocationCache) GetLocation(ctx context.Context, id int64) (*domain.Location, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Location), args.Error(1)
}

func (m *MockLocationCache) SetLocation(ctx context.Context, location *domain.Location) error {
	args := m.Called(ctx, location)
	return args.Error(0)
}

func testLocations() []domain.Location {
	return []domain.Location{
		{ID: 10, Name: "Gudauri", CountryName: "Georgia"},
		{ID: 20, Name: "Kazbegi", CountryName: "Georgia"},
	}
}

func TestLocationService_List_CacheHit(t *testing.T) {
	mockRepo := &MockLocationRepository{}
	mockCache := &MockLocationCache{}
	service := NewLocationService(mockRepo, mockCache)
	ctx := context.Background()

	mockCache.On("GetLocations", ctx).Return(testLocations(), nil).Once()

	result, err := service.List(ctx)

	assert.NoError(t, err)
	assert.Len(t, result, 2)

	mockCache.AssertExpectations(t)
	mockRepo.AssertNotCalled(t, "List")
}

func TestLocationService_List_CacheMiss(t *testing.T) {
	mockRepo := &MockLocationRepository{}
	mockCache := &MockLocationCache{}
	service := NewLocationService(mockRepo, mockCache)
	ctx := context.Background()

	locations := testLocations()
	mockCache.On("GetLocations", ctx).Return(nil, nil).Once()
	mockRepo.On("List", ctx).Return(locations, nil).Once()
	mockCache.On("SetLocations", ctx, locations).Return(nil).Once()

	result, err := service.List(ctx)

	assert.NoError(t, err)
	assert.Equal(t, locations, result)

	mockRepo.AssertExpectations(t)
	mockCache.AssertExpectations(t)
}

func TestLocationService_List_CacheErrorFallsThrough(t *testing.T) {
	mockRepo := &MockLocationRepository{}
	mockCache := &MockLocationCache{}
	service := NewLocationService(mockRepo, mockCache)
	ctx := context.Background()

	locations := testLocations()
	mockCache.On("GetLocations", ctx).Return(nil, errors.New("redis down")).Once()
	mockRepo.On("List", ctx).Return(locations, nil).Once()
	mockCache.On("SetLocations", ctx, locations).Return(nil).Once()

	result, err := service.List(ctx)

	assert.NoError(t, err)
	assert.Len(t, result, 2)
}

func TestLocationService_List_RepoError(t *testing.T) {
	mockRepo := &MockLocationRepository{}
	mockCache := &MockLocationCache{}
	service := NewLocationService(mockRepo, mockCache)
	ctx := context.Background()

	mockCache.On("GetLocations", ctx).Return(nil, nil).Once()
	mockRepo.On("List", ctx).Return(nil, errors.New("database error")).Once()

	result, err := service.List(ctx)

	assert.Error(t, err)
	assert.Nil(t, result)

	mockCache.AssertNotCalled(t, "SetLocations")
}

func TestLocationService_List_WithoutCache(t *testing.T) {
	mockRepo := &MockLocationRepository{}
	service := NewLocationService(mockRepo, nil)
	ctx := context.Background()

	mockRepo.On("List", ctx).Return(testLocations(), nil).Once()

	result, err := service.List(ctx)

	assert.NoError(t, err)
	assert.Len(t, result, 2)
}

func TestLocationService_GetByID_CacheHit(t *testing.T) {
	mockRepo := &MockLocationRepository{}
	mockCache := &MockLocationCache{}
	service := NewLocationService(mockRepo, mockCache)
	ctx := context.Background()

	location := &domain.Location{ID: 10, Name: "Gudauri"}
	mockCache.On("GetLocation", ctx, int64(10)).Return(location, nil).Once()

	result, err := service.GetByID(ctx, 10)

	assert.NoError(t, err)
	assert.Equal(t, location, result)

	mockRepo.AssertNotCalled(t, "GetByID")
}

func TestLocationService_GetByID_CacheMiss(t *testing.T) {
	mockRepo := &MockLocationRepository{}
	mockCache := &MockLocationCache{}
	service := NewLocationService(mockRepo, mockCache)
	ctx := context.Background()

	location := &domain.Location{ID: 10, Name: "Gudauri"}
	mockCache.On("GetLocation", ctx, int64(10)).Return(nil, nil).Once()
	mockRepo.On("GetByID", ctx, int64(10)).Return(location, nil).Once()
	mockCache.On("SetLocation", ctx, location).Return(nil).Once()

	result, err := service.GetByID(ctx, 10)

	assert.NoError(t, err)
	assert.Equal(t, location, result)

	mockCache.AssertExpectations(t)
}

func TestLocationService_GetByID_NotFound(t *testing.T) {
	mockRepo := &MockLocationRepository{}
	mockCache := &MockLocationCache{}
	service := NewLocationService(mockRepo, mockCache)
	ctx := context.Background()

	mockCache.On("GetLocation", ctx, int64(99)).Return(nil, nil).Once()
	mockRepo.On("GetByID", ctx, int64(99)).Return(nil, nil).Once()

	result, err := service.GetByID(ctx, 99)

	assert.NoError(t, err)
	assert.Nil(t, result)

	// A miss is never cached.
	mockCache.AssertNotCalled(t, "SetLocation")
}
