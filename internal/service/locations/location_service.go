package locations

import (
	"context"

	"github.com/gmelashvili/paraglide/internal/domain"
	"github.com/gmelashvili/paraglide/internal/repository"
)

type LocationUseCase interface {
	List(ctx context.Context) ([]domain.Location, error)
	GetByID(ctx context.Context, id int64) (*domain.Location, error)
}

type LocationCache interface {
	GetLocations(ctx context.Context) ([]domain.Location, error)
	SetLocations(ctx context.Context, locations []domain.Location) error
	GetLocation(ctx context.Context, id int64) (*domain.Location, error)
	SetLocation(ctx context.Context, location *domain.Location) error
}

type LocationService struct {
	repo  repository.LocationRepository
	cache LocationCache
}

func NewLocationService(repo repository.LocationRepository, cache LocationCache) *LocationService {
	return &LocationService{repo: repo, cache: cache}
}

func (s *LocationService) List(ctx context.Context) ([]domain.Location, error) {
	if s.cache != nil {
		if cached, err := s.cache.GetLocations(ctx); err == nil && cached != nil {
			return cached, nil
		}
	}

	locations, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		_ = s.cache.SetLocations(ctx, locations)
	}
	return locations, nil
}

func (s *LocationService) GetByID(ctx context.Context, id int64) (*domain.Location, error) {
	if s.cache != nil {
		if cached, err := s.cache.GetLocation(ctx, id); err == nil && cached != nil {
			return cached, nil
		}
	}

	location, err := s.repo.GetByID(ctx, id)
	if err != nil || location == nil {
		return location, err
	}
	if s.cache != nil {
		_ = s.cache.SetLocation(ctx, location)
	}
	return location, nil
}

var _ LocationUseCase = (*LocationService)(nil)
