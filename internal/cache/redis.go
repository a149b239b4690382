package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/gmelashvili/paraglide/config"
	"github.com/gmelashvili/paraglide/internal/domain"
	"github.com/redis/go-redis/v9"
)

type RedisCache struct {
	client       *redis.Client
	locationsTTL time.Duration
}

func NewRedisCache(cfg config.RedisConfig, locationsTTL time.Duration) *RedisCache {
	return &RedisCache{
		client:       redis.NewClient(&redis.Options{Addr: cfg.Addr, Password: cfg.Password, DB: cfg.DB}),
		locationsTTL: locationsTTL,
	}
}

func (c *RedisCache) GetLocations(ctx context.Context) ([]domain.Location, error) {
	data, err := c.client.Get(ctx, locationsKey()).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, err
	}

	var locations []domain.Location
	if err := json.Unmarshal(data, &locations); err != nil {
		return nil, err
	}
	return locations, nil
}

func (c *RedisCache) SetLocations(ctx context.Context, locations []domain.Location) error {
	payload, err := json.Marshal(locations)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, locationsKey(), payload, c.locationsTTL).Err()
}

func (c *RedisCache) GetLocation(ctx context.Context, id int64) (*domain.Location, error) {
	data, err := c.client.Get(ctx, locationKey(id)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, err
	}

	var location domain.Location
	if err := json.Unmarshal(data, &location); err != nil {
		return nil, err
	}
	return &location, nil
}

func (c *RedisCache) SetLocation(ctx context.Context, location *domain.Location) error {
	payload, err := json.Marshal(location)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, locationKey(location.ID), payload, c.locationsTTL).Err()
}

func locationsKey() string {
	return "cache:locations"
}

func locationKey(id int64) string {
	return fmt.Sprintf("cache:location:%d", id)
}
