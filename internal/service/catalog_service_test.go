package service

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	appErrors "github.com/opencampus/timetable-api/pkg/errors"
)

type cacheStub struct {
	values map[string][]byte
	gets   int
	sets   int
}

func newCacheStub() *cacheStub {
	return &cacheStub{values: make(map[string][]byte)}
}

func (c *cacheStub) Get(_ context.Context, key string, dest interface{}) error {
	c.gets++
	raw, ok := c.values[key]
	if !ok {
		return appErrors.ErrCacheMiss
	}
	return json.Unmarshal(raw, dest)
}

func (c *cacheStub) Set(_ context.Context, key string, value interface{}, _ time.Duration) error {
	c.sets++
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.values[key] = raw
	return nil
}

func TestCatalogServiceListOfferings(t *testing.T) {
	svc := NewCatalogService(catalogStub{}, nil, nil, CatalogServiceConfig{}, zap.NewNop())

	offerings, err := svc.ListOfferings(context.Background())
	require.NoError(t, err)
	require.Len(t, offerings, 2)
	for _, offering := range offerings {
		if offering.ID == "off-1" {
			assert.InDelta(t, 3.0, offering.WeeklyHours, 0.001)
		}
	}
}

func TestCatalogServiceCacheReadThrough(t *testing.T) {
	cache := newCacheStub()
	svc := NewCatalogService(catalogStub{}, cache, nil, CatalogServiceConfig{CacheEnabled: true, CacheTTL: time.Minute}, zap.NewNop())

	first, err := svc.ListRooms(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, cache.sets)

	second, err := svc.ListRooms(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, cache.gets)
	assert.Equal(t, 1, cache.sets)
	assert.ElementsMatch(t, first, second)
}

func TestCatalogServiceGetOfferingNotFound(t *testing.T) {
	svc := NewCatalogService(catalogStub{}, nil, nil, CatalogServiceConfig{}, zap.NewNop())

	_, err := svc.GetOffering(context.Background(), "missing")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

func TestCatalogServiceGetRoom(t *testing.T) {
	svc := NewCatalogService(catalogStub{}, nil, nil, CatalogServiceConfig{}, zap.NewNop())

	room, err := svc.GetRoom(context.Background(), "room-1")
	require.NoError(t, err)
	assert.Equal(t, "R101", room.Name)
	assert.Equal(t, "Main", room.Building)
}
