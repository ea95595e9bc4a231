package service

import (
	"context"
	"database/sql"
	"time"

	"go.uber.org/zap"

	"github.com/opencampus/timetable-api/internal/dto"
	"github.com/opencampus/timetable-api/internal/models"
	appErrors "github.com/opencampus/timetable-api/pkg/errors"
)

type catalogRepository interface {
	ListOfferings(ctx context.Context) ([]models.ClassOffering, error)
	FindOffering(ctx context.Context, id string) (*models.ClassOffering, error)
	ListRooms(ctx context.Context) ([]models.Room, error)
	FindRoom(ctx context.Context, id string) (*models.Room, error)
}

type catalogCache interface {
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
}

const (
	cacheKeyOfferings = "catalog:offerings"
	cacheKeyRooms     = "catalog:rooms"
)

// CatalogServiceConfig tunes catalog caching.
type CatalogServiceConfig struct {
	CacheEnabled bool
	CacheTTL     time.Duration
}

// CatalogService serves the read-only course and room catalog backing the
// editor palette, with a Redis read-through cache in front of Postgres.
type CatalogService struct {
	repo    catalogRepository
	cache   catalogCache
	metrics *MetricsService
	logger  *zap.Logger
	cfg     CatalogServiceConfig
}

// NewCatalogService constructs a CatalogService.
func NewCatalogService(repo catalogRepository, cache catalogCache, metrics *MetricsService, cfg CatalogServiceConfig, logger *zap.Logger) *CatalogService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.CacheTTL <= 0 {
		cfg.CacheTTL = 10 * time.Minute
	}
	return &CatalogService{repo: repo, cache: cache, metrics: metrics, logger: logger, cfg: cfg}
}

// ListOfferings returns every class offering.
func (s *CatalogService) ListOfferings(ctx context.Context) ([]dto.OfferingResponse, error) {
	var cached []dto.OfferingResponse
	if s.cacheLookup(ctx, cacheKeyOfferings, &cached) {
		return cached, nil
	}

	offerings, err := s.repo.ListOfferings(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list offerings")
	}
	out := make([]dto.OfferingResponse, 0, len(offerings))
	for _, offering := range offerings {
		out = append(out, offeringResponse(offering))
	}
	s.cacheStore(ctx, cacheKeyOfferings, out)
	return out, nil
}

// GetOffering returns one class offering by id.
func (s *CatalogService) GetOffering(ctx context.Context, id string) (*dto.OfferingResponse, error) {
	offering, err := s.repo.FindOffering(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "class offering not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to get offering")
	}
	resp := offeringResponse(*offering)
	return &resp, nil
}

// ListRooms returns every bookable room.
func (s *CatalogService) ListRooms(ctx context.Context) ([]dto.RoomResponse, error) {
	var cached []dto.RoomResponse
	if s.cacheLookup(ctx, cacheKeyRooms, &cached) {
		return cached, nil
	}

	rooms, err := s.repo.ListRooms(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list rooms")
	}
	out := make([]dto.RoomResponse, 0, len(rooms))
	for _, room := range rooms {
		out = append(out, roomResponse(room))
	}
	s.cacheStore(ctx, cacheKeyRooms, out)
	return out, nil
}

// GetRoom returns one room by id.
func (s *CatalogService) GetRoom(ctx context.Context, id string) (*dto.RoomResponse, error) {
	room, err := s.repo.FindRoom(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "room not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to get room")
	}
	resp := roomResponse(*room)
	return &resp, nil
}

func (s *CatalogService) cacheLookup(ctx context.Context, key string, dest interface{}) bool {
	if !s.cfg.CacheEnabled || s.cache == nil {
		return false
	}
	start := time.Now()
	err := s.cache.Get(ctx, key, dest)
	hit := err == nil
	if s.metrics != nil {
		s.metrics.RecordCacheOperation(hit, time.Since(start))
	}
	if err != nil && err != appErrors.ErrCacheMiss {
		s.logger.Warn("catalog cache lookup failed", zap.String("key", key), zap.Error(err))
	}
	return hit
}

func (s *CatalogService) cacheStore(ctx context.Context, key string, value interface{}) {
	if !s.cfg.CacheEnabled || s.cache == nil {
		return
	}
	start := time.Now()
	if err := s.cache.Set(ctx, key, value, s.cfg.CacheTTL); err != nil {
		s.logger.Warn("catalog cache store failed", zap.String("key", key), zap.Error(err))
		return
	}
	if s.metrics != nil {
		s.metrics.ObserveCacheWrite(time.Since(start))
	}
}

func offeringResponse(offering models.ClassOffering) dto.OfferingResponse {
	return dto.OfferingResponse{
		ID:               offering.ID,
		CourseCode:       offering.CourseCode,
		CourseName:       offering.CourseName,
		Section:          offering.Section,
		TeacherName:      offering.TeacherName,
		LecHours:         offering.LecHours,
		LabHours:         offering.LabHours,
		WeeklyHours:      offering.WeeklyHours(),
		DegreeProgram:    offering.DegreeProgram,
		YearLevel:        offering.YearLevel,
		Department:       offering.Department,
		RequiredFeatures: offering.RequiredFeatures,
	}
}

func roomResponse(room models.Room) dto.RoomResponse {
	return dto.RoomResponse{
		ID:          room.ID,
		Name:        room.Name,
		Building:    room.Building,
		Capacity:    room.Capacity,
		FeatureTags: room.FeatureTags,
	}
}
