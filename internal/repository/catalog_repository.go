package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/opencampus/timetable-api/internal/models"
)

// CatalogRepository reads externally owned catalog data: class offerings and
// rooms. This service never writes the catalog.
type CatalogRepository struct {
	db       *sqlx.DB
	observer QueryObserver
}

// NewCatalogRepository creates a new catalog repository.
func NewCatalogRepository(db *sqlx.DB, observer QueryObserver) *CatalogRepository {
	return &CatalogRepository{db: db, observer: observer}
}

type offeringRow struct {
	models.ClassOffering
	Features pq.StringArray `db:"required_features"`
}

type roomRow struct {
	models.Room
	Tags pq.StringArray `db:"feature_tags"`
}

// ListOfferings returns all class offerings.
func (r *CatalogRepository) ListOfferings(ctx context.Context) ([]models.ClassOffering, error) {
	query := `SELECT id, course_code, course_name, section, teacher_name, lec_hours, lab_hours, degree_program, year_level, department, required_features
		FROM class_offerings ORDER BY course_code, section`
	defer observeQuery(r.observer, "catalog.list_offerings", time.Now())
	var rows []offeringRow
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("list offerings: %w", err)
	}
	offerings := make([]models.ClassOffering, 0, len(rows))
	for _, row := range rows {
		offering := row.ClassOffering
		offering.RequiredFeatures = row.Features
		offerings = append(offerings, offering)
	}
	return offerings, nil
}

// FindOffering loads one class offering by id.
func (r *CatalogRepository) FindOffering(ctx context.Context, id string) (*models.ClassOffering, error) {
	query := `SELECT id, course_code, course_name, section, teacher_name, lec_hours, lab_hours, degree_program, year_level, department, required_features
		FROM class_offerings WHERE id = $1`
	defer observeQuery(r.observer, "catalog.find_offering", time.Now())
	var row offeringRow
	if err := r.db.GetContext(ctx, &row, query, id); err != nil {
		return nil, err
	}
	offering := row.ClassOffering
	offering.RequiredFeatures = row.Features
	return &offering, nil
}

// ListRooms returns all bookable rooms.
func (r *CatalogRepository) ListRooms(ctx context.Context) ([]models.Room, error) {
	query := `SELECT id, name, building, capacity, feature_tags, created_at FROM rooms ORDER BY building, name`
	defer observeQuery(r.observer, "catalog.list_rooms", time.Now())
	var rows []roomRow
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("list rooms: %w", err)
	}
	rooms := make([]models.Room, 0, len(rows))
	for _, row := range rows {
		room := row.Room
		room.FeatureTags = row.Tags
		rooms = append(rooms, room)
	}
	return rooms, nil
}

// FindRoom loads one room by id.
func (r *CatalogRepository) FindRoom(ctx context.Context, id string) (*models.Room, error) {
	query := `SELECT id, name, building, capacity, feature_tags, created_at FROM rooms WHERE id = $1`
	defer observeQuery(r.observer, "catalog.find_room", time.Now())
	var row roomRow
	if err := r.db.GetContext(ctx, &row, query, id); err != nil {
		return nil, err
	}
	room := row.Room
	room.FeatureTags = row.Tags
	return &room, nil
}
