package repositories

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/paulmach/orb/geojson"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"trailmap/internal/geometry"
	"trailmap/internal/models/db_models"
)

// SearchRepository is the search-index gateway: bounding-box reads, by-id
// lookup and single-feature upsert.
type SearchRepository interface {
	QueryByBoundingBox(ctx context.Context, neLat, neLng, swLat, swLng float64, categories []string) ([]*geojson.Feature, error)
	GetByID(ctx context.Context, id, source string) (*geojson.Feature, error)
	Upsert(ctx context.Context, feature *geojson.Feature) error
}

type searchRepository struct {
	db *gorm.DB
}

func NewSearchRepository(db *gorm.DB) SearchRepository {
	return &searchRepository{db: db}
}

func (r *searchRepository) QueryByBoundingBox(ctx context.Context, neLat, neLng, swLat, swLng float64, categories []string) ([]*geojson.Feature, error) {
	var rows []db_models.Feature

	q := r.db.WithContext(ctx).
		Where("lat BETWEEN ? AND ?", swLat, neLat).
		Where("lng BETWEEN ? AND ?", swLng, neLng)
	if len(categories) > 0 {
		q = q.Where("category IN ?", categories)
	}
	if err := q.Order("updated_at DESC").Find(&rows).Error; err != nil {
		return nil, err
	}

	features := make([]*geojson.Feature, 0, len(rows))
	for i := range rows {
		f, err := rowToFeature(&rows[i])
		if err != nil {
			return nil, err
		}
		features = append(features, f)
	}
	return features, nil
}

// GetByID returns nil, nil when the index has no such feature; the caller
// decides how a miss surfaces.
func (r *searchRepository) GetByID(ctx context.Context, id, source string) (*geojson.Feature, error) {
	var row db_models.Feature
	err := r.db.WithContext(ctx).
		First(&row, "id = ? AND source = ?", id, source).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return rowToFeature(&row)
}

func (r *searchRepository) Upsert(ctx context.Context, feature *geojson.Feature) error {
	row, err := featureToRow(feature)
	if err != nil {
		return err
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}, {Name: "source"}},
			UpdateAll: true,
		}).
		Create(row).Error
}

func rowToFeature(row *db_models.Feature) (*geojson.Feature, error) {
	geom, err := geojson.UnmarshalGeometry(row.Geometry)
	if err != nil {
		return nil, err
	}
	f := geojson.NewFeature(geom.Geometry())
	f.ID = row.ID
	if len(row.Properties) > 0 {
		if err := json.Unmarshal(row.Properties, &f.Properties); err != nil {
			return nil, err
		}
	}
	// The row columns are authoritative for the identifying properties.
	f.Properties["identifier"] = row.ID
	f.Properties["source"] = row.Source
	f.Properties["icon"] = row.Icon
	f.Properties["category"] = row.Category
	return f, nil
}

func featureToRow(f *geojson.Feature) (*db_models.Feature, error) {
	id, _ := f.Properties["identifier"].(string)
	source, _ := f.Properties["source"].(string)
	icon, _ := f.Properties["icon"].(string)
	category, _ := f.Properties["category"].(string)

	geomJSON, err := geojson.NewGeometry(f.Geometry).MarshalJSON()
	if err != nil {
		return nil, err
	}
	props, err := json.Marshal(f.Properties)
	if err != nil {
		return nil, err
	}
	centroid := geometry.Centroid(f.Geometry)

	return &db_models.Feature{
		ID:         id,
		Source:     source,
		Category:   category,
		Icon:       icon,
		Lat:        centroid.Lat(),
		Lng:        centroid.Lon(),
		Geometry:   geomJSON,
		Properties: props,
	}, nil
}
