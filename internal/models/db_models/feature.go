package db_models

// Feature is one search-index document. Rows are keyed by the external
// element identifier plus the source that produced them, never by a
// surrogate id, so a re-derived feature always lands on the same row.
type Feature struct {
	ID     string `gorm:"primaryKey;size:64"`
	Source string `gorm:"primaryKey;size:32"`

	Category string `gorm:"index"`
	Icon     string

	// Centroid, used for bounding-box queries.
	Lat float64 `gorm:"index:idx_features_centroid"`
	Lng float64 `gorm:"index:idx_features_centroid"`

	Geometry   []byte `gorm:"type:jsonb"`
	Properties []byte `gorm:"type:jsonb"`

	UpdatedAt int64 `gorm:"autoUpdateTime"`
}

func (Feature) TableName() string {
	return "features"
}
