package repositories

import (
	"context"
	"database/sql"
	"time"

	"github.com/lib/pq"
	"github.com/paulmach/orb/geojson"
	"github.com/pkg/errors"
)

// BulkFeatureWriter replaces the index contents of one source in a single
// transaction using COPY. The offline reindex path goes through here, never
// through the per-feature upsert.
type BulkFeatureWriter struct {
	db *sql.DB
}

func NewBulkFeatureWriter(db *sql.DB) *BulkFeatureWriter {
	return &BulkFeatureWriter{db: db}
}

func (w *BulkFeatureWriter) Replace(ctx context.Context, source string, features []*geojson.Feature) (err error) {
	tx, err := w.db.BeginTx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, "starting bulk index transaction")
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		}
	}()

	if _, err = tx.ExecContext(ctx, "DELETE FROM features WHERE source = $1", source); err != nil {
		return errors.Wrapf(err, "clearing features for source %s", source)
	}

	stmt, err := tx.PrepareContext(ctx, pq.CopyIn("features",
		"id", "source", "category", "icon", "lat", "lng", "geometry", "properties", "updated_at"))
	if err != nil {
		return errors.Wrap(err, "preparing COPY")
	}

	now := time.Now().Unix()
	for _, f := range features {
		row, convErr := featureToRow(f)
		if convErr != nil {
			err = convErr
			return err
		}
		if _, err = stmt.ExecContext(ctx, row.ID, source, row.Category, row.Icon,
			row.Lat, row.Lng, row.Geometry, row.Properties, now); err != nil {
			return errors.Wrap(err, "copying feature")
		}
	}
	if _, err = stmt.ExecContext(ctx); err != nil {
		return errors.Wrap(err, "flushing COPY")
	}
	if err = stmt.Close(); err != nil {
		return errors.Wrap(err, "closing COPY statement")
	}
	return tx.Commit()
}
