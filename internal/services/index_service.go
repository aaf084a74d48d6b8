package services

import (
	"context"
	"io"
	"log"
	"sort"

	"github.com/paulmach/orb/geojson"

	"trailmap/internal/preprocess"
	"trailmap/pkg/utils"
)

type IndexServiceInterface interface {
	IndexFromBulkSource(r io.Reader, ctx context.Context) ([]*geojson.Feature, error)
}

// BulkWriter replaces one source's slice of the search index wholesale.
type BulkWriter interface {
	Replace(ctx context.Context, source string, features []*geojson.Feature) error
}

// IndexService is the offline bulk-reindex path: raw source stream in,
// search-index features out. It never talks to the live OSM gateway.
type IndexService struct {
	extractor    preprocess.Extractor
	preprocessor preprocess.Preprocessor
	bulkWriter   BulkWriter
	source       string
}

func NewIndexService(
	extractor preprocess.Extractor,
	preprocessor preprocess.Preprocessor,
	bulkWriter BulkWriter,
) IndexServiceInterface {
	return &IndexService{
		extractor:    extractor,
		preprocessor: preprocessor,
		bulkWriter:   bulkWriter,
		source:       DefaultSource,
	}
}

func (s *IndexService) IndexFromBulkSource(r io.Reader, ctx context.Context) ([]*geojson.Feature, error) {
	named, err := s.extractor.Extract(ctx, r)
	if err != nil {
		log.Printf("Error extracting elements: %v", err)
		return nil, err
	}

	byName, err := s.preprocessor.Preprocess(named, s.source)
	if err != nil {
		log.Printf("Error preprocessing elements: %v", err)
		return nil, err
	}

	names := make([]string, 0, len(byName))
	for name := range byName {
		names = append(names, name)
	}
	sort.Strings(names)

	var features []*geojson.Feature
	for _, name := range names {
		features = append(features, byName[name]...)
	}

	if err := s.bulkWriter.Replace(ctx, s.source, features); err != nil {
		log.Printf("Error writing bulk features: %v", err)
		return nil, utils.ErrDatabaseError
	}
	return features, nil
}
