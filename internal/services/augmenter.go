package services

import (
	"context"
	"strings"

	"github.com/paulmach/orb/geojson"

	"trailmap/internal/models/response_models"
)

// Augmenter fills the source-specific extended fields of a POI. It is an
// external collaborator from the engine's point of view.
type Augmenter interface {
	Augment(ctx context.Context, poi *response_models.PointOfInterestExtended, feature *geojson.Feature, language string) error
}

// TagAugmenter derives the extended fields from the stored feature itself:
// the per-language titles and descriptions a client needs to populate an
// edit form, and the current icon value the update path compares against.
type TagAugmenter struct {
	defaultLanguage string
}

func NewTagAugmenter(defaultLanguage string) *TagAugmenter {
	return &TagAugmenter{defaultLanguage: defaultLanguage}
}

func (a *TagAugmenter) Augment(_ context.Context, poi *response_models.PointOfInterestExtended, feature *geojson.Feature, _ string) error {
	poi.CurrentIcon, _ = feature.Properties["icon"].(string)
	poi.TitleByLanguage = byLanguage(feature, "name", a.defaultLanguage)
	poi.DescriptionByLanguage = byLanguage(feature, "description", a.defaultLanguage)
	poi.Augmentation = map[string]interface{}{
		"identifier": feature.Properties["identifier"],
		"category":   feature.Properties["category"],
	}
	return nil
}

func byLanguage(feature *geojson.Feature, key, defaultLanguage string) map[string]string {
	out := map[string]string{}
	for k, v := range feature.Properties {
		value, ok := v.(string)
		if !ok || value == "" {
			continue
		}
		if strings.HasPrefix(k, key+":") {
			out[strings.TrimPrefix(k, key+":")] = value
		}
	}
	// The base key holds the default language and wins over a stray
	// qualified duplicate.
	if base, ok := feature.Properties[key].(string); ok && base != "" {
		out[defaultLanguage] = base
	}
	return out
}
