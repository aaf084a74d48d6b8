package services

import (
	"context"
	"errors"
	"log"

	osm "github.com/omniscale/go-osm"
	"github.com/paulmach/orb/geojson"

	"trailmap/internal/gateways/osmgw"
	"trailmap/internal/geometry"
	"trailmap/internal/metrics"
	"trailmap/internal/models/request_models"
	"trailmap/internal/models/response_models"
	"trailmap/internal/preprocess"
	"trailmap/internal/repositories"
	"trailmap/internal/tagging"
	"trailmap/pkg/utils"
)

const (
	createChangesetComment = "Added a point of interest via Trailmap"
	updateChangesetComment = "Updated a point of interest via Trailmap"

	// DefaultSource is the source tag of features derived from the live
	// OSM store.
	DefaultSource = "osm"
)

type POIServiceInterface interface {
	List(bbox request_models.BoundingBoxRequest, categories []string, language string, ctx context.Context) ([]response_models.PointOfInterest, error)
	GetByID(id, source, language string, ctx context.Context) (response_models.PointOfInterestExtended, error)
	Create(req request_models.CreatePoiRequest, creds osmgw.Credentials, language string, ctx context.Context) (string, error)
	Update(req request_models.UpdatePoiRequest, creds osmgw.Credentials, language string, ctx context.Context) (string, error)
}

// PoiService coordinates the search index and the OSM store under the
// write-through contract: edits commit to OSM first, the index is re-derived
// from the committed element only after the changeset closed successfully.
type PoiService struct {
	searchRepo   repositories.SearchRepository
	osmFactory   osmgw.Factory
	preprocessor preprocess.Preprocessor
	augmenter    Augmenter
	reconciler   *tagging.Reconciler
}

func NewPOIService(
	searchRepo repositories.SearchRepository,
	osmFactory osmgw.Factory,
	preprocessor preprocess.Preprocessor,
	augmenter Augmenter,
	reconciler *tagging.Reconciler,
) POIServiceInterface {
	return &PoiService{
		searchRepo:   searchRepo,
		osmFactory:   osmFactory,
		preprocessor: preprocessor,
		augmenter:    augmenter,
		reconciler:   reconciler,
	}
}

func (s *PoiService) List(bbox request_models.BoundingBoxRequest, categories []string, language string, ctx context.Context) ([]response_models.PointOfInterest, error) {
	if bbox.NorthEastLat < bbox.SouthWestLat || bbox.NorthEastLng < bbox.SouthWestLng {
		return nil, utils.ErrInvalidBoundingBox
	}

	features, err := s.searchRepo.QueryByBoundingBox(ctx,
		bbox.NorthEastLat, bbox.NorthEastLng, bbox.SouthWestLat, bbox.SouthWestLng, categories)
	if err != nil {
		log.Printf("Error querying features: %v", err)
		return nil, utils.ErrDatabaseError
	}

	// Gateway result order is preserved, no re-sorting.
	pois := make([]response_models.PointOfInterest, 0, len(features))
	for _, f := range features {
		pois = append(pois, toPointOfInterest(f, language))
	}
	return pois, nil
}

func (s *PoiService) GetByID(id, source, language string, ctx context.Context) (response_models.PointOfInterestExtended, error) {
	if source == "" {
		source = DefaultSource
	}

	feature, err := s.searchRepo.GetByID(ctx, id, source)
	if err != nil {
		log.Printf("Error fetching feature %s: %v", id, err)
		return response_models.PointOfInterestExtended{}, utils.ErrDatabaseError
	}
	if feature == nil {
		return response_models.PointOfInterestExtended{}, utils.ErrPOINotFound
	}

	ext := response_models.PointOfInterestExtended{
		PointOfInterest: toPointOfInterest(feature, language),
	}
	if err := s.augmenter.Augment(ctx, &ext, feature, language); err != nil {
		return response_models.PointOfInterestExtended{}, err
	}
	return ext, nil
}

func (s *PoiService) Create(req request_models.CreatePoiRequest, creds osmgw.Credentials, language string, ctx context.Context) (string, error) {
	node := &osm.Node{
		Element: osm.Element{Tags: osm.Tags{}},
		Lat:     req.Latitude,
		Long:    req.Longitude,
	}

	tags := node.Tags
	tags["image"] = req.ImageURL
	tags["website"] = req.URL
	s.reconciler.SetLocalizedTag(tags, "name", req.Title, language)
	s.reconciler.SetLocalizedTag(tags, "description", req.Description, language)
	s.reconciler.ApplyIconVocabulary(tags, req.Icon)
	tagging.StripEmptyTags(tags)

	client := s.osmFactory.Client(creds)
	newID, err := osmgw.RunInChangeset(ctx, client, createChangesetComment, func(changesetID int64) (int64, error) {
		return client.CreateNode(ctx, changesetID, node)
	})
	if err != nil {
		return "", mapChangesetError(err)
	}
	node.ID = newID

	if err := s.syncIndex(ctx, &osmgw.EditableElement{Node: node}); err != nil {
		return "", err
	}
	return osmgw.FormatElementID(osmgw.TypeNode, newID), nil
}

func (s *PoiService) Update(req request_models.UpdatePoiRequest, creds osmgw.Credentials, language string, ctx context.Context) (string, error) {
	source := req.Source
	if source == "" {
		source = DefaultSource
	}

	feature, err := s.searchRepo.GetByID(ctx, req.ID, source)
	if err != nil {
		log.Printf("Error fetching feature %s: %v", req.ID, err)
		return "", utils.ErrDatabaseError
	}
	if feature == nil {
		return "", utils.ErrPOINotFound
	}

	// Classified once; not reevaluated mid-operation.
	kind := geometry.KindOf(feature.Geometry)
	priorIcon, _ := feature.Properties["icon"].(string)

	_, osmID, err := osmgw.ParseElementID(req.ID)
	if err != nil {
		log.Printf("Malformed element id %q: %v", req.ID, err)
		return "", utils.ErrPOINotFound
	}

	client := s.osmFactory.Client(creds)
	el, err := geometry.FetchForUpdate(ctx, client, osmID, kind)
	if err != nil {
		if errors.Is(err, utils.ErrUnsupportedGeometry) {
			return "", err
		}
		log.Printf("Error fetching element %s: %v", req.ID, err)
		return "", utils.ErrGatewayUnavailable
	}

	tags := el.Tags()
	s.reconciler.SetLocalizedTag(tags, "name", req.Title, language)
	s.reconciler.SetLocalizedTag(tags, "description", req.Description, language)
	tags["image"] = req.ImageURL
	tags["website"] = req.URL
	// Appending the category tag on every unrelated edit would duplicate or
	// contradict the stored vocabulary, so it only runs on an icon change.
	if req.Icon != priorIcon {
		s.reconciler.ApplyIconVocabulary(tags, req.Icon)
	}
	tagging.StripEmptyTags(tags)

	_, err = osmgw.RunInChangeset(ctx, client, updateChangesetComment, func(changesetID int64) (int64, error) {
		if err := client.UpdateElement(ctx, changesetID, el); err != nil {
			return 0, err
		}
		return el.OSMID(), nil
	})
	if err != nil {
		return "", mapChangesetError(err)
	}

	if err := s.syncIndex(ctx, el); err != nil {
		return "", err
	}
	return req.ID, nil
}

// syncIndex re-derives the search-index feature from the committed element
// and upserts it. A non-derivable element is not an error: the index simply
// keeps its previous state.
func (s *PoiService) syncIndex(ctx context.Context, el *osmgw.EditableElement) error {
	feature := s.preprocessor.FeatureFromElement(el, DefaultSource)
	if feature == nil {
		return nil
	}
	if err := s.searchRepo.Upsert(ctx, feature); err != nil {
		log.Printf("Error upserting feature %v: %v", feature.ID, err)
		return utils.ErrDatabaseError
	}
	metrics.IndexUpsertsTotal.Inc()
	return nil
}

func mapChangesetError(err error) error {
	if errors.Is(err, utils.ErrChangesetOpenFailed) || errors.Is(err, utils.ErrChangesetCloseFailed) {
		return err
	}
	log.Printf("Error mutating element: %v", err)
	return utils.ErrGatewayUnavailable
}

func toPointOfInterest(f *geojson.Feature, language string) response_models.PointOfInterest {
	centroid := geometry.Centroid(f.Geometry)
	return response_models.PointOfInterest{
		ID:          stringProp(f, "identifier"),
		Source:      stringProp(f, "source"),
		Latitude:    centroid.Lat(),
		Longitude:   centroid.Lon(),
		Category:    stringProp(f, "category"),
		Icon:        stringProp(f, "icon"),
		Title:       localizedProp(f, "name", language),
		Description: localizedProp(f, "description", language),
		ImageURL:    stringProp(f, "image"),
		URL:         stringProp(f, "website"),
	}
}

func stringProp(f *geojson.Feature, key string) string {
	v, _ := f.Properties[key].(string)
	return v
}

func localizedProp(f *geojson.Feature, key, language string) string {
	if v := stringProp(f, key+":"+language); v != "" {
		return v
	}
	return stringProp(f, key)
}
