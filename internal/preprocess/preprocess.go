package preprocess

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	osm "github.com/omniscale/go-osm"

	"trailmap/internal/gateways/osmgw"
	"trailmap/internal/tagging"
)

// Collection groups raw geographic elements that share a name.
type Collection struct {
	Nodes     []osm.Node
	Ways      []osm.Way
	Relations []osm.Relation
}

// Preprocessor turns raw elements into search-index features. It is treated
// as a pure, deterministic transformation by the rest of the system.
type Preprocessor interface {
	Preprocess(named map[string]*Collection, source string) (map[string][]*geojson.Feature, error)
	FeatureFromElement(el *osmgw.EditableElement, source string) *geojson.Feature
}

// GeoJSONPreprocessor derives one feature per element: the element's tags
// become feature properties, the icon and category come from the vocabulary
// table. Elements with neither a name nor a mapped tag yield no feature.
type GeoJSONPreprocessor struct {
	vocabulary tagging.Vocabulary
}

func NewGeoJSONPreprocessor(vocabulary tagging.Vocabulary) *GeoJSONPreprocessor {
	return &GeoJSONPreprocessor{vocabulary: vocabulary}
}

func (p *GeoJSONPreprocessor) Preprocess(named map[string]*Collection, source string) (map[string][]*geojson.Feature, error) {
	out := make(map[string][]*geojson.Feature, len(named))
	for name, coll := range named {
		var features []*geojson.Feature
		for i := range coll.Nodes {
			if f := p.featureFromNode(&coll.Nodes[i], source); f != nil {
				features = append(features, f)
			}
		}
		for i := range coll.Ways {
			if f := p.featureFromWay(&coll.Ways[i], source); f != nil {
				features = append(features, f)
			}
		}
		for i := range coll.Relations {
			if f := p.featureFromRelation(&coll.Relations[i], source); f != nil {
				features = append(features, f)
			}
		}
		if len(features) > 0 {
			out[name] = features
		}
	}
	return out, nil
}

func (p *GeoJSONPreprocessor) FeatureFromElement(el *osmgw.EditableElement, source string) *geojson.Feature {
	switch {
	case el.Node != nil:
		return p.featureFromNode(el.Node, source)
	case el.Way != nil:
		return p.featureFromWay(el.Way, source)
	case el.Relation != nil:
		return p.featureFromRelation(el.Relation, source)
	}
	return nil
}

func (p *GeoJSONPreprocessor) featureFromNode(n *osm.Node, source string) *geojson.Feature {
	return p.build(orb.Point{n.Long, n.Lat}, n.Tags, osmgw.TypeNode, n.ID, source)
}

func (p *GeoJSONPreprocessor) featureFromWay(w *osm.Way, source string) *geojson.Feature {
	if len(w.Nodes) == 0 {
		return nil
	}
	line := make(orb.LineString, 0, len(w.Nodes))
	for _, n := range w.Nodes {
		line = append(line, orb.Point{n.Long, n.Lat})
	}
	var geom orb.Geometry = line
	if w.IsClosed() {
		geom = orb.Polygon{orb.Ring(line)}
	}
	return p.build(geom, w.Tags, osmgw.TypeWay, w.ID, source)
}

func (p *GeoJSONPreprocessor) featureFromRelation(r *osm.Relation, source string) *geojson.Feature {
	var points orb.MultiPoint
	for _, m := range r.Members {
		switch {
		case m.Node != nil:
			points = append(points, orb.Point{m.Node.Long, m.Node.Lat})
		case m.Way != nil:
			for _, n := range m.Way.Nodes {
				points = append(points, orb.Point{n.Long, n.Lat})
			}
		}
	}
	if len(points) == 0 {
		return nil
	}
	return p.build(points, r.Tags, osmgw.TypeRelation, r.ID, source)
}

func (p *GeoJSONPreprocessor) build(geom orb.Geometry, tags osm.Tags, typeName string, id int64, source string) *geojson.Feature {
	icon, category, matched := p.vocabulary.Match(tags)
	if tags["name"] == "" && !matched {
		return nil
	}
	if !matched {
		category = "other"
	}

	f := geojson.NewFeature(geom)
	f.ID = osmgw.FormatElementID(typeName, id)
	for k, v := range tags {
		f.Properties[k] = v
	}
	f.Properties["identifier"] = osmgw.FormatElementID(typeName, id)
	f.Properties["source"] = source
	f.Properties["icon"] = icon
	f.Properties["category"] = category
	return f
}
