package osmgw

import (
	"strconv"
	"strings"

	osm "github.com/omniscale/go-osm"
	"github.com/pkg/errors"
)

// ErrElementMissing reports that the store could not resolve an element id
// for the requested type.
var ErrElementMissing = errors.New("osm element not found")

const (
	TypeNode     = "node"
	TypeWay      = "way"
	TypeRelation = "relation"
)

// EditableElement is the tagged union of the three OSM element types.
// Exactly one field is set.
type EditableElement struct {
	Node     *osm.Node
	Way      *osm.Way
	Relation *osm.Relation
}

func (e *EditableElement) TypeName() string {
	switch {
	case e.Node != nil:
		return TypeNode
	case e.Way != nil:
		return TypeWay
	default:
		return TypeRelation
	}
}

func (e *EditableElement) OSMID() int64 {
	switch {
	case e.Node != nil:
		return e.Node.ID
	case e.Way != nil:
		return e.Way.ID
	case e.Relation != nil:
		return e.Relation.ID
	}
	return 0
}

// Tags returns the element's tag set, initializing it when the element was
// fetched without tags. The returned map is the element's own, mutations
// are seen by the marshaller.
func (e *EditableElement) Tags() osm.Tags {
	switch {
	case e.Node != nil:
		if e.Node.Tags == nil {
			e.Node.Tags = osm.Tags{}
		}
		return e.Node.Tags
	case e.Way != nil:
		if e.Way.Tags == nil {
			e.Way.Tags = osm.Tags{}
		}
		return e.Way.Tags
	case e.Relation != nil:
		if e.Relation.Tags == nil {
			e.Relation.Tags = osm.Tags{}
		}
		return e.Relation.Tags
	}
	return osm.Tags{}
}

// FormatElementID renders the index-facing id of an element, e.g. "node_42".
func FormatElementID(typeName string, id int64) string {
	return typeName + "_" + strconv.FormatInt(id, 10)
}

// ParseElementID splits an index-facing id back into type and numeric id.
func ParseElementID(s string) (string, int64, error) {
	typeName, idPart, found := strings.Cut(s, "_")
	if !found {
		return "", 0, errors.Errorf("malformed element id %q", s)
	}
	switch typeName {
	case TypeNode, TypeWay, TypeRelation:
	default:
		return "", 0, errors.Errorf("unknown element type in id %q", s)
	}
	id, err := strconv.ParseInt(idPart, 10, 64)
	if err != nil {
		return "", 0, errors.Wrapf(err, "malformed element id %q", s)
	}
	return typeName, id, nil
}
