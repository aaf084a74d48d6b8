package geometry

import (
	"context"

	"github.com/paulmach/orb"
	"github.com/pkg/errors"

	"trailmap/internal/gateways/osmgw"
	"trailmap/pkg/utils"
)

// Kind classifies a feature's geometry into the OSM element type that must
// be fetched and mutated for it.
type Kind int

const (
	KindNode Kind = iota
	KindWay
	KindRelation
)

func (k Kind) String() string {
	switch k {
	case KindNode:
		return osmgw.TypeNode
	case KindWay:
		return osmgw.TypeWay
	default:
		return osmgw.TypeRelation
	}
}

// KindOf maps a stored geometry to its element kind: a point is backed by a
// node, lines and polygons by a way, everything else by a relation. The
// classification is made once per update and not reevaluated mid-operation.
func KindOf(g orb.Geometry) Kind {
	switch g.(type) {
	case orb.Point:
		return KindNode
	case orb.LineString, orb.Polygon:
		return KindWay
	default:
		return KindRelation
	}
}

// ElementFetcher is the read side of the OSM gateway the dispatcher
// delegates to.
type ElementFetcher interface {
	Node(ctx context.Context, id int64) (*osmgw.EditableElement, error)
	FullWay(ctx context.Context, id int64) (*osmgw.EditableElement, error)
	FullRelation(ctx context.Context, id int64) (*osmgw.EditableElement, error)
}

// FetchForUpdate fetches the editable element implied by kind. Ways and
// relations are fetched fully resolved since the constituent geometry is
// needed to re-derive a search-index feature after the edit. The dispatcher
// performs no validation of its own; only a gateway that cannot resolve the
// id for the implied type yields ErrUnsupportedGeometry.
func FetchForUpdate(ctx context.Context, fetcher ElementFetcher, id int64, kind Kind) (*osmgw.EditableElement, error) {
	var (
		el  *osmgw.EditableElement
		err error
	)
	switch kind {
	case KindNode:
		el, err = fetcher.Node(ctx, id)
	case KindWay:
		el, err = fetcher.FullWay(ctx, id)
	default:
		el, err = fetcher.FullRelation(ctx, id)
	}
	if err != nil {
		if errors.Is(err, osmgw.ErrElementMissing) {
			return nil, errors.Wrapf(utils.ErrUnsupportedGeometry, "%s %d", kind, id)
		}
		return nil, err
	}
	return el, nil
}
