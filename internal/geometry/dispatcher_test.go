package geometry

import (
	"context"
	"testing"

	osm "github.com/omniscale/go-osm"
	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trailmap/internal/gateways/osmgw"
	"trailmap/pkg/utils"
)

type mockFetcher struct {
	node         func(ctx context.Context, id int64) (*osmgw.EditableElement, error)
	fullWay      func(ctx context.Context, id int64) (*osmgw.EditableElement, error)
	fullRelation func(ctx context.Context, id int64) (*osmgw.EditableElement, error)
}

func (m *mockFetcher) Node(ctx context.Context, id int64) (*osmgw.EditableElement, error) {
	return m.node(ctx, id)
}

func (m *mockFetcher) FullWay(ctx context.Context, id int64) (*osmgw.EditableElement, error) {
	return m.fullWay(ctx, id)
}

func (m *mockFetcher) FullRelation(ctx context.Context, id int64) (*osmgw.EditableElement, error) {
	return m.fullRelation(ctx, id)
}

func TestKindOf(t *testing.T) {
	tests := []struct {
		name string
		geom orb.Geometry
		want Kind
	}{
		{"point", orb.Point{34.8, 32.0}, KindNode},
		{"line", orb.LineString{{34.8, 32.0}, {34.9, 32.1}}, KindWay},
		{"polygon", orb.Polygon{{{0, 0}, {1, 0}, {1, 1}, {0, 0}}}, KindWay},
		{"multipoint", orb.MultiPoint{{0, 0}, {1, 1}}, KindRelation},
		{"multilinestring", orb.MultiLineString{}, KindRelation},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, KindOf(tt.geom))
		})
	}
}

func TestFetchForUpdate_WayUsesFullWayFetch(t *testing.T) {
	var nodeCalled, wayCalled bool
	fetcher := &mockFetcher{
		node: func(ctx context.Context, id int64) (*osmgw.EditableElement, error) {
			nodeCalled = true
			return &osmgw.EditableElement{Node: &osm.Node{}}, nil
		},
		fullWay: func(ctx context.Context, id int64) (*osmgw.EditableElement, error) {
			wayCalled = true
			return &osmgw.EditableElement{Way: &osm.Way{Element: osm.Element{ID: id}}}, nil
		},
	}

	el, err := FetchForUpdate(context.Background(), fetcher, 7, KindOf(orb.LineString{{0, 0}, {1, 1}}))
	require.NoError(t, err)

	assert.True(t, wayCalled)
	assert.False(t, nodeCalled)
	assert.Equal(t, int64(7), el.OSMID())
	assert.Equal(t, "way", el.TypeName())
}

func TestFetchForUpdate_MissingElement(t *testing.T) {
	fetcher := &mockFetcher{
		fullRelation: func(ctx context.Context, id int64) (*osmgw.EditableElement, error) {
			return nil, osmgw.ErrElementMissing
		},
	}

	_, err := FetchForUpdate(context.Background(), fetcher, 11, KindRelation)
	assert.ErrorIs(t, err, utils.ErrUnsupportedGeometry)
}

func TestFetchForUpdate_TransportErrorPassesThrough(t *testing.T) {
	transportErr := assert.AnError
	fetcher := &mockFetcher{
		node: func(ctx context.Context, id int64) (*osmgw.EditableElement, error) {
			return nil, transportErr
		},
	}

	_, err := FetchForUpdate(context.Background(), fetcher, 3, KindNode)
	assert.ErrorIs(t, err, transportErr)
	assert.NotErrorIs(t, err, utils.ErrUnsupportedGeometry)
}
