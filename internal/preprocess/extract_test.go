package preprocess

import (
	"testing"

	osm "github.com/omniscale/go-osm"
	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAssemble_ResolvesWayGeometry(t *testing.T) {
	ways := []osm.Way{{
		Element: osm.Element{ID: 7, Tags: osm.Tags{"name": "שביל"}},
		Refs:    []int64{1, 2},
	}}
	coords := map[int64][2]float64{
		1: {35.0, 31.0},
		2: {35.1, 31.1},
	}

	named := assemble(nil, ways, nil, coords, map[int64]osm.Way{7: ways[0]})

	require.Contains(t, named, "שביל")
	require.Len(t, named["שביל"].Ways, 1)
	resolved := named["שביל"].Ways[0]
	require.Len(t, resolved.Nodes, 2)
	assert.Equal(t, 31.1, resolved.Nodes[1].Lat)
	assert.Equal(t, 35.1, resolved.Nodes[1].Long)
}

func TestAssemble_ResolvesWayOnlyRelation(t *testing.T) {
	// The route case: a named relation whose members are unnamed ways.
	leg := osm.Way{
		Element: osm.Element{ID: 7},
		Refs:    []int64{1, 2},
	}
	rels := []osm.Relation{{
		Element: osm.Element{ID: 3, Tags: osm.Tags{"name": "שביל ישראל"}},
		Members: []osm.Member{
			{ID: 7, Type: osm.WayMember, Role: "forward"},
		},
	}}
	coords := map[int64][2]float64{
		1: {35.0, 31.0},
		2: {35.1, 31.1},
	}

	named := assemble(nil, nil, rels, coords, map[int64]osm.Way{7: leg})

	require.Contains(t, named, "שביל ישראל")
	require.Len(t, named["שביל ישראל"].Relations, 1)
	member := named["שביל ישראל"].Relations[0].Members[0]
	require.NotNil(t, member.Way, "way members must carry resolved geometry")
	require.Len(t, member.Way.Nodes, 2)

	f := testPreprocessor().featureFromRelation(&named["שביל ישראל"].Relations[0], "osm")
	require.NotNil(t, f, "a way-only relation must yield an index feature")
	points, ok := f.Geometry.(orb.MultiPoint)
	require.True(t, ok)
	assert.Len(t, points, 2)
}

func TestAssemble_UnknownRefsAreSkipped(t *testing.T) {
	ways := []osm.Way{{
		Element: osm.Element{ID: 7, Tags: osm.Tags{"name": "שביל"}},
		Refs:    []int64{1, 99},
	}}
	coords := map[int64][2]float64{1: {35.0, 31.0}}

	named := assemble(nil, ways, nil, coords, map[int64]osm.Way{7: ways[0]})

	require.Len(t, named["שביל"].Ways, 1)
	assert.Len(t, named["שביל"].Ways[0].Nodes, 1)
}
