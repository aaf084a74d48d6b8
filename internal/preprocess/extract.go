package preprocess

import (
	"context"
	"io"
	"sync"

	osm "github.com/omniscale/go-osm"
	"github.com/omniscale/go-osm/parser/pbf"
	"github.com/pkg/errors"
)

// Extractor reads a raw source stream and groups elements by name. The
// bulk-reindex path runs entirely on this output; it never touches the live
// OSM gateway.
type Extractor interface {
	Extract(ctx context.Context, r io.Reader) (map[string]*Collection, error)
}

// PBFExtractor extracts named elements from an OSM PBF stream. Node
// coordinates and way references are kept for the whole file so way and
// relation geometries can be resolved after the single pass.
type PBFExtractor struct{}

func NewPBFExtractor() *PBFExtractor {
	return &PBFExtractor{}
}

func (e *PBFExtractor) Extract(ctx context.Context, r io.Reader) (map[string]*Collection, error) {
	nodes := make(chan []osm.Node)
	ways := make(chan []osm.Way)
	relations := make(chan []osm.Relation)
	coords := make(chan []osm.Node)

	parser := pbf.New(r, pbf.Config{
		Nodes:     nodes,
		Ways:      ways,
		Relations: relations,
		Coords:    coords,
	})

	var (
		wg         sync.WaitGroup
		namedNodes []osm.Node
		namedWays  []osm.Way
		namedRels  []osm.Relation
		coordsByID = map[int64][2]float64{}
		waysByID   = map[int64]osm.Way{}
	)

	wg.Add(4)
	go func() {
		defer wg.Done()
		for batch := range nodes {
			for _, n := range batch {
				if n.Tags["name"] != "" {
					namedNodes = append(namedNodes, n)
				}
			}
		}
	}()
	go func() {
		defer wg.Done()
		for batch := range coords {
			for _, n := range batch {
				coordsByID[n.ID] = [2]float64{n.Long, n.Lat}
			}
		}
	}()
	go func() {
		defer wg.Done()
		for batch := range ways {
			for _, w := range batch {
				// Unnamed ways are kept too; relations reference them.
				waysByID[w.ID] = w
				if w.Tags["name"] != "" {
					namedWays = append(namedWays, w)
				}
			}
		}
	}()
	go func() {
		defer wg.Done()
		for batch := range relations {
			for _, rel := range batch {
				if rel.Tags["name"] != "" {
					namedRels = append(namedRels, rel)
				}
			}
		}
	}()

	err := parser.Parse(ctx)
	wg.Wait()
	if err != nil {
		return nil, errors.Wrap(err, "parsing pbf stream")
	}

	return assemble(namedNodes, namedWays, namedRels, coordsByID, waysByID), nil
}

// assemble resolves way and relation geometries against the coordinates and
// ways collected during the parse and groups the results by name.
func assemble(namedNodes []osm.Node, namedWays []osm.Way, namedRels []osm.Relation,
	coordsByID map[int64][2]float64, waysByID map[int64]osm.Way) map[string]*Collection {

	named := map[string]*Collection{}
	for _, n := range namedNodes {
		coll(named, n.Tags["name"]).Nodes = append(coll(named, n.Tags["name"]).Nodes, n)
	}
	for _, w := range namedWays {
		resolved := resolveWay(w, coordsByID)
		coll(named, w.Tags["name"]).Ways = append(coll(named, w.Tags["name"]).Ways, resolved)
	}
	for _, rel := range namedRels {
		resolved := rel
		resolved.Members = nil
		for _, m := range rel.Members {
			switch m.Type {
			case osm.NodeMember:
				if c, ok := coordsByID[m.ID]; ok {
					m.Node = &osm.Node{Element: osm.Element{ID: m.ID}, Long: c[0], Lat: c[1]}
				}
			case osm.WayMember:
				if w, ok := waysByID[m.ID]; ok {
					rw := resolveWay(w, coordsByID)
					m.Way = &rw
				}
			}
			resolved.Members = append(resolved.Members, m)
		}
		coll(named, rel.Tags["name"]).Relations = append(coll(named, rel.Tags["name"]).Relations, resolved)
	}
	return named
}

func resolveWay(w osm.Way, coordsByID map[int64][2]float64) osm.Way {
	resolved := w
	resolved.Nodes = nil
	for _, ref := range w.Refs {
		if c, ok := coordsByID[ref]; ok {
			resolved.Nodes = append(resolved.Nodes, osm.Node{
				Element: osm.Element{ID: ref},
				Long:    c[0],
				Lat:     c[1],
			})
		}
	}
	return resolved
}

func coll(named map[string]*Collection, name string) *Collection {
	c, ok := named[name]
	if !ok {
		c = &Collection{}
		named[name] = c
	}
	return c
}
