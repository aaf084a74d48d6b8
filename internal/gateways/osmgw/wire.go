package osmgw

import (
	"encoding/xml"
	"sort"

	osm "github.com/omniscale/go-osm"
)

// Wire types for the OSM API v0.6 XML documents. Only the attributes this
// service reads or writes are mapped.

type osmDoc struct {
	XMLName    xml.Name       `xml:"osm"`
	Changesets []changesetXML `xml:"changeset"`
	Nodes      []nodeXML      `xml:"node"`
	Ways       []wayXML       `xml:"way"`
	Relations  []relationXML  `xml:"relation"`
}

type changesetXML struct {
	ID   int64    `xml:"id,attr,omitempty"`
	Tags []tagXML `xml:"tag"`
}

type tagXML struct {
	K string `xml:"k,attr"`
	V string `xml:"v,attr"`
}

type nodeXML struct {
	ID        int64    `xml:"id,attr,omitempty"`
	Version   int32    `xml:"version,attr,omitempty"`
	Changeset int64    `xml:"changeset,attr,omitempty"`
	Lat       float64  `xml:"lat,attr"`
	Lon       float64  `xml:"lon,attr"`
	Tags      []tagXML `xml:"tag"`
}

type ndXML struct {
	Ref int64 `xml:"ref,attr"`
}

type wayXML struct {
	ID        int64    `xml:"id,attr,omitempty"`
	Version   int32    `xml:"version,attr,omitempty"`
	Changeset int64    `xml:"changeset,attr,omitempty"`
	Nds       []ndXML  `xml:"nd"`
	Tags      []tagXML `xml:"tag"`
}

type memberXML struct {
	Type string `xml:"type,attr"`
	Ref  int64  `xml:"ref,attr"`
	Role string `xml:"role,attr"`
}

type relationXML struct {
	ID        int64       `xml:"id,attr,omitempty"`
	Version   int32       `xml:"version,attr,omitempty"`
	Changeset int64       `xml:"changeset,attr,omitempty"`
	Members   []memberXML `xml:"member"`
	Tags      []tagXML    `xml:"tag"`
}

func tagsToXML(tags osm.Tags) []tagXML {
	keys := make([]string, 0, len(tags))
	for k := range tags {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := make([]tagXML, 0, len(keys))
	for _, k := range keys {
		out = append(out, tagXML{K: k, V: tags[k]})
	}
	return out
}

func tagsFromXML(xs []tagXML) osm.Tags {
	tags := osm.Tags{}
	for _, t := range xs {
		tags[t.K] = t.V
	}
	return tags
}

func versionOf(md *osm.Metadata) int32 {
	if md == nil {
		return 0
	}
	return md.Version
}

func nodeToXML(n *osm.Node, changesetID int64) nodeXML {
	return nodeXML{
		ID:        n.ID,
		Version:   versionOf(n.Metadata),
		Changeset: changesetID,
		Lat:       n.Lat,
		Lon:       n.Long,
		Tags:      tagsToXML(n.Tags),
	}
}

func nodeFromXML(x nodeXML) *osm.Node {
	return &osm.Node{
		Element: osm.Element{
			ID:       x.ID,
			Tags:     tagsFromXML(x.Tags),
			Metadata: &osm.Metadata{Version: x.Version},
		},
		Lat:  x.Lat,
		Long: x.Lon,
	}
}

func wayToXML(w *osm.Way, changesetID int64) wayXML {
	nds := make([]ndXML, 0, len(w.Refs))
	for _, ref := range w.Refs {
		nds = append(nds, ndXML{Ref: ref})
	}
	return wayXML{
		ID:        w.ID,
		Version:   versionOf(w.Metadata),
		Changeset: changesetID,
		Nds:       nds,
		Tags:      tagsToXML(w.Tags),
	}
}

// wayFromXML resolves the way's node references against the nodes delivered
// in the same document, so a full-way fetch yields constituent geometry.
func wayFromXML(x wayXML, nodesByID map[int64]*osm.Node) *osm.Way {
	w := &osm.Way{
		Element: osm.Element{
			ID:       x.ID,
			Tags:     tagsFromXML(x.Tags),
			Metadata: &osm.Metadata{Version: x.Version},
		},
	}
	for _, nd := range x.Nds {
		w.Refs = append(w.Refs, nd.Ref)
		if n, ok := nodesByID[nd.Ref]; ok {
			w.Nodes = append(w.Nodes, *n)
		}
	}
	return w
}

func relationToXML(r *osm.Relation, changesetID int64) relationXML {
	members := make([]memberXML, 0, len(r.Members))
	for _, m := range r.Members {
		members = append(members, memberXML{
			Type: memberTypeName(m.Type),
			Ref:  m.ID,
			Role: m.Role,
		})
	}
	return relationXML{
		ID:        r.ID,
		Version:   versionOf(r.Metadata),
		Changeset: changesetID,
		Members:   members,
		Tags:      tagsToXML(r.Tags),
	}
}

func relationFromXML(x relationXML, nodesByID map[int64]*osm.Node, waysByID map[int64]*osm.Way) *osm.Relation {
	r := &osm.Relation{
		Element: osm.Element{
			ID:       x.ID,
			Tags:     tagsFromXML(x.Tags),
			Metadata: &osm.Metadata{Version: x.Version},
		},
	}
	for _, m := range x.Members {
		member := osm.Member{ID: m.Ref, Role: m.Role, Type: memberTypeOf(m.Type)}
		switch member.Type {
		case osm.NodeMember:
			member.Node = nodesByID[m.Ref]
		case osm.WayMember:
			member.Way = waysByID[m.Ref]
		}
		r.Members = append(r.Members, member)
	}
	return r
}

func memberTypeName(t osm.MemberType) string {
	switch t {
	case osm.NodeMember:
		return TypeNode
	case osm.WayMember:
		return TypeWay
	default:
		return TypeRelation
	}
}

func memberTypeOf(name string) osm.MemberType {
	switch name {
	case TypeNode:
		return osm.NodeMember
	case TypeWay:
		return osm.WayMember
	default:
		return osm.RelationMember
	}
}
