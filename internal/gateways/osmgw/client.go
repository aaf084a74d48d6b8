package osmgw

import (
	"bytes"
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	osm "github.com/omniscale/go-osm"
	"github.com/pkg/errors"

	"trailmap/internal/metrics"
)

// Credentials is the opaque token/secret pair of the editing user. It is
// forwarded to the OSM API unmodified and never logged.
type Credentials struct {
	Token  string
	Secret string
}

// API is the changeset and element surface of the OSM store this service
// mutates.
type API interface {
	OpenChangeset(ctx context.Context, comment string) (int64, error)
	CloseChangeset(ctx context.Context, changesetID int64) error
	CreateNode(ctx context.Context, changesetID int64, node *osm.Node) (int64, error)
	UpdateElement(ctx context.Context, changesetID int64, el *EditableElement) error
	Node(ctx context.Context, id int64) (*EditableElement, error)
	FullWay(ctx context.Context, id int64) (*EditableElement, error)
	FullRelation(ctx context.Context, id int64) (*EditableElement, error)
}

// Factory builds a credential-scoped API client per request. Clients hold
// no shared mutable state.
type Factory interface {
	Client(creds Credentials) API
}

type ClientFactory struct {
	baseURL    string
	httpClient *http.Client
	createdBy  string
}

func NewClientFactory(baseURL string, httpClient *http.Client) *ClientFactory {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	return &ClientFactory{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: httpClient,
		createdBy:  "trailmap",
	}
}

func (f *ClientFactory) Client(creds Credentials) API {
	return &Client{
		baseURL:    f.baseURL,
		httpClient: f.httpClient,
		createdBy:  f.createdBy,
		creds:      creds,
	}
}

type Client struct {
	baseURL    string
	httpClient *http.Client
	createdBy  string
	creds      Credentials
}

func (c *Client) do(ctx context.Context, op, method, path string, body []byte) ([]byte, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, errors.Wrapf(err, "osm: building %s request", op)
	}
	if body != nil {
		req.Header.Set("Content-Type", "text/xml; charset=utf-8")
	}
	if c.creds.Secret != "" {
		req.SetBasicAuth(c.creds.Token, c.creds.Secret)
	} else if c.creds.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.creds.Token)
	}

	metrics.OSMRequestsTotal.WithLabelValues(op).Inc()
	t0 := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		metrics.OSMFailTotal.WithLabelValues(op).Inc()
		return nil, errors.Wrapf(err, "osm: %s", op)
	}
	defer resp.Body.Close()
	metrics.OSMDurationSeconds.Observe(time.Since(t0).Seconds())

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		metrics.OSMFailTotal.WithLabelValues(op).Inc()
		return nil, errors.Wrapf(err, "osm: reading %s response", op)
	}
	if resp.StatusCode == http.StatusNotFound || resp.StatusCode == http.StatusGone {
		metrics.OSMFailTotal.WithLabelValues(op).Inc()
		return nil, errors.Wrapf(ErrElementMissing, "osm: %s %s", op, path)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		metrics.OSMFailTotal.WithLabelValues(op).Inc()
		return nil, errors.Errorf("osm: %s: unexpected status %d: %s", op, resp.StatusCode, truncate(payload))
	}
	return payload, nil
}

func truncate(b []byte) string {
	const max = 200
	if len(b) > max {
		return string(b[:max]) + "..."
	}
	return string(b)
}

func (c *Client) OpenChangeset(ctx context.Context, comment string) (int64, error) {
	doc := osmDoc{Changesets: []changesetXML{{
		Tags: []tagXML{
			{K: "created_by", V: c.createdBy},
			{K: "comment", V: comment},
		},
	}}}
	body, err := xml.Marshal(doc)
	if err != nil {
		return 0, errors.Wrap(err, "osm: marshalling changeset")
	}
	payload, err := c.do(ctx, "open_changeset", http.MethodPut, "/api/0.6/changeset/create", body)
	if err != nil {
		return 0, err
	}
	id, err := strconv.ParseInt(strings.TrimSpace(string(payload)), 10, 64)
	if err != nil {
		return 0, errors.Wrapf(err, "osm: parsing changeset id %q", payload)
	}
	return id, nil
}

func (c *Client) CloseChangeset(ctx context.Context, changesetID int64) error {
	path := fmt.Sprintf("/api/0.6/changeset/%d/close", changesetID)
	_, err := c.do(ctx, "close_changeset", http.MethodPut, path, nil)
	return err
}

func (c *Client) CreateNode(ctx context.Context, changesetID int64, node *osm.Node) (int64, error) {
	doc := osmDoc{Nodes: []nodeXML{nodeToXML(node, changesetID)}}
	body, err := xml.Marshal(doc)
	if err != nil {
		return 0, errors.Wrap(err, "osm: marshalling node")
	}
	payload, err := c.do(ctx, "create_node", http.MethodPut, "/api/0.6/node/create", body)
	if err != nil {
		return 0, err
	}
	id, err := strconv.ParseInt(strings.TrimSpace(string(payload)), 10, 64)
	if err != nil {
		return 0, errors.Wrapf(err, "osm: parsing node id %q", payload)
	}
	return id, nil
}

func (c *Client) UpdateElement(ctx context.Context, changesetID int64, el *EditableElement) error {
	var doc osmDoc
	switch {
	case el.Node != nil:
		doc.Nodes = []nodeXML{nodeToXML(el.Node, changesetID)}
	case el.Way != nil:
		doc.Ways = []wayXML{wayToXML(el.Way, changesetID)}
	case el.Relation != nil:
		doc.Relations = []relationXML{relationToXML(el.Relation, changesetID)}
	default:
		return errors.New("osm: empty element")
	}
	body, err := xml.Marshal(doc)
	if err != nil {
		return errors.Wrap(err, "osm: marshalling element")
	}
	path := fmt.Sprintf("/api/0.6/%s/%d", el.TypeName(), el.OSMID())
	_, err = c.do(ctx, "update_element", http.MethodPut, path, body)
	return err
}

func (c *Client) Node(ctx context.Context, id int64) (*EditableElement, error) {
	payload, err := c.do(ctx, "get_node", http.MethodGet, fmt.Sprintf("/api/0.6/node/%d", id), nil)
	if err != nil {
		return nil, err
	}
	doc, err := parseDoc(payload)
	if err != nil {
		return nil, err
	}
	if len(doc.Nodes) == 0 {
		return nil, errors.Wrapf(ErrElementMissing, "osm: node %d missing from response", id)
	}
	return &EditableElement{Node: nodeFromXML(doc.Nodes[0])}, nil
}

// FullWay fetches the way together with its constituent nodes; the full
// geometry is required to re-derive a search-index feature afterwards.
func (c *Client) FullWay(ctx context.Context, id int64) (*EditableElement, error) {
	payload, err := c.do(ctx, "get_full_way", http.MethodGet, fmt.Sprintf("/api/0.6/way/%d/full", id), nil)
	if err != nil {
		return nil, err
	}
	doc, err := parseDoc(payload)
	if err != nil {
		return nil, err
	}
	nodes := nodeIndex(doc)
	for _, w := range doc.Ways {
		if w.ID == id {
			return &EditableElement{Way: wayFromXML(w, nodes)}, nil
		}
	}
	return nil, errors.Wrapf(ErrElementMissing, "osm: way %d missing from response", id)
}

func (c *Client) FullRelation(ctx context.Context, id int64) (*EditableElement, error) {
	payload, err := c.do(ctx, "get_full_relation", http.MethodGet, fmt.Sprintf("/api/0.6/relation/%d/full", id), nil)
	if err != nil {
		return nil, err
	}
	doc, err := parseDoc(payload)
	if err != nil {
		return nil, err
	}
	nodes := nodeIndex(doc)
	ways := make(map[int64]*osm.Way, len(doc.Ways))
	for _, w := range doc.Ways {
		ways[w.ID] = wayFromXML(w, nodes)
	}
	for _, r := range doc.Relations {
		if r.ID == id {
			return &EditableElement{Relation: relationFromXML(r, nodes, ways)}, nil
		}
	}
	return nil, errors.Wrapf(ErrElementMissing, "osm: relation %d missing from response", id)
}

func parseDoc(payload []byte) (*osmDoc, error) {
	doc := &osmDoc{}
	if err := xml.Unmarshal(payload, doc); err != nil {
		return nil, errors.Wrap(err, "osm: parsing response")
	}
	return doc, nil
}

func nodeIndex(doc *osmDoc) map[int64]*osm.Node {
	nodes := make(map[int64]*osm.Node, len(doc.Nodes))
	for i := range doc.Nodes {
		n := nodeFromXML(doc.Nodes[i])
		nodes[n.ID] = n
	}
	return nodes
}
