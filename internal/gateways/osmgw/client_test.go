package osmgw

import (
	"context"
	"encoding/base64"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	osm "github.com/omniscale/go-osm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_OpenChangeset(t *testing.T) {
	var gotAuth, gotBody string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPut, r.Method)
		require.Equal(t, "/api/0.6/changeset/create", r.URL.Path)
		gotAuth = r.Header.Get("Authorization")
		body, _ := io.ReadAll(r.Body)
		gotBody = string(body)
		w.Write([]byte("1234\n"))
	}))
	defer srv.Close()

	client := NewClientFactory(srv.URL, nil).Client(Credentials{Token: "tok"})
	id, err := client.OpenChangeset(context.Background(), "Added a point of interest")

	require.NoError(t, err)
	assert.Equal(t, int64(1234), id)
	assert.Equal(t, "Bearer tok", gotAuth)
	assert.Contains(t, gotBody, `k="created_by"`)
	assert.Contains(t, gotBody, `k="comment"`)
	assert.Contains(t, gotBody, "Added a point of interest")
}

func TestClient_BasicAuthWhenSecretPresent(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte("1"))
	}))
	defer srv.Close()

	client := NewClientFactory(srv.URL, nil).Client(Credentials{Token: "user", Secret: "pass"})
	_, err := client.OpenChangeset(context.Background(), "edit")

	require.NoError(t, err)
	want := "Basic " + base64.StdEncoding.EncodeToString([]byte("user:pass"))
	assert.Equal(t, want, gotAuth)
}

func TestClient_CreateNode(t *testing.T) {
	var gotBody string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPut, r.Method)
		require.Equal(t, "/api/0.6/node/create", r.URL.Path)
		body, _ := io.ReadAll(r.Body)
		gotBody = string(body)
		w.Write([]byte("4242"))
	}))
	defer srv.Close()

	client := NewClientFactory(srv.URL, nil).Client(Credentials{Token: "tok"})
	node := &osm.Node{
		Element: osm.Element{Tags: osm.Tags{"name": "עין גדי", "natural": "spring"}},
		Lat:     31.45, Long: 35.38,
	}
	id, err := client.CreateNode(context.Background(), 9, node)

	require.NoError(t, err)
	assert.Equal(t, int64(4242), id)
	assert.Contains(t, gotBody, `changeset="9"`)
	assert.Contains(t, gotBody, `k="natural"`)
	assert.Contains(t, gotBody, "עין גדי")
}

func TestClient_NodeNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	client := NewClientFactory(srv.URL, nil).Client(Credentials{Token: "tok"})
	_, err := client.Node(context.Background(), 404404)

	assert.ErrorIs(t, err, ErrElementMissing)
}

func TestClient_FullWayResolvesNodes(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/0.6/way/7/full", r.URL.Path)
		w.Write([]byte(`<osm version="0.6">
			<node id="1" version="2" lat="31.0" lon="35.0"/>
			<node id="2" version="1" lat="31.1" lon="35.1"/>
			<way id="7" version="3">
				<nd ref="1"/>
				<nd ref="2"/>
				<tag k="name" v="שביל"/>
			</way>
		</osm>`))
	}))
	defer srv.Close()

	client := NewClientFactory(srv.URL, nil).Client(Credentials{Token: "tok"})
	el, err := client.FullWay(context.Background(), 7)

	require.NoError(t, err)
	require.NotNil(t, el.Way)
	assert.Equal(t, int64(7), el.Way.ID)
	assert.Equal(t, []int64{1, 2}, el.Way.Refs)
	require.Len(t, el.Way.Nodes, 2)
	assert.Equal(t, 31.1, el.Way.Nodes[1].Lat)
	assert.Equal(t, "שביל", el.Way.Tags["name"])
}

func TestClient_UpdateElementPutsToTypedPath(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Write([]byte("4"))
	}))
	defer srv.Close()

	client := NewClientFactory(srv.URL, nil).Client(Credentials{Token: "tok"})
	el := &EditableElement{Way: &osm.Way{
		Element: osm.Element{ID: 7, Tags: osm.Tags{"name": "שביל"}},
		Refs:    []int64{1, 2},
	}}
	err := client.UpdateElement(context.Background(), 9, el)

	require.NoError(t, err)
	assert.Equal(t, "/api/0.6/way/7", gotPath)
}

func TestClient_ServerErrorIsNotMissing(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusBadGateway)
	}))
	defer srv.Close()

	client := NewClientFactory(srv.URL, nil).Client(Credentials{Token: "tok"})
	_, err := client.Node(context.Background(), 1)

	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrElementMissing)
}
