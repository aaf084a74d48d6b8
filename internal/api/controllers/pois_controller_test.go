package controllers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trailmap/internal/gateways/osmgw"
	"trailmap/internal/models/request_models"
	"trailmap/internal/models/response_models"
)

type mockPOIService struct {
	create func(req request_models.CreatePoiRequest, creds osmgw.Credentials, language string, ctx context.Context) (string, error)
}

func (m *mockPOIService) List(bbox request_models.BoundingBoxRequest, categories []string, language string, ctx context.Context) ([]response_models.PointOfInterest, error) {
	return nil, nil
}

func (m *mockPOIService) GetByID(id, source, language string, ctx context.Context) (response_models.PointOfInterestExtended, error) {
	return response_models.PointOfInterestExtended{}, nil
}

func (m *mockPOIService) Create(req request_models.CreatePoiRequest, creds osmgw.Credentials, language string, ctx context.Context) (string, error) {
	return m.create(req, creds, language, ctx)
}

func (m *mockPOIService) Update(req request_models.UpdatePoiRequest, creds osmgw.Credentials, language string, ctx context.Context) (string, error) {
	return "", nil
}

func createPoiRouter(svc *mockPOIService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/pois", NewPOIsController(svc).CreatePoi)
	return r
}

func TestCreatePoi_AcceptsZeroCoordinates(t *testing.T) {
	var got request_models.CreatePoiRequest
	svc := &mockPOIService{
		create: func(req request_models.CreatePoiRequest, creds osmgw.Credentials, language string, ctx context.Context) (string, error) {
			got = req
			return "node_1", nil
		},
	}
	r := createPoiRouter(svc)

	// Null Island is a legitimate coordinate pair.
	body := `{"title": "Buoy", "latitude": 0, "longitude": 0}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/pois", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "Buoy", got.Title)
	assert.Zero(t, got.Latitude)
	assert.Zero(t, got.Longitude)
}

func TestCreatePoi_RejectsOutOfRangeCoordinates(t *testing.T) {
	svc := &mockPOIService{
		create: func(req request_models.CreatePoiRequest, creds osmgw.Credentials, language string, ctx context.Context) (string, error) {
			t.Fatal("service must not be called for an invalid payload")
			return "", nil
		},
	}
	r := createPoiRouter(svc)

	body := `{"title": "Nowhere", "latitude": 91, "longitude": 0}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/pois", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
