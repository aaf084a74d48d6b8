package controllers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"trailmap/internal/gateways/osmgw"
	"trailmap/internal/models/request_models"
	"trailmap/internal/services"
	"trailmap/pkg/utils"
)

type POIsController struct {
	poiService services.POIServiceInterface
}

func NewPOIsController(poiService services.POIServiceInterface) *POIsController {
	return &POIsController{
		poiService: poiService,
	}
}

func (p *POIsController) ListPois(c *gin.Context) {
	bbox, err := parseBoundingBox(c)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid bounding box parameters")
		return
	}

	var categories []string
	if raw := c.Query("categories"); raw != "" {
		categories = strings.Split(raw, ",")
	}
	language := c.DefaultQuery("language", "")

	pois, err := p.poiService.List(bbox, categories, language, c.Request.Context())
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, pois, "POIs fetched successfully")
}

func (p *POIsController) GetPoiById(c *gin.Context) {
	poiId := c.Param("id")
	source := c.Param("source")
	if poiId == "" {
		utils.RespondError(c, http.StatusBadRequest, "POI ID is required")
		return
	}
	language := c.DefaultQuery("language", "")

	poi, err := p.poiService.GetByID(poiId, source, language, c.Request.Context())
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, poi, "POI fetched successfully")
}

func (p *POIsController) CreatePoi(c *gin.Context) {
	var req request_models.CreatePoiRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid POI payload")
		return
	}
	language := c.DefaultQuery("language", "")

	id, err := p.poiService.Create(req, credentialsFrom(c), language, c.Request.Context())
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, gin.H{"id": id}, "POI created successfully")
}

func (p *POIsController) UpdatePoi(c *gin.Context) {
	var req request_models.UpdatePoiRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid POI payload")
		return
	}
	language := c.DefaultQuery("language", "")

	id, err := p.poiService.Update(req, credentialsFrom(c), language, c.Request.Context())
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, gin.H{"id": id}, "POI updated successfully")
}

func credentialsFrom(c *gin.Context) osmgw.Credentials {
	return osmgw.Credentials{
		Token:  c.GetString("osm_token"),
		Secret: c.GetString("osm_secret"),
	}
}

func parseBoundingBox(c *gin.Context) (request_models.BoundingBoxRequest, error) {
	var bbox request_models.BoundingBoxRequest
	var err error

	parse := func(name string) float64 {
		v, parseErr := strconv.ParseFloat(c.Query(name), 64)
		if parseErr != nil {
			err = parseErr
		}
		return v
	}
	bbox.NorthEastLat = parse("ne_lat")
	bbox.NorthEastLng = parse("ne_lng")
	bbox.SouthWestLat = parse("sw_lat")
	bbox.SouthWestLng = parse("sw_lng")
	return bbox, err
}
