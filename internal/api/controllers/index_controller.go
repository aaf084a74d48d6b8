package controllers

import (
	"github.com/gin-gonic/gin"

	"trailmap/internal/services"
	"trailmap/pkg/utils"
)

type IndexController struct {
	indexService services.IndexServiceInterface
}

func NewIndexController(indexService services.IndexServiceInterface) *IndexController {
	return &IndexController{
		indexService: indexService,
	}
}

// BulkIndex rebuilds the search index from the raw source stream in the
// request body.
func (i *IndexController) BulkIndex(c *gin.Context) {
	features, err := i.indexService.IndexFromBulkSource(c.Request.Body, c.Request.Context())
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, gin.H{"indexed": len(features)}, "Index rebuilt successfully")
}
