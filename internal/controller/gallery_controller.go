package controller

import (
	"rizhub_backend/internal/service"
	"rizhub_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type GalleryController struct {
	GalleryService *service.GalleryService
}

func NewGalleryController(galleryService *service.GalleryService) *GalleryController {
	return &GalleryController{GalleryService: galleryService}
}

// List godoc
// @Summary Gallery images with per-user unlock state
// @Tags gallery
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=[]service.GalleryItem}
// @Router /api/gallery [get]
func (c *GalleryController) List(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	items, err := c.GalleryService.List(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, items)
}
