package controller

import (
	"campus_voice_backend/internal/service"
	"campus_voice_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type CategoryController struct {
	CategoryService *service.CategoryService
}

func NewCategoryController(categoryService *service.CategoryService) *CategoryController {
	return &CategoryController{CategoryService: categoryService}
}

// @Summary Active feedback categories
// @Tags Categories
// @Produce json
// @Success 200 {object} util.Response{data=[]model.Category}
// @Router /api/categories [get]
func (c *CategoryController) List(ctx *gin.Context) {
	categories, err := c.CategoryService.ListActive(ctx.Request.Context())
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, categories)
}
