package controller

import (
	"campus_voice_backend/internal/service"
	"campus_voice_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type DashboardController struct {
	FeedbackService *service.FeedbackService
}

func NewDashboardController(feedbackService *service.FeedbackService) *DashboardController {
	return &DashboardController{FeedbackService: feedbackService}
}

// GetStats godoc
// @Summary Dashboard counters for the caller
// @Description Feedback totals by status plus the unread notification count.
// @Tags Dashboard
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=service.Stats}
// @Router /api/dashboard/stats [get]
func (c *DashboardController) GetStats(ctx *gin.Context) {
	actor, ok := currentActor(ctx)
	if !ok {
		return
	}

	stats, err := c.FeedbackService.Stats(ctx.Request.Context(), actor)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, stats)
}
