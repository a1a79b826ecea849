package controller

import (
	"campus_voice_backend/internal/model"
	"campus_voice_backend/internal/service"
	"campus_voice_backend/internal/util"
	"io"
	"mime/multipart"
	"strings"

	"github.com/gin-gonic/gin"
)

type FeedbackController struct {
	FeedbackService *service.FeedbackService
}

func NewFeedbackController(feedbackService *service.FeedbackService) *FeedbackController {
	return &FeedbackController{FeedbackService: feedbackService}
}

// SubmitFeedbackRequest holds the text fields of the multipart submission form.
type SubmitFeedbackRequest struct {
	Title       string `form:"title"`
	Description string `form:"description"`
	CategoryID  string `form:"categoryId"`
	Location    string `form:"location"`
	Priority    string `form:"priority"`
	IsAnonymous string `form:"isAnonymous"`
}

type TransitionRequest struct {
	Status        string  `json:"status" binding:"required"`
	AdminResponse *string `json:"adminResponse"`
}

type CommentRequest struct {
	Content string `json:"content" binding:"required"`
}

type VoteRequest struct {
	VoteType string `json:"voteType" binding:"required"`
}

func attachmentsFrom(form *multipart.Form) []service.Attachment {
	if form == nil {
		return nil
	}
	var headers []*multipart.FileHeader
	headers = append(headers, form.File[util.AttachmentField]...)
	headers = append(headers, form.File[util.AttachmentField+"[]"]...)
	files := make([]service.Attachment, 0, len(headers))
	for _, fh := range headers {
		fh := fh
		files = append(files, service.Attachment{
			Filename:    fh.Filename,
			ContentType: fh.Header.Get("Content-Type"),
			Size:        fh.Size,
			Open: func() (io.ReadCloser, error) {
				return fh.Open()
			},
		})
	}
	return files
}

// Submit godoc
// @Summary Submit feedback
// @Tags Feedback
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param title formData string true "Title"
// @Param description formData string true "Description"
// @Param categoryId formData int true "Category ID"
// @Param location formData string false "Location"
// @Param priority formData string false "LOW, MEDIUM, HIGH or URGENT"
// @Param isAnonymous formData bool false "Hide the submitter from administrators"
// @Param attachments formData file false "Up to 5 files"
// @Success 201 {object} util.Response{data=model.Feedback}
// @Failure 400 {object} util.Response
// @Router /api/feedback [post]
func (c *FeedbackController) Submit(ctx *gin.Context) {
	actor, ok := currentActor(ctx)
	if !ok {
		return
	}

	var req SubmitFeedbackRequest
	if err := ctx.ShouldBind(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	var form *multipart.Form
	if strings.HasPrefix(ctx.ContentType(), "multipart/") {
		f, err := ctx.MultipartForm()
		if err != nil {
			util.BadRequest(ctx, err.Error())
			return
		}
		form = f
	}

	in := service.SubmitInput{
		Title:       req.Title,
		Description: req.Description,
		CategoryID:  util.MustParseUint(req.CategoryID),
		Priority:    model.FeedbackPriority(strings.ToUpper(strings.TrimSpace(req.Priority))),
		IsAnonymous: util.ParseBool(req.IsAnonymous),
	}
	if req.Location != "" {
		in.Location = &req.Location
	}

	feedback, err := c.FeedbackService.Submit(ctx.Request.Context(), actor, in, attachmentsFrom(form))
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Created(ctx, "Feedback submitted successfully", feedback)
}

func feedbackQuery(ctx *gin.Context, all bool) (service.FeedbackQuery, bool) {
	q := service.FeedbackQuery{
		All:   all,
		Page:  queryInt(ctx, "page"),
		Limit: queryInt(ctx, "limit"),
	}
	var ok bool
	if q.CategoryID, ok = queryID(ctx, "categoryId"); !ok {
		return q, false
	}
	if s := strings.TrimSpace(ctx.Query("status")); s != "" {
		status := model.FeedbackStatus(strings.ToUpper(s))
		q.Status = &status
	}
	if all {
		if p := strings.TrimSpace(ctx.Query("priority")); p != "" {
			priority := model.FeedbackPriority(strings.ToUpper(p))
			q.Priority = &priority
		}
		if q.Owner, ok = queryID(ctx, "userId"); !ok {
			return q, false
		}
	}
	return q, true
}

func (c *FeedbackController) list(ctx *gin.Context, all bool) {
	actor, ok := currentActor(ctx)
	if !ok {
		return
	}

	query, ok := feedbackQuery(ctx, all)
	if !ok {
		return
	}

	items, page, err := c.FeedbackService.List(ctx.Request.Context(), actor, query)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{
		"feedback":   items,
		"pagination": page,
	})
}

// ListMine godoc
// @Summary List the caller's feedback
// @Tags Feedback
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page (1-based)"
// @Param limit query int false "Page size"
// @Param status query string false "Status filter"
// @Param categoryId query int false "Category filter"
// @Success 200 {object} util.Response
// @Router /api/feedback [get]
func (c *FeedbackController) ListMine(ctx *gin.Context) {
	c.list(ctx, false)
}

// ListAll godoc
// @Summary List all feedback
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page (1-based)"
// @Param limit query int false "Page size"
// @Param status query string false "Status filter"
// @Param priority query string false "Priority filter"
// @Param categoryId query int false "Category filter"
// @Success 200 {object} util.Response
// @Router /api/admin/feedback [get]
func (c *FeedbackController) ListAll(ctx *gin.Context) {
	c.list(ctx, true)
}

// Get godoc
// @Summary Feedback detail
// @Tags Feedback
// @Produce json
// @Security BearerAuth
// @Param id path int true "Feedback ID"
// @Success 200 {object} util.Response{data=model.Feedback}
// @Failure 404 {object} util.Response
// @Router /api/feedback/{id} [get]
func (c *FeedbackController) Get(ctx *gin.Context) {
	actor, ok := currentActor(ctx)
	if !ok {
		return
	}
	id, ok := pathID(ctx)
	if !ok {
		return
	}

	feedback, err := c.FeedbackService.GetByID(ctx.Request.Context(), actor, id)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, feedback)
}

// UpdateStatus godoc
// @Summary Change feedback status
// @Tags Admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Feedback ID"
// @Param body body TransitionRequest true "New status"
// @Success 200 {object} util.Response{data=model.Feedback}
// @Failure 400 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/admin/feedback/{id}/status [put]
func (c *FeedbackController) UpdateStatus(ctx *gin.Context) {
	actor, ok := currentActor(ctx)
	if !ok {
		return
	}
	id, ok := pathID(ctx)
	if !ok {
		return
	}

	var req TransitionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	feedback, err := c.FeedbackService.Transition(ctx.Request.Context(), actor, id, service.TransitionInput{
		Status:        model.FeedbackStatus(strings.ToUpper(strings.TrimSpace(req.Status))),
		AdminResponse: req.AdminResponse,
	})
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.SuccessWithMessage(ctx, "Feedback status updated successfully", feedback)
}

// AddComment godoc
// @Summary Comment on feedback
// @Tags Feedback
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Feedback ID"
// @Param body body CommentRequest true "Comment"
// @Success 201 {object} util.Response{data=model.Comment}
// @Router /api/feedback/{id}/comments [post]
func (c *FeedbackController) AddComment(ctx *gin.Context) {
	actor, ok := currentActor(ctx)
	if !ok {
		return
	}
	id, ok := pathID(ctx)
	if !ok {
		return
	}

	var req CommentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	comment, err := c.FeedbackService.AddComment(ctx.Request.Context(), actor, id, req.Content)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Created(ctx, "Comment added", comment)
}

// Vote godoc
// @Summary Vote on feedback
// @Tags Feedback
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Feedback ID"
// @Param body body VoteRequest true "UPVOTE or DOWNVOTE"
// @Success 200 {object} util.Response{data=repository.VoteTally}
// @Router /api/feedback/{id}/vote [post]
func (c *FeedbackController) Vote(ctx *gin.Context) {
	actor, ok := currentActor(ctx)
	if !ok {
		return
	}
	id, ok := pathID(ctx)
	if !ok {
		return
	}

	var req VoteRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	tally, err := c.FeedbackService.Vote(ctx.Request.Context(), actor, id, model.VoteType(strings.ToUpper(req.VoteType)))
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, tally)
}
