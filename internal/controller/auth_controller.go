package controller

import (
	"campus_voice_backend/internal/service"
	"campus_voice_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type AuthController struct {
	AuthService *service.AuthService
}

func NewAuthController(authService *service.AuthService) *AuthController {
	return &AuthController{AuthService: authService}
}

// Register godoc
// @Summary Register a student account
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body service.RegisterInput true "Registration details"
// @Success 201 {object} util.Response{data=service.AuthResult}
// @Failure 400 {object} util.Response
// @Failure 409 {object} util.Response
// @Router /api/auth/register [post]
func (c *AuthController) Register(ctx *gin.Context) {
	var req service.RegisterInput
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	res, err := c.AuthService.Register(ctx.Request.Context(), req, requestMeta(ctx))
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Created(ctx, "User registered successfully", res)
}

// Login godoc
// @Summary Sign in
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body service.LoginInput true "Credentials"
// @Success 200 {object} util.Response{data=service.AuthResult}
// @Failure 401 {object} util.Response
// @Router /api/auth/login [post]
func (c *AuthController) Login(ctx *gin.Context) {
	var req service.LoginInput
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	res, err := c.AuthService.Login(ctx.Request.Context(), req, requestMeta(ctx))
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.SuccessWithMessage(ctx, "Login successful", res)
}

// GetProfile godoc
// @Summary Current user profile
// @Tags Auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=model.User}
// @Router /api/user/profile [get]
func (c *AuthController) GetProfile(ctx *gin.Context) {
	actor, ok := currentActor(ctx)
	if !ok {
		return
	}

	user, err := c.AuthService.Profile(ctx.Request.Context(), actor.UserID)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, user)
}
