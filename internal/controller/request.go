package controller

import (
	"campus_voice_backend/internal/model"
	"campus_voice_backend/internal/service"
	"campus_voice_backend/internal/util"
	"strconv"

	"github.com/gin-gonic/gin"
)

func requestMeta(ctx *gin.Context) model.RequestMeta {
	return model.RequestMeta{
		IPAddress: ctx.ClientIP(),
		UserAgent: ctx.Request.UserAgent(),
	}
}

// currentActor writes a 401 and returns false when the request carries no claims.
func currentActor(ctx *gin.Context) (service.Actor, bool) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return service.Actor{}, false
	}
	return service.Actor{
		UserID: claims.UserID,
		Role:   claims.Role,
		Meta:   requestMeta(ctx),
	}, true
}

func pathID(ctx *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil || id == 0 {
		util.BadRequest(ctx, "invalid id")
		return 0, false
	}
	return uint(id), true
}

// queryID writes a 400 and returns false when the query value is present but not an id.
func queryID(ctx *gin.Context, key string) (*uint, bool) {
	id, err := util.OptionalUint(ctx.Query(key))
	if err != nil {
		util.BadRequest(ctx, "invalid "+key)
		return nil, false
	}
	return id, true
}

func queryInt(ctx *gin.Context, key string) int {
	v, _ := strconv.Atoi(ctx.Query(key))
	return v
}
