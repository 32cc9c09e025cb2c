package handlers

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	mw "github.com/phamdangkhoamet/dkstory/internal/app/api/middleware"
	"github.com/phamdangkhoamet/dkstory/internal/app/service/account"
	"github.com/phamdangkhoamet/dkstory/internal/app/service/viplog"
	"github.com/phamdangkhoamet/dkstory/pkg/response"
)

// @Summary      VIP history
// @Description  The caller's entitlement changes, newest first.
// @Tags         Users
// @Produce      json
// @Security     BearerAuth
// @Param        size query int false "Max items"
// @Success      200  {object}  handlers.RespVipHistory
// @Router       /api/users/me/vip-history [get]
func ApiVipHistory(svc *viplog.Service, log *zap.SugaredLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		items, err := svc.ListByUser(c.Request.Context(), mw.UserIDFrom(c), queryInt(c, "size", 0))
		if err != nil {
			fail(c, log, err)
			return
		}
		response.OK(c, items)
	}
}

// @Summary      My profile
// @Tags         Users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  handlers.RespProfile
// @Failure      401  {object}  handlers.RespOK
// @Router       /api/users/me [get]
func ApiMyProfile(svc *account.Service, log *zap.SugaredLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, err := svc.Me(c.Request.Context(), mw.UserIDFrom(c))
		if err != nil {
			fail(c, log, err)
			return
		}
		response.OK(c, p)
	}
}

// @Summary      Update my profile
// @Description  Changes the caller's display name and avatar. Omitted fields are kept.
// @Tags         Users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body account.ProfilePatch true "Fields to change"
// @Success      200  {object}  handlers.RespProfile
// @Failure      400  {object}  handlers.RespOK
// @Router       /api/users/me [put]
func ApiUpdateMyProfile(svc *account.Service, log *zap.SugaredLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req account.ProfilePatch
		if err := c.ShouldBindJSON(&req); err != nil {
			invalidBody(c, err)
			return
		}
		p, err := svc.UpdateProfile(c.Request.Context(), mw.UserIDFrom(c), req)
		if err != nil {
			fail(c, log, err)
			return
		}
		response.OK(c, p)
	}
}

// @Summary      Public profile
// @Tags         Users
// @Produce      json
// @Param        id path string true "User id"
// @Success      200  {object}  handlers.RespPublicProfile
// @Failure      404  {object}  handlers.RespOK
// @Router       /api/users/{id} [get]
func ApiGetUser(svc *account.Service, log *zap.SugaredLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, err := svc.Public(c.Request.Context(), c.Param("id"))
		if err != nil {
			fail(c, log, err)
			return
		}
		response.OK(c, p)
	}
}

func RegisterUserRoutes(r gin.IRouter, accounts *account.Service, logs *viplog.Service, log *zap.SugaredLogger) {
	r.GET("/me", mw.RequireUser(), ApiMyProfile(accounts, log))
	r.PUT("/me", mw.RequireUser(), ApiUpdateMyProfile(accounts, log))
	r.GET("/me/vip-history", mw.RequireUser(), ApiVipHistory(logs, log))
	r.GET("/:id", ApiGetUser(accounts, log))
}
