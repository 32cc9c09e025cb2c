package handlers

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	mw "github.com/phamdangkhoamet/dkstory/internal/app/api/middleware"
	"github.com/phamdangkhoamet/dkstory/internal/app/service/account"
	"github.com/phamdangkhoamet/dkstory/pkg/response"
)

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// @Summary      Register
// @Description  Creates a reader account and returns a session token.
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        request body account.RegisterInput true "Account data"
// @Success      200  {object}  handlers.RespSession
// @Failure      400  {object}  handlers.RespOK
// @Router       /api/auth/register [post]
func ApiRegister(svc *account.Service, log *zap.SugaredLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req account.RegisterInput
		if err := c.ShouldBindJSON(&req); err != nil {
			invalidBody(c, err)
			return
		}
		sess, err := svc.Register(c.Request.Context(), req)
		if err != nil {
			fail(c, log, err)
			return
		}
		response.OK(c, sess)
	}
}

// @Summary      Login
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        request body handlers.LoginRequest true "Credentials"
// @Success      200  {object}  handlers.RespSession
// @Failure      400  {object}  handlers.RespOK
// @Failure      403  {object}  handlers.RespOK
// @Failure      429  {object}  handlers.RespOK
// @Router       /api/auth/login [post]
func ApiLogin(svc *account.Service, log *zap.SugaredLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req LoginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			invalidBody(c, err)
			return
		}
		sess, err := svc.Login(c.Request.Context(), req.Email, req.Password)
		if err != nil {
			fail(c, log, err)
			return
		}
		response.OK(c, sess)
	}
}

// @Summary      Current user
// @Tags         Auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  handlers.RespProfile
// @Failure      401  {object}  handlers.RespOK
// @Router       /api/auth/me [get]
func ApiMe(svc *account.Service, log *zap.SugaredLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, err := svc.Me(c.Request.Context(), mw.UserIDFrom(c))
		if err != nil {
			fail(c, log, err)
			return
		}
		response.OK(c, p)
	}
}

func RegisterAuthRoutes(r gin.IRouter, svc *account.Service, log *zap.SugaredLogger) {
	r.POST("/register", ApiRegister(svc, log))
	r.POST("/login", ApiLogin(svc, log))
	r.GET("/me", mw.RequireUser(), ApiMe(svc, log))
}
