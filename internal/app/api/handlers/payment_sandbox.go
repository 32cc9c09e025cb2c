package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	mw "github.com/phamdangkhoamet/dkstory/internal/app/api/middleware"
	"github.com/phamdangkhoamet/dkstory/internal/app/service/entitlement"
	"github.com/phamdangkhoamet/dkstory/internal/app/service/payment"
	"github.com/phamdangkhoamet/dkstory/pkg/response"
)

const msgSandboxPaid = "Thanh toán sandbox thành công. VIP đã kích hoạt."

type SandboxPayRequest struct {
	Plan string `json:"plan" example:"vip1d"`
}

// SandboxPayResponse is flat rather than enveloped so sandbox clients can
// read orderId and user at the top level.
type SandboxPayResponse struct {
	OK      bool                 `json:"ok"`
	OrderID string               `json:"orderId"`
	Status  string               `json:"status"`
	Message string               `json:"message"`
	User    payment.UserSnapshot `json:"user"`
}

type SandboxStatusResponse struct {
	OK     bool   `json:"ok"`
	Status string `json:"status"`
}

// @Summary      Sandbox VIP purchase
// @Description  Simulates a successful payment and extends the caller's VIP window immediately.
// @Tags         Payment
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body handlers.SandboxPayRequest true "Plan to buy"
// @Success      200  {object}  handlers.SandboxPayResponse
// @Failure      400  {object}  handlers.RespOK
// @Failure      401  {object}  handlers.RespOK
// @Failure      404  {object}  handlers.RespOK
// @Router       /api/payments/sandbox/pay [post]
func ApiSandboxPay(svc *payment.Service, log *zap.SugaredLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := mw.UserIDFrom(c)

		var req SandboxPayRequest
		// identity is checked before the body
		if err := c.ShouldBindJSON(&req); err != nil && userID != "" {
			invalidBody(c, err)
			return
		}

		res, err := svc.Pay(c.Request.Context(), userID, req.Plan)
		if err != nil {
			fail(c, log, err)
			return
		}
		c.JSON(http.StatusOK, SandboxPayResponse{
			OK:      true,
			OrderID: res.OrderID,
			Status:  res.Status,
			Message: msgSandboxPaid,
			User:    res.User,
		})
	}
}

// @Summary      Sandbox order status
// @Description  Sandbox orders are never persisted; every order id reports paid.
// @Tags         Payment
// @Produce      json
// @Param        orderId path string true "Order id"
// @Success      200  {object}  handlers.SandboxStatusResponse
// @Router       /api/payments/sandbox/status/{orderId} [get]
func ApiSandboxStatus(svc *payment.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, SandboxStatusResponse{OK: true, Status: svc.Status(c.Param("orderId"))})
	}
}

// @Summary      VIP plans
// @Description  Lists the purchasable VIP plans.
// @Tags         Payment
// @Produce      json
// @Success      200  {object}  handlers.RespPlans
// @Router       /api/payments/sandbox/plans [get]
func ApiSandboxPlans(c *gin.Context) {
	response.OK(c, entitlement.Catalog())
}

func RegisterSandboxPaymentRoutes(r gin.IRouter, svc *payment.Service, log *zap.SugaredLogger, payLimit gin.HandlerFunc) {
	r.GET("/plans", ApiSandboxPlans)
	r.POST("/pay", payLimit, ApiSandboxPay(svc, log))
	r.GET("/status/:orderId", ApiSandboxStatus(svc))
}
