package handlers

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	mw "github.com/phamdangkhoamet/dkstory/internal/app/api/middleware"
	"github.com/phamdangkhoamet/dkstory/internal/app/service/moderation"
	"github.com/phamdangkhoamet/dkstory/internal/app/service/payment"
	"github.com/phamdangkhoamet/dkstory/internal/app/service/statistics"
	"github.com/phamdangkhoamet/dkstory/pkg/response"
	"github.com/phamdangkhoamet/dkstory/pkg/types"
)

type UpdateReportStatusRequest struct {
	Status types.ReportStatus `json:"status" binding:"required,oneof=pending reviewing resolved rejected" example:"reviewing"`
}

// GrantVipRequest carries no operator. The grant is always attributed to the
// authenticated admin.
type GrantVipRequest struct {
	UserID string `json:"user_id" binding:"required"`
	Plan   string `json:"plan" binding:"required" example:"vip1m"`
}

// @Summary      List reports (Admin)
// @Description  Retrieves a paginated and filterable list of moderation reports.
// @Tags         Admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body moderation.ScanReportsRequest true "Filters, pagination and sorting"
// @Success      200  {object}  handlers.RespReportList
// @Router       /api/admin/reports/list [post]
func ApiListReports(svc *moderation.Service, log *zap.SugaredLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req moderation.ScanReportsRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			invalidBody(c, err)
			return
		}
		res, err := svc.Scan(c.Request.Context(), &req)
		if err != nil {
			fail(c, log, err)
			return
		}
		response.OK(c, res)
	}
}

// @Summary      Update report status (Admin)
// @Tags         Admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id      path string                              true "Report id"
// @Param        request body handlers.UpdateReportStatusRequest true "New status"
// @Success      200  {object}  handlers.RespReport
// @Failure      404  {object}  handlers.RespOK
// @Router       /api/admin/reports/{id} [patch]
func ApiUpdateReportStatus(svc *moderation.Service, log *zap.SugaredLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req UpdateReportStatusRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			invalidBody(c, err)
			return
		}
		r, err := svc.UpdateStatus(c.Request.Context(), c.Param("id"), req.Status)
		if err != nil {
			fail(c, log, err)
			return
		}
		response.OK(c, r)
	}
}

// @Summary      Grant VIP (Admin)
// @Description  Extends a user's VIP window by a plan without payment. The caller is recorded as operator.
// @Tags         Admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body handlers.GrantVipRequest true "Grant request"
// @Success      200  {object}  handlers.RespPaymentResult
// @Router       /api/admin/vip/grant [post]
func ApiGrantVip(svc *payment.Service, log *zap.SugaredLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req GrantVipRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			invalidBody(c, err)
			return
		}
		res, err := svc.Grant(c.Request.Context(), req.UserID, req.Plan, mw.UserIDFrom(c))
		if err != nil {
			fail(c, log, err)
			return
		}
		response.OK(c, res)
	}
}

// @Summary      VIP statistics (Admin)
// @Description  Active VIP count, daily purchases and plan breakdown.
// @Tags         Admin
// @Produce      json
// @Security     BearerAuth
// @Param        days query int false "Look-back window in days"
// @Success      200  {object}  handlers.RespVipStatistic
// @Router       /api/admin/vip/statistics [get]
func ApiVipStatistics(svc *statistics.Service, log *zap.SugaredLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var items []statistics.StatisticType
		for _, raw := range c.QueryArray("item") {
			items = append(items, statistics.StatisticType(raw))
		}
		res, err := svc.GetVipStatistic(c.Request.Context(), &statistics.VipStatisticRequest{
			Days:      queryInt(c, "days", 0),
			DataItems: items,
		})
		if err != nil {
			badRequest(c, err.Error())
			return
		}
		response.OK(c, res)
	}
}

func RegisterAdminRoutes(r gin.IRouter, reports *moderation.Service, pay *payment.Service, stats *statistics.Service, log *zap.SugaredLogger) {
	r.POST("/reports/list", ApiListReports(reports, log))
	r.PATCH("/reports/:id", ApiUpdateReportStatus(reports, log))
	r.POST("/vip/grant", ApiGrantVip(pay, log))
	r.GET("/vip/statistics", ApiVipStatistics(stats, log))
}
