package handlers

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	mw "github.com/phamdangkhoamet/dkstory/internal/app/api/middleware"
	"github.com/phamdangkhoamet/dkstory/internal/app/service/moderation"
	"github.com/phamdangkhoamet/dkstory/pkg/response"
)

// @Summary      File a report
// @Description  Anonymous reports are accepted; the caller is attached when known.
// @Tags         Reports
// @Accept       json
// @Produce      json
// @Param        request body moderation.CreateReportInput true "Report"
// @Success      200  {object}  handlers.RespReport
// @Failure      400  {object}  handlers.RespOK
// @Router       /api/reports [post]
func ApiCreateReport(svc *moderation.Service, log *zap.SugaredLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req moderation.CreateReportInput
		if err := c.ShouldBindJSON(&req); err != nil {
			invalidBody(c, err)
			return
		}
		r, err := svc.Create(c.Request.Context(), mw.UserIDFrom(c), req)
		if err != nil {
			fail(c, log, err)
			return
		}
		response.OK(c, r)
	}
}

func RegisterReportRoutes(r gin.IRouter, svc *moderation.Service, log *zap.SugaredLogger) {
	r.POST("", ApiCreateReport(svc, log))
}
