package v1

import (
	"context"
	"crypto/subtle"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"go-jobboard-backend/internal/delivery/http/response"
	"go-jobboard-backend/internal/domain"
	"go-jobboard-backend/pkg/apperror"
)

type AlertHandler struct {
	alertUC    domain.AlertUsecase
	cronSecret string
}

// NewAlertHandler registers the scheduler entry point. It is authenticated
// by a shared secret header rather than a user session; with no secret
// configured the endpoint always rejects.
func NewAlertHandler(r *gin.RouterGroup, alertUC domain.AlertUsecase, cronSecret string) {
	handler := &AlertHandler{alertUC: alertUC, cronSecret: cronSecret}

	r.POST("/internal/run-job-alerts", handler.RunJobAlerts)
}

// RunJobAlerts godoc
// @Summary      Run one job-alert scheduler pass
// @Description  Dispatches digests for due saved searches. Authenticated by the X-Cron-Secret header.
// @Tags         internal
// @Produce      json
// @Param        X-Cron-Secret  header    string  true  "Shared scheduler secret"
// @Success      200            {object}  response.Response{data=domain.AlertRunSummary}
// @Failure      401            {object}  response.Response
// @Router       /internal/run-job-alerts [post]
func (h *AlertHandler) RunJobAlerts(c *gin.Context) {
	provided := c.GetHeader("X-Cron-Secret")
	if h.cronSecret == "" || subtle.ConstantTimeCompare([]byte(provided), []byte(h.cronSecret)) != 1 {
		c.Error(apperror.Unauthorized("Invalid scheduler credentials"))
		return
	}

	// A scheduler pass can legitimately outlive the per-request storage
	// deadline, so it runs on a detached context.
	summary, err := h.alertUC.RunJobAlerts(context.WithoutCancel(c.Request.Context()), time.Now())
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Job alerts processed", summary)
}
