package v1

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"go-jobboard-backend/internal/delivery/http/response"
	"go-jobboard-backend/internal/domain"
	"go-jobboard-backend/pkg/apperror"
)

type AdminHandler struct {
	adminUC domain.AdminUsecase
	auditUC domain.AuditUsecase
}

// NewAdminHandler registers admin lifecycle and audit trail routes
func NewAdminHandler(r *gin.RouterGroup, adminUC domain.AdminUsecase, auditUC domain.AuditUsecase) {
	handler := &AdminHandler{adminUC: adminUC, auditUC: auditUC}

	admin := r.Group("/admin")
	{
		admin.DELETE("/jobs/:id", handler.DeleteJob)
		admin.DELETE("/companies/:id", handler.DeleteCompany)
		admin.DELETE("/users/:id", handler.DeleteUser)
		admin.DELETE("/cvs/:id", handler.DeleteCV)
		admin.GET("/audit-logs", handler.ListAuditLogs)
	}
}

// DeleteRequest carries the operator's stated reason for the audit entry
type DeleteRequest struct {
	Reason string `json:"reason"`
}

func (h *AdminHandler) bindReason(c *gin.Context) string {
	var req DeleteRequest
	if c.Request.ContentLength > 0 {
		_ = c.ShouldBindJSON(&req)
	}
	return req.Reason
}

func parseID(c *gin.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return 0, apperror.BadRequest("Invalid ID")
	}
	return id, nil
}

// DeleteJob godoc
// @Summary      Delete a job posting
// @Description  Applications referencing the posting survive with a detached job reference
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        id    path      int            true   "Job ID"
// @Param        body  body      DeleteRequest  false  "Reason"
// @Success      200   {object}  response.Response
// @Failure      404   {object}  response.Response
// @Router       /admin/jobs/{id} [delete]
// @Security     BearerAuth
func (h *AdminHandler) DeleteJob(c *gin.Context) {
	role := c.GetString(string(domain.KeyUserRole))
	id, err := parseID(c)
	if err != nil {
		c.Error(err)
		return
	}

	if err := h.adminUC.DeleteJob(c, role, id, h.bindReason(c)); err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Job deleted", nil)
}

// DeleteCompany godoc
// @Summary      Delete a company and its job postings
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        id    path      int            true   "Company ID"
// @Param        body  body      DeleteRequest  false  "Reason"
// @Success      200   {object}  response.Response
// @Failure      404   {object}  response.Response
// @Router       /admin/companies/{id} [delete]
// @Security     BearerAuth
func (h *AdminHandler) DeleteCompany(c *gin.Context) {
	role := c.GetString(string(domain.KeyUserRole))
	id, err := parseID(c)
	if err != nil {
		c.Error(err)
		return
	}

	if err := h.adminUC.DeleteCompany(c, role, id, h.bindReason(c)); err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Company deleted", nil)
}

// DeleteUser godoc
// @Summary      Delete a user and all dependent records
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        id    path      string         true   "User ID"
// @Param        body  body      DeleteRequest  false  "Reason"
// @Success      200   {object}  response.Response
// @Failure      404   {object}  response.Response
// @Router       /admin/users/{id} [delete]
// @Security     BearerAuth
func (h *AdminHandler) DeleteUser(c *gin.Context) {
	role := c.GetString(string(domain.KeyUserRole))

	if err := h.adminUC.DeleteUser(c, role, c.Param("id"), h.bindReason(c)); err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "User deleted", nil)
}

// DeleteCV godoc
// @Summary      Delete a CV document
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        id    path      int            true   "CV ID"
// @Param        body  body      DeleteRequest  false  "Reason"
// @Success      200   {object}  response.Response
// @Failure      404   {object}  response.Response
// @Router       /admin/cvs/{id} [delete]
// @Security     BearerAuth
func (h *AdminHandler) DeleteCV(c *gin.Context) {
	role := c.GetString(string(domain.KeyUserRole))
	id, err := parseID(c)
	if err != nil {
		c.Error(err)
		return
	}

	if err := h.adminUC.DeleteCV(c, role, id, h.bindReason(c)); err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "CV deleted", nil)
}

// ListAuditLogs godoc
// @Summary      Query the audit trail
// @Description  Filter by entity (entity_type + entity_id) or by time range (from + to, RFC 3339)
// @Tags         admin
// @Produce      json
// @Param        entity_type  query     string  false  "Entity type"
// @Param        entity_id    query     string  false  "Entity ID"
// @Param        from         query     string  false  "Range start"
// @Param        to           query     string  false  "Range end"
// @Param        page         query     int     false  "Page number"
// @Param        page_size    query     int     false  "Page size"
// @Success      200          {object}  response.Response{data=domain.PaginatedResult[domain.AuditLogEntry]}
// @Router       /admin/audit-logs [get]
// @Security     BearerAuth
func (h *AdminHandler) ListAuditLogs(c *gin.Context) {
	role := c.GetString(string(domain.KeyUserRole))
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	entityType := c.Query("entity_type")
	entityID := c.Query("entity_id")

	var entries []domain.AuditLogEntry
	var total int64
	var err error

	switch {
	case entityType != "" && entityID != "":
		entries, total, err = h.auditUC.ListByEntity(c, role, entityType, entityID, page, pageSize)
	case c.Query("from") != "" && c.Query("to") != "":
		var from, to time.Time
		if from, err = time.Parse(time.RFC3339, c.Query("from")); err != nil {
			c.Error(apperror.BadRequest("Invalid 'from' timestamp"))
			return
		}
		if to, err = time.Parse(time.RFC3339, c.Query("to")); err != nil {
			c.Error(apperror.BadRequest("Invalid 'to' timestamp"))
			return
		}
		entries, total, err = h.auditUC.ListByTimeRange(c, role, from, to, page, pageSize)
	default:
		c.Error(apperror.BadRequest("Provide entity_type and entity_id, or from and to"))
		return
	}
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Audit logs retrieved",
		domain.NewPaginatedResult(entries, total, page, pageSize))
}
