package v1

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"go-jobboard-backend/internal/delivery/http/response"
	"go-jobboard-backend/internal/domain"
	"go-jobboard-backend/internal/visibility"
	"go-jobboard-backend/pkg/apperror"
)

type InteractionHandler struct {
	interactionUC domain.InteractionUsecase
}

// NewInteractionHandler registers applicant tracking routes
func NewInteractionHandler(r *gin.RouterGroup, interactionUC domain.InteractionUsecase) {
	handler := &InteractionHandler{interactionUC: interactionUC}

	// Candidate routes
	candidates := r.Group("/candidates")
	{
		candidates.POST("/jobs/:jobId/apply", handler.ApplyToJob)
		candidates.GET("/jobs/:jobId/application", handler.CheckApplied)
		candidates.GET("/applications", handler.ListMyApplications)
		candidates.POST("/applications/:id/withdraw", handler.Withdraw)
		candidates.PATCH("/applications/:id/archive", handler.SetArchive)
	}

	// Recruiter routes
	recruiters := r.Group("/recruiters")
	{
		recruiters.GET("/applications", handler.ListCandidates)
		recruiters.GET("/applications/:id", handler.GetDetail)
		recruiters.PATCH("/applications/:id/status", handler.SetStatus)
		recruiters.PUT("/applications/:id/notes", handler.UpdateNotes)
		recruiters.PATCH("/applications/:id/archive", handler.SetArchive)
		recruiters.POST("/applications/:id/message", handler.SendMessage)
		recruiters.POST("/candidates/:candidateId/contact", handler.ContactCandidate)
	}
}

// respondProjected runs the role projection and leak guard before sending.
func respondProjected(c *gin.Context, code int, message string, rec *domain.InteractionRecord) {
	role := c.GetString(string(domain.KeyUserRole))
	payload := visibility.ProjectForRole(rec, role)
	if err := visibility.AssertNoLeak(payload, role); err != nil {
		c.Error(err)
		return
	}
	response.Success(c, code, message, payload)
}

// ApplyToJob godoc
// @Summary      Apply to a job
// @Description  Create an application for a published job (job seeker only)
// @Tags         applications
// @Produce      json
// @Param        jobId  path      int  true  "Job ID"
// @Success      201    {object}  response.Response{data=visibility.SeekerInteractionView}
// @Failure      404    {object}  response.Response
// @Failure      409    {object}  response.Response
// @Failure      422    {object}  response.Response
// @Router       /candidates/jobs/{jobId}/apply [post]
// @Security     BearerAuth
func (h *InteractionHandler) ApplyToJob(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))
	role := c.GetString(string(domain.KeyUserRole))
	if role != domain.RoleJobSeeker {
		c.Error(apperror.Forbidden("Only job seekers can apply to jobs"))
		return
	}

	jobID, err := strconv.ParseInt(c.Param("jobId"), 10, 64)
	if err != nil {
		c.Error(apperror.BadRequest("Invalid job ID"))
		return
	}

	rec, err := h.interactionUC.ApplyToJob(c, userID, jobID)
	if err != nil {
		c.Error(err)
		return
	}

	respondProjected(c, http.StatusCreated, "Application submitted successfully", rec)
}

// CheckApplied godoc
// @Summary      Check application status for a job
// @Description  Report whether the current job seeker already applied
// @Tags         applications
// @Produce      json
// @Param        jobId  path      int  true  "Job ID"
// @Success      200    {object}  response.Response
// @Router       /candidates/jobs/{jobId}/application [get]
// @Security     BearerAuth
func (h *InteractionHandler) CheckApplied(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))
	role := c.GetString(string(domain.KeyUserRole))
	if role != domain.RoleJobSeeker {
		c.Error(apperror.Forbidden("Only job seekers can check application status"))
		return
	}

	jobID, err := strconv.ParseInt(c.Param("jobId"), 10, 64)
	if err != nil {
		c.Error(apperror.BadRequest("Invalid job ID"))
		return
	}

	applied, rec, err := h.interactionUC.CheckApplied(c, userID, jobID)
	if err != nil {
		c.Error(err)
		return
	}

	payload := gin.H{"applied": applied}
	if applied {
		payload["application"] = visibility.ProjectForRole(rec, role)
	}
	if err := visibility.AssertNoLeak(payload, role); err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Application status retrieved", payload)
}

// ListMyApplications godoc
// @Summary      List own applications
// @Description  All applications of the current job seeker, archived included
// @Tags         applications
// @Produce      json
// @Success      200  {object}  response.Response{data=[]visibility.SeekerInteractionView}
// @Router       /candidates/applications [get]
// @Security     BearerAuth
func (h *InteractionHandler) ListMyApplications(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))
	role := c.GetString(string(domain.KeyUserRole))
	if role != domain.RoleJobSeeker {
		c.Error(apperror.Forbidden("Only job seekers can list their applications"))
		return
	}

	records, err := h.interactionUC.ListForCandidate(c, userID)
	if err != nil {
		c.Error(err)
		return
	}

	payload := visibility.ProjectList(records, role)
	if err := visibility.AssertNoLeak(payload, role); err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Applications retrieved", payload)
}

// Withdraw godoc
// @Summary      Withdraw an application
// @Description  Terminal, one-way transition; the recruiter is notified
// @Tags         applications
// @Produce      json
// @Param        id  path      string  true  "Application ID"
// @Success      200 {object}  response.Response{data=visibility.SeekerInteractionView}
// @Failure      409 {object}  response.Response
// @Router       /candidates/applications/{id}/withdraw [post]
// @Security     BearerAuth
func (h *InteractionHandler) Withdraw(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))
	role := c.GetString(string(domain.KeyUserRole))
	if role != domain.RoleJobSeeker {
		c.Error(apperror.Forbidden("Only job seekers can withdraw applications"))
		return
	}

	rec, err := h.interactionUC.Withdraw(c, userID, c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}

	respondProjected(c, http.StatusOK, "Application withdrawn", rec)
}

// SetArchiveRequest toggles the caller's archive flag
type SetArchiveRequest struct {
	Archived *bool `json:"archived" binding:"required"`
}

// SetArchive godoc
// @Summary      Archive or unarchive an application
// @Description  Flips the caller's own archive flag; the other party's view is unaffected
// @Tags         applications
// @Accept       json
// @Produce      json
// @Param        id    path      string             true  "Application ID"
// @Param        body  body      SetArchiveRequest  true  "Archive flag"
// @Success      200   {object}  response.Response
// @Router       /candidates/applications/{id}/archive [patch]
// @Security     BearerAuth
func (h *InteractionHandler) SetArchive(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))
	role := c.GetString(string(domain.KeyUserRole))

	var req SetArchiveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	party := domain.ArchiveByRecruiter
	if role == domain.RoleJobSeeker {
		party = domain.ArchiveByJobSeeker
	}

	rec, err := h.interactionUC.SetArchiveFlag(c, userID, role, c.Param("id"), party, *req.Archived)
	if err != nil {
		c.Error(err)
		return
	}

	respondProjected(c, http.StatusOK, "Archive flag updated", rec)
}

// ListCandidates godoc
// @Summary      List applications for the current recruiter
// @Description  Keyed to the caller's own recruiter ID; admins inspect records through the audit log instead
// @Tags         applications
// @Produce      json
// @Success      200  {object}  response.Response{data=[]domain.InteractionRecord}
// @Router       /recruiters/applications [get]
// @Security     BearerAuth
func (h *InteractionHandler) ListCandidates(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))
	role := c.GetString(string(domain.KeyUserRole))
	if role != domain.RoleRecruiter {
		c.Error(apperror.Forbidden("Only recruiters can list their candidates"))
		return
	}

	records, err := h.interactionUC.ListForRecruiter(c, userID)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Applications retrieved", records)
}

// GetDetail godoc
// @Summary      Get one application
// @Description  A recruiter's first read stamps viewed_at
// @Tags         applications
// @Produce      json
// @Param        id  path      string  true  "Application ID"
// @Success      200 {object}  response.Response{data=domain.InteractionRecord}
// @Failure      404 {object}  response.Response
// @Router       /recruiters/applications/{id} [get]
// @Security     BearerAuth
func (h *InteractionHandler) GetDetail(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))
	role := c.GetString(string(domain.KeyUserRole))

	rec, err := h.interactionUC.GetRecord(c, userID, role, c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}

	respondProjected(c, http.StatusOK, "Application retrieved", rec)
}

// SetStatusRequest is the status transition payload
type SetStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// SetStatus godoc
// @Summary      Update application status
// @Description  Recruiter/admin only; withdrawn is terminal and rejects further changes
// @Tags         applications
// @Accept       json
// @Produce      json
// @Param        id    path      string            true  "Application ID"
// @Param        body  body      SetStatusRequest  true  "New status"
// @Success      200   {object}  response.Response{data=domain.InteractionRecord}
// @Failure      409   {object}  response.Response
// @Router       /recruiters/applications/{id}/status [patch]
// @Security     BearerAuth
func (h *InteractionHandler) SetStatus(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))
	role := c.GetString(string(domain.KeyUserRole))

	var req SetStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	rec, err := h.interactionUC.SetStatus(c, userID, role, c.Param("id"), req.Status)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Status updated", rec)
}

// UpdateNotesRequest carries the recruiter-private note fields
type UpdateNotesRequest struct {
	RecruiterNotes *string `json:"recruiter_notes"`
	InternalNotes  *string `json:"internal_notes"`
}

// UpdateNotes godoc
// @Summary      Update recruiter notes
// @Description  Notes are recruiter-private and never visible to the candidate
// @Tags         applications
// @Accept       json
// @Produce      json
// @Param        id    path      string              true  "Application ID"
// @Param        body  body      UpdateNotesRequest  true  "Notes"
// @Success      200   {object}  response.Response{data=domain.InteractionRecord}
// @Router       /recruiters/applications/{id}/notes [put]
// @Security     BearerAuth
func (h *InteractionHandler) UpdateNotes(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))
	role := c.GetString(string(domain.KeyUserRole))

	var req UpdateNotesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	rec, err := h.interactionUC.UpdateNotes(c, userID, role, c.Param("id"), req.RecruiterNotes, req.InternalNotes)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Notes updated", rec)
}

// ContactCandidateRequest optionally pins the posting the contact is about
type ContactCandidateRequest struct {
	JobID *int64 `json:"job_id"`
}

// ContactCandidate godoc
// @Summary      Contact a discoverable candidate
// @Description  Creates a recruiter-initiated record with status "contacted". When job_id is omitted and the recruiter has several published postings, responds 409 with the candidate set.
// @Tags         applications
// @Accept       json
// @Produce      json
// @Param        candidateId  path      string                   true   "Candidate user ID"
// @Param        body         body      ContactCandidateRequest  false  "Optional job"
// @Success      201          {object}  response.Response{data=domain.InteractionRecord}
// @Failure      409          {object}  response.Response
// @Failure      422          {object}  response.Response
// @Router       /recruiters/candidates/{candidateId}/contact [post]
// @Security     BearerAuth
func (h *InteractionHandler) ContactCandidate(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))
	role := c.GetString(string(domain.KeyUserRole))
	if role != domain.RoleRecruiter && role != domain.RoleAdmin {
		c.Error(apperror.Forbidden("Only recruiters can contact candidates"))
		return
	}

	var req ContactCandidateRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.Error(apperror.BadRequest(err.Error()))
			return
		}
	}

	rec, err := h.interactionUC.ContactCandidate(c, userID, c.Param("candidateId"), req.JobID)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusCreated, "Candidate contacted", rec)
}

// SendMessageRequest is a direct message relayed to the candidate by email
type SendMessageRequest struct {
	Subject string `json:"subject" binding:"required"`
	Message string `json:"message" binding:"required"`
}

// SendMessage godoc
// @Summary      Message a candidate on an existing application
// @Description  Relays the message by email and bumps last_activity_at
// @Tags         applications
// @Accept       json
// @Produce      json
// @Param        id    path      string              true  "Application ID"
// @Param        body  body      SendMessageRequest  true  "Message"
// @Success      200   {object}  response.Response
// @Router       /recruiters/applications/{id}/message [post]
// @Security     BearerAuth
func (h *InteractionHandler) SendMessage(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))
	role := c.GetString(string(domain.KeyUserRole))
	if role != domain.RoleRecruiter && role != domain.RoleAdmin {
		c.Error(apperror.Forbidden("Only recruiters can message candidates"))
		return
	}

	var req SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	if err := h.interactionUC.ContactCandidateEmail(c, userID, c.Param("id"), req.Subject, req.Message); err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Message sent", nil)
}
