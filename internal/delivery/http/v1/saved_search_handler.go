package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"go-jobboard-backend/internal/delivery/http/response"
	"go-jobboard-backend/internal/domain"
	"go-jobboard-backend/pkg/apperror"
	"go-jobboard-backend/pkg/validation"
)

type SavedSearchHandler struct {
	savedSearchUC domain.SavedSearchUsecase
}

// NewSavedSearchHandler registers saved search routes
func NewSavedSearchHandler(r *gin.RouterGroup, savedSearchUC domain.SavedSearchUsecase) {
	handler := &SavedSearchHandler{savedSearchUC: savedSearchUC}

	searches := r.Group("/saved-searches")
	{
		searches.POST("", handler.Create)
		searches.GET("", handler.ListOwn)
		searches.PUT("/:id", handler.Update)
		searches.DELETE("/:id", handler.Delete)
	}
}

// SavedSearchRequest is the create/update payload. Empty criteria act as
// wildcards in the match engine.
type SavedSearchRequest struct {
	Keyword     string `json:"keyword"`
	Location    string `json:"location"`
	CountryCode string `json:"country_code" binding:"omitempty,country_code"`
	Category    string `json:"category"`
	Sport       string `json:"sport"`
	Language    string `json:"language"`
	Frequency   string `json:"frequency" binding:"omitempty,oneof=daily weekly never"`
	Active      *bool  `json:"active"`
}

func bindSavedSearch(c *gin.Context, req *SavedSearchRequest) error {
	if err := c.ShouldBindJSON(req); err != nil {
		if verrs, ok := err.(validator.ValidationErrors); ok {
			return apperror.BadRequest(validation.FormatValidationErrors(verrs)[0])
		}
		return apperror.BadRequest(err.Error())
	}
	return nil
}

func (req *SavedSearchRequest) toDomain() *domain.SavedSearch {
	search := &domain.SavedSearch{
		Keyword:     req.Keyword,
		Location:    req.Location,
		CountryCode: req.CountryCode,
		Category:    req.Category,
		Sport:       req.Sport,
		Language:    req.Language,
		Frequency:   req.Frequency,
		Active:      true,
	}
	if req.Active != nil {
		search.Active = *req.Active
	}
	return search
}

// Create godoc
// @Summary      Create a saved search
// @Tags         saved-searches
// @Accept       json
// @Produce      json
// @Param        body  body      SavedSearchRequest  true  "Search criteria"
// @Success      201   {object}  response.Response{data=domain.SavedSearch}
// @Router       /saved-searches [post]
// @Security     BearerAuth
func (h *SavedSearchHandler) Create(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))

	var req SavedSearchRequest
	if err := bindSavedSearch(c, &req); err != nil {
		c.Error(err)
		return
	}

	search, err := h.savedSearchUC.Create(c, userID, req.toDomain())
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusCreated, "Saved search created", search)
}

// ListOwn godoc
// @Summary      List own saved searches
// @Tags         saved-searches
// @Produce      json
// @Success      200  {object}  response.Response{data=[]domain.SavedSearch}
// @Router       /saved-searches [get]
// @Security     BearerAuth
func (h *SavedSearchHandler) ListOwn(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))

	searches, err := h.savedSearchUC.ListOwn(c, userID)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Saved searches retrieved", searches)
}

// Update godoc
// @Summary      Update a saved search
// @Tags         saved-searches
// @Accept       json
// @Produce      json
// @Param        id    path      string              true  "Saved search ID"
// @Param        body  body      SavedSearchRequest  true  "Search criteria"
// @Success      200   {object}  response.Response{data=domain.SavedSearch}
// @Failure      404   {object}  response.Response
// @Router       /saved-searches/{id} [put]
// @Security     BearerAuth
func (h *SavedSearchHandler) Update(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))

	var req SavedSearchRequest
	if err := bindSavedSearch(c, &req); err != nil {
		c.Error(err)
		return
	}

	search := req.toDomain()
	search.ID = c.Param("id")

	updated, err := h.savedSearchUC.Update(c, userID, search)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Saved search updated", updated)
}

// Delete godoc
// @Summary      Delete a saved search
// @Tags         saved-searches
// @Produce      json
// @Param        id  path      string  true  "Saved search ID"
// @Success      200 {object}  response.Response
// @Failure      404 {object}  response.Response
// @Router       /saved-searches/{id} [delete]
// @Security     BearerAuth
func (h *SavedSearchHandler) Delete(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))

	if err := h.savedSearchUC.Delete(c, userID, c.Param("id")); err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Saved search deleted", nil)
}
