package v1

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"go-jobboard-backend/internal/domain"
	"go-jobboard-backend/pkg/apperror"
)

// stubInteractionUC records the recruiter ID a listing was keyed to. The
// embedded interface panics on anything else, so a test reaching an
// unexpected operation fails loudly.
type stubInteractionUC struct {
	domain.InteractionUsecase
	listedFor string
}

func (s *stubInteractionUC) ListForRecruiter(ctx context.Context, recruiterID string) ([]domain.InteractionRecord, error) {
	s.listedFor = recruiterID
	return []domain.InteractionRecord{}, nil
}

func testContext(userID, role string) (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/recruiters/applications", nil)
	c.Set(string(domain.KeyUserID), userID)
	c.Set(string(domain.KeyUserRole), role)
	return c, w
}

func TestListCandidatesRoleGate(t *testing.T) {
	t.Run("recruiters list records keyed to their own ID", func(t *testing.T) {
		stub := &stubInteractionUC{}
		h := &InteractionHandler{interactionUC: stub}

		c, w := testContext("rec-user", domain.RoleRecruiter)
		h.ListCandidates(c)

		assert.Empty(t, c.Errors)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "rec-user", stub.listedFor)
	})

	t.Run("admins are rejected instead of receiving an empty list", func(t *testing.T) {
		stub := &stubInteractionUC{}
		h := &InteractionHandler{interactionUC: stub}

		c, _ := testContext("admin-1", domain.RoleAdmin)
		h.ListCandidates(c)

		assert.NotEmpty(t, c.Errors)
		var appErr *apperror.AppError
		assert.True(t, errors.As(c.Errors.Last().Err, &appErr))
		assert.Equal(t, apperror.KindForbidden, appErr.Kind)
		assert.Empty(t, stub.listedFor)
	})
}
