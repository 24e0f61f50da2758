package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"go-jobboard-backend/internal/delivery/http/response"
	"go-jobboard-backend/internal/domain"
	"go-jobboard-backend/internal/visibility"
	"go-jobboard-backend/pkg/apperror"
	"go-jobboard-backend/pkg/logger"
)

// ErrorHandler translates errors attached to the gin context into the
// standard envelope. AppError values map to their own status and expose
// kind plus details; anything else is logged server-side and returned as
// an opaque 500 so internals never leak to clients. Error bodies render
// after the buffered response guard has flushed, so detail payloads get
// the same forbidden-key scan here before they go out.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}
		err := c.Errors.Last().Err

		var appErr *apperror.AppError
		if errors.As(err, &appErr) {
			if appErr.Code >= http.StatusInternalServerError {
				logger.Log.Error("request failed",
					"path", c.FullPath(), "kind", appErr.Kind, "error", appErr.Error(), "cause", appErr.Unwrap())
			}
			var body interface{}
			if appErr.Kind != "" || appErr.Details != nil {
				body = response.ErrorBody{Kind: string(appErr.Kind), Details: appErr.Details}
			}
			if appErr.Details != nil {
				role := c.GetString(string(domain.KeyUserRole))
				if leakErr := visibility.AssertNoLeak(appErr.Details, role); leakErr != nil {
					logger.Log.Error("error body leak guard tripped",
						"path", c.FullPath(), "kind", appErr.Kind, "error", leakErr)
					response.Error(c, http.StatusInternalServerError, "An unexpected error occurred. Please try again later.", nil)
					return
				}
			}
			response.Error(c, appErr.Code, appErr.Message, body)
			return
		}

		logger.Log.Error("unhandled error", "path", c.FullPath(), "error", err)
		response.Error(c, http.StatusInternalServerError, "An unexpected error occurred. Please try again later.", nil)
	}
}
