package middleware

import (
	"bytes"
	"net/http"

	"github.com/gin-gonic/gin"

	"go-jobboard-backend/internal/domain"
	"go-jobboard-backend/internal/delivery/http/response"
	"go-jobboard-backend/internal/visibility"
	"go-jobboard-backend/pkg/logger"
)

type bufferedWriter struct {
	gin.ResponseWriter
	body *bytes.Buffer
}

func (w *bufferedWriter) Write(b []byte) (int, error) {
	return w.body.Write(b)
}

func (w *bufferedWriter) WriteString(s string) (int, error) {
	return w.body.WriteString(s)
}

// LeakGuard is the last line of defense for recruiter-private fields. For
// job-seeker callers it buffers the serialized response, scans it for
// forbidden keys, and replaces a tainted payload with an opaque 500. Other
// roles pass through unbuffered.
func LeakGuard() gin.HandlerFunc {
	return func(c *gin.Context) {
		role := c.GetString(string(domain.KeyUserRole))
		if role != domain.RoleJobSeeker {
			c.Next()
			return
		}

		buf := &bufferedWriter{ResponseWriter: c.Writer, body: &bytes.Buffer{}}
		c.Writer = buf
		c.Next()
		c.Writer = buf.ResponseWriter

		if err := visibility.ScanJSON(buf.body.Bytes()); err != nil {
			logger.Log.Error("response leak guard tripped",
				"path", c.FullPath(), "status", buf.Status(), "error", err)
			response.Error(c, http.StatusInternalServerError, "An unexpected error occurred. Please try again later.", nil)
			return
		}

		c.Writer.Write(buf.body.Bytes())
	}
}
