package server

import (
	"net/http"
	"strconv"
	"strings"

	auditdomain "github.com/finhive/gstdesk/internal/audit/domain"
	"github.com/gin-gonic/gin"
)

func (s *Server) ListAuditLogs(c *gin.Context) {
	limit := 0
	if raw := strings.TrimSpace(c.Query("limit")); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			AbortWithError(c, ErrInvalidRequest)
			return
		}
		limit = parsed
	}

	resp, err := s.auditSvc.List(c.Request.Context(), auditdomain.ListAuditRequest{
		Action: strings.TrimSpace(c.Query("action")),
		Limit:  limit,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}
