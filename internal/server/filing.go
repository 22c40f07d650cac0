package server

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/bwmarrin/snowflake"
	auditdomain "github.com/finhive/gstdesk/internal/audit/domain"
	clientdomain "github.com/finhive/gstdesk/internal/client/domain"
	filingdomain "github.com/finhive/gstdesk/internal/filing/domain"
	"github.com/gin-gonic/gin"
)

// GetFilingStatus returns one period's status when month/year are given,
// otherwise the client's full status history.
func (s *Server) GetFilingStatus(c *gin.Context) {
	clientID, err := parseSnowflake(c.Param("id"))
	if err != nil {
		AbortWithError(c, clientdomain.ErrInvalidID)
		return
	}

	rawMonth := strings.TrimSpace(c.Query("month"))
	rawYear := strings.TrimSpace(c.Query("year"))

	if rawMonth != "" {
		month, err := strconv.Atoi(rawMonth)
		if err != nil {
			AbortWithError(c, ErrInvalidRequest)
			return
		}
		year, err := strconv.Atoi(rawYear)
		if err != nil {
			AbortWithError(c, ErrInvalidRequest)
			return
		}

		status, err := s.filingSvc.Get(c.Request.Context(), clientID, month, year)
		if err != nil {
			AbortWithError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"data": status})
		return
	}

	year := 0
	if rawYear != "" {
		parsed, err := strconv.Atoi(rawYear)
		if err != nil {
			AbortWithError(c, ErrInvalidRequest)
			return
		}
		year = parsed
	}

	resp, err := s.filingSvc.List(c.Request.Context(), filingdomain.ListStatusRequest{
		ClientID: clientID,
		Year:     year,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) MarkFiled(c *gin.Context) {
	clientID, err := parseSnowflake(c.Param("id"))
	if err != nil {
		AbortWithError(c, clientdomain.ErrInvalidID)
		return
	}

	var req struct {
		Month int `json:"month"`
		Year  int `json:"year"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	if err := s.filingSvc.MarkFiled(c.Request.Context(), clientID, req.Month, req.Year); err != nil {
		AbortWithError(c, err)
		return
	}

	s.auditSvc.Record(c.Request.Context(), auditdomain.ActionReturnFiled, "filing_period", clientID.String(), map[string]interface{}{
		"month": req.Month,
		"year":  req.Year,
	})

	c.JSON(http.StatusOK, gin.H{"data": gin.H{"filed": true}})
}

func parseSnowflake(value string) (snowflake.ID, error) {
	id, err := snowflake.ParseString(strings.TrimSpace(value))
	if err != nil || id == 0 {
		return 0, ErrInvalidRequest
	}
	return id, nil
}
