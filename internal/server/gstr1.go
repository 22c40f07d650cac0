package server

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	gstr1domain "github.com/finhive/gstdesk/internal/gstr1/domain"
	"github.com/gin-gonic/gin"
)

func (s *Server) GenerateReturn(c *gin.Context) {
	var req struct {
		Month int `json:"month"`
		Year  int `json:"year"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	resp, err := s.gstr1Svc.Generate(c.Request.Context(), gstr1domain.GenerateRequest{
		ClientID: c.Param("id"),
		Month:    req.Month,
		Year:     req.Year,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) ListReturns(c *gin.Context) {
	year := 0
	if raw := strings.TrimSpace(c.Query("year")); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			AbortWithError(c, ErrInvalidRequest)
			return
		}
		year = parsed
	}

	resp, err := s.gstr1Svc.List(c.Request.Context(), gstr1domain.ListReturnsRequest{
		ClientID: c.Param("id"),
		Year:     year,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) GetReturn(c *gin.Context) {
	resp, err := s.gstr1Svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

// DownloadReturn serves the stored document bytes under the canonical
// file name, exactly as generated.
func (s *Server) DownloadReturn(c *gin.Context) {
	ret, err := s.gstr1Svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", ret.FileName))
	c.Data(http.StatusOK, "application/json", ret.Document)
}
