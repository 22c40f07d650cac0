package server

import (
	"net/http"
	"strings"

	auditdomain "github.com/finhive/gstdesk/internal/audit/domain"
	clientdomain "github.com/finhive/gstdesk/internal/client/domain"
	"github.com/gin-gonic/gin"
)

type createClientRequest struct {
	Name            string `json:"name"`
	Gstin           string `json:"gstin"`
	StateCode       string `json:"state_code"`
	Email           string `json:"email"`
	Phone           string `json:"phone"`
	FilingFrequency string `json:"filing_frequency"`
}

func (s *Server) CreateClient(c *gin.Context) {
	var req createClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	resp, err := s.clientSvc.Create(c.Request.Context(), clientdomain.CreateClientRequest{
		Name:            req.Name,
		Gstin:           req.Gstin,
		StateCode:       req.StateCode,
		Email:           req.Email,
		Phone:           req.Phone,
		FilingFrequency: clientdomain.FilingFrequency(strings.ToUpper(strings.TrimSpace(req.FilingFrequency))),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	s.auditSvc.Record(c.Request.Context(), auditdomain.ActionClientCreated, "client", resp.ID.String(), map[string]interface{}{
		"name":  resp.Name,
		"gstin": resp.Gstin,
	})

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) ListClients(c *gin.Context) {
	var query struct {
		Name  string `form:"name"`
		Gstin string `form:"gstin"`
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	resp, err := s.clientSvc.List(c.Request.Context(), clientdomain.ListClientRequest{
		Name:  query.Name,
		Gstin: query.Gstin,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) GetClientByID(c *gin.Context) {
	resp, err := s.clientSvc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

type updateClientRequest struct {
	Name            *string `json:"name"`
	Email           *string `json:"email"`
	Phone           *string `json:"phone"`
	FilingFrequency *string `json:"filing_frequency"`
}

func (s *Server) UpdateClient(c *gin.Context) {
	var req updateClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	update := clientdomain.UpdateClientRequest{
		ID:    c.Param("id"),
		Name:  req.Name,
		Email: req.Email,
		Phone: req.Phone,
	}
	if req.FilingFrequency != nil {
		freq := clientdomain.FilingFrequency(strings.ToUpper(strings.TrimSpace(*req.FilingFrequency)))
		update.FilingFrequency = &freq
	}

	resp, err := s.clientSvc.Update(c.Request.Context(), update)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	s.auditSvc.Record(c.Request.Context(), auditdomain.ActionClientUpdated, "client", resp.ID.String(), map[string]interface{}{
		"name": resp.Name,
	})

	c.JSON(http.StatusOK, gin.H{"data": resp})
}
