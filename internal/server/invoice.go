package server

import (
	"net/http"
	"strconv"
	"strings"

	invoicedomain "github.com/finhive/gstdesk/internal/invoice/domain"
	"github.com/gin-gonic/gin"
)

// UploadInvoices accepts a multipart form with the workbook under "file"
// and the filing period in "month"/"year" fields.
func (s *Server) UploadInvoices(c *gin.Context) {
	month, year, err := formPeriod(c)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		AbortWithError(c, invoicedomain.ErrMissingWorkbook)
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		AbortWithError(c, invoicedomain.ErrMissingWorkbook)
		return
	}
	defer file.Close()

	resp, err := s.invoiceSvc.Upload(c.Request.Context(), invoicedomain.UploadRequest{
		ClientID: c.Param("id"),
		Month:    month,
		Year:     year,
		File:     file,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) ListInvoices(c *gin.Context) {
	month, year, err := queryPeriod(c)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	status := invoicedomain.ValidationStatus(strings.ToUpper(strings.TrimSpace(c.Query("status"))))
	switch status {
	case "", invoicedomain.StatusPending, invoicedomain.StatusValid, invoicedomain.StatusInvalid:
	default:
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	resp, err := s.invoiceSvc.List(c.Request.Context(), invoicedomain.ListInvoiceRequest{
		ClientID: c.Param("id"),
		Month:    month,
		Year:     year,
		Status:   status,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) ValidatePeriod(c *gin.Context) {
	var req struct {
		Month int `json:"month"`
		Year  int `json:"year"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	resp, err := s.invoiceSvc.ValidatePeriod(c.Request.Context(), invoicedomain.ValidatePeriodRequest{
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

func (s *Server) DeleteInvoice(c *gin.Context) {
	if err := s.invoiceSvc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": gin.H{"deleted": true}})
}

func (s *Server) DeleteInvoicePeriod(c *gin.Context) {
	month, year, err := queryPeriod(c)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	deleted, err := s.invoiceSvc.DeletePeriod(c.Request.Context(), invoicedomain.DeletePeriodRequest{
		ClientID: c.Param("id"),
		Month:    month,
		Year:     year,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": gin.H{"deleted": deleted}})
}

func formPeriod(c *gin.Context) (int, int, error) {
	month, err := strconv.Atoi(strings.TrimSpace(c.PostForm("month")))
	if err != nil {
		return 0, 0, ErrInvalidRequest
	}
	year, err := strconv.Atoi(strings.TrimSpace(c.PostForm("year")))
	if err != nil {
		return 0, 0, ErrInvalidRequest
	}
	return month, year, nil
}

func queryPeriod(c *gin.Context) (int, int, error) {
	month, err := strconv.Atoi(strings.TrimSpace(c.Query("month")))
	if err != nil {
		return 0, 0, ErrInvalidRequest
	}
	year, err := strconv.Atoi(strings.TrimSpace(c.Query("year")))
	if err != nil {
		return 0, 0, ErrInvalidRequest
	}
	return month, year, nil
}
