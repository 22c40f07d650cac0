package domain

import (
	"context"
	"errors"
	"io"
)

type UploadRequest struct {
	ClientID string
	Month    int
	Year     int
	File     io.Reader
}

type UploadResponse struct {
	BatchID       string `json:"batch_id"`
	Uploaded      int    `json:"uploaded"`
	TotalInPeriod int    `json:"total_in_period"`
	Valid         int    `json:"valid"`
	Invalid       int    `json:"invalid"`
	TotalErrors   int    `json:"total_errors"`
	TotalWarnings int    `json:"total_warnings"`
}

type ValidatePeriodRequest struct {
	ClientID string
	Month    int
	Year     int
}

type ValidatePeriodResponse struct {
	TotalInvoices int `json:"total_invoices"`
	Valid         int `json:"valid"`
	Invalid       int `json:"invalid"`
	TotalErrors   int `json:"total_errors"`
	TotalWarnings int `json:"total_warnings"`
}

type ListInvoiceRequest struct {
	ClientID string
	Month    int
	Year     int
	Status   ValidationStatus
}

type ListInvoiceResponse struct {
	Invoices []InvoiceData `json:"invoices"`
}

type DeletePeriodRequest struct {
	ClientID string
	Month    int
	Year     int
}

type Service interface {
	Upload(ctx context.Context, req UploadRequest) (UploadResponse, error)
	ValidatePeriod(ctx context.Context, req ValidatePeriodRequest) (ValidatePeriodResponse, error)
	List(ctx context.Context, req ListInvoiceRequest) (ListInvoiceResponse, error)
	Delete(ctx context.Context, id string) error
	DeletePeriod(ctx context.Context, req DeletePeriodRequest) (int64, error)
}

var (
	ErrInvalidClient   = errors.New("invalid_client")
	ErrInvalidPeriod   = errors.New("invalid_period")
	ErrInvalidID       = errors.New("invalid_id")
	ErrNotFound        = errors.New("not_found")
	ErrEmptyWorkbook   = errors.New("empty_workbook")
	ErrTooManyRows     = errors.New("too_many_rows")
	ErrNoInvoices      = errors.New("no_invoices_in_period")
	ErrClientNotFound  = errors.New("client_not_found")
	ErrMissingWorkbook = errors.New("missing_workbook")
)
