package domain

import (
	"context"
	"errors"
)

type GenerateRequest struct {
	ClientID string
	Month    int
	Year     int
}

type GenerateResponse struct {
	ReturnID string   `json:"return_id"`
	FileName string   `json:"file_name"`
	Document Document `json:"document"`
	Metadata Metadata `json:"metadata"`
}

type ListReturnsRequest struct {
	ClientID string
	Year     int
}

type ListReturnsResponse struct {
	Returns []FiledReturn `json:"returns"`
}

type Service interface {
	// Generate refuses unless the period has at least one VALID invoice and
	// zero INVALID ones; the assembler itself never rejects.
	Generate(ctx context.Context, req GenerateRequest) (GenerateResponse, error)
	List(ctx context.Context, req ListReturnsRequest) (ListReturnsResponse, error)
	Get(ctx context.Context, id string) (FiledReturn, error)
}

var (
	ErrInvalidClient      = errors.New("invalid_client")
	ErrInvalidPeriod      = errors.New("invalid_period")
	ErrInvalidID          = errors.New("invalid_id")
	ErrClientNotFound     = errors.New("client_not_found")
	ErrNotFound           = errors.New("not_found")
	ErrNoValidInvoices    = errors.New("no_valid_invoices")
	ErrPeriodHasErrors    = errors.New("period_has_validation_errors")
	ErrPeriodNotValidated = errors.New("period_not_validated")
)
