package domain

import (
	"context"
	"errors"
)

type CreateClientRequest struct {
	Name            string
	Gstin           string
	StateCode       string
	Email           string
	Phone           string
	FilingFrequency FilingFrequency
}

type UpdateClientRequest struct {
	ID              string
	Name            *string
	Email           *string
	Phone           *string
	FilingFrequency *FilingFrequency
}

type ListClientRequest struct {
	Name  string
	Gstin string
}

type ListClientResponse struct {
	Clients []Client `json:"clients"`
}

type Service interface {
	Create(ctx context.Context, req CreateClientRequest) (Client, error)
	List(ctx context.Context, req ListClientRequest) (ListClientResponse, error)
	GetByID(ctx context.Context, id string) (Client, error)
	Update(ctx context.Context, req UpdateClientRequest) (Client, error)
}

var (
	ErrInvalidName      = errors.New("invalid_name")
	ErrInvalidGstin     = errors.New("invalid_gstin")
	ErrInvalidStateCode = errors.New("invalid_state_code")
	ErrInvalidFrequency = errors.New("invalid_filing_frequency")
	ErrInvalidID        = errors.New("invalid_id")
	ErrGstinExists      = errors.New("gstin_exists")
	ErrNotFound         = errors.New("not_found")
)
