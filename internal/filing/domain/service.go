package domain

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
)

type ListStatusRequest struct {
	ClientID snowflake.ID
	Year     int
}

type ListStatusResponse struct {
	Statuses []FilingStatus `json:"statuses"`
}

type Service interface {
	// MarkDataReceived is called after a successful upload for the period.
	MarkDataReceived(ctx context.Context, clientID snowflake.ID, month, year int) error
	// MarkValidationOutcome moves the period to VALIDATION_ERRORS or back to
	// DATA_RECEIVED depending on whether any invoice failed validation.
	MarkValidationOutcome(ctx context.Context, clientID snowflake.ID, month, year int, hasErrors bool) error
	MarkJSONGenerated(ctx context.Context, clientID snowflake.ID, month, year int) error
	MarkFiled(ctx context.Context, clientID snowflake.ID, month, year int) error
	Get(ctx context.Context, clientID snowflake.ID, month, year int) (FilingStatus, error)
	List(ctx context.Context, req ListStatusRequest) (ListStatusResponse, error)
}

var (
	ErrInvalidPeriod = errors.New("invalid_period")
	ErrNotFound      = errors.New("not_found")
	ErrNotGenerated  = errors.New("json_not_generated")
)
