package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	InsertBatch(ctx context.Context, db *gorm.DB, invoices []*InvoiceData) error
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*InvoiceData, error)
	ListPeriod(ctx context.Context, db *gorm.DB, clientID snowflake.ID, month, year int) ([]*InvoiceData, error)
	ListPeriodWithFindings(ctx context.Context, db *gorm.DB, clientID snowflake.ID, month, year int, status ValidationStatus) ([]*InvoiceData, error)
	CountPeriodByStatus(ctx context.Context, db *gorm.DB, clientID snowflake.ID, month, year int, status ValidationStatus) (int64, error)
	ReplaceFindings(ctx context.Context, db *gorm.DB, invoiceID snowflake.ID, findings []*ValidationFinding) error
	UpdateVerdict(ctx context.Context, db *gorm.DB, invoiceID snowflake.ID, status ValidationStatus, category Category) error
	Delete(ctx context.Context, db *gorm.DB, id snowflake.ID) error
	DeletePeriod(ctx context.Context, db *gorm.DB, clientID snowflake.ID, month, year int) (int64, error)
}
