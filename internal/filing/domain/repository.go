package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, status *FilingStatus) error
	FindPeriod(ctx context.Context, db *gorm.DB, clientID snowflake.ID, month, year int) (*FilingStatus, error)
	Update(ctx context.Context, db *gorm.DB, status *FilingStatus) error
	ListByClient(ctx context.Context, db *gorm.DB, filter ListStatusRequest) ([]*FilingStatus, error)
}
