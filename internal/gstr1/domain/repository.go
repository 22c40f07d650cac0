package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, ret *FiledReturn) error
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*FiledReturn, error)
	ListByClient(ctx context.Context, db *gorm.DB, filter ListReturnsRequest, clientID snowflake.ID) ([]*FiledReturn, error)
}
