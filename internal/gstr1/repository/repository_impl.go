package repository

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/finhive/gstdesk/internal/gstr1/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, ret *domain.FiledReturn) error {
	return db.WithContext(ctx).Create(ret).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*domain.FiledReturn, error) {
	var ret domain.FiledReturn
	err := db.WithContext(ctx).
		Where("id = ?", id).
		First(&ret).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &ret, nil
}

func (r *repo) ListByClient(ctx context.Context, db *gorm.DB, filter domain.ListReturnsRequest, clientID snowflake.ID) ([]*domain.FiledReturn, error) {
	var returns []*domain.FiledReturn
	stmt := db.WithContext(ctx).
		Model(&domain.FiledReturn{}).
		Where("client_id = ?", clientID)
	if filter.Year != 0 {
		stmt = stmt.Where("year = ?", filter.Year)
	}
	err := stmt.
		Order("created_at desc, id desc").
		Find(&returns).Error
	if err != nil {
		return nil, err
	}
	return returns, nil
}
