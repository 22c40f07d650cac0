package repository

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/finhive/gstdesk/internal/filing/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, status *domain.FilingStatus) error {
	return db.WithContext(ctx).Create(status).Error
}

func (r *repo) FindPeriod(ctx context.Context, db *gorm.DB, clientID snowflake.ID, month, year int) (*domain.FilingStatus, error) {
	var status domain.FilingStatus
	err := db.WithContext(ctx).
		Where("client_id = ? AND month = ? AND year = ?", clientID, month, year).
		First(&status).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &status, nil
}

func (r *repo) Update(ctx context.Context, db *gorm.DB, status *domain.FilingStatus) error {
	return db.WithContext(ctx).Save(status).Error
}

func (r *repo) ListByClient(ctx context.Context, db *gorm.DB, filter domain.ListStatusRequest) ([]*domain.FilingStatus, error) {
	var statuses []*domain.FilingStatus
	stmt := db.WithContext(ctx).
		Model(&domain.FilingStatus{}).
		Where("client_id = ?", filter.ClientID)
	if filter.Year != 0 {
		stmt = stmt.Where("year = ?", filter.Year)
	}
	err := stmt.
		Order("year desc, month desc").
		Find(&statuses).Error
	if err != nil {
		return nil, err
	}
	return statuses, nil
}
