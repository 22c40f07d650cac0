package repository

import (
	"context"

	"github.com/finhive/gstdesk/internal/audit/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, entry *domain.AuditLog) error {
	return db.WithContext(ctx).Create(entry).Error
}

func (r *repo) List(ctx context.Context, db *gorm.DB, filter domain.ListAuditRequest) ([]*domain.AuditLog, error) {
	var entries []*domain.AuditLog
	stmt := db.WithContext(ctx).Model(&domain.AuditLog{})
	if filter.Action != "" {
		stmt = stmt.Where("action = ?", filter.Action)
	}
	limit := filter.Limit
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	err := stmt.
		Order("created_at desc, id desc").
		Limit(limit).
		Find(&entries).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}
