package repository

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/finhive/gstdesk/internal/invoice/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) InsertBatch(ctx context.Context, db *gorm.DB, invoices []*domain.InvoiceData) error {
	if len(invoices) == 0 {
		return nil
	}
	return db.WithContext(ctx).Create(invoices).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*domain.InvoiceData, error) {
	var inv domain.InvoiceData
	err := db.WithContext(ctx).
		Where("id = ?", id).
		First(&inv).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &inv, nil
}

func (r *repo) ListPeriod(ctx context.Context, db *gorm.DB, clientID snowflake.ID, month, year int) ([]*domain.InvoiceData, error) {
	var invoices []*domain.InvoiceData
	err := db.WithContext(ctx).
		Where("client_id = ? AND month = ? AND year = ?", clientID, month, year).
		Order("row_number asc, created_at asc, id asc").
		Find(&invoices).Error
	if err != nil {
		return nil, err
	}
	return invoices, nil
}

func (r *repo) ListPeriodWithFindings(ctx context.Context, db *gorm.DB, clientID snowflake.ID, month, year int, status domain.ValidationStatus) ([]*domain.InvoiceData, error) {
	var invoices []*domain.InvoiceData
	stmt := db.WithContext(ctx).
		Preload("Findings").
		Where("client_id = ? AND month = ? AND year = ?", clientID, month, year)
	if status != "" {
		stmt = stmt.Where("validation_status = ?", status)
	}
	err := stmt.
		Order("row_number asc, created_at asc, id asc").
		Find(&invoices).Error
	if err != nil {
		return nil, err
	}
	return invoices, nil
}

func (r *repo) CountPeriodByStatus(ctx context.Context, db *gorm.DB, clientID snowflake.ID, month, year int, status domain.ValidationStatus) (int64, error) {
	var count int64
	err := db.WithContext(ctx).
		Model(&domain.InvoiceData{}).
		Where("client_id = ? AND month = ? AND year = ? AND validation_status = ?", clientID, month, year, status).
		Count(&count).Error
	return count, err
}

func (r *repo) ReplaceFindings(ctx context.Context, db *gorm.DB, invoiceID snowflake.ID, findings []*domain.ValidationFinding) error {
	if err := db.WithContext(ctx).
		Where("invoice_data_id = ?", invoiceID).
		Delete(&domain.ValidationFinding{}).Error; err != nil {
		return err
	}
	if len(findings) == 0 {
		return nil
	}
	return db.WithContext(ctx).Create(findings).Error
}

func (r *repo) UpdateVerdict(ctx context.Context, db *gorm.DB, invoiceID snowflake.ID, status domain.ValidationStatus, category domain.Category) error {
	return db.WithContext(ctx).
		Model(&domain.InvoiceData{}).
		Where("id = ?", invoiceID).
		Updates(map[string]any{
			"validation_status": status,
			"transaction_type":  category,
		}).Error
}

func (r *repo) Delete(ctx context.Context, db *gorm.DB, id snowflake.ID) error {
	if err := db.WithContext(ctx).
		Where("invoice_data_id = ?", id).
		Delete(&domain.ValidationFinding{}).Error; err != nil {
		return err
	}
	return db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&domain.InvoiceData{}).Error
}

func (r *repo) DeletePeriod(ctx context.Context, db *gorm.DB, clientID snowflake.ID, month, year int) (int64, error) {
	sub := db.Model(&domain.InvoiceData{}).
		Select("id").
		Where("client_id = ? AND month = ? AND year = ?", clientID, month, year)
	if err := db.WithContext(ctx).
		Where("invoice_data_id IN (?)", sub).
		Delete(&domain.ValidationFinding{}).Error; err != nil {
		return 0, err
	}

	result := db.WithContext(ctx).
		Where("client_id = ? AND month = ? AND year = ?", clientID, month, year).
		Delete(&domain.InvoiceData{})
	return result.RowsAffected, result.Error
}
