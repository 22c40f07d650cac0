package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/datatypes"
)

const (
	ActionClientCreated  = "client.created"
	ActionClientUpdated  = "client.updated"
	ActionInvoiceUpload  = "invoice.uploaded"
	ActionInvoiceDelete  = "invoice.deleted"
	ActionPeriodDeleted  = "invoice.period_deleted"
	ActionPeriodChecked  = "invoice.period_validated"
	ActionReturnAssembly = "gstr1.generated"
	ActionReturnFiled    = "gstr1.filed"
)

type AuditLog struct {
	ID         snowflake.ID      `json:"id,string" gorm:"primaryKey"`
	Action     string            `json:"action" gorm:"index:ix_audit_logs_action"`
	TargetType string            `json:"target_type"`
	TargetID   string            `json:"target_id"`
	Metadata   datatypes.JSONMap `json:"metadata"`
	CreatedAt  time.Time         `json:"created_at" gorm:"index:ix_audit_logs_action"`
}

func (AuditLog) TableName() string { return "audit_logs" }
