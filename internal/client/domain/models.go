// Package domain contains the GST client (filer) model.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// FilingFrequency is how often a client files GSTR-1.
type FilingFrequency string

const (
	FilingMonthly   FilingFrequency = "MONTHLY"
	FilingQuarterly FilingFrequency = "QUARTERLY"
)

// Client is a registered GST filer whose invoices this service processes.
type Client struct {
	ID              snowflake.ID    `gorm:"primaryKey" json:"id"`
	Name            string          `gorm:"type:text;not null" json:"name"`
	Gstin           string          `gorm:"type:text;not null;uniqueIndex:ux_clients_gstin" json:"gstin"`
	StateCode       string          `gorm:"type:text;not null" json:"state_code"`
	Email           string          `gorm:"type:text" json:"email,omitempty"`
	Phone           string          `gorm:"type:text" json:"phone,omitempty"`
	FilingFrequency FilingFrequency `gorm:"type:text;not null;default:'MONTHLY'" json:"filing_frequency"`
	CreatedAt       time.Time       `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt       time.Time       `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// TableName sets the database table name.
func (Client) TableName() string { return "clients" }
