package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// Gstr1Status tracks where a client's period sits in the filing workflow.
type Gstr1Status string

const (
	StatusPending          Gstr1Status = "PENDING"
	StatusDataReceived     Gstr1Status = "DATA_RECEIVED"
	StatusValidationErrors Gstr1Status = "VALIDATION_ERRORS"
	StatusJSONGenerated    Gstr1Status = "JSON_GENERATED"
	StatusFiled            Gstr1Status = "FILED"
)

type FilingStatus struct {
	ID            snowflake.ID `json:"id,string" gorm:"primaryKey"`
	ClientID      snowflake.ID `json:"client_id,string" gorm:"uniqueIndex:ux_filing_statuses_period"`
	Month         int          `json:"month" gorm:"uniqueIndex:ux_filing_statuses_period"`
	Year          int          `json:"year" gorm:"uniqueIndex:ux_filing_statuses_period"`
	DataReceived  bool         `json:"data_received"`
	JSONGenerated bool         `json:"json_generated" gorm:"column:json_generated"`
	Gstr1Status   Gstr1Status  `json:"gstr1_status" gorm:"default:PENDING"`
	CreatedAt     time.Time    `json:"created_at"`
	UpdatedAt     time.Time    `json:"updated_at"`
}

func (FilingStatus) TableName() string { return "filing_statuses" }
