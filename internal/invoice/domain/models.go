// Package domain contains persistence models for uploaded invoice rows.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// ValidationStatus represents the per-invoice validation verdict.
type ValidationStatus string

const (
	StatusPending ValidationStatus = "PENDING"
	StatusValid   ValidationStatus = "VALID"
	StatusInvalid ValidationStatus = "INVALID"
)

// NoteType marks credit/debit note rows.
type NoteType string

const (
	NoteTypeCredit NoteType = "CREDIT"
	NoteTypeDebit  NoteType = "DEBIT"
)

// Category is the statutory transaction category of an invoice.
type Category string

const (
	CategoryB2B  Category = "B2B"
	CategoryB2CL Category = "B2CL"
	CategoryB2CS Category = "B2CS"
	CategoryCDNR Category = "CDNR"
	CategoryEXP  Category = "EXP"
)

// Severity of a validation finding.
type Severity string

const (
	SeverityError   Severity = "ERROR"
	SeverityWarning Severity = "WARNING"
)

// InvoiceData is one uploaded sales-invoice line for a filing period.
// The core never mutates the declared fields; validation status and
// transaction type are derived and recomputed on every validation run.
type InvoiceData struct {
	ID            snowflake.ID `gorm:"primaryKey" json:"id"`
	ClientID      snowflake.ID `gorm:"not null;index:ix_invoice_data_period,priority:1" json:"client_id"`
	Month         int          `gorm:"not null;index:ix_invoice_data_period,priority:3" json:"month"`
	Year          int          `gorm:"not null;index:ix_invoice_data_period,priority:2" json:"year"`
	InvoiceNumber string       `gorm:"type:text;not null" json:"invoice_number"`
	InvoiceDate   string       `gorm:"type:text;not null" json:"invoice_date"`
	BuyerGstin    string       `gorm:"type:text" json:"buyer_gstin,omitempty"`
	BuyerName     string       `gorm:"type:text" json:"buyer_name,omitempty"`
	PlaceOfSupply string       `gorm:"type:text" json:"place_of_supply,omitempty"`
	ReverseCharge bool         `gorm:"not null;default:false" json:"reverse_charge"`
	InvoiceValue  float64      `gorm:"type:numeric(15,2);not null;default:0" json:"invoice_value"`
	TaxableValue  float64      `gorm:"type:numeric(15,2);not null;default:0" json:"taxable_value"`
	TaxRate       float64      `gorm:"type:numeric(5,2);not null;default:0" json:"tax_rate"`
	IgstAmount    float64      `gorm:"type:numeric(15,2);not null;default:0" json:"igst_amount"`
	CgstAmount    float64      `gorm:"type:numeric(15,2);not null;default:0" json:"cgst_amount"`
	SgstAmount    float64      `gorm:"type:numeric(15,2);not null;default:0" json:"sgst_amount"`
	CessAmount    float64      `gorm:"type:numeric(15,2);not null;default:0" json:"cess_amount"`
	HsnCode       string       `gorm:"type:text" json:"hsn_code,omitempty"`
	Description   string       `gorm:"type:text" json:"description,omitempty"`
	NoteType      NoteType     `gorm:"type:text" json:"note_type,omitempty"`
	ExportType    string       `gorm:"type:text" json:"export_type,omitempty"`
	RowNumber     int          `gorm:"not null;default:0" json:"row_number"`
	UploadBatchID string       `gorm:"type:text" json:"upload_batch_id,omitempty"`

	ValidationStatus ValidationStatus `gorm:"type:text;not null;default:'PENDING'" json:"validation_status"`
	TransactionType  Category         `gorm:"type:text" json:"transaction_type,omitempty"`

	Findings []ValidationFinding `gorm:"foreignKey:InvoiceDataID" json:"findings,omitempty"`

	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// TableName sets the database table name.
func (InvoiceData) TableName() string { return "invoice_data" }

// ValidationFinding is one persisted validation result attached to an invoice.
// Findings are wiped and regenerated on every validation run.
type ValidationFinding struct {
	ID            snowflake.ID `gorm:"primaryKey" json:"id"`
	InvoiceDataID snowflake.ID `gorm:"not null;index" json:"invoice_data_id"`
	ErrorType     string       `gorm:"type:text;not null" json:"error_type"`
	FieldName     string       `gorm:"type:text;not null" json:"field_name"`
	Message       string       `gorm:"type:text;not null" json:"message"`
	Severity      Severity     `gorm:"type:text;not null" json:"severity"`
	CreatedAt     time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
}

// TableName sets the database table name.
func (ValidationFinding) TableName() string { return "validation_findings" }

// Finding is a not-yet-persisted validation result.
type Finding struct {
	ErrorType string   `json:"error_type"`
	FieldName string   `json:"field_name"`
	Message   string   `json:"message"`
	Severity  Severity `json:"severity"`
}

// HasError reports whether any finding carries ERROR severity.
func HasError(findings []Finding) bool {
	for _, f := range findings {
		if f.Severity == SeverityError {
			return true
		}
	}
	return false
}
