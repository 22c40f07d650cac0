// Package validate implements the statutory rule checks for a filing period.
//
// The engine is two-phase by contract: the caller materializes the complete
// period's invoice set first, then evaluates each invoice against it. The
// duplicate-number rule cannot be decided on a stream.
package validate

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/finhive/gstdesk/internal/clock"
	"github.com/finhive/gstdesk/internal/gst"
	"github.com/finhive/gstdesk/internal/invoice/classify"
	"github.com/finhive/gstdesk/internal/invoice/domain"
)

// Tolerance is the permitted absolute difference between a declared tax
// amount and the amount recomputed from taxable value and rate.
const Tolerance = 0.01

// toleranceSlack absorbs float64 representation noise so a declared amount
// sitting exactly on the tolerance boundary (e.g. 9000.01 against an
// expected 9000.00) is not rejected for being ~1e-13 over.
const toleranceSlack = 1e-9

const (
	errTypeGstinFormat    = "gstin_format"
	errTypeDuplicate      = "duplicate_invoice"
	errTypeTaxCalculation = "tax_calculation"
	errTypeRequiredField  = "required_field"
	errTypeDateFormat     = "date_format"
	errTypeHsnCode        = "hsn_code"
)

var dateRegex = regexp.MustCompile(`^(\d{2})-(\d{2})-(\d{4})$`)

// Engine runs the six rule checks. It never mutates invoices and never
// aborts on a failing rule; all findings are accumulated.
type Engine struct {
	clock clock.Clock
}

func NewEngine(c clock.Clock) *Engine {
	return &Engine{clock: c}
}

// Validate checks one invoice against the whole period's invoice set and
// returns every finding. An invoice is INVALID iff at least one finding has
// ERROR severity.
func (e *Engine) Validate(inv *domain.InvoiceData, all []*domain.InvoiceData) []domain.Finding {
	var findings []domain.Finding

	findings = append(findings, e.checkGstinFormat(inv)...)
	findings = append(findings, e.checkDuplicateNumber(inv, all)...)
	findings = append(findings, e.checkTaxCalculation(inv)...)
	findings = append(findings, e.checkRequiredFields(inv)...)
	findings = append(findings, e.checkDate(inv)...)
	findings = append(findings, e.checkHsnCode(inv)...)

	return findings
}

// Verdict maps a finding list to the invoice status.
func Verdict(findings []domain.Finding) domain.ValidationStatus {
	if domain.HasError(findings) {
		return domain.StatusInvalid
	}
	return domain.StatusValid
}

// Rule 1: buyer GSTIN structure, skipped when absent.
func (e *Engine) checkGstinFormat(inv *domain.InvoiceData) []domain.Finding {
	gstin := inv.BuyerGstin
	if gstin == "" {
		return nil
	}

	if !gst.IsValidGSTIN(gstin) {
		return []domain.Finding{{
			ErrorType: errTypeGstinFormat,
			FieldName: "buyer_gstin",
			Message:   fmt.Sprintf("GSTIN %q does not match required 15-character format", gstin),
			Severity:  domain.SeverityError,
		}}
	}

	if code := gst.StateCodeOf(gstin); !gst.IsValidStateCode(code) {
		return []domain.Finding{{
			ErrorType: errTypeGstinFormat,
			FieldName: "buyer_gstin",
			Message:   fmt.Sprintf("GSTIN %q has invalid state code %q (must be 01-38)", gstin, code),
			Severity:  domain.SeverityError,
		}}
	}

	return nil
}

// Rule 2: duplicate invoice numbers within the period. Symmetric on purpose:
// every member of a colliding set reports the others' row numbers.
func (e *Engine) checkDuplicateNumber(inv *domain.InvoiceData, all []*domain.InvoiceData) []domain.Finding {
	var rows []string
	for _, other := range all {
		if other.ID == inv.ID {
			continue
		}
		if other.InvoiceNumber == inv.InvoiceNumber {
			rows = append(rows, strconv.Itoa(other.RowNumber))
		}
	}
	if len(rows) == 0 {
		return nil
	}

	return []domain.Finding{{
		ErrorType: errTypeDuplicate,
		FieldName: "invoice_number",
		Message:   fmt.Sprintf("Invoice number %q already exists for this period (also in row %s)", inv.InvoiceNumber, strings.Join(rows, ", ")),
		Severity:  domain.SeverityError,
	}}
}

// Rule 3: declared tax amounts against taxable value x rate, tolerance 0.01.
// The IGST path and the CGST/SGST path are checked independently; the
// all-zero WARNING fires only when no tax amount is declared at all.
func (e *Engine) checkTaxCalculation(inv *domain.InvoiceData) []domain.Finding {
	var findings []domain.Finding

	expected := inv.TaxableValue * inv.TaxRate / 100

	if inv.IgstAmount > 0 {
		if exceedsTolerance(expected, inv.IgstAmount) {
			findings = append(findings, domain.Finding{
				ErrorType: errTypeTaxCalculation,
				FieldName: "igst_amount",
				Message:   fmt.Sprintf("IGST amount %v does not match expected %.2f (taxable: %v x rate: %v%%)", inv.IgstAmount, expected, inv.TaxableValue, inv.TaxRate),
				Severity:  domain.SeverityError,
			})
		}
	}

	if inv.CgstAmount > 0 || inv.SgstAmount > 0 {
		half := expected / 2
		if exceedsTolerance(half, inv.CgstAmount) {
			findings = append(findings, domain.Finding{
				ErrorType: errTypeTaxCalculation,
				FieldName: "cgst_amount",
				Message:   fmt.Sprintf("CGST amount %v does not match expected %.2f (half of %.2f)", inv.CgstAmount, half, expected),
				Severity:  domain.SeverityError,
			})
		}
		if exceedsTolerance(half, inv.SgstAmount) {
			findings = append(findings, domain.Finding{
				ErrorType: errTypeTaxCalculation,
				FieldName: "sgst_amount",
				Message:   fmt.Sprintf("SGST amount %v does not match expected %.2f (half of %.2f)", inv.SgstAmount, half, expected),
				Severity:  domain.SeverityError,
			})
		}
	}

	if inv.IgstAmount == 0 && inv.CgstAmount == 0 && inv.SgstAmount == 0 && inv.TaxRate > 0 {
		findings = append(findings, domain.Finding{
			ErrorType: errTypeTaxCalculation,
			FieldName: "tax_amounts",
			Message:   fmt.Sprintf("No tax amounts declared but tax rate is %v%%", inv.TaxRate),
			Severity:  domain.SeverityWarning,
		})
	}

	return findings
}

func exceedsTolerance(expected, declared float64) bool {
	return math.Abs(expected-declared) > Tolerance+toleranceSlack
}

// Rule 4: mandatory fields. Buyer GSTIN is mandatory only when the invoice
// classifies as B2B.
func (e *Engine) checkRequiredFields(inv *domain.InvoiceData) []domain.Finding {
	var findings []domain.Finding

	if strings.TrimSpace(inv.InvoiceNumber) == "" {
		findings = append(findings, domain.Finding{
			ErrorType: errTypeRequiredField,
			FieldName: "invoice_number",
			Message:   "Invoice number is required",
			Severity:  domain.SeverityError,
		})
	}

	if strings.TrimSpace(inv.InvoiceDate) == "" {
		findings = append(findings, domain.Finding{
			ErrorType: errTypeRequiredField,
			FieldName: "invoice_date",
			Message:   "Invoice date is required",
			Severity:  domain.SeverityError,
		})
	}

	if inv.TaxableValue == 0 && inv.NoteType == "" {
		findings = append(findings, domain.Finding{
			ErrorType: errTypeRequiredField,
			FieldName: "taxable_value",
			Message:   "Taxable value is required and must be greater than zero",
			Severity:  domain.SeverityWarning,
		})
	}

	if classify.Classify(inv) == domain.CategoryB2B && strings.TrimSpace(inv.BuyerGstin) == "" {
		findings = append(findings, domain.Finding{
			ErrorType: errTypeRequiredField,
			FieldName: "buyer_gstin",
			Message:   "Buyer GSTIN is required for B2B transactions",
			Severity:  domain.SeverityError,
		})
	}

	return findings
}

// Rule 5: DD-MM-YYYY, real calendar date, within the declared filing period
// (WARNING only), not in the future.
func (e *Engine) checkDate(inv *domain.InvoiceData) []domain.Finding {
	dateStr := inv.InvoiceDate
	if dateStr == "" {
		return nil
	}

	match := dateRegex.FindStringSubmatch(dateStr)
	if match == nil {
		return []domain.Finding{{
			ErrorType: errTypeDateFormat,
			FieldName: "invoice_date",
			Message:   fmt.Sprintf("Date %q is not in DD-MM-YYYY format", dateStr),
			Severity:  domain.SeverityError,
		}}
	}

	day, _ := strconv.Atoi(match[1])
	month, _ := strconv.Atoi(match[2])
	year, _ := strconv.Atoi(match[3])

	date := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if date.Year() != year || date.Month() != time.Month(month) || date.Day() != day {
		return []domain.Finding{{
			ErrorType: errTypeDateFormat,
			FieldName: "invoice_date",
			Message:   fmt.Sprintf("Date %q is not a valid calendar date", dateStr),
			Severity:  domain.SeverityError,
		}}
	}

	var findings []domain.Finding

	if month != inv.Month || year != inv.Year {
		findings = append(findings, domain.Finding{
			ErrorType: errTypeDateFormat,
			FieldName: "invoice_date",
			Message:   fmt.Sprintf("Invoice date %s is not within the filing period %02d/%d", dateStr, inv.Month, inv.Year),
			Severity:  domain.SeverityWarning,
		})
	}

	if date.After(e.clock.Now()) {
		findings = append(findings, domain.Finding{
			ErrorType: errTypeDateFormat,
			FieldName: "invoice_date",
			Message:   fmt.Sprintf("Invoice date %q is a future date", dateStr),
			Severity:  domain.SeverityError,
		})
	}

	return findings
}

// Rule 6: HSN/SAC code shape, skipped silently when absent.
func (e *Engine) checkHsnCode(inv *domain.InvoiceData) []domain.Finding {
	hsn := strings.TrimSpace(inv.HsnCode)
	if hsn == "" {
		return nil
	}

	for _, r := range hsn {
		if r < '0' || r > '9' {
			return []domain.Finding{{
				ErrorType: errTypeHsnCode,
				FieldName: "hsn_code",
				Message:   fmt.Sprintf("HSN/SAC code %q must be numeric", hsn),
				Severity:  domain.SeverityError,
			}}
		}
	}

	if l := len(hsn); l != 4 && l != 6 && l != 8 {
		return []domain.Finding{{
			ErrorType: errTypeHsnCode,
			FieldName: "hsn_code",
			Message:   fmt.Sprintf("HSN/SAC code %q must be 4, 6, or 8 digits (got %d)", hsn, l),
			Severity:  domain.SeverityError,
		}}
	}

	return nil
}
