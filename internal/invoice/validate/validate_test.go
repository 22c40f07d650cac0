package validate

import (
	"testing"
	"time"

	"github.com/finhive/gstdesk/internal/clock"
	"github.com/finhive/gstdesk/internal/invoice/domain"
	"github.com/stretchr/testify/assert"
)

func newTestEngine() *Engine {
	// Fixed "now" so the future-date rule is deterministic.
	return NewEngine(clock.NewFakeClock(time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)))
}

func validInvoice() *domain.InvoiceData {
	return &domain.InvoiceData{
		ID:            1,
		InvoiceNumber: "INV-001",
		InvoiceDate:   "05-02-2026",
		BuyerGstin:    "24AABCT1234E1Z5",
		TaxableValue:  50000,
		TaxRate:       18,
		CgstAmount:    4500,
		SgstAmount:    4500,
		HsnCode:       "1234",
		Month:         2,
		Year:          2026,
		RowNumber:     1,
	}
}

func findingsOfType(findings []domain.Finding, errorType string) []domain.Finding {
	var out []domain.Finding
	for _, f := range findings {
		if f.ErrorType == errorType {
			out = append(out, f)
		}
	}
	return out
}

func TestValidate_CleanInvoice(t *testing.T) {
	e := newTestEngine()
	inv := validInvoice()
	findings := e.Validate(inv, []*domain.InvoiceData{inv})
	assert.Empty(t, findings)
	assert.Equal(t, domain.StatusValid, Verdict(findings))
}

func TestValidate_GstinFormat(t *testing.T) {
	e := newTestEngine()

	inv := validInvoice()
	inv.BuyerGstin = "24AABCT1234E1X5"
	findings := findingsOfType(e.Validate(inv, []*domain.InvoiceData{inv}), "gstin_format")
	assert.Len(t, findings, 1)
	assert.Equal(t, domain.SeverityError, findings[0].Severity)

	// Structurally fine but state code out of range.
	inv = validInvoice()
	inv.BuyerGstin = "99AABCT1234E1Z5"
	findings = findingsOfType(e.Validate(inv, []*domain.InvoiceData{inv}), "gstin_format")
	assert.Len(t, findings, 1)
	assert.Contains(t, findings[0].Message, "state code")

	// Absent GSTIN is skipped (and the invoice is no longer B2B).
	inv = validInvoice()
	inv.BuyerGstin = ""
	findings = findingsOfType(e.Validate(inv, []*domain.InvoiceData{inv}), "gstin_format")
	assert.Empty(t, findings)
}

func TestValidate_DuplicateNumbers_Symmetric(t *testing.T) {
	e := newTestEngine()

	a := validInvoice()
	a.ID = 1
	a.RowNumber = 1
	b := validInvoice()
	b.ID = 2
	b.RowNumber = 2
	b.InvoiceNumber = a.InvoiceNumber

	all := []*domain.InvoiceData{a, b}

	fa := findingsOfType(e.Validate(a, all), "duplicate_invoice")
	fb := findingsOfType(e.Validate(b, all), "duplicate_invoice")

	assert.Len(t, fa, 1)
	assert.Len(t, fb, 1)
	assert.Contains(t, fa[0].Message, "row 2")
	assert.Contains(t, fb[0].Message, "row 1")
	assert.Equal(t, domain.SeverityError, fa[0].Severity)
}

func TestValidate_DuplicateNumbers_CaseSensitive(t *testing.T) {
	e := newTestEngine()

	a := validInvoice()
	a.ID = 1
	b := validInvoice()
	b.ID = 2
	b.InvoiceNumber = "inv-001" // different case, not a duplicate

	all := []*domain.InvoiceData{a, b}
	assert.Empty(t, findingsOfType(e.Validate(a, all), "duplicate_invoice"))
}

func TestValidate_TaxToleranceBoundary(t *testing.T) {
	e := newTestEngine()

	// taxable=50000, rate=18 => expected 9000
	inv := validInvoice()
	inv.CgstAmount = 0
	inv.SgstAmount = 0
	inv.IgstAmount = 9000.01
	assert.Empty(t, findingsOfType(e.Validate(inv, []*domain.InvoiceData{inv}), "tax_calculation"))

	inv.IgstAmount = 9000.02
	findings := findingsOfType(e.Validate(inv, []*domain.InvoiceData{inv}), "tax_calculation")
	assert.Len(t, findings, 1)
	assert.Equal(t, "igst_amount", findings[0].FieldName)
	assert.Equal(t, domain.SeverityError, findings[0].Severity)

	// Same boundary on the split path: each half may sit 0.01 off 4500.
	inv = validInvoice()
	inv.CgstAmount = 4500.01
	inv.SgstAmount = 4499.99
	assert.Empty(t, findingsOfType(e.Validate(inv, []*domain.InvoiceData{inv}), "tax_calculation"))

	inv.SgstAmount = 4499.98
	findings = findingsOfType(e.Validate(inv, []*domain.InvoiceData{inv}), "tax_calculation")
	assert.Len(t, findings, 1)
	assert.Equal(t, "sgst_amount", findings[0].FieldName)
}

func TestValidate_TaxSplitChecks(t *testing.T) {
	e := newTestEngine()

	inv := validInvoice()
	inv.CgstAmount = 4500
	inv.SgstAmount = 4000
	findings := findingsOfType(e.Validate(inv, []*domain.InvoiceData{inv}), "tax_calculation")
	assert.Len(t, findings, 1)
	assert.Equal(t, "sgst_amount", findings[0].FieldName)
}

func TestValidate_TaxAmounts_AllZeroWarning(t *testing.T) {
	e := newTestEngine()

	inv := validInvoice()
	inv.IgstAmount = 0
	inv.CgstAmount = 0
	inv.SgstAmount = 0
	findings := findingsOfType(e.Validate(inv, []*domain.InvoiceData{inv}), "tax_calculation")
	assert.Len(t, findings, 1)
	assert.Equal(t, domain.SeverityWarning, findings[0].Severity)
	assert.Equal(t, "tax_amounts", findings[0].FieldName)
	// A warning alone never makes the invoice INVALID.
	assert.Equal(t, domain.StatusValid, Verdict(e.Validate(inv, []*domain.InvoiceData{inv})))
}

// Known edge case, kept on purpose: with CGST declared and SGST zero the
// engine raises only the SGST tolerance ERROR; the "no tax declared" WARNING
// stays silent because one amount is nonzero.
func TestValidate_TaxAmounts_PartialZeroAsymmetry(t *testing.T) {
	e := newTestEngine()

	inv := validInvoice()
	inv.CgstAmount = 4500
	inv.SgstAmount = 0
	findings := findingsOfType(e.Validate(inv, []*domain.InvoiceData{inv}), "tax_calculation")
	assert.Len(t, findings, 1)
	assert.Equal(t, "sgst_amount", findings[0].FieldName)
	assert.Equal(t, domain.SeverityError, findings[0].Severity)
}

func TestValidate_RequiredFields(t *testing.T) {
	e := newTestEngine()

	inv := validInvoice()
	inv.InvoiceNumber = ""
	inv.InvoiceDate = ""
	findings := findingsOfType(e.Validate(inv, []*domain.InvoiceData{inv}), "required_field")
	fields := make(map[string]domain.Severity)
	for _, f := range findings {
		fields[f.FieldName] = f.Severity
	}
	assert.Equal(t, domain.SeverityError, fields["invoice_number"])
	assert.Equal(t, domain.SeverityError, fields["invoice_date"])
}

func TestValidate_ZeroTaxableValue(t *testing.T) {
	e := newTestEngine()

	inv := validInvoice()
	inv.TaxableValue = 0
	inv.TaxRate = 0
	inv.CgstAmount = 0
	inv.SgstAmount = 0
	findings := findingsOfType(e.Validate(inv, []*domain.InvoiceData{inv}), "required_field")
	assert.Len(t, findings, 1)
	assert.Equal(t, "taxable_value", findings[0].FieldName)
	assert.Equal(t, domain.SeverityWarning, findings[0].Severity)

	// Credit notes may carry zero taxable value without a warning.
	inv.NoteType = domain.NoteTypeCredit
	assert.Empty(t, findingsOfType(e.Validate(inv, []*domain.InvoiceData{inv}), "required_field"))
}

func TestValidate_Dates(t *testing.T) {
	e := newTestEngine()

	cases := []struct {
		name     string
		date     string
		month    int
		year     int
		severity domain.Severity
		contains string
	}{
		{"malformed", "2026-02-05", 2, 2026, domain.SeverityError, "DD-MM-YYYY"},
		{"not a real date", "31-02-2026", 2, 2026, domain.SeverityError, "calendar"},
		{"outside period", "05-01-2026", 2, 2026, domain.SeverityWarning, "filing period"},
		// In period 03/2026, after the fake clock's 15-03-2026: only the
		// future rule fires.
		{"future", "20-03-2026", 3, 2026, domain.SeverityError, "future"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			inv := validInvoice()
			inv.InvoiceDate = tc.date
			inv.Month = tc.month
			inv.Year = tc.year
			findings := findingsOfType(e.Validate(inv, []*domain.InvoiceData{inv}), "date_format")
			if assert.Len(t, findings, 1) {
				assert.Equal(t, tc.severity, findings[0].Severity)
				assert.Contains(t, findings[0].Message, tc.contains)
			}
		})
	}
}

func TestValidate_FutureDateOutsidePeriod_BothFindings(t *testing.T) {
	e := newTestEngine()

	inv := validInvoice()
	inv.InvoiceDate = "05-04-2026" // after "now" and outside 02/2026
	findings := findingsOfType(e.Validate(inv, []*domain.InvoiceData{inv}), "date_format")
	assert.Len(t, findings, 2)
}

func TestValidate_HsnCode(t *testing.T) {
	e := newTestEngine()

	pass := []string{"1234", "123456", "12345678", ""}
	for _, hsn := range pass {
		inv := validInvoice()
		inv.HsnCode = hsn
		assert.Empty(t, findingsOfType(e.Validate(inv, []*domain.InvoiceData{inv}), "hsn_code"), hsn)
	}

	fail := []string{"12345", "1234567", "1234A678", "12.4567"}
	for _, hsn := range fail {
		inv := validInvoice()
		inv.HsnCode = hsn
		findings := findingsOfType(e.Validate(inv, []*domain.InvoiceData{inv}), "hsn_code")
		if assert.Len(t, findings, 1, hsn) {
			assert.Equal(t, domain.SeverityError, findings[0].Severity)
		}
	}
}

func TestValidate_AccumulatesAcrossRules(t *testing.T) {
	e := newTestEngine()

	inv := validInvoice()
	inv.BuyerGstin = "BAD"
	inv.HsnCode = "12345"
	inv.InvoiceDate = "31-02-2026"
	findings := e.Validate(inv, []*domain.InvoiceData{inv})
	assert.GreaterOrEqual(t, len(findings), 3)
	assert.Equal(t, domain.StatusInvalid, Verdict(findings))
}
