package upload

import (
	"bytes"
	"testing"

	"github.com/finhive/gstdesk/internal/invoice/domain"
	"github.com/stretchr/testify/assert"
	"github.com/xuri/excelize/v2"
)

func workbookFromRows(t *testing.T, rows [][]any) *bytes.Buffer {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	for i, row := range rows {
		cellRef, err := excelize.CoordinatesToCellName(1, i+1)
		assert.NoError(t, err)
		assert.NoError(t, f.SetSheetRow("Sheet1", cellRef, &row))
	}

	buf, err := f.WriteToBuffer()
	assert.NoError(t, err)
	return buf
}

func TestParse_HeaderAliases(t *testing.T) {
	buf := workbookFromRows(t, [][]any{
		{"invoice_number", "Invoice Date", "BuyerGSTIN", "POS", "Taxable Value", "TaxRate", "CGST", "SGST", "HSN", "Reverse Charge"},
		{"INV-001", "05-02-2026", "24AABCT1234E1Z5", "24", "50000", "18", "4500", "4500", "1234", "Y"},
		{"INV-002", "06-02-2026", "", "07", "1,200.50", "18", "", "", "", "N"},
	})

	invoices, err := Parse(buf, 0)
	assert.NoError(t, err)
	assert.Len(t, invoices, 2)

	first := invoices[0]
	assert.Equal(t, "INV-001", first.InvoiceNumber)
	assert.Equal(t, "05-02-2026", first.InvoiceDate)
	assert.Equal(t, "24AABCT1234E1Z5", first.BuyerGstin)
	assert.Equal(t, "24", first.PlaceOfSupply)
	assert.Equal(t, 50000.0, first.TaxableValue)
	assert.Equal(t, 18.0, first.TaxRate)
	assert.Equal(t, 4500.0, first.CgstAmount)
	assert.Equal(t, "1234", first.HsnCode)
	assert.True(t, first.ReverseCharge)
	assert.Equal(t, 1, first.RowNumber)

	second := invoices[1]
	assert.Equal(t, 1200.50, second.TaxableValue)
	assert.False(t, second.ReverseCharge)
	assert.Equal(t, 2, second.RowNumber)
}

func TestParse_SkipsEmptyRowsAndCountsDataRows(t *testing.T) {
	buf := workbookFromRows(t, [][]any{
		{"Invoice Number", "Invoice Date"},
		{"INV-001", "05-02-2026"},
		{"", ""},
		{"INV-002", "06-02-2026"},
	})

	invoices, err := Parse(buf, 0)
	assert.NoError(t, err)
	assert.Len(t, invoices, 2)
	assert.Equal(t, 2, invoices[1].RowNumber)
}

func TestParse_EmptyWorkbook(t *testing.T) {
	buf := workbookFromRows(t, [][]any{
		{"Invoice Number", "Invoice Date"},
	})

	_, err := Parse(buf, 0)
	assert.ErrorIs(t, err, domain.ErrEmptyWorkbook)
}

func TestParse_RowLimit(t *testing.T) {
	buf := workbookFromRows(t, [][]any{
		{"Invoice Number"},
		{"INV-001"},
		{"INV-002"},
		{"INV-003"},
	})

	_, err := Parse(buf, 2)
	assert.ErrorIs(t, err, domain.ErrTooManyRows)
}

func TestParse_BadNumbersBecomeZero(t *testing.T) {
	buf := workbookFromRows(t, [][]any{
		{"Invoice Number", "Taxable Value", "IGST Amount"},
		{"INV-001", "not-a-number", ""},
	})

	invoices, err := Parse(buf, 0)
	assert.NoError(t, err)
	assert.Equal(t, 0.0, invoices[0].TaxableValue)
	assert.Equal(t, 0.0, invoices[0].IgstAmount)
}
