// Package upload maps spreadsheet rows onto invoice records.
//
// The first sheet of the workbook is read; the first row must be a header
// row. Column headers are matched against a small alias table so exports
// from common accounting tools are accepted without renaming columns.
package upload

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/finhive/gstdesk/internal/invoice/domain"
	"github.com/xuri/excelize/v2"
)

// columnAliases maps a canonical field to the header spellings accepted for it.
var columnAliases = map[string][]string{
	"invoice_number":  {"Invoice Number", "invoice_number", "InvoiceNumber"},
	"invoice_date":    {"Invoice Date", "invoice_date", "InvoiceDate"},
	"buyer_gstin":     {"Buyer GSTIN", "buyer_gstin", "BuyerGSTIN"},
	"buyer_name":      {"Buyer Name", "buyer_name", "BuyerName"},
	"place_of_supply": {"Place of Supply", "place_of_supply", "POS"},
	"reverse_charge":  {"Reverse Charge", "reverse_charge"},
	"invoice_value":   {"Invoice Value", "invoice_value", "InvoiceValue"},
	"taxable_value":   {"Taxable Value", "taxable_value", "TaxableValue"},
	"tax_rate":        {"Tax Rate", "tax_rate", "TaxRate"},
	"igst_amount":     {"IGST Amount", "igst_amount", "IGST"},
	"cgst_amount":     {"CGST Amount", "cgst_amount", "CGST"},
	"sgst_amount":     {"SGST Amount", "sgst_amount", "SGST"},
	"cess_amount":     {"Cess Amount", "cess_amount", "CESS"},
	"hsn_code":        {"HSN Code", "hsn_code", "HSN"},
	"description":     {"Description", "description"},
	"note_type":       {"Note Type", "note_type"},
	"export_type":     {"Export Type", "export_type"},
}

// Parse reads the first sheet of an XLSX workbook and returns one InvoiceData
// per data row. Row numbers are 1-based over data rows, matching what users
// see minus the header. maxRows <= 0 means unlimited.
func Parse(r io.Reader, maxRows int) ([]*domain.InvoiceData, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	sheetName := f.GetSheetName(0)
	if sheetName == "" {
		return nil, domain.ErrEmptyWorkbook
	}

	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, fmt.Errorf("read rows: %w", err)
	}
	if len(rows) < 2 {
		return nil, domain.ErrEmptyWorkbook
	}

	index := headerIndex(rows[0])

	var invoices []*domain.InvoiceData
	rowNumber := 0
	for _, row := range rows[1:] {
		if isRowEmpty(row) {
			continue
		}
		rowNumber++
		if maxRows > 0 && rowNumber > maxRows {
			return nil, domain.ErrTooManyRows
		}

		cell := func(field string) string {
			idx, ok := index[field]
			if !ok || idx >= len(row) {
				return ""
			}
			return strings.TrimSpace(row[idx])
		}

		invoices = append(invoices, &domain.InvoiceData{
			InvoiceNumber: cell("invoice_number"),
			InvoiceDate:   cell("invoice_date"),
			BuyerGstin:    cell("buyer_gstin"),
			BuyerName:     cell("buyer_name"),
			PlaceOfSupply: cell("place_of_supply"),
			ReverseCharge: parseBool(cell("reverse_charge")),
			InvoiceValue:  parseFloat(cell("invoice_value")),
			TaxableValue:  parseFloat(cell("taxable_value")),
			TaxRate:       parseFloat(cell("tax_rate")),
			IgstAmount:    parseFloat(cell("igst_amount")),
			CgstAmount:    parseFloat(cell("cgst_amount")),
			SgstAmount:    parseFloat(cell("sgst_amount")),
			CessAmount:    parseFloat(cell("cess_amount")),
			HsnCode:       cell("hsn_code"),
			Description:   cell("description"),
			NoteType:      domain.NoteType(strings.ToUpper(cell("note_type"))),
			ExportType:    strings.ToUpper(cell("export_type")),
			RowNumber:     rowNumber,
		})
	}

	if len(invoices) == 0 {
		return nil, domain.ErrEmptyWorkbook
	}

	return invoices, nil
}

// headerIndex resolves each canonical field to a column index via the alias table.
func headerIndex(header []string) map[string]int {
	byName := make(map[string]int, len(header))
	for i, h := range header {
		byName[strings.TrimSpace(h)] = i
	}

	index := make(map[string]int)
	for field, aliases := range columnAliases {
		for _, alias := range aliases {
			if i, ok := byName[alias]; ok {
				index[field] = i
				break
			}
		}
	}
	return index
}

func isRowEmpty(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

// Missing or unparseable numeric cells count as zero, never as errors; the
// validation engine decides what zero means.
func parseFloat(value string) float64 {
	if value == "" {
		return 0
	}
	value = strings.ReplaceAll(value, ",", "")
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0
	}
	return f
}

func parseBool(value string) bool {
	switch strings.ToUpper(strings.TrimSpace(value)) {
	case "Y", "YES", "TRUE", "1":
		return true
	default:
		return false
	}
}
