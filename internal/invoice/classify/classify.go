// Package classify assigns every invoice its statutory transaction category.
package classify

import (
	"github.com/finhive/gstdesk/internal/gst"
	"github.com/finhive/gstdesk/internal/invoice/domain"
)

// B2CLThreshold is the taxable value above which an unregistered-buyer
// invoice is reported as a large B2C supply.
const B2CLThreshold = 250000

// Classify returns the transaction category of a single invoice. The
// decision ladder is ordered; the first match wins, which is how overlaps
// (for example a credit note against an export) are resolved.
func Classify(inv *domain.InvoiceData) domain.Category {
	if inv.NoteType == domain.NoteTypeCredit || inv.NoteType == domain.NoteTypeDebit {
		return domain.CategoryCDNR
	}

	if inv.ExportType != "" {
		return domain.CategoryEXP
	}

	if inv.BuyerGstin != "" && gst.IsValidGSTIN(inv.BuyerGstin) {
		return domain.CategoryB2B
	}

	if inv.BuyerGstin == "" && inv.TaxableValue > B2CLThreshold {
		return domain.CategoryB2CL
	}

	return domain.CategoryB2CS
}
