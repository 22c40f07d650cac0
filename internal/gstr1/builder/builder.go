// Package builder assembles the GSTR-1 filing document from a period's
// valid invoices.
package builder

import (
	"fmt"
	"math"
	"sort"

	"github.com/finhive/gstdesk/internal/gstr1/domain"
	"github.com/finhive/gstdesk/internal/invoice/classify"
	invoicedomain "github.com/finhive/gstdesk/internal/invoice/domain"
)

const (
	defaultExportType = "WPAY"
	defaultHsnCode    = "NA"
	unitCode          = "NOS"
	unassignedPos     = "00"
)

// Assemble builds the document, its metadata and the canonical file name.
// An empty invoice set produces a well-formed document with empty sections
// and zero totals; refusing empty or error-laden periods is the caller's
// job. Group keys are sorted so the same invoice set always serializes to
// the same bytes.
func Assemble(gstin, homeState string, month, year int, invoices []*invoicedomain.InvoiceData) (domain.Document, domain.Metadata, string) {
	fp := FilingPeriod(month, year)

	var (
		b2b  []*invoicedomain.InvoiceData
		b2cl []*invoicedomain.InvoiceData
		b2cs []*invoicedomain.InvoiceData
		cdnr []*invoicedomain.InvoiceData
		exp  []*invoicedomain.InvoiceData
	)
	for _, inv := range invoices {
		switch classify.Classify(inv) {
		case invoicedomain.CategoryCDNR:
			cdnr = append(cdnr, inv)
		case invoicedomain.CategoryEXP:
			exp = append(exp, inv)
		case invoicedomain.CategoryB2B:
			b2b = append(b2b, inv)
		case invoicedomain.CategoryB2CL:
			b2cl = append(b2cl, inv)
		default:
			b2cs = append(b2cs, inv)
		}
	}

	doc := domain.Document{
		Gstin: gstin,
		Fp:    fp,
		B2B:   buildB2B(b2b),
		B2CL:  buildB2CL(b2cl),
		B2CS:  buildB2CS(b2cs, homeState),
		CDNR:  buildCDNR(cdnr),
		Exp:   buildExp(exp),
		Hsn:   buildHsn(invoices),
	}

	// Section counts report routed invoices, not emitted groups; the HSN
	// count is the only one that tracks the serialized section.
	meta := domain.Metadata{
		TotalInvoices: len(invoices),
		Sections: domain.SectionCounts{
			B2B:  len(b2b),
			B2CL: len(b2cl),
			B2CS: len(b2cs),
			CDNR: len(cdnr),
			Exp:  len(exp),
			Hsn:  len(doc.Hsn.Data),
		},
	}
	var taxable, tax float64
	for _, inv := range invoices {
		taxable += inv.TaxableValue
		tax += inv.IgstAmount + inv.CgstAmount + inv.SgstAmount + inv.CessAmount
	}
	meta.TotalTaxableValue = round2(taxable)
	meta.TotalTax = round2(tax)

	return doc, meta, FileName(gstin, fp)
}

// FilingPeriod renders the zero-padded MMYYYY period token.
func FilingPeriod(month, year int) string {
	return fmt.Sprintf("%02d%04d", month, year)
}

// FileName is the fixed {GSTIN}_{MMYYYY}_GSTR1.json pattern.
func FileName(gstin, fp string) string {
	return fmt.Sprintf("%s_%s_GSTR1.json", gstin, fp)
}

func buildB2B(invoices []*invoicedomain.InvoiceData) []domain.B2BGroup {
	byCtin := map[string][]*invoicedomain.InvoiceData{}
	for _, inv := range invoices {
		byCtin[inv.BuyerGstin] = append(byCtin[inv.BuyerGstin], inv)
	}

	groups := make([]domain.B2BGroup, 0, len(byCtin))
	for _, ctin := range sortedKeys(byCtin) {
		group := domain.B2BGroup{Ctin: ctin}
		for _, inv := range byCtin[ctin] {
			group.Inv = append(group.Inv, invoiceItem(inv))
		}
		groups = append(groups, group)
	}
	return groups
}

func buildB2CL(invoices []*invoicedomain.InvoiceData) []domain.B2CLGroup {
	byPos := map[string][]*invoicedomain.InvoiceData{}
	for _, inv := range invoices {
		// A missing place of supply groups under the unassigned code, not
		// the filer's home state.
		pos := inv.PlaceOfSupply
		if pos == "" {
			pos = unassignedPos
		}
		byPos[pos] = append(byPos[pos], inv)
	}

	groups := make([]domain.B2CLGroup, 0, len(byPos))
	for _, pos := range sortedKeys(byPos) {
		group := domain.B2CLGroup{Pos: pos}
		for _, inv := range byPos[pos] {
			group.Inv = append(group.Inv, domain.B2CLItem{
				Inum: inv.InvoiceNumber,
				Idt:  inv.InvoiceDate,
				Val:  inv.InvoiceValue,
				Itms: []domain.LineItem{lineItem(inv)},
			})
		}
		groups = append(groups, group)
	}
	return groups
}

func buildB2CS(invoices []*invoicedomain.InvoiceData, homeState string) []domain.B2CSGroup {
	type bucket struct {
		splyTy string
		pos    string
		rt     float64
		txval  float64
		iamt   float64
		camt   float64
		samt   float64
		csamt  float64
	}

	buckets := map[string]*bucket{}
	for _, inv := range invoices {
		// B2CS is the only section where a blank place of supply falls
		// back to the filer's home state.
		pos := inv.PlaceOfSupply
		if pos == "" {
			pos = homeState
		}
		splyTy := "INTER"
		if pos == homeState {
			splyTy = "INTRA"
		}
		key := fmt.Sprintf("%s|%s|%g", splyTy, pos, inv.TaxRate)
		b, ok := buckets[key]
		if !ok {
			b = &bucket{splyTy: splyTy, pos: pos, rt: inv.TaxRate}
			buckets[key] = b
		}
		b.txval += inv.TaxableValue
		b.iamt += inv.IgstAmount
		b.camt += inv.CgstAmount
		b.samt += inv.SgstAmount
		b.csamt += inv.CessAmount
	}

	groups := make([]domain.B2CSGroup, 0, len(buckets))
	for _, key := range sortedKeys(buckets) {
		b := buckets[key]
		groups = append(groups, domain.B2CSGroup{
			SplyTy: b.splyTy,
			Pos:    b.pos,
			Rt:     b.rt,
			Txval:  round2(b.txval),
			Iamt:   round2(b.iamt),
			Camt:   round2(b.camt),
			Samt:   round2(b.samt),
			Csamt:  round2(b.csamt),
		})
	}
	return groups
}

func buildCDNR(invoices []*invoicedomain.InvoiceData) []domain.CDNRGroup {
	byCtin := map[string][]*invoicedomain.InvoiceData{}
	for _, inv := range invoices {
		// Notes against unregistered buyers have no home in this section.
		if inv.BuyerGstin == "" {
			continue
		}
		byCtin[inv.BuyerGstin] = append(byCtin[inv.BuyerGstin], inv)
	}

	groups := make([]domain.CDNRGroup, 0, len(byCtin))
	for _, ctin := range sortedKeys(byCtin) {
		group := domain.CDNRGroup{Ctin: ctin}
		for _, inv := range byCtin[ctin] {
			ntty := "D"
			if inv.NoteType == invoicedomain.NoteTypeCredit {
				ntty = "C"
			}
			group.Nt = append(group.Nt, domain.Note{
				Ntty:  ntty,
				NtNum: inv.InvoiceNumber,
				NtDt:  inv.InvoiceDate,
				Val:   inv.InvoiceValue,
				Pos:   inv.PlaceOfSupply,
				Rchrg: reverseCharge(inv),
				Itms:  []domain.LineItem{lineItem(inv)},
			})
		}
		groups = append(groups, group)
	}
	return groups
}

func buildExp(invoices []*invoicedomain.InvoiceData) []domain.ExpGroup {
	byType := map[string][]*invoicedomain.InvoiceData{}
	for _, inv := range invoices {
		expTyp := inv.ExportType
		if expTyp == "" {
			expTyp = defaultExportType
		}
		byType[expTyp] = append(byType[expTyp], inv)
	}

	groups := make([]domain.ExpGroup, 0, len(byType))
	for _, expTyp := range sortedKeys(byType) {
		group := domain.ExpGroup{ExpTyp: expTyp}
		for _, inv := range byType[expTyp] {
			group.Inv = append(group.Inv, domain.ExpItem{
				Inum:   inv.InvoiceNumber,
				Idt:    inv.InvoiceDate,
				Val:    inv.InvoiceValue,
				ExpTyp: expTyp,
				Itms: []domain.ExpLineItem{{
					Txval: inv.TaxableValue,
					Rt:    inv.TaxRate,
					Iamt:  inv.IgstAmount,
					Csamt: inv.CessAmount,
				}},
			})
		}
		groups = append(groups, group)
	}
	return groups
}

func buildHsn(invoices []*invoicedomain.InvoiceData) domain.HsnSection {
	type bucket struct {
		desc  string
		qty   float64
		txval float64
		iamt  float64
		camt  float64
		samt  float64
		csamt float64
	}

	buckets := map[string]*bucket{}
	for _, inv := range invoices {
		code := inv.HsnCode
		if code == "" {
			code = defaultHsnCode
		}
		b, ok := buckets[code]
		if !ok {
			b = &bucket{desc: inv.Description}
			buckets[code] = b
		}
		b.qty++
		b.txval += inv.TaxableValue
		b.iamt += inv.IgstAmount
		b.camt += inv.CgstAmount
		b.samt += inv.SgstAmount
		b.csamt += inv.CessAmount
	}

	data := make([]domain.HsnEntry, 0, len(buckets))
	for _, code := range sortedKeys(buckets) {
		b := buckets[code]
		data = append(data, domain.HsnEntry{
			HsnSc: code,
			Desc:  b.desc,
			Uqc:   unitCode,
			Qty:   b.qty,
			Txval: round2(b.txval),
			Iamt:  round2(b.iamt),
			Camt:  round2(b.camt),
			Samt:  round2(b.samt),
			Csamt: round2(b.csamt),
		})
	}
	return domain.HsnSection{Data: data}
}

// invoiceItem emits source values untouched; rounding happens only in the
// aggregated B2CS and HSN sections and the metadata totals.
func invoiceItem(inv *invoicedomain.InvoiceData) domain.InvoiceItem {
	return domain.InvoiceItem{
		Inum:  inv.InvoiceNumber,
		Idt:   inv.InvoiceDate,
		Val:   inv.InvoiceValue,
		Pos:   inv.PlaceOfSupply,
		Rchrg: reverseCharge(inv),
		Itms:  []domain.LineItem{lineItem(inv)},
	}
}

func lineItem(inv *invoicedomain.InvoiceData) domain.LineItem {
	return domain.LineItem{
		Num: 1,
		ItmDet: domain.ItemDetail{
			Rt:    inv.TaxRate,
			Txval: inv.TaxableValue,
			Iamt:  inv.IgstAmount,
			Camt:  inv.CgstAmount,
			Samt:  inv.SgstAmount,
			Csamt: inv.CessAmount,
		},
	}
}

func reverseCharge(inv *invoicedomain.InvoiceData) string {
	if inv.ReverseCharge {
		return "Y"
	}
	return "N"
}

func round2(x float64) float64 {
	return math.Round(x*100) / 100
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
