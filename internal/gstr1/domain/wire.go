// Package domain defines the GSTR-1 filing document wire format.
//
// Field names and nesting follow the GST portal's return schema; the JSON
// tags are load-bearing and must not be renamed. All sections are emitted
// even when empty, with group keys sorted so repeated assembly of the same
// invoice set yields byte-identical output.
package domain

// Document is the full GSTR-1 return body for one filer and period.
type Document struct {
	Gstin string      `json:"gstin"`
	Fp    string      `json:"fp"`
	B2B   []B2BGroup  `json:"b2b"`
	B2CL  []B2CLGroup `json:"b2cl"`
	B2CS  []B2CSGroup `json:"b2cs"`
	CDNR  []CDNRGroup `json:"cdnr"`
	Exp   []ExpGroup  `json:"exp"`
	Hsn   HsnSection  `json:"hsn"`
}

// B2BGroup holds all invoices raised against one registered buyer.
type B2BGroup struct {
	Ctin string        `json:"ctin"`
	Inv  []InvoiceItem `json:"inv"`
}

// InvoiceItem is one invoice exploded into a single synthetic line item.
type InvoiceItem struct {
	Inum  string     `json:"inum"`
	Idt   string     `json:"idt"`
	Val   float64    `json:"val"`
	Pos   string     `json:"pos"`
	Rchrg string     `json:"rchrg"`
	Itms  []LineItem `json:"itms"`
}

type LineItem struct {
	Num    int        `json:"num"`
	ItmDet ItemDetail `json:"itm_det"`
}

type ItemDetail struct {
	Rt    float64 `json:"rt"`
	Txval float64 `json:"txval"`
	Iamt  float64 `json:"iamt"`
	Camt  float64 `json:"camt"`
	Samt  float64 `json:"samt"`
	Csamt float64 `json:"csamt"`
}

// B2CLGroup holds large unregistered-buyer invoices for one place of supply.
type B2CLGroup struct {
	Pos string     `json:"pos"`
	Inv []B2CLItem `json:"inv"`
}

// B2CLItem carries no buyer GSTIN or reverse-charge flag.
type B2CLItem struct {
	Inum string     `json:"inum"`
	Idt  string     `json:"idt"`
	Val  float64    `json:"val"`
	Itms []LineItem `json:"itms"`
}

// B2CSGroup is a fully aggregated rate bucket of small consumer sales.
type B2CSGroup struct {
	SplyTy string  `json:"sply_ty"`
	Pos    string  `json:"pos"`
	Rt     float64 `json:"rt"`
	Txval  float64 `json:"txval"`
	Iamt   float64 `json:"iamt"`
	Camt   float64 `json:"camt"`
	Samt   float64 `json:"samt"`
	Csamt  float64 `json:"csamt"`
}

// CDNRGroup holds credit/debit notes against one registered buyer.
type CDNRGroup struct {
	Ctin string `json:"ctin"`
	Nt   []Note `json:"nt"`
}

// Note mirrors InvoiceItem with the note-specific field names.
type Note struct {
	Ntty  string     `json:"ntty"`
	NtNum string     `json:"nt_num"`
	NtDt  string     `json:"nt_dt"`
	Val   float64    `json:"val"`
	Pos   string     `json:"pos"`
	Rchrg string     `json:"rchrg"`
	Itms  []LineItem `json:"itms"`
}

// ExpGroup holds export invoices of one export type.
type ExpGroup struct {
	ExpTyp string    `json:"exp_typ"`
	Inv    []ExpItem `json:"inv"`
}

// ExpItem repeats the export type on every invoice; the portal schema
// carries it at both levels.
type ExpItem struct {
	Inum   string        `json:"inum"`
	Idt    string        `json:"idt"`
	Val    float64       `json:"val"`
	ExpTyp string        `json:"exp_typ"`
	Itms   []ExpLineItem `json:"itms"`
}

// ExpLineItem omits CGST/SGST; exports are zero-rated domestically.
type ExpLineItem struct {
	Txval float64 `json:"txval"`
	Rt    float64 `json:"rt"`
	Iamt  float64 `json:"iamt"`
	Csamt float64 `json:"csamt"`
}

// HsnSection summarizes all valid invoices by HSN code regardless of category.
type HsnSection struct {
	Data []HsnEntry `json:"data"`
}

type HsnEntry struct {
	HsnSc string  `json:"hsn_sc"`
	Desc  string  `json:"desc"`
	Uqc   string  `json:"uqc"`
	Qty   float64 `json:"qty"`
	Txval float64 `json:"txval"`
	Iamt  float64 `json:"iamt"`
	Camt  float64 `json:"camt"`
	Samt  float64 `json:"samt"`
	Csamt float64 `json:"csamt"`
}

// SectionCounts is the number of invoices routed to each document section,
// except Hsn which counts summary entries.
type SectionCounts struct {
	B2B  int `json:"b2b"`
	B2CL int `json:"b2cl"`
	B2CS int `json:"b2cs"`
	CDNR int `json:"cdnr"`
	Exp  int `json:"exp"`
	Hsn  int `json:"hsn"`
}

// Metadata travels alongside the document, never inside it. Totals are
// summed across every valid invoice once, not per section, so an invoice
// appearing in both a category section and the HSN summary is not counted
// twice.
type Metadata struct {
	TotalInvoices     int           `json:"total_invoices"`
	TotalTaxableValue float64       `json:"total_taxable_value"`
	TotalTax          float64       `json:"total_tax"`
	Sections          SectionCounts `json:"sections"`
}
