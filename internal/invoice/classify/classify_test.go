package classify

import (
	"testing"

	"github.com/finhive/gstdesk/internal/invoice/domain"
	"github.com/stretchr/testify/assert"
)

func TestClassify_DecisionOrder(t *testing.T) {
	cases := []struct {
		name string
		inv  domain.InvoiceData
		want domain.Category
	}{
		{
			name: "credit note wins over export and gstin",
			inv: domain.InvoiceData{
				NoteType:   domain.NoteTypeCredit,
				ExportType: "WPAY",
				BuyerGstin: "24AABCT1234E1Z5",
			},
			want: domain.CategoryCDNR,
		},
		{
			name: "debit note",
			inv:  domain.InvoiceData{NoteType: domain.NoteTypeDebit},
			want: domain.CategoryCDNR,
		},
		{
			name: "export wins over gstin",
			inv: domain.InvoiceData{
				ExportType: "WOPAY",
				BuyerGstin: "24AABCT1234E1Z5",
			},
			want: domain.CategoryEXP,
		},
		{
			name: "valid gstin is b2b",
			inv:  domain.InvoiceData{BuyerGstin: "24AABCT1234E1Z5", TaxableValue: 500000},
			want: domain.CategoryB2B,
		},
		{
			name: "malformed gstin falls through to b2cs",
			inv:  domain.InvoiceData{BuyerGstin: "NOTAGSTIN123456", TaxableValue: 10000},
			want: domain.CategoryB2CS,
		},
		{
			name: "no gstin above threshold is b2cl",
			inv:  domain.InvoiceData{TaxableValue: 300000},
			want: domain.CategoryB2CL,
		},
		{
			name: "threshold itself stays b2cs",
			inv:  domain.InvoiceData{TaxableValue: 250000},
			want: domain.CategoryB2CS,
		},
		{
			name: "small unregistered sale is b2cs",
			inv:  domain.InvoiceData{TaxableValue: 1000},
			want: domain.CategoryB2CS,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Classify(&tc.inv))
		})
	}
}

func TestClassify_PureAndDeterministic(t *testing.T) {
	inv := domain.InvoiceData{BuyerGstin: "07AAACI1234F2Z9", TaxableValue: 42}
	first := Classify(&inv)
	for i := 0; i < 100; i++ {
		assert.Equal(t, first, Classify(&inv))
	}
	assert.Equal(t, domain.CategoryB2B, first)
}

func TestClassify_Exhaustive(t *testing.T) {
	known := map[domain.Category]bool{
		domain.CategoryB2B:  true,
		domain.CategoryB2CL: true,
		domain.CategoryB2CS: true,
		domain.CategoryCDNR: true,
		domain.CategoryEXP:  true,
	}

	samples := []domain.InvoiceData{
		{NoteType: domain.NoteTypeCredit},
		{ExportType: "WPAY"},
		{BuyerGstin: "24AABCT1234E1Z5"},
		{TaxableValue: 250000.01},
		{},
	}
	for _, inv := range samples {
		assert.True(t, known[Classify(&inv)])
	}
}
