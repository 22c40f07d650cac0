package service_test

import (
	"bytes"
	"context"
	"io"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	auditdomain "github.com/finhive/gstdesk/internal/audit/domain"
	auditrepo "github.com/finhive/gstdesk/internal/audit/repository"
	auditservice "github.com/finhive/gstdesk/internal/audit/service"
	clientdomain "github.com/finhive/gstdesk/internal/client/domain"
	clientrepo "github.com/finhive/gstdesk/internal/client/repository"
	"github.com/finhive/gstdesk/internal/clock"
	"github.com/finhive/gstdesk/internal/config"
	filingdomain "github.com/finhive/gstdesk/internal/filing/domain"
	filingrepo "github.com/finhive/gstdesk/internal/filing/repository"
	filingservice "github.com/finhive/gstdesk/internal/filing/service"
	gstr1domain "github.com/finhive/gstdesk/internal/gstr1/domain"
	invoicedomain "github.com/finhive/gstdesk/internal/invoice/domain"
	invoicerepo "github.com/finhive/gstdesk/internal/invoice/repository"
	invoiceservice "github.com/finhive/gstdesk/internal/invoice/service"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type fixture struct {
	db       *gorm.DB
	node     *snowflake.Node
	invoices invoicedomain.Service
	filing   filingdomain.Service
	client   clientdomain.Client
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&clientdomain.Client{},
		&invoicedomain.InvoiceData{},
		&invoicedomain.ValidationFinding{},
		&filingdomain.FilingStatus{},
		&gstr1domain.FiledReturn{},
		&auditdomain.AuditLog{},
	))

	node, err := snowflake.NewNode(2)
	require.NoError(t, err)
	log := zap.NewNop()

	clientRepo := clientrepo.Provide()
	filingSvc := filingservice.New(filingservice.Params{
		DB: db, Log: log, GenID: node, Repo: filingrepo.Provide(),
	})
	auditSvc := auditservice.New(auditservice.Params{
		DB: db, Log: log, GenID: node, Repo: auditrepo.Provide(),
	})
	invoiceSvc := invoiceservice.New(invoiceservice.Params{
		Config:  config.Config{UploadMaxRows: 5000},
		DB:      db,
		Log:     log,
		GenID:   node,
		Clock:   clock.NewFakeClock(time.Date(2026, time.March, 15, 10, 0, 0, 0, time.UTC)),
		Repo:    invoicerepo.Provide(),
		Clients: clientRepo,
		Filing:  filingSvc,
		Audit:   auditSvc,
	})

	client := clientdomain.Client{
		ID:              node.Generate(),
		Name:            "Trident Exports",
		Gstin:           "24AACCF1234B1Z4",
		StateCode:       "24",
		FilingFrequency: clientdomain.FilingMonthly,
		CreatedAt:       time.Now().UTC(),
		UpdatedAt:       time.Now().UTC(),
	}
	require.NoError(t, db.Create(&client).Error)

	return &fixture{db: db, node: node, invoices: invoiceSvc, filing: filingSvc, client: client}
}

func workbook(t *testing.T, rows ...[]interface{}) io.Reader {
	t.Helper()

	f := excelize.NewFile()
	header := []interface{}{
		"Invoice Number", "Invoice Date", "Buyer GSTIN", "Place of Supply",
		"Taxable Value", "Tax Rate", "CGST Amount", "SGST Amount", "IGST Amount",
		"Invoice Value", "HSN Code",
	}
	require.NoError(t, f.SetSheetRow("Sheet1", "A1", &header))
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow("Sheet1", cell, &row))
	}

	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return bytes.NewReader(buf.Bytes())
}

func TestUpload_CleanPeriod(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	resp, err := f.invoices.Upload(ctx, invoicedomain.UploadRequest{
		ClientID: f.client.ID.String(),
		Month:    2,
		Year:     2026,
		File: workbook(t,
			[]interface{}{"INV-001", "05-02-2026", "24AABCT1234E1Z5", "24", 50000, 18, 4500, 4500, 0, 59000, "1234"},
			[]interface{}{"INV-002", "10-02-2026", "", "24", 1200, 18, 108, 108, 0, 1416, "1234"},
		),
	})
	require.NoError(t, err)

	assert.NotEmpty(t, resp.BatchID)
	assert.Equal(t, 2, resp.Uploaded)
	assert.Equal(t, 2, resp.TotalInPeriod)
	assert.Equal(t, 2, resp.Valid)
	assert.Zero(t, resp.Invalid)
	assert.Zero(t, resp.TotalErrors)

	status, err := f.filing.Get(ctx, f.client.ID, 2, 2026)
	require.NoError(t, err)
	assert.Equal(t, filingdomain.StatusDataReceived, status.Gstr1Status)
	assert.True(t, status.DataReceived)
}

func TestUpload_CrossBatchDuplicates(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.invoices.Upload(ctx, invoicedomain.UploadRequest{
		ClientID: f.client.ID.String(), Month: 2, Year: 2026,
		File: workbook(t,
			[]interface{}{"INV-001", "05-02-2026", "", "24", 1000, 18, 90, 90, 0, 1180, "1234"},
		),
	})
	require.NoError(t, err)

	// Second upload reuses the invoice number; revalidation must flag both
	// the old and the new row.
	resp, err := f.invoices.Upload(ctx, invoicedomain.UploadRequest{
		ClientID: f.client.ID.String(), Month: 2, Year: 2026,
		File: workbook(t,
			[]interface{}{"INV-001", "06-02-2026", "", "24", 2000, 18, 180, 180, 0, 2360, "1234"},
		),
	})
	require.NoError(t, err)

	assert.Equal(t, 1, resp.Uploaded)
	assert.Equal(t, 2, resp.TotalInPeriod)
	assert.Equal(t, 2, resp.Invalid)
	assert.Zero(t, resp.Valid)

	status, err := f.filing.Get(ctx, f.client.ID, 2, 2026)
	require.NoError(t, err)
	assert.Equal(t, filingdomain.StatusValidationErrors, status.Gstr1Status)
}

func TestUpload_UnknownClient(t *testing.T) {
	f := newFixture(t)

	_, err := f.invoices.Upload(context.Background(), invoicedomain.UploadRequest{
		ClientID: f.node.Generate().String(), Month: 2, Year: 2026,
		File: workbook(t,
			[]interface{}{"INV-001", "05-02-2026", "", "24", 1000, 18, 90, 90, 0, 1180, "1234"},
		),
	})
	assert.ErrorIs(t, err, invoicedomain.ErrClientNotFound)
}

func TestUpload_MissingWorkbook(t *testing.T) {
	f := newFixture(t)

	_, err := f.invoices.Upload(context.Background(), invoicedomain.UploadRequest{
		ClientID: f.client.ID.String(), Month: 2, Year: 2026,
	})
	assert.ErrorIs(t, err, invoicedomain.ErrMissingWorkbook)
}

func TestValidatePeriod_IsIdempotent(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.invoices.Upload(ctx, invoicedomain.UploadRequest{
		ClientID: f.client.ID.String(), Month: 2, Year: 2026,
		File: workbook(t,
			[]interface{}{"INV-001", "31-02-2026", "", "24", 1000, 18, 90, 90, 0, 1180, "1234"},
		),
	})
	require.NoError(t, err)

	first, err := f.invoices.ValidatePeriod(ctx, invoicedomain.ValidatePeriodRequest{
		ClientID: f.client.ID.String(), Month: 2, Year: 2026,
	})
	require.NoError(t, err)
	second, err := f.invoices.ValidatePeriod(ctx, invoicedomain.ValidatePeriodRequest{
		ClientID: f.client.ID.String(), Month: 2, Year: 2026,
	})
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, second.Invalid)

	// Findings are wiped and regenerated, not appended.
	list, err := f.invoices.List(ctx, invoicedomain.ListInvoiceRequest{
		ClientID: f.client.ID.String(), Month: 2, Year: 2026,
	})
	require.NoError(t, err)
	require.Len(t, list.Invoices, 1)
	assert.Len(t, list.Invoices[0].Findings, 1)
}

func TestValidatePeriod_EmptyPeriod(t *testing.T) {
	f := newFixture(t)

	_, err := f.invoices.ValidatePeriod(context.Background(), invoicedomain.ValidatePeriodRequest{
		ClientID: f.client.ID.String(), Month: 2, Year: 2026,
	})
	assert.ErrorIs(t, err, invoicedomain.ErrNoInvoices)
}

func TestList_FiltersByStatus(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.invoices.Upload(ctx, invoicedomain.UploadRequest{
		ClientID: f.client.ID.String(), Month: 2, Year: 2026,
		File: workbook(t,
			[]interface{}{"INV-001", "05-02-2026", "", "24", 1000, 18, 90, 90, 0, 1180, "1234"},
			[]interface{}{"INV-002", "31-02-2026", "", "24", 2000, 18, 180, 180, 0, 2360, "1234"},
		),
	})
	require.NoError(t, err)

	invalid, err := f.invoices.List(ctx, invoicedomain.ListInvoiceRequest{
		ClientID: f.client.ID.String(), Month: 2, Year: 2026,
		Status: invoicedomain.StatusInvalid,
	})
	require.NoError(t, err)
	require.Len(t, invalid.Invoices, 1)
	assert.Equal(t, "INV-002", invalid.Invoices[0].InvoiceNumber)
}

func TestDelete_RemovesInvoice(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.invoices.Upload(ctx, invoicedomain.UploadRequest{
		ClientID: f.client.ID.String(), Month: 2, Year: 2026,
		File: workbook(t,
			[]interface{}{"INV-001", "05-02-2026", "", "24", 1000, 18, 90, 90, 0, 1180, "1234"},
		),
	})
	require.NoError(t, err)

	list, err := f.invoices.List(ctx, invoicedomain.ListInvoiceRequest{
		ClientID: f.client.ID.String(), Month: 2, Year: 2026,
	})
	require.NoError(t, err)
	require.Len(t, list.Invoices, 1)

	require.NoError(t, f.invoices.Delete(ctx, list.Invoices[0].ID.String()))

	assert.ErrorIs(t, f.invoices.Delete(ctx, list.Invoices[0].ID.String()), invoicedomain.ErrNotFound)
}

func TestDeletePeriod_CountsRows(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.invoices.Upload(ctx, invoicedomain.UploadRequest{
		ClientID: f.client.ID.String(), Month: 2, Year: 2026,
		File: workbook(t,
			[]interface{}{"INV-001", "05-02-2026", "", "24", 1000, 18, 90, 90, 0, 1180, "1234"},
			[]interface{}{"INV-002", "06-02-2026", "", "24", 2000, 18, 180, 180, 0, 2360, "1234"},
		),
	})
	require.NoError(t, err)

	deleted, err := f.invoices.DeletePeriod(ctx, invoicedomain.DeletePeriodRequest{
		ClientID: f.client.ID.String(), Month: 2, Year: 2026,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(2), deleted)

	deleted, err = f.invoices.DeletePeriod(ctx, invoicedomain.DeletePeriodRequest{
		ClientID: f.client.ID.String(), Month: 2, Year: 2026,
	})
	require.NoError(t, err)
	assert.Zero(t, deleted)
}
