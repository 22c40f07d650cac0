package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	auditdomain "github.com/finhive/gstdesk/internal/audit/domain"
	clientdomain "github.com/finhive/gstdesk/internal/client/domain"
	"github.com/finhive/gstdesk/internal/clock"
	"github.com/finhive/gstdesk/internal/config"
	filingdomain "github.com/finhive/gstdesk/internal/filing/domain"
	"github.com/finhive/gstdesk/internal/invoice/classify"
	"github.com/finhive/gstdesk/internal/invoice/domain"
	"github.com/finhive/gstdesk/internal/invoice/upload"
	"github.com/finhive/gstdesk/internal/invoice/validate"
	"github.com/google/uuid"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	Config  config.Config
	DB      *gorm.DB
	Log     *zap.Logger
	GenID   *snowflake.Node
	Clock   clock.Clock
	Repo    domain.Repository
	Clients clientdomain.Repository
	Filing  filingdomain.Service
	Audit   auditdomain.Service
}

type Service struct {
	cfg     config.Config
	db      *gorm.DB
	log     *zap.Logger
	genID   *snowflake.Node
	engine  *validate.Engine
	repo    domain.Repository
	clients clientdomain.Repository
	filing  filingdomain.Service
	audit   auditdomain.Service
}

func New(p Params) domain.Service {
	return &Service{
		cfg:     p.Config,
		db:      p.DB,
		log:     p.Log.Named("invoice.service"),
		genID:   p.GenID,
		engine:  validate.NewEngine(p.Clock),
		repo:    p.Repo,
		clients: p.Clients,
		filing:  p.Filing,
		audit:   p.Audit,
	}
}

func (s *Service) Upload(ctx context.Context, req domain.UploadRequest) (domain.UploadResponse, error) {
	clientID, err := s.parseClientID(req.ClientID)
	if err != nil {
		return domain.UploadResponse{}, err
	}
	if err := validPeriod(req.Month, req.Year); err != nil {
		return domain.UploadResponse{}, err
	}
	if req.File == nil {
		return domain.UploadResponse{}, domain.ErrMissingWorkbook
	}

	client, err := s.clients.FindByID(ctx, s.db, clientID)
	if err != nil {
		return domain.UploadResponse{}, err
	}
	if client == nil {
		return domain.UploadResponse{}, domain.ErrClientNotFound
	}

	rows, err := upload.Parse(req.File, s.cfg.UploadMaxRows)
	if err != nil {
		return domain.UploadResponse{}, err
	}

	batchID := uuid.NewString()
	now := time.Now().UTC()
	for _, row := range rows {
		row.ID = s.genID.Generate()
		row.ClientID = clientID
		row.Month = req.Month
		row.Year = req.Year
		row.UploadBatchID = batchID
		row.ValidationStatus = domain.StatusPending
		row.CreatedAt = now
		row.UpdatedAt = now
	}

	if err := s.repo.InsertBatch(ctx, s.db, rows); err != nil {
		return domain.UploadResponse{}, err
	}

	if err := s.filing.MarkDataReceived(ctx, clientID, req.Month, req.Year); err != nil {
		return domain.UploadResponse{}, err
	}

	// Re-validate the whole period: duplicate detection must see rows from
	// earlier uploads too.
	outcome, err := s.validatePeriod(ctx, clientID, req.Month, req.Year)
	if err != nil {
		return domain.UploadResponse{}, err
	}

	s.audit.Record(ctx, auditdomain.ActionInvoiceUpload, "invoice_batch", batchID, map[string]interface{}{
		"client_id": clientID.String(),
		"month":     req.Month,
		"year":      req.Year,
		"uploaded":  len(rows),
		"invalid":   outcome.Invalid,
	})

	s.log.Info("invoices uploaded",
		zap.String("client_id", clientID.String()),
		zap.String("batch_id", batchID),
		zap.Int("uploaded", len(rows)),
		zap.Int("invalid", outcome.Invalid),
	)

	return domain.UploadResponse{
		BatchID:       batchID,
		Uploaded:      len(rows),
		TotalInPeriod: outcome.TotalInvoices,
		Valid:         outcome.Valid,
		Invalid:       outcome.Invalid,
		TotalErrors:   outcome.TotalErrors,
		TotalWarnings: outcome.TotalWarnings,
	}, nil
}

func (s *Service) ValidatePeriod(ctx context.Context, req domain.ValidatePeriodRequest) (domain.ValidatePeriodResponse, error) {
	clientID, err := s.parseClientID(req.ClientID)
	if err != nil {
		return domain.ValidatePeriodResponse{}, err
	}
	if err := validPeriod(req.Month, req.Year); err != nil {
		return domain.ValidatePeriodResponse{}, err
	}

	client, err := s.clients.FindByID(ctx, s.db, clientID)
	if err != nil {
		return domain.ValidatePeriodResponse{}, err
	}
	if client == nil {
		return domain.ValidatePeriodResponse{}, domain.ErrClientNotFound
	}

	outcome, err := s.validatePeriod(ctx, clientID, req.Month, req.Year)
	if err != nil {
		return domain.ValidatePeriodResponse{}, err
	}

	s.audit.Record(ctx, auditdomain.ActionPeriodChecked, "filing_period", clientID.String(), map[string]interface{}{
		"month":   req.Month,
		"year":    req.Year,
		"total":   outcome.TotalInvoices,
		"invalid": outcome.Invalid,
	})
	return outcome, nil
}

// validatePeriod is the two-phase run: materialize the full period, then
// evaluate every invoice against it and persist findings and verdicts.
// Re-running is idempotent; previous findings are wiped per invoice.
func (s *Service) validatePeriod(ctx context.Context, clientID snowflake.ID, month, year int) (domain.ValidatePeriodResponse, error) {
	all, err := s.repo.ListPeriod(ctx, s.db, clientID, month, year)
	if err != nil {
		return domain.ValidatePeriodResponse{}, err
	}
	if len(all) == 0 {
		return domain.ValidatePeriodResponse{}, domain.ErrNoInvoices
	}

	var resp domain.ValidatePeriodResponse
	resp.TotalInvoices = len(all)

	now := time.Now().UTC()
	for _, inv := range all {
		findings := s.engine.Validate(inv, all)
		verdict := validate.Verdict(findings)
		category := classify.Classify(inv)

		persisted := make([]*domain.ValidationFinding, 0, len(findings))
		for _, f := range findings {
			persisted = append(persisted, &domain.ValidationFinding{
				ID:            s.genID.Generate(),
				InvoiceDataID: inv.ID,
				ErrorType:     f.ErrorType,
				FieldName:     f.FieldName,
				Message:       f.Message,
				Severity:      f.Severity,
				CreatedAt:     now,
			})
			if f.Severity == domain.SeverityError {
				resp.TotalErrors++
			} else {
				resp.TotalWarnings++
			}
		}

		if err := s.repo.ReplaceFindings(ctx, s.db, inv.ID, persisted); err != nil {
			return domain.ValidatePeriodResponse{}, err
		}
		if err := s.repo.UpdateVerdict(ctx, s.db, inv.ID, verdict, category); err != nil {
			return domain.ValidatePeriodResponse{}, err
		}

		if verdict == domain.StatusValid {
			resp.Valid++
		} else {
			resp.Invalid++
		}
	}

	if err := s.filing.MarkValidationOutcome(ctx, clientID, month, year, resp.Invalid > 0); err != nil {
		return domain.ValidatePeriodResponse{}, err
	}
	return resp, nil
}

func (s *Service) List(ctx context.Context, req domain.ListInvoiceRequest) (domain.ListInvoiceResponse, error) {
	clientID, err := s.parseClientID(req.ClientID)
	if err != nil {
		return domain.ListInvoiceResponse{}, err
	}
	if err := validPeriod(req.Month, req.Year); err != nil {
		return domain.ListInvoiceResponse{}, err
	}

	items, err := s.repo.ListPeriodWithFindings(ctx, s.db, clientID, req.Month, req.Year, req.Status)
	if err != nil {
		return domain.ListInvoiceResponse{}, err
	}

	invoices := make([]domain.InvoiceData, 0, len(items))
	for _, item := range items {
		if item == nil {
			continue
		}
		invoices = append(invoices, *item)
	}
	return domain.ListInvoiceResponse{Invoices: invoices}, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	parsed, err := snowflake.ParseString(strings.TrimSpace(id))
	if err != nil || parsed == 0 {
		return domain.ErrInvalidID
	}

	inv, err := s.repo.FindByID(ctx, s.db, parsed)
	if err != nil {
		return err
	}
	if inv == nil {
		return domain.ErrNotFound
	}

	if err := s.repo.Delete(ctx, s.db, parsed); err != nil {
		return err
	}

	s.audit.Record(ctx, auditdomain.ActionInvoiceDelete, "invoice", parsed.String(), map[string]interface{}{
		"client_id": inv.ClientID.String(),
		"month":     inv.Month,
		"year":      inv.Year,
	})
	return nil
}

func (s *Service) DeletePeriod(ctx context.Context, req domain.DeletePeriodRequest) (int64, error) {
	clientID, err := s.parseClientID(req.ClientID)
	if err != nil {
		return 0, err
	}
	if err := validPeriod(req.Month, req.Year); err != nil {
		return 0, err
	}

	deleted, err := s.repo.DeletePeriod(ctx, s.db, clientID, req.Month, req.Year)
	if err != nil {
		return 0, err
	}

	if deleted > 0 {
		s.audit.Record(ctx, auditdomain.ActionPeriodDeleted, "filing_period", clientID.String(), map[string]interface{}{
			"month":   req.Month,
			"year":    req.Year,
			"deleted": deleted,
		})
	}
	return deleted, nil
}

func (s *Service) parseClientID(value string) (snowflake.ID, error) {
	id, err := snowflake.ParseString(strings.TrimSpace(value))
	if err != nil || id == 0 {
		return 0, domain.ErrInvalidClient
	}
	return id, nil
}

func validPeriod(month, year int) error {
	if month < 1 || month > 12 || year < 2017 || year > 2100 {
		return domain.ErrInvalidPeriod
	}
	return nil
}
