package service

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	auditdomain "github.com/finhive/gstdesk/internal/audit/domain"
	clientdomain "github.com/finhive/gstdesk/internal/client/domain"
	filingdomain "github.com/finhive/gstdesk/internal/filing/domain"
	"github.com/finhive/gstdesk/internal/gstr1/builder"
	"github.com/finhive/gstdesk/internal/gstr1/domain"
	invoicedomain "github.com/finhive/gstdesk/internal/invoice/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB       *gorm.DB
	Log      *zap.Logger
	GenID    *snowflake.Node
	Repo     domain.Repository
	Clients  clientdomain.Repository
	Invoices invoicedomain.Repository
	Filing   filingdomain.Service
	Audit    auditdomain.Service
}

type Service struct {
	db       *gorm.DB
	log      *zap.Logger
	genID    *snowflake.Node
	repo     domain.Repository
	clients  clientdomain.Repository
	invoices invoicedomain.Repository
	filing   filingdomain.Service
	audit    auditdomain.Service
}

func New(p Params) domain.Service {
	return &Service{
		db:       p.DB,
		log:      p.Log.Named("gstr1.service"),
		genID:    p.GenID,
		repo:     p.Repo,
		clients:  p.Clients,
		invoices: p.Invoices,
		filing:   p.Filing,
		audit:    p.Audit,
	}
}

func (s *Service) Generate(ctx context.Context, req domain.GenerateRequest) (domain.GenerateResponse, error) {
	clientID, err := s.parseClientID(req.ClientID)
	if err != nil {
		return domain.GenerateResponse{}, err
	}
	if req.Month < 1 || req.Month > 12 || req.Year < 2017 || req.Year > 2100 {
		return domain.GenerateResponse{}, domain.ErrInvalidPeriod
	}

	client, err := s.clients.FindByID(ctx, s.db, clientID)
	if err != nil {
		return domain.GenerateResponse{}, err
	}
	if client == nil {
		return domain.GenerateResponse{}, domain.ErrClientNotFound
	}

	// Generation precondition: zero INVALID invoices and at least one VALID.
	// PENDING rows mean validation has not been run for the period yet.
	invalid, err := s.invoices.CountPeriodByStatus(ctx, s.db, clientID, req.Month, req.Year, invoicedomain.StatusInvalid)
	if err != nil {
		return domain.GenerateResponse{}, err
	}
	if invalid > 0 {
		return domain.GenerateResponse{}, domain.ErrPeriodHasErrors
	}
	pending, err := s.invoices.CountPeriodByStatus(ctx, s.db, clientID, req.Month, req.Year, invoicedomain.StatusPending)
	if err != nil {
		return domain.GenerateResponse{}, err
	}
	if pending > 0 {
		return domain.GenerateResponse{}, domain.ErrPeriodNotValidated
	}

	valid, err := s.invoices.ListPeriodWithFindings(ctx, s.db, clientID, req.Month, req.Year, invoicedomain.StatusValid)
	if err != nil {
		return domain.GenerateResponse{}, err
	}
	if len(valid) == 0 {
		return domain.GenerateResponse{}, domain.ErrNoValidInvoices
	}

	doc, meta, fileName := builder.Assemble(client.Gstin, client.StateCode, req.Month, req.Year, valid)

	docJSON, err := json.Marshal(doc)
	if err != nil {
		return domain.GenerateResponse{}, err
	}
	metaJSON, err := json.Marshal(meta)
	if err != nil {
		return domain.GenerateResponse{}, err
	}

	ret := domain.FiledReturn{
		ID:        s.genID.Generate(),
		ClientID:  clientID,
		Month:     req.Month,
		Year:      req.Year,
		FileName:  fileName,
		Document:  docJSON,
		Metadata:  metaJSON,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.repo.Insert(ctx, s.db, &ret); err != nil {
		return domain.GenerateResponse{}, err
	}

	if err := s.filing.MarkJSONGenerated(ctx, clientID, req.Month, req.Year); err != nil {
		return domain.GenerateResponse{}, err
	}

	s.audit.Record(ctx, auditdomain.ActionReturnAssembly, "filed_return", ret.ID.String(), map[string]interface{}{
		"client_id": clientID.String(),
		"month":     req.Month,
		"year":      req.Year,
		"file_name": fileName,
		"invoices":  meta.TotalInvoices,
	})

	s.log.Info("gstr1 document generated",
		zap.String("client_id", clientID.String()),
		zap.String("file_name", fileName),
		zap.Int("invoices", meta.TotalInvoices),
	)

	return domain.GenerateResponse{
		ReturnID: ret.ID.String(),
		FileName: fileName,
		Document: doc,
		Metadata: meta,
	}, nil
}

func (s *Service) List(ctx context.Context, req domain.ListReturnsRequest) (domain.ListReturnsResponse, error) {
	clientID, err := s.parseClientID(req.ClientID)
	if err != nil {
		return domain.ListReturnsResponse{}, err
	}

	items, err := s.repo.ListByClient(ctx, s.db, req, clientID)
	if err != nil {
		return domain.ListReturnsResponse{}, err
	}

	returns := make([]domain.FiledReturn, 0, len(items))
	for _, item := range items {
		if item == nil {
			continue
		}
		returns = append(returns, *item)
	}
	return domain.ListReturnsResponse{Returns: returns}, nil
}

func (s *Service) Get(ctx context.Context, id string) (domain.FiledReturn, error) {
	parsed, err := snowflake.ParseString(strings.TrimSpace(id))
	if err != nil || parsed == 0 {
		return domain.FiledReturn{}, domain.ErrInvalidID
	}

	item, err := s.repo.FindByID(ctx, s.db, parsed)
	if err != nil {
		return domain.FiledReturn{}, err
	}
	if item == nil {
		return domain.FiledReturn{}, domain.ErrNotFound
	}
	return *item, nil
}

func (s *Service) parseClientID(value string) (snowflake.ID, error) {
	id, err := snowflake.ParseString(strings.TrimSpace(value))
	if err != nil || id == 0 {
		return 0, domain.ErrInvalidClient
	}
	return id, nil
}
