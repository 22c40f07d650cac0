package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/finhive/gstdesk/internal/client/domain"
	"github.com/finhive/gstdesk/internal/gst"
	"github.com/finhive/gstdesk/pkg/db"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	GenID *snowflake.Node
	Repo  domain.Repository
}

type Service struct {
	db    *gorm.DB
	log   *zap.Logger
	genID *snowflake.Node
	repo  domain.Repository
}

func New(p Params) domain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("client.service"),
		genID: p.GenID,
		repo:  p.Repo,
	}
}

func (s *Service) Create(ctx context.Context, req domain.CreateClientRequest) (domain.Client, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return domain.Client{}, domain.ErrInvalidName
	}

	gstin := strings.ToUpper(strings.TrimSpace(req.Gstin))
	if !gst.IsValidGSTIN(gstin) || !gst.IsValidStateCode(gst.StateCodeOf(gstin)) {
		return domain.Client{}, domain.ErrInvalidGstin
	}

	// Home state defaults to the GSTIN's embedded state code.
	stateCode := strings.TrimSpace(req.StateCode)
	if stateCode == "" {
		stateCode = gst.StateCodeOf(gstin)
	}
	if !gst.IsValidStateCode(stateCode) {
		return domain.Client{}, domain.ErrInvalidStateCode
	}

	frequency := req.FilingFrequency
	if frequency == "" {
		frequency = domain.FilingMonthly
	}
	if frequency != domain.FilingMonthly && frequency != domain.FilingQuarterly {
		return domain.Client{}, domain.ErrInvalidFrequency
	}

	existing, err := s.repo.FindByGstin(ctx, s.db, gstin)
	if err != nil {
		return domain.Client{}, err
	}
	if existing != nil {
		return domain.Client{}, domain.ErrGstinExists
	}

	now := time.Now().UTC()
	client := domain.Client{
		ID:              s.genID.Generate(),
		Name:            name,
		Gstin:           gstin,
		StateCode:       stateCode,
		Email:           strings.TrimSpace(req.Email),
		Phone:           strings.TrimSpace(req.Phone),
		FilingFrequency: frequency,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err := s.repo.Insert(ctx, s.db, &client); err != nil {
		// The unique index backs up the pre-insert lookup under concurrency.
		if db.IsDuplicateKeyErr(err) {
			return domain.Client{}, domain.ErrGstinExists
		}
		return domain.Client{}, err
	}

	s.log.Info("client created", zap.String("client_id", client.ID.String()), zap.String("gstin", client.Gstin))
	return client, nil
}

func (s *Service) List(ctx context.Context, req domain.ListClientRequest) (domain.ListClientResponse, error) {
	items, err := s.repo.List(ctx, s.db, domain.ListClientRequest{
		Name:  strings.TrimSpace(req.Name),
		Gstin: strings.ToUpper(strings.TrimSpace(req.Gstin)),
	})
	if err != nil {
		return domain.ListClientResponse{}, err
	}

	clients := make([]domain.Client, 0, len(items))
	for _, item := range items {
		if item == nil {
			continue
		}
		clients = append(clients, *item)
	}
	return domain.ListClientResponse{Clients: clients}, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (domain.Client, error) {
	parsed, err := s.parseID(id)
	if err != nil {
		return domain.Client{}, err
	}

	item, err := s.repo.FindByID(ctx, s.db, parsed)
	if err != nil {
		return domain.Client{}, err
	}
	if item == nil {
		return domain.Client{}, domain.ErrNotFound
	}
	return *item, nil
}

func (s *Service) Update(ctx context.Context, req domain.UpdateClientRequest) (domain.Client, error) {
	parsed, err := s.parseID(req.ID)
	if err != nil {
		return domain.Client{}, err
	}

	item, err := s.repo.FindByID(ctx, s.db, parsed)
	if err != nil {
		return domain.Client{}, err
	}
	if item == nil {
		return domain.Client{}, domain.ErrNotFound
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return domain.Client{}, domain.ErrInvalidName
		}
		item.Name = name
	}
	if req.Email != nil {
		item.Email = strings.TrimSpace(*req.Email)
	}
	if req.Phone != nil {
		item.Phone = strings.TrimSpace(*req.Phone)
	}
	if req.FilingFrequency != nil {
		if *req.FilingFrequency != domain.FilingMonthly && *req.FilingFrequency != domain.FilingQuarterly {
			return domain.Client{}, domain.ErrInvalidFrequency
		}
		item.FilingFrequency = *req.FilingFrequency
	}
	item.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, s.db, item); err != nil {
		return domain.Client{}, err
	}
	return *item, nil
}

func (s *Service) parseID(value string) (snowflake.ID, error) {
	id, err := snowflake.ParseString(strings.TrimSpace(value))
	if err != nil || id == 0 {
		return 0, domain.ErrInvalidID
	}
	return id, nil
}
