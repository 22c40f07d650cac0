package service

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/finhive/gstdesk/internal/filing/domain"
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
		log:   p.Log.Named("filing.service"),
		genID: p.GenID,
		repo:  p.Repo,
	}
}

func (s *Service) MarkDataReceived(ctx context.Context, clientID snowflake.ID, month, year int) error {
	return s.transition(ctx, clientID, month, year, func(status *domain.FilingStatus) {
		status.DataReceived = true
		// A fresh upload resets any previously generated document.
		status.JSONGenerated = false
		status.Gstr1Status = domain.StatusDataReceived
	})
}

func (s *Service) MarkValidationOutcome(ctx context.Context, clientID snowflake.ID, month, year int, hasErrors bool) error {
	return s.transition(ctx, clientID, month, year, func(status *domain.FilingStatus) {
		if hasErrors {
			status.Gstr1Status = domain.StatusValidationErrors
			return
		}
		if status.Gstr1Status == domain.StatusValidationErrors || status.Gstr1Status == domain.StatusPending {
			status.Gstr1Status = domain.StatusDataReceived
		}
	})
}

func (s *Service) MarkJSONGenerated(ctx context.Context, clientID snowflake.ID, month, year int) error {
	return s.transition(ctx, clientID, month, year, func(status *domain.FilingStatus) {
		status.JSONGenerated = true
		status.Gstr1Status = domain.StatusJSONGenerated
	})
}

func (s *Service) MarkFiled(ctx context.Context, clientID snowflake.ID, month, year int) error {
	status, err := s.repo.FindPeriod(ctx, s.db, clientID, month, year)
	if err != nil {
		return err
	}
	if status == nil {
		return domain.ErrNotFound
	}
	if !status.JSONGenerated {
		return domain.ErrNotGenerated
	}
	status.Gstr1Status = domain.StatusFiled
	status.UpdatedAt = time.Now().UTC()
	return s.repo.Update(ctx, s.db, status)
}

func (s *Service) Get(ctx context.Context, clientID snowflake.ID, month, year int) (domain.FilingStatus, error) {
	if month < 1 || month > 12 || year < 2017 {
		return domain.FilingStatus{}, domain.ErrInvalidPeriod
	}
	status, err := s.repo.FindPeriod(ctx, s.db, clientID, month, year)
	if err != nil {
		return domain.FilingStatus{}, err
	}
	if status == nil {
		// An untouched period reads as PENDING rather than 404.
		return domain.FilingStatus{
			ClientID:    clientID,
			Month:       month,
			Year:        year,
			Gstr1Status: domain.StatusPending,
		}, nil
	}
	return *status, nil
}

func (s *Service) List(ctx context.Context, req domain.ListStatusRequest) (domain.ListStatusResponse, error) {
	items, err := s.repo.ListByClient(ctx, s.db, req)
	if err != nil {
		return domain.ListStatusResponse{}, err
	}
	statuses := make([]domain.FilingStatus, 0, len(items))
	for _, item := range items {
		if item == nil {
			continue
		}
		statuses = append(statuses, *item)
	}
	return domain.ListStatusResponse{Statuses: statuses}, nil
}

func (s *Service) transition(ctx context.Context, clientID snowflake.ID, month, year int, apply func(*domain.FilingStatus)) error {
	if month < 1 || month > 12 || year < 2017 {
		return domain.ErrInvalidPeriod
	}

	status, err := s.repo.FindPeriod(ctx, s.db, clientID, month, year)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	if status == nil {
		status = &domain.FilingStatus{
			ID:          s.genID.Generate(),
			ClientID:    clientID,
			Month:       month,
			Year:        year,
			Gstr1Status: domain.StatusPending,
			CreatedAt:   now,
		}
		apply(status)
		status.UpdatedAt = now
		return s.repo.Insert(ctx, s.db, status)
	}

	apply(status)
	status.UpdatedAt = now
	return s.repo.Update(ctx, s.db, status)
}
