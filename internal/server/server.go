package server

import (
	"context"
	"net/http"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/finhive/gstdesk/internal/audit"
	auditdomain "github.com/finhive/gstdesk/internal/audit/domain"
	"github.com/finhive/gstdesk/internal/client"
	clientdomain "github.com/finhive/gstdesk/internal/client/domain"
	"github.com/finhive/gstdesk/internal/config"
	"github.com/finhive/gstdesk/internal/filing"
	filingdomain "github.com/finhive/gstdesk/internal/filing/domain"
	"github.com/finhive/gstdesk/internal/gstr1"
	gstr1domain "github.com/finhive/gstdesk/internal/gstr1/domain"
	"github.com/finhive/gstdesk/internal/invoice"
	invoicedomain "github.com/finhive/gstdesk/internal/invoice/domain"
	"github.com/gin-gonic/gin"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var Module = fx.Module("http.server",
	fx.Provide(NewEngine),
	audit.Module,
	client.Module,
	filing.Module,
	invoice.Module,
	gstr1.Module,
	fx.Invoke(NewServer),
	fx.Invoke(run),
)

func NewEngine() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(ErrorHandlingMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	return r
}

func run(lc fx.Lifecycle, cfg config.Config, log *zap.Logger, r *gin.Engine) {
	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: r,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				log.Info("http server listening", zap.String("addr", cfg.HTTPAddr))
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					log.Fatal("http server failed", zap.Error(err))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	})
}

type Server struct {
	engine     *gin.Engine
	cfg        config.Config
	db         *gorm.DB
	genID      *snowflake.Node
	clientSvc  clientdomain.Service
	invoiceSvc invoicedomain.Service
	gstr1Svc   gstr1domain.Service
	filingSvc  filingdomain.Service
	auditSvc   auditdomain.Service
}

type ServerParams struct {
	fx.In

	Gin        *gin.Engine
	Cfg        config.Config
	DB         *gorm.DB
	GenID      *snowflake.Node
	ClientSvc  clientdomain.Service
	InvoiceSvc invoicedomain.Service
	Gstr1Svc   gstr1domain.Service
	FilingSvc  filingdomain.Service
	AuditSvc   auditdomain.Service
}

func NewServer(p ServerParams) *Server {
	svc := &Server{
		engine:     p.Gin,
		cfg:        p.Cfg,
		db:         p.DB,
		genID:      p.GenID,
		clientSvc:  p.ClientSvc,
		invoiceSvc: p.InvoiceSvc,
		gstr1Svc:   p.Gstr1Svc,
		filingSvc:  p.FilingSvc,
		auditSvc:   p.AuditSvc,
	}

	svc.registerAPIRoutes()

	return svc
}

func (s *Server) Engine() *gin.Engine {
	return s.engine
}

func (s *Server) registerAPIRoutes() {
	api := s.engine.Group("/api")

	// -------- Clients --------
	api.GET("/clients", s.ListClients)
	api.POST("/clients", s.CreateClient)
	api.GET("/clients/:id", s.GetClientByID)
	api.PUT("/clients/:id", s.UpdateClient)

	// -------- Invoices --------
	api.POST("/clients/:id/invoices", s.UploadInvoices)
	api.GET("/clients/:id/invoices", s.ListInvoices)
	api.DELETE("/clients/:id/invoices", s.DeleteInvoicePeriod)
	api.POST("/clients/:id/invoices/validate", s.ValidatePeriod)
	api.DELETE("/invoices/:id", s.DeleteInvoice)

	// -------- GSTR-1 --------
	api.POST("/clients/:id/gstr1/generate", s.GenerateReturn)
	api.GET("/clients/:id/gstr1/returns", s.ListReturns)
	api.GET("/returns/:id", s.GetReturn)
	api.GET("/returns/:id/download", s.DownloadReturn)

	// -------- Filing status --------
	api.GET("/clients/:id/filing-status", s.GetFilingStatus)
	api.POST("/clients/:id/filing-status/filed", s.MarkFiled)

	// -------- Audit --------
	api.GET("/audit-logs", s.ListAuditLogs)
}
