package migration

import (
	auditdomain "github.com/finhive/gstdesk/internal/audit/domain"
	clientdomain "github.com/finhive/gstdesk/internal/client/domain"
	"github.com/finhive/gstdesk/internal/config"
	filingdomain "github.com/finhive/gstdesk/internal/filing/domain"
	gstr1domain "github.com/finhive/gstdesk/internal/gstr1/domain"
	invoicedomain "github.com/finhive/gstdesk/internal/invoice/domain"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

var Module = fx.Module("migrations",
	fx.Invoke(func(conn *gorm.DB, cfg config.Config) error {
		if cfg.DBType != "postgres" {
			// sqlite/mysql deployments (and tests) migrate from the models.
			return conn.AutoMigrate(
				&clientdomain.Client{},
				&invoicedomain.InvoiceData{},
				&invoicedomain.ValidationFinding{},
				&filingdomain.FilingStatus{},
				&gstr1domain.FiledReturn{},
				&auditdomain.AuditLog{},
			)
		}

		sqlDB, err := conn.DB()
		if err != nil {
			return err
		}
		return RunMigrations(sqlDB)
	}),
)
