package audit

import (
	"github.com/finhive/gstdesk/internal/audit/repository"
	"github.com/finhive/gstdesk/internal/audit/service"
	"go.uber.org/fx"
)

var Module = fx.Module("audit.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
