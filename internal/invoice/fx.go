package invoice

import (
	"github.com/finhive/gstdesk/internal/invoice/repository"
	"github.com/finhive/gstdesk/internal/invoice/service"
	"go.uber.org/fx"
)

var Module = fx.Module("invoice.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
