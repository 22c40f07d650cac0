package filing

import (
	"github.com/finhive/gstdesk/internal/filing/repository"
	"github.com/finhive/gstdesk/internal/filing/service"
	"go.uber.org/fx"
)

var Module = fx.Module("filing.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
