package gstr1

import (
	"github.com/finhive/gstdesk/internal/gstr1/repository"
	"github.com/finhive/gstdesk/internal/gstr1/service"
	"go.uber.org/fx"
)

var Module = fx.Module("gstr1.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
