package client

import (
	"github.com/finhive/gstdesk/internal/client/repository"
	"github.com/finhive/gstdesk/internal/client/service"
	"go.uber.org/fx"
)

var Module = fx.Module("client.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
