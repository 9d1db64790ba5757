package di

import (
	"go.uber.org/fx"

	"github.com/solemart/solemart/internal/adapter/gateway"
	"github.com/solemart/solemart/internal/app"
	"github.com/solemart/solemart/internal/config"
	"github.com/solemart/solemart/internal/logger"
	"github.com/solemart/solemart/internal/pkg/auth"
	"github.com/solemart/solemart/internal/server/http/handlers"
	"github.com/solemart/solemart/internal/server/http/router"
	"github.com/solemart/solemart/internal/storage/postgres"
	"github.com/solemart/solemart/internal/usecase"
)

func Module(opts ...fx.Option) fx.Option {
	modules := []fx.Option{
		config.Module,
		logger.Module,
		auth.Module,
		postgres.Module,
		gateway.Module,
		usecase.Module,
		fx.Provide(func(f *app.StoreFacade) handlers.StoreFacade { return f }),
		fx.Provide(func(s *postgres.Storage) handlers.HealthChecker { return s }),
		router.Module,
		app.Module,
	}
	modules = append(modules, opts...)
	return fx.Options(modules...)
}
