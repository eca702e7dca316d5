// Command gatewaysim runs the local NearBasket gateway: the REST API the
// client SDK talks to, backed by in-memory stores. It exists for local app
// development; state lives for the lifetime of the process.
package main

import (
	"context"
	"log/slog"
	"os"

	"nearbasket/config"
	"nearbasket/internal/delivery"
	"nearbasket/internal/delivery/http"
	"nearbasket/internal/delivery/http/middleware"
	"nearbasket/internal/delivery/http/router/handler"
	"nearbasket/internal/domain/repository"
	"nearbasket/internal/infra/auth"
	logs "nearbasket/internal/infra/log"
	"nearbasket/internal/infra/persistence/memory"

	"go.uber.org/fx"
)

type startServerParams struct {
	fx.In
	fx.Lifecycle

	Deliveries []delivery.Delivery `group:"deliveries"`
}

func main() {
	fx.New(
		injectInfra(),
		injectRepo(),
		injectService(),
		injectMiddleware(),
		injectHandler(),
		injectDelivery(),
		fx.Invoke(
			startServer,
		),
	).Run()
}

func injectInfra() fx.Option {
	return fx.Provide(
		config.New,
		logs.New,
		context.Background,
	)
}

func injectRepo() fx.Option {
	return fx.Options(
		fx.Provide(
			fx.Annotate(memory.NewUserStore, fx.As(new(repository.UserRepository))),
			fx.Annotate(memory.NewOTPStore, fx.As(new(repository.OTPRepository))),
			fx.Annotate(memory.NewShopStore, fx.As(new(repository.ShopRepository))),
			fx.Annotate(memory.NewProductStore, fx.As(new(repository.ProductRepository))),
			fx.Annotate(memory.NewOrderStore, fx.As(new(repository.OrderRepository))),
		),
	)
}

func injectService() fx.Option {
	return fx.Options(
		fx.Provide(
			auth.NewJWTService,
			auth.NewBcryptOTPHasher,
		),
	)
}

func injectMiddleware() fx.Option {
	return fx.Options(
		fx.Provide(
			middleware.NewAuthMiddleware,
			middleware.NewErrorMiddleware,
		),
	)
}

func injectHandler() fx.Option {
	return fx.Options(
		fx.Provide(
			handler.NewUserHandler,
			handler.NewShopHandler,
			handler.NewProductHandler,
			handler.NewOrderHandler,
		),
	)
}

func injectDelivery() fx.Option {
	return fx.Options(
		fx.Provide(
			fx.Annotate(
				http.NewServer,
				fx.ResultTags(`group:"deliveries"`),
			),
		),
	)
}

func startServer(ctx context.Context, params startServerParams) {
	for _, delivery := range params.Deliveries {
		go func() {
			if err := delivery.Serve(ctx); err != nil {
				slog.Error("Failed to start server", slog.Any("error", err))
				os.Exit(1)
			}
		}()
	}
}
