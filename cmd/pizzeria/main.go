package main

import (
	"context"
	"log/slog"
	"os"

	"go.uber.org/fx"

	"pizzeria/config"
	"pizzeria/internal/delivery"
	"pizzeria/internal/delivery/http"
	"pizzeria/internal/delivery/http/middleware"
	"pizzeria/internal/delivery/http/router/handler"
	"pizzeria/internal/domain/repository"
	"pizzeria/internal/domain/service"
	"pizzeria/internal/infra/dispatch"
	logs "pizzeria/internal/infra/log"
	"pizzeria/internal/infra/persistence"
	"pizzeria/internal/infra/record"
	"pizzeria/internal/usecase/impl"
)

type startServerParams struct {
	fx.In
	fx.Lifecycle

	Deliveries []delivery.Delivery `group:"deliveries"`
}

func main() {
	fx.New(
		injectInfra(),
		injectUsecase(),
		injectMiddleware(),
		injectHandler(),
		injectDelivery(),
		fx.Invoke(
			ensureSchema,
			startServer,
		),
	).Run()
}

func injectInfra() fx.Option {
	return fx.Provide(
		config.New,
		logs.New,
		context.Background,
		record.NewStore,
		newEventDispatcher,
		fx.Annotate(
			persistence.NewOperationFactory,
			fx.As(new(repository.OperationFactory)),
		),
	)
}

// newEventDispatcher builds the in-process event bus with the default
// handlers registered.
func newEventDispatcher(logger *slog.Logger) service.EventDispatcher {
	dispatcher := dispatch.NewDispatcher(logger)
	dispatch.RegisterDefaultHandlers(dispatcher, logger)

	return dispatcher
}

func injectUsecase() fx.Option {
	return fx.Options(
		fx.Provide(
			impl.NewOrderingService,
			impl.NewCatalogService,
			impl.NewCustomerService,
			impl.NewPaymentService,
		),
	)
}

func injectMiddleware() fx.Option {
	return fx.Options(
		fx.Provide(
			middleware.NewLoggerMiddleware,
			middleware.NewErrorMiddleware,
		),
	)
}

func injectHandler() fx.Option {
	return fx.Options(
		fx.Provide(
			handler.NewOrderHandler,
			handler.NewPizzaHandler,
			handler.NewCustomerHandler,
			handler.NewPaymentHandler,
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

// ensureSchema provisions the six tables when running against the embedded
// store. Production stores are pre-provisioned.
func ensureSchema(ctx context.Context, cfg *config.Config, store *record.Store) error {
	if cfg.Store.Driver != "sqlite" {
		return nil
	}

	return persistence.EnsureSchema(ctx, store)
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
