package main

import (
	"context"
	"log/slog"
	"os"

	"marketplace/config"
	"marketplace/internal/delivery"
	"marketplace/internal/delivery/api"
	"marketplace/internal/delivery/api/middleware"
	"marketplace/internal/delivery/api/router/handler"
	"marketplace/internal/domain/repository"
	"marketplace/internal/domain/service"
	"marketplace/internal/errors"
	"marketplace/internal/infra/auth"
	"marketplace/internal/infra/blob"
	"marketplace/internal/infra/imagegen"
	logs "marketplace/internal/infra/log"
	"marketplace/internal/infra/metrics"
	"marketplace/internal/infra/persistence/memory"
	"marketplace/internal/infra/persistence/mongo"
	"marketplace/internal/infra/persistence/postgres"
	"marketplace/internal/infra/pubsub"
	"marketplace/internal/usecase/impl"

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
		injectUsecase(),
		injectDelivery(),
		injectMiddleware(),
		injectHandler(),
		fx.Invoke(
			startServer,
		),
	).Run()
}

func injectInfra() fx.Option {
	return fx.Options(
		fx.Provide(
			config.New,
			logs.New,
			context.Background,
			metrics.New,
			newMetricsRecorder,
		),
		pubsub.Module,
	)
}

func newMetricsRecorder(collector *metrics.Collector) service.MetricsRecorder {
	return collector
}

type repositoriesParams struct {
	fx.In
	fx.Lifecycle

	Config *config.Config
	Logger *slog.Logger
}

type repositories struct {
	fx.Out

	UserRepo   repository.UserRepository
	AdvertRepo repository.AdvertRepository
}

// newRepositories opens the store selected by storage.driver.
func newRepositories(params repositoriesParams) (repositories, error) {
	driver := params.Config.Storage.Driver
	params.Logger.Info("Opening storage", slog.String("driver", driver))

	switch driver {
	case config.StorageDriverPostgres:
		db, err := postgres.New(postgres.Params{Lifecycle: params.Lifecycle, Config: params.Config, Logger: params.Logger})
		if err != nil {
			return repositories{}, err
		}

		return repositories{
			UserRepo:   postgres.NewUserRepository(db),
			AdvertRepo: postgres.NewAdvertRepository(db),
		}, nil

	case config.StorageDriverMongo:
		db, err := mongo.New(mongo.Params{Lifecycle: params.Lifecycle, Config: params.Config, Logger: params.Logger})
		if err != nil {
			return repositories{}, err
		}

		return repositories{
			UserRepo:   mongo.NewUserRepository(db),
			AdvertRepo: mongo.NewAdvertRepository(db),
		}, nil

	case config.StorageDriverMemory:
		store := memory.NewStore()

		return repositories{
			UserRepo:   store.Users(),
			AdvertRepo: store.Adverts(),
		}, nil

	default:
		return repositories{}, errors.Errorf("unknown storage driver %q", driver)
	}
}

func injectRepo() fx.Option {
	return fx.Options(
		fx.Provide(
			newRepositories,
		),
	)
}

func injectService() fx.Option {
	return fx.Options(
		fx.Provide(
			auth.NewBcryptHasher,
			auth.NewJWTService,
			blob.New,
			imagegen.New,
		),
	)
}

func injectUsecase() fx.Option {
	return fx.Options(
		fx.Provide(
			impl.NewUserService,
			impl.NewAccessService,
			impl.NewAdvertService,
		),
	)
}

func injectMiddleware() fx.Option {
	return fx.Options(
		fx.Provide(
			middleware.NewAuthMiddleware,
		),
	)
}

func injectHandler() fx.Option {
	return fx.Options(
		fx.Provide(
			handler.NewUserHandler,
			handler.NewAdvertHandler,
		),
	)
}

func injectDelivery() fx.Option {
	return fx.Options(
		fx.Provide(
			fx.Annotate(
				api.NewServer,
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
