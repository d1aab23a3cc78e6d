package main

import (
	"context"
	"log/slog"
	"os"

	"vidtube/config"
	"vidtube/internal/delivery"
	"vidtube/internal/delivery/http"
	"vidtube/internal/delivery/http/middleware"
	"vidtube/internal/delivery/http/router/handler"
	"vidtube/internal/infra/auth"
	logs "vidtube/internal/infra/log"
	"vidtube/internal/infra/media"
	"vidtube/internal/infra/persistence/postgres"
	"vidtube/internal/usecase/impl"

	"go.uber.org/fx"
)

type startServerParams struct {
	fx.In
	fx.Lifecycle
	fx.Shutdowner

	Deliveries []delivery.Delivery `group:"deliveries"`
}

func main() {
	fx.New(
		injectInfra(),
		injectRepo(),
		injectService(),
		injectUsecase(),
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
		postgres.New,
	)
}

func injectRepo() fx.Option {
	return fx.Options(
		fx.Provide(
			postgres.NewUserRepository,
			postgres.NewVideoRepository,
			postgres.NewCommentRepository,
			postgres.NewTweetRepository,
			postgres.NewPlaylistRepository,
			postgres.NewLikeRepository,
			postgres.NewSubscriptionRepository,
		),
	)
}

func injectService() fx.Option {
	return fx.Options(
		fx.Provide(
			auth.NewBcryptHasher,
			auth.NewJWTService,
			media.NewBlobStorage,
		),
	)
}

func injectUsecase() fx.Option {
	return fx.Options(
		fx.Provide(
			impl.NewUserService,
			impl.NewVideoService,
			impl.NewCommentService,
			impl.NewTweetService,
			impl.NewPlaylistService,
			impl.NewLikeService,
			impl.NewSubscriptionService,
			impl.NewChannelService,
		),
	)
}

func injectMiddleware() fx.Option {
	return fx.Options(
		fx.Provide(
			middleware.NewAuthMiddleware,
			middleware.NewErrorMiddleware,
			middleware.NewRequestMiddleware,
		),
	)
}

func injectHandler() fx.Option {
	return fx.Options(
		fx.Provide(
			handler.NewUserHandler,
			handler.NewVideoHandler,
			handler.NewCommentHandler,
			handler.NewTweetHandler,
			handler.NewPlaylistHandler,
			handler.NewLikeHandler,
			handler.NewSubscriptionHandler,
			handler.NewChannelHandler,
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

				// Trigger graceful shutdown to execute all OnStop hooks
				if shutdownErr := params.Shutdown(); shutdownErr != nil {
					slog.Error("Failed to shutdown gracefully", slog.Any("error", shutdownErr))
					os.Exit(1)
				}
			}
		}()
	}
}
