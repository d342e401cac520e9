package main

import (
	"context"

	"github.com/cgdmohamed/NexusCore-sub001/internal/app"
	"github.com/cgdmohamed/NexusCore-sub001/internal/config"
	"github.com/cgdmohamed/NexusCore-sub001/internal/di"
	"github.com/cgdmohamed/NexusCore-sub001/internal/errors"
	"github.com/cgdmohamed/NexusCore-sub001/internal/infrastructure/api/routers"
	"github.com/cgdmohamed/NexusCore-sub001/internal/infrastructure/database/db_client"
	"github.com/cgdmohamed/NexusCore-sub001/pkg/log"
)

const (
	appName = "company-os-core"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg := config.Load()

	log.Init(appName, log.WithConsoleLogger())
	logger := log.GetLogger()

	pgClient := db_client.NewPGClient(cfg.PostgreSQL)
	db, err := pgClient.Connect()
	if err != nil {
		logger.Fatal().Err(err).Msg(errors.ErrorFailedToConnectToTheDatabase)
	}

	container := di.NewContainer(db, cfg)

	dispatch := app.NewNotificationDispatchProcess(container.NotificationInteractor, cfg.Process)
	go dispatch.Run(ctx)

	router := routers.NewRouter(container)
	service := app.NewService(cfg)
	service.Run(ctx, router)
}
