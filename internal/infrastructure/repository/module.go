package repository

import (
	"go.uber.org/fx"

	"bookkeeping-gateway/internal/domain/repository"
	"bookkeeping-gateway/internal/infrastructure/httpclient"
)

// provideAPICallSaver lets the HTTP client record calls through the repository
func provideAPICallSaver(repo repository.APICallRepository) httpclient.APICallSaver {
	return repo
}

var Module = fx.Module("repository",
	fx.Provide(NewLogRepository),
	fx.Provide(NewAPICallRepository),
	fx.Provide(provideAPICallSaver),
)
