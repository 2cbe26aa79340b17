package http

import (
	"go.uber.org/fx"

	"bookkeeping-gateway/internal/delivery/http/handler"
	"bookkeeping-gateway/internal/delivery/http/router"
)

var Module = fx.Module("http",
	fx.Provide(
		handler.NewHealthHandler,
		handler.NewLogHandler,
		handler.NewAPICallHandler,
		router.NewRouter,
	),
)
