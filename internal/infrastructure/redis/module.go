package redis

import (
	"context"

	"go.uber.org/fx"
)

var Module = fx.Module("redis",
	fx.Provide(NewRedisClient),
	fx.Invoke(func(lc fx.Lifecycle, client *RedisClient) {
		lc.Append(fx.StopHook(func(context.Context) error {
			return client.Close()
		}))
	}),
)
