package database

import (
	"context"

	"go.uber.org/fx"
)

var Module = fx.Module("database",
	fx.Provide(NewDatabase),
	fx.Invoke(func(lc fx.Lifecycle, db *Database) {
		lc.Append(fx.StopHook(func(context.Context) error {
			return db.Close()
		}))
	}),
)
