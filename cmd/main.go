package main

import (
	"go.uber.org/fx"

	"bookkeeping-gateway/internal/service"
)

func main() {
	fx.New(service.Modules()).Run()
}
