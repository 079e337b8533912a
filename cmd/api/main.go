package main

import (
	appfx "Planora/internal/fx"

	"go.uber.org/fx"
)

// @title Planora API
// @version 1.0
// @description API de planejamento financeiro com projeção de saldos mensais
// @BasePath /api
func main() {
	fx.New(
		appfx.AppModule,
	).Run()
}
