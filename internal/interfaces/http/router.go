package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/bulkledger-api/internal/application/extract"
	"github.com/jhoicas/bulkledger-api/internal/application/replay"
	"github.com/jhoicas/bulkledger-api/pkg/metrics"
	"github.com/rs/zerolog"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ReplayUC  *replay.ReplayUseCase
	ExtractUC *extract.ExtractUseCase
	Log       zerolog.Logger
	Metrics   *metrics.Metrics
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Corridas sobre el libro de gestión
	ledgerGroup := api.Group("/ledger")
	ledgerHandler := NewLedgerHandler(deps.ReplayUC, deps.ExtractUC, deps.Log, deps.Metrics)
	ledgerGroup.Post("/replay", ledgerHandler.Replay)
	ledgerGroup.Post("/extract", ledgerHandler.Extract)
}
