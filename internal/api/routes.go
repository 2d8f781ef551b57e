package api

import (
	"github.com/go-chi/chi"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "github.com/babylonchain/liquid-staking-hub/docs"
)

func (a *Server) SetupRoutes(r *chi.Mux) {
	handlers := a.handlers
	r.Get("/healthcheck", registerHandler(handlers.HealthCheck))

	r.Post("/v1/execute", registerHandler(handlers.Execute))
	r.Post("/v1/query", registerHandler(handlers.Query))

	r.Get("/v1/config", registerHandler(handlers.GetConfig))
	r.Get("/v1/state", registerHandler(handlers.GetState))
	r.Get("/v1/current-batch", registerHandler(handlers.GetCurrentBatch))
	r.Get("/v1/parameters", registerHandler(handlers.GetParameters))
	r.Get("/v1/withdrawable-unbonded", registerHandler(handlers.GetWithdrawableUnbonded))
	r.Get("/v1/unbond-requests", registerHandler(handlers.GetUnbondRequests))
	r.Get("/v1/all-history", registerHandler(handlers.GetAllHistory))
	r.Get("/v1/whitelisted-validators", registerHandler(handlers.GetWhitelistedValidators))
	r.Get("/v1/guardians", registerHandler(handlers.GetGuardians))

	r.Get("/v1/executions", registerHandler(handlers.GetExecutions))
	r.Get("/v1/execution", registerHandler(handlers.GetExecution))

	r.Get("/swagger/*", httpSwagger.WrapHandler)
}
