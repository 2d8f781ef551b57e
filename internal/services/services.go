package services

import (
	"context"
	"net/http"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/babylonchain/liquid-staking-hub/internal/clients"
	"github.com/babylonchain/liquid-staking-hub/internal/config"
	"github.com/babylonchain/liquid-staking-hub/internal/db"
	"github.com/babylonchain/liquid-staking-hub/internal/hub"
	"github.com/babylonchain/liquid-staking-hub/internal/store"
	"github.com/babylonchain/liquid-staking-hub/internal/types"
	"github.com/babylonchain/liquid-staking-hub/internal/utils"
)

// Service layer contains the business logic and is used to interact with
// the database and other external clients (if any).
type Services struct {
	DbClient db.DBClient
	Clients  *clients.Clients
	Hub      *hub.Hub
	cfg      *config.Config

	// mu serializes executions. Queries share it so they never observe a
	// half-committed execution.
	mu       sync.RWMutex
	sequence int64
	outbox   chan struct{}
}

func New(ctx context.Context, cfg *config.Config, clients *clients.Clients) (*Services, error) {
	dbClient, err := db.New(ctx, cfg.Db)
	if err != nil {
		log.Ctx(ctx).Fatal().Err(err).Msg("error while creating db client")
		return nil, err
	}
	return NewWithDbClient(ctx, cfg, dbClient, clients)
}

// NewWithDbClient builds the services on an existing database client and
// instantiates the hub when configured to and nothing is stored yet.
func NewWithDbClient(
	ctx context.Context, cfg *config.Config, dbClient db.DBClient, clients *clients.Clients,
) (*Services, error) {
	opts := []hub.Option{hub.WithLogger(log.Logger.With().Str("module", "hub").Logger())}
	if cfg.Chain.Bech32Prefix != "" {
		opts = append(opts, hub.WithAddressValidator(utils.AddressValidator(cfg.Chain.Bech32Prefix)))
	}
	h, err := hub.New(clients.Chain, opts...)
	if err != nil {
		return nil, err
	}

	sequence, err := dbClient.LastExecutionSequence(ctx)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Msg("error while loading the last execution sequence")
		return nil, err
	}

	s := &Services{
		DbClient: dbClient,
		Clients:  clients,
		Hub:      h,
		cfg:      cfg,
		sequence: sequence,
		outbox:   make(chan struct{}, 1),
	}

	if cfg.Hub.AutoInstantiate {
		if err := s.autoInstantiate(ctx); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// DoHealthCheck checks the health of the services by ping the database.
func (s *Services) DoHealthCheck(ctx context.Context) error {
	return s.DbClient.Ping(ctx)
}

func (s *Services) SaveUnprocessableMessages(ctx context.Context, messageBody, receipt, reason string) *types.Error {
	err := s.DbClient.SaveUnprocessableMessage(ctx, messageBody, receipt, reason)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Msg("error while saving unprocessable message")
		return types.NewErrorWithMsg(http.StatusInternalServerError, types.InternalServiceError, "error while saving unprocessable message")
	}
	return nil
}

// committedContext reads the committed contract store.
func (s *Services) committedContext(ctx context.Context) context.Context {
	return store.WithKVStore(ctx, s.DbClient.ContractStore(ctx))
}

func (s *Services) contractEnv(block hub.BlockInfo) hub.Env {
	return hub.Env{
		Block:    block,
		Contract: hub.ContractInfo{Address: s.cfg.Chain.HubAddress},
	}
}
