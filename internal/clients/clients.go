package clients

import (
	"github.com/babylonchain/liquid-staking-hub/internal/clients/chain"
	"github.com/babylonchain/liquid-staking-hub/internal/config"
)

type Clients struct {
	Chain chain.ChainClientInterface
}

func New(cfg *config.Config) *Clients {
	chainClient := chain.NewChainClient(&cfg.Chain)

	return &Clients{
		Chain: chainClient,
	}
}
