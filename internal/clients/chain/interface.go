package chain

import (
	"context"
	"net/http"

	"github.com/babylonchain/liquid-staking-hub/internal/hub"
)

type ChainClientInterface interface {
	hub.Querier
	GetBaseURL() string
	GetDefaultRequestTimeout() int
	GetHttpClient() *http.Client
	LatestBlock(ctx context.Context) (hub.BlockInfo, error)
}
