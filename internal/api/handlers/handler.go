package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/babylonchain/liquid-staking-hub/internal/config"
	"github.com/babylonchain/liquid-staking-hub/internal/hub"
	"github.com/babylonchain/liquid-staking-hub/internal/services"
	"github.com/babylonchain/liquid-staking-hub/internal/types"
)

// HubService is the service layer as seen by the HTTP handlers.
type HubService interface {
	DoHealthCheck(ctx context.Context) error
	Execute(ctx context.Context, req services.ExecuteRequest) (*services.ExecutionResult, *types.Error)
	Query(ctx context.Context, raw json.RawMessage) (any, *types.Error)
	HubConfig(ctx context.Context) (hub.Config, *types.Error)
	HubState(ctx context.Context) (hub.State, *types.Error)
	CurrentBatch(ctx context.Context) (hub.CurrentBatch, *types.Error)
	Parameters(ctx context.Context) (hub.Parameters, *types.Error)
	WithdrawableUnbonded(ctx context.Context, address string) (hub.WithdrawableUnbondedResponse, *types.Error)
	UnbondRequests(ctx context.Context, address string) (hub.UnbondRequestsResponse, *types.Error)
	AllHistory(ctx context.Context, startFrom *uint64, limit *uint32) (hub.AllHistoryResponse, *types.Error)
	WhitelistedValidators(ctx context.Context) (hub.WhitelistedValidatorsResponse, *types.Error)
	Guardians(ctx context.Context) (hub.GuardiansResponse, *types.Error)
	Executions(ctx context.Context, sender string, pageToken string) ([]services.ExecutionPublic, string, *types.Error)
	Execution(ctx context.Context, executionID string) (*services.ExecutionPublic, *types.Error)
}

type Handler struct {
	config   *config.Config
	services HubService
}

type paginationResponse struct {
	NextKey string `json:"next_key"`
}

type PublicResponse[T any] struct {
	Data       T                   `json:"data"`
	Pagination *paginationResponse `json:"pagination,omitempty"`
}

type Result struct {
	Data   interface{}
	Status int
}

// NewResult returns a successful result, with default status code 200
func NewResultWithPagination[T any](data T, pageToken string) *Result {
	res := &PublicResponse[T]{Data: data, Pagination: &paginationResponse{NextKey: pageToken}}
	return &Result{Data: res, Status: http.StatusOK}
}

func NewResult[T any](data T) *Result {
	res := &PublicResponse[T]{Data: data}
	return &Result{Data: res, Status: http.StatusOK}
}

func New(
	ctx context.Context, cfg *config.Config, services HubService,
) (*Handler, error) {
	return &Handler{
		config:   cfg,
		services: services,
	}, nil
}

func parseOptionalUint(request *http.Request, param string, bitSize int) (*uint64, *types.Error) {
	raw := request.URL.Query().Get(param)
	if raw == "" {
		return nil, nil
	}
	value, err := strconv.ParseUint(raw, 10, bitSize)
	if err != nil {
		return nil, types.NewErrorWithMsg(http.StatusBadRequest, types.BadRequest, "invalid "+param)
	}
	return &value, nil
}

func requiredQuery(request *http.Request, param string) (string, *types.Error) {
	value := request.URL.Query().Get(param)
	if value == "" {
		return "", types.NewErrorWithMsg(http.StatusBadRequest, types.BadRequest, param+" is required")
	}
	return value, nil
}
