package handlers

import (
	"net/http"

	"github.com/babylonchain/liquid-staking-hub/internal/types"
)

// GetConfig @Summary Get the hub configuration
// @Description Owner and the registered token, reward and registry contracts
// @Produce json
// @Success 200 {object} PublicResponse[hub.Config] "Hub configuration"
// @Failure 404 {object} types.Error "Error: Not Found"
// @Router /v1/config [get]
func (h *Handler) GetConfig(request *http.Request) (*Result, *types.Error) {
	cfg, err := h.services.HubConfig(request.Context())
	if err != nil {
		return nil, err
	}
	return NewResult(cfg), nil
}

// GetState @Summary Get the hub state
// @Description Exchange rates and bonded totals for bLuna and stLuna
// @Produce json
// @Success 200 {object} PublicResponse[hub.State] "Hub state"
// @Router /v1/state [get]
func (h *Handler) GetState(request *http.Request) (*Result, *types.Error) {
	state, err := h.services.HubState(request.Context())
	if err != nil {
		return nil, err
	}
	return NewResult(state), nil
}

// GetCurrentBatch @Summary Get the open unbonding batch
// @Produce json
// @Success 200 {object} PublicResponse[hub.CurrentBatch] "Current batch"
// @Router /v1/current-batch [get]
func (h *Handler) GetCurrentBatch(request *http.Request) (*Result, *types.Error) {
	batch, err := h.services.CurrentBatch(request.Context())
	if err != nil {
		return nil, err
	}
	return NewResult(batch), nil
}

// GetParameters @Summary Get the hub parameters
// @Produce json
// @Success 200 {object} PublicResponse[hub.Parameters] "Parameters"
// @Router /v1/parameters [get]
func (h *Handler) GetParameters(request *http.Request) (*Result, *types.Error) {
	params, err := h.services.Parameters(request.Context())
	if err != nil {
		return nil, err
	}
	return NewResult(params), nil
}

// GetWithdrawableUnbonded @Summary Get the amount an address can withdraw now
// @Produce json
// @Param address query string true "Account address"
// @Success 200 {object} PublicResponse[hub.WithdrawableUnbondedResponse] "Withdrawable amount"
// @Failure 400 {object} types.Error "Error: Bad Request"
// @Router /v1/withdrawable-unbonded [get]
func (h *Handler) GetWithdrawableUnbonded(request *http.Request) (*Result, *types.Error) {
	address, err := requiredQuery(request, "address")
	if err != nil {
		return nil, err
	}
	res, err := h.services.WithdrawableUnbonded(request.Context(), address)
	if err != nil {
		return nil, err
	}
	return NewResult(res), nil
}

// GetUnbondRequests @Summary Get the pending unbond requests of an address
// @Produce json
// @Param address query string true "Account address"
// @Success 200 {object} PublicResponse[hub.UnbondRequestsResponse] "Unbond requests"
// @Failure 400 {object} types.Error "Error: Bad Request"
// @Router /v1/unbond-requests [get]
func (h *Handler) GetUnbondRequests(request *http.Request) (*Result, *types.Error) {
	address, err := requiredQuery(request, "address")
	if err != nil {
		return nil, err
	}
	res, err := h.services.UnbondRequests(request.Context(), address)
	if err != nil {
		return nil, err
	}
	return NewResult(res), nil
}

// GetAllHistory @Summary Get closed unbonding batches
// @Produce json
// @Param start_from query int false "Return batches after this id"
// @Param limit query int false "Maximum number of batches"
// @Success 200 {object} PublicResponse[hub.AllHistoryResponse] "Batch history"
// @Failure 400 {object} types.Error "Error: Bad Request"
// @Router /v1/all-history [get]
func (h *Handler) GetAllHistory(request *http.Request) (*Result, *types.Error) {
	startFrom, err := parseOptionalUint(request, "start_from", 64)
	if err != nil {
		return nil, err
	}
	limit64, err := parseOptionalUint(request, "limit", 32)
	if err != nil {
		return nil, err
	}
	var limit *uint32
	if limit64 != nil {
		l := uint32(*limit64)
		limit = &l
	}
	res, err := h.services.AllHistory(request.Context(), startFrom, limit)
	if err != nil {
		return nil, err
	}
	return NewResult(res), nil
}

// GetWhitelistedValidators @Summary Get the validators the hub delegates to
// @Produce json
// @Success 200 {object} PublicResponse[hub.WhitelistedValidatorsResponse] "Validators"
// @Router /v1/whitelisted-validators [get]
func (h *Handler) GetWhitelistedValidators(request *http.Request) (*Result, *types.Error) {
	res, err := h.services.WhitelistedValidators(request.Context())
	if err != nil {
		return nil, err
	}
	return NewResult(res), nil
}

// GetGuardians @Summary Get the addresses allowed to pause the hub
// @Produce json
// @Success 200 {object} PublicResponse[hub.GuardiansResponse] "Guardians"
// @Router /v1/guardians [get]
func (h *Handler) GetGuardians(request *http.Request) (*Result, *types.Error) {
	res, err := h.services.Guardians(request.Context())
	if err != nil {
		return nil, err
	}
	return NewResult(res), nil
}
