package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/babylonchain/liquid-staking-hub/internal/hub"
	"github.com/babylonchain/liquid-staking-hub/internal/services"
	"github.com/babylonchain/liquid-staking-hub/internal/types"
)

type ExecutePayload struct {
	Sender      string          `json:"sender"`
	Funds       hub.Coins       `json:"funds,omitempty"`
	Msg         json.RawMessage `json:"msg"`
	BlockHeight uint64          `json:"block_height,omitempty"`
	BlockTime   uint64          `json:"block_time,omitempty"`
}

// Execute @Summary Execute a hub message
// @Description Runs one execute message as sender with the attached funds.
// @Description Either the whole execution commits, including its outbound messages, or nothing does.
// @Accept json
// @Produce json
// @Param payload body ExecutePayload true "Execute message"
// @Success 200 {object} PublicResponse[services.ExecutionResult] "Committed execution"
// @Failure 400 {object} types.Error "Error: Bad Request"
// @Failure 403 {object} types.Error "Error: Forbidden"
// @Failure 409 {object} types.Error "Error: Conflict"
// @Router /v1/execute [post]
func (h *Handler) Execute(request *http.Request) (*Result, *types.Error) {
	var payload ExecutePayload
	if err := json.NewDecoder(request.Body).Decode(&payload); err != nil {
		return nil, types.NewErrorWithMsg(http.StatusBadRequest, types.BadRequest, "invalid request payload")
	}
	if payload.Sender == "" {
		return nil, types.NewErrorWithMsg(http.StatusBadRequest, types.BadRequest, "sender is required")
	}
	if len(payload.Msg) == 0 {
		return nil, types.NewErrorWithMsg(http.StatusBadRequest, types.BadRequest, "msg is required")
	}

	req := services.ExecuteRequest{Sender: payload.Sender, Funds: payload.Funds, Msg: payload.Msg}
	if payload.BlockTime != 0 {
		req.Block = &hub.BlockInfo{Height: payload.BlockHeight, Time: payload.BlockTime}
	}
	res, err := h.services.Execute(request.Context(), req)
	if err != nil {
		return nil, err
	}
	return NewResult(res), nil
}

// Query @Summary Run a raw hub query
// @Description Answers a query message such as {"state":{}} against the committed hub state
// @Accept json
// @Produce json
// @Success 200 {object} PublicResponse[any] "Query response"
// @Failure 400 {object} types.Error "Error: Bad Request"
// @Router /v1/query [post]
func (h *Handler) Query(request *http.Request) (*Result, *types.Error) {
	var raw json.RawMessage
	if err := json.NewDecoder(request.Body).Decode(&raw); err != nil {
		return nil, types.NewErrorWithMsg(http.StatusBadRequest, types.BadRequest, "invalid request payload")
	}
	res, err := h.services.Query(request.Context(), raw)
	if err != nil {
		return nil, err
	}
	return NewResult(res), nil
}
