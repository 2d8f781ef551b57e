package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/babylonchain/liquid-staking-hub/internal/hub"
	"github.com/babylonchain/liquid-staking-hub/internal/queue/client"
	"github.com/babylonchain/liquid-staking-hub/internal/services"
	"github.com/babylonchain/liquid-staking-hub/internal/types"
)

// ExecuteHandler runs the execute message carried by the event. A message the
// hub rejects comes back as a 4xx error so it is not retried.
func (h *QueueHandler) ExecuteHandler(ctx context.Context, messageBody string) *types.Error {
	var event client.ExecuteEvent
	if err := json.Unmarshal([]byte(messageBody), &event); err != nil {
		log.Ctx(ctx).Error().Err(err).Msg("Failed to unmarshal the message body into ExecuteEvent")
		return types.NewError(http.StatusBadRequest, types.BadRequest, err)
	}
	if event.Sender == "" {
		return types.NewErrorWithMsg(http.StatusBadRequest, types.BadRequest, "execute event has no sender")
	}

	req := services.ExecuteRequest{
		Sender: event.Sender,
		Funds:  event.Funds,
		Msg:    event.Msg,
	}
	if event.BlockTime != 0 {
		req.Block = &hub.BlockInfo{Height: event.BlockHeight, Time: event.BlockTime}
	}

	res, err := h.Services.Execute(ctx, req)
	if err != nil {
		return err
	}
	log.Ctx(ctx).Debug().
		Str("execution_id", res.ExecutionID).
		Int64("sequence", res.Sequence).
		Msg("execute event processed")
	return nil
}
