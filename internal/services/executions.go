package services

import (
	"context"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/babylonchain/liquid-staking-hub/internal/db"
	"github.com/babylonchain/liquid-staking-hub/internal/db/model"
	"github.com/babylonchain/liquid-staking-hub/internal/types"
)

type ExecutionPublic struct {
	ExecutionID string                     `json:"execution_id"`
	Sequence    int64                      `json:"sequence"`
	MsgName     string                     `json:"msg_name"`
	Sender      string                     `json:"sender"`
	Funds       string                     `json:"funds"`
	BlockHeight uint64                     `json:"block_height"`
	BlockTime   uint64                     `json:"block_time"`
	Outcome     string                     `json:"outcome"`
	Error       string                     `json:"error,omitempty"`
	Attributes  []model.ExecutionAttribute `json:"attributes"`
	MessageIDs  []string                   `json:"message_ids"`
}

func fromExecutionDocument(d model.ExecutionDocument) ExecutionPublic {
	return ExecutionPublic{
		ExecutionID: d.ExecutionID,
		Sequence:    d.Sequence,
		MsgName:     d.MsgName,
		Sender:      d.Sender,
		Funds:       d.Funds,
		BlockHeight: d.BlockHeight,
		BlockTime:   d.BlockTime,
		Outcome:     d.Outcome.ToString(),
		Error:       d.Error,
		Attributes:  d.Attributes,
		MessageIDs:  d.MessageIDs,
	}
}

// Executions lists recorded executions newest first, optionally for one sender.
func (s *Services) Executions(ctx context.Context, sender string, pageToken string) ([]ExecutionPublic, string, *types.Error) {
	resultMap, err := s.DbClient.FindExecutions(ctx, sender, pageToken)
	if err != nil {
		if db.IsInvalidPaginationTokenError(err) {
			log.Ctx(ctx).Warn().Err(err).Msg("Invalid pagination token when fetching executions")
			return nil, "", types.NewError(http.StatusBadRequest, types.BadRequest, err)
		}
		log.Ctx(ctx).Error().Err(err).Msg("Failed to find executions")
		return nil, "", types.NewInternalServiceError(err)
	}
	executions := make([]ExecutionPublic, 0, len(resultMap.Data))
	for _, d := range resultMap.Data {
		executions = append(executions, fromExecutionDocument(d))
	}
	return executions, resultMap.PaginationToken, nil
}

func (s *Services) Execution(ctx context.Context, executionID string) (*ExecutionPublic, *types.Error) {
	d, err := s.DbClient.FindExecutionByID(ctx, executionID)
	if err != nil {
		if db.IsNotFoundError(err) {
			return nil, types.NewError(http.StatusNotFound, types.NotFound, err)
		}
		log.Ctx(ctx).Error().Err(err).Msg("Failed to find execution")
		return nil, types.NewInternalServiceError(err)
	}
	execution := fromExecutionDocument(*d)
	return &execution, nil
}
