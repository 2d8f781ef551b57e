package handlers

import (
	"net/http"

	"github.com/babylonchain/liquid-staking-hub/internal/types"
)

// GetExecutions @Summary Get recorded executions
// @Description Lists committed and rejected executions, newest first
// @Produce json
// @Param sender query string false "Only executions sent by this address"
// @Param pagination_key query string false "Pagination key to fetch the next page of executions"
// @Success 200 {object} PublicResponse[[]services.ExecutionPublic]{array} "List of executions and pagination token"
// @Failure 400 {object} types.Error "Error: Bad Request"
// @Router /v1/executions [get]
func (h *Handler) GetExecutions(request *http.Request) (*Result, *types.Error) {
	sender := request.URL.Query().Get("sender")
	paginationKey := request.URL.Query().Get("pagination_key")

	executions, newPaginationKey, err := h.services.Executions(request.Context(), sender, paginationKey)
	if err != nil {
		return nil, err
	}
	return NewResultWithPagination(executions, newPaginationKey), nil
}

// GetExecution @Summary Get one execution
// @Produce json
// @Param execution_id query string true "Execution id"
// @Success 200 {object} PublicResponse[services.ExecutionPublic] "Execution"
// @Failure 404 {object} types.Error "Error: Not Found"
// @Router /v1/execution [get]
func (h *Handler) GetExecution(request *http.Request) (*Result, *types.Error) {
	executionID, err := requiredQuery(request, "execution_id")
	if err != nil {
		return nil, err
	}
	execution, err := h.services.Execution(request.Context(), executionID)
	if err != nil {
		return nil, err
	}
	return NewResult(execution), nil
}
