package services

import (
	"errors"
	"net/http"

	errorsmod "cosmossdk.io/errors"

	"github.com/babylonchain/liquid-staking-hub/internal/db"
	"github.com/babylonchain/liquid-staking-hub/internal/hub"
	"github.com/babylonchain/liquid-staking-hub/internal/types"
)

// mapHubError turns an error returned by the hub into an API error. Rejections
// of the message itself are 4xx: retrying the same message cannot succeed.
// Failed chain queries and storage errors are 5xx.
func mapHubError(err error) *types.Error {
	var apiErr *types.Error
	switch {
	case err == nil:
		return nil
	case errorsmod.IsOf(err, hub.ErrQuery):
		return types.NewError(http.StatusBadGateway, types.InternalServiceError, err)
	case errors.As(err, &apiErr):
		return apiErr
	case errorsmod.IsOf(err, hub.ErrUnauthorized, hub.ErrNotRegistered):
		return types.NewError(http.StatusForbidden, types.Forbidden, err)
	case errorsmod.IsOf(err, hub.ErrPaused, hub.ErrAlreadyInstantiated):
		return types.NewError(http.StatusConflict, types.Conflict, err)
	case errorsmod.IsOf(err, hub.ErrNotInstantiated):
		return types.NewError(http.StatusNotFound, types.NotFound, err)
	case errorsmod.IsOf(err,
		hub.ErrInvalidFunds, hub.ErrInvalidRequest, hub.ErrUnknownValidator, hub.ErrOverflow,
		hub.ErrUnderflow, hub.ErrNothingToWithdraw, hub.ErrLastValidator, hub.ErrDegenerateUndelegation,
		hub.ErrUndelegationShortfall, hub.ErrInvalidParams,
	):
		return types.NewError(http.StatusBadRequest, types.ValidationError, err)
	case db.IsInvalidPaginationTokenError(err):
		return types.NewError(http.StatusBadRequest, types.BadRequest, err)
	case db.IsNotFoundError(err):
		return types.NewError(http.StatusNotFound, types.NotFound, err)
	}
	return types.NewInternalServiceError(err)
}

// IsRejection reports whether err is final for the message that caused it.
func IsRejection(err *types.Error) bool {
	return err != nil && err.StatusCode >= http.StatusBadRequest && err.StatusCode < http.StatusInternalServerError
}
