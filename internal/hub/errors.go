package hub

import (
	errorsmod "cosmossdk.io/errors"
)

// Codespace groups every error raised by the hub contract.
const Codespace = "hub"

var (
	ErrUnauthorized           = errorsmod.Register(Codespace, 2, "unauthorized")
	ErrPaused                 = errorsmod.Register(Codespace, 3, "the contract is temporarily paused")
	ErrInvalidFunds           = errorsmod.Register(Codespace, 4, "invalid funds")
	ErrInvalidRequest         = errorsmod.Register(Codespace, 5, "invalid request")
	ErrUnknownValidator       = errorsmod.Register(Codespace, 6, "unsupported validator")
	ErrOverflow               = errorsmod.Register(Codespace, 7, "arithmetic overflow")
	ErrUnderflow              = errorsmod.Register(Codespace, 8, "arithmetic underflow")
	ErrNothingToWithdraw      = errorsmod.Register(Codespace, 9, "nothing to withdraw")
	ErrLastValidator          = errorsmod.Register(Codespace, 10, "cannot remove the last whitelisted validator")
	ErrDegenerateUndelegation = errorsmod.Register(Codespace, 11, "burn amount must be greater than 1 unit")
	ErrUndelegationShortfall  = errorsmod.Register(Codespace, 12, "delegations cannot cover the undelegation")
	ErrNotRegistered          = errorsmod.Register(Codespace, 13, "contract address is not registered")
	ErrNotInstantiated        = errorsmod.Register(Codespace, 14, "hub is not instantiated")
	ErrAlreadyInstantiated    = errorsmod.Register(Codespace, 15, "hub is already instantiated")
	ErrInvalidParams          = errorsmod.Register(Codespace, 16, "invalid parameters")
	ErrQuery                  = errorsmod.Register(Codespace, 17, "chain query failed")
)

func wrapParams(msg string) error {
	return errorsmod.Wrap(ErrInvalidParams, msg)
}
