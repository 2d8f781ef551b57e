package hub

import (
	"encoding/json"

	errorsmod "cosmossdk.io/errors"
	sdkmath "cosmossdk.io/math"
)

type InstantiateMsg struct {
	EpochPeriod         uint64            `json:"epoch_period"`
	UnderlyingCoinDenom string            `json:"underlying_coin_denom"`
	UnbondingPeriod     uint64            `json:"unbonding_period"`
	PegRecoveryFee      sdkmath.LegacyDec `json:"peg_recovery_fee"`
	ErThreshold         sdkmath.LegacyDec `json:"er_threshold"`
	RewardDenom         string            `json:"reward_denom"`
	// Validator is whitelisted on instantiation and receives the initial
	// deposit, if any.
	Validator string `json:"validator,omitempty"`
}

// ExecuteMsg is a tagged union: exactly one field is set.
type ExecuteMsg struct {
	Bond                *Bond                `json:"bond,omitempty"`
	BondForStLuna       *BondForStLuna       `json:"bond_for_st_luna,omitempty"`
	BondRewards         *BondRewards         `json:"bond_rewards,omitempty"`
	Receive             *Cw20ReceiveMsg      `json:"receive,omitempty"`
	UpdateGlobalIndex   *UpdateGlobalIndex   `json:"update_global_index,omitempty"`
	WithdrawUnbonded    *WithdrawUnbonded    `json:"withdraw_unbonded,omitempty"`
	CheckSlashing       *CheckSlashing       `json:"check_slashing,omitempty"`
	UpdateParams        *UpdateParams        `json:"update_params,omitempty"`
	UpdateConfig        *UpdateConfig        `json:"update_config,omitempty"`
	RegisterValidator   *RegisterValidator   `json:"register_validator,omitempty"`
	DeregisterValidator *DeregisterValidator `json:"deregister_validator,omitempty"`
	ClaimAirdrops       *ClaimAirdrops       `json:"claim_airdrops,omitempty"`
	PauseContracts      *PauseContracts      `json:"pause_contracts,omitempty"`
	UnpauseContracts    *UnpauseContracts    `json:"unpause_contracts,omitempty"`
	AddGuardians        *AddGuardians        `json:"add_guardians,omitempty"`
	RemoveGuardians     *RemoveGuardians     `json:"remove_guardians,omitempty"`
}

type Bond struct {
	// Validator may be left empty to spread the bond over the whitelist.
	Validator string `json:"validator"`
}

type BondForStLuna struct{}

type BondRewards struct{}

// Cw20ReceiveMsg is the callback a token contract sends after tokens were
// transferred to the hub. Msg carries a Cw20HookMsg.
type Cw20ReceiveMsg struct {
	Sender string      `json:"sender"`
	Amount sdkmath.Int `json:"amount"`
	Msg    []byte      `json:"msg"`
}

type Cw20HookMsg struct {
	Unbond  *UnbondHook  `json:"unbond,omitempty"`
	Convert *ConvertHook `json:"convert,omitempty"`
}

type UnbondHook struct{}

type ConvertHook struct{}

type UpdateGlobalIndex struct {
	AirdropHooks [][]byte `json:"airdrop_hooks,omitempty"`
}

type WithdrawUnbonded struct{}

type CheckSlashing struct{}

type UpdateParams struct {
	EpochPeriod     *uint64            `json:"epoch_period,omitempty"`
	UnbondingPeriod *uint64            `json:"unbonding_period,omitempty"`
	PegRecoveryFee  *sdkmath.LegacyDec `json:"peg_recovery_fee,omitempty"`
	ErThreshold     *sdkmath.LegacyDec `json:"er_threshold,omitempty"`
}

type UpdateConfig struct {
	Owner                      *string `json:"owner,omitempty"`
	RewardsDispatcherContract  *string `json:"rewards_dispatcher_contract,omitempty"`
	ValidatorsRegistryContract *string `json:"validators_registry_contract,omitempty"`
	BLunaTokenContract         *string `json:"bluna_token_contract,omitempty"`
	StLunaTokenContract        *string `json:"stluna_token_contract,omitempty"`
	AirdropRegistryContract    *string `json:"airdrop_registry_contract,omitempty"`
}

type RegisterValidator struct {
	Validator string `json:"validator"`
}

type DeregisterValidator struct {
	Validator string `json:"validator"`
}

// ClaimAirdrops forwards a claim message to an airdrop contract and,
// optionally, a swap message to the contract that sells the airdrop.
type ClaimAirdrops struct {
	AirdropContract string `json:"airdrop_contract"`
	ClaimMsg        []byte `json:"claim_msg"`
	SwapContract    string `json:"swap_contract,omitempty"`
	SwapMsg         []byte `json:"swap_msg,omitempty"`
}

type PauseContracts struct{}

type UnpauseContracts struct{}

type AddGuardians struct {
	Addresses []string `json:"addresses"`
}

type RemoveGuardians struct {
	Addresses []string `json:"addresses"`
}

// Name returns the snake_case tag of the variant that is set.
func (m ExecuteMsg) Name() (string, error) {
	variants := []struct {
		set  bool
		name string
	}{
		{m.Bond != nil, "bond"},
		{m.BondForStLuna != nil, "bond_for_st_luna"},
		{m.BondRewards != nil, "bond_rewards"},
		{m.Receive != nil, "receive"},
		{m.UpdateGlobalIndex != nil, "update_global_index"},
		{m.WithdrawUnbonded != nil, "withdraw_unbonded"},
		{m.CheckSlashing != nil, "check_slashing"},
		{m.UpdateParams != nil, "update_params"},
		{m.UpdateConfig != nil, "update_config"},
		{m.RegisterValidator != nil, "register_validator"},
		{m.DeregisterValidator != nil, "deregister_validator"},
		{m.ClaimAirdrops != nil, "claim_airdrops"},
		{m.PauseContracts != nil, "pause_contracts"},
		{m.UnpauseContracts != nil, "unpause_contracts"},
		{m.AddGuardians != nil, "add_guardians"},
		{m.RemoveGuardians != nil, "remove_guardians"},
	}
	return pickVariant(variants)
}

func (m Cw20HookMsg) Name() (string, error) {
	return pickVariant([]struct {
		set  bool
		name string
	}{
		{m.Unbond != nil, "unbond"},
		{m.Convert != nil, "convert"},
	})
}

func pickVariant(variants []struct {
	set  bool
	name string
}) (string, error) {
	name := ""
	for _, v := range variants {
		if !v.set {
			continue
		}
		if name != "" {
			return "", errorsmod.Wrapf(ErrInvalidRequest, "message sets both %s and %s", name, v.name)
		}
		name = v.name
	}
	if name == "" {
		return "", errorsmod.Wrap(ErrInvalidRequest, "message sets no variant")
	}
	return name, nil
}

// ParseExecuteMsg decodes and checks an execute message.
func ParseExecuteMsg(raw []byte) (ExecuteMsg, error) {
	var msg ExecuteMsg
	if err := json.Unmarshal(raw, &msg); err != nil {
		return msg, errorsmod.Wrapf(ErrInvalidRequest, "malformed execute message: %s", err)
	}
	if _, err := msg.Name(); err != nil {
		return msg, err
	}
	return msg, nil
}

func parseHookMsg(raw []byte) (Cw20HookMsg, error) {
	var msg Cw20HookMsg
	if err := json.Unmarshal(raw, &msg); err != nil {
		return msg, errorsmod.Wrapf(ErrInvalidRequest, "malformed receive hook: %s", err)
	}
	if _, err := msg.Name(); err != nil {
		return msg, err
	}
	return msg, nil
}

// QueryMsg is a tagged union: exactly one field is set.
type QueryMsg struct {
	Config                *struct{}                  `json:"config,omitempty"`
	State                 *struct{}                  `json:"state,omitempty"`
	CurrentBatch          *struct{}                  `json:"current_batch,omitempty"`
	Parameters            *struct{}                  `json:"parameters,omitempty"`
	WithdrawableUnbonded  *WithdrawableUnbondedQuery `json:"withdrawable_unbonded,omitempty"`
	UnbondRequests        *UnbondRequestsQuery       `json:"unbond_requests,omitempty"`
	AllHistory            *AllHistoryQuery           `json:"all_history,omitempty"`
	WhitelistedValidators *struct{}                  `json:"whitelisted_validators,omitempty"`
	Guardians             *struct{}                  `json:"guardians,omitempty"`
}

type WithdrawableUnbondedQuery struct {
	Address string `json:"address"`
}

type UnbondRequestsQuery struct {
	Address string `json:"address"`
}

type AllHistoryQuery struct {
	StartFrom *uint64 `json:"start_from,omitempty"`
	Limit     *uint32 `json:"limit,omitempty"`
}

type WithdrawableUnbondedResponse struct {
	Withdrawable sdkmath.Int `json:"withdrawable"`
}

type UnbondRequest struct {
	BatchID      uint64      `json:"batch_id"`
	BLunaAmount  sdkmath.Int `json:"bluna_amount"`
	StLunaAmount sdkmath.Int `json:"stluna_amount"`
}

type UnbondRequestsResponse struct {
	Address  string          `json:"address"`
	Requests []UnbondRequest `json:"requests"`
}

type AllHistoryResponse struct {
	History []UnbondHistory `json:"history"`
}

type WhitelistedValidatorsResponse struct {
	Validators []Validator `json:"validators"`
}

type GuardiansResponse struct {
	Guardians []string `json:"guardians"`
}
