package hub

import (
	sdkmath "cosmossdk.io/math"
)

// Config holds the owner and the addresses of the contracts the hub talks to.
// Contract addresses stay unset until the owner registers them.
type Config struct {
	Creator                    string  `json:"creator"`
	RewardDispatcherContract   *string `json:"reward_dispatcher_contract,omitempty"`
	ValidatorsRegistryContract *string `json:"validators_registry_contract,omitempty"`
	BLunaTokenContract         *string `json:"bluna_token_contract,omitempty"`
	StLunaTokenContract        *string `json:"stluna_token_contract,omitempty"`
	AirdropRegistryContract    *string `json:"airdrop_registry_contract,omitempty"`
}

type Parameters struct {
	EpochPeriod         uint64            `json:"epoch_period"`
	UnderlyingCoinDenom string            `json:"underlying_coin_denom"`
	UnbondingPeriod     uint64            `json:"unbonding_period"`
	PegRecoveryFee      sdkmath.LegacyDec `json:"peg_recovery_fee"`
	ErThreshold         sdkmath.LegacyDec `json:"er_threshold"`
	RewardDenom         string            `json:"reward_denom"`
	Paused              bool              `json:"paused"`
}

func (p Parameters) Validate() error {
	switch {
	case p.UnderlyingCoinDenom == "":
		return wrapParams("underlying_coin_denom must be set")
	case p.RewardDenom == "":
		return wrapParams("reward_denom must be set")
	case p.PegRecoveryFee.IsNil() || p.PegRecoveryFee.IsNegative() || p.PegRecoveryFee.GT(sdkmath.LegacyOneDec()):
		return wrapParams("peg_recovery_fee must be within [0, 1]")
	case p.ErThreshold.IsNil() || p.ErThreshold.IsNegative() || p.ErThreshold.GT(sdkmath.LegacyOneDec()):
		return wrapParams("er_threshold must be within [0, 1]")
	}
	return nil
}

// State is the accounting singleton. Token supplies are never stored: they
// are queried from the token contracts whenever a rate is recomputed.
type State struct {
	ExchangeRate          sdkmath.LegacyDec `json:"exchange_rate"`
	StLunaExchangeRate    sdkmath.LegacyDec `json:"stluna_exchange_rate"`
	TotalBondAmount       sdkmath.Int       `json:"total_bond_amount"`
	TotalBondStLunaAmount sdkmath.Int       `json:"total_bond_stluna_amount"`
	LastIndexModification uint64            `json:"last_index_modification"`
	PrevHubBalance        sdkmath.Int       `json:"prev_hub_balance"`
	// ActualUnbondedAmount may go negative when less than expected arrives.
	ActualUnbondedAmount sdkmath.Int `json:"actual_unbonded_amount"`
	LastUnbondedTime     uint64      `json:"last_unbonded_time"`
	LastProcessedBatch   uint64      `json:"last_processed_batch"`
}

func newState(now uint64) State {
	return State{
		ExchangeRate:          sdkmath.LegacyOneDec(),
		StLunaExchangeRate:    sdkmath.LegacyOneDec(),
		TotalBondAmount:       sdkmath.ZeroInt(),
		TotalBondStLunaAmount: sdkmath.ZeroInt(),
		LastIndexModification: now,
		PrevHubBalance:        sdkmath.ZeroInt(),
		ActualUnbondedAmount:  sdkmath.ZeroInt(),
		LastUnbondedTime:      now,
	}
}

// recomputeRate returns bonded / (issued + requested), or one when either
// side is zero. A ratio below 10^-18 is clamped to the smallest positive
// decimal so the rate never reaches zero.
func recomputeRate(bonded, issued, requested sdkmath.Int) sdkmath.LegacyDec {
	supply := issued.Add(requested)
	if bonded.IsZero() || supply.IsZero() {
		return sdkmath.LegacyOneDec()
	}
	rate := decFromRatio(bonded, supply)
	if !rate.IsPositive() {
		return sdkmath.LegacySmallestDec()
	}
	return rate
}

func (s *State) updateBLunaRate(issued, requested sdkmath.Int) {
	s.ExchangeRate = recomputeRate(s.TotalBondAmount, issued, requested)
}

func (s *State) updateStLunaRate(issued, requested sdkmath.Int) {
	s.StLunaExchangeRate = recomputeRate(s.TotalBondStLunaAmount, issued, requested)
}

func (s State) totalBonded() sdkmath.Int {
	return s.TotalBondAmount.Add(s.TotalBondStLunaAmount)
}

type CurrentBatch struct {
	ID               uint64      `json:"id"`
	RequestedWithFee sdkmath.Int `json:"requested_with_fee"`
	RequestedStLuna  sdkmath.Int `json:"requested_stluna"`
}

func newBatch(id uint64) CurrentBatch {
	return CurrentBatch{ID: id, RequestedWithFee: sdkmath.ZeroInt(), RequestedStLuna: sdkmath.ZeroInt()}
}

func (b CurrentBatch) empty() bool {
	return b.RequestedWithFee.IsZero() && b.RequestedStLuna.IsZero()
}

// UnbondHistory archives a closed batch. Once Released is set only the claim
// counters move.
type UnbondHistory struct {
	BatchID                   uint64            `json:"batch_id"`
	Time                      uint64            `json:"time"`
	Amount                    sdkmath.Int       `json:"amount"`
	AppliedExchangeRate       sdkmath.LegacyDec `json:"applied_exchange_rate"`
	WithdrawRate              sdkmath.LegacyDec `json:"withdraw_rate"`
	StLunaAmount              sdkmath.Int       `json:"stluna_amount"`
	StLunaAppliedExchangeRate sdkmath.LegacyDec `json:"stluna_applied_exchange_rate"`
	StLunaWithdrawRate        sdkmath.LegacyDec `json:"stluna_withdraw_rate"`
	Released                  bool              `json:"released"`
	ReleasedAmount            sdkmath.Int       `json:"released_amount"`
	StLunaReleasedAmount      sdkmath.Int       `json:"stluna_released_amount"`
	// Claimed counts the requested tokens already settled, Paid the
	// underlying sent for them. The claimant completing Amount is paid
	// whatever is left of ReleasedAmount.
	ClaimedAmount       sdkmath.Int `json:"claimed_amount"`
	PaidAmount          sdkmath.Int `json:"paid_amount"`
	StLunaClaimedAmount sdkmath.Int `json:"stluna_claimed_amount"`
	StLunaPaidAmount    sdkmath.Int `json:"stluna_paid_amount"`
}

// nominal returns the underlying amount each side is owed at the current
// withdraw rates.
func (h UnbondHistory) nominal() (bluna, stluna sdkmath.Int, err error) {
	if bluna, err = mulDec(h.Amount, h.WithdrawRate); err != nil {
		return
	}
	stluna, err = mulDec(h.StLunaAmount, h.StLunaWithdrawRate)
	return
}

// fillClaims zeroes claim counters missing from entries stored before they
// were tracked.
func (h *UnbondHistory) fillClaims() {
	h.ClaimedAmount = orZero(h.ClaimedAmount)
	h.PaidAmount = orZero(h.PaidAmount)
	h.StLunaClaimedAmount = orZero(h.StLunaClaimedAmount)
	h.StLunaPaidAmount = orZero(h.StLunaPaidAmount)
}

func orZero(v sdkmath.Int) sdkmath.Int {
	if v.IsNil() {
		return sdkmath.ZeroInt()
	}
	return v
}

// UnbondWaitEntity is one user's request within a single batch.
type UnbondWaitEntity struct {
	BLunaAmount  sdkmath.Int `json:"bluna_amount"`
	StLunaAmount sdkmath.Int `json:"stluna_amount"`
}

type Validator struct {
	Address        string      `json:"address"`
	TotalDelegated sdkmath.Int `json:"total_delegated"`
}

// Token selects one of the two derivative tokens.
type Token string

const (
	BLuna  Token = "bluna"
	StLuna Token = "stluna"
)
