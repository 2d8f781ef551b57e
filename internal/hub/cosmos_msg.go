package hub

import (
	"encoding/json"
	"fmt"

	sdkmath "cosmossdk.io/math"
)

// CosmosMsg is an outbound message the host runs after the execution
// commits. Exactly one family is set.
type CosmosMsg struct {
	Bank         *BankMsg         `json:"bank,omitempty"`
	Staking      *StakingMsg      `json:"staking,omitempty"`
	Distribution *DistributionMsg `json:"distribution,omitempty"`
	Wasm         *WasmMsg         `json:"wasm,omitempty"`
}

type BankMsg struct {
	Send *BankSend `json:"send,omitempty"`
}

type BankSend struct {
	ToAddress string `json:"to_address"`
	Amount    Coins  `json:"amount"`
}

type StakingMsg struct {
	Delegate   *StakingDelegate   `json:"delegate,omitempty"`
	Undelegate *StakingUndelegate `json:"undelegate,omitempty"`
	Redelegate *StakingRedelegate `json:"redelegate,omitempty"`
}

type StakingDelegate struct {
	Validator string `json:"validator"`
	Amount    Coin   `json:"amount"`
}

type StakingUndelegate struct {
	Validator string `json:"validator"`
	Amount    Coin   `json:"amount"`
}

type StakingRedelegate struct {
	SrcValidator string `json:"src_validator"`
	DstValidator string `json:"dst_validator"`
	Amount       Coin   `json:"amount"`
}

type DistributionMsg struct {
	SetWithdrawAddress      *SetWithdrawAddress      `json:"set_withdraw_address,omitempty"`
	WithdrawDelegatorReward *WithdrawDelegatorReward `json:"withdraw_delegator_reward,omitempty"`
}

type SetWithdrawAddress struct {
	Address string `json:"address"`
}

type WithdrawDelegatorReward struct {
	Validator string `json:"validator"`
}

type WasmMsg struct {
	Execute *WasmExecute `json:"execute,omitempty"`
}

// WasmExecute calls another contract. Msg is the JSON body, serialized as
// base64 like any binary field.
type WasmExecute struct {
	ContractAddr string `json:"contract_addr"`
	Msg          []byte `json:"msg"`
	Funds        Coins  `json:"funds"`
}

// Kind names the message family and variant, e.g. "staking/delegate".
func (m CosmosMsg) Kind() string {
	switch {
	case m.Bank != nil && m.Bank.Send != nil:
		return "bank/send"
	case m.Staking != nil && m.Staking.Delegate != nil:
		return "staking/delegate"
	case m.Staking != nil && m.Staking.Undelegate != nil:
		return "staking/undelegate"
	case m.Staking != nil && m.Staking.Redelegate != nil:
		return "staking/redelegate"
	case m.Distribution != nil && m.Distribution.SetWithdrawAddress != nil:
		return "distribution/set_withdraw_address"
	case m.Distribution != nil && m.Distribution.WithdrawDelegatorReward != nil:
		return "distribution/withdraw_delegator_reward"
	case m.Wasm != nil && m.Wasm.Execute != nil:
		return "wasm/execute"
	}
	return "unknown"
}

func bankSend(to string, amount Coin) CosmosMsg {
	return CosmosMsg{Bank: &BankMsg{Send: &BankSend{ToAddress: to, Amount: Coins{amount}}}}
}

func delegateMsg(validator string, amount Coin) CosmosMsg {
	return CosmosMsg{Staking: &StakingMsg{Delegate: &StakingDelegate{Validator: validator, Amount: amount}}}
}

func undelegateMsg(validator string, amount Coin) CosmosMsg {
	return CosmosMsg{Staking: &StakingMsg{Undelegate: &StakingUndelegate{Validator: validator, Amount: amount}}}
}

func redelegateMsg(src, dst string, amount Coin) CosmosMsg {
	return CosmosMsg{Staking: &StakingMsg{Redelegate: &StakingRedelegate{SrcValidator: src, DstValidator: dst, Amount: amount}}}
}

func setWithdrawAddressMsg(address string) CosmosMsg {
	return CosmosMsg{Distribution: &DistributionMsg{SetWithdrawAddress: &SetWithdrawAddress{Address: address}}}
}

func withdrawRewardMsg(validator string) CosmosMsg {
	return CosmosMsg{Distribution: &DistributionMsg{WithdrawDelegatorReward: &WithdrawDelegatorReward{Validator: validator}}}
}

func wasmExecute(contract string, msg any) (CosmosMsg, error) {
	body, err := json.Marshal(msg)
	if err != nil {
		return CosmosMsg{}, fmt.Errorf("encode message for %s: %w", contract, err)
	}
	return rawWasmExecute(contract, body), nil
}

func rawWasmExecute(contract string, body []byte) CosmosMsg {
	return CosmosMsg{Wasm: &WasmMsg{Execute: &WasmExecute{ContractAddr: contract, Msg: body, Funds: Coins{}}}}
}

// Cw20ExecuteMsg is the subset of the token contract interface the hub calls.
type Cw20ExecuteMsg struct {
	Mint *Cw20Mint `json:"mint,omitempty"`
	Burn *Cw20Burn `json:"burn,omitempty"`
}

type Cw20Mint struct {
	Recipient string      `json:"recipient"`
	Amount    sdkmath.Int `json:"amount"`
}

type Cw20Burn struct {
	Amount sdkmath.Int `json:"amount"`
}

// RewardExecuteMsg is the subset of the reward dispatcher interface the hub calls.
type RewardExecuteMsg struct {
	SwapToRewardDenom *SwapToRewardDenom `json:"swap_to_reward_denom,omitempty"`
	DispatchRewards   *struct{}          `json:"dispatch_rewards,omitempty"`
}

type SwapToRewardDenom struct {
	BLunaTotalBonded  sdkmath.Int `json:"bluna_total_bonded"`
	StLunaTotalBonded sdkmath.Int `json:"stluna_total_bonded"`
}

// RegistryExecuteMsg is the subset of the validator registry interface the hub calls.
type RegistryExecuteMsg struct {
	AddValidator *RegistryAddValidator `json:"add_validator,omitempty"`
}

type RegistryAddValidator struct {
	Validator RegistryValidator `json:"validator"`
}

type RegistryValidator struct {
	Address string `json:"address"`
}

func mintMsg(token, recipient string, amount sdkmath.Int) (CosmosMsg, error) {
	return wasmExecute(token, Cw20ExecuteMsg{Mint: &Cw20Mint{Recipient: recipient, Amount: amount}})
}

func burnMsg(token string, amount sdkmath.Int) (CosmosMsg, error) {
	return wasmExecute(token, Cw20ExecuteMsg{Burn: &Cw20Burn{Amount: amount}})
}
