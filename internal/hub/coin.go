package hub

import (
	"fmt"
	"strings"

	errorsmod "cosmossdk.io/errors"
	sdkmath "cosmossdk.io/math"
)

type Coin struct {
	Denom  string      `json:"denom"`
	Amount sdkmath.Int `json:"amount"`
}

func NewCoin(denom string, amount sdkmath.Int) Coin {
	return Coin{Denom: denom, Amount: amount}
}

func (c Coin) String() string {
	return fmt.Sprintf("%s%s", c.Amount, c.Denom)
}

type Coins []Coin

func (cs Coins) String() string {
	parts := make([]string, len(cs))
	for i, c := range cs {
		parts[i] = c.String()
	}
	return strings.Join(parts, ",")
}

// AmountOf sums every coin of the given denom.
func (cs Coins) AmountOf(denom string) sdkmath.Int {
	total := sdkmath.ZeroInt()
	for _, c := range cs {
		if c.Denom == denom && !c.Amount.IsNil() {
			total = total.Add(c.Amount)
		}
	}
	return total
}

// singlePayment enforces that exactly one non-zero coin of denom was attached.
func singlePayment(funds Coins, denom string) (sdkmath.Int, error) {
	if len(funds) > 1 {
		return sdkmath.ZeroInt(), errorsmod.Wrap(ErrInvalidFunds, "more than one coin is sent; only one asset is supported")
	}
	if len(funds) == 0 || funds[0].Denom != denom || funds[0].Amount.IsNil() || !funds[0].Amount.IsPositive() {
		return sdkmath.ZeroInt(), errorsmod.Wrapf(ErrInvalidFunds, "no %s assets are provided to bond", denom)
	}
	if err := checkUint128(funds[0].Amount); err != nil {
		return sdkmath.ZeroInt(), err
	}
	return funds[0].Amount, nil
}
