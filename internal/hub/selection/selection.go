// Package selection decides how stake moves across the validator whitelist.
//
// Every function returns allocations whose amounts sum exactly to the amount
// asked for, or an error. None of them ever truncates a request.
package selection

import (
	"bytes"
	"errors"
	"fmt"
	"sort"

	sdkmath "cosmossdk.io/math"
)

var (
	ErrNoValidators = errors.New("no validators to select from")
	ErrShortfall    = errors.New("delegations cannot cover the requested amount")
	ErrNegative     = errors.New("amounts must not be negative")
)

// Delegation is the stake currently held by one validator.
type Delegation struct {
	Validator string
	Amount    sdkmath.Int
}

// Allocation is the amount to add to or remove from one validator.
type Allocation struct {
	Validator string
	Amount    sdkmath.Int
}

// Move is a redelegation from Src to Dst.
type Move struct {
	Src    string
	Dst    string
	Amount sdkmath.Int
}

func Sum[T Delegation | Allocation](items []T) sdkmath.Int {
	total := sdkmath.ZeroInt()
	for _, item := range items {
		switch v := any(item).(type) {
		case Delegation:
			total = total.Add(v.Amount)
		case Allocation:
			total = total.Add(v.Amount)
		}
	}
	return total
}

func validate(snapshot []Delegation, amount sdkmath.Int) error {
	if amount.IsNil() || amount.IsNegative() {
		return ErrNegative
	}
	for _, d := range snapshot {
		if d.Amount.IsNil() || d.Amount.IsNegative() {
			return fmt.Errorf("%w: validator %s", ErrNegative, d.Validator)
		}
	}
	return nil
}

func sorted(snapshot []Delegation, less func(a, b Delegation) bool) []Delegation {
	out := make([]Delegation, len(snapshot))
	copy(out, snapshot)
	sort.SliceStable(out, func(i, j int) bool { return less(out[i], out[j]) })
	return out
}

func byAmountThenAddress(a, b Delegation) bool {
	if !a.Amount.Equal(b.Amount) {
		return a.Amount.LT(b.Amount)
	}
	return a.Validator < b.Validator
}

func byAddress(a, b Delegation) bool {
	return bytes.Compare([]byte(a.Validator), []byte(b.Validator)) < 0
}

// ForDelegation spreads amount so the resulting per-validator stake is as
// even as integer division allows. Validators are ordered ascending by stake,
// then by address. The k least-staked validators are levelled up to
// (stake_k + amount) / k, where k is the largest prefix whose level still
// reaches its most-staked member. The division remainder goes one unit at a
// time to the first validators in that order. Validators above the level
// receive nothing.
func ForDelegation(snapshot []Delegation, amount sdkmath.Int) ([]Allocation, error) {
	if len(snapshot) == 0 {
		return nil, ErrNoValidators
	}
	if err := validate(snapshot, amount); err != nil {
		return nil, err
	}
	if amount.IsZero() {
		return nil, nil
	}

	ordered := sorted(snapshot, byAmountThenAddress)
	prefix := make([]sdkmath.Int, len(ordered)+1)
	prefix[0] = sdkmath.ZeroInt()
	for i, d := range ordered {
		prefix[i+1] = prefix[i].Add(d.Amount)
	}

	k := len(ordered)
	for ; k > 1; k-- {
		level := prefix[k].Add(amount).QuoRaw(int64(k))
		if level.GTE(ordered[k-1].Amount) {
			break
		}
	}

	pool := prefix[k].Add(amount)
	level := pool.QuoRaw(int64(k))
	extra := pool.ModRaw(int64(k)).Int64()

	allocations := make([]Allocation, 0, k)
	for i := 0; i < k; i++ {
		target := level
		if int64(i) < extra {
			target = target.AddRaw(1)
		}
		increment := target.Sub(ordered[i].Amount)
		if increment.IsPositive() {
			allocations = append(allocations, Allocation{Validator: ordered[i].Validator, Amount: increment})
		}
	}
	return allocations, nil
}

// ForUndelegation drains validators in address order, starting at position
// batchID mod n and wrapping around. Each validator gives up to its whole
// stake. The rotation spreads undelegations over successive batches without
// any source of randomness.
func ForUndelegation(snapshot []Delegation, amount sdkmath.Int, batchID uint64) ([]Allocation, error) {
	if err := validate(snapshot, amount); err != nil {
		return nil, err
	}
	if amount.IsZero() {
		return nil, nil
	}
	if len(snapshot) == 0 {
		return nil, fmt.Errorf("%w: %s requested, nothing delegated", ErrShortfall, amount)
	}

	ordered := sorted(snapshot, byAddress)
	n := uint64(len(ordered))
	start := batchID % n

	remaining := amount
	allocations := make([]Allocation, 0)
	for i := uint64(0); i < n && remaining.IsPositive(); i++ {
		d := ordered[(start+i)%n]
		if !d.Amount.IsPositive() {
			continue
		}
		take := d.Amount
		if remaining.LT(take) {
			take = remaining
		}
		allocations = append(allocations, Allocation{Validator: d.Validator, Amount: take})
		remaining = remaining.Sub(take)
	}
	if remaining.IsPositive() {
		return nil, fmt.Errorf("%w: %s requested, %s short", ErrShortfall, amount, remaining)
	}
	return allocations, nil
}

// ForRedelegation moves the stake of a removed validator onto the remaining
// ones with the same levelling as ForDelegation.
func ForRedelegation(removed string, remaining []Delegation, amount sdkmath.Int) ([]Move, error) {
	for _, d := range remaining {
		if d.Validator == removed {
			return nil, fmt.Errorf("validator %s is still part of the remaining set", removed)
		}
	}
	allocations, err := ForDelegation(remaining, amount)
	if err != nil {
		return nil, err
	}
	moves := make([]Move, len(allocations))
	for i, a := range allocations {
		moves[i] = Move{Src: removed, Dst: a.Validator, Amount: a.Amount}
	}
	return moves, nil
}
