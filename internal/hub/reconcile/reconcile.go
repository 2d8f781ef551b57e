// Package reconcile splits the amount that actually arrived from unbonding
// across the batches that were expected to deliver it.
package reconcile

import (
	"errors"
	"sort"

	sdkmath "cosmossdk.io/math"
)

var ErrNegative = errors.New("amounts must not be negative")

// Entry is a batch and the amount it was expected to deliver.
type Entry struct {
	ID      uint64
	Nominal sdkmath.Int
}

// Result is the amount finally assigned to a batch.
type Result struct {
	ID      uint64
	Nominal sdkmath.Int
	Final   sdkmath.Int
}

// Distribute assigns total across entries in proportion to their nominal
// amounts with the largest remainder method: each entry first gets
// floor(total * nominal / sum), then the units left over go one each to the
// entries with the largest fractional remainders, lower ID first on ties.
// The finals always sum to total unless every nominal is zero, in which
// case every final is zero.
func Distribute(entries []Entry, total sdkmath.Int) ([]Result, error) {
	if total.IsNil() || total.IsNegative() {
		return nil, ErrNegative
	}
	sum := sdkmath.ZeroInt()
	for _, e := range entries {
		if e.Nominal.IsNil() || e.Nominal.IsNegative() {
			return nil, ErrNegative
		}
		sum = sum.Add(e.Nominal)
	}

	results := make([]Result, len(entries))
	if sum.IsZero() {
		for i, e := range entries {
			results[i] = Result{ID: e.ID, Nominal: e.Nominal, Final: sdkmath.ZeroInt()}
		}
		return results, nil
	}

	remainders := make([]sdkmath.Int, len(entries))
	assigned := sdkmath.ZeroInt()
	for i, e := range entries {
		scaled := total.Mul(e.Nominal)
		share := scaled.Quo(sum)
		remainders[i] = scaled.Sub(share.Mul(sum))
		results[i] = Result{ID: e.ID, Nominal: e.Nominal, Final: share}
		assigned = assigned.Add(share)
	}

	order := make([]int, len(entries))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		ra, rb := remainders[order[a]], remainders[order[b]]
		if !ra.Equal(rb) {
			return ra.GT(rb)
		}
		return results[order[a]].ID < results[order[b]].ID
	})

	leftover := total.Sub(assigned).Int64()
	for i := int64(0); i < leftover; i++ {
		idx := order[i]
		results[idx].Final = results[idx].Final.AddRaw(1)
	}
	return results, nil
}

// Split divides amount between two sides in proportion to a and b. The
// first side is rounded down and the second takes the rest.
func Split(amount, a, b sdkmath.Int) (sdkmath.Int, sdkmath.Int) {
	whole := a.Add(b)
	if whole.IsZero() {
		return sdkmath.ZeroInt(), amount
	}
	first := amount.Mul(a).Quo(whole)
	return first, amount.Sub(first)
}
