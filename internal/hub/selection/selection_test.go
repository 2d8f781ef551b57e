package selection

import (
	"fmt"
	"testing"

	sdkmath "cosmossdk.io/math"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func snapshot(amounts ...int64) []Delegation {
	out := make([]Delegation, len(amounts))
	for i, a := range amounts {
		out[i] = Delegation{Validator: fmt.Sprintf("val%d", i+1), Amount: sdkmath.NewInt(a)}
	}
	return out
}

func asMap(allocations []Allocation) map[string]int64 {
	out := map[string]int64{}
	for _, a := range allocations {
		out[a.Validator] = a.Amount.Int64()
	}
	return out
}

func TestForDelegation_Levels(t *testing.T) {
	allocations, err := ForDelegation(snapshot(100, 0, 50), sdkmath.NewInt(120))
	require.NoError(t, err)
	// totals become 100 / 85 / 85
	assert.Equal(t, map[string]int64{"val2": 85, "val3": 35}, asMap(allocations))
}

func TestForDelegation_RemainderGoesToLeastStaked(t *testing.T) {
	allocations, err := ForDelegation(snapshot(0, 0, 0), sdkmath.NewInt(10))
	require.NoError(t, err)
	assert.Equal(t, map[string]int64{"val1": 4, "val2": 3, "val3": 3}, asMap(allocations))
}

func TestForDelegation_SkipsOverStaked(t *testing.T) {
	allocations, err := ForDelegation(snapshot(1000, 10), sdkmath.NewInt(5))
	require.NoError(t, err)
	assert.Equal(t, map[string]int64{"val2": 5}, asMap(allocations))
}

func TestForDelegation_Errors(t *testing.T) {
	_, err := ForDelegation(nil, sdkmath.NewInt(1))
	assert.ErrorIs(t, err, ErrNoValidators)

	_, err = ForDelegation(snapshot(1), sdkmath.NewInt(-1))
	assert.ErrorIs(t, err, ErrNegative)

	allocations, err := ForDelegation(snapshot(1), sdkmath.ZeroInt())
	require.NoError(t, err)
	assert.Empty(t, allocations)
}

func TestForUndelegation_RotatesStart(t *testing.T) {
	snap := snapshot(10, 10, 10)

	allocations, err := ForUndelegation(snap, sdkmath.NewInt(15), 1)
	require.NoError(t, err)
	assert.Equal(t, []Allocation{
		{Validator: "val2", Amount: sdkmath.NewInt(10)},
		{Validator: "val3", Amount: sdkmath.NewInt(5)},
	}, allocations)

	allocations, err = ForUndelegation(snap, sdkmath.NewInt(15), 2)
	require.NoError(t, err)
	assert.Equal(t, []Allocation{
		{Validator: "val3", Amount: sdkmath.NewInt(10)},
		{Validator: "val1", Amount: sdkmath.NewInt(5)},
	}, allocations)
}

func TestForUndelegation_ShortfallFails(t *testing.T) {
	_, err := ForUndelegation(snapshot(10, 5), sdkmath.NewInt(16), 1)
	assert.ErrorIs(t, err, ErrShortfall)

	_, err = ForUndelegation(nil, sdkmath.NewInt(1), 1)
	assert.ErrorIs(t, err, ErrShortfall)
}

func TestForRedelegation(t *testing.T) {
	moves, err := ForRedelegation("val9", snapshot(10, 20), sdkmath.NewInt(30))
	require.NoError(t, err)
	assert.Equal(t, []Move{
		{Src: "val9", Dst: "val1", Amount: sdkmath.NewInt(20)},
		{Src: "val9", Dst: "val2", Amount: sdkmath.NewInt(10)},
	}, moves)

	_, err = ForRedelegation("val1", snapshot(10, 20), sdkmath.NewInt(30))
	assert.Error(t, err)
}

func drawSnapshot(t *rapid.T) []Delegation {
	amounts := rapid.SliceOfN(rapid.Int64Range(0, 1_000_000), 1, 12).Draw(t, "amounts")
	return snapshot(amounts...)
}

func TestForDelegation_SumsExactly(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		snap := drawSnapshot(t)
		amount := sdkmath.NewInt(rapid.Int64Range(0, 10_000_000).Draw(t, "amount"))

		allocations, err := ForDelegation(snap, amount)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !Sum(allocations).Equal(amount) {
			t.Fatalf("allocated %s, want %s", Sum(allocations), amount)
		}

		// no validator that received stake ends above another receiver by more than one unit
		after := map[string]sdkmath.Int{}
		for _, d := range snap {
			after[d.Validator] = d.Amount
		}
		for _, a := range allocations {
			if !a.Amount.IsPositive() {
				t.Fatalf("non-positive allocation %s", a.Amount)
			}
			after[a.Validator] = after[a.Validator].Add(a.Amount)
		}
		for _, a := range allocations {
			for _, b := range allocations {
				if after[a.Validator].Sub(after[b.Validator]).GT(sdkmath.OneInt()) {
					t.Fatalf("uneven result: %s=%s %s=%s", a.Validator, after[a.Validator], b.Validator, after[b.Validator])
				}
			}
		}
	})
}

func TestForUndelegation_SumsExactlyOrFails(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		snap := drawSnapshot(t)
		amount := sdkmath.NewInt(rapid.Int64Range(0, 13_000_000).Draw(t, "amount"))
		batchID := rapid.Uint64().Draw(t, "batchID")

		allocations, err := ForUndelegation(snap, amount, batchID)
		if amount.GT(Sum(snap)) {
			if err == nil {
				t.Fatalf("expected shortfall for %s over %s", amount, Sum(snap))
			}
			return
		}
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !Sum(allocations).Equal(amount) {
			t.Fatalf("undelegated %s, want %s", Sum(allocations), amount)
		}
		held := map[string]sdkmath.Int{}
		for _, d := range snap {
			held[d.Validator] = d.Amount
		}
		for _, a := range allocations {
			if a.Amount.GT(held[a.Validator]) {
				t.Fatalf("validator %s drained beyond its stake", a.Validator)
			}
		}
	})
}
